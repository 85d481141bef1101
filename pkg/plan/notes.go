package plan

import (
	"fmt"
	"strings"
)

// AppendNote adds "- text" under a "## YYYY-MM-DD" heading for day,
// creating the heading when the body has none for that day.
func AppendNote(body string, day Date, text string) string {
	dateHeader := fmt.Sprintf("## %s", day)

	if idx := strings.Index(body, dateHeader); idx >= 0 {
		afterHeader := idx + len(dateHeader)
		nl := strings.Index(body[afterHeader:], "\n")
		if nl == -1 {
			return body + "\n- " + text + "\n"
		}
		insertAt := afterHeader + nl + 1
		return body[:insertAt] + "- " + text + "\n" + body[insertAt:]
	}

	if body != "" && !strings.HasSuffix(body, "\n") {
		body += "\n"
	}
	if body != "" {
		body += "\n"
	}
	return body + dateHeader + "\n- " + text + "\n"
}
