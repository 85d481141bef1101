package store

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const frontmatterDelimiter = "---"

// ParseFrontmatter splits a markdown file into YAML frontmatter and body,
// decoding the frontmatter into v. Content without frontmatter leaves v
// untouched and is returned whole as the body. The body keeps its trailing
// newline.
func ParseFrontmatter(content string, v interface{}) (string, error) {
	content = strings.TrimLeft(content, " \t\r\n")

	if !strings.HasPrefix(content, frontmatterDelimiter) {
		return content, nil
	}

	rest := content[len(frontmatterDelimiter):]
	idx := strings.Index(rest, "\n"+frontmatterDelimiter)
	if idx == -1 {
		return "", fmt.Errorf("unclosed frontmatter delimiter")
	}

	yamlContent := rest[:idx]
	body := rest[idx+len("\n"+frontmatterDelimiter):]
	body = strings.TrimLeft(body, "\n")

	if err := yaml.Unmarshal([]byte(yamlContent), v); err != nil {
		return "", fmt.Errorf("parsing frontmatter YAML: %w", err)
	}
	return body, nil
}

// SerializeFrontmatter renders v as YAML frontmatter followed by body.
func SerializeFrontmatter(v interface{}, body string) (string, error) {
	yamlBytes, err := yaml.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("serializing frontmatter YAML: %w", err)
	}

	var b strings.Builder
	b.WriteString(frontmatterDelimiter)
	b.WriteString("\n")
	b.WriteString(strings.TrimRight(string(yamlBytes), "\n"))
	b.WriteString("\n")
	b.WriteString(frontmatterDelimiter)
	b.WriteString("\n")
	if body != "" {
		b.WriteString("\n")
		b.WriteString(body)
		if !strings.HasSuffix(body, "\n") {
			b.WriteString("\n")
		}
	}

	return b.String(), nil
}
