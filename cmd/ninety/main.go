package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stefanpenner/ninety/pkg/config"
	"github.com/stefanpenner/ninety/pkg/logging"
	"github.com/stefanpenner/ninety/pkg/metrics"
	"github.com/stefanpenner/ninety/pkg/plan"
	"github.com/stefanpenner/ninety/pkg/store"
	gsync "github.com/stefanpenner/ninety/pkg/sync"
	"github.com/stefanpenner/ninety/pkg/tui"
)

const usage = "Usage: ninety [status|list|toggle|next|streak|goals|goal|milestones|note|account|revenue|metrics|init|sync]"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app is everything a command needs, opened once per invocation.
type app struct {
	cfg     *config.Config
	files   *store.Store
	logger  zerolog.Logger
	tracker *plan.Tracker
	closers []func()
	jsonOut bool
}

func run() error {
	args := os.Args[1:]
	jsonOutput := hasFlag(args, "--json")
	args = removeFlag(args, "--json")
	dirFlag, args := takeValue(args, "--dir")

	cfg, err := config.Load(dirFlag)
	if err != nil {
		return err
	}
	files, err := store.NewStore(cfg.Dir)
	if err != nil {
		return err
	}
	logs, err := logging.New(cfg.LogsDir(), cfg.Level())
	if err != nil {
		return err
	}
	defer logs.Close()

	a := &app{cfg: cfg, files: files, logger: logs.Logger, jsonOut: jsonOutput}
	defer a.close()

	if len(args) == 0 {
		return a.runTUI()
	}

	cmd := args[0]
	logs.Debug().Str("command", cmd).Msg("run")

	// commands that don't touch the plan
	switch cmd {
	case "init":
		remote, _ := takeValue(args[1:], "--remote")
		return a.cmdInit(remote)
	case "sync":
		return gsync.New(cfg.Dir, a.logger).Sync()
	case "account":
		if len(args) < 4 || args[1] != "set" {
			return fmt.Errorf("usage: ninety account set <followers> <impressions>")
		}
		return a.cmdAccountSet(args[2], args[3])
	case "revenue":
		if len(args) >= 2 && args[1] == "list" {
			return a.cmdRevenueList()
		}
		if len(args) < 3 || args[1] != "add" {
			return fmt.Errorf("usage: ninety revenue add <amount> [source] | ninety revenue list")
		}
		return a.cmdRevenueAdd(args[2], strings.Join(args[3:], " "))
	}

	if err := a.openTracker(); err != nil {
		return err
	}

	switch cmd {
	case "status":
		err = a.cmdStatus()
	case "list":
		phase := 0
		if len(args) >= 2 {
			if phase, err = parsePhase(args[1]); err != nil {
				return err
			}
		}
		err = a.cmdList(phase)
	case "toggle":
		if len(args) < 2 {
			return fmt.Errorf("usage: ninety toggle <id>")
		}
		err = a.cmdToggle(args[1])
	case "next":
		err = a.cmdNext()
	case "streak":
		err = a.cmdStreak()
	case "goals":
		err = a.cmdGoals()
	case "goal":
		if len(args) < 4 {
			return fmt.Errorf("usage: ninety goal <followers|impressions|revenue|tweets> current|target <value>")
		}
		err = a.cmdGoal(args[1], args[2], args[3])
	case "milestones":
		err = a.cmdMilestones()
	case "note":
		if len(args) < 2 {
			return fmt.Errorf("usage: ninety note <text>")
		}
		err = a.cmdNote(strings.Join(args[1:], " "))
	case "metrics":
		path := a.cfg.MetricsFile
		if len(args) >= 2 {
			path = args[1]
		}
		return a.cmdMetrics(path)
	default:
		return fmt.Errorf("unknown command: %s\n%s", cmd, usage)
	}
	if err != nil {
		return err
	}
	return a.exportMetrics()
}

func hasFlag(args []string, flag string) bool {
	for _, a := range args {
		if a == flag {
			return true
		}
	}
	return false
}

func removeFlag(args []string, flag string) []string {
	var result []string
	for _, a := range args {
		if a != flag {
			result = append(result, a)
		}
	}
	return result
}

// takeValue removes "flag value" from args and returns the value.
func takeValue(args []string, flag string) (string, []string) {
	var value string
	var result []string
	for i := 0; i < len(args); i++ {
		if args[i] == flag && i+1 < len(args) {
			value = args[i+1]
			i++
			continue
		}
		result = append(result, args[i])
	}
	return value, result
}

func parsePhase(s string) (int, error) {
	phase, err := strconv.Atoi(s)
	if err != nil || phase < 1 || phase > len(plan.Phases) {
		return 0, fmt.Errorf("invalid phase: %s (use 1, 2 or 3)", s)
	}
	return phase, nil
}

// openTracker loads the catalog, picks the repository and initializes the
// plan, seeding new goals from the account.
func (a *app) openTracker() error {
	catalog, err := store.LoadCatalog(a.cfg.CatalogPath())
	if err != nil {
		return err
	}

	var repo plan.Repository = a.files
	if a.cfg.DatabaseURL != "" {
		pg, err := store.OpenPgStore(context.Background(), a.cfg.DatabaseURL, a.cfg.DBTimeout)
		if err != nil {
			return err
		}
		a.closers = append(a.closers, pg.Close)
		repo = pg
		a.logger.Debug().Msg("using postgres repository")
	}

	account, err := a.files.LoadAccount()
	if err != nil {
		return err
	}

	a.tracker = plan.NewTracker(repo, catalog, a.cfg.Options(a.logger))
	if _, err := a.tracker.Initialize(plan.Today(), account.Seed()); err != nil {
		return err
	}
	return nil
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func (a *app) runTUI() error {
	if err := a.openTracker(); err != nil {
		return err
	}

	opts := tui.Options{DataDir: a.cfg.Dir, Logger: a.logger}
	if repo := gsync.New(a.cfg.Dir, a.logger); repo.IsRepo() {
		opts.Sync = repo
	}

	m := tui.NewModel(a.tracker, opts)
	p := tea.NewProgram(m, tea.WithAltScreen())

	// Start file watcher
	if a.cfg.DatabaseURL == "" {
		cleanup, err := tui.StartWatcher(a.cfg.Dir, p)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: file watcher failed: %v\n", err)
		} else {
			defer cleanup()
		}
	}

	_, err := p.Run()
	if err != nil {
		return err
	}
	return a.exportMetrics()
}

// exportMetrics refreshes the metrics textfile when one is configured.
func (a *app) exportMetrics() error {
	if a.cfg.MetricsFile == "" || a.tracker == nil {
		return nil
	}
	return a.writeMetrics(a.cfg.MetricsFile)
}

func (a *app) writeMetrics(path string) error {
	dash, err := a.tracker.Dashboard(plan.Today())
	if err != nil {
		return err
	}
	m := metrics.New()
	m.Observe(dash)
	if path == "" {
		return m.Write(os.Stdout)
	}
	if err := m.WriteTextfile(path); err != nil {
		return err
	}
	a.logger.Debug().Str("path", path).Msg("metrics written")
	return nil
}

// CLI Commands

func (a *app) cmdInit(remote string) error {
	if err := config.WriteDefault(a.cfg.Dir); err != nil {
		return err
	}
	if err := a.openTracker(); err != nil {
		return err
	}
	if err := gsync.New(a.cfg.Dir, a.logger).Init(remote); err != nil {
		return err
	}
	if a.jsonOut {
		return outputJSON(map[string]string{"dir": a.cfg.Dir})
	}
	fmt.Printf("Initialized %s\n", a.cfg.Dir)
	return nil
}

func (a *app) cmdStatus() error {
	dash, err := a.tracker.Dashboard(plan.Today())
	if err != nil {
		return err
	}
	if a.jsonOut {
		return outputJSON(dash)
	}

	fmt.Printf("Day %d of %d · %d days left (started %s)\n", dash.DaysElapsed+1, dash.HorizonDays, dash.DaysRemaining, dash.StartDate)
	fmt.Printf("%d/%d done (%d%%) · 🔥 %d day streak\n", dash.Completed, dash.Total, dash.Percent, dash.Streak)
	for _, p := range dash.Phases {
		fmt.Printf("  Phase %d (%s): %d/%d\n", p.Phase, p.Label, p.Completed, p.Total)
	}
	if dash.Next != nil {
		fmt.Printf("Next: %s\n", dash.Next.Title)
	} else {
		fmt.Println("Plan complete 🏆")
	}
	return nil
}

type listEntry struct {
	ID            string        `json:"id"`
	Phase         int           `json:"phase"`
	Priority      plan.Priority `json:"priority"`
	Title         string        `json:"title"`
	Completed     bool          `json:"completed"`
	CompletedDate string        `json:"completedDate,omitempty"`
}

func (a *app) cmdList(phase int) error {
	state, err := a.tracker.State()
	if err != nil {
		return err
	}
	items := a.tracker.Catalog().Items()
	if phase != 0 {
		items = a.tracker.Catalog().ByPhase(phase)
	}

	entries := make([]listEntry, 0, len(items))
	for _, item := range items {
		e := listEntry{ID: item.ID, Phase: item.Phase, Priority: item.Priority, Title: item.Title}
		if c, ok := state.Actions[item.ID]; ok {
			e.Completed = true
			if !c.Date.IsZero() {
				e.CompletedDate = c.Date.String()
			}
		}
		entries = append(entries, e)
	}

	if a.jsonOut {
		return outputJSON(entries)
	}

	current := 0
	for _, e := range entries {
		if e.Phase != current {
			current = e.Phase
			fmt.Printf("Phase %d · %s\n", current, plan.PhaseLabel(current))
		}
		status := "○"
		if e.Completed {
			status = "✓"
		}
		fmt.Printf("  %s %-5s %-9s %s\n", status, e.ID, e.Priority, e.Title)
	}
	return nil
}

func (a *app) cmdToggle(id string) error {
	done, err := a.tracker.Toggle(id, plan.Today())
	if err != nil {
		return err
	}
	item, err := a.tracker.Catalog().ByID(id)
	if err != nil {
		return err
	}

	if a.jsonOut {
		return outputJSON(map[string]interface{}{"id": id, "completed": done})
	}

	if done {
		fmt.Printf("✓ %s\n", item.Title)
	} else {
		fmt.Printf("○ %s\n", item.Title)
	}
	return nil
}

func (a *app) cmdNext() error {
	next, err := a.tracker.NextAction()
	if err != nil {
		return err
	}
	if a.jsonOut {
		return outputJSON(map[string]interface{}{"next": next})
	}
	if next == nil {
		fmt.Println("Plan complete 🏆")
		return nil
	}
	fmt.Printf("%s [%s] %s\n", next.ID, next.Priority.Label(), next.Title)
	if next.Description != "" {
		fmt.Println(next.Description)
	}
	return nil
}

func (a *app) cmdStreak() error {
	streak, err := a.tracker.Streak(plan.Today())
	if err != nil {
		return err
	}
	if a.jsonOut {
		return outputJSON(map[string]int{"streak": streak})
	}
	fmt.Printf("🔥 %d day streak\n", streak)
	return nil
}

func (a *app) cmdGoals() error {
	dash, err := a.tracker.Dashboard(plan.Today())
	if err != nil {
		return err
	}
	if a.jsonOut {
		return outputJSON(dash.Goals)
	}
	for _, g := range dash.Goals {
		fmt.Printf("%s %-20s %s / %s (%d%%)\n", g.Icon, g.Label, g.CurrentDisplay, g.TargetDisplay, int(g.Ratio*100+0.5))
	}
	return nil
}

func (a *app) cmdGoal(key, field, value string) error {
	k, err := plan.ParseGoalKey(key)
	if err != nil {
		return err
	}
	v, err := plan.ParseGoalValue(value)
	if err != nil {
		return err
	}
	switch field {
	case "current":
		err = a.tracker.SetGoalCurrent(k, v)
	case "target":
		err = a.tracker.SetGoalTarget(k, v)
	default:
		return fmt.Errorf("invalid field: %s (use current or target)", field)
	}
	if err != nil {
		return err
	}

	if a.jsonOut {
		goals, err := a.tracker.Goals()
		if err != nil {
			return err
		}
		g, err := goals.Get(k)
		if err != nil {
			return err
		}
		return outputJSON(map[string]interface{}{"key": k, "current": g.Current, "target": g.Target})
	}
	fmt.Printf("%s %s → %s\n", k.Definition().Label, field, plan.DisplayValue(v))
	return nil
}

func (a *app) cmdMilestones() error {
	dash, err := a.tracker.Dashboard(plan.Today())
	if err != nil {
		return err
	}
	if a.jsonOut {
		return outputJSON(dash.Milestones)
	}
	for _, ms := range dash.Milestones {
		status := "·"
		if ms.Achieved {
			status = ms.Icon
		}
		fmt.Printf("%s %-20s %s\n", status, ms.Title, ms.Description)
	}
	return nil
}

func (a *app) cmdNote(text string) error {
	if err := a.tracker.AddNote(text, plan.Today()); err != nil {
		return err
	}
	if a.jsonOut {
		return outputJSON(map[string]string{"note": text})
	}
	fmt.Println("Note added")
	return nil
}

func (a *app) cmdMetrics(path string) error {
	if err := a.writeMetrics(path); err != nil {
		return err
	}
	if path != "" && !a.jsonOut {
		fmt.Printf("Metrics written to %s\n", path)
	}
	return nil
}

func (a *app) cmdAccountSet(followers, impressions string) error {
	f, err := plan.ParseGoalValue(followers)
	if err != nil {
		return err
	}
	i, err := plan.ParseGoalValue(impressions)
	if err != nil {
		return err
	}
	account, err := a.files.SetAccountMetrics(f, i)
	if err != nil {
		return err
	}
	if a.jsonOut {
		return outputJSON(account)
	}
	fmt.Printf("Account: %s followers, %s impressions\n", plan.DisplayValue(account.Followers), plan.DisplayValue(account.Impressions))
	return nil
}

func (a *app) cmdRevenueAdd(amount, source string) error {
	v, err := strconv.ParseFloat(strings.TrimPrefix(amount, "$"), 64)
	if err != nil {
		return fmt.Errorf("invalid amount: %s", amount)
	}
	entry, err := a.files.AddRevenue(v, source, plan.Today())
	if err != nil {
		return err
	}
	if a.jsonOut {
		return outputJSON(entry)
	}
	fmt.Printf("Recorded $%.2f (%s)\n", entry.Amount, entry.ID)
	return nil
}

func (a *app) cmdRevenueList() error {
	account, err := a.files.LoadAccount()
	if err != nil {
		return err
	}
	if a.jsonOut {
		return outputJSON(account.Revenue)
	}
	if len(account.Revenue) == 0 {
		fmt.Println("No revenue recorded.")
		return nil
	}
	for _, e := range account.Revenue {
		fmt.Printf("%s  $%9.2f  %s\n", e.Date, e.Amount, e.Source)
	}
	fmt.Printf("Total: $%.2f\n", account.RevenueTotal())
	return nil
}

// JSON helpers

func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
