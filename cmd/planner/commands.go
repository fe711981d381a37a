package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"
	"time"

	"eventplanner/internal/dates"
	"eventplanner/internal/export"
	"eventplanner/internal/store"
)

type command struct {
	store *store.Store
	opts  options
	out   io.Writer
	now   func() time.Time
}

func (c *command) login(ctx context.Context) error {
	if c.opts.email == "" || c.opts.password == "" {
		return errors.New("--email and --password are required")
	}
	if res := c.store.Session.Login(ctx, c.opts.email, c.opts.password); !res.Success {
		return resultError("signing in", res)
	}
	return nil
}

func (c *command) withEvent(args []string, fn func(eventID string) error) error {
	if len(args) != 1 || args[0] == "" {
		return errors.New("an event ID is required")
	}
	return fn(args[0])
}

func (c *command) table() *tabwriter.Writer {
	return tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
}

func (c *command) events(ctx context.Context) error {
	if res := c.store.Events.Load(ctx, c.store.Session.UserID()); !res.Success {
		return resultError("loading events", res)
	}
	c.store.Events.SetSearch(c.opts.search)
	if res := c.store.Events.SetTypeFilter(c.opts.typ); !res.Success {
		return fmt.Errorf("--type %q: %s", c.opts.typ, res.Fields["type"])
	}

	events := c.store.Events.Filtered()
	if len(events) == 0 {
		fmt.Fprintln(c.out, "No events found")
		return nil
	}

	now := c.now()
	w := c.table()
	fmt.Fprintln(w, "ID\tNAME\tTYPE\tDATE\tWHEN\tLOCATION")
	for _, e := range events {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			e.ID, e.Name, e.Type, dates.Format(e.Date), dates.CountdownTo(e.Date, now).Message, e.Location)
	}
	return w.Flush()
}

func (c *command) guests(ctx context.Context, eventID string) error {
	if res := c.store.Guests.Load(ctx, eventID); !res.Success {
		return resultError("loading guests", res)
	}

	fmt.Fprintf(c.out, "%d guests, %d attending\n", c.store.Guests.Count(), c.store.Guests.AttendingCount())
	w := c.table()
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tRSVP")
	for _, g := range c.store.Guests.Filtered() {
		fmt.Fprintf(w, "%s\t%s %s\t%s\t%s\n", g.ID, g.FirstName, g.LastName, g.Email, g.RSVPStatus)
	}
	return w.Flush()
}

func (c *command) tasks(ctx context.Context, eventID string) error {
	if res := c.store.Tasks.Load(ctx, eventID); !res.Success {
		return resultError("loading tasks", res)
	}

	fmt.Fprintf(c.out, "%d%% complete\n", c.store.Tasks.Progress())
	w := c.table()
	fmt.Fprintln(w, "ID\tDONE\tTITLE\tDUE")
	for _, t := range c.store.Tasks.Filtered() {
		done := " "
		if t.Status {
			done = "x"
		}
		fmt.Fprintf(w, "%s\t[%s]\t%s\t%s\n", t.ID, done, t.Title, dates.Format(t.DueDate))
	}
	return w.Flush()
}

func (c *command) budget(ctx context.Context, eventID string) error {
	if res := c.store.Budget.Load(ctx, eventID); !res.Success {
		return resultError("loading budget", res)
	}

	state := c.store.Budget.State()
	if state.Budget == nil {
		fmt.Fprintln(c.out, "No budget set")
		return nil
	}

	b := state.Budget
	fmt.Fprintf(c.out, "Budget %s  spent %s  remaining %s\n", money(b.TotalBudget), money(b.TotalSpent), money(b.RemainingBudget))
	fmt.Fprintf(c.out, "Paid %s  unpaid %s\n", money(c.store.Budget.PaidTotal()), money(c.store.Budget.UnpaidTotal()))
	if c.store.Budget.Exceeded() {
		fmt.Fprintln(c.out, "Warning: budget exceeded")
	}

	w := c.table()
	fmt.Fprintln(w, "ID\tCATEGORY\tAMOUNT\tPAID")
	for _, x := range state.Expenses {
		fmt.Fprintf(w, "%s\t%s\t%s\t%t\n", x.ID, x.Category, money(x.Amount), x.PaidStatus)
	}
	return w.Flush()
}

func (c *command) export(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("export needs a kind: events, guests, tasks or expenses")
	}
	kind := export.Kind(args[0])

	var body string
	switch kind {
	case export.KindEvents:
		if res := c.store.Events.Load(ctx, c.store.Session.UserID()); !res.Success {
			return resultError("loading events", res)
		}
		body = export.Events(c.store.Events.State().Events)
	case export.KindGuests, export.KindTasks, export.KindExpenses:
		if len(args) != 2 || args[1] == "" {
			return fmt.Errorf("exporting %s needs an event ID", kind)
		}
		var err error
		if body, err = c.exportEvent(ctx, kind, args[1]); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown export kind %q", kind)
	}

	now := c.now()
	path := filepath.Join(c.opts.out, export.Filename(kind, now))
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	res := c.store.Settings.MarkExported(now)
	c.store.Notifications.Report(res, "Exported "+path)
	c.flushNotifications()
	return nil
}

func (c *command) exportEvent(ctx context.Context, kind export.Kind, eventID string) (string, error) {
	switch kind {
	case export.KindGuests:
		if res := c.store.Guests.Load(ctx, eventID); !res.Success {
			return "", resultError("loading guests", res)
		}
		return export.Guests(c.store.Guests.State().Guests), nil
	case export.KindTasks:
		if res := c.store.Tasks.Load(ctx, eventID); !res.Success {
			return "", resultError("loading tasks", res)
		}
		return export.Tasks(c.store.Tasks.State().Tasks), nil
	default:
		if res := c.store.Budget.Load(ctx, eventID); !res.Success {
			return "", resultError("loading expenses", res)
		}
		return export.Expenses(c.store.Budget.State().Expenses), nil
	}
}

func (c *command) darkMode() error {
	res := c.store.Settings.ToggleDarkMode()
	if !res.Success {
		return resultError("saving preferences", res)
	}
	settings := c.store.Settings.State()
	state := "off"
	if settings.DarkMode {
		state = "on"
	}
	fmt.Fprintf(c.out, "Dark mode %s\n", state)
	if !settings.LastExport.IsZero() {
		fmt.Fprintf(c.out, "Last export: %s\n", dates.Relative(settings.LastExport, c.now()))
	}
	return nil
}

// flushNotifications prints pending notifications and dismisses them.
func (c *command) flushNotifications() {
	for _, n := range c.store.Notifications.List() {
		fmt.Fprintf(c.out, "[%s] %s\n", n.Kind, n.Message)
		c.store.Notifications.Dismiss(n.ID)
	}
}

func money(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}
