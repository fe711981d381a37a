// planner is a terminal client for the event planner. It signs in against
// the gateway API, loads the requested slice of the store and prints it.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/pflag"

	"eventplanner/internal/config"
	"eventplanner/internal/gateway"
	"eventplanner/internal/logger"
	"eventplanner/internal/store"
)

const usage = `Usage: planner [flags] <command> [args]

Commands:
  events                              list your events
  guests <eventID>                    list the guests of an event
  tasks <eventID>                     list the tasks of an event
  budget <eventID>                    show the budget and expenses of an event
  export <events|guests|tasks|expenses> [eventID]
                                      write a CSV export to --out
  dark-mode                           toggle the dark mode preference

Flags:
`

// options are the parsed command-line flags.
type options struct {
	api      string
	prefs    string
	email    string
	password string
	out      string
	search   string
	typ      string
}

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	cfg := config.Get()

	var opts options
	flagSet := pflag.NewFlagSet("planner", pflag.ContinueOnError)
	flagSet.StringVar(&opts.api, "api", cfg.APIURL, "gateway API base URL")
	flagSet.StringVar(&opts.prefs, "prefs", cfg.PrefsPath, "preferences file")
	flagSet.StringVar(&opts.email, "email", os.Getenv("PLANNER_EMAIL"), "account email")
	flagSet.StringVar(&opts.password, "password", os.Getenv("PLANNER_PASSWORD"), "account password")
	flagSet.StringVarP(&opts.out, "out", "o", ".", "directory for export files")
	flagSet.StringVar(&opts.search, "search", "", "only events whose name contains this text")
	flagSet.StringVar(&opts.typ, "type", store.FilterAll, "only events of this type")
	flagSet.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flagSet.PrintDefaults()
	}

	if err := flagSet.Parse(args); err != nil {
		return err
	}
	rest := flagSet.Args()
	if len(rest) == 0 {
		flagSet.Usage()
		return errors.New("missing command")
	}

	gw := gateway.NewHTTPGateway(opts.api, &http.Client{Timeout: 15 * time.Second})
	st := store.New(gw, gw, store.NewFilePreferences(opts.prefs), store.WithNotificationTTL(cfg.NotificationTTL))
	defer st.Close()

	if res := st.Start(); !res.Success {
		return resultError("loading preferences", res)
	}

	cmd := &command{store: st, opts: opts, out: stdout, now: time.Now}
	name, cmdArgs := rest[0], rest[1:]

	if name == "dark-mode" {
		return cmd.darkMode()
	}
	if err := cmd.login(ctx); err != nil {
		return err
	}

	switch name {
	case "events":
		return cmd.events(ctx)
	case "guests":
		return cmd.withEvent(cmdArgs, func(eventID string) error { return cmd.guests(ctx, eventID) })
	case "tasks":
		return cmd.withEvent(cmdArgs, func(eventID string) error { return cmd.tasks(ctx, eventID) })
	case "budget":
		return cmd.withEvent(cmdArgs, func(eventID string) error { return cmd.budget(ctx, eventID) })
	case "export":
		return cmd.export(ctx, cmdArgs)
	default:
		return fmt.Errorf("unknown command %q", name)
	}
}

// resultError turns a failed intent into an error for the exit path.
func resultError(op string, res store.Result) error {
	if res.Code != "" {
		return fmt.Errorf("%s: %s (%s)", op, res.Error, res.Code)
	}
	return fmt.Errorf("%s: %s", op, res.Error)
}
