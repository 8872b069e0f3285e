package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"punch/punchcard"
	"punch/view"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	app := &cli.App{
		Name:    "punch",
		Usage:   "Lightweight time-tracking utility.",
		Version: "0.2.0",
		Flags: []cli.Flag{
			dirFlag,
			sheetFlag,
			storeFlag,
			formatFlag,
		},
		Commands: []*cli.Command{
			inCommand,
			outCommand,
			statusCommand,
			countCommand,
			reportCommand,
			viewCommand,
		},
	}
	return app.Run(os.Args)
}

var (
	dirFlag = &cli.StringFlag{
		Name:    "dir",
		Usage:   "data directory holding sheets and logs (default ~/.punch)",
		EnvVars: []string{"PUNCH_DIR"},
	}
	sheetFlag = &cli.StringFlag{
		Name:    "sheet",
		Aliases: []string{"s"},
		Value:   "default",
		Usage:   "name of the sheet to punch on",
		EnvVars: []string{"PUNCH_SHEET"},
	}
	storeFlag = &cli.StringFlag{
		Name:    "store",
		Value:   "file",
		Usage:   "storage backend, file or bunt",
		EnvVars: []string{"PUNCH_STORE"},
	}
	formatFlag = &cli.StringFlag{
		Name:    "format",
		Value:   "json",
		Usage:   "sheet format, json or text",
		EnvVars: []string{"PUNCH_FORMAT"},
	}

	atFlag = &cli.StringFlag{
		Name:  "at",
		Usage: "record the punch at this time instead of now",
	}
	fromFlag = &cli.StringFlag{
		Name:  "from",
		Usage: "count from this time",
	}
	toFlag = &cli.StringFlag{
		Name:  "to",
		Usage: "count up to this time",
	}
)

var inCommand = &cli.Command{
	Name:  "in",
	Usage: "start tracking time",
	Flags: []cli.Flag{atFlag},
	Action: func(c *cli.Context) error {
		tracker, closeStore, err := openTracker(c)
		if err != nil {
			return err
		}
		defer closeStore()

		now := punchcard.Now()
		at, err := punchcard.ParseStamp(c.String("at"), now)
		if err != nil {
			return err
		}

		start, err := tracker.PunchIn(c.String("sheet"), at)
		if err != nil {
			return err
		}
		fmt.Printf("Punched in at %s.\n", punchcard.Stamp(start, now))
		return nil
	},
}

var outCommand = &cli.Command{
	Name:  "out",
	Usage: "stop tracking time",
	Flags: []cli.Flag{atFlag},
	Action: func(c *cli.Context) error {
		tracker, closeStore, err := openTracker(c)
		if err != nil {
			return err
		}
		defer closeStore()

		now := punchcard.Now()
		at, err := punchcard.ParseStamp(c.String("at"), now)
		if err != nil {
			return err
		}

		closed, err := tracker.PunchOut(c.String("sheet"), at)
		if err != nil {
			return err
		}
		fmt.Printf("Punched out at %s (tracked %s).\n",
			punchcard.Stamp(*closed.End, now),
			punchcard.FormatDuration(closed.End.Sub(closed.Start)))
		return nil
	},
}

var statusCommand = &cli.Command{
	Name:  "status",
	Usage: "report the tracking state",
	Action: func(c *cli.Context) error {
		tracker, closeStore, err := openTracker(c)
		if err != nil {
			return err
		}
		defer closeStore()

		status, err := tracker.Status(c.String("sheet"))
		if err != nil {
			return err
		}

		now := punchcard.Now()
		switch status.State {
		case punchcard.StateTracking:
			fmt.Printf("Tracking time since %s.\n", punchcard.Stamp(status.At, now))
		case punchcard.StateIdle:
			fmt.Printf("Not tracking time (last punched out at %s).\n", punchcard.Stamp(status.At, now))
		default:
			fmt.Println("Not tracking time; no punches recorded.")
		}
		return nil
	},
}

var countCommand = &cli.Command{
	Name:      "count",
	Usage:     "total the time worked in a period",
	ArgsUsage: "[period]",
	Flags:     []cli.Flag{fromFlag, toFlag},
	Action: func(c *cli.Context) error {
		tracker, closeStore, err := openTracker(c)
		if err != nil {
			return err
		}
		defer closeStore()

		now := punchcard.Now()
		window, label, err := resolveWindow(c.Args().First(), c.String("from"), c.String("to"), now)
		if err != nil {
			return err
		}

		total, err := tracker.Count(c.String("sheet"), window.From, window.To, now)
		if err != nil {
			return err
		}

		if total == 0 {
			fmt.Printf("Time worked %s: none.\n", label)
			return nil
		}
		fmt.Printf("Time worked %s: %s.\n", label, punchcard.FormatDuration(total))
		return nil
	},
}

var reportCommand = &cli.Command{
	Name:      "report",
	Usage:     "print one month of punches as a table",
	ArgsUsage: "[month]",
	Action: func(c *cli.Context) error {
		tracker, closeStore, err := openTracker(c)
		if err != nil {
			return err
		}
		defer closeStore()

		repo := view.NewRepository(tracker, c.String("sheet"))
		return view.NewTableViewer(repo, os.Stdout).Do(c.Args().First())
	},
}

var viewCommand = &cli.Command{
	Name:      "view",
	Usage:     "browse punches month by month",
	ArgsUsage: "[month]",
	Action: func(c *cli.Context) error {
		tracker, closeStore, err := openTracker(c)
		if err != nil {
			return err
		}
		defer closeStore()

		repo := view.NewRepository(tracker, c.String("sheet"))
		return view.NewTUI(repo).Do(c.Args().First())
	},
}

// resolveWindow turns the count arguments into a concrete query window and
// the label used when printing the total.
func resolveWindow(periodArg, fromStr, toStr string, now time.Time) (punchcard.Window, string, error) {
	if periodArg != "" && (fromStr != "" || toStr != "") {
		return punchcard.Window{}, "", errors.New("cannot combine a named period with --from/--to")
	}

	if fromStr != "" || toStr != "" {
		var window punchcard.Window
		var err error
		if fromStr != "" {
			window.From, err = punchcard.ParseStamp(fromStr, now)
			if err != nil {
				return punchcard.Window{}, "", err
			}
		}
		if toStr == "" {
			window.To = now
		} else {
			window.To, err = punchcard.ParseStamp(toStr, now)
			if err != nil {
				return punchcard.Window{}, "", err
			}
		}
		switch {
		case fromStr == "":
			return window, fmt.Sprintf("until %s", punchcard.Stamp(window.To, now)), nil
		case toStr == "":
			return window, fmt.Sprintf("since %s", punchcard.Stamp(window.From, now)), nil
		default:
			return window, fmt.Sprintf("between %s and %s",
				punchcard.Stamp(window.From, now), punchcard.Stamp(window.To, now)), nil
		}
	}

	if periodArg == "" {
		periodArg = "today"
	}
	r, err := punchcard.ParseRange(periodArg)
	if err != nil {
		return punchcard.Window{}, "", err
	}
	return r.Window(now), strings.ToLower(r.String()), nil
}

func openTracker(c *cli.Context) (*punchcard.Tracker, func(), error) {
	dir, err := dataDir(c)
	if err != nil {
		return nil, nil, err
	}
	logger, err := newLogger(dir)
	if err != nil {
		return nil, nil, err
	}
	store, err := openStore(c.String("store"), dir)
	if err != nil {
		return nil, nil, err
	}
	codec, err := punchcard.CodecFor(c.String("format"))
	if err != nil {
		store.Close()
		return nil, nil, err
	}

	tracker := punchcard.NewTracker(store, codec, logger)
	return tracker, func() {
		if err := store.Close(); err != nil {
			logger.Error("closing store", slog.Any("error", err))
		}
	}, nil
}

func openStore(kind, dir string) (punchcard.Store, error) {
	switch kind {
	case "file":
		return punchcard.NewFileStore(dir), nil
	case "bunt":
		return punchcard.OpenBuntStore(filepath.Join(dir, "punch.db"))
	default:
		return nil, fmt.Errorf("unknown store backend %q", kind)
	}
}

func newLogger(dir string) (*slog.Logger, error) {
	logFile, err := os.OpenFile(filepath.Join(dir, "punch.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, err
	}

	return slog.New(
		slog.NewJSONHandler(logFile, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}),
	), nil
}

func dataDir(c *cli.Context) (string, error) {
	dir := c.String("dir")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(home, ".punch")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}
