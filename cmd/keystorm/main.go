// Command keystorm is the entry point for the editor core: it loads
// configuration, opens a terminal device, builds an initial single-pane
// frame, places the requested files into it, and runs the session's
// dispatch loop until quit.
//
// Grounded on internal/app/bootstrap.go's flag-to-application wiring
// from the teacher, rewritten onto github.com/spf13/cobra (the pack's
// CLI library, carried from the AleutianLocal example per
// SPEC_FULL.md §A) since the keybinding table and full CLI option
// surface spec §1 scopes out of this module leave only a thin command
// surface to expose: the config path, the snapshot path, and the files
// to open.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/keystorm/keystorm/internal/alignment"
	"github.com/keystorm/keystorm/internal/applog"
	"github.com/keystorm/keystorm/internal/config"
	"github.com/keystorm/keystorm/internal/device"
	"github.com/keystorm/keystorm/internal/device/backend"
	"github.com/keystorm/keystorm/internal/frame"
	"github.com/keystorm/keystorm/internal/reform"
	"github.com/keystorm/keystorm/internal/session"
)

var (
	version = "dev"
	commit  = "unknown"
)

var (
	flagConfigPath   string
	flagSnapshotPath string
	flagLogLevel     string
)

func main() {
	os.Exit(run())
}

func run() int {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "keystorm: %v\n", err)
		return 1
	}
	return 0
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "keystorm [files...]",
		Short:   "a modal, multi-pane, terminal-based syntax editor",
		Version: fmt.Sprintf("%s (%s)", version, commit),
		RunE: func(_ *cobra.Command, args []string) error {
			return runEditor(args)
		},
	}
	cmd.Flags().StringVarP(&flagConfigPath, "config", "c", "", "path to configuration file")
	cmd.Flags().StringVarP(&flagSnapshotPath, "snapshot", "s", "", "session snapshot file to restore or save")
	cmd.Flags().StringVar(&flagLogLevel, "log-level", "info", "log level (debug, info, warn, error)")
	return cmd
}

func runEditor(files []string) error {
	cfg := config.Default()
	log := applog.New(os.Stderr, levelFromName(flagLogLevel), "keystorm")

	if flagConfigPath != "" {
		loaded, err := config.Load(flagConfigPath)
		if err != nil {
			log.Errorf("falling back to default configuration: path=%s error=%v", flagConfigPath, err)
		} else {
			cfg = loaded
		}
	}

	term, err := backend.NewTerminal()
	if err != nil {
		return fmt.Errorf("create terminal: %w", err)
	}
	if err := term.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer term.Shutdown()

	dev := device.NewAdapter(term)
	sess := session.New(dev, log)

	width, height := term.Size()
	area := alignment.Area{TopOffset: 0, LeftOffset: 0, Lines: height, Span: width}
	frameIdx := sess.NewFrame(area, []frame.LayoutEntry{{Divisions: 1}})

	rf := reform.Default()
	rf.CtlSize = cfg.CtlSize
	rf.TabSize = cfg.TabSize

	if len(files) == 0 {
		files = []string{"/dev/null"}
	}
	for i, path := range files {
		if i > 0 {
			break // the bootstrap frame has a single division; further files are opened but not yet placed
		}
		if err := sess.Place(frameIdx, 0, 0, path, rf); err != nil {
			return fmt.Errorf("open %s: %w", path, err)
		}
	}
	for _, path := range files[1:] {
		if _, err := sess.Open(path, rf); err != nil {
			log.Errorf("failed to open file: path=%s error=%v", path, err)
		}
	}

	return sess.Run()
}

func levelFromName(name string) applog.Level {
	switch name {
	case "debug":
		return applog.Debug
	case "warn":
		return applog.Warn
	case "error":
		return applog.Error
	default:
		return applog.Info
	}
}
