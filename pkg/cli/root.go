/*
Copyright © 2025 The marchexec authors
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/urfave/cli/v3"

	"github.com/machlab/marchexec/pkg/bootparam"
	"github.com/machlab/marchexec/pkg/config"
	"github.com/machlab/marchexec/pkg/launch"
	"github.com/machlab/marchexec/pkg/logging"
	"github.com/machlab/marchexec/pkg/march"
	"github.com/machlab/marchexec/pkg/serializer"
	"github.com/machlab/marchexec/pkg/version"
)

const appName = "marchexec"

// New builds the marchexec root command. Each command carries its own
// verbosity counter, so running several commands in one process cannot
// leak repeated -v flags between them.
func New() *cli.Command {
	var verboseCount int
	return &cli.Command{
		Name:      appName,
		Usage:     "run a machine-optimised alternative of a program",
		UsageText: "marchexec [-Vvs] [-l logfile] [-m march] [--dry-run] prog [args...]",
		Description: `Utility program for the execution of machine-optimised alternatives.

The general choice is done via the kernel command line: march={v2,v3,v4}.
If the parent directory of prog exists with a march suffix, and contains
an executable with the same name, that one is executed instead of prog:

  marchexec prog          /usr/bin/prog -> /usr/bin-v3/prog (march=v3 booted)
  marchexec -m v2 prog    force the v2 variant lookup
  marchexec --dry-run prog  report the decision instead of executing

Flag parsing stops at prog; everything after it belongs to prog itself.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "march",
				Aliases: []string{"m"},
				Usage:   "select a specific march (e.g. v2, v3, v4)",
			},
			&cli.StringFlag{
				Name:    "logfile",
				Aliases: []string{"l"},
				Usage:   "log to this file instead of stderr",
			},
			&cli.BoolFlag{
				Name:    "syslog",
				Aliases: []string{"s"},
				Usage:   "log errors to the systemd journal as well",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "verbose mode (cumulative)",
				Config:  cli.BoolConfig{Count: &verboseCount},
			},
			&cli.BoolFlag{
				Name:    "version",
				Aliases: []string{"V"},
				Usage:   "print version and exit",
			},
			&cli.StringFlag{
				Name:  "config",
				Value: config.DefaultPath,
				Usage: "defaults file path",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "report the resolution decision instead of executing",
			},
			&cli.StringFlag{
				Name:  "format",
				Value: "yaml",
				Usage: "dry-run output format (yaml, json, table)",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "dry-run output file path (default: stdout)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return run(ctx, cmd, verboseCount)
		},
	}
}

func run(ctx context.Context, cmd *cli.Command, verbosity int) error {
	if cmd.Bool("version") {
		fmt.Fprintln(cmd.Writer, version.String())
		return nil
	}

	cfg, err := config.Load(cmd.String("config"), cmd.IsSet("config"))
	if err != nil {
		return err
	}

	logfile := cmd.String("logfile")
	if logfile == "" {
		logfile = cfg.Logfile
	}
	if verbosity == 0 {
		verbosity = cfg.Verbosity
	}

	if _, err := logging.Setup(logging.Options{
		Name:      appName,
		Verbosity: verbosity,
		Logfile:   logfile,
		Syslog:    cmd.Bool("syslog") || cfg.Syslog,
	}); err != nil {
		return err
	}

	args := cmd.Args().Slice()
	if len(args) == 0 {
		return fmt.Errorf("missing program to execute, see '%s --help'", appName)
	}

	// The selector must complete before the launcher starts: the tag
	// decides which path is ultimately exec'd.
	sel := march.Select(cmd.String("march"), cfg.March, &bootparam.Source{Path: cfg.Cmdline})
	if sel.Tag != "" {
		slog.Debug("march selected", "march", sel.Tag, "origin", sel.Origin)
	}

	launcher := launch.New(
		launch.WithMarch(sel.Tag),
		launch.WithMarchFrom(string(sel.Origin)),
	)

	if cmd.Bool("dry-run") {
		return dryRun(ctx, cmd, launcher, args[0])
	}

	// From here to the exec the process is replaceable but still ours;
	// an interrupt inside this window gets its own exit status.
	intc := make(chan os.Signal, 1)
	signal.Notify(intc, os.Interrupt)
	defer signal.Stop(intc)

	return launchWithInterrupt(func() error { return launcher.Run(args) }, intc)
}

// launchWithInterrupt runs fn and maps an interrupt delivered during the
// launch window to the dedicated interrupt exit status. A successful fn
// never returns at all: the process image has been replaced.
func launchWithInterrupt(fn func() error, sigc <-chan os.Signal) error {
	done := make(chan error, 1)
	go func() { done <- fn() }()

	select {
	case err := <-done:
		return err
	case <-sigc:
		return &launch.ExitError{
			Code: launch.ExitInterrupted,
			Err:  fmt.Errorf("interrupted"),
		}
	}
}

func dryRun(ctx context.Context, cmd *cli.Command, launcher *launch.Launcher, token string) error {
	outFormat := serializer.Format(cmd.String("format"))
	if outFormat.IsUnknown() {
		return fmt.Errorf("unknown output format: %q, valid formats are: yaml, json, table", outFormat)
	}

	w := serializer.NewWriter(outFormat, cmd.Writer)
	if path := cmd.String("output"); path != "" && path != serializer.StdoutURI {
		w = serializer.NewFileWriterOrStdout(outFormat, path)
	}

	d := launcher.Decide(token)
	if err := w.Serialize(ctx, d); err != nil {
		return err
	}

	if d.Resolved == "" {
		return &launch.ExitError{
			Code: launch.ExitNotFound,
			Err:  fmt.Errorf("%w: %s", launch.ErrNotFound, token),
		}
	}
	return nil
}
