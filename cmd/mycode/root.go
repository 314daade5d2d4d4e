package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hollegjx/mycode-statusline/internal/app"
	"github.com/hollegjx/mycode-statusline/internal/config"
	"github.com/hollegjx/mycode-statusline/internal/logger"
	"github.com/hollegjx/mycode-statusline/internal/render"
	"github.com/hollegjx/mycode-statusline/internal/tui"
)

// exitError carries a child's exit code out of RunE.
type exitError struct{ code int }

func (e exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

type cli struct {
	out, errOut io.Writer
	flags       config.Flags
	noColor     bool

	cfg       *config.Config
	logCloser io.Closer
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	c := &cli{out: out, errOut: errOut}

	root := &cobra.Command{
		Use:           config.AppName,
		Short:         "Patch the wrapped CLI's JavaScript bundle and launch it",
		Version:       config.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.logCloser != nil {
				c.logCloser.Close()
			}
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)
	c.flags.DefineFlags(root.PersistentFlags())
	root.PersistentFlags().BoolVar(&c.noColor, "no-color", false, "Disable colored output")

	root.AddCommand(
		c.patchCmd(),
		c.checkCmd(),
		c.restoreCmd(),
		c.reviewCmd(),
		c.watchCmd(),
		c.runCmd(),
	)
	return root
}

func (c *cli) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(*c.flags.ConfigFilePath, &c.flags, cmd.Flags())
	if err != nil {
		return err
	}
	c.cfg = cfg

	// The wrapped CLI owns the terminal, so its logs go to a file.
	if cmd.Name() == "run" && cfg.Logger.LogFilePath == "" {
		cfg.Logger.LogFilePath = filepath.Join(os.TempDir(), config.DefaultLogFileName)
	}
	closer, err := logger.Init(cfg.Logger, nil)
	if err != nil {
		return err
	}
	c.logCloser = closer
	for _, w := range cfg.Warnings() {
		logger.Warnf("Config: %s", w)
	}
	logger.Debugf("Starting %s %s (%s)", config.AppName, config.Version, cmd.Name())
	return nil
}

func (c *cli) newApp() *app.App {
	mode := render.ColorAuto
	if c.noColor {
		mode = render.ColorNever
	}
	return app.New(c.cfg, c.out, mode)
}

func (c *cli) patchCmd() *cobra.Command {
	var opts app.PatchOptions
	cmd := &cobra.Command{
		Use:   "patch <bundle.js>",
		Short: "Apply the configured patches and save the bundle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := c.newApp()
			defer a.Close()
			_, err := a.Patch(args[0], opts)
			return err
		},
	}
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Report what would change without writing")
	cmd.Flags().BoolVar(&opts.ShowDiff, "diff", false, "Print the context around each splice")
	cmd.Flags().StringVar(&opts.ReportPath, "report", "", "Write a YAML session report to this file")
	cmd.Flags().StringVar(&opts.DiffPath, "diff-out", "", "Write a review diff of all splices to this file (byte-window hunks, not appliable with patch(1))")
	return cmd
}

func (c *cli) checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <bundle.js>",
		Short: "Show which patches are applied, would apply, or would fail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := c.newApp()
			defer a.Close()
			_, err := a.Check(args[0])
			return err
		},
	}
}

func (c *cli) restoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore <bundle.js>",
		Short: "Copy the backup made before the first patch back over the bundle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := c.newApp()
			defer a.Close()
			return a.Restore(args[0])
		},
	}
}

func (c *cli) reviewCmd() *cobra.Command {
	var noClipboard bool
	cmd := &cobra.Command{
		Use:   "review <bundle.js>",
		Short: "Review each patch in a terminal UI before saving",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ui, err := tui.New()
			if err != nil {
				return err
			}
			var copier tui.Copier = tui.SystemClipboard{}
			if noClipboard {
				copier = nil
			}
			a := c.newApp()
			defer a.Close()
			_, _, err = a.Review(args[0], ui, copier)
			return err
		},
	}
	cmd.Flags().BoolVar(&noClipboard, "no-clipboard", false, "Disable copying diffs to the clipboard")
	return cmd
}

func (c *cli) watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch <bundle.js>",
		Short: "Patch the bundle and re-patch whenever it is rewritten",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			a := c.newApp()
			defer a.Close()
			return a.Watch(ctx, args[0])
		},
	}
}

func (c *cli) runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run [-- args...]",
		Short: "Patch the wrapped CLI's bundle, then launch it with args",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := c.newApp()
			defer a.Close()
			code, err := a.Run(cmd.Context(), args)
			if err != nil {
				return err
			}
			if code != 0 {
				return exitError{code}
			}
			return nil
		},
	}
}

// execute runs the CLI and returns the process exit code.
func execute(args []string) int {
	return run(context.Background(), args, os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, out, errOut io.Writer) int {
	root := newRootCmd(out, errOut)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	var exitErr exitError
	if errors.As(err, &exitErr) {
		return exitErr.code
	}
	fmt.Fprintf(errOut, "%s: %v\n", config.AppName, err)
	return 1
}
