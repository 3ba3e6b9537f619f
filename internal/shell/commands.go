package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/app"
	domainagg "github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/domain/aggregates"
)

// errReported marks a failure that was already printed as "[Kind] message".
var errReported = errors.New("command failed")

type cli struct {
	opts   app.Options
	plain  bool
	app    *app.App
	newApp func(app.Options) (*app.App, error)
}

// NewRootCommand builds the command tree. newApp is app.New outside tests.
func NewRootCommand(newApp func(app.Options) (*app.App, error)) *cobra.Command {
	root, _ := newRoot(newApp)
	return root
}

func newRoot(newApp func(app.Options) (*app.App, error)) (*cobra.Command, *cli) {
	c := &cli{newApp: newApp}
	root := &cobra.Command{
		Use:   "gestion-commandes",
		Short: "Order management for customers, products, orders and payments",
		Long: `gestion-commandes manages customers, products, purchase orders and payments
over a relational store (sqlite, mysql or postgres).

Without a subcommand it starts the interactive menus.`,
		Version:           app.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.open,
		RunE:              c.runShell,
	}
	root.PersistentFlags().StringVar(&c.opts.ConfigPath, "config", "", "Path to the YAML config file (default config.yaml when present)")
	root.PersistentFlags().BoolVar(&c.plain, "plain", false, "Use numbered line prompts instead of the interactive UI")
	root.PersistentFlags().BoolVarP(&c.opts.Verbose, "verbose", "v", false, "Debug logging, mirrored to stderr")

	root.AddCommand(
		&cobra.Command{
			Use:   "shell",
			Short: "Start the interactive menus",
			Args:  cobra.NoArgs,
			RunE:  c.runShell,
		},
		c.customersCmd(),
		c.productsCmd(),
		c.ordersCmd(),
		c.paymentsCmd(),
		c.migrateCmd(),
		c.statsCmd(),
	)
	return root, c
}

// Execute runs the CLI and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	root, c := newRoot(app.New)
	err := root.ExecuteContext(ctx)
	c.close()
	stop()
	if err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func (c *cli) open(cmd *cobra.Command, _ []string) error {
	a, err := c.newApp(c.opts)
	if err != nil {
		return err
	}
	c.app = a
	return nil
}

// close releases the app. Safe to call when open never ran.
func (c *cli) close() {
	c.app.Close()
	c.app = nil
}

func (c *cli) printer(cmd *cobra.Command) *Printer {
	return NewPrinter(cmd.OutOrStdout())
}

// report prints component errors in the shell format.
func (c *cli) report(cmd *cobra.Command, err error) error {
	if err == nil {
		return nil
	}
	if domainagg.CodeOf(err) == "" {
		return err
	}
	c.printer(cmd).Fail(err)
	return errReported
}

func (c *cli) runShell(cmd *cobra.Command, _ []string) error {
	out := c.printer(cmd)
	prompt := c.prompter(cmd.InOrStdin(), cmd.OutOrStdout(), out)
	c.app.Log.Info("Interactive session started")
	return NewSession(c.app.Aggregates, c.app.Metrics, prompt, out).Run(cmd.Context())
}

func (c *cli) prompter(in io.Reader, w io.Writer, out *Printer) Prompter {
	if !c.plain && isTerminal(in) && isTerminal(w) {
		return NewTUIPrompter(in, w)
	}
	return NewLinePrompter(in, out)
}

func isTerminal(v interface{}) bool {
	f, ok := v.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (c *cli) migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.app.Migrate(); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			c.printer(cmd).Success("Schema is up to date (%s).", c.app.Cfg.Store.Driver)
			return nil
		},
	}
}
