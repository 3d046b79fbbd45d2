package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/chis/pipup/cmd/pipup/terminal"
	"github.com/chis/pipup/internal/bootstrap"
	"github.com/chis/pipup/internal/config"
	"github.com/chis/pipup/internal/logging"
	"github.com/chis/pipup/internal/output"
	"github.com/chis/pipup/internal/update"
)

// checkTimeout bounds one full check/upgrade pass, installs included.
const checkTimeout = 10 * time.Minute

// CheckOptions contains options for the check command.
type CheckOptions struct {
	Verbose     bool
	Raw         bool
	Interactive bool
	Auto        bool
	Editables   bool
	LocalOnly   bool
	JSON        bool
	NoHistory   bool
	ConfigPath  string
	IndexURL    string
}

// CheckCommand implements the default check flow: list installed
// packages, look up the latest version of each, then report or install.
type CheckCommand struct {
	options CheckOptions

	stdin  io.Reader
	stdout io.Writer
}

// NewCheckCommand creates a new check command.
func NewCheckCommand() *CheckCommand {
	return &CheckCommand{
		options: CheckOptions{ConfigPath: config.DefaultPath()},
		stdin:   os.Stdin,
		stdout:  os.Stdout,
	}
}

// ParseFlags parses command-line flags for the check command. Mode
// conflicts are rejected here, before any network or subprocess work.
func (c *CheckCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("check", flag.ExitOnError)

	fs.BoolVar(&c.options.Verbose, "verbose", false, "Show debug output")
	fs.BoolVar(&c.options.Verbose, "v", false, "Shorthand for --verbose")
	fs.BoolVar(&c.options.Raw, "raw", false, "Print only name==version lines for available upgrades")
	fs.BoolVar(&c.options.Raw, "r", false, "Shorthand for --raw")
	fs.BoolVar(&c.options.Interactive, "interactive", false, "Ask for confirmation before each upgrade")
	fs.BoolVar(&c.options.Interactive, "i", false, "Shorthand for --interactive")
	fs.BoolVar(&c.options.Auto, "auto", false, "Install every available upgrade without asking")
	fs.BoolVar(&c.options.Auto, "a", false, "Shorthand for --auto")
	fs.BoolVar(&c.options.Editables, "editables", false, "Include editable installs in index lookups")
	fs.BoolVar(&c.options.Editables, "e", false, "Shorthand for --editables")
	fs.BoolVar(&c.options.LocalOnly, "local", false, "Restrict to packages local to the active environment")
	fs.BoolVar(&c.options.LocalOnly, "l", false, "Shorthand for --local")
	fs.BoolVar(&c.options.JSON, "json", false, "Output in JSON format")
	fs.BoolVar(&c.options.NoHistory, "no-history", false, "Do not record this run in the history database")
	fs.StringVar(&c.options.ConfigPath, "config", c.options.ConfigPath, "Config file path")
	fs.StringVar(&c.options.IndexURL, "index", "", "Package index JSON API base URL (overrides config)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if c.options.Raw && c.options.Interactive {
		return update.ErrConflictingModes
	}
	return nil
}

// Run executes the check command.
func (c *CheckCommand) Run(ctx context.Context) error {
	if c.options.Verbose {
		logging.SetLevel(logging.LevelDebug)
	}

	// Auto-installing editables can pull in upgrades for packages that
	// were deliberately left on a development checkout. Require an
	// explicit go-ahead before touching anything.
	if c.options.Auto && c.options.Editables {
		question := "Automatic mode will also install upgrades over editable installs. Continue?"
		if !update.Confirm(c.stdin, c.stdout, question) {
			return update.ErrConfirmationDeclined
		}
	}

	cfg, err := config.Load(c.options.ConfigPath)
	if err != nil {
		return err
	}
	if c.options.IndexURL != "" {
		cfg.IndexURL = c.options.IndexURL
	}

	deps, cleanup := bootstrap.InitializeServices(bootstrap.InitOptions{
		Config:         cfg,
		DisableHistory: c.options.NoHistory,
	})
	defer cleanup()

	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	checker := update.NewChecker(deps.Pip, deps.Index)
	if deps.Storage != nil {
		checker.SetStorage(deps.Storage, deps.RunID)
	}

	result, err := checker.Check(ctx, update.CheckOptions{
		LocalOnly:        c.options.LocalOnly,
		IncludeEditables: c.options.Editables,
		Exclude:          cfg.Exclude,
	})
	if err != nil {
		return err
	}

	if !c.options.JSON {
		c.report(result)
	}

	var applyResult *update.ApplyResult
	var applyErr error
	if c.options.Interactive || c.options.Auto {
		var prompter *update.Prompter
		if c.options.Interactive {
			prompter = update.NewPrompter(c.stdin, c.stdout)
		}

		applier := update.NewApplier(deps.Pip, prompter)
		if deps.Storage != nil {
			applier.SetStorage(deps.Storage, deps.RunID)
		}
		applyResult, applyErr = applier.Apply(ctx, result.Updates())
	}

	if c.options.JSON {
		data := struct {
			Check *update.CheckResult `json:"check"`
			Apply *update.ApplyResult `json:"apply,omitempty"`
		}{result, applyResult}
		if err := output.WriteJSONData(c.stdout, data); err != nil {
			return err
		}
	}

	return applyErr
}

// report renders the reconciliation outcome. Raw mode emits only the
// machine-consumable upgrade lines; everything narrative is suppressed.
func (c *CheckCommand) report(result *update.CheckResult) {
	if c.options.Raw {
		for _, upd := range result.Updates() {
			fmt.Fprintf(c.stdout, "%s==%s\n", upd.Name, upd.Latest)
		}
		return
	}

	for _, upd := range result.Packages {
		switch upd.Status {
		case update.UpdateAvailable:
			line := fmt.Sprintf("%s==%s is available (you have %s)", upd.Name, upd.Latest, upd.Installed)
			if upd.Change != "" {
				line += fmt.Sprintf(" [%s]", upd.Change)
			}
			fmt.Fprintf(c.stdout, "%s%s%s\n", terminal.Yellow(), line, terminal.Reset())
		case update.NoInformation:
			logging.Warn("no information found for %s", upd.Name)
		case update.SkippedEditable:
			logging.Debug("skipping editable install %s (run with --editables to include it)", upd.Name)
		}
	}

	if result.AllResolved && result.UpdatesFound == 0 {
		fmt.Fprintf(c.stdout, "%sEverything up-to-date%s\n", terminal.Green(), terminal.Reset())
	}
}
