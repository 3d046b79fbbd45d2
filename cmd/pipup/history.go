package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/chis/pipup/cmd/pipup/terminal"
	"github.com/chis/pipup/internal/config"
	"github.com/chis/pipup/internal/output"
	"github.com/chis/pipup/internal/storage"
	"github.com/chis/pipup/internal/update"
)

// HistoryOptions contains options for the history command.
type HistoryOptions struct {
	JSON       bool
	Upgrades   bool
	Package    string
	Limit      int
	ConfigPath string
}

// HistoryCommand lists recorded check results or upgrade operations.
type HistoryCommand struct {
	options HistoryOptions
	stdout  io.Writer
}

// NewHistoryCommand creates a new history command.
func NewHistoryCommand() *HistoryCommand {
	return &HistoryCommand{
		options: HistoryOptions{Limit: 50, ConfigPath: config.DefaultPath()},
		stdout:  os.Stdout,
	}
}

// ParseFlags parses command-line flags for the history command.
func (c *HistoryCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("history", flag.ExitOnError)

	fs.BoolVar(&c.options.JSON, "json", false, "Output in JSON format")
	fs.BoolVar(&c.options.Upgrades, "upgrades", false, "Show the upgrade audit log instead of check history")
	fs.StringVar(&c.options.Package, "package", "", "Only show history for this package")
	fs.IntVar(&c.options.Limit, "limit", c.options.Limit, "Maximum entries to show (0 for all)")
	fs.StringVar(&c.options.ConfigPath, "config", c.options.ConfigPath, "Config file path")

	return fs.Parse(args)
}

// Run executes the history command. Unlike the check flow, a missing or
// broken database is fatal here: there is nothing else to do.
func (c *HistoryCommand) Run(ctx context.Context) error {
	cfg, err := config.Load(c.options.ConfigPath)
	if err != nil {
		return err
	}

	store, err := storage.NewSQLiteStorage(cfg.HistoryPath)
	if err != nil {
		return fmt.Errorf("opening history database: %w", err)
	}
	defer store.Close()

	if c.options.Upgrades {
		return c.showUpgrades(ctx, store)
	}
	return c.showChecks(ctx, store)
}

func (c *HistoryCommand) showChecks(ctx context.Context, store storage.Storage) error {
	var entries []storage.CheckHistoryEntry
	var err error
	if c.options.Package != "" {
		entries, err = store.GetCheckHistory(ctx, c.options.Package, c.options.Limit)
	} else {
		entries, err = store.GetAllCheckHistory(ctx, c.options.Limit)
	}
	if err != nil {
		return err
	}

	if c.options.JSON {
		return output.WriteJSONData(c.stdout, entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(c.stdout, "No check history recorded")
		return nil
	}
	for _, entry := range entries {
		fmt.Fprintf(c.stdout, "%s  %-30s %-12s -> %-12s %s%s%s\n",
			entry.CheckTime.Local().Format("2006-01-02 15:04:05"),
			entry.PackageName, entry.Installed, orDash(entry.Latest),
			statusColor(entry.Status), entry.Status, terminal.Reset())
	}
	return nil
}

func (c *HistoryCommand) showUpgrades(ctx context.Context, store storage.Storage) error {
	entries, err := store.GetUpgradeLog(ctx, c.options.Limit)
	if err != nil {
		return err
	}

	if c.options.JSON {
		return output.WriteJSONData(c.stdout, entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(c.stdout, "No upgrades recorded")
		return nil
	}
	for _, entry := range entries {
		outcome := terminal.Green() + "ok" + terminal.Reset()
		if !entry.Success {
			outcome = terminal.Red() + "failed: " + entry.Error + terminal.Reset()
		}
		fmt.Fprintf(c.stdout, "%s  %-30s %s -> %s  %s\n",
			entry.Timestamp.Local().Format("2006-01-02 15:04:05"),
			entry.PackageName, entry.FromVersion, entry.ToVersion, outcome)
	}
	return nil
}

func statusColor(status string) string {
	switch status {
	case string(update.UpdateAvailable):
		return terminal.Yellow()
	case string(update.UpToDate):
		return terminal.Green()
	case string(update.NoInformation):
		return terminal.Red()
	default:
		return terminal.Gray()
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
