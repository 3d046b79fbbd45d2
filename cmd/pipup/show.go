package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	packageurl "github.com/package-url/packageurl-go"

	"github.com/chis/pipup/internal/bootstrap"
	"github.com/chis/pipup/internal/config"
	"github.com/chis/pipup/internal/output"
	"github.com/chis/pipup/internal/registry"
)

// showTimeout bounds the single direct lookup.
const showTimeout = 60 * time.Second

// ShowOptions contains options for the show command.
type ShowOptions struct {
	JSON       bool
	ConfigPath string
	IndexURL   string
	Package    string
}

// ShowCommand looks up one package directly on the index. Unlike the
// batch loop this is the raising path: any failure becomes the exit
// code instead of collapsing to "no information".
type ShowCommand struct {
	options ShowOptions
	stdout  io.Writer
}

// showResult is what the command prints, with the package URL for
// consumers that key on purls.
type showResult struct {
	Name     string `json:"name"`
	Latest   string `json:"latest"`
	Summary  string `json:"summary,omitempty"`
	Homepage string `json:"homepage,omitempty"`
	License  string `json:"license,omitempty"`
	PURL     string `json:"purl"`
}

// NewShowCommand creates a new show command.
func NewShowCommand() *ShowCommand {
	return &ShowCommand{
		options: ShowOptions{ConfigPath: config.DefaultPath()},
		stdout:  os.Stdout,
	}
}

// ParseFlags parses command-line flags for the show command.
func (c *ShowCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("show", flag.ExitOnError)

	fs.BoolVar(&c.options.JSON, "json", false, "Output in JSON format")
	fs.StringVar(&c.options.ConfigPath, "config", c.options.ConfigPath, "Config file path")
	fs.StringVar(&c.options.IndexURL, "index", "", "Package index JSON API base URL (overrides config)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() != 1 {
		return fmt.Errorf("show expects exactly one package name or purl argument")
	}

	name, err := resolvePackageArg(fs.Arg(0))
	if err != nil {
		return err
	}
	c.options.Package = name
	return nil
}

// resolvePackageArg accepts either a plain distribution name or a
// pkg:pypi/<name> package URL.
func resolvePackageArg(arg string) (string, error) {
	if !strings.HasPrefix(arg, "pkg:") {
		return arg, nil
	}

	purl, err := packageurl.FromString(arg)
	if err != nil {
		return "", fmt.Errorf("parsing package URL %q: %w", arg, err)
	}
	if purl.Type != packageurl.TypePyPi {
		return "", fmt.Errorf("unsupported package URL type %q (only pkg:pypi is supported)", purl.Type)
	}
	return purl.Name, nil
}

// Run executes the show command.
func (c *ShowCommand) Run(ctx context.Context) error {
	cfg, err := config.Load(c.options.ConfigPath)
	if err != nil {
		return err
	}
	if c.options.IndexURL != "" {
		cfg.IndexURL = c.options.IndexURL
	}

	deps, cleanup := bootstrap.InitializeServices(bootstrap.InitOptions{
		Config:         cfg,
		DisableHistory: true, // direct lookups are not history events
	})
	defer cleanup()

	ctx, cancel := context.WithTimeout(ctx, showTimeout)
	defer cancel()

	pkg, err := deps.Index.FetchPackage(ctx, c.options.Package)
	if err != nil {
		return err
	}

	result := showResult{
		Name:     pkg.Name,
		Latest:   pkg.Latest.Canonical(),
		Summary:  pkg.Summary,
		Homepage: pkg.Homepage,
		License:  pkg.License,
		PURL:     pypiPURL(pkg),
	}

	if c.options.JSON {
		return output.WriteJSONData(c.stdout, result)
	}

	fmt.Fprintf(c.stdout, "Name:     %s\n", result.Name)
	fmt.Fprintf(c.stdout, "Latest:   %s\n", result.Latest)
	if result.Summary != "" {
		fmt.Fprintf(c.stdout, "Summary:  %s\n", result.Summary)
	}
	if result.Homepage != "" {
		fmt.Fprintf(c.stdout, "Homepage: %s\n", result.Homepage)
	}
	if result.License != "" {
		fmt.Fprintf(c.stdout, "License:  %s\n", result.License)
	}
	fmt.Fprintf(c.stdout, "PURL:     %s\n", result.PURL)
	return nil
}

// pypiPURL builds the canonical pkg:pypi purl for a package at its
// latest version.
func pypiPURL(pkg *registry.Package) string {
	purl := packageurl.NewPackageURL(packageurl.TypePyPi, "",
		strings.ToLower(pkg.Name), pkg.Latest.Canonical(), nil, "")
	return purl.ToString()
}
