package registry

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/chis/pipup/internal/logging"
	"github.com/chis/pipup/internal/version"
)

// DefaultIndexURL is the public PyPI JSON API base.
const DefaultIndexURL = "https://pypi.org/pypi"

// PyPI is a client for the package index JSON API
// (GET <index>/<package>/json).
type PyPI struct {
	baseURL string
	client  JSONGetter
}

// NewPyPI creates an index client. An empty baseURL selects the public
// PyPI instance.
func NewPyPI(baseURL string, client JSONGetter) *PyPI {
	if baseURL == "" {
		baseURL = DefaultIndexURL
	}
	return &PyPI{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  client,
	}
}

type packageResponse struct {
	Info infoBlock `json:"info"`
}

type infoBlock struct {
	Name     string `json:"name"`
	Version  string `json:"version"`
	Summary  string `json:"summary"`
	HomePage string `json:"home_page"`
	License  string `json:"license"`
}

// Package is the subset of index metadata the tool surfaces.
type Package struct {
	Name     string
	Latest   *version.Version
	Summary  string
	Homepage string
	License  string
}

// LatestVersion returns the latest published version of a package.
// This is the raising path: not-found, network and parse failures all
// propagate to the caller. Used for direct lookups.
func (p *PyPI) LatestVersion(ctx context.Context, name string) (*version.Version, error) {
	pkg, err := p.FetchPackage(ctx, name)
	if err != nil {
		return nil, err
	}
	return pkg.Latest, nil
}

// LatestVersionSilent returns the latest published version, or nil when
// no information is available for any reason. This is the batch path: a
// single package's lookup failure must never abort the run, so network
// errors, HTTP errors and unparseable versions all collapse to nil.
func (p *PyPI) LatestVersionSilent(ctx context.Context, name string) *version.Version {
	latest, err := p.LatestVersion(ctx, name)
	if err != nil {
		logging.Debug("lookup for %s failed: %v", name, err)
		return nil
	}
	return latest
}

// FetchPackage retrieves package metadata, latest version included.
func (p *PyPI) FetchPackage(ctx context.Context, name string) (*Package, error) {
	url := fmt.Sprintf("%s/%s/json", p.baseURL, name)

	var resp packageResponse
	if err := p.client.GetJSON(ctx, url, &resp); err != nil {
		var httpErr *HTTPError
		if errors.As(err, &httpErr) && httpErr.IsNotFound() {
			return nil, &NotFoundError{Name: name}
		}
		return nil, err
	}

	if resp.Info.Version == "" {
		return nil, &NotFoundError{Name: name}
	}

	latest, err := version.Parse(resp.Info.Version)
	if err != nil {
		return nil, fmt.Errorf("package %s: latest version: %w", name, err)
	}

	return &Package{
		Name:     resp.Info.Name,
		Latest:   latest,
		Summary:  resp.Info.Summary,
		Homepage: resp.Info.HomePage,
		License:  resp.Info.License,
	}, nil
}
