// Package version normalizes and compares PEP 440 version numbers.
//
// Arbitrary version strings published on PyPI deviate from the strict
// grammar in well-known ways (missing patch components, "alpha" spelled
// out, "-" and "_" used as separators, bare "-N" post-releases). The
// parser maps all of those into a single canonical ordered form; input
// that cannot be mapped is rejected with InvalidVersionError.
package version

import (
	"regexp"
	"strconv"
	"strings"
)

// versionPattern follows the PEP 440 normalization rules: optional "v"
// prefix, epoch, dotted release, pre/post/dev markers with loose
// separators and spellings, and an optional local segment.
var versionPattern = regexp.MustCompile(`(?i)^v?` +
	`(?:(\d+)!)?` + // epoch
	`(\d+(?:\.\d+)*)` + // release
	`(?:[-_.]?(a|b|c|rc|alpha|beta|pre|preview)[-_.]?(\d+)?)?` + // pre-release
	`(?:(?:-(\d+))|(?:[-_.]?(post|rev|r)[-_.]?(\d+)?))?` + // post-release
	`(?:[-_.]?(dev)[-_.]?(\d+)?)?` + // dev release
	`(?:\+([a-z0-9]+(?:[-_.][a-z0-9]+)*))?$`) // local segment

// preLabels maps the accepted pre-release spellings to canonical labels.
var preLabels = map[string]string{
	"a": "a", "alpha": "a",
	"b": "b", "beta": "b",
	"c": "rc", "rc": "rc", "pre": "rc", "preview": "rc",
}

// Parse normalizes a version string into a comparable Version.
// It is pure and deterministic; malformed input returns
// *InvalidVersionError rather than a coerced value.
func Parse(s string) (*Version, error) {
	trimmed := strings.TrimSpace(s)
	m := versionPattern.FindStringSubmatch(trimmed)
	if m == nil {
		return nil, &InvalidVersionError{Input: s}
	}

	v := &Version{Original: s}

	if m[1] != "" {
		epoch, err := strconv.Atoi(m[1])
		if err != nil {
			return nil, &InvalidVersionError{Input: s}
		}
		v.Epoch = epoch
	}

	for _, part := range strings.Split(m[2], ".") {
		n, err := strconv.Atoi(part)
		if err != nil {
			// Overflows only; the pattern guarantees digits.
			return nil, &InvalidVersionError{Input: s}
		}
		v.Release = append(v.Release, n)
	}

	if m[3] != "" {
		v.Pre = &Prerelease{
			Label:  preLabels[strings.ToLower(m[3])],
			Number: atoiDefault(m[4], 0),
		}
	}

	switch {
	case m[5] != "":
		// Bare "-N" form, e.g. "1.0-1".
		n := atoiDefault(m[5], 0)
		v.Post = &n
	case m[6] != "":
		n := atoiDefault(m[7], 0)
		v.Post = &n
	}

	if m[8] != "" {
		n := atoiDefault(m[9], 0)
		v.Dev = &n
	}

	if m[10] != "" {
		v.Local = normalizeLocal(m[10])
	}

	return v, nil
}

// Normalize returns the canonical form of a version string.
func Normalize(s string) (string, error) {
	v, err := Parse(s)
	if err != nil {
		return "", err
	}
	return v.Canonical(), nil
}

// Valid reports whether a version string can be normalized.
func Valid(s string) bool {
	_, err := Parse(s)
	return err == nil
}

func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// normalizeLocal lowercases a local segment and maps "-" and "_"
// separators to ".".
func normalizeLocal(local string) string {
	local = strings.ToLower(local)
	local = strings.ReplaceAll(local, "-", ".")
	local = strings.ReplaceAll(local, "_", ".")
	return local
}
