package version

import (
	"strconv"
	"strings"
)

// Compare returns -1 if a < b, 0 if a == b, 1 if a > b under PEP 440
// precedence: epoch first, then numeric release components (shorter
// releases padded with zeros, so 2.0 == 2.0.0), then
// dev < alpha < beta < rc < final < post, with local versions sorting
// after their base version.
func Compare(a, b *Version) int {
	if a == nil || b == nil {
		if a == b {
			return 0
		}
		if a == nil {
			return -1
		}
		return 1
	}

	if a.Epoch != b.Epoch {
		return cmpInt(a.Epoch, b.Epoch)
	}

	if c := compareRelease(a.Release, b.Release); c != 0 {
		return c
	}

	if c := comparePre(a, b); c != 0 {
		return c
	}

	if c := comparePost(a.Post, b.Post); c != 0 {
		return c
	}

	if c := compareDev(a.Dev, b.Dev); c != 0 {
		return c
	}

	return compareLocal(a.Local, b.Local)
}

// IsNewer reports whether candidate is strictly newer than current.
func IsNewer(current, candidate *Version) bool {
	return Compare(current, candidate) < 0
}

// GetChangeType determines the magnitude of change between two versions.
// from is the installed version, to is the candidate.
func GetChangeType(from, to *Version) ChangeType {
	cmp := Compare(from, to)
	if cmp == 0 {
		return NoChange
	}
	if cmp > 0 {
		return Downgrade
	}

	if releaseAt(from.Release, 0) != releaseAt(to.Release, 0) {
		return MajorChange
	}
	if releaseAt(from.Release, 1) != releaseAt(to.Release, 1) {
		return MinorChange
	}
	return PatchChange
}

func compareRelease(a, b []int) int {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if c := cmpInt(releaseAt(a, i), releaseAt(b, i)); c != 0 {
			return c
		}
	}
	return 0
}

// comparePre orders the pre-release markers. A version that is only a
// dev release (1.0.dev1) sorts below every pre-release of the same
// release; a final release sorts above all of them.
func comparePre(a, b *Version) int {
	ra, rb := preRank(a), preRank(b)
	if ra != rb {
		return cmpInt(ra, rb)
	}
	if a.Pre == nil || b.Pre == nil {
		return 0
	}
	if a.Pre.Label != b.Pre.Label {
		return cmpInt(preLabelRank(a.Pre.Label), preLabelRank(b.Pre.Label))
	}
	return cmpInt(a.Pre.Number, b.Pre.Number)
}

func preRank(v *Version) int {
	switch {
	case v.Pre == nil && v.Post == nil && v.Dev != nil:
		return -1 // bare dev release sorts below any pre-release
	case v.Pre == nil:
		return 1 // final or post release
	default:
		return 0
	}
}

func preLabelRank(label string) int {
	switch label {
	case "a":
		return 0
	case "b":
		return 1
	default: // "rc"
		return 2
	}
}

func comparePost(a, b *int) int {
	if a == nil || b == nil {
		if a == b {
			return 0
		}
		if a == nil {
			return -1
		}
		return 1
	}
	return cmpInt(*a, *b)
}

// compareDev inverts the nil ordering: a missing dev marker means the
// version is the real release, which sorts above its dev builds.
func compareDev(a, b *int) int {
	if a == nil || b == nil {
		if a == b {
			return 0
		}
		if a == nil {
			return 1
		}
		return -1
	}
	return cmpInt(*a, *b)
}

// compareLocal orders local segments dot-wise: numeric segments compare
// numerically and sort above alphanumeric ones, matching PEP 440.
func compareLocal(a, b string) int {
	if a == "" || b == "" {
		if a == b {
			return 0
		}
		if a == "" {
			return -1
		}
		return 1
	}

	as, bs := strings.Split(a, "."), strings.Split(b, ".")
	for i := 0; i < len(as) && i < len(bs); i++ {
		an, aNum := strconv.Atoi(as[i])
		bn, bNum := strconv.Atoi(bs[i])
		aIsNum, bIsNum := aNum == nil, bNum == nil

		switch {
		case aIsNum && bIsNum:
			if c := cmpInt(an, bn); c != 0 {
				return c
			}
		case aIsNum:
			return 1
		case bIsNum:
			return -1
		default:
			if c := strings.Compare(as[i], bs[i]); c != 0 {
				return c
			}
		}
	}
	return cmpInt(len(as), len(bs))
}

func releaseAt(release []int, i int) int {
	if i < len(release) {
		return release[i]
	}
	return 0
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
