package version

import "testing"

func mustParse(t *testing.T, s string) *Version {
	t.Helper()
	v, err := Parse(s)
	if err != nil {
		t.Fatalf("Parse(%q) returned error: %v", s, err)
	}
	return v
}

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1.0.0", "1.0.0", 0},
		{"1.2.0", "1.10.0", -1},
		{"2.0", "2.0.0", 0},
		{"1.0.0-alpha", "1.0.0", -1},
		{"1.0a1", "1.0b1", -1},
		{"1.0b2", "1.0rc1", -1},
		{"1.0rc1", "1.0", -1},
		{"1.0", "1.0.post1", -1},
		{"1.0.dev1", "1.0a1", -1},
		{"1.0a1.dev1", "1.0a1", -1},
		{"1.0.post1", "1.0.post2", -1},
		{"1.0", "1.0+local", -1},
		{"1.0+abc", "1.0+abc.1", -1},
		{"1.0+9", "1.0+abc", 1},
		{"1!0.5", "2.0", 1},
		{"0.9.9", "1.0", -1},
		{"1.0.10", "1.0.2", 1},
		{"2024.1.15", "2024.2.1", -1},
	}

	for _, tt := range tests {
		a, b := mustParse(t, tt.a), mustParse(t, tt.b)

		if got := Compare(a, b); got != tt.want {
			t.Errorf("Compare(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
		// Compare must be antisymmetric.
		if got := Compare(b, a); got != -tt.want {
			t.Errorf("Compare(%q, %q) = %d, want %d", tt.b, tt.a, got, -tt.want)
		}
	}
}

func TestCompareNil(t *testing.T) {
	v := mustParse(t, "1.0")

	if got := Compare(nil, nil); got != 0 {
		t.Errorf("Compare(nil, nil) = %d, want 0", got)
	}
	if got := Compare(nil, v); got != -1 {
		t.Errorf("Compare(nil, v) = %d, want -1", got)
	}
	if got := Compare(v, nil); got != 1 {
		t.Errorf("Compare(v, nil) = %d, want 1", got)
	}
}

func TestIsNewer(t *testing.T) {
	tests := []struct {
		current, candidate string
		want               bool
	}{
		{"1.0", "1.1", true},
		{"1.1", "1.0", false},
		{"2.0", "2.0.0", false},
		{"1.0", "1.0.0rc1", false},
		{"1.0rc1", "1.0", true},
	}

	for _, tt := range tests {
		got := IsNewer(mustParse(t, tt.current), mustParse(t, tt.candidate))
		if got != tt.want {
			t.Errorf("IsNewer(%q, %q) = %v, want %v", tt.current, tt.candidate, got, tt.want)
		}
	}
}

func TestGetChangeType(t *testing.T) {
	tests := []struct {
		from, to string
		want     ChangeType
	}{
		{"1.0.0", "1.0.0", NoChange},
		{"1.0.0", "1.0.1", PatchChange},
		{"1.0.0", "1.1.0", MinorChange},
		{"1.0.0", "2.0.0", MajorChange},
		{"2.0.0", "1.9.9", Downgrade},
		{"1.0", "1.0.1", PatchChange},
	}

	for _, tt := range tests {
		got := GetChangeType(mustParse(t, tt.from), mustParse(t, tt.to))
		if got != tt.want {
			t.Errorf("GetChangeType(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}
