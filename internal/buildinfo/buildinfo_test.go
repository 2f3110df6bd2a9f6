package buildinfo

import "testing"

func stamp(t *testing.T, version, commit, date string) {
	t.Helper()
	v, c, d := Version, Commit, Date
	t.Cleanup(func() { Version, Commit, Date = v, c, d })
	Version, Commit, Date = version, commit, date
}

func TestShort(t *testing.T) {
	tests := []struct {
		version, commit, want string
	}{
		{"dev", "unknown", "dev"},
		{"v1.2.0", "abcdef0123", "v1.2.0"},
		{"dev", "abcdef0123", "abcdef0"},
		{"", "abc", "abc"},
	}
	for _, tc := range tests {
		stamp(t, tc.version, tc.commit, "unknown")
		if got := Short(); got != tc.want {
			t.Fatalf("Short() with %q/%q = %q, want %q", tc.version, tc.commit, got, tc.want)
		}
	}
}

func TestString(t *testing.T) {
	stamp(t, "v1.2.0", "unknown", "2026-10-01")
	if got, want := String(), "v1.2.0 (2026-10-01)"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
	stamp(t, "dev", "unknown", "")
	if got := String(); got != "dev" {
		t.Fatalf("String() = %q, want %q", got, "dev")
	}
}
