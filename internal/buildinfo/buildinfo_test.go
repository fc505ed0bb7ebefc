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
		{"dev", "", "dev"},
		{"", "unknown", "dev"},
		{"dev", "3f2a9c1d8e7b", "dev-3f2a9c1"},
		{"v1.1", "3f2a9c1d8e7b", "v1.1"},
		{" v1.2.0 ", "", "v1.2.0"},
		{"v1.2.0-rc.1+pico2.board-rev-c", "", "v1.2.0-rc.1+pico2.board-"},
	}
	for _, tt := range tests {
		stamp(t, tt.version, tt.commit, "")
		if got := Short(); got != tt.want {
			t.Fatalf("Short() with %q/%q = %q, want %q", tt.version, tt.commit, got, tt.want)
		}
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		version, commit, date, want string
	}{
		{"dev", "", "", "dev"},
		{"", "unknown", "unknown", "dev"},
		{"v1.1", "3f2a9c1d8e7b", "2026-10-01", "v1.1 (3f2a9c1, 2026-10-01)"},
		{"dev", "", "2026-10-01", "dev (2026-10-01)"},
	}
	for _, tt := range tests {
		stamp(t, tt.version, tt.commit, tt.date)
		if got := String(); got != tt.want {
			t.Fatalf("String() = %q, want %q", got, tt.want)
		}
	}
}
