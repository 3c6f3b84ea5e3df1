package ai

import "testing"

func TestTruncateRunes(t *testing.T) {
	cases := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 150, "short"},
		{"exactly ten", 11, "exactly ten"},
		{"a longer string that needs cutting", 10, "a longe..."},
		{"a longer string", 3, "a l"},
		{"a longer string", 2, "a "},
		{"a longer string", 1, "a"},
		{"a longer string", 0, ""},
		{"a longer string", -5, ""},
		{"", 10, ""},
		{"héllo wörld ünïcode", 8, "héllo..."},
	}
	for _, c := range cases {
		got := truncateRunes(c.in, c.n)
		if got != c.want {
			t.Errorf("truncateRunes(%q, %d) = %q, want %q", c.in, c.n, got, c.want)
		}
	}
}
