package logger

import "testing"

func TestNew(t *testing.T) {
	t.Parallel()

	for _, env := range []string{"development", "production", ""} {
		log, err := New(env)
		if err != nil {
			t.Fatalf("New(%q): %v", env, err)
		}
		if log == nil {
			t.Fatalf("New(%q) returned nil logger", env)
		}
	}
}

func TestTruncateForLog(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		in    string
		limit int
		want  string
	}{
		{"under limit", "short", 10, "short"},
		{"exact limit", "12345", 5, "12345"},
		{"over limit", "1234567890", 5, "12345..."},
		{"trims whitespace", "  padded  ", 10, "padded"},
		{"multibyte safe", "日本語のテキストです", 3, "日本語..."},
		{"zero limit", "anything", 0, ""},
	}

	for _, tc := range cases {
		if got := TruncateForLog(tc.in, tc.limit); got != tc.want {
			t.Fatalf("%s: TruncateForLog(%q, %d) = %q, want %q", tc.name, tc.in, tc.limit, got, tc.want)
		}
	}
}
