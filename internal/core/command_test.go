package core

import "testing"

func TestSplitCommand(t *testing.T) {
	cases := []struct {
		line string
		name string
		arg  string
		rest string
	}{
		{"/quit", "/quit", "", ""},
		{"/join dev", "/join", "dev", ""},
		{"/join", "/join", "", ""},
		{"/pm bob hello", "/pm", "bob", "hello"},
		{"/pm bob hello there world", "/pm", "bob", "hello there world"},
		{"/pm bob", "/pm", "bob", ""},
		{"/pm", "/pm", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.line, func(t *testing.T) {
			name, arg, rest := splitCommand(tc.line)
			if name != tc.name || arg != tc.arg || rest != tc.rest {
				t.Fatalf("splitCommand(%q) = (%q, %q, %q), want (%q, %q, %q)",
					tc.line, name, arg, rest, tc.name, tc.arg, tc.rest)
			}
		})
	}
}
