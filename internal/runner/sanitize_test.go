package runner

import "testing"

func TestSanitizeLine(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "plain text untouched",
			in:   "Starting Webserver on port 8000",
			want: "Starting Webserver on port 8000",
		},
		{
			name: "ansi color sequence stripped",
			in:   "\x1b[32mINFO\x1b[0m server up",
			want: "INFO server up",
		},
		{
			name: "spinner glyphs dropped",
			in:   "⠙⠹⠸",
			want: "",
		},
		{
			name: "spinner mixed with text",
			in:   "⠙ installing packages",
			want: " installing packages",
		},
		{
			name: "control chars removed except tab",
			in:   "a\x04b\tc\rd",
			want: "ab\tcd",
		},
		{
			name: "unterminated escape sequence",
			in:   "\x1b[31",
			want: "",
		},
		{
			name: "bare escape without bracket",
			in:   "\x1bX text",
			want: "X text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeLine(tt.in); got != tt.want {
				t.Errorf("SanitizeLine(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
