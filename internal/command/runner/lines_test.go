package runner

import (
	"slices"
	"strings"
	"testing"
)

func TestScanLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"lf", "a\nb\n", []string{"a", "b"}},
		{"crlf", "a\r\nb\r\n", []string{"a", "b"}},
		{"bare cr", "[download]  1%\r[download]  2%\rdone\n", []string{"[download]  1%", "[download]  2%", "done"}},
		{"unterminated tail", "a\nb", []string{"a", "b"}},
		{"blank line kept", "a\n\nb\n", []string{"a", "", "b"}},
		{"empty", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got []string
			if err := scanLines(strings.NewReader(tt.in), func(l string) { got = append(got, l) }); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestScanLinesSplitsOversizedLine(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("x", maxLineBytes+10)
	var got []string
	if err := scanLines(strings.NewReader(long+"\n"), func(l string) { got = append(got, l) }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || len(got[0]) != maxLineBytes || len(got[1]) != 10 {
		t.Fatalf("unexpected split: %d pieces", len(got))
	}
}
