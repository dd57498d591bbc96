package helpers

import (
	"reflect"
	"strings"
	"testing"
)

func TestExtractURLs(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "single url inside prose",
			in:   "see https://foo.test/page for details",
			want: []string{"https://foo.test/page"},
		},
		{
			name: "deduplicates repeats keeping first-seen order",
			in:   "https://a.test/x then http://b.test and again https://a.test/x",
			want: []string{"https://a.test/x", "http://b.test"},
		},
		{
			name: "stops at quotes and whitespace",
			in:   `href="https://a.test/p?q=1" and 'https://b.test/y'`,
			want: []string{"https://a.test/p?q=1", "https://b.test/y"},
		},
		{
			name: "ignores bare scheme and non-url http words",
			in:   "the https:// protocol and httpx are not links",
			want: nil,
		},
		{
			name: "empty input",
			in:   "",
			want: nil,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractURLs(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("ExtractURLs() got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExtractURLsAdversarial(t *testing.T) {
	t.Parallel()
	// A long run of almost-URLs must not blow up the scan.
	in := strings.Repeat("http:/nope ", 50000) + "https://real.test/end"
	got := ExtractURLs(in)
	if len(got) != 1 || got[0] != "https://real.test/end" {
		t.Fatalf("ExtractURLs() got %v", got)
	}
}

func TestFirstURL(t *testing.T) {
	t.Parallel()
	if got := FirstURL("first https://one.test then https://two.test"); got != "https://one.test" {
		t.Fatalf("FirstURL() got %q", got)
	}
	if got := FirstURL("no links here"); got != "" {
		t.Fatalf("FirstURL() got %q, want empty", got)
	}
}
