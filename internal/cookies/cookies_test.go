package cookies

import (
	"net/http"
	"slices"
	"testing"
	"time"
)

func TestBaseDomains(t *testing.T) {
	t.Parallel()

	got := BaseDomains([]string{
		"https://www.youtube.com/watch?v=1",
		"https://music.youtube.com/playlist?list=PL1",
		"https://artist.bandcamp.com/album/x",
		"https://www.bbc.co.uk/iplayer/episode/1",
		"not a url",
	})
	want := []string{"bandcamp.com", "bbc.co.uk", "youtube.com"}
	if !slices.Equal(got, want) {
		t.Fatalf("BaseDomains = %q, want %q", got, want)
	}
}

func TestFormatNetscape(t *testing.T) {
	t.Parallel()

	exp := time.Unix(1900000000, 0)
	lines := FormatNetscape([]*http.Cookie{
		{Name: "SID", Value: "abc", Domain: ".youtube.com", Path: "/", Secure: true, Expires: exp},
		{Name: "pref", Value: "x=1", Domain: "www.example.com", HttpOnly: true},
	})

	want := []string{
		"# Netscape HTTP Cookie File",
		"",
		".youtube.com\tTRUE\t/\tTRUE\t1900000000\tSID\tabc",
		"#HttpOnly_www.example.com\tFALSE\t/\tFALSE\t0\tpref\tx=1",
	}
	if !slices.Equal(lines, want) {
		t.Fatalf("FormatNetscape =\n%q\nwant\n%q", lines, want)
	}
}

func TestDedupeCookiesKeepsLast(t *testing.T) {
	t.Parallel()

	got := dedupeCookies([]*http.Cookie{
		{Name: "a", Value: "1", Domain: ".x.com", Path: "/"},
		{Name: "b", Value: "2", Domain: ".x.com", Path: "/"},
		{Name: "a", Value: "3", Domain: ".x.com", Path: "/"},
	})
	if len(got) != 2 || got[0].Value != "3" || got[1].Value != "2" {
		t.Fatalf("dedupe = %+v", got)
	}
}
