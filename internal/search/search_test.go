package search

import (
	"net/url"
	"strconv"
	"strings"
	"testing"
)

func TestProfilesURLRoundTrip(t *testing.T) {
	keywords := []string{
		"Palavra Chave",
		"golang",
		"",
		"C++ & Rust",
		"engenheiro de dados / São Paulo",
		"a=b?c#d%e",
		"  spaced  out ",
	}

	for _, k := range keywords {
		t.Run(k, func(t *testing.T) {
			raw := ProfilesURL(k)
			if !strings.HasPrefix(raw, PeopleSearchURL+"?keywords=") {
				t.Fatalf("unexpected base in %q", raw)
			}
			if strings.Contains(strings.TrimPrefix(raw, PeopleSearchURL), " ") {
				t.Fatalf("unencoded space in %q", raw)
			}

			u, err := url.Parse(raw)
			if err != nil {
				t.Fatalf("url.Parse failed: %v", err)
			}
			if got := u.Query().Get("keywords"); got != k {
				t.Fatalf("expected keywords %q, got %q", k, got)
			}
		})
	}
}

func TestProfilesURLPercentEncodesSpaces(t *testing.T) {
	want := PeopleSearchURL + "?keywords=Palavra%20Chave"
	if got := ProfilesURL("Palavra Chave"); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestPageURLCarriesPageNumber(t *testing.T) {
	for _, n := range []int{1, 2, 9, 10, 20, 137} {
		u, err := url.Parse(PageURL("Palavra Chave", n))
		if err != nil {
			t.Fatalf("url.Parse failed: %v", err)
		}
		q := u.Query()
		if got := q.Get("page"); got != strconv.Itoa(n) {
			t.Fatalf("expected page %d, got %q", n, got)
		}
		if got := q.Get("keywords"); got != "Palavra Chave" {
			t.Fatalf("keywords lost: %q", got)
		}
	}
}
