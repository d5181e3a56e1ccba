package scraper

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

const leagueListing = `<html><body>
<a href="serieoppsett.php?t=SBTF_SERIE_AVD17203&amp;k=LS17203&amp;p=1"> Division 1 Norra </a>
<table>
<tr><td><a href="serieoppsett_viskamper_rapport.php?id=1">Rapport</a></td></tr>
<tr><td><a href="serieoppsett_viskamper_rapport.php?id=2">Rapport</a></td></tr>
<tr><td><a href="other.php?id=3">Annat</a></td></tr>
</table>
</body></html>`

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return doc
}

func TestExtractLeagueName(t *testing.T) {
	doc := mustDoc(t, leagueListing)
	url := "https://www.profixio.com/fx/serieoppsett.php?t=SBTF_SERIE_AVD17203&k=LS17203&p=1"

	name, err := ExtractLeagueName(doc, url)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "Division 1 Norra" {
		t.Errorf("got %q, want %q", name, "Division 1 Norra")
	}

	_, err = ExtractLeagueName(doc, "https://www.profixio.com/fx/serieoppsett.php?t=OTHER&p=1")
	if !errors.Is(err, ErrLeagueNameNotFound) {
		t.Errorf("got %v, want ErrLeagueNameNotFound", err)
	}
}

func TestExtractMatchLinks(t *testing.T) {
	links := ExtractMatchLinks(mustDoc(t, leagueListing))
	want := []string{
		"serieoppsett_viskamper_rapport.php?id=1",
		"serieoppsett_viskamper_rapport.php?id=2",
	}
	if len(links) != len(want) {
		t.Fatalf("got %d links, want %d: %v", len(links), len(want), links)
	}
	for i := range want {
		if links[i] != want[i] {
			t.Errorf("link %d: got %q, want %q", i, links[i], want[i])
		}
	}
}

func TestResolveRelativeURL(t *testing.T) {
	tests := []struct {
		base, rel, want string
	}{
		{
			"https://www.profixio.com/fx/serieoppsett.php?t=A/B&p=1",
			"serieoppsett_viskamper_rapport.php?id=1",
			"https://www.profixio.com/fx/serieoppsett_viskamper_rapport.php?id=1",
		},
		{
			"https://www.profixio.com/fx/serieoppsett.php",
			"/fx/x.php",
			"https://www.profixio.com/fx/x.php",
		},
		{
			"http://127.0.0.1:8080",
			"r.php",
			"http://127.0.0.1:8080/r.php",
		},
		{
			"https://example.com/a/b.php",
			"https://other.com/c.php",
			"https://other.com/c.php",
		},
	}
	for _, tt := range tests {
		if got := ResolveRelativeURL(tt.base, tt.rel); got != tt.want {
			t.Errorf("ResolveRelativeURL(%q, %q) = %q, want %q", tt.base, tt.rel, got, tt.want)
		}
	}
}

func TestFetchURLRejectsNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("<p>ok</p>"))
	}))
	defer srv.Close()

	if _, err := FetchURL(context.Background(), srv.URL+"/missing"); err == nil {
		t.Error("expected error for 404")
	}

	doc, err := FetchDocument(context.Background(), srv.URL+"/page")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := doc.Find("p").Text(); got != "ok" {
		t.Errorf("got %q", got)
	}
}
