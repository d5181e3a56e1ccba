// Package ranking looks up SBTF ranking points for league players
package ranking

import (
	"context"
	"fmt"
	"log"
	"net/url"

	"github.com/myusername/tt-league-stats/pkg/parser"
	"github.com/myusername/tt-league-stats/pkg/scraper"
)

// DefaultBaseURL is the SBTF ranking search page
const DefaultBaseURL = "https://www.profixio.com/fx/ranking_sbtf/ranking_sbtf_list.php"

// Genders are tried in this order; "m" is men, "k" is women
var Genders = []string{"m", "k"}

// Directory returns the ranking points of a player ("Last, First") playing
// for a team. Zero means no ranking was found.
type Directory interface {
	Lookup(ctx context.Context, player, team string) (int, error)
}

// HTTPDirectory searches the SBTF ranking pages over HTTP
type HTTPDirectory struct {
	BaseURL  string
	District string
}

// NewHTTPDirectory creates a directory for the Stockholm district (47)
func NewHTTPDirectory(baseURL string) *HTTPDirectory {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &HTTPDirectory{BaseURL: baseURL, District: "47"}
}

// SearchURL builds the ranking search URL for one gender
func (d *HTTPDirectory) SearchURL(gender, lastName, firstName string) string {
	return fmt.Sprintf("%s?searching=1&rid=&distr=%s&club=&licencesubtype=&gender=%s&age=&ln=%s&fn=%s",
		d.BaseURL, d.District, gender, url.QueryEscape(lastName), url.QueryEscape(firstName))
}

// Lookup tries each gender in turn and returns the first matching row's
// points. Failed requests only skip that attempt.
func (d *HTTPDirectory) Lookup(ctx context.Context, player, team string) (int, error) {
	lastName, firstName, ok := parser.SplitPlayerName(player)
	if !ok {
		log.Printf("Cannot split player name %q, skipping ranking lookup", player)
		return 0, nil
	}

	for _, gender := range Genders {
		doc, err := scraper.FetchDocument(ctx, d.SearchURL(gender, lastName, firstName))
		if err != nil {
			if ctx.Err() != nil {
				return 0, ctx.Err()
			}
			log.Printf("Ranking search for %s (%s) failed: %v", player, gender, err)
			continue
		}

		if points, found := parser.ParseRankingPage(doc, team); found {
			return points, nil
		}
	}

	return 0, nil
}
