// Package collector scrapes league listings and match reports into league tables
package collector

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/myusername/tt-league-stats/internal/utils"
	"github.com/myusername/tt-league-stats/pkg/models"
	"github.com/myusername/tt-league-stats/pkg/parser"
	"github.com/myusername/tt-league-stats/pkg/ranking"
	"github.com/myusername/tt-league-stats/pkg/scraper"
	"github.com/myusername/tt-league-stats/pkg/stats"
)

// Uploader receives every persisted league table, e.g. a Google Sheet
type Uploader interface {
	UploadLeagueTable(ctx context.Context, table *models.LeagueTable) error
}

// Collector runs the sequential scrape, enrich and save pipeline
type Collector struct {
	Directory ranking.Directory
	DataDir   string
	Delay     time.Duration // pause between leagues
	Uploader  Uploader      // optional
	Quiet     bool          // skip printing tables to stdout
}

// Result describes what happened to one league
type Result struct {
	URL   string
	Name  string
	Rows  int
	Path  string
	Error error
}

// Run collects every league in order and writes one file per league.
// A league that cannot be scraped or has no rows is skipped; only
// cancellation stops the run early.
func (c *Collector) Run(ctx context.Context, leagueURLs []string) ([]Result, error) {
	var results []Result

	for i, leagueURL := range leagueURLs {
		if i > 0 && c.Delay > 0 {
			select {
			case <-ctx.Done():
				return results, ctx.Err()
			case <-time.After(c.Delay):
			}
		}

		log.Printf("Processing league %d of %d: %s", i+1, len(leagueURLs), leagueURL)
		res := Result{URL: leagueURL}

		table, err := c.ScrapeLeague(ctx, leagueURL)
		if err != nil {
			if ctx.Err() != nil {
				return results, ctx.Err()
			}
			log.Printf("Skipping league %s: %v", leagueURL, err)
			res.Error = err
			results = append(results, res)
			continue
		}

		res.Name = table.Name
		res.Rows = len(table.Rows)

		if !c.Quiet {
			utils.DisplayLeagueTable(table)
		}

		if len(table.Rows) == 0 {
			log.Printf("League %s has no player rows, not saving", table.Name)
			results = append(results, res)
			continue
		}

		path, err := utils.SaveLeagueTableToCSV(table, c.DataDir)
		if err != nil {
			log.Printf("Error saving league %s: %v", table.Name, err)
			res.Error = err
			results = append(results, res)
			continue
		}
		res.Path = path
		log.Printf("Saved data for %s to %s", table.Name, path)

		if c.Uploader != nil {
			if err := c.Uploader.UploadLeagueTable(ctx, table); err != nil {
				log.Printf("Error uploading league %s: %v", table.Name, err)
			}
		}

		results = append(results, res)
	}

	return results, nil
}

// ScrapeLeague builds the full table for one league: position counts from
// every match report first, then rankings and averages.
func (c *Collector) ScrapeLeague(ctx context.Context, leagueURL string) (*models.LeagueTable, error) {
	doc, err := scraper.FetchDocument(ctx, leagueURL)
	if err != nil {
		return nil, fmt.Errorf("error fetching league page: %w", err)
	}

	name, err := scraper.ExtractLeagueName(doc, leagueURL)
	if err != nil {
		return nil, err
	}
	log.Printf("Found league: %s", name)

	acc := models.NewAccumulator()
	for _, link := range scraper.ExtractMatchLinks(doc) {
		if err := c.ScrapeMatchDetails(ctx, scraper.ResolveRelativeURL(leagueURL, link), acc); err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			log.Printf("Skipping match report: %v", err)
		}
	}

	table := &models.LeagueTable{
		Name:      name,
		SourceURL: leagueURL,
		Rows:      acc.Rows(),
	}

	if err := c.Enrich(ctx, table); err != nil {
		return nil, err
	}
	stats.Summarize(table)

	return table, nil
}

// ScrapeMatchDetails adds the appearances of one match report to acc
func (c *Collector) ScrapeMatchDetails(ctx context.Context, detailsURL string, acc *models.Accumulator) error {
	doc, err := scraper.FetchDocument(ctx, detailsURL)
	if err != nil {
		return err
	}

	appearances, err := parser.ParseMatchDetails(doc)
	if err != nil {
		return fmt.Errorf("%s: %w", detailsURL, err)
	}

	acc.AddAll(appearances)
	return nil
}

// Enrich looks up the ranking points of every row, one request at a time
func (c *Collector) Enrich(ctx context.Context, table *models.LeagueTable) error {
	if c.Directory == nil {
		return nil
	}

	for i := range table.Rows {
		row := &table.Rows[i]
		points, err := c.Directory.Lookup(ctx, row.Player, row.Team)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Printf("Ranking lookup for %s failed: %v", row.Player, err)
			continue
		}
		row.RankingPoints = points
	}
	return nil
}
