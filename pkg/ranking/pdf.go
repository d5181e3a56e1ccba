package ranking

import (
	"context"
	"fmt"
	"log"

	"github.com/myusername/tt-league-stats/pkg/parser"
)

// PDFDirectory answers lookups from a downloaded ranking list PDF
type PDFDirectory struct {
	entries map[string][]parser.RankingEntry
}

// LoadPDFDirectory reads and indexes a ranking list PDF
func LoadPDFDirectory(pdfPath string) (*PDFDirectory, error) {
	text, err := parser.ReadPDFText(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("error loading ranking list: %w", err)
	}

	d := NewListDirectory(parser.ParseRankingListText(text))
	log.Printf("Loaded ranking list %s with %d players", pdfPath, len(d.entries))
	return d, nil
}

// NewListDirectory indexes already parsed ranking entries by player name
func NewListDirectory(entries []parser.RankingEntry) *PDFDirectory {
	d := &PDFDirectory{entries: make(map[string][]parser.RankingEntry)}
	for _, e := range entries {
		d.entries[e.Player] = append(d.entries[e.Player], e)
	}
	return d
}

// Lookup returns the points of the first entry for the player whose club matches the team
func (d *PDFDirectory) Lookup(ctx context.Context, player, team string) (int, error) {
	for _, e := range d.entries[player] {
		if parser.ClubMatchesTeam(e.Club, team) {
			return e.Points, nil
		}
	}
	return 0, nil
}
