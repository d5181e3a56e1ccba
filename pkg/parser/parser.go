// Package parser provides functionality to parse match reports and ranking listings
package parser

import (
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ledongthuc/pdf"

	"github.com/myusername/tt-league-stats/pkg/models"
)

// MaxPlayerSlots is how many player name elements are read per match report (4 per team)
const MaxPlayerSlots = 2 * models.NumPositions

// clubPrefixLen is how much of a ranking row's club name must appear in the team name
const clubPrefixLen = 5

// ErrUnexpectedLayout is returned when a match report does not have exactly two team headers
var ErrUnexpectedLayout = errors.New("unexpected match report layout")

// ParseMatchDetails extracts the player appearances from a match report.
// Player name elements carry ids like "txtnavn_A1": the side (A or B) and
// the position (1-4) are the last two characters.
func ParseMatchDetails(doc *goquery.Document) ([]models.Appearance, error) {
	teamHeaders := doc.Find(`th[colspan="2"]`)
	if teamHeaders.Length() != 2 {
		return nil, fmt.Errorf("%w: found %d team headers", ErrUnexpectedLayout, teamHeaders.Length())
	}

	teamA := strings.TrimSpace(teamHeaders.Eq(0).Text())
	teamB := strings.TrimSpace(teamHeaders.Eq(1).Text())

	var appearances []models.Appearance
	nameDivs := doc.Find(`div[id^="txtnavn_"]`)
	nameDivs.Slice(0, min(MaxPlayerSlots, nameDivs.Length())).
		Each(func(i int, s *goquery.Selection) {
			id, _ := s.Attr("id")
			if len(id) < 2 {
				return
			}

			player := strings.TrimSpace(s.Text())
			if player == "" {
				return
			}

			position, err := strconv.Atoi(id[len(id)-1:])
			if err != nil || position < 1 || position > models.NumPositions {
				log.Printf("Skipping player element with id %q", id)
				return
			}

			var team string
			switch id[len(id)-2] {
			case 'A':
				team = teamA
			case 'B':
				team = teamB
			default:
				return
			}

			appearances = append(appearances, models.Appearance{
				Team:     team,
				Player:   player,
				Position: position,
			})
		})

	return appearances, nil
}

// SplitPlayerName splits "Last, First" into its two parts
func SplitPlayerName(player string) (lastName, firstName string, ok bool) {
	parts := strings.Split(player, ", ")
	if len(parts) != 2 {
		return "", "", false
	}
	return parts[0], parts[1], true
}

// ClubMatchesTeam reports whether the first five characters of a club name
// occur anywhere in the team name. Teams are usually named after the club
// with a suffix, e.g. "Spårvägen BTK 2".
func ClubMatchesTeam(club, team string) bool {
	runes := []rune(strings.TrimSpace(club))
	if len(runes) > clubPrefixLen {
		runes = runes[:clubPrefixLen]
	}
	return strings.Contains(team, string(runes))
}

// ParseRankingPage finds the ranking points for a team in a ranking search
// result. The first row with at least five cells whose club (fifth cell)
// matches the team is used, and the points are the second "hoyre" cell.
func ParseRankingPage(doc *goquery.Document, team string) (int, bool) {
	var row *goquery.Selection
	doc.Find("tr").EachWithBreak(func(i int, tr *goquery.Selection) bool {
		cells := tr.Find("td")
		if cells.Length() >= 5 && ClubMatchesTeam(cells.Eq(4).Text(), team) {
			row = tr
			return false
		}
		return true
	})

	if row == nil {
		return 0, false
	}

	pointCells := row.Find(".hoyre")
	if pointCells.Length() < 2 {
		return 0, false
	}

	points, err := strconv.Atoi(strings.TrimSpace(pointCells.Eq(1).Text()))
	if err != nil {
		log.Printf("Unparseable ranking points %q: %v", pointCells.Eq(1).Text(), err)
		return 0, false
	}
	return points, true
}

// ReadPDFText reads a PDF file and returns its text content
func ReadPDFText(pdfPath string) (string, error) {
	f, r, err := pdf.Open(pdfPath)
	if err != nil {
		return "", fmt.Errorf("error opening PDF: %w", err)
	}
	defer f.Close()

	plainText, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("error extracting text from PDF: %w", err)
	}

	bytes, err := io.ReadAll(plainText)
	if err != nil {
		return "", fmt.Errorf("error reading plain text from PDF: %w", err)
	}

	return string(bytes), nil
}

// RankingEntry is one line of a printed ranking list
type RankingEntry struct {
	Player string
	Club   string
	Points int
}

// ParseRankingListText parses the text of a ranking list. Each entry is on
// its own line with fields separated by tabs or runs of two or more spaces:
// an optional placing, "Last, First", club, any other columns, and the
// ranking points last.
func ParseRankingListText(text string) []RankingEntry {
	var entries []RankingEntry

	for _, line := range strings.Split(text, "\n") {
		fields := splitColumns(line)
		if len(fields) < 3 {
			continue
		}

		if _, err := strconv.Atoi(fields[0]); err == nil {
			fields = fields[1:]
		}
		if len(fields) < 3 || !strings.Contains(fields[0], ",") {
			continue
		}

		points, err := strconv.Atoi(fields[len(fields)-1])
		if err != nil {
			continue
		}

		entries = append(entries, RankingEntry{
			Player: normalizePlayerName(fields[0]),
			Club:   fields[1],
			Points: points,
		})
	}

	log.Printf("Parsed %d ranking list entries", len(entries))
	return entries
}

// splitColumns splits a line on tabs and runs of at least two spaces
func splitColumns(line string) []string {
	line = strings.ReplaceAll(line, "\t", "  ")
	var fields []string
	for _, part := range strings.Split(line, "  ") {
		if part = strings.TrimSpace(part); part != "" {
			fields = append(fields, part)
		}
	}
	return fields
}

// normalizePlayerName rewrites "Last,First" and "Last ,  First" as "Last, First"
func normalizePlayerName(name string) string {
	last, first, found := strings.Cut(name, ",")
	if !found {
		return strings.TrimSpace(name)
	}
	return strings.TrimSpace(last) + ", " + strings.TrimSpace(first)
}
