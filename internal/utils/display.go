// Package utils provides display and CSV helpers for league tables
package utils

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gosimple/slug"

	"github.com/myusername/tt-league-stats/pkg/models"
)

// TableExt is the extension of persisted league tables
const TableExt = ".csv"

// TeamColumn is the header of the team column
const TeamColumn = "Lag"

// Header is the column layout of every league table file
var Header = []string{
	TeamColumn,
	"Spelare",
	"Position 1",
	"Position 2",
	"Position 3",
	"Position 4",
	"Rankingpoäng",
	"Medelranking serie",
	"Medelranking lag",
}

// LeagueFilename derives the file name for a league. Names differing only
// in case or punctuation map to the same file.
func LeagueFilename(leagueName string) string {
	return slug.Make(strings.ToLower(leagueName)) + TableExt
}

// FormatAverage renders an average with one decimal, or empty when undefined
func FormatAverage(avg models.Average) string {
	if !avg.Valid {
		return ""
	}
	return strconv.FormatFloat(avg.Value, 'f', 1, 64)
}

// Record converts a row to its CSV fields
func Record(row models.PlayerRow) []string {
	record := []string{row.Team, row.Player}
	for _, count := range row.Positions {
		record = append(record, strconv.Itoa(count))
	}
	return append(record,
		strconv.Itoa(row.RankingPoints),
		FormatAverage(row.LeagueAverage),
		FormatAverage(row.TeamAverage),
	)
}

// DisplayLeagueTable prints the player rows of a league grouped by team
func DisplayLeagueTable(table *models.LeagueTable) {
	fmt.Printf("\n=========== %s ===========\n", strings.ToUpper(table.Name))
	fmt.Printf("%-26s | %-4s | %-4s | %-4s | %-4s | %-7s | %-7s | %-7s\n",
		"Player", "P1", "P2", "P3", "P4", "Ranking", "League", "Team")
	fmt.Printf("%-26s | %-4s | %-4s | %-4s | %-4s | %-7s | %-7s | %-7s\n",
		strings.Repeat("-", 26), strings.Repeat("-", 4), strings.Repeat("-", 4),
		strings.Repeat("-", 4), strings.Repeat("-", 4), strings.Repeat("-", 7),
		strings.Repeat("-", 7), strings.Repeat("-", 7))

	currentTeam := ""
	for _, row := range table.Rows {
		if row.Team != currentTeam {
			currentTeam = row.Team
			fmt.Printf("\n%s\n", currentTeam)
		}
		fmt.Printf("%-26s | %4d | %4d | %4d | %4d | %7d | %7s | %7s\n",
			row.Player, row.Positions[0], row.Positions[1], row.Positions[2], row.Positions[3],
			row.RankingPoints, FormatAverage(row.LeagueAverage), FormatAverage(row.TeamAverage))
	}

	fmt.Println(strings.Repeat("=", 84))
}

// SaveLeagueTableToCSV writes a league table into dir, replacing any earlier
// file for the same league, and returns the path written
func SaveLeagueTableToCSV(table *models.LeagueTable, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create data directory: %w", err)
	}

	path := filepath.Join(dir, LeagueFilename(table.Name))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}

	if err := WriteLeagueTable(f, table); err != nil {
		return "", err
	}
	return path, nil
}

// WriteLeagueTable writes the header and one record per row, then closes out.
// A close failure is reported like a write failure.
func WriteLeagueTable(out io.WriteCloser, table *models.LeagueTable) error {
	records := make([][]string, 0, len(table.Rows)+1)
	records = append(records, Header)
	for _, row := range table.Rows {
		records = append(records, Record(row))
	}

	if err := WriteCSV(out, records); err != nil {
		out.Close()
		return fmt.Errorf("failed to write league table: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to close league table: %w", err)
	}
	return nil
}

// WriteCSV writes header and rows as comma separated values
func WriteCSV(out io.Writer, records [][]string) error {
	w := csv.NewWriter(out)
	if err := w.WriteAll(records); err != nil {
		return err
	}
	return w.Error()
}

// LoadLeagueCSV reads a persisted league table. The first record is the header.
func LoadLeagueCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open league table: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read league table %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("league table %s has no header", path)
	}
	return records, nil
}
