// Package output uploads league tables to Google Sheets
package output

import (
	"context"
	"fmt"
	"regexp"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/myusername/tt-league-stats/internal/utils"
	"github.com/myusername/tt-league-stats/pkg/models"
)

var spreadsheetIDRegex = regexp.MustCompile(`/spreadsheets/d/([a-zA-Z0-9-_]+)`)

// SheetsClient handles Google Sheets operations
type SheetsClient struct {
	service       *sheets.Service
	spreadsheetID string
}

// NewSheetsClient creates a new Google Sheets client using service account credentials
func NewSheetsClient(ctx context.Context, credentialsJSON []byte, sheetURL string) (*SheetsClient, error) {
	config, err := google.JWTConfigFromJSON(credentialsJSON, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse credentials: %w", err)
	}

	srv, err := sheets.NewService(ctx, option.WithHTTPClient(config.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	spreadsheetID, err := ExtractSpreadsheetID(sheetURL)
	if err != nil {
		return nil, err
	}

	return &SheetsClient{
		service:       srv,
		spreadsheetID: spreadsheetID,
	}, nil
}

// ExtractSpreadsheetID extracts the spreadsheet ID from a Google Sheets URL
func ExtractSpreadsheetID(url string) (string, error) {
	matches := spreadsheetIDRegex.FindStringSubmatch(url)
	if len(matches) < 2 {
		return "", fmt.Errorf("could not extract spreadsheet ID from URL: %s", url)
	}
	return matches[1], nil
}

// SheetValues converts a league table into sheet rows with the CSV header first
func SheetValues(table *models.LeagueTable) [][]interface{} {
	rows := make([][]interface{}, 0, len(table.Rows)+1)

	header := make([]interface{}, len(utils.Header))
	for i, h := range utils.Header {
		header[i] = h
	}
	rows = append(rows, header)

	for _, r := range table.Rows {
		row := []interface{}{r.Team, r.Player}
		for _, count := range r.Positions {
			row = append(row, count)
		}
		row = append(row, r.RankingPoints, averageCell(r.LeagueAverage), averageCell(r.TeamAverage))
		rows = append(rows, row)
	}
	return rows
}

func averageCell(avg models.Average) interface{} {
	if !avg.Valid {
		return ""
	}
	return avg.Value
}

// UploadLeagueTable replaces the contents of the tab named after the league.
// The tab must already exist in the spreadsheet.
func (c *SheetsClient) UploadLeagueTable(ctx context.Context, table *models.LeagueTable) error {
	sheetName := table.Name

	clearRange := fmt.Sprintf("'%s'!A:Z", sheetName)
	_, err := c.service.Spreadsheets.Values.Clear(c.spreadsheetID, clearRange, &sheets.ClearValuesRequest{}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to clear sheet: %w", err)
	}

	writeRange := fmt.Sprintf("'%s'!A1", sheetName)
	valueRange := &sheets.ValueRange{
		Values: SheetValues(table),
	}

	_, err = c.service.Spreadsheets.Values.Update(c.spreadsheetID, writeRange, valueRange).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to write to sheet: %w", err)
	}

	return nil
}
