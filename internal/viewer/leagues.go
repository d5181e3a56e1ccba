// Package viewer serves persisted league tables for browsing and download
package viewer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"github.com/myusername/tt-league-stats/internal/utils"
	"github.com/myusername/tt-league-stats/pkg/models"
)

var (
	// ErrNoDataDir is returned when the data directory does not exist
	ErrNoDataDir = errors.New("data directory does not exist")
	// ErrNoLeagueFiles is returned when the data directory holds no league tables
	ErrNoLeagueFiles = errors.New("no league tables found")
)

// ListLeagues returns every league table in dir sorted by display name
func ListLeagues(dir string) ([]models.LeagueFile, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNoDataDir, dir)
	}

	paths, err := filepath.Glob(filepath.Join(dir, "*"+utils.TableExt))
	if err != nil {
		return nil, fmt.Errorf("error listing %s: %w", dir, err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoLeagueFiles, dir)
	}

	leagues := make([]models.LeagueFile, 0, len(paths))
	for _, path := range paths {
		stem := strings.TrimSuffix(filepath.Base(path), utils.TableExt)
		leagues = append(leagues, models.LeagueFile{
			Name: DisplayName(stem),
			Slug: stem,
			Path: path,
		})
	}

	sort.Slice(leagues, func(i, j int) bool {
		return leagues[i].Name < leagues[j].Name
	})
	return leagues, nil
}

// DisplayName turns a file stem like "division-2-sodra" into "Division 2 Sodra".
// A letter following a non-letter starts a new word.
func DisplayName(stem string) string {
	var b strings.Builder
	prevLetter := false
	for _, r := range strings.ReplaceAll(stem, "-", " ") {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
			continue
		}
		b.WriteRune(r)
		prevLetter = false
	}
	return b.String()
}

// FindLeague looks a league up by display name; empty picks the first one
func FindLeague(leagues []models.LeagueFile, name string) (models.LeagueFile, bool) {
	if name == "" && len(leagues) > 0 {
		return leagues[0], true
	}
	for _, l := range leagues {
		if l.Name == name {
			return l, true
		}
	}
	return models.LeagueFile{}, false
}

// Teams returns the distinct values of the team column in first-seen order
func Teams(records [][]string) []string {
	col := teamColumn(records)
	if col < 0 {
		return nil
	}

	seen := make(map[string]bool)
	var teams []string
	for _, rec := range records[1:] {
		if col >= len(rec) || seen[rec[col]] {
			continue
		}
		seen[rec[col]] = true
		teams = append(teams, rec[col])
	}
	return teams
}

// FilterTeam returns the header followed by the rows whose team column
// equals team, unchanged
func FilterTeam(records [][]string, team string) [][]string {
	col := teamColumn(records)
	if col < 0 {
		return nil
	}

	out := [][]string{records[0]}
	for _, rec := range records[1:] {
		if col < len(rec) && rec[col] == team {
			out = append(out, rec)
		}
	}
	return out
}

func teamColumn(records [][]string) int {
	if len(records) == 0 {
		return -1
	}
	for i, h := range records[0] {
		if h == utils.TeamColumn {
			return i
		}
	}
	return -1
}
