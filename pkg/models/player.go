// Package models contains data structures for table tennis league statistics
package models

// NumPositions is the number of singles positions per team in a match report
const NumPositions = 4

// PositionCounts holds how many times a player appeared at positions 1-4.
// Index 0 is position 1.
type PositionCounts [NumPositions]int

// Average is a rounded mean that may be undefined (no positive values)
type Average struct {
	Value float64
	Valid bool
}

// PlayerRow holds the statistics for one player in one team
type PlayerRow struct {
	Team          string
	Player        string
	Positions     PositionCounts
	RankingPoints int // 0 means no ranking was found
	LeagueAverage Average
	TeamAverage   Average
}

// LeagueTable holds all player rows for a league
type LeagueTable struct {
	Name      string
	SourceURL string
	Rows      []PlayerRow
}

// Appearance is one player occupying one position in one match
type Appearance struct {
	Team     string
	Player   string
	Position int
}

// LeagueFile describes a persisted league table on disk
type LeagueFile struct {
	Name string
	Slug string
	Path string
}
