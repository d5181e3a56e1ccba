package models

// Accumulator collects position counts per (team, player) across all match
// reports of a league. Teams and players keep the order they were first seen.
type Accumulator struct {
	teams   []string
	players map[string][]string
	counts  map[string]map[string]*PositionCounts
}

// NewAccumulator creates an empty accumulator
func NewAccumulator() *Accumulator {
	return &Accumulator{
		players: make(map[string][]string),
		counts:  make(map[string]map[string]*PositionCounts),
	}
}

// Add increments the count for a player at a position (1-4) in a team.
// Positions outside 1-4 are ignored and reported as false.
func (a *Accumulator) Add(team, player string, position int) bool {
	if position < 1 || position > NumPositions {
		return false
	}

	teamCounts, ok := a.counts[team]
	if !ok {
		teamCounts = make(map[string]*PositionCounts)
		a.counts[team] = teamCounts
		a.teams = append(a.teams, team)
	}

	pc, ok := teamCounts[player]
	if !ok {
		pc = &PositionCounts{}
		teamCounts[player] = pc
		a.players[team] = append(a.players[team], player)
	}

	pc[position-1]++
	return true
}

// AddAll records every appearance from a match report
func (a *Accumulator) AddAll(appearances []Appearance) {
	for _, ap := range appearances {
		a.Add(ap.Team, ap.Player, ap.Position)
	}
}

// Counts returns the current counts for a player in a team
func (a *Accumulator) Counts(team, player string) PositionCounts {
	if pc, ok := a.counts[team][player]; ok {
		return *pc
	}
	return PositionCounts{}
}

// Len returns the number of distinct (team, player) pairs
func (a *Accumulator) Len() int {
	n := 0
	for _, players := range a.players {
		n += len(players)
	}
	return n
}

// Rows returns one row per (team, player) pair in first-seen order.
// Ranking columns are left at their zero values.
func (a *Accumulator) Rows() []PlayerRow {
	rows := make([]PlayerRow, 0, a.Len())
	for _, team := range a.teams {
		for _, player := range a.players[team] {
			rows = append(rows, PlayerRow{
				Team:      team,
				Player:    player,
				Positions: *a.counts[team][player],
			})
		}
	}
	return rows
}
