// Package stats computes league and team average rankings
package stats

import (
	"math"

	"github.com/myusername/tt-league-stats/pkg/models"
)

// PositiveMean returns the mean of the positive values rounded half to even
// at one decimal. Zero means "no ranking" and is left out; with no positive values
// the result is invalid rather than zero.
func PositiveMean(values []int) models.Average {
	sum, n := 0, 0
	for _, v := range values {
		if v > 0 {
			sum += v
			n++
		}
	}
	if n == 0 {
		return models.Average{}
	}
	mean := float64(sum) / float64(n)
	return models.Average{Value: math.RoundToEven(mean*10) / 10, Valid: true}
}

// Summarize fills in the league and team averages on every row
func Summarize(table *models.LeagueTable) {
	all := make([]int, 0, len(table.Rows))
	byTeam := make(map[string][]int)
	for _, row := range table.Rows {
		all = append(all, row.RankingPoints)
		byTeam[row.Team] = append(byTeam[row.Team], row.RankingPoints)
	}

	leagueAvg := PositiveMean(all)
	teamAvg := make(map[string]models.Average, len(byTeam))
	for team, points := range byTeam {
		teamAvg[team] = PositiveMean(points)
	}

	for i := range table.Rows {
		table.Rows[i].LeagueAverage = leagueAvg
		table.Rows[i].TeamAverage = teamAvg[table.Rows[i].Team]
	}
}
