package storage

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Summary holds aggregate statistics over a set of stored battles.
type Summary struct {
	Battles int `csv:"battles"`

	WinnerScoreMean float64 `csv:"winner_score_mean"`
	WinnerScoreStd  float64 `csv:"winner_score_std"`
	WinnerScoreP50  float64 `csv:"winner_score_p50"`
	WinnerScoreP90  float64 `csv:"winner_score_p90"`

	TimeLeftMeanMs float64 `csv:"time_left_mean_ms"`
	Overruns       int     `csv:"overruns"` // Battles that ran past their limit
	TeamBattles    int     `csv:"team_battles"`
	TanksMean      float64 `csv:"tanks_mean"`
}

// Summarize computes statistics over records. An empty slice yields a zero
// Summary.
func Summarize(records []BattleRecord) Summary {
	sum := Summary{Battles: len(records)}
	if len(records) == 0 {
		return sum
	}

	scores := make([]float64, len(records))
	left := make([]float64, len(records))
	tanks := make([]float64, len(records))
	for i, r := range records {
		scores[i] = r.TankWinnerScore
		left[i] = float64(r.TimeLeftMs)
		tanks[i] = float64(r.TankCount)
		if r.TimeLeftMs < 0 {
			sum.Overruns++
		}
		if r.TeamMode {
			sum.TeamBattles++
		}
	}

	sum.WinnerScoreMean, sum.WinnerScoreStd = stat.MeanStdDev(scores, nil)
	if len(scores) < 2 {
		sum.WinnerScoreStd = 0 // undefined for one sample
	}
	sort.Float64s(scores)
	sum.WinnerScoreP50 = stat.Quantile(0.5, stat.Empirical, scores, nil)
	sum.WinnerScoreP90 = stat.Quantile(0.9, stat.Empirical, scores, nil)
	sum.TimeLeftMeanMs = stat.Mean(left, nil)
	sum.TanksMean = stat.Mean(tanks, nil)
	return sum
}
