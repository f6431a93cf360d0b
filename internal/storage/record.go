package storage

import (
	"github.com/vovakirdan/battlefield/internal/battlefield"
)

// RecordFromResult converts a delivered battle result into a storable
// record. cfg and seed describe the battle that produced it.
func RecordFromResult(res battlefield.Result, cfg battlefield.Config, seed int64) BattleRecord {
	rec := BattleRecord{
		Renderer:   cfg.Renderer,
		RngSeed:    seed,
		TeamMode:   cfg.TeamMode,
		TimeLeftMs: res.TimeLeft.Milliseconds(),
		UBD:        res.UBD,
		TankCount:  len(res.TankList),
	}
	if res.TankWinner != nil {
		rec.TankWinner = res.TankWinner.Name()
		rec.TankWinnerScore = res.TankWinner.Score()
	}
	if res.TeamWinner != nil {
		rec.TeamWinner = res.TeamWinner.Name()
		rec.TeamWinnerScore = res.TeamWinner.Score()
	}

	for _, t := range res.TankList {
		rec.Tanks = append(rec.Tanks, TankRecord{
			TankID: t.ID(),
			Name:   t.Name(),
			Team:   t.Team(),
			Score:  t.Score(),
			Energy: t.Energy(),
		})
	}
	return rec
}
