package battlefield

import "github.com/vovakirdan/battlefield/internal/engine"

// Change classifies the difference between two configurations. The flags
// are independent: an update may both change speed and require a restart.
type Change struct {
	Speed   bool
	Quality bool
	Restart bool
}

// None reports whether nothing relevant changed.
func (c Change) None() bool {
	return !c.Speed && !c.Quality && !c.Restart
}

// Diff compares prev and next. Speed and quality can be applied in place;
// every other battle-defining field requires a rebuild.
func Diff(prev, next Config) Change {
	return Change{
		Speed:   prev.Speed != next.Speed,
		Quality: prev.Quality != next.Quality,
		Restart: !sameAiDefList(prev.AiDefList, next.AiDefList) ||
			prev.Renderer != next.Renderer ||
			!sameSeed(prev.RngSeed, next.RngSeed) ||
			prev.TeamMode != next.TeamMode ||
			prev.BattlefieldWidth != next.BattlefieldWidth ||
			prev.BattlefieldHeight != next.BattlefieldHeight ||
			prev.Modifier != next.Modifier ||
			prev.TimeLimit != next.TimeLimit,
	}
}

// sameAiDefList compares element identity, not contents.
func sameAiDefList(a, b []*engine.AiDefinition) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func sameSeed(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
