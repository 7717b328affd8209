package server

import (
	"slices"
	"time"
)

// TopScoreEntry represents a single entry on the leaderboard.
type TopScoreEntry struct {
	Username string
	Score    int
	Wave     int
	At       time.Time
	clientID int
}

// topScores is a bounded board sorted by score, best first. Equal scores keep
// submission order, so the earlier round ranks higher.
type topScores struct {
	limit   int
	entries []TopScoreEntry
}

// insert adds e and returns its 1-based rank, or 0 if it did not make the board.
// Zero scores never make it.
func (t *topScores) insert(e TopScoreEntry) int {
	if e.Score <= 0 {
		return 0
	}
	pos, _ := slices.BinarySearchFunc(t.entries, e.Score, func(have TopScoreEntry, score int) int {
		// Descending, and past every equal score
		if have.Score >= score {
			return -1
		}
		return 1
	})
	if pos >= t.limit {
		return 0
	}
	t.entries = slices.Insert(t.entries, pos, e)
	if len(t.entries) > t.limit {
		t.entries = t.entries[:t.limit]
	}
	return pos + 1
}

func (t *topScores) list() []TopScoreEntry {
	return slices.Clone(t.entries)
}
