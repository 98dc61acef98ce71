package server

import (
	"sort"
	"time"

	"github.com/tomz197/pewpew/internal/loop"
	"github.com/tomz197/pewpew/internal/loop/config"
)

// ScoreEntry represents a single entry on the leaderboard.
type ScoreEntry struct {
	Username string `json:"username"`
	Score    int    `json:"score"`
	id       string // Used for deterministic tie-break when scores are equal
}

// SessionInfo summarizes one live console.
type SessionInfo struct {
	ID       string      `json:"id"`
	Username string      `json:"username"`
	Screen   loop.Screen `json:"screen"`
	Score    int         `json:"score"`
	Shield   int         `json:"shield"`
	Started  time.Time   `json:"started"`
}

// Snapshot is an immutable view of every registered session.
type Snapshot struct {
	Sessions  []SessionInfo `json:"sessions"`
	TopScores []ScoreEntry  `json:"topScores"` // Top N scores for leaderboard display
}

// buildSnapshot summarizes sessions, oldest first, with the leaderboard.
func buildSnapshot(sessions map[string]*Session) *Snapshot {
	snap := &Snapshot{
		Sessions: make([]SessionInfo, 0, len(sessions)),
	}
	for _, s := range sessions {
		snap.Sessions = append(snap.Sessions, SessionInfo{
			ID:       s.ID,
			Username: s.Username,
			Screen:   s.frame.Screen,
			Score:    s.frame.Score,
			Shield:   s.frame.Shield,
			Started:  s.Started,
		})
	}
	sort.Slice(snap.Sessions, func(i, j int) bool {
		a, b := snap.Sessions[i], snap.Sessions[j]
		if a.Started.Equal(b.Started) {
			return a.ID < b.ID
		}
		return a.Started.Before(b.Started)
	})
	snap.TopScores = topScores(snap.Sessions, config.TopScoresCount)
	return snap
}

// topScores returns the n highest scores among sessions that have started a game.
func topScores(sessions []SessionInfo, n int) []ScoreEntry {
	entries := make([]ScoreEntry, 0, len(sessions))
	for _, s := range sessions {
		if s.Screen == "" || s.Screen == loop.ScreenIntro {
			continue
		}
		entries = append(entries, ScoreEntry{Username: s.Username, Score: s.Score, id: s.ID})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].id < entries[j].id
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}
