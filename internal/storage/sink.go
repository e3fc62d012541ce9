package storage

import "github.com/vovakirdan/tui-2048/internal/engine"

// Sink adapts the store to engine.ScoreSink for one game.
func (s *Store) Sink(gameID string) engine.ScoreSink {
	return scoreSink{store: s, gameID: gameID}
}

type scoreSink struct {
	store  *Store
	gameID string
}

func (k scoreSink) RecordScore(f engine.FinalScore) error {
	return k.store.RecordScore(k.gameID, f)
}
