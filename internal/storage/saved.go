package storage

import (
	"database/sql"
	"errors"
	"fmt"
)

// LocalOwner owns the saves made by terminal play on this machine.
const LocalOwner = "local"

// SaveGame stores the in-progress state of owner's game, replacing any
// earlier save of the same owner.
func (s *Store) SaveGame(owner, gameID string, state []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO saved_games (owner, game_id, state, updated_at)
		 VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(owner, game_id) DO UPDATE SET
			state = excluded.state,
			updated_at = excluded.updated_at`,
		owner, gameID, string(state),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save game: %w", err)
	}
	return nil
}

// LoadGame returns owner's saved state for a game or ErrNoSavedGame.
func (s *Store) LoadGame(owner, gameID string) ([]byte, error) {
	var state string
	err := s.db.QueryRow(
		"SELECT state FROM saved_games WHERE owner = ? AND game_id = ?",
		owner, gameID,
	).Scan(&state)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w for %q", ErrNoSavedGame, gameID)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot load game: %w", err)
	}
	return []byte(state), nil
}

// TakeSavedGame loads owner's save and removes it in one transaction, so
// a save can be resumed by one session only.
func (s *Store) TakeSavedGame(owner, gameID string) ([]byte, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("storage: cannot take saved game: %w", err)
	}
	defer tx.Rollback()

	var state string
	err = tx.QueryRow(
		"SELECT state FROM saved_games WHERE owner = ? AND game_id = ?",
		owner, gameID,
	).Scan(&state)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w for %q", ErrNoSavedGame, gameID)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot take saved game: %w", err)
	}

	if _, err := tx.Exec("DELETE FROM saved_games WHERE owner = ? AND game_id = ?", owner, gameID); err != nil {
		return nil, fmt.Errorf("storage: cannot take saved game: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("storage: cannot take saved game: %w", err)
	}
	return []byte(state), nil
}

// DeleteSavedGame removes owner's saved state for a game. Missing saves are not an error.
func (s *Store) DeleteSavedGame(owner, gameID string) error {
	if _, err := s.db.Exec("DELETE FROM saved_games WHERE owner = ? AND game_id = ?", owner, gameID); err != nil {
		return fmt.Errorf("storage: cannot delete saved game: %w", err)
	}
	return nil
}

// migrateSavedGames moves saves from the single-slot table, which had no
// owner column, into the owner-keyed one. Old saves belong to LocalOwner.
func (s *Store) migrateSavedGames() error {
	var columns, owners int
	err := s.db.QueryRow(
		"SELECT COUNT(*), COUNT(CASE WHEN name = 'owner' THEN 1 END) FROM pragma_table_info('saved_games')",
	).Scan(&columns, &owners)
	if err != nil || columns == 0 || owners > 0 {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmts := []string{
		"ALTER TABLE saved_games RENAME TO saved_games_legacy",
		savedGamesSchema,
		`INSERT INTO saved_games (owner, game_id, state, updated_at)
		 SELECT '` + LocalOwner + `', game_id, state, updated_at FROM saved_games_legacy`,
		"DROP TABLE saved_games_legacy",
	}
	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return err
		}
	}
	return tx.Commit()
}

const savedGamesSchema = `
	CREATE TABLE IF NOT EXISTS saved_games (
		owner TEXT NOT NULL,
		game_id TEXT NOT NULL,
		state TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (owner, game_id)
	);`
