package t2048

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-2048/internal/engine"
)

// ErrVariantMismatch is returned when a save belongs to another variant.
var ErrVariantMismatch = errors.New("t2048: saved game belongs to another variant")

// savedGame is the persisted form of an unfinished run.
type savedGame struct {
	Variant  string          `json:"variant"`
	Snapshot engine.Snapshot `json:"snapshot"`
}

// Save encodes the current run as JSON.
func (g *Game) Save() ([]byte, error) {
	if g.eng == nil {
		return nil, errors.New("t2048: save before reset")
	}
	data, err := json.Marshal(savedGame{
		Variant:  g.variant.ID,
		Snapshot: g.eng.Snapshot(),
	})
	if err != nil {
		return nil, fmt.Errorf("t2048: encode save: %w", err)
	}
	return data, nil
}

// Load replaces the current run with a saved one. Reset must be called first.
func (g *Game) Load(data []byte) error {
	if g.eng == nil {
		return errors.New("t2048: load before reset")
	}

	var sg savedGame
	if err := json.Unmarshal(data, &sg); err != nil {
		return fmt.Errorf("t2048: decode save: %w", err)
	}
	if sg.Variant != g.variant.ID {
		return fmt.Errorf("%w: %q", ErrVariantMismatch, sg.Variant)
	}
	if g.variant.Size != 0 && sg.Snapshot.Size != g.variant.Size {
		return fmt.Errorf("%w: size %d", ErrVariantMismatch, sg.Snapshot.Size)
	}

	if err := g.eng.Restore(sg.Snapshot); err != nil {
		return err
	}

	g.runID = ""
	g.syncRun()
	g.paused = false
	g.checkScreenSize()
	return nil
}
