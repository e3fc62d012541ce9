// Package t2048 plugs the 2048 board engine into the game registry.
// Each variant is a registered game with its own board size and leaderboard.
package t2048

import "github.com/vovakirdan/tui-2048/internal/registry"

// Variant defines a registered board configuration.
type Variant struct {
	ID    string
	Title string
	Size  int // Board side length; 0 follows the configured size
}

// Variants lists every registered board, smallest first.
var Variants = []Variant{
	{ID: "2048_mini", Title: "2048 Mini (3x3)", Size: 3},
	{ID: "2048", Title: "2048", Size: 0},
	{ID: "2048_large", Title: "2048 Large (5x5)", Size: 5},
	{ID: "2048_huge", Title: "2048 Huge (6x6)", Size: 6},
}

func init() {
	for _, v := range Variants {
		registry.Register(v.ID, v.Size, func() registry.Game {
			return New(v)
		})
	}
}

// VariantByID returns the variant with the given ID.
func VariantByID(id string) (Variant, bool) {
	for _, v := range Variants {
		if v.ID == id {
			return v, true
		}
	}
	return Variant{}, false
}
