package engine

// DefaultFourProbability is the chance that a spawned tile is a 4.
const DefaultFourProbability = 0.1

// Rand is the randomness the engine needs. *math/rand/v2.Rand satisfies it.
type Rand interface {
	IntN(n int) int
	Float64() float64
}

// Spawner places new tiles on a board.
type Spawner struct {
	rng      Rand
	fourProb float64
}

// NewSpawner creates a spawner that emits a 4 with probability fourProb and
// a 2 otherwise.
func NewSpawner(rng Rand, fourProb float64) *Spawner {
	return &Spawner{rng: rng, fourProb: fourProb}
}

// Spawn places one tile in a uniformly chosen empty cell.
// Returns the new board and true, or b unchanged and false when b is full.
func (s *Spawner) Spawn(b Board) (Board, bool) {
	empty := b.EmptyCells()
	if len(empty) == 0 {
		return b, false
	}

	cell := empty[s.rng.IntN(len(empty))]

	value := 2
	if s.rng.Float64() < s.fourProb {
		value = 4
	}

	return b.With(cell.Row, cell.Col, value), true
}

// SpawnTile places one tile using the default 2/4 distribution.
func SpawnTile(b Board, rng Rand) Board {
	out, _ := NewSpawner(rng, DefaultFourProbability).Spawn(b)
	return out
}

// NewGameBoard returns an n×n board with two spawned tiles.
func NewGameBoard(n int, rng Rand) Board {
	s := NewSpawner(rng, DefaultFourProbability)
	b, _ := s.Spawn(NewBoard(n))
	b, _ = s.Spawn(b)
	return b
}
