package tetris

import "github.com/kamstrup/intmap"

// Stats counts what happened during the current game. It is cleared on
// Start and Reset.
type Stats struct {
	pieces *intmap.Map[PieceType, int]
	clears *intmap.Map[int, int]

	Locks     int
	Holds     int
	HardDrops int
}

func newStats() *Stats {
	return &Stats{
		pieces: intmap.New[PieceType, int](len(PieceTypes)),
		clears: intmap.New[int, int](4),
	}
}

func (s *Stats) recordSpawn(t PieceType) {
	n, _ := s.pieces.Get(t)
	s.pieces.Put(t, n+1)
}

func (s *Stats) recordClear(rows int) {
	n, _ := s.clears.Get(rows)
	s.clears.Put(rows, n+1)
}

func (s *Stats) reset() {
	s.pieces.Clear()
	s.clears.Clear()
	s.Locks = 0
	s.Holds = 0
	s.HardDrops = 0
}

// Pieces returns how many pieces of type t entered play, including pieces
// swapped in from the hold slot.
func (s *Stats) Pieces(t PieceType) int {
	n, _ := s.pieces.Get(t)
	return n
}

// TotalPieces returns the number of pieces that entered play.
func (s *Stats) TotalPieces() int {
	total := 0
	for _, t := range PieceTypes {
		total += s.Pieces(t)
	}
	return total
}

// Clears returns how many times exactly rows lines were cleared at once.
func (s *Stats) Clears(rows int) int {
	n, _ := s.clears.Get(rows)
	return n
}
