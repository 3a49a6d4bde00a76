package chess5d

type SearchStatus int

const (
	NotFound SearchStatus = iota
	Found
	Ambiguous
)

func (s SearchStatus) String() string {
	switch s {
	case Found:
		return "found"
	case Ambiguous:
		return "ambiguous"
	default:
		return "not found"
	}
}

// SourceSearch is the outcome of looking for the piece that makes a move.
type SourceSearch struct {
	Status SearchStatus
	Square Square
}

// Hint restricts the source square; -1 leaves a coordinate open.
type Hint struct {
	File int
	Rank int
}

// AnyHint leaves both source coordinates open.
func AnyHint() Hint { return Hint{File: -1, Rank: -1} }

func (h Hint) admits(sq Square) bool {
	return (h.File < 0 || h.File == sq.File) && (h.Rank < 0 || h.Rank == sq.Rank)
}

func (h Hint) complete() bool { return h.File >= 0 && h.Rank >= 0 }

func (h Hint) square() Square { return Square{File: h.File, Rank: h.Rank} }

func (s *SourceSearch) offer(sq Square) {
	switch s.Status {
	case NotFound:
		s.Status, s.Square = Found, sq
	case Found:
		s.Status = Ambiguous
	}
}

var (
	orthogonal = [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	diagonal   = [][2]int{{1, 1}, {-1, 1}, {1, -1}, {-1, -1}}
	allDirs    = append(append([][2]int{}, orthogonal...), diagonal...)

	knightJumps = [][2]int{{2, 1}, {2, -1}, {-2, 1}, {-2, -1}, {1, 2}, {1, -2}, {-1, 2}, {-1, -2}}
)

// FindSource looks for the unique piece of kind and side that can reach to,
// restricted by hint. Pawns are searched as quiet pushes.
func (b *Board) FindSource(kind PieceKind, side Side, to Square, hint Hint) SourceSearch {
	var res SourceSearch
	switch kind {
	case Pawn:
		return b.findPusher(side, to, hint)
	case Knight:
		for _, j := range knightJumps {
			sq := Square{File: to.File + j[0], Rank: to.Rank + j[1]}
			if sq.Valid() && hint.admits(sq) && b.AtSquare(sq).Is(Knight, side) {
				res.offer(sq)
			}
		}
		return res
	case Rook:
		b.rays(&res, kind, side, to, hint, orthogonal, 0)
	case Bishop:
		b.rays(&res, kind, side, to, hint, diagonal, 0)
	case Queen:
		b.rays(&res, kind, side, to, hint, allDirs, 0)
	case King:
		b.rays(&res, kind, side, to, hint, allDirs, 1)
	}
	return res
}

func (b *Board) rays(res *SourceSearch, kind PieceKind, side Side, to Square, hint Hint, dirs [][2]int, limit int) {
	for _, dir := range dirs {
		sq, occ, ok := b.raySearch(to, dir[0], dir[1], limit)
		if ok && occ.Is(kind, side) && hint.admits(sq) {
			res.offer(sq)
		}
	}
}

// findPusher prefers the pawn one step behind to; the two-step square is
// only considered when that square is empty.
func (b *Board) findPusher(side Side, to Square, hint Hint) SourceSearch {
	one := Square{File: to.File, Rank: to.Rank - side.forward()}
	if !one.Valid() || !hint.admits(one) {
		return SourceSearch{}
	}
	occ := b.AtSquare(one)
	if occ.Is(Pawn, side) {
		return SourceSearch{Status: Found, Square: one}
	}
	if !occ.IsEmpty() {
		return SourceSearch{}
	}
	two := Square{File: to.File, Rank: one.Rank - side.forward()}
	if two.Valid() && hint.admits(two) && b.AtSquare(two).Is(Pawn, side) {
		return SourceSearch{Status: Found, Square: two}
	}
	return SourceSearch{}
}

// findPawnOnFile scans a whole file for the side's pawn.
func (b *Board) findPawnOnFile(side Side, file int) SourceSearch {
	var res SourceSearch
	for rank := 0; rank < BoardSize; rank++ {
		sq := Square{File: file, Rank: rank}
		if b.AtSquare(sq).Is(Pawn, side) {
			res.offer(sq)
		}
	}
	return res
}
