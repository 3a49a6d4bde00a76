package chess5d

import (
	"fmt"
	"strings"
)

// TravelTarget points from a board at its cross-time counterpart.
type TravelTarget struct {
	Turn   int
	Line   int
	Square Square
}

func (t TravelTarget) String() string {
	return fmt.Sprintf("L%dT%d%s", t.Line, t.Turn, t.Square)
}

// Board is one finalized 8x8 snapshot. It has no mutating methods: changes are
// made on a Draft obtained from Draft().
type Board struct {
	turn int
	line int
	side Side
	grid [BoardSize][BoardSize]Occupant // [rank][file]

	lastFrom, lastTo Square
	hasFrom, hasTo   bool
	travel           TravelTarget
	hasTravel        bool
}

var homeRow = [BoardSize]PieceKind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// NewStartBoard returns the standard opening position on line 0, turn 1, White to move.
func NewStartBoard() *Board {
	b := &Board{turn: 1, line: 0, side: White}
	for file, kind := range homeRow {
		b.grid[0][file] = Occupied(Piece{Kind: kind, Side: White})
		b.grid[1][file] = Occupied(Piece{Kind: Pawn, Side: White})
		b.grid[6][file] = Occupied(Piece{Kind: Pawn, Side: Black})
		b.grid[7][file] = Occupied(Piece{Kind: kind, Side: Black})
	}
	return b
}

func (b *Board) Turn() int { return b.turn }

func (b *Board) Line() int { return b.line }

func (b *Board) SideToMove() Side { return b.side }

// At returns the occupant of (file, rank); squares off the board read as empty.
func (b *Board) At(file, rank int) Occupant {
	sq := Square{File: file, Rank: rank}
	if !sq.Valid() {
		return Empty()
	}
	return b.grid[rank][file]
}

func (b *Board) AtSquare(sq Square) Occupant { return b.At(sq.File, sq.Rank) }

func (b *Board) LastFrom() (Square, bool) { return b.lastFrom, b.hasFrom }

func (b *Board) LastTo() (Square, bool) { return b.lastTo, b.hasTo }

func (b *Board) Travel() (TravelTarget, bool) { return b.travel, b.hasTravel }

// Before reports whether b's (turn, side) position comes strictly before o's.
func (b *Board) Before(o *Board) bool {
	if b.turn != o.turn {
		return b.turn < o.turn
	}
	return b.side == White && o.side == Black
}

// Equal compares tags and squares; move annotations are ignored.
func (b *Board) Equal(o *Board) bool {
	if b == nil || o == nil {
		return b == o
	}
	return b.turn == o.turn && b.line == o.line && b.side == o.side && b.grid == o.grid
}

// Draft starts a mutable copy of the board. Move annotations are not carried over.
func (b *Board) Draft() *Draft {
	d := &Draft{}
	d.b.turn = b.turn
	d.b.line = b.line
	d.b.side = b.side
	d.b.grid = b.grid
	return d
}

// relabel copies the board onto another line, keeping annotations.
func (b *Board) relabel(line int) *Board {
	c := *b
	c.line = line
	return &c
}

// raySearch walks from start in (df, dr) steps and returns the first occupied
// square. limit <= 0 means unbounded.
func (b *Board) raySearch(start Square, df, dr, limit int) (Square, Occupant, bool) {
	sq := start
	for dist := 1; limit <= 0 || dist <= limit; dist++ {
		sq = Square{File: sq.File + df, Rank: sq.Rank + dr}
		if !sq.Valid() {
			return Square{}, Empty(), false
		}
		if occ := b.grid[sq.Rank][sq.File]; !occ.IsEmpty() {
			return sq, occ, true
		}
	}
	return Square{}, Empty(), false
}

func (b *Board) label() string {
	return fmt.Sprintf("L%d T%d", b.line, b.turn)
}

// String renders the board as ASCII with rank 8 on top.
func (b *Board) String() string {
	var sb strings.Builder
	sep := "+--+--+--+--+--+--+--+--+\n"
	fmt.Fprintf(&sb, "L%d T%d%c\n", b.line, b.turn, b.side.Letter())
	sb.WriteString(sep)
	for rank := BoardSize - 1; rank >= 0; rank-- {
		for file := 0; file < BoardSize; file++ {
			sb.WriteByte('|')
			sb.WriteString(b.grid[rank][file].String())
		}
		sb.WriteString("|\n")
		sb.WriteString(sep)
	}
	return sb.String()
}
