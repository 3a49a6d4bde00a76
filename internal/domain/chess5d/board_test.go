package chess5d

import (
	"errors"
	"strings"
	"testing"
)

func sq(t *testing.T, s string) Square {
	t.Helper()
	out, err := ParseSquare(s)
	if err != nil {
		t.Fatalf("ParseSquare(%q): %v", s, err)
	}
	return out
}

// boardWith builds a turn-5 board on line 0 holding only the given pieces.
func boardWith(t *testing.T, side Side, pieces map[string]Piece) *Board {
	t.Helper()
	b := &Board{turn: 5, side: side}
	for s, p := range pieces {
		at := sq(t, s)
		b.grid[at.Rank][at.File] = Occupied(p)
	}
	return b
}

func TestStartBoard(t *testing.T) {
	b := NewStartBoard()
	if b.Turn() != 1 || b.Line() != 0 || b.SideToMove() != White {
		t.Fatalf("start tags = (%d, %d, %s)", b.Turn(), b.Line(), b.SideToMove())
	}
	if !b.AtSquare(sq(t, "e1")).Is(King, White) || !b.AtSquare(sq(t, "d8")).Is(Queen, Black) {
		t.Fatalf("royal pieces misplaced")
	}
	if !b.AtSquare(sq(t, "c7")).Is(Pawn, Black) || !b.AtSquare(sq(t, "h2")).Is(Pawn, White) {
		t.Fatalf("pawns misplaced")
	}
	if !b.At(4, 4).IsEmpty() || !b.At(-1, 9).IsEmpty() {
		t.Fatalf("empty and off-board squares must read as empty")
	}
	out := b.String()
	if !strings.HasPrefix(out, "L0 T1W\n") || !strings.Contains(out, "|BR|BN|BB|BQ|BK|BB|BN|BR|") {
		t.Fatalf("unexpected dump:\n%s", out)
	}
}

func TestDraftMoveFinalizes(t *testing.T) {
	start := NewStartBoard()
	d := start.Draft()
	next, err := d.Move(sq(t, "e2"), sq(t, "e4"), false)
	if err != nil {
		t.Fatalf("Move: %v", err)
	}
	if next.Turn() != 1 || next.SideToMove() != Black {
		t.Fatalf("after white ply = (%d, %s), want (1, black)", next.Turn(), next.SideToMove())
	}
	if from, ok := next.LastFrom(); !ok || from != sq(t, "e2") {
		t.Fatalf("LastFrom = %v %v", from, ok)
	}
	if !start.AtSquare(sq(t, "e2")).Is(Pawn, White) {
		t.Fatalf("source board was modified")
	}

	if _, err := d.Move(sq(t, "d2"), sq(t, "d4"), false); !errors.Is(err, ErrFinalized) {
		t.Fatalf("second Move error = %v, want finalized", err)
	}
	if err := d.Shift(sq(t, "d2"), sq(t, "d3")); !IsFinalized(err) {
		t.Fatalf("Shift after finalize = %v, want finalized", err)
	}

	reply, err := next.Draft().Move(sq(t, "e7"), sq(t, "e5"), false)
	if err != nil {
		t.Fatalf("black Move: %v", err)
	}
	if reply.Turn() != 2 || reply.SideToMove() != White {
		t.Fatalf("after black ply = (%d, %s), want (2, white)", reply.Turn(), reply.SideToMove())
	}
}

func TestDraftMoveChecks(t *testing.T) {
	b := boardWith(t, White, map[string]Piece{
		"d4": {Rook, White},
		"d6": {Rook, White},
		"f4": {Knight, Black},
	})
	cases := []struct {
		name     string
		from, to string
		capture  bool
		want     *Error
	}{
		{"empty source", "a1", "a2", false, ErrSourceNotFound},
		{"opponent piece", "f4", "f5", false, ErrWrongSide},
		{"own capture", "d4", "d6", true, ErrOwnCapture},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := b.Draft().Move(sq(t, c.from), sq(t, c.to), c.capture)
			if !errors.Is(err, c.want) {
				t.Fatalf("Move error = %v, want code %d", err, c.want.Code)
			}
		})
	}
}

func TestDraftAdvisories(t *testing.T) {
	b := boardWith(t, White, map[string]Piece{
		"d4": {Rook, White},
		"d7": {Pawn, Black},
	})

	d := b.Draft()
	next, err := d.Move(sq(t, "d4"), sq(t, "d7"), false)
	if err != nil {
		t.Fatalf("quiet move onto a piece: %v", err)
	}
	if len(d.Notes()) != 1 || d.Notes()[0].Code != AdvisoryOccupiedTarget {
		t.Fatalf("notes = %v, want one occupied-target advisory", d.Notes())
	}
	if !next.AtSquare(sq(t, "d7")).Is(Rook, White) {
		t.Fatalf("rook did not land on d7")
	}

	d = b.Draft()
	if _, err := d.Move(sq(t, "d4"), sq(t, "h4"), true); err != nil {
		t.Fatalf("capture onto empty square: %v", err)
	}
	if len(d.Notes()) != 1 || d.Notes()[0].Code != AdvisoryEmptyCapture {
		t.Fatalf("notes = %v, want one empty-capture advisory", d.Notes())
	}
}

func TestEnPassant(t *testing.T) {
	b := boardWith(t, White, map[string]Piece{
		"e5": {Pawn, White},
		"d5": {Pawn, Black},
	})
	d := b.Draft()
	next, err := d.Move(sq(t, "e5"), sq(t, "d6"), true)
	if err != nil {
		t.Fatalf("en passant: %v", err)
	}
	if len(d.Notes()) != 0 {
		t.Fatalf("en passant raised %v", d.Notes())
	}
	if !next.AtSquare(sq(t, "d5")).IsEmpty() {
		t.Fatalf("captured pawn still on d5")
	}
	if !next.AtSquare(sq(t, "d6")).Is(Pawn, White) {
		t.Fatalf("capturing pawn not on d6")
	}
}

func TestBoardOrdering(t *testing.T) {
	w := &Board{turn: 3, side: White}
	bl := &Board{turn: 3, side: Black}
	later := &Board{turn: 4, side: White}
	if !w.Before(bl) || !bl.Before(later) || later.Before(w) || w.Before(w) {
		t.Fatalf("Before does not order by (turn, side)")
	}
	if !NewStartBoard().Equal(NewStartBoard()) {
		t.Fatalf("identical boards compare unequal")
	}
}

func TestDepartArrive(t *testing.T) {
	b := boardWith(t, Black, map[string]Piece{"f6": {Knight, Black}})
	target := TravelTarget{Turn: 1, Line: -1, Square: sq(t, "f4")}

	d := b.Draft()
	if _, err := d.Depart(sq(t, "f6"), Bishop, target); !errors.Is(err, ErrWrongPiece) {
		t.Fatalf("Depart with wrong kind = %v", err)
	}
	d = b.Draft()
	left, err := d.Depart(sq(t, "f6"), Knight, target)
	if err != nil {
		t.Fatalf("Depart: %v", err)
	}
	if !left.AtSquare(sq(t, "f6")).IsEmpty() {
		t.Fatalf("piece still on source")
	}
	if tr, ok := left.Travel(); !ok || tr != target {
		t.Fatalf("Travel = %v %v, want %v", tr, ok, target)
	}

	dest := boardWith(t, Black, map[string]Piece{"f4": {Knight, Black}})
	a := dest.Draft()
	landed, err := a.Arrive(sq(t, "f4"), Knight, true, TravelTarget{Turn: 5, Square: sq(t, "f6")})
	if err != nil {
		t.Fatalf("Arrive: %v", err)
	}
	if len(a.Notes()) != 1 || a.Notes()[0].Code != AdvisoryFriendlyTarget {
		t.Fatalf("notes = %v, want friendly-target advisory", a.Notes())
	}
	if landed.SideToMove() != White || landed.Turn() != 6 {
		t.Fatalf("arrival board tags = (%d, %s)", landed.Turn(), landed.SideToMove())
	}
}
