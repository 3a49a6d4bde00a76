package chess5d

import (
	"errors"
	"testing"
)

func TestFindSource(t *testing.T) {
	cases := []struct {
		name   string
		pieces map[string]Piece
		kind   PieceKind
		side   Side
		to     string
		hint   Hint
		status SearchStatus
		at     string
	}{
		{
			name:   "single knight",
			pieces: map[string]Piece{"g1": {Knight, White}, "b1": {Knight, White}},
			kind:   Knight, side: White, to: "f3", hint: AnyHint(),
			status: Found, at: "g1",
		},
		{
			name:   "two rooks",
			pieces: map[string]Piece{"a1": {Rook, White}, "h1": {Rook, White}},
			kind:   Rook, side: White, to: "d1", hint: AnyHint(),
			status: Ambiguous,
		},
		{
			name:   "two rooks disambiguated by file",
			pieces: map[string]Piece{"a1": {Rook, White}, "h1": {Rook, White}},
			kind:   Rook, side: White, to: "d1", hint: Hint{File: 7, Rank: -1},
			status: Found, at: "h1",
		},
		{
			name:   "blocked bishop",
			pieces: map[string]Piece{"c1": {Bishop, Black}, "d2": {Pawn, White}},
			kind:   Bishop, side: Black, to: "e3", hint: AnyHint(),
			status: NotFound,
		},
		{
			name:   "queen on a diagonal",
			pieces: map[string]Piece{"h8": {Queen, Black}},
			kind:   Queen, side: Black, to: "a1", hint: AnyHint(),
			status: Found, at: "h8",
		},
		{
			name:   "king out of reach",
			pieces: map[string]Piece{"e1": {King, White}},
			kind:   King, side: White, to: "e3", hint: AnyHint(),
			status: NotFound,
		},
		{
			name:   "pawn double step",
			pieces: map[string]Piece{"e7": {Pawn, Black}},
			kind:   Pawn, side: Black, to: "e5", hint: Hint{File: 4, Rank: -1},
			status: Found, at: "e7",
		},
		{
			name:   "pawn double step blocked",
			pieces: map[string]Piece{"e2": {Pawn, White}, "e3": {Knight, Black}},
			kind:   Pawn, side: White, to: "e4", hint: Hint{File: 4, Rank: -1},
			status: NotFound,
		},
		{
			name:   "pawn prefers single step",
			pieces: map[string]Piece{"e2": {Pawn, White}, "e3": {Pawn, White}},
			kind:   Pawn, side: White, to: "e4", hint: Hint{File: 4, Rank: -1},
			status: Found, at: "e3",
		},
		{
			name:   "unicorn never searched",
			pieces: map[string]Piece{"a1": {Unicorn, White}},
			kind:   Unicorn, side: White, to: "b2", hint: AnyHint(),
			status: NotFound,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			b := boardWith(t, c.side, c.pieces)
			res := b.FindSource(c.kind, c.side, sq(t, c.to), c.hint)
			if res.Status != c.status {
				t.Fatalf("FindSource status = %s, want %s", res.Status, c.status)
			}
			if c.status == Found && res.Square != sq(t, c.at) {
				t.Fatalf("FindSource square = %s, want %s", res.Square, c.at)
			}
		})
	}
}

func TestApplyBasic(t *testing.T) {
	start := NewStartBoard()

	next, notes, err := applyBasic("Nf3", White, start)
	if err != nil || len(notes) != 0 {
		t.Fatalf("Nf3 = %v %v", notes, err)
	}
	if !next.AtSquare(sq(t, "f3")).Is(Knight, White) || !next.AtSquare(sq(t, "g1")).IsEmpty() {
		t.Fatalf("knight did not move g1-f3")
	}

	if _, _, err := applyBasic("Qz9", White, start); !errors.Is(err, ErrBadNotation) {
		t.Fatalf("Qz9 error = %v, want bad notation", err)
	}
	if _, _, err := applyBasic("Bc4", White, start); !errors.Is(err, ErrSourceNotFound) {
		t.Fatalf("blocked Bc4 error = %v, want source not found", err)
	}
	if _, _, err := applyBasic("Ue4", White, start); !errors.Is(err, ErrGeometry) {
		t.Fatalf("Ue4 error = %v, want geometry", err)
	}
	if _, _, err := applyBasic("e1e3", White, start); !errors.Is(err, ErrWrongPiece) {
		t.Fatalf("e1e3 error = %v, want wrong piece", err)
	}
	if _, _, err := applyBasic("e2e5", White, start); !errors.Is(err, ErrGeometry) {
		t.Fatalf("e2e5 error = %v, want geometry", err)
	}
	if _, _, err := applyBasic("Nf3+", White, start); err != nil {
		t.Fatalf("check suffix not ignored: %v", err)
	}
}

func TestApplyBasicPawnCapture(t *testing.T) {
	b := boardWith(t, White, map[string]Piece{
		"e4": {Pawn, White},
		"d5": {Pawn, Black},
	})
	next, _, err := applyBasic("exd", White, b)
	if err != nil {
		t.Fatalf("exd: %v", err)
	}
	if !next.AtSquare(sq(t, "d5")).Is(Pawn, White) || !next.AtSquare(sq(t, "e4")).IsEmpty() {
		t.Fatalf("exd did not capture on d5")
	}

	next, _, err = applyBasic("exd5", White, b)
	if err != nil {
		t.Fatalf("exd5: %v", err)
	}
	if !next.AtSquare(sq(t, "d5")).Is(Pawn, White) {
		t.Fatalf("exd5 did not capture on d5")
	}
}

func TestApplyCastle(t *testing.T) {
	b := boardWith(t, Black, map[string]Piece{
		"e8": {King, Black},
		"h8": {Rook, Black},
		"a8": {Rook, Black},
		"b8": {Knight, Black},
	})
	next, _, err := applyBasic("O-O", Black, b)
	if err != nil {
		t.Fatalf("O-O: %v", err)
	}
	if !next.AtSquare(sq(t, "g8")).Is(King, Black) || !next.AtSquare(sq(t, "f8")).Is(Rook, Black) {
		t.Fatalf("short castle misplaced pieces:\n%s", next)
	}
	if next.Turn() != 6 || next.SideToMove() != White {
		t.Fatalf("castling must complete exactly one ply, got (%d, %s)", next.Turn(), next.SideToMove())
	}
	if _, _, err := applyBasic("O-O-O", Black, b); !errors.Is(err, ErrCastling) {
		t.Fatalf("O-O-O through b8 = %v, want castling error", err)
	}
}
