package chess5d

import "fmt"

// Draft is a board under construction. The first completing mutation
// (Move, Depart or Arrive) finalizes it and returns the resulting *Board;
// every later mutation fails with CodeFinalized.
type Draft struct {
	b         Board
	finalized bool
	notes     []Advisory
}

func (d *Draft) Turn() int { return d.b.turn }

func (d *Draft) Line() int { return d.b.line }

func (d *Draft) SideToMove() Side { return d.b.side }

func (d *Draft) At(sq Square) Occupant { return d.b.AtSquare(sq) }

func (d *Draft) Finalized() bool { return d.finalized }

// Notes returns the advisories raised while building the board.
func (d *Draft) Notes() []Advisory { return d.notes }

func (d *Draft) note(code AdvisoryCode, format string, args ...any) {
	d.notes = append(d.notes, Advisory{
		Code:    code,
		Line:    d.b.line,
		Turn:    d.b.turn,
		Message: fmt.Sprintf(format, args...),
	})
}

func (d *Draft) fail(code Code, sq Square, reason string) *Error {
	return newError(code, "illegal move on %s %s: %s", d.b.label(), sq, reason)
}

func (d *Draft) checkOpen(sq Square) error {
	if d.finalized {
		return d.fail(CodeFinalized, sq, "board locked")
	}
	return nil
}

// Shift moves a piece without completing the ply. Castling uses it for the rook.
func (d *Draft) Shift(from, to Square) error {
	if err := d.checkOpen(from); err != nil {
		return err
	}
	return d.relocate(from, to, false)
}

// Move relocates the piece on from to to and completes the ply.
func (d *Draft) Move(from, to Square, capture bool) (*Board, error) {
	if err := d.checkOpen(from); err != nil {
		return nil, err
	}
	if err := d.relocate(from, to, capture); err != nil {
		return nil, err
	}
	d.b.lastFrom, d.b.hasFrom = from, true
	d.b.lastTo, d.b.hasTo = to, true
	return d.finalize(), nil
}

func (d *Draft) relocate(from, to Square, capture bool) error {
	if !from.Valid() || !to.Valid() {
		return d.fail(CodeBadNotation, from, "square off the board")
	}
	start, ok := d.b.grid[from.Rank][from.File].Piece()
	if !ok {
		return d.fail(CodeSourceNotFound, from, "no piece to move")
	}
	if start.Side != d.b.side {
		return d.fail(CodeWrongSide, from, "piece belongs to opponent")
	}
	end := d.b.grid[to.Rank][to.File]
	switch {
	case capture && end.IsEmpty():
		// en passant: the captured pawn stands behind the destination, on the source rank.
		behind := Square{File: to.File, Rank: from.Rank}
		if start.Kind == Pawn && d.b.AtSquare(behind).Is(Pawn, d.b.side.Opponent()) {
			d.b.grid[behind.Rank][behind.File] = Empty()
		} else {
			d.note(AdvisoryEmptyCapture, "move from %s: destination %s is empty", from, to)
		}
	case capture:
		if p, _ := end.Piece(); p.Side == d.b.side {
			return d.fail(CodeOwnCapture, from, "destination piece at "+to.String()+" does not belong to opponent")
		}
	case !end.IsEmpty():
		d.note(AdvisoryOccupiedTarget, "move from %s: destination %s is not empty", from, to)
	}
	d.b.grid[to.Rank][to.File] = d.b.grid[from.Rank][from.File]
	d.b.grid[from.Rank][from.File] = Empty()
	return nil
}

// Depart removes the travelling piece from its source board and completes the ply.
func (d *Draft) Depart(from Square, kind PieceKind, target TravelTarget) (*Board, error) {
	if err := d.checkOpen(from); err != nil {
		return nil, err
	}
	p, ok := d.b.AtSquare(from).Piece()
	if !ok {
		return nil, d.fail(CodeSourceNotFound, from, "no piece to move")
	}
	if p.Kind != kind {
		return nil, d.fail(CodeWrongPiece, from, "piece is "+p.Kind.String()+", not "+kind.String())
	}
	if p.Side != d.b.side {
		return nil, d.fail(CodeWrongSide, from, "piece belongs to opponent")
	}
	d.b.grid[from.Rank][from.File] = Empty()
	d.b.lastFrom, d.b.hasFrom = from, true
	d.b.travel, d.b.hasTravel = target, true
	return d.finalize(), nil
}

// Arrive places a travelling piece of the side to move on at and completes the ply.
func (d *Draft) Arrive(at Square, kind PieceKind, capture bool, origin TravelTarget) (*Board, error) {
	if err := d.checkOpen(at); err != nil {
		return nil, err
	}
	if !at.Valid() {
		return nil, d.fail(CodeBadNotation, at, "square off the board")
	}
	end := d.b.AtSquare(at)
	switch {
	case capture && end.IsEmpty():
		d.note(AdvisoryEmptyCapture, "arrival on %s: destination is empty", at)
	case capture:
		if p, _ := end.Piece(); p.Side == d.b.side {
			d.note(AdvisoryFriendlyTarget, "arrival on %s: destination piece does not belong to opponent", at)
		}
	case !end.IsEmpty():
		d.note(AdvisoryOccupiedTarget, "arrival on %s: destination is not empty", at)
	}
	d.b.grid[at.Rank][at.File] = Occupied(Piece{Kind: kind, Side: d.b.side})
	d.b.lastTo, d.b.hasTo = at, true
	d.b.travel, d.b.hasTravel = origin, true
	return d.finalize(), nil
}

func (d *Draft) finalize() *Board {
	if d.b.side == Black {
		d.b.turn++
	}
	d.b.side = d.b.side.Opponent()
	d.finalized = true
	b := d.b
	return &b
}
