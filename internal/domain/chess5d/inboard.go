package chess5d

import "strings"

type castle int

const (
	noCastle castle = iota
	castleShort
	castleLong
)

// basicMove is a parsed single-board move token.
type basicMove struct {
	text    string
	kind    PieceKind
	capture bool
	castle  castle
	from    Hint
	to      Square
	// fileOnly marks pawn captures written with files alone ("exd").
	fileOnly bool
}

// cleanMove drops check and annotation suffixes.
func cleanMove(token string) string {
	return strings.TrimRight(token, "+#!?")
}

func parseBasicMove(token string, side Side) (basicMove, error) {
	m := basicMove{text: token, from: AnyHint()}
	s := cleanMove(token)
	switch s {
	case "O-O":
		m.kind, m.castle = King, castleShort
		return m, nil
	case "O-O-O":
		m.kind, m.castle = King, castleLong
		return m, nil
	}
	if s != "" {
		if k, ok := kindFromLetter(s[0]); ok {
			m.kind = k
			s = s[1:]
		}
	}
	if strings.Contains(s, "x") {
		m.capture = true
		s = strings.ReplaceAll(s, "x", "")
	}

	bad := func() (basicMove, error) {
		return basicMove{}, newError(CodeBadNotation, "unable to interpret move %q", token)
	}
	var err error
	switch len(s) {
	case 2:
		if m.kind == Pawn && m.capture {
			from, ok1 := parseFile(s[0])
			to, ok2 := parseFile(s[1])
			if !ok1 || !ok2 {
				return bad()
			}
			m.from.File, m.to.File, m.fileOnly = from, to, true
			return m, nil
		}
		if m.to, err = ParseSquare(s); err != nil {
			return bad()
		}
		if m.kind == Pawn {
			m.from.File = m.to.File
		}
	case 3:
		if m.to, err = ParseSquare(s[1:]); err != nil {
			return bad()
		}
		if rank, ok := parseRank(s[0]); ok && m.kind != Pawn {
			m.from.Rank = rank
		} else if file, ok := parseFile(s[0]); ok {
			m.from.File = file
		} else {
			return bad()
		}
		if m.kind == Pawn {
			m.from.Rank = m.to.Rank - side.forward()
		}
	case 4:
		from, err1 := ParseSquare(s[:2])
		to, err2 := ParseSquare(s[2:])
		if err1 != nil || err2 != nil {
			return bad()
		}
		m.from, m.to = Hint{File: from.File, Rank: from.Rank}, to
	default:
		return bad()
	}
	return m, nil
}

// applyBasic plays a single-board move on a copy of board and returns the
// finalized result.
func applyBasic(token string, side Side, board *Board) (*Board, []Advisory, error) {
	m, err := parseBasicMove(token, side)
	if err != nil {
		return nil, nil, err
	}
	if m.castle != noCastle {
		return applyCastle(m, side, board)
	}
	if m.kind == Unicorn || m.kind == Dragon {
		return nil, nil, newError(CodeGeometry, "%ss are incapable of moves within one board", m.kind)
	}

	from, to, err := resolveSource(m, side, board)
	if err != nil {
		return nil, nil, err
	}
	if p, ok := board.AtSquare(from).Piece(); ok && p.Kind != m.kind {
		return nil, nil, newError(CodeWrongPiece, "unable to interpret move %q: %s holds a %s", token, from, p.Kind)
	}
	d := Delta{File: to.File - from.File, Rank: to.Rank - from.Rank}
	if err := checkPlanar(m.kind, side, m.capture, d); err != nil {
		return nil, nil, err
	}

	draft := board.Draft()
	next, err := draft.Move(from, to, m.capture)
	if err != nil {
		return nil, nil, err
	}
	return next, draft.Notes(), nil
}

func resolveSource(m basicMove, side Side, board *Board) (from, to Square, err error) {
	to = m.to
	if m.from.complete() {
		return m.from.square(), to, nil
	}
	var res SourceSearch
	if m.fileOnly {
		res = board.findPawnOnFile(side, m.from.File)
		if res.Status == Found {
			to.Rank = res.Square.Rank + side.forward()
		}
	} else {
		res = board.FindSource(m.kind, side, to, m.from)
	}
	switch res.Status {
	case Found:
		return res.Square, to, nil
	case Ambiguous:
		return from, to, newError(CodeAmbiguousSource, "unable to interpret move %q: more than one %s can do this move", m.text, m.kind)
	default:
		return from, to, newError(CodeSourceNotFound, "unable to interpret move %q: failed to find the moving %s on board %s", m.text, m.kind, board.label())
	}
}

func applyCastle(m basicMove, side Side, board *Board) (*Board, []Advisory, error) {
	rank := 0
	if side == Black {
		rank = BoardSize - 1
	}
	king := Square{File: 4, Rank: rank}
	rookFile, rookTo, kingTo := 7, 5, 6
	between := []int{5, 6}
	if m.castle == castleLong {
		rookFile, rookTo, kingTo = 0, 3, 2
		between = []int{1, 2, 3}
	}
	rook := Square{File: rookFile, Rank: rank}

	if !board.AtSquare(king).Is(King, side) {
		return nil, nil, newError(CodeCastling, "unable to interpret move %q: %s is not a %s king", m.text, king, side)
	}
	if !board.AtSquare(rook).Is(Rook, side) {
		return nil, nil, newError(CodeCastling, "unable to interpret move %q: %s is not a %s rook", m.text, rook, side)
	}
	for _, f := range between {
		if sq := (Square{File: f, Rank: rank}); !board.AtSquare(sq).IsEmpty() {
			return nil, nil, newError(CodeCastling, "unable to interpret move %q: %s is not vacant", m.text, sq)
		}
	}

	draft := board.Draft()
	if err := draft.Shift(rook, Square{File: rookTo, Rank: rank}); err != nil {
		return nil, nil, err
	}
	next, err := draft.Move(king, Square{File: kingTo, Rank: rank}, false)
	if err != nil {
		return nil, nil, err
	}
	return next, draft.Notes(), nil
}
