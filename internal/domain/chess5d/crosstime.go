package chess5d

import (
	"strconv"
	"strings"
)

// crossMove is a parsed three-segment move, e.g. "L0d6 Bx T10d4".
type crossMove struct {
	text       string
	sourceLine int
	from       Square
	kind       PieceKind
	capture    bool

	hasLine, hasTurn, hasSquare bool
	targetLine, targetTurn      int
	to                          Square
}

// leadingInt splits a decimal prefix off s.
func leadingInt(s string, signed bool) (int, string, bool) {
	i := 0
	if signed && i < len(s) && (s[i] == '-' || s[i] == '+') {
		i++
	}
	start := i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == start {
		return 0, s, false
	}
	n, err := strconv.Atoi(s[:i])
	if err != nil {
		return 0, s, false
	}
	return n, s[i:], true
}

func parseCrossMove(segs []string) (crossMove, error) {
	m := crossMove{text: strings.Join(segs, " ")}
	bad := func(why string) (crossMove, error) {
		return crossMove{}, newError(CodeBadNotation, "unable to interpret move %q: %s", m.text, why)
	}

	src := segs[0]
	if !strings.HasPrefix(src, "L") {
		return bad("source has no line indicator")
	}
	line, rest, ok := leadingInt(src[1:], true)
	if !ok {
		return bad("source line is not a number")
	}
	from, err := ParseSquare(rest)
	if err != nil {
		return bad("source square must be explicit")
	}
	m.sourceLine, m.from = line, from

	piece := segs[1]
	if strings.Contains(piece, "x") {
		m.capture = true
		piece = strings.ReplaceAll(piece, "x", "")
	}
	switch {
	case piece == "":
		m.kind = Pawn
	case len(piece) == 1:
		k, ok := kindFromLetter(piece[0])
		if !ok {
			return bad("unknown piece " + piece)
		}
		m.kind = k
	default:
		return bad("unknown piece " + piece)
	}

	target := cleanMove(segs[2])
	if strings.HasPrefix(target, "L") {
		if m.targetLine, target, ok = leadingInt(target[1:], true); !ok {
			return bad("target line is not a number")
		}
		m.hasLine = true
	}
	if strings.HasPrefix(target, "T") {
		if m.targetTurn, target, ok = leadingInt(target[1:], false); !ok {
			return bad("target turn is not a number")
		}
		m.hasTurn = true
	}
	if target != "" {
		if m.to, err = ParseSquare(target); err != nil {
			return bad("target square " + target)
		}
		m.hasSquare = true
	}
	return m, nil
}

// applyCrossTime moves a piece between boards. A destination in the past of
// its line branches a new line; a destination at its line's present is
// appended there. Paths are not checked for obstruction.
func (s *GameState) applyCrossTime(segs []string, side Side, work *Worklist) ([]Advisory, error) {
	m, err := parseCrossMove(segs)
	if err != nil {
		return nil, err
	}
	var notes []Advisory

	if !work.Remove(m.sourceLine) {
		notes = append(notes, Advisory{
			Code:    AdvisoryLineNotPending,
			Line:    m.sourceLine,
			Message: "L" + strconv.Itoa(m.sourceLine) + " not in the list of available lines",
		})
	}
	srcLine, ok := s.timelines.Get(m.sourceLine)
	if !ok {
		return nil, newError(CodeMissingTimeline, "unable to interpret move %q: missing timeline L%d", m.text, m.sourceLine)
	}
	source := srcLine.Present()
	if source.side != side {
		return nil, newError(CodeWrongSide, "unable to interpret move %q: wrong player's turn on L%d", m.text, m.sourceLine)
	}

	targetLine, targetTurn, to := m.sourceLine, source.turn, m.from
	if m.hasLine {
		targetLine = m.targetLine
	}
	if m.hasTurn {
		targetTurn = m.targetTurn
	}
	if m.hasSquare {
		to = m.to
	}
	dstLine, ok := s.timelines.Get(targetLine)
	if !ok {
		return nil, newError(CodeMissingTimeline, "unable to interpret move %q: missing timeline L%d", m.text, targetLine)
	}
	dest, ok := dstLine.find(targetTurn, side)
	if !ok {
		return nil, newError(CodeMissingBoard, "unable to interpret move %q: no board L%d T%d with %s to move", m.text, targetLine, targetTurn, side)
	}
	if dest == source {
		return nil, newError(CodeBadNotation, "unable to interpret move %q: destination is the source board", m.text)
	}
	travel := dest != dstLine.Present()

	d := Delta{
		File: to.File - m.from.File,
		Rank: to.Rank - m.from.Rank,
		Line: targetLine - m.sourceLine,
		Turn: targetTurn - source.turn,
	}
	if err := CheckGeometry(m.kind, side, m.capture, d); err != nil {
		return nil, err
	}
	if !travel && !work.Has(targetLine) {
		return nil, newError(CodeNoPendingLine, "unable to interpret move %q: L%d not in the list of available lines", m.text, targetLine)
	}

	arrivalLine := targetLine
	if travel {
		arrivalLine = s.timelines.NextLine(side)
	}
	srcDraft := source.Draft()
	departed, err := srcDraft.Depart(m.from, m.kind, TravelTarget{Turn: targetTurn, Line: arrivalLine, Square: to})
	if err != nil {
		return nil, err
	}
	dstDraft := dest.Draft()
	arrived, err := dstDraft.Arrive(to, m.kind, m.capture, TravelTarget{Turn: source.turn, Line: m.sourceLine, Square: m.from})
	if err != nil {
		return nil, err
	}

	if err := s.timelines.Append(departed); err != nil {
		return nil, err
	}
	if travel {
		s.timelines.Branch(arrived, side)
	} else {
		if err := s.timelines.Append(arrived); err != nil {
			return nil, err
		}
		work.Remove(targetLine)
	}
	notes = append(notes, srcDraft.Notes()...)
	notes = append(notes, dstDraft.Notes()...)
	return notes, nil
}
