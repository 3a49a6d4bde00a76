package chess5d

import (
	"strconv"
	"strings"
)

// Apply plays one move, given as its whitespace-separated segments, for
// side. Single-board moves without a line selector go to the lowest pending
// line. Applied moves are recorded on the state.
func (s *GameState) Apply(segs []string, side Side, work *Worklist) ([]Advisory, error) {
	notes, err := s.apply(segs, side, work)
	if err != nil {
		return nil, err
	}
	s.moves = append(s.moves, strings.Join(segs, " "))
	return notes, nil
}

func (s *GameState) apply(segs []string, side Side, work *Worklist) ([]Advisory, error) {
	switch len(segs) {
	case 0:
		return nil, nil
	case 1:
		switch segs[0] {
		case "#":
			return nil, nil
		case "-":
			work.Pop()
			return nil, nil
		}
		line, ok := work.Pop()
		if !ok {
			return nil, newError(CodeNoPendingLine, "unable to interpret move %q: no line left to play on", segs[0])
		}
		return s.applyOn(line, segs[0], side)
	case 2:
		line, err := parseLineSelector(segs[0])
		if err != nil {
			return nil, err
		}
		var notes []Advisory
		if !work.Remove(line) {
			notes = append(notes, Advisory{
				Code:    AdvisoryLineNotPending,
				Line:    line,
				Message: "L" + strconv.Itoa(line) + " not in the list of available lines",
			})
		}
		more, err := s.applyOn(line, segs[1], side)
		if err != nil {
			return nil, err
		}
		return append(notes, more...), nil
	case 3:
		return s.applyCrossTime(segs, side, work)
	default:
		return nil, newError(CodeTooManySegments, "unable to interpret move %q: too many segments", strings.Join(segs, " "))
	}
}

func parseLineSelector(seg string) (int, error) {
	if !strings.HasPrefix(seg, "L") {
		return 0, newError(CodeBadNotation, "unable to interpret line selector %q", seg)
	}
	line, rest, ok := leadingInt(seg[1:], true)
	if !ok || rest != "" {
		return 0, newError(CodeBadNotation, "unable to interpret line selector %q", seg)
	}
	return line, nil
}

// applyOn plays a single-board move on the present board of line.
func (s *GameState) applyOn(line int, token string, side Side) ([]Advisory, error) {
	t, ok := s.timelines.Get(line)
	if !ok {
		return nil, newError(CodeMissingTimeline, "unable to interpret move %q: missing timeline L%d", token, line)
	}
	present := t.Present()
	if present.side != side {
		return nil, newError(CodeWrongSide, "unable to interpret move %q: wrong player's turn on L%d", token, line)
	}
	next, notes, err := applyBasic(token, side, present)
	if err != nil {
		return nil, err
	}
	if err := s.timelines.Append(next); err != nil {
		return nil, err
	}
	return notes, nil
}
