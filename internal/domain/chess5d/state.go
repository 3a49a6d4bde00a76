package chess5d

import "strconv"

// Worklist holds the lines still owing a move in the current ply, ascending.
type Worklist struct {
	lines []int
}

func NewWorklist(lines ...int) *Worklist {
	return &Worklist{lines: append([]int(nil), lines...)}
}

func (w *Worklist) Len() int { return len(w.lines) }

func (w *Worklist) Lines() []int { return append([]int(nil), w.lines...) }

// Pop takes the lowest pending line.
func (w *Worklist) Pop() (int, bool) {
	if len(w.lines) == 0 {
		return 0, false
	}
	line := w.lines[0]
	w.lines = w.lines[1:]
	return line, true
}

func (w *Worklist) Has(line int) bool {
	for _, l := range w.lines {
		if l == line {
			return true
		}
	}
	return false
}

// Remove drops line and reports whether it was pending.
func (w *Worklist) Remove(line int) bool {
	for i, l := range w.lines {
		if l == line {
			w.lines = append(w.lines[:i], w.lines[i+1:]...)
			return true
		}
	}
	return false
}

// GameState is the whole multiverse at one ply boundary.
type GameState struct {
	timelines *Timelines
	turn      int
	side      Side
	moves     []string
}

// StartPosition is the pre-game state: a single root line holding the opening board.
func StartPosition() *GameState {
	return &GameState{timelines: newTimelines(NewStartBoard()), turn: 0, side: Black}
}

func (s *GameState) Timelines() *Timelines { return s.timelines }

// Timeline is a shortcut for Timelines().Get.
func (s *GameState) Timeline(line int) (*Timeline, bool) { return s.timelines.Get(line) }

// Ply reports which ply the state closes; the start position reports (0, Black).
func (s *GameState) Ply() (turn int, side Side) { return s.turn, s.side }

// Label is the viewer tag of the ply, e.g. "12B".
func (s *GameState) Label() string {
	if s.turn == 0 {
		return "start"
	}
	return strconv.Itoa(s.turn) + string(s.side.Letter())
}

// Moves returns the move texts applied during the ply.
func (s *GameState) Moves() []string { return append([]string(nil), s.moves...) }

// Clone copies the state for the next ply.
func (s *GameState) Clone() *GameState {
	return &GameState{timelines: s.timelines.clone(), turn: s.turn, side: s.side}
}

// Pending builds the worklist of lines whose present board has side to move.
func (s *GameState) Pending(side Side) *Worklist {
	w := &Worklist{}
	for _, t := range s.timelines.Ordered() {
		if t.Present().side == side {
			w.lines = append(w.lines, t.line)
		}
	}
	return w
}

func (s *GameState) advance(turn int, side Side) *GameState {
	next := s.Clone()
	next.turn, next.side = turn, side
	return next
}

// LineInfo summarises which lines are active and where the present is.
type LineInfo struct {
	ActiveWhite int
	ActiveBlack int
	Present     *Board
}

// Active reports whether line counts towards the present.
func (li LineInfo) Active(line int) bool {
	switch {
	case line > 0:
		return line <= li.ActiveWhite
	case line < 0:
		return -line <= li.ActiveBlack
	}
	return true
}

// LineInfo counts active branches per side (a side may lead by at most one
// branch) and finds the earliest present among active lines awaiting side.
func (s *GameState) LineInfo(side Side) LineInfo {
	pos, neg := 0, 0
	for _, id := range s.timelines.IDs() {
		switch {
		case id > 0:
			pos++
		case id < 0:
			neg++
		}
	}
	li := LineInfo{ActiveWhite: min(pos, neg+1), ActiveBlack: min(neg, pos+1)}
	for _, t := range s.timelines.Ordered() {
		p := t.Present()
		if p.side != side || !li.Active(t.line) {
			continue
		}
		if li.Present == nil || p.Before(li.Present) {
			li.Present = p
		}
	}
	return li
}
