package chess5d

import "sort"

// Timeline is the append-only history of one line. It is never empty.
type Timeline struct {
	line   int
	boards []*Board
}

func (t *Timeline) Line() int { return t.line }

func (t *Timeline) Len() int { return len(t.boards) }

// Boards returns the history oldest first. The slice must not be modified.
func (t *Timeline) Boards() []*Board { return t.boards }

func (t *Timeline) Board(i int) *Board { return t.boards[i] }

// Present is the most recent board on the line.
func (t *Timeline) Present() *Board { return t.boards[len(t.boards)-1] }

// Start is the branch point the line was seeded with.
func (t *Timeline) Start() *Board { return t.boards[0] }

// find returns the board whose (turn, side to move) matches.
func (t *Timeline) find(turn int, side Side) (*Board, bool) {
	for _, b := range t.boards {
		if b.turn == turn && b.side == side {
			return b, true
		}
	}
	return nil, false
}

// Timelines is the set of lines making up one multiverse snapshot.
type Timelines struct {
	lines map[int]*Timeline
}

func newTimelines(root *Board) *Timelines {
	return &Timelines{lines: map[int]*Timeline{
		root.line: {line: root.line, boards: []*Board{root}},
	}}
}

func (ts *Timelines) Len() int { return len(ts.lines) }

func (ts *Timelines) Get(line int) (*Timeline, bool) {
	t, ok := ts.lines[line]
	return t, ok
}

// IDs returns every line id in ascending order.
func (ts *Timelines) IDs() []int {
	ids := make([]int, 0, len(ts.lines))
	for id := range ts.lines {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Ordered returns the timelines sorted by line id.
func (ts *Timelines) Ordered() []*Timeline {
	ids := ts.IDs()
	out := make([]*Timeline, len(ids))
	for i, id := range ids {
		out[i] = ts.lines[id]
	}
	return out
}

func (ts *Timelines) bounds() (lo, hi int) {
	first := true
	for id := range ts.lines {
		if first || id < lo {
			lo = id
		}
		if first || id > hi {
			hi = id
		}
		first = false
	}
	return lo, hi
}

// NextLine is the id a branch created by side would receive.
func (ts *Timelines) NextLine(side Side) int {
	lo, hi := ts.bounds()
	if side == White {
		return hi + 1
	}
	return lo - 1
}

// Append adds b to the end of its own line.
func (ts *Timelines) Append(b *Board) error {
	t, ok := ts.lines[b.line]
	if !ok {
		return newError(CodeMissingTimeline, "missing timeline L%d", b.line)
	}
	if !t.Present().Before(b) {
		return newError(CodeTimelineOrder, "board %s%c does not follow the present of L%d", b.label(), b.side.Letter(), b.line)
	}
	t.boards = append(t.boards, b)
	return nil
}

// Branch seeds a new line, created by side, whose only board is a copy of
// from relabelled with the new id.
func (ts *Timelines) Branch(from *Board, side Side) int {
	id := ts.NextLine(side)
	ts.lines[id] = &Timeline{line: id, boards: []*Board{from.relabel(id)}}
	return id
}

// clone copies every board list. Boards are immutable and shared.
func (ts *Timelines) clone() *Timelines {
	c := &Timelines{lines: make(map[int]*Timeline, len(ts.lines))}
	for id, t := range ts.lines {
		boards := make([]*Board, len(t.boards))
		copy(boards, t.boards)
		c.lines[id] = &Timeline{line: id, boards: boards}
	}
	return c
}
