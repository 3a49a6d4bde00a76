package transcript

import "chess5d/internal/domain/chess5d"

// TravelView is the far end of a cross-time move.
type TravelView struct {
	Line   int    `json:"line"`
	Turn   int    `json:"turn"`
	Square string `json:"square"`
}

// BoardView is one board snapshot. Squares is indexed [rank][file] with rank 1
// first; an empty square is "".
type BoardView struct {
	Line     int                                          `json:"line"`
	Turn     int                                          `json:"turn"`
	Side     string                                       `json:"side"`
	Squares  [chess5d.BoardSize][chess5d.BoardSize]string `json:"squares"`
	LastFrom string                                       `json:"last_from,omitempty"`
	LastTo   string                                       `json:"last_to,omitempty"`
	Travel   *TravelView                                  `json:"travel,omitempty"`
}

type TimelineView struct {
	Line   int         `json:"line"`
	Active bool        `json:"active"`
	Boards []BoardView `json:"boards"`
}

// StateView is one archived ply boundary of the multiverse.
type StateView struct {
	Index       int            `json:"index"`
	Label       string         `json:"label"`
	Moves       []string       `json:"moves"`
	PresentTurn int            `json:"present_turn"`
	PresentSide string         `json:"present_side"`
	Timelines   []TimelineView `json:"timelines"`
}

type AdvisoryView struct {
	Code    string `json:"code"`
	Line    int    `json:"line"`
	Turn    int    `json:"turn"`
	Message string `json:"message"`
}

// ReplayView is everything a viewer needs to step through a parsed transcript.
type ReplayView struct {
	States       []StateView    `json:"states"`
	Advisories   []AdvisoryView `json:"advisories"`
	Failed       bool           `json:"failed"`
	Error        string         `json:"error,omitempty"`
	ErrorKind    string         `json:"error_kind,omitempty"`
	FailedMove   string         `json:"failed_move,omitempty"`
	AppliedMoves string         `json:"applied_moves,omitempty"`
}

// ReplaySummary closes a streamed replay.
type ReplaySummary struct {
	Done         bool           `json:"done"`
	StateCount   int            `json:"state_count"`
	Advisories   []AdvisoryView `json:"advisories"`
	Failed       bool           `json:"failed"`
	Error        string         `json:"error,omitempty"`
	FailedMove   string         `json:"failed_move,omitempty"`
	AppliedMoves string         `json:"applied_moves,omitempty"`
}

func NewReplayView(g *chess5d.Game) *ReplayView {
	view := &ReplayView{
		States:     make([]StateView, 0, g.Len()),
		Advisories: make([]AdvisoryView, 0, len(g.Advisories())),
	}
	for i, s := range g.States() {
		view.States = append(view.States, NewStateView(i, s))
	}
	for _, a := range g.Advisories() {
		view.Advisories = append(view.Advisories, NewAdvisoryView(a))
	}
	if err := g.Err(); err != nil {
		view.Failed = true
		view.Error = err.Error()
		view.ErrorKind = chess5d.KindOf(err).String()
		view.FailedMove = g.FailedMove()
		view.AppliedMoves = g.AppliedMoves()
	}
	return view
}

func (v *ReplayView) Summary() ReplaySummary {
	return ReplaySummary{
		Done:         true,
		StateCount:   len(v.States),
		Advisories:   v.Advisories,
		Failed:       v.Failed,
		Error:        v.Error,
		FailedMove:   v.FailedMove,
		AppliedMoves: v.AppliedMoves,
	}
}

func NewStateView(index int, s *chess5d.GameState) StateView {
	_, side := s.Ply()
	info := s.LineInfo(side.Opponent())
	view := StateView{
		Index: index,
		Label: s.Label(),
		Moves: s.Moves(),
	}
	if info.Present != nil {
		view.PresentTurn = info.Present.Turn()
		view.PresentSide = info.Present.SideToMove().String()
	}
	for _, t := range s.Timelines().Ordered() {
		tv := TimelineView{
			Line:   t.Line(),
			Active: info.Active(t.Line()),
			Boards: make([]BoardView, 0, t.Len()),
		}
		for _, b := range t.Boards() {
			tv.Boards = append(tv.Boards, NewBoardView(b))
		}
		view.Timelines = append(view.Timelines, tv)
	}
	return view
}

func NewBoardView(b *chess5d.Board) BoardView {
	view := BoardView{
		Line: b.Line(),
		Turn: b.Turn(),
		Side: b.SideToMove().String(),
	}
	for rank := 0; rank < chess5d.BoardSize; rank++ {
		for file := 0; file < chess5d.BoardSize; file++ {
			if p, ok := b.At(file, rank).Piece(); ok {
				view.Squares[rank][file] = p.String()
			}
		}
	}
	if sq, ok := b.LastFrom(); ok {
		view.LastFrom = sq.String()
	}
	if sq, ok := b.LastTo(); ok {
		view.LastTo = sq.String()
	}
	if tr, ok := b.Travel(); ok {
		view.Travel = &TravelView{Line: tr.Line, Turn: tr.Turn, Square: tr.Square.String()}
	}
	return view
}

func NewAdvisoryView(a chess5d.Advisory) AdvisoryView {
	return AdvisoryView{
		Code:    a.Code.String(),
		Line:    a.Line,
		Turn:    a.Turn,
		Message: a.Message,
	}
}
