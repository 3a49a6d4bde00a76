package chess5d

import "fmt"

type AdvisoryCode int

const (
	// AdvisoryEmptyCapture: a capture landed on an empty square without an en passant pattern.
	AdvisoryEmptyCapture AdvisoryCode = iota + 1
	// AdvisoryOccupiedTarget: a quiet move landed on an occupied square.
	AdvisoryOccupiedTarget
	// AdvisoryFriendlyTarget: a cross-time capture landed on a piece of the mover's side.
	AdvisoryFriendlyTarget
	// AdvisoryLineNotPending: an explicitly selected line was not awaiting a move.
	AdvisoryLineNotPending
	// AdvisoryUnmovedLines: lines were still awaiting a move at a ply boundary.
	AdvisoryUnmovedLines
)

func (c AdvisoryCode) String() string {
	switch c {
	case AdvisoryEmptyCapture:
		return "empty_capture"
	case AdvisoryOccupiedTarget:
		return "occupied_target"
	case AdvisoryFriendlyTarget:
		return "friendly_target"
	case AdvisoryLineNotPending:
		return "line_not_pending"
	case AdvisoryUnmovedLines:
		return "unmoved_lines"
	default:
		return "unknown"
	}
}

// Advisory is a non-fatal irregularity found while applying a transcript.
type Advisory struct {
	Code    AdvisoryCode
	Line    int
	Turn    int
	Message string
}

func (a Advisory) String() string {
	return fmt.Sprintf("L%d T%d: %s", a.Line, a.Turn, a.Message)
}
