package chess5d

import "fmt"

// Delta is the displacement of a move along the four axes.
type Delta struct {
	File int
	Rank int
	Line int
	Turn int
}

func (d Delta) String() string {
	return fmt.Sprintf("(file %+d, rank %+d, line %+d, turn %+d)", d.File, d.Rank, d.Line, d.Turn)
}

func (d Delta) axes() [4]int { return [4]int{d.File, d.Rank, d.Line, d.Turn} }

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// shape returns the number of nonzero axes and whether they share one magnitude.
func (d Delta) shape() (nonzero int, uniform bool) {
	uniform = true
	size := 0
	for _, v := range d.axes() {
		if v == 0 {
			continue
		}
		nonzero++
		if size == 0 {
			size = abs(v)
		} else if abs(v) != size {
			uniform = false
		}
	}
	return nonzero, uniform
}

// Allows reports whether kind may travel by d. Pawns follow the cross-time
// pawn rule here; single-board pawn steps are checked by allowsPlanarPawn.
func (k PieceKind) Allows(d Delta, side Side, capture bool) bool {
	nonzero, uniform := d.shape()
	switch k {
	case Pawn:
		if d.File != 0 || d.Rank != 0 {
			return false
		}
		fwd := side.timeForward()
		if capture {
			return (d.Line == fwd && d.Turn == 0) || (d.Turn == fwd && d.Line == 0)
		}
		return d.Turn == 0 && (d.Line == fwd || d.Line == 2*fwd)
	case Rook:
		return nonzero == 1
	case Knight:
		ones, twos := 0, 0
		for _, v := range d.axes() {
			switch abs(v) {
			case 0:
			case 1:
				ones++
			case 2:
				twos++
			default:
				return false
			}
		}
		return ones == 1 && twos == 1
	case Bishop:
		return nonzero == 2 && uniform
	case Queen:
		return nonzero >= 1 && uniform
	case King:
		for _, v := range d.axes() {
			if abs(v) > 1 {
				return false
			}
		}
		return nonzero > 0
	case Unicorn:
		return nonzero == 3 && uniform
	case Dragon:
		return nonzero == 4 && uniform
	}
	return false
}

func allowsPlanarPawn(d Delta, side Side, capture bool) bool {
	if d.Line != 0 || d.Turn != 0 {
		return false
	}
	fwd := side.forward()
	if capture {
		return abs(d.File) == 1 && d.Rank == fwd
	}
	return d.File == 0 && (d.Rank == fwd || d.Rank == 2*fwd)
}

// CheckGeometry returns a CodeGeometry error when kind cannot travel by d.
func CheckGeometry(kind PieceKind, side Side, capture bool, d Delta) error {
	if kind.Allows(d, side, capture) {
		return nil
	}
	return geometryError(kind, d)
}

func checkPlanar(kind PieceKind, side Side, capture bool, d Delta) error {
	if kind == Pawn {
		if allowsPlanarPawn(d, side, capture) {
			return nil
		}
		return geometryError(kind, d)
	}
	return CheckGeometry(kind, side, capture, d)
}

func geometryError(kind PieceKind, d Delta) error {
	return &Error{
		Code:    CodeGeometry,
		Message: fmt.Sprintf("%s attempted to move incorrectly", kind),
		Cause:   &GeometryError{Kind: kind, Delta: d},
	}
}
