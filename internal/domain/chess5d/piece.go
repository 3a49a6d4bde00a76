package chess5d

import "fmt"

type Side int8

const (
	White Side = 0
	Black Side = 1
)

func (s Side) Opponent() Side {
	if s == White {
		return Black
	}
	return White
}

// forward is the rank direction of the side's pawns.
func (s Side) forward() int {
	if s == White {
		return 1
	}
	return -1
}

// timeForward is the line/turn direction of the side's pawns.
func (s Side) timeForward() int {
	if s == White {
		return -1
	}
	return 1
}

func (s Side) String() string {
	if s == White {
		return "white"
	}
	return "black"
}

// Letter is the short tag used in ply labels and board dumps.
func (s Side) Letter() byte {
	if s == White {
		return 'W'
	}
	return 'B'
}

type PieceKind int8

const (
	Pawn PieceKind = iota
	Rook
	Knight
	Bishop
	Queen
	King
	Unicorn
	Dragon
)

var pieceLetters = [...]byte{
	Pawn:    'P',
	Rook:    'R',
	Knight:  'N',
	Bishop:  'B',
	Queen:   'Q',
	King:    'K',
	Unicorn: 'U',
	Dragon:  'D',
}

var pieceNames = [...]string{
	Pawn:    "pawn",
	Rook:    "rook",
	Knight:  "knight",
	Bishop:  "bishop",
	Queen:   "queen",
	King:    "king",
	Unicorn: "unicorn",
	Dragon:  "dragon",
}

// Kinds lists every piece kind in catalog order.
func Kinds() []PieceKind {
	return []PieceKind{Pawn, Rook, Knight, Bishop, Queen, King, Unicorn, Dragon}
}

func (k PieceKind) Letter() byte { return pieceLetters[k] }

func (k PieceKind) String() string { return pieceNames[k] }

// kindFromLetter maps an upper-case notation letter to its kind.
func kindFromLetter(c byte) (PieceKind, bool) {
	for k, l := range pieceLetters {
		if l == c {
			return PieceKind(k), true
		}
	}
	return Pawn, false
}

type Piece struct {
	Kind PieceKind
	Side Side
}

func (p Piece) String() string {
	return fmt.Sprintf("%c%c", p.Side.Letter(), p.Kind.Letter())
}

// Occupant is the content of one square: either empty or a single piece.
type Occupant struct {
	piece    Piece
	occupied bool
}

func Empty() Occupant { return Occupant{} }

func Occupied(p Piece) Occupant { return Occupant{piece: p, occupied: true} }

func (o Occupant) IsEmpty() bool { return !o.occupied }

func (o Occupant) Piece() (Piece, bool) { return o.piece, o.occupied }

// Is reports whether the square holds a piece of the given kind and side.
func (o Occupant) Is(kind PieceKind, side Side) bool {
	return o.occupied && o.piece.Kind == kind && o.piece.Side == side
}

func (o Occupant) String() string {
	if !o.occupied {
		return "  "
	}
	return o.piece.String()
}

const BoardSize = 8

type Square struct {
	File int
	Rank int
}

func (sq Square) Valid() bool {
	return sq.File >= 0 && sq.File < BoardSize && sq.Rank >= 0 && sq.Rank < BoardSize
}

func (sq Square) String() string {
	if !sq.Valid() {
		return "??"
	}
	return fmt.Sprintf("%c%d", 'a'+sq.File, sq.Rank+1)
}

// ParseSquare reads algebraic coordinates such as "e4".
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return Square{}, fmt.Errorf("square %q: want file and rank", s)
	}
	file, ok := parseFile(s[0])
	if !ok {
		return Square{}, fmt.Errorf("square %q: bad file", s)
	}
	rank, ok := parseRank(s[1])
	if !ok {
		return Square{}, fmt.Errorf("square %q: bad rank", s)
	}
	return Square{File: file, Rank: rank}, nil
}

func parseFile(c byte) (int, bool) {
	if c < 'a' || c > 'h' {
		return 0, false
	}
	return int(c - 'a'), true
}

func parseRank(c byte) (int, bool) {
	if c < '1' || c > '8' {
		return 0, false
	}
	return int(c - '1'), true
}
