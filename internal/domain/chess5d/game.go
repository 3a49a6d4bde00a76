package chess5d

import (
	"fmt"
	"strings"
)

// Game is a parsed transcript: the archived snapshot after every ply and,
// when parsing stopped early, the failure with its context.
type Game struct {
	states     []*GameState
	advisories []Advisory

	err        error
	failedMove string
	applied    []string
}

// States returns the archived snapshots. The first one is the start
// position; each later one closes the ply named by its Label.
func (g *Game) States() []*GameState { return g.states }

func (g *Game) Len() int { return len(g.states) }

func (g *Game) State(i int) (*GameState, bool) {
	if i < 0 || i >= len(g.states) {
		return nil, false
	}
	return g.states[i], true
}

// Last is the final archived snapshot.
func (g *Game) Last() *GameState { return g.states[len(g.states)-1] }

func (g *Game) Advisories() []Advisory { return g.advisories }

// Err is the fatal error that stopped parsing, or nil.
func (g *Game) Err() error { return g.err }

func (g *Game) Failed() bool { return g.err != nil }

// FailedMove is the text of the move being processed when parsing stopped.
func (g *Game) FailedMove() string { return g.failedMove }

// AppliedMoves is the text of the moves applied in the interrupted ply
// before the failure, joined by "; ".
func (g *Game) AppliedMoves() string { return strings.Join(g.applied, "; ") }

// parser carries the turn state machine over one transcript.
type parser struct {
	game    *Game
	current *GameState
	work    *Worklist
	partial []string
}

// Parse reads a transcript into a Game. It never returns an error: a fatal
// failure is recorded on the Game along with the snapshots archived before it.
func Parse(text string) *Game {
	p := &parser{
		game:    &Game{},
		current: StartPosition(),
		work:    NewWorklist(),
	}
	if err := p.run(tokenize(text)); err != nil {
		p.game.err = err
		p.game.failedMove = strings.Join(p.partial, " ")
		p.game.applied = p.current.Moves()
		return p.game
	}
	p.game.states = append(p.game.states, p.current)
	return p.game
}

func (p *parser) run(tokens []token) error {
	for _, tok := range tokens {
		if tok.marker != nil {
			if err := p.advance(*tok.marker); err != nil {
				return err
			}
			continue
		}
		if tok.segment != "" {
			p.partial = append(p.partial, tok.segment)
		}
		if tok.endsMove {
			if err := p.flush(); err != nil {
				return err
			}
		}
	}
	return p.flush()
}

func (p *parser) flush() error {
	if len(p.partial) == 0 {
		return nil
	}
	turn, side := p.current.Ply()
	if turn == 0 {
		return newError(CodeBadMarker, "move %q precedes the first turn marker", strings.Join(p.partial, " "))
	}
	notes, err := p.current.Apply(p.partial, side, p.work)
	if err != nil {
		return err
	}
	p.game.advisories = append(p.game.advisories, notes...)
	p.partial = p.partial[:0]
	return nil
}

func (p *parser) advance(m marker) error {
	if err := p.flush(); err != nil {
		return err
	}
	turn, side := p.current.Ply()
	if p.work.Len() > 0 {
		lines := p.work.Lines()
		p.game.advisories = append(p.game.advisories, Advisory{
			Code:    AdvisoryUnmovedLines,
			Line:    lines[0],
			Turn:    turn,
			Message: fmt.Sprintf("ply advanced with lines still awaiting a move: %v", lines),
		})
	}

	next := turn
	switch m.side {
	case White:
		if side != Black || m.turn != turn+1 {
			return newError(CodeMarkerOrder, "illegal turn advance %q after ply %d%c", m.text, turn, side.Letter())
		}
		next = m.turn
	case Black:
		if side != White || (m.turn != 0 && m.turn != turn) {
			return newError(CodeMarkerOrder, "illegal ply advance %q after ply %d%c", m.text, turn, side.Letter())
		}
	}

	p.game.states = append(p.game.states, p.current)
	p.current = p.current.advance(next, m.side)
	p.work = p.current.Pending(m.side)
	return nil
}
