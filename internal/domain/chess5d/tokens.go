package chess5d

import (
	"regexp"
	"strconv"
	"strings"
)

var markerPattern = regexp.MustCompile(`^(\d+)([WB]?)\.$`)

// marker is a turn marker token: "3.", "3W.", "3B." or "..".
type marker struct {
	text string
	side Side
	// turn is 0 for "..", which always refers to the current turn.
	turn int
}

func parseMarker(tok string) (marker, bool) {
	if tok == ".." {
		return marker{text: tok, side: Black}, true
	}
	m := markerPattern.FindStringSubmatch(tok)
	if m == nil {
		return marker{}, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return marker{}, false
	}
	side := White
	if m[2] == "B" {
		side = Black
	}
	return marker{text: tok, side: side, turn: n}, true
}

// token is one element of a transcript after splitting on whitespace.
type token struct {
	marker   *marker
	segment  string
	endsMove bool
}

// tokenize splits a transcript into markers and move segments. A trailing
// ';' terminates the move in progress.
func tokenize(text string) []token {
	fields := strings.Fields(text)
	out := make([]token, 0, len(fields))
	for _, f := range fields {
		if m, ok := parseMarker(f); ok {
			out = append(out, token{marker: &m})
			continue
		}
		tok := token{segment: f}
		if strings.HasSuffix(f, ";") {
			tok.segment = strings.TrimSpace(strings.TrimSuffix(f, ";"))
			tok.endsMove = true
		}
		out = append(out, tok)
	}
	return out
}
