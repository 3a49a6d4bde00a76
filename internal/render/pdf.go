package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"chess5d/internal/domain/transcript"
)

const (
	squareSize  = 4.0 // mm
	boardGap    = 6.0
	rowLabel    = 14.0
	pageMargin  = 10.0
	maxPerRow   = 6
	captionSize = 4.0
	boardEdge   = squareSize * 8
)

// WriteReplayPDF draws one landscape page per archived state. Each timeline
// is a row holding its most recent boards; moved squares are highlighted and
// travel targets are printed under their board.
func WriteReplayPDF(w io.Writer, title string, view *transcript.ReplayView) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle(title, true)
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(false, pageMargin)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	if len(view.States) == 0 {
		pdf.AddPage()
		heading(pdf, tr(title), "no states")
	}
	for _, s := range view.States {
		drawState(pdf, tr, title, s)
	}
	if view.Failed || len(view.Advisories) > 0 {
		drawNotes(pdf, tr, view)
	}
	return pdf.Output(w)
}

func heading(pdf *gofpdf.Fpdf, title, label string) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, fmt.Sprintf("%s: %s", title, label), "", 1, "L", false, 0, "")
}

func drawState(pdf *gofpdf.Fpdf, tr func(string) string, title string, s transcript.StateView) {
	pdf.AddPage()
	heading(pdf, tr(title), s.Label)

	pdf.SetFont("Helvetica", "", 10)
	moves := "-"
	if len(s.Moves) > 0 {
		moves = strings.Join(s.Moves, "; ")
	}
	pdf.MultiCell(0, 5, tr("Moves: "+moves), "", "L", false)
	if s.PresentSide != "" {
		pdf.CellFormat(0, 5, fmt.Sprintf("Present: T%d, %s to move", s.PresentTurn, s.PresentSide), "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)

	_, pageH := pdf.GetPageSize()
	rowH := captionSize + boardEdge + captionSize + 4
	for _, tl := range s.Timelines {
		y := pdf.GetY()
		if y+rowH > pageH-pageMargin {
			pdf.AddPage()
			heading(pdf, tr(title), s.Label+" (cont.)")
			y = pdf.GetY()
		}

		pdf.SetFont("Helvetica", "B", 9)
		if tl.Active {
			pdf.SetTextColor(0, 0, 0)
		} else {
			pdf.SetTextColor(150, 150, 150)
		}
		pdf.SetXY(pageMargin, y+captionSize+boardEdge/2-2)
		pdf.CellFormat(rowLabel, 4, fmt.Sprintf("L%d", tl.Line), "", 0, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)

		boards := tl.Boards
		if len(boards) > maxPerRow {
			boards = boards[len(boards)-maxPerRow:]
		}
		x := pageMargin + rowLabel
		for _, b := range boards {
			drawBoard(pdf, x, y, b)
			x += boardEdge + boardGap
		}
		pdf.SetXY(pageMargin, y+rowH)
	}
}

func squareName(file, rank int) string {
	return fmt.Sprintf("%c%d", 'a'+file, rank+1)
}

// pieceGlyph maps "WN" to "N" and "BN" to "n".
func pieceGlyph(code string) string {
	if len(code) != 2 {
		return ""
	}
	if code[0] == 'B' {
		return strings.ToLower(code[1:])
	}
	return code[1:]
}

func drawBoard(pdf *gofpdf.Fpdf, x, y float64, b transcript.BoardView) {
	pdf.SetFont("Helvetica", "", 7)
	side := "W"
	if b.Side == "black" {
		side = "B"
	}
	pdf.SetXY(x, y)
	pdf.CellFormat(boardEdge, captionSize, fmt.Sprintf("T%d%s", b.Turn, side), "", 0, "C", false, 0, "")

	top := y + captionSize
	pdf.SetFont("Courier", "B", 8)
	for rank := 7; rank >= 0; rank-- {
		for file := 0; file < 8; file++ {
			cx := x + float64(file)*squareSize
			cy := top + float64(7-rank)*squareSize
			name := squareName(file, rank)
			switch {
			case name == b.LastFrom || name == b.LastTo:
				pdf.SetFillColor(246, 214, 94)
			case (file+rank)%2 == 0:
				pdf.SetFillColor(181, 136, 99)
			default:
				pdf.SetFillColor(240, 217, 181)
			}
			pdf.Rect(cx, cy, squareSize, squareSize, "F")
			if glyph := pieceGlyph(b.Squares[rank][file]); glyph != "" {
				pdf.SetXY(cx, cy)
				pdf.CellFormat(squareSize, squareSize, glyph, "", 0, "C", false, 0, "")
			}
		}
	}
	pdf.Rect(x, top, boardEdge, boardEdge, "D")

	if b.Travel != nil {
		pdf.SetFont("Helvetica", "", 6)
		pdf.SetXY(x, top+boardEdge)
		pdf.CellFormat(boardEdge, captionSize, fmt.Sprintf("<> L%d T%d %s", b.Travel.Line, b.Travel.Turn, b.Travel.Square), "", 0, "C", false, 0, "")
	}
}

func drawNotes(pdf *gofpdf.Fpdf, tr func(string) string, view *transcript.ReplayView) {
	pdf.AddPage()
	heading(pdf, "Notes", fmt.Sprintf("%d states", len(view.States)))
	pdf.SetFont("Helvetica", "", 10)
	if view.Failed {
		pdf.MultiCell(0, 5, tr("Stopped: "+view.Error), "", "L", false)
		pdf.MultiCell(0, 5, tr("Failed move: "+view.FailedMove), "", "L", false)
		if view.AppliedMoves != "" {
			pdf.MultiCell(0, 5, tr("Applied in this ply: "+view.AppliedMoves), "", "L", false)
		}
		pdf.Ln(2)
	}
	for _, a := range view.Advisories {
		pdf.MultiCell(0, 5, tr(fmt.Sprintf("[%s] L%d T%d: %s", a.Code, a.Line, a.Turn, a.Message)), "", "L", false)
	}
}
