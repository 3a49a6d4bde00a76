package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"chess5d/internal/domain/chess5d"
	"chess5d/internal/domain/transcript"
	"chess5d/internal/render"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	log := logger.Sugar()
	defer func() { _ = log.Sync() }()

	app := &cli.App{
		Name:  "replay",
		Usage: "parse a 5D chess transcript and print its boards",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "file",
				Aliases:  []string{"f"},
				Usage:    "transcript to read",
				Required: true,
			},
			&cli.IntFlag{
				Name:  "ply",
				Usage: "state index to print, -1 for the last one",
				Value: -1,
			},
			&cli.BoolFlag{
				Name:  "history",
				Usage: "print every board of each timeline, not only the present",
			},
			&cli.StringFlag{
				Name:  "pdf",
				Usage: "write the whole replay to this PDF file",
			},
		},
		Action: func(c *cli.Context) error {
			return run(c, log)
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Errorw("Ошибка при разборе партии", "error", err)
		os.Exit(1)
	}
}

func run(c *cli.Context, log *zap.SugaredLogger) error {
	path := c.String("file")
	text, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("не удалось прочитать файл: %w", err)
	}

	game := chess5d.Parse(string(text))
	log.Infow("transcript parsed", "file", path, "states", game.Len(), "failed", game.Failed())

	index := c.Int("ply")
	if index < 0 {
		index = game.Len() - 1
	}
	state, ok := game.State(index)
	if !ok {
		return fmt.Errorf("state %d is out of range [0, %d)", index, game.Len())
	}

	out := c.App.Writer
	printState(out, index, state, c.Bool("history"))
	printNotes(out, game)

	if pdfPath := c.String("pdf"); pdfPath != "" {
		f, err := os.Create(pdfPath)
		if err != nil {
			return fmt.Errorf("не удалось создать PDF: %w", err)
		}
		defer f.Close()
		title := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		if err = render.WriteReplayPDF(f, title, transcript.NewReplayView(game)); err != nil {
			return fmt.Errorf("ошибка при создании PDF: %w", err)
		}
		log.Infow("PDF создан", "output", pdfPath)
	}
	return nil
}

func printState(w io.Writer, index int, s *chess5d.GameState, history bool) {
	fmt.Fprintf(w, "state %d (%s)", index, s.Label())
	if moves := s.Moves(); len(moves) > 0 {
		fmt.Fprintf(w, ": %s", strings.Join(moves, "; "))
	}
	fmt.Fprintln(w)

	for _, t := range s.Timelines().Ordered() {
		boards := []*chess5d.Board{t.Present()}
		if history {
			boards = t.Boards()
		}
		for _, b := range boards {
			fmt.Fprintf(w, "\nL%d T%d %s\n%s\n", t.Line(), b.Turn(), b.SideToMove(), b)
		}
	}
}

func printNotes(w io.Writer, game *chess5d.Game) {
	for _, a := range game.Advisories() {
		fmt.Fprintln(w, "advisory:", a)
	}
	if err := game.Err(); err != nil {
		fmt.Fprintln(w, "stopped:", err)
		fmt.Fprintln(w, "failed move:", game.FailedMove())
		if applied := game.AppliedMoves(); applied != "" {
			fmt.Fprintln(w, "applied in this ply:", applied)
		}
	}
}
