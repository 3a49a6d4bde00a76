package transcript

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"chess5d/internal/domain/chess5d"
	"chess5d/internal/domain/transcript"
	apperrors "chess5d/internal/errors"
)

type TranscriptStore interface {
	PutTranscript(ctx context.Context, record transcript.Transcript) error
	GetTranscript(ctx context.Context, id string) (transcript.Transcript, error)
	ListTranscripts(ctx context.Context, pageNum int) ([]transcript.Transcript, error)
	DeleteTranscript(ctx context.Context, id string) error
}

type ReplayCache interface {
	SaveReplay(ctx context.Context, id string, view *transcript.ReplayView) error
	LoadReplay(ctx context.Context, id string) (*transcript.ReplayView, error)
	DropReplay(ctx context.Context, id string) error
}

type TranscriptUseCase struct {
	store TranscriptStore
	cache ReplayCache
	log   *zap.SugaredLogger
	now   func() time.Time
}

func NewTranscriptUseCase(store TranscriptStore, cache ReplayCache, log *zap.SugaredLogger) *TranscriptUseCase {
	return &TranscriptUseCase{store: store, cache: cache, log: log, now: time.Now}
}

// Parse runs a transcript through the engine without storing it. A transcript
// that stops on an illegal move is not an error: the view carries the failure.
func (t *TranscriptUseCase) Parse(text string) (*transcript.ReplayView, error) {
	game, err := t.parse("", text)
	if err != nil {
		return nil, err
	}
	return transcript.NewReplayView(game), nil
}

// Game parses the stored transcript id.
func (t *TranscriptUseCase) Game(ctx context.Context, id string) (*chess5d.Game, transcript.Transcript, error) {
	record, err := t.store.GetTranscript(ctx, id)
	if err != nil {
		return nil, transcript.Transcript{}, err
	}
	game, err := t.parse(id, record.Text)
	if err != nil {
		return nil, transcript.Transcript{}, err
	}
	return game, record, nil
}

func (t *TranscriptUseCase) parse(id, text string) (*chess5d.Game, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperrors.ErrEmptyTranscript
	}
	game := chess5d.Parse(text)
	for _, a := range game.Advisories() {
		t.log.Warnw("advisory", "transcript", id, "code", a.Code.String(), "line", a.Line, "turn", a.Turn, "message", a.Message)
	}
	if err := game.Err(); err != nil {
		t.log.Warnw("transcript stopped early",
			"transcript", id,
			"error", err,
			"failed_move", game.FailedMove(),
			"applied_moves", game.AppliedMoves(),
			"states", game.Len(),
		)
	}
	return game, nil
}

func (t *TranscriptUseCase) Create(ctx context.Context, req transcript.CreateTranscriptRequest) (transcript.Transcript, *transcript.ReplayView, error) {
	id := uuid.New().String()
	game, err := t.parse(id, req.Text)
	if err != nil {
		return transcript.Transcript{}, nil, err
	}

	record := transcript.Transcript{
		ID:        id,
		Title:     strings.TrimSpace(req.Title),
		Text:      req.Text,
		CreatedAt: t.now(),
		PlyCount:  game.Len(),
		Failed:    game.Failed(),
	}
	if record.Title == "" {
		record.Title = "Game " + id[:8]
	}
	if game.Failed() {
		record.Error = game.Err().Error()
	}

	if err = t.store.PutTranscript(ctx, record); err != nil {
		return transcript.Transcript{}, nil, err
	}

	view := transcript.NewReplayView(game)
	if err = t.cache.SaveReplay(ctx, id, view); err != nil {
		t.log.Warnw("failed to cache replay", "transcript", id, "error", err)
	}
	return record, view, nil
}

func (t *TranscriptUseCase) Get(ctx context.Context, id string) (transcript.Transcript, error) {
	return t.store.GetTranscript(ctx, id)
}

func (t *TranscriptUseCase) List(ctx context.Context, pageNum int) (*transcript.TranscriptListResponse, error) {
	if pageNum < 1 {
		pageNum = 1
	}
	records, err := t.store.ListTranscripts(ctx, pageNum)
	if err != nil {
		return nil, err
	}
	return &transcript.TranscriptListResponse{PageNum: pageNum, Transcripts: records}, nil
}

// Replay returns the view of a stored transcript, from the cache when possible.
func (t *TranscriptUseCase) Replay(ctx context.Context, id string) (*transcript.ReplayView, error) {
	view, err := t.cache.LoadReplay(ctx, id)
	if err == nil {
		return view, nil
	}
	if !errors.Is(err, apperrors.ErrCacheMiss) {
		t.log.Warnw("replay cache unavailable", "transcript", id, "error", err)
	}

	game, _, err := t.Game(ctx, id)
	if err != nil {
		return nil, err
	}
	view = transcript.NewReplayView(game)
	if err = t.cache.SaveReplay(ctx, id, view); err != nil {
		t.log.Warnw("failed to cache replay", "transcript", id, "error", err)
	}
	return view, nil
}

func (t *TranscriptUseCase) State(ctx context.Context, id string, index int) (*transcript.StateView, error) {
	view, err := t.Replay(ctx, id)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(view.States) {
		return nil, apperrors.ErrStateOutOfRange
	}
	return &view.States[index], nil
}

func (t *TranscriptUseCase) Delete(ctx context.Context, id string) error {
	if err := t.store.DeleteTranscript(ctx, id); err != nil {
		return err
	}
	if err := t.cache.DropReplay(ctx, id); err != nil {
		t.log.Warnw("failed to drop cached replay", "transcript", id, "error", err)
	}
	return nil
}
