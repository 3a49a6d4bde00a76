package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"chess5d/internal/bootstrap"
	"chess5d/internal/domain/transcript"
	apperrors "chess5d/internal/errors"
)

const transcriptsCollection = "transcripts"

type TranscriptRepository struct {
	cfg   bootstrap.Config
	log   *zap.SugaredLogger
	mongo *mongo.Database
}

func NewTranscriptRepository(cfg bootstrap.Config, log *zap.SugaredLogger, mongo *mongo.Database) *TranscriptRepository {
	return &TranscriptRepository{
		cfg:   cfg,
		log:   log,
		mongo: mongo,
	}
}

func (t *TranscriptRepository) PutTranscript(ctx context.Context, record transcript.Transcript) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	collection := t.mongo.Collection(transcriptsCollection)

	_, err := collection.InsertOne(ctx, record)
	if err != nil {
		return fmt.Errorf("не удалось сохранить партию %s: %w", record.ID, err)
	}

	t.log.Infow("transcript inserted", "id", record.ID, "plies", record.PlyCount)
	return nil
}

func (t *TranscriptRepository) GetTranscript(ctx context.Context, id string) (transcript.Transcript, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	collection := t.mongo.Collection(transcriptsCollection)

	var result transcript.Transcript
	err := collection.FindOne(ctx, bson.M{"_id": id}).Decode(&result)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return transcript.Transcript{}, apperrors.ErrTranscriptNotFound
	} else if err != nil {
		return transcript.Transcript{}, fmt.Errorf("ошибка при получении партии %s: %w", id, err)
	}

	return result, nil
}

// ListTranscripts returns one page (starting at 1) of transcripts, newest
// first. The text is left out.
func (t *TranscriptRepository) ListTranscripts(ctx context.Context, pageNum int) ([]transcript.Transcript, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pageLimit := int64(t.cfg.PageLimitTranscripts)
	if pageLimit <= 0 {
		pageLimit = 20
	}
	if pageNum < 1 {
		pageNum = 1
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64(pageNum-1) * pageLimit).
		SetLimit(pageLimit).
		SetProjection(bson.M{"text": 0})

	collection := t.mongo.Collection(transcriptsCollection)
	cursor, err := collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении списка партий: %w", err)
	}
	defer cursor.Close(ctx)

	result := make([]transcript.Transcript, 0, pageLimit)
	for cursor.Next(ctx) {
		var record transcript.Transcript
		if err = cursor.Decode(&record); err != nil {
			return nil, err
		}
		result = append(result, record)
	}

	return result, cursor.Err()
}

func (t *TranscriptRepository) DeleteTranscript(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	collection := t.mongo.Collection(transcriptsCollection)

	res, err := collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("ошибка при удалении партии %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return apperrors.ErrTranscriptNotFound
	}

	t.log.Infow("transcript deleted", "id", id)
	return nil
}
