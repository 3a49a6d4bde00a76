package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"chess5d/internal/bootstrap"
	"chess5d/internal/domain/transcript"
	apperrors "chess5d/internal/errors"
)

// ReplayCache keeps rendered replay views in Redis so stored transcripts are
// not re-parsed on every request.
type ReplayCache struct {
	cfg   bootstrap.Config
	log   *zap.SugaredLogger
	redis *redis.Client
}

func NewReplayCache(cfg bootstrap.Config, log *zap.SugaredLogger, redis *redis.Client) *ReplayCache {
	return &ReplayCache{
		cfg:   cfg,
		log:   log,
		redis: redis,
	}
}

func replayKey(id string) string {
	return "replay:" + id
}

func (c *ReplayCache) SaveReplay(ctx context.Context, id string, view *transcript.ReplayView) error {
	data, err := json.Marshal(view)
	if err != nil {
		return fmt.Errorf("не удалось сериализовать партию %s: %w", id, err)
	}
	return c.redis.Set(ctx, replayKey(id), data, c.cfg.CacheTTL()).Err()
}

func (c *ReplayCache) LoadReplay(ctx context.Context, id string) (*transcript.ReplayView, error) {
	data, err := c.redis.Get(ctx, replayKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, apperrors.ErrCacheMiss
	} else if err != nil {
		return nil, err
	}

	var view transcript.ReplayView
	if err = json.Unmarshal(data, &view); err != nil {
		c.log.Warnw("dropping unreadable cached replay", "id", id, "error", err)
		_ = c.DropReplay(ctx, id)
		return nil, apperrors.ErrCacheMiss
	}
	return &view, nil
}

func (c *ReplayCache) DropReplay(ctx context.Context, id string) error {
	return c.redis.Del(ctx, replayKey(id)).Err()
}
