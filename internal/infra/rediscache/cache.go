package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"rategrid/internal/domain/rate"
	"rategrid/internal/infra/observability"
	"rategrid/internal/infra/repository/converter"
	"rategrid/internal/pkg/config"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RateCache fronts the rate snapshot store for the quote path. Entries reuse
// the persistence codec, so the cache never drifts from what the row decodes
// to. Misses and decode failures both read through.
type RateCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewClient(cfg config.RedisConfig) (*redis.Client, func(), error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		_ = client.Close()
		return nil, nil, err
	}
	cleanup := func() { _ = client.Close() }
	return client, cleanup, nil
}

func NewRateCache(client *redis.Client, ttl time.Duration) *RateCache {
	return &RateCache{client: client, ttl: ttl}
}

type cachedRate struct {
	Columns  converter.RateColumns `json:"columns"`
	Document json.RawMessage       `json:"document"`
}

func rateKey(id uuid.UUID) string {
	return "rate:" + id.String()
}

func (c *RateCache) Get(ctx context.Context, id uuid.UUID) (*rate.Snapshot, bool, error) {
	raw, err := c.client.Get(ctx, rateKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		observability.ObserveCache("rate", "miss")
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var entry cachedRate
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, false, err
	}
	snap, err := converter.UnmarshalRateDocument(entry.Document, entry.Columns)
	if err != nil {
		return nil, false, err
	}
	observability.ObserveCache("rate", "hit")
	return &snap, true, nil
}

func (c *RateCache) Set(ctx context.Context, snap *rate.Snapshot) error {
	doc, err := converter.MarshalRateDocument(*snap)
	if err != nil {
		return err
	}
	entry, err := json.Marshal(cachedRate{
		Columns: converter.RateColumns{
			ID:        snap.ID,
			GroupID:   snap.GroupID,
			Version:   snap.Version,
			CreatedBy: snap.CreatedBy,
			CreatedAt: snap.CreatedAt,
			UpdatedAt: snap.UpdatedAt,
		},
		Document: doc,
	})
	if err != nil {
		return err
	}
	observability.ObserveCache("rate", "set")
	return c.client.Set(ctx, rateKey(snap.ID), entry, c.ttl).Err()
}

func (c *RateCache) Invalidate(ctx context.Context, rateID uuid.UUID) error {
	observability.ObserveCache("rate", "del")
	return c.client.Del(ctx, rateKey(rateID)).Err()
}
