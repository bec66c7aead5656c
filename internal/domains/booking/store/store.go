// Package store keeps booking drafts and pending-reservation markers in
// the session-scoped key-value store. Both expire with the guest
// session; nothing here reaches the reservation backend.
package store

import (
	"context"
	"errors"
	"fmt"
	"stay/config"
	"stay/internal/domains/booking/model"
	"stay/shared"
	"stay/shared/cache"
	"stay/shared/constant"

	"github.com/rs/zerolog/log"
)

const (
	draftKeyPrefix   = "booking:draft"
	pendingKeyPrefix = "booking:pending"
)

// Drafts stores in-progress booking drafts keyed by draft ID.
type Drafts interface {
	Save(ctx context.Context, draft model.Draft) error
	Get(ctx context.Context, id string) (model.Draft, bool, error)
	Delete(ctx context.Context, id string) error
}

// Pending stores at most one pending-reservation marker per guest
// session, written after a successful submission and read back when the
// guest returns from checkout.
type Pending interface {
	Record(ctx context.Context, sessionID string, marker model.PendingReservation) error
	Peek(ctx context.Context, sessionID string) (model.PendingReservation, bool, error)
}

type redisDrafts struct {
	cache cache.RedisCache
	cfg   *config.Config
}

func NewDrafts(c cache.RedisCache, cfg *config.Config) Drafts {
	return &redisDrafts{
		cache: c,
		cfg:   cfg,
	}
}

func (s *redisDrafts) Save(ctx context.Context, draft model.Draft) error {
	key := shared.BuildCacheKey(draftKeyPrefix, draft.ID)
	ttl := s.cfg.Booking.DraftTTLMinutes * constant.MinutesToSeconds

	if err := s.cache.Save(ctx, key, draft, ttl); err != nil {
		log.Error().Err(err).Str("draft_id", draft.ID).Msg("failed to save booking draft")

		return fmt.Errorf("failed to save booking draft: %w", err)
	}

	return nil
}

func (s *redisDrafts) Get(ctx context.Context, id string) (model.Draft, bool, error) {
	draft := model.Draft{}
	key := shared.BuildCacheKey(draftKeyPrefix, id)

	err := s.cache.Get(ctx, key, &draft)
	if err != nil {
		if errors.Is(err, cache.Nil) {
			return draft, false, nil
		}

		log.Error().Err(err).Str("draft_id", id).Msg("failed to get booking draft")

		return draft, false, fmt.Errorf("failed to get booking draft: %w", err)
	}

	return draft, true, nil
}

func (s *redisDrafts) Delete(ctx context.Context, id string) error {
	key := shared.BuildCacheKey(draftKeyPrefix, id)

	if err := s.cache.Delete(ctx, key); err != nil {
		log.Error().Err(err).Str("draft_id", id).Msg("failed to delete booking draft")

		return fmt.Errorf("failed to delete booking draft: %w", err)
	}

	return nil
}

type redisPending struct {
	cache cache.RedisCache
	cfg   *config.Config
}

func NewPending(c cache.RedisCache, cfg *config.Config) Pending {
	return &redisPending{
		cache: c,
		cfg:   cfg,
	}
}

func (s *redisPending) Record(ctx context.Context, sessionID string, marker model.PendingReservation) error {
	key := shared.BuildCacheKey(pendingKeyPrefix, sessionID)
	ttl := s.cfg.Session.ExpireMinutes * constant.MinutesToSeconds

	if err := s.cache.Save(ctx, key, marker, ttl); err != nil {
		log.Error().Err(err).Str("session_id", sessionID).Msg("failed to record pending reservation")

		return fmt.Errorf("failed to record pending reservation: %w", err)
	}

	return nil
}

func (s *redisPending) Peek(ctx context.Context, sessionID string) (model.PendingReservation, bool, error) {
	marker := model.PendingReservation{}
	key := shared.BuildCacheKey(pendingKeyPrefix, sessionID)

	err := s.cache.Get(ctx, key, &marker)
	if err != nil {
		if errors.Is(err, cache.Nil) {
			return marker, false, nil
		}

		log.Error().Err(err).Str("session_id", sessionID).Msg("failed to get pending reservation")

		return marker, false, fmt.Errorf("failed to get pending reservation: %w", err)
	}

	return marker, true, nil
}
