package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"stay/internal/domains/booking/model"
	"stay/internal/domains/booking/store"
)

func TestMemoryDrafts(t *testing.T) {
	ctx := context.Background()
	drafts := store.NewMemoryDrafts()

	draft := model.Draft{
		ID:        "draft-1",
		SessionID: "session-1",
		Step:      model.StepDates,
		Status:    model.StatusInProgress,
	}

	t.Run("get before save reports not found", func(t *testing.T) {
		_, found, err := drafts.Get(ctx, "draft-1")
		assert.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("save then get roundtrips", func(t *testing.T) {
		assert.NoError(t, drafts.Save(ctx, draft))

		got, found, err := drafts.Get(ctx, "draft-1")
		assert.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, draft, got)
	})

	t.Run("save overwrites the stored draft", func(t *testing.T) {
		draft.Step = model.StepGuests
		assert.NoError(t, drafts.Save(ctx, draft))

		got, found, err := drafts.Get(ctx, "draft-1")
		assert.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, model.StepGuests, got.Step)
	})

	t.Run("delete removes the draft", func(t *testing.T) {
		assert.NoError(t, drafts.Delete(ctx, "draft-1"))

		_, found, err := drafts.Get(ctx, "draft-1")
		assert.NoError(t, err)
		assert.False(t, found)
	})
}

func TestMemoryPending(t *testing.T) {
	ctx := context.Background()
	pending := store.NewMemoryPending()

	marker := model.PendingReservation{
		ReservationID:    "res-1",
		PaymentSessionID: "pay-1",
		CreatedAt:        1719792000000,
	}

	t.Run("peek before record reports not found", func(t *testing.T) {
		_, found, err := pending.Peek(ctx, "session-1")
		assert.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("record then peek roundtrips", func(t *testing.T) {
		assert.NoError(t, pending.Record(ctx, "session-1", marker))

		got, found, err := pending.Peek(ctx, "session-1")
		assert.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, marker, got)
	})

	t.Run("markers are scoped per session", func(t *testing.T) {
		_, found, err := pending.Peek(ctx, "session-2")
		assert.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("a newer marker replaces the previous one", func(t *testing.T) {
		replacement := model.PendingReservation{ReservationID: "res-2", PaymentSessionID: "pay-2"}
		assert.NoError(t, pending.Record(ctx, "session-1", replacement))

		got, _, err := pending.Peek(ctx, "session-1")
		assert.NoError(t, err)
		assert.Equal(t, "res-2", got.ReservationID)
	})
}
