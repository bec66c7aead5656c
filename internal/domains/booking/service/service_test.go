package service_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"stay/config"
	"stay/infras/gateway"
	gatewayMocks "stay/infras/gateway/mocks"
	kafkaMocks "stay/infras/kafka/mocks"
	otelMocks "stay/infras/otel/mocks"
	"stay/infras/session"
	"stay/internal/domains/booking/model"
	"stay/internal/domains/booking/model/dto"
	"stay/internal/domains/booking/service"
	"stay/internal/domains/booking/store"
	"stay/internal/domains/booking/validate"
	rtModel "stay/internal/domains/roomtype/model"
	rtMocks "stay/internal/domains/roomtype/repository/mocks"
	"stay/shared/constant"
	"stay/shared/failure"
)

const (
	testPropertyID = "0f8fad5b-d9cb-469f-a165-70867728950e"
	testRoomTypeID = "7c9e6679-7425-40de-944b-e07fc1f90ae7"
	testSessionID  = "session-1"
)

type fixture struct {
	svc       service.Booking
	roomTypes *rtMocks.MockRoomType
	drafts    store.Drafts
	pending   store.Pending
	gateway   *gatewayMocks.Gateway
	events    *kafkaMocks.Client
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Session.Secret = "test-secret"
	cfg.Session.ExpireMinutes = 120
	cfg.Booking.DraftTTLMinutes = 120
	cfg.Kafka.SubmittedTopic = "booking.submitted"

	f := &fixture{
		roomTypes: rtMocks.NewMockRoomType(ctrl),
		drafts:    store.NewMemoryDrafts(),
		pending:   store.NewMemoryPending(),
		gateway:   gatewayMocks.NewGateway(),
		events:    kafkaMocks.NewClient(),
	}

	f.svc = service.New(
		f.roomTypes,
		f.drafts,
		f.pending,
		f.gateway,
		session.New(cfg),
		f.events,
		cfg,
		otelMocks.NewOtel(),
	)

	return f
}

func sessionContext(sessionID string) context.Context {
	return context.WithValue(context.Background(), constant.ContextKeySessionID, sessionID)
}

func activeRoomType() rtModel.RoomType {
	return rtModel.RoomType{
		ID:           testRoomTypeID,
		PropertyID:   testPropertyID,
		Name:         "Deluxe King",
		NightlyRate:  decimal.RequireFromString("5000"),
		MaxAdults:    2,
		MaxChildren:  2,
		MaxOccupancy: 4,
		Active:       true,
	}
}

func startDraft(t *testing.T, f *fixture, ctx context.Context) string {
	t.Helper()

	f.roomTypes.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(activeRoomType(), nil)

	res, err := f.svc.Start(ctx, dto.StartBookingRequest{
		PropertyID: testPropertyID,
		RoomTypeID: testRoomTypeID,
	})
	assert.NoError(t, err)

	return res.Draft.ID
}

// advanceToIdentity walks a fresh draft through dates, guests, and
// summary with valid inputs.
func advanceToIdentity(t *testing.T, f *fixture, ctx context.Context, id string) {
	t.Helper()

	res, err := f.svc.Advance(ctx, id, dto.AdvanceBookingRequest{
		Dates: &dto.DatesPayload{CheckIn: "2024-07-01", CheckOut: "2024-07-04"},
	})
	assert.NoError(t, err)
	assert.Empty(t, res.Violations)

	res, err = f.svc.Advance(ctx, id, dto.AdvanceBookingRequest{
		Guests: &dto.GuestsPayload{Adults: 2, Children: 1},
	})
	assert.NoError(t, err)
	assert.Empty(t, res.Violations)

	res, err = f.svc.Advance(ctx, id, dto.AdvanceBookingRequest{})
	assert.NoError(t, err)
	assert.Equal(t, string(model.StepIdentity), res.Draft.Step)
}

func TestBookingService_Start(t *testing.T) {
	t.Run("opens a draft at the dates step with the catalog snapshot", func(t *testing.T) {
		f := newFixture(t)
		ctx := sessionContext(testSessionID)

		f.roomTypes.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(activeRoomType(), nil)

		res, err := f.svc.Start(ctx, dto.StartBookingRequest{
			PropertyID: testPropertyID,
			RoomTypeID: testRoomTypeID,
		})

		assert.NoError(t, err)
		assert.Equal(t, string(model.StepDates), res.Draft.Step)
		assert.Equal(t, string(model.StatusInProgress), res.Draft.Status)
		assert.True(t, res.Draft.NightlyRate.Equal(decimal.RequireFromString("5000")))
		assert.Empty(t, res.SessionToken, "an existing session is reused")

		draft, found, err := f.drafts.Get(ctx, res.Draft.ID)
		assert.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, testSessionID, draft.SessionID)
		assert.NotEmpty(t, draft.IdempotencyKey)
		assert.Equal(t, model.OccupancyLimits{MaxAdults: 2, MaxChildren: 2, MaxOccupancy: 4}, draft.Limits)
	})

	t.Run("mints a session token when the request has none", func(t *testing.T) {
		f := newFixture(t)

		f.roomTypes.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(activeRoomType(), nil)

		res, err := f.svc.Start(context.Background(), dto.StartBookingRequest{
			PropertyID: testPropertyID,
			RoomTypeID: testRoomTypeID,
		})

		assert.NoError(t, err)
		assert.NotEmpty(t, res.SessionToken)
		assert.Positive(t, res.SessionExpiresIn)
	})

	t.Run("unknown room type", func(t *testing.T) {
		f := newFixture(t)

		f.roomTypes.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(rtModel.RoomType{}, nil)

		_, err := f.svc.Start(sessionContext(testSessionID), dto.StartBookingRequest{
			PropertyID: testPropertyID,
			RoomTypeID: testRoomTypeID,
		})

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("room type from another property", func(t *testing.T) {
		f := newFixture(t)

		roomType := activeRoomType()
		roomType.PropertyID = "8e8693c7-5a2d-4f3c-9a24-7e1a5e1c3a10"

		f.roomTypes.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(roomType, nil)

		_, err := f.svc.Start(sessionContext(testSessionID), dto.StartBookingRequest{
			PropertyID: testPropertyID,
			RoomTypeID: testRoomTypeID,
		})

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("inactive room type", func(t *testing.T) {
		f := newFixture(t)

		roomType := activeRoomType()
		roomType.Active = false

		f.roomTypes.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(roomType, nil)

		_, err := f.svc.Start(sessionContext(testSessionID), dto.StartBookingRequest{
			PropertyID: testPropertyID,
			RoomTypeID: testRoomTypeID,
		})

		assert.Error(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, failure.GetCode(err))
	})
}

func TestBookingService_Advance(t *testing.T) {
	t.Run("missing dates keep the draft on the dates step", func(t *testing.T) {
		f := newFixture(t)
		ctx := sessionContext(testSessionID)
		id := startDraft(t, f, ctx)

		res, err := f.svc.Advance(ctx, id, dto.AdvanceBookingRequest{})

		assert.NoError(t, err)
		assert.Equal(t, validate.KindMissingDate, res.Violations["check_in"].Kind)
		assert.Equal(t, validate.KindMissingDate, res.Violations["check_out"].Kind)
		assert.Equal(t, string(model.StepDates), res.Draft.Step)
	})

	t.Run("inverted dates are rejected", func(t *testing.T) {
		f := newFixture(t)
		ctx := sessionContext(testSessionID)
		id := startDraft(t, f, ctx)

		res, err := f.svc.Advance(ctx, id, dto.AdvanceBookingRequest{
			Dates: &dto.DatesPayload{CheckIn: "2024-07-04", CheckOut: "2024-07-01"},
		})

		assert.NoError(t, err)
		assert.Equal(t, validate.KindInvalidRange, res.Violations["check_out"].Kind)
		assert.Equal(t, string(model.StepDates), res.Draft.Step)
	})

	t.Run("valid dates advance to guests and price the stay", func(t *testing.T) {
		f := newFixture(t)
		ctx := sessionContext(testSessionID)
		id := startDraft(t, f, ctx)

		res, err := f.svc.Advance(ctx, id, dto.AdvanceBookingRequest{
			Dates: &dto.DatesPayload{CheckIn: "2024-07-01", CheckOut: "2024-07-04"},
		})

		assert.NoError(t, err)
		assert.Empty(t, res.Violations)
		assert.Equal(t, string(model.StepGuests), res.Draft.Step)

		if assert.NotNil(t, res.Draft.Pricing) {
			assert.Equal(t, 3, res.Draft.Pricing.Nights)
			assert.True(t, res.Draft.Pricing.Subtotal.Equal(decimal.RequireFromString("15000")))
			assert.True(t, res.Draft.Pricing.Taxes.Equal(decimal.RequireFromString("1800")))
			assert.True(t, res.Draft.Pricing.ServiceFee.Equal(decimal.RequireFromString("750")))
			assert.True(t, res.Draft.Pricing.Total.Equal(decimal.RequireFromString("17550")))
		}
	})

	t.Run("adult ceiling is reported before the combined ceiling", func(t *testing.T) {
		f := newFixture(t)
		ctx := sessionContext(testSessionID)
		id := startDraft(t, f, ctx)

		_, err := f.svc.Advance(ctx, id, dto.AdvanceBookingRequest{
			Dates: &dto.DatesPayload{CheckIn: "2024-07-01", CheckOut: "2024-07-04"},
		})
		assert.NoError(t, err)

		res, err := f.svc.Advance(ctx, id, dto.AdvanceBookingRequest{
			Guests: &dto.GuestsPayload{Adults: 5, Children: 0},
		})

		assert.NoError(t, err)
		assert.Equal(t, validate.KindTooManyAdults, res.Violations["adults"].Kind)
		assert.NotContains(t, res.Violations, "occupancy")
		assert.Equal(t, string(model.StepGuests), res.Draft.Step)
	})

	t.Run("the summary step advances without a payload", func(t *testing.T) {
		f := newFixture(t)
		ctx := sessionContext(testSessionID)
		id := startDraft(t, f, ctx)

		advanceToIdentity(t, f, ctx, id)
	})

	t.Run("advancing past identity is a conflict", func(t *testing.T) {
		f := newFixture(t)
		ctx := sessionContext(testSessionID)
		id := startDraft(t, f, ctx)
		advanceToIdentity(t, f, ctx, id)

		_, err := f.svc.Advance(ctx, id, dto.AdvanceBookingRequest{})

		assert.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("a foreign session cannot touch the draft", func(t *testing.T) {
		f := newFixture(t)
		ctx := sessionContext(testSessionID)
		id := startDraft(t, f, ctx)

		_, err := f.svc.Advance(sessionContext("session-2"), id, dto.AdvanceBookingRequest{})

		assert.Error(t, err)
		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})
}

func TestBookingService_Retreat(t *testing.T) {
	t.Run("retreating from the first step is a conflict", func(t *testing.T) {
		f := newFixture(t)
		ctx := sessionContext(testSessionID)
		id := startDraft(t, f, ctx)

		_, err := f.svc.Retreat(ctx, id)

		assert.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("retreating keeps collected inputs", func(t *testing.T) {
		f := newFixture(t)
		ctx := sessionContext(testSessionID)
		id := startDraft(t, f, ctx)

		_, err := f.svc.Advance(ctx, id, dto.AdvanceBookingRequest{
			Dates: &dto.DatesPayload{CheckIn: "2024-07-01", CheckOut: "2024-07-04"},
		})
		assert.NoError(t, err)

		res, err := f.svc.Retreat(ctx, id)

		assert.NoError(t, err)
		assert.Equal(t, string(model.StepDates), res.Draft.Step)
		if assert.NotNil(t, res.Draft.Dates) {
			assert.Equal(t, "2024-07-01", res.Draft.Dates.CheckIn)
		}
	})
}

func TestBookingService_Submit(t *testing.T) {
	t.Run("submitting before the identity step makes no network call", func(t *testing.T) {
		f := newFixture(t)
		ctx := sessionContext(testSessionID)
		id := startDraft(t, f, ctx)

		_, err := f.svc.Submit(ctx, id, dto.SubmitBookingRequest{})

		assert.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
		assert.Zero(t, f.gateway.CallCount())
	})

	t.Run("identity violations block the call and keep the draft", func(t *testing.T) {
		f := newFixture(t)
		ctx := sessionContext(testSessionID)
		id := startDraft(t, f, ctx)
		advanceToIdentity(t, f, ctx, id)

		res, err := f.svc.Submit(ctx, id, dto.SubmitBookingRequest{
			FirstName: "Jane",
			LastName:  "Doe",
			Email:     "not-an-email",
		})

		assert.NoError(t, err)
		assert.Equal(t, validate.KindInvalidEmail, res.Violations["email"].Kind)
		assert.Zero(t, f.gateway.CallCount())

		draft, found, err := f.drafts.Get(ctx, id)
		assert.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, model.StatusInProgress, draft.Status)
	})

	t.Run("a successful submission records the marker and returns checkout", func(t *testing.T) {
		f := newFixture(t)
		ctx := sessionContext(testSessionID)
		id := startDraft(t, f, ctx)
		advanceToIdentity(t, f, ctx, id)

		f.gateway.Response = gateway.CreateReservationResponse{
			ReservationID:    "res-1",
			CheckoutURL:      "https://pay.example.com/cs_123",
			PaymentSessionID: "cs_123",
		}

		res, err := f.svc.Submit(ctx, id, dto.SubmitBookingRequest{
			FirstName: "Jane",
			LastName:  "Doe",
			Email:     "jane@example.com",
		})

		assert.NoError(t, err)
		assert.Equal(t, "res-1", res.ReservationID)
		assert.Equal(t, "https://pay.example.com/cs_123", res.CheckoutURL)
		assert.Equal(t, 1, f.gateway.CallCount())

		sent := f.gateway.Requests[0]
		assert.True(t, sent.TotalAmount.Equal(decimal.RequireFromString("17550")))
		assert.True(t, sent.Subtotal.Equal(decimal.RequireFromString("15000")))
		assert.Equal(t, 3, sent.Nights)
		assert.Equal(t, testPropertyID, sent.BusinessUnitID)

		marker, found, err := f.pending.Peek(ctx, testSessionID)
		assert.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "res-1", marker.ReservationID)
		assert.Equal(t, "cs_123", marker.PaymentSessionID)

		draft, _, _ := f.drafts.Get(ctx, id)
		assert.Equal(t, model.StatusSubmitted, draft.Status)

		assert.Eventually(t, func() bool {
			return len(f.events.Sent("booking.submitted")) == 1
		}, time.Second, 10*time.Millisecond)
	})

	t.Run("a transport failure keeps the draft for retry with the same key", func(t *testing.T) {
		f := newFixture(t)
		ctx := sessionContext(testSessionID)
		id := startDraft(t, f, ctx)
		advanceToIdentity(t, f, ctx, id)

		f.gateway.Err = failure.BadGateway("reservation backend unreachable")

		_, err := f.svc.Submit(ctx, id, dto.SubmitBookingRequest{
			FirstName: "Jane",
			LastName:  "Doe",
			Email:     "jane@example.com",
		})

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadGateway, failure.GetCode(err))
		assert.Equal(t, 1, f.gateway.CallCount())

		_, found, _ := f.pending.Peek(ctx, testSessionID)
		assert.False(t, found, "no marker without a reservation")

		draft, _, _ := f.drafts.Get(ctx, id)
		assert.Equal(t, model.StatusInProgress, draft.Status)
		assert.NotNil(t, draft.Identity)

		f.gateway.Err = nil
		f.gateway.Response = gateway.CreateReservationResponse{ReservationID: "res-1", PaymentSessionID: "cs_123"}

		_, err = f.svc.Submit(ctx, id, dto.SubmitBookingRequest{
			FirstName: "Jane",
			LastName:  "Doe",
			Email:     "jane@example.com",
		})

		assert.NoError(t, err)
		assert.Equal(t, 2, f.gateway.CallCount())
		assert.Equal(t, f.gateway.Keys[0], f.gateway.Keys[1], "retries reuse the idempotency key")
	})

	t.Run("a submitted draft rejects another submission", func(t *testing.T) {
		f := newFixture(t)
		ctx := sessionContext(testSessionID)
		id := startDraft(t, f, ctx)
		advanceToIdentity(t, f, ctx, id)

		f.gateway.Response = gateway.CreateReservationResponse{ReservationID: "res-1"}

		_, err := f.svc.Submit(ctx, id, dto.SubmitBookingRequest{
			FirstName: "Jane",
			LastName:  "Doe",
			Email:     "jane@example.com",
		})
		assert.NoError(t, err)

		_, err = f.svc.Submit(ctx, id, dto.SubmitBookingRequest{
			FirstName: "Jane",
			LastName:  "Doe",
			Email:     "jane@example.com",
		})

		assert.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
		assert.Equal(t, 1, f.gateway.CallCount())
	})
}

func TestBookingService_Pending(t *testing.T) {
	t.Run("no marker", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Pending(sessionContext(testSessionID))

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("returns the recorded marker", func(t *testing.T) {
		f := newFixture(t)
		ctx := sessionContext(testSessionID)

		marker := model.PendingReservation{ReservationID: "res-1", PaymentSessionID: "cs_123", CreatedAt: 1719792000000}
		assert.NoError(t, f.pending.Record(ctx, testSessionID, marker))

		res, err := f.svc.Pending(ctx)

		assert.NoError(t, err)
		assert.Equal(t, "res-1", res.ReservationID)
		assert.Equal(t, "cs_123", res.PaymentSessionID)
	})

	t.Run("missing session", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Pending(context.Background())

		assert.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})
}
