package service

import (
	"context"
	"fmt"
	"stay/config"
	"stay/infras/gateway"
	"stay/infras/kafka"
	"stay/infras/otel"
	"stay/infras/session"
	"stay/internal/domains/booking/model"
	"stay/internal/domains/booking/model/dto"
	"stay/internal/domains/booking/pricing"
	"stay/internal/domains/booking/store"
	"stay/internal/domains/booking/validate"
	rtModel "stay/internal/domains/roomtype/model"
	rtRepo "stay/internal/domains/roomtype/repository"
	"stay/shared"
	"stay/shared/constant"
	"stay/shared/failure"
	"stay/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// Booking drives the guest-facing reservation workflow: a linear wizard
// over a session-scoped draft, ending in a single submission to the
// reservation backend.
type Booking interface {
	Start(ctx context.Context, req dto.StartBookingRequest) (dto.StartBookingResponse, error)
	Get(ctx context.Context, id string) (dto.DraftResponse, error)
	Advance(ctx context.Context, id string, req dto.AdvanceBookingRequest) (dto.StepResult, error)
	Retreat(ctx context.Context, id string) (dto.StepResult, error)
	Submit(ctx context.Context, id string, req dto.SubmitBookingRequest) (dto.SubmitBookingResponse, error)
	Pending(ctx context.Context) (dto.PendingReservationResponse, error)
}

// submittedEvent is published after a successful submission for
// downstream consumers (notifications, analytics).
type submittedEvent struct {
	BookingID     string          `json:"booking_id"`
	ReservationID string          `json:"reservation_id"`
	PropertyID    string          `json:"property_id"`
	RoomTypeID    string          `json:"room_type_id"`
	Nights        int             `json:"nights"`
	Total         decimal.Decimal `json:"total"`
	SubmittedAt   int64           `json:"submitted_at"`
}

type serviceImpl struct {
	roomTypes rtRepo.RoomType
	drafts    store.Drafts
	pending   store.Pending
	gateway   gateway.Gateway
	sessions  session.Sessions
	events    kafka.Client
	cfg       *config.Config
	otel      otel.Otel
}

func New(
	roomTypes rtRepo.RoomType,
	drafts store.Drafts,
	pending store.Pending,
	gw gateway.Gateway,
	sessions session.Sessions,
	events kafka.Client,
	cfg *config.Config,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		roomTypes: roomTypes,
		drafts:    drafts,
		pending:   pending,
		gateway:   gw,
		sessions:  sessions,
		events:    events,
		cfg:       cfg,
		otel:      otel,
	}
}

// Start opens a new draft at the dates step. The room type's nightly
// rate and occupancy ceilings are captured into the draft so the whole
// wizard works against one consistent snapshot. A session token is
// minted unless the request already carries a valid one.
func (s *serviceImpl) Start(ctx context.Context, req dto.StartBookingRequest) (res dto.StartBookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Start")
	defer scope.End()
	defer scope.TraceIfError(err)

	sessionID, _ := ctx.Value(constant.ContextKeySessionID).(string)

	if sessionID == constant.Empty {
		token, tokenErr := s.sessions.Issue()
		if tokenErr != nil {
			log.Error().Err(tokenErr).Msg("failed to issue booking session")

			return res, fmt.Errorf("failed to issue booking session: %w", tokenErr)
		}

		sessionID = token.SessionID
		res.SessionToken = token.Signed
		res.SessionExpiresIn = token.ExpiresIn
	}

	roomType, err := s.roomTypes.Get(ctx, shared.FilterByID(req.RoomTypeID, rtModel.FieldID, rtModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room type")

		return res, fmt.Errorf("failed to get room type: %w", err)
	}

	if roomType.ID == constant.Empty {
		return res, failure.NotFound("room type not found") // nolint:wrapcheck
	}

	if roomType.PropertyID != req.PropertyID {
		return res, failure.BadRequestFromString("room type does not belong to the property") // nolint:wrapcheck
	}

	if !roomType.Active {
		return res, failure.UnprocessableEntity("room type is not open for booking") // nolint:wrapcheck
	}

	now := timezone.Now()
	draft := model.Draft{
		ID:             uuid.NewString(),
		SessionID:      sessionID,
		PropertyID:     req.PropertyID,
		RoomTypeID:     req.RoomTypeID,
		IdempotencyKey: uuid.NewString(),
		Step:           model.StepDates,
		Status:         model.StatusInProgress,
		NightlyRate:    roomType.NightlyRate,
		Limits: model.OccupancyLimits{
			MaxAdults:    roomType.MaxAdults,
			MaxChildren:  roomType.MaxChildren,
			MaxOccupancy: roomType.MaxOccupancy,
		},
	}
	draft.CreatedAt = now
	draft.ModifiedAt = now
	draft.CreatedBy = sessionID
	draft.ModifiedBy = sessionID

	if err = s.drafts.Save(ctx, draft); err != nil {
		return res, err
	}

	res.Draft.FromModel(draft)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.DraftResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(nil)

	draft, err := s.draftForSession(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(draft)

	return res, nil
}

// Advance applies the current step's payload, runs its gate, and moves
// the draft forward when the gate passes. On violations the draft stays
// put and the violations are returned as data.
func (s *serviceImpl) Advance(ctx context.Context, id string, req dto.AdvanceBookingRequest) (res dto.StepResult, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Advance")
	defer scope.End()
	defer scope.TraceIfError(err)

	draft, err := s.draftForSession(ctx, id)
	if err != nil {
		return res, err
	}

	if draft.Status != model.StatusInProgress {
		return res, failure.Conflict("booking draft is no longer editable") // nolint:wrapcheck
	}

	var violations validate.Violations

	switch draft.Step {
	case model.StepDates:
		var dates *model.DateRange

		if req.Dates != nil {
			parsed, parseErr := req.Dates.ToModel()
			if parseErr != nil {
				return res, parseErr
			}

			dates = &parsed
		}

		if violations = validate.Dates(dates); violations.Empty() {
			draft.Dates = dates
			breakdown := pricing.Compute(draft.NightlyRate, draft.Dates.Nights())
			draft.Pricing = &breakdown
		}
	case model.StepGuests:
		var occupancy *model.Occupancy

		if req.Guests != nil {
			parsed := req.Guests.ToModel()
			occupancy = &parsed
		}

		if violations = validate.Guests(occupancy, draft.Limits); violations.Empty() {
			draft.Occupancy = occupancy
			breakdown := pricing.Compute(draft.NightlyRate, draft.Dates.Nights())
			draft.Pricing = &breakdown
		}
	case model.StepSummary:
		// The summary step gathers no input; its gate always passes.
		violations = validate.Violations{}
	case model.StepIdentity:
		return res, failure.Conflict("the identity step is completed by submitting the booking") // nolint:wrapcheck
	}

	if !violations.Empty() {
		res.Draft.FromModel(draft)
		res.Violations = violations

		return res, nil
	}

	next, _ := draft.Step.Next()
	draft.Step = next
	draft.ModifiedAt = timezone.Now()
	draft.ModifiedBy = draft.SessionID

	if err = s.drafts.Save(ctx, draft); err != nil {
		return res, err
	}

	res.Draft.FromModel(draft)

	return res, nil
}

// Retreat moves the draft one step back without validation. Inputs
// already collected are kept so moving forward again is cheap.
func (s *serviceImpl) Retreat(ctx context.Context, id string) (res dto.StepResult, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Retreat")
	defer scope.End()
	defer scope.TraceIfError(err)

	draft, err := s.draftForSession(ctx, id)
	if err != nil {
		return res, err
	}

	if draft.Status != model.StatusInProgress {
		return res, failure.Conflict("booking draft is no longer editable") // nolint:wrapcheck
	}

	prev, ok := draft.Step.Prev()
	if !ok {
		return res, failure.Conflict("booking draft is already at the first step") // nolint:wrapcheck
	}

	draft.Step = prev
	draft.ModifiedAt = timezone.Now()
	draft.ModifiedBy = draft.SessionID

	if err = s.drafts.Save(ctx, draft); err != nil {
		return res, err
	}

	res.Draft.FromModel(draft)

	return res, nil
}

// Submit finalizes the draft: identity is applied, every step is
// revalidated, pricing is recomputed from source values, and exactly
// one request goes to the reservation backend. On a failed call the
// draft is kept intact so the guest can retry; on success the
// pending-reservation marker is recorded before the checkout URL is
// returned.
func (s *serviceImpl) Submit(ctx context.Context, id string, req dto.SubmitBookingRequest) (res dto.SubmitBookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Submit")
	defer scope.End()
	defer scope.TraceIfError(err)

	draft, err := s.draftForSession(ctx, id)
	if err != nil {
		return res, err
	}

	switch draft.Status {
	case model.StatusSubmitting:
		return res, failure.Conflict("a submission for this booking is already in flight") // nolint:wrapcheck
	case model.StatusSubmitted:
		return res, failure.Conflict("booking has already been submitted") // nolint:wrapcheck
	case model.StatusInProgress:
	}

	if draft.Step != model.StepIdentity {
		return res, failure.Conflict("booking is not ready for submission") // nolint:wrapcheck
	}

	identity := req.ToModel()
	draft.Identity = &identity

	if draft.Dates != nil {
		breakdown := pricing.Compute(draft.NightlyRate, draft.Dates.Nights())
		draft.Pricing = &breakdown
	}

	if violations := validate.Draft(draft); !violations.Empty() {
		if saveErr := s.drafts.Save(ctx, draft); saveErr != nil {
			return res, saveErr
		}

		res.Violations = violations

		return res, nil
	}

	draft.Status = model.StatusSubmitting
	draft.ModifiedAt = timezone.Now()
	draft.ModifiedBy = draft.SessionID

	if err = s.drafts.Save(ctx, draft); err != nil {
		return res, err
	}

	reservation, err := s.gateway.CreateReservation(ctx, buildReservationRequest(draft), draft.IdempotencyKey)
	if err != nil {
		log.Error().Err(err).Str("draft_id", draft.ID).Msg("reservation submission failed")

		// The draft survives the failure so the guest can retry without
		// re-entering anything.
		draft.Status = model.StatusInProgress
		if saveErr := s.drafts.Save(ctx, draft); saveErr != nil {
			log.Error().Err(saveErr).Str("draft_id", draft.ID).Msg("failed to restore draft after submission failure")
		}

		return res, err
	}

	// The marker is recorded before the checkout URL is handed back, so
	// an interrupted redirect can still be reconciled.
	marker := model.PendingReservation{
		ReservationID:    reservation.ReservationID,
		PaymentSessionID: reservation.PaymentSessionID,
		CreatedAt:        timezone.Now().UnixMilli(),
	}
	if err = s.pending.Record(ctx, draft.SessionID, marker); err != nil {
		log.Error().Err(err).Str("reservation_id", reservation.ReservationID).Msg("failed to record pending reservation marker")
	}

	draft.Status = model.StatusSubmitted
	draft.ModifiedAt = timezone.Now()

	if saveErr := s.drafts.Save(ctx, draft); saveErr != nil {
		log.Error().Err(saveErr).Str("draft_id", draft.ID).Msg("failed to mark draft as submitted")
	}

	s.publishSubmitted(ctx, draft, reservation.ReservationID)

	res.FromGateway(reservation)

	return res, nil
}

// Pending returns the session's pending-reservation marker, if any.
func (s *serviceImpl) Pending(ctx context.Context) (res dto.PendingReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Pending")
	defer scope.End()
	defer scope.TraceIfError(nil)

	sessionID, _ := ctx.Value(constant.ContextKeySessionID).(string)
	if sessionID == constant.Empty {
		return res, failure.Unauthorized("missing booking session") // nolint:wrapcheck
	}

	marker, found, err := s.pending.Peek(ctx, sessionID)
	if err != nil {
		return res, err
	}

	if !found {
		return res, failure.NotFound("pending reservation not found") // nolint:wrapcheck
	}

	res.FromModel(marker)

	return res, nil
}

func (s *serviceImpl) draftForSession(ctx context.Context, id string) (model.Draft, error) {
	sessionID, _ := ctx.Value(constant.ContextKeySessionID).(string)
	if sessionID == constant.Empty {
		return model.Draft{}, failure.Unauthorized("missing booking session") // nolint:wrapcheck
	}

	draft, found, err := s.drafts.Get(ctx, id)
	if err != nil {
		return model.Draft{}, err
	}

	if !found {
		return model.Draft{}, failure.NotFound("booking draft not found") // nolint:wrapcheck
	}

	if draft.SessionID != sessionID {
		return model.Draft{}, failure.Forbidden("booking draft belongs to another session") // nolint:wrapcheck
	}

	return draft, nil
}

func buildReservationRequest(draft model.Draft) gateway.CreateReservationRequest {
	return gateway.CreateReservationRequest{
		FirstName:      draft.Identity.FirstName,
		LastName:       draft.Identity.LastName,
		Email:          draft.Identity.Email,
		Phone:          draft.Identity.Phone,
		CheckInDate:    timezone.Format(draft.Dates.CheckIn, constant.DateFormat),
		CheckOutDate:   timezone.Format(draft.Dates.CheckOut, constant.DateFormat),
		Adults:         draft.Occupancy.Adults,
		Children:       draft.Occupancy.Children,
		TotalAmount:    draft.Pricing.Total,
		Nights:         draft.Pricing.Nights,
		Subtotal:       draft.Pricing.Subtotal,
		Taxes:          draft.Pricing.Taxes,
		ServiceFee:     draft.Pricing.ServiceFee,
		BusinessUnitID: draft.PropertyID,
		RoomTypeID:     draft.RoomTypeID,
	}
}

func (s *serviceImpl) publishSubmitted(ctx context.Context, draft model.Draft, reservationID string) {
	event := submittedEvent{
		BookingID:     draft.ID,
		ReservationID: reservationID,
		PropertyID:    draft.PropertyID,
		RoomTypeID:    draft.RoomTypeID,
		Nights:        draft.Pricing.Nights,
		Total:         draft.Pricing.Total,
		SubmittedAt:   timezone.Now().UnixMilli(),
	}

	go func() {
		c := context.WithoutCancel(ctx)

		message := kafka.Message{Key: draft.ID, Value: event}
		if err := s.events.SendMessages(c, s.cfg.Kafka.SubmittedTopic, message); err != nil {
			log.Error().Err(err).Str("booking_id", draft.ID).Msg("failed to publish booking submitted event")
		}
	}()
}
