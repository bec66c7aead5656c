package booking

import (
	"net/http"
	"stay/infras/otel"
	"stay/internal/domains/booking/model/dto"
	"stay/internal/domains/booking/service"
	"stay/shared/constant"
	"stay/shared/validator"
	"stay/transport/http/middleware"
	"stay/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Booking
	session middleware.Session
	otel    otel.Otel
}

func New(service service.Booking, session middleware.Session, otel otel.Otel) Handler {
	return Handler{
		service: service,
		session: session,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.With(handler.session.MaybeGuest).Post("/", handler.StartBooking)

		routerGroup.Group(func(protected chi.Router) {
			protected.Use(handler.session.Guest)
			protected.Get("/pending", handler.GetPendingReservation)
			protected.Route("/{id}", func(draftGroup chi.Router) {
				draftGroup.Get("/", handler.GetBooking)
				draftGroup.Post("/advance", handler.AdvanceBooking)
				draftGroup.Post("/retreat", handler.RetreatBooking)
				draftGroup.Post("/submit", handler.SubmitBooking)
			})
		})
	})
}

// StartBooking opens a new booking draft for a room type.
// @Summary Start a booking
// @Description Open a new booking draft at the dates step. A guest session token is minted unless the request carries one.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.StartBookingRequest true "Start Booking Request"
// @Success 201 {object} dto.StartBookingResponse "Booking draft created"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 422 {object} response.Error
// @Router /v1/bookings [post]
func (handler *Handler) StartBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".StartBooking")
	defer scope.End()

	req := dto.StartBookingRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Start(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to start booking")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetBooking returns the current state of a booking draft.
// @Summary Get a booking draft
// @Description Retrieve a booking draft owned by the caller's session.
// @Tags Booking
// @Produce json
// @Param id path string true "Booking draft ID"
// @Success 200 {object} dto.DraftResponse
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/bookings/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBooking")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	res, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// AdvanceBooking applies the current step's payload and moves forward.
// @Summary Advance a booking draft
// @Description Validate the current step's payload. On success the draft moves to the next step; on violations it stays put and the violations are returned.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking draft ID"
// @Param request body dto.AdvanceBookingRequest true "Step payload"
// @Success 200 {object} dto.StepResult
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 422 {object} dto.StepResult "Step violations"
// @Router /v1/bookings/{id}/advance [post]
// @Security BearerAuth
func (handler *Handler) AdvanceBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AdvanceBooking")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	req := dto.AdvanceBookingRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Advance(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to advance booking")

		response.WithError(writer, err)

		return
	}

	if !res.Violations.Empty() {
		response.WithJSON(writer, http.StatusUnprocessableEntity, res)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// RetreatBooking moves a booking draft one step back.
// @Summary Retreat a booking draft
// @Description Move the draft to the previous step. Collected inputs are kept.
// @Tags Booking
// @Produce json
// @Param id path string true "Booking draft ID"
// @Success 200 {object} dto.StepResult
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/bookings/{id}/retreat [post]
// @Security BearerAuth
func (handler *Handler) RetreatBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RetreatBooking")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	res, err := handler.service.Retreat(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to retreat booking")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// SubmitBooking finalizes a draft against the reservation backend.
// @Summary Submit a booking
// @Description Apply the guest identity, revalidate the whole draft, and create the reservation with its payment checkout session in one call.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking draft ID"
// @Param request body dto.SubmitBookingRequest true "Guest identity"
// @Success 200 {object} dto.SubmitBookingResponse
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 422 {object} dto.SubmitBookingResponse "Draft violations"
// @Failure 502 {object} response.Error
// @Router /v1/bookings/{id}/submit [post]
// @Security BearerAuth
func (handler *Handler) SubmitBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SubmitBooking")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	req := dto.SubmitBookingRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Submit(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to submit booking")

		response.WithError(writer, err)

		return
	}

	if !res.Violations.Empty() {
		response.WithJSON(writer, http.StatusUnprocessableEntity, res)

		return
	}

	scope.AddEvent("booking submitted, reservation " + res.ReservationID)

	response.WithJSON(writer, http.StatusOK, res)
}

// GetPendingReservation returns the session's pending reservation.
// @Summary Get the pending reservation
// @Description Return the pending-reservation marker recorded for the caller's session, if any.
// @Tags Booking
// @Produce json
// @Success 200 {object} dto.PendingReservationResponse
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/bookings/pending [get]
// @Security BearerAuth
func (handler *Handler) GetPendingReservation(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPendingReservation")
	defer scope.End()

	res, err := handler.service.Pending(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get pending reservation")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}
