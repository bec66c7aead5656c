package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"stay/config"
	"stay/infras/otel"
	"stay/shared/constant"
	"stay/shared/failure"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// CreateReservationRequest is the wire contract of the external booking
// backend: one call creates the reservation and the payment checkout
// session together. The pricing fields are informational; the backend
// re-derives the binding charge from the rate and the date range.
type CreateReservationRequest struct {
	FirstName    string          `json:"firstName"`
	LastName     string          `json:"lastName"`
	Email        string          `json:"email"`
	Phone        string          `json:"phone,omitempty"`
	CheckInDate  string          `json:"checkInDate"`
	CheckOutDate string          `json:"checkOutDate"`
	Adults       int             `json:"adults"`
	Children     int             `json:"children"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	Nights       int             `json:"nights"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	Taxes        decimal.Decimal `json:"taxes"`
	ServiceFee   decimal.Decimal `json:"serviceFee"`

	BusinessUnitID string `json:"businessUnitId"`
	RoomTypeID     string `json:"roomTypeId"`
}

type CreateReservationResponse struct {
	ReservationID    string `json:"reservationId"`
	CheckoutURL      string `json:"checkoutUrl"`
	PaymentSessionID string `json:"paymentSessionId"`
}

type upstreamError struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// Gateway is the client for the reservations+payments backend.
type Gateway interface {
	CreateReservation(ctx context.Context, req CreateReservationRequest, idempotencyKey string) (CreateReservationResponse, error)
}

type gatewayImpl struct {
	cfg  *config.Config
	hc   *http.Client
	otel otel.Otel
}

func New(cfg *config.Config, ot otel.Otel) Gateway {
	return &gatewayImpl{
		cfg: cfg,
		hc: &http.Client{
			Timeout: time.Duration(cfg.External.Reservations.TimeoutSeconds) * time.Second,
		},
		otel: ot,
	}
}

func (g *gatewayImpl) CreateReservation(ctx context.Context, req CreateReservationRequest, idempotencyKey string) (res CreateReservationResponse, err error) {
	ctx, scope := g.otel.NewScope(ctx, constant.OtelGatewayScopeName, constant.OtelGatewayScopeName+".CreateReservation")
	defer scope.End()
	defer scope.TraceIfError(err)

	body, err := json.Marshal(req)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal reservation request")

		return res, fmt.Errorf("failed to marshal reservation request: %w", err)
	}

	url := g.cfg.External.Reservations.BaseURL + "/reservations"
	scope.SetAttribute("http.url", url)

	// The request carries the workflow's context so an abandoned booking
	// attempt cancels the outbound call as well.
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		log.Error().Err(err).Msg("failed to build reservation request")

		return res, fmt.Errorf("failed to build reservation request: %w", err)
	}

	httpReq.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	httpReq.Header.Set(constant.RequestHeaderIdempotencyKey, idempotencyKey)

	if g.cfg.External.Reservations.APIKey != "" {
		httpReq.Header.Set(constant.RequestHeaderAPIKey, g.cfg.External.Reservations.APIKey)
	}

	httpRes, err := g.hc.Do(httpReq)
	if err != nil {
		log.Error().Err(err).Str("url", url).Msg("reservation backend unreachable")

		return res, failure.BadGateway("reservation backend unreachable") // nolint:wrapcheck
	}
	defer httpRes.Body.Close()

	if httpRes.StatusCode >= http.StatusBadRequest {
		upstream := upstreamError{}
		if decodeErr := json.NewDecoder(httpRes.Body).Decode(&upstream); decodeErr != nil || upstream.Error == "" {
			upstream.Error = "reservation backend rejected the request"
		}

		msg := upstream.Error
		if upstream.Details != "" {
			msg = fmt.Sprintf("%s: %s", upstream.Error, upstream.Details)
		}

		log.Error().
			Int("status", httpRes.StatusCode).
			Str("error", upstream.Error).
			Msg("reservation backend rejected submission")

		return res, failure.FromUpstream(httpRes.StatusCode, msg) // nolint:wrapcheck
	}

	if err = json.NewDecoder(httpRes.Body).Decode(&res); err != nil {
		log.Error().Err(err).Msg("failed to decode reservation response")

		return res, failure.BadGateway("invalid response from reservation backend") // nolint:wrapcheck
	}

	return res, nil
}
