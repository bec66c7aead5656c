package dto

import (
	"stay/infras/gateway"
	"stay/internal/domains/booking/model"
	"stay/internal/domains/booking/validate"
	"stay/shared/constant"
	gDto "stay/shared/dto"
	"stay/shared/failure"
	"stay/shared/timezone"

	"github.com/shopspring/decimal"
)

type StartBookingRequest struct {
	PropertyID string `json:"property_id" validate:"required,uuid"`
	RoomTypeID string `json:"room_type_id" validate:"required,uuid"`
}

// DatesPayload carries calendar dates as "2006-01-02" strings. Presence
// and ordering are checked by the step gate, not by struct tags, so the
// guest gets violation codes instead of a generic bad-request.
type DatesPayload struct {
	CheckIn  string `json:"check_in"`
	CheckOut string `json:"check_out"`
}

func (p *DatesPayload) ToModel() (model.DateRange, error) {
	dates := model.DateRange{}

	if p.CheckIn != "" {
		checkIn, err := timezone.Parse(constant.CalendarFormat, p.CheckIn)
		if err != nil {
			return dates, failure.BadRequestFromString("check_in must be a calendar date (YYYY-MM-DD)") // nolint:wrapcheck
		}

		dates.CheckIn = checkIn
	}

	if p.CheckOut != "" {
		checkOut, err := timezone.Parse(constant.CalendarFormat, p.CheckOut)
		if err != nil {
			return dates, failure.BadRequestFromString("check_out must be a calendar date (YYYY-MM-DD)") // nolint:wrapcheck
		}

		dates.CheckOut = checkOut
	}

	return dates, nil
}

type GuestsPayload struct {
	Adults   int `json:"adults" validate:"omitempty,gte=0"`
	Children int `json:"children" validate:"omitempty,gte=0"`
}

func (p *GuestsPayload) ToModel() model.Occupancy {
	return model.Occupancy{
		Adults:   p.Adults,
		Children: p.Children,
	}
}

// AdvanceBookingRequest carries the payload for the draft's current
// step. Only the field matching that step is consulted; the summary
// step takes no payload.
type AdvanceBookingRequest struct {
	Dates  *DatesPayload  `json:"dates,omitempty"`
	Guests *GuestsPayload `json:"guests,omitempty"`
}

type SubmitBookingRequest struct {
	FirstName string `json:"first_name" validate:"omitempty,max=100"`
	LastName  string `json:"last_name" validate:"omitempty,max=100"`
	Email     string `json:"email" validate:"omitempty,max=100"`
	Phone     string `json:"phone" validate:"omitempty,max=30"`
}

func (r *SubmitBookingRequest) ToModel() model.GuestIdentity {
	return model.GuestIdentity{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Phone:     r.Phone,
	}
}

type DateRangeResponse struct {
	CheckIn  string `json:"check_in"`
	CheckOut string `json:"check_out"`
}

func (r *DateRangeResponse) FromModel(model model.DateRange) {
	r.CheckIn = timezone.Format(model.CheckIn, constant.CalendarFormat)
	r.CheckOut = timezone.Format(model.CheckOut, constant.CalendarFormat)
}

type OccupancyResponse struct {
	Adults   int `json:"adults"`
	Children int `json:"children"`
}

type IdentityResponse struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
}

type PricingResponse struct {
	Nights     int             `json:"nights"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	Taxes      decimal.Decimal `json:"taxes"`
	ServiceFee decimal.Decimal `json:"service_fee"`
	Total      decimal.Decimal `json:"total"`
}

func (r *PricingResponse) FromModel(model model.PricingBreakdown) {
	r.Nights = model.Nights
	r.Subtotal = model.Subtotal
	r.Taxes = model.Taxes
	r.ServiceFee = model.ServiceFee
	r.Total = model.Total
}

type DraftResponse struct {
	ID          string             `json:"id"`
	PropertyID  string             `json:"property_id"`
	RoomTypeID  string             `json:"room_type_id"`
	Step        string             `json:"step"`
	Status      string             `json:"status"`
	NightlyRate decimal.Decimal    `json:"nightly_rate"`
	Dates       *DateRangeResponse `json:"dates,omitempty"`
	Occupancy   *OccupancyResponse `json:"occupancy,omitempty"`
	Identity    *IdentityResponse  `json:"identity,omitempty"`
	Pricing     *PricingResponse   `json:"pricing,omitempty"`
	gDto.Metadata
}

func (r *DraftResponse) FromModel(draft model.Draft) {
	r.ID = draft.ID
	r.PropertyID = draft.PropertyID
	r.RoomTypeID = draft.RoomTypeID
	r.Step = string(draft.Step)
	r.Status = string(draft.Status)
	r.NightlyRate = draft.NightlyRate
	r.Metadata.FromModel(draft.Metadata)

	if draft.Dates != nil {
		r.Dates = &DateRangeResponse{}
		r.Dates.FromModel(*draft.Dates)
	}

	if draft.Occupancy != nil {
		r.Occupancy = &OccupancyResponse{
			Adults:   draft.Occupancy.Adults,
			Children: draft.Occupancy.Children,
		}
	}

	if draft.Identity != nil {
		r.Identity = &IdentityResponse{
			FirstName: draft.Identity.FirstName,
			LastName:  draft.Identity.LastName,
			Email:     draft.Identity.Email,
			Phone:     draft.Identity.Phone,
		}
	}

	if draft.Pricing != nil {
		r.Pricing = &PricingResponse{}
		r.Pricing.FromModel(*draft.Pricing)
	}
}

type StartBookingResponse struct {
	Draft            DraftResponse `json:"draft"`
	SessionToken     string        `json:"session_token,omitempty"`
	SessionExpiresIn int64         `json:"session_expires_in,omitempty"`
}

// StepResult is the outcome of an advance or retreat attempt. When
// Violations is non-empty the draft did not move.
type StepResult struct {
	Draft      DraftResponse       `json:"draft"`
	Violations validate.Violations `json:"violations,omitempty"`
}

type SubmitBookingResponse struct {
	ReservationID    string              `json:"reservation_id,omitempty"`
	CheckoutURL      string              `json:"checkout_url,omitempty"`
	PaymentSessionID string              `json:"payment_session_id,omitempty"`
	Violations       validate.Violations `json:"violations,omitempty"`
}

func (r *SubmitBookingResponse) FromGateway(res gateway.CreateReservationResponse) {
	r.ReservationID = res.ReservationID
	r.CheckoutURL = res.CheckoutURL
	r.PaymentSessionID = res.PaymentSessionID
}

type PendingReservationResponse struct {
	ReservationID    string `json:"reservation_id"`
	PaymentSessionID string `json:"payment_session_id"`
	CreatedAt        int64  `json:"created_at"`
}

func (r *PendingReservationResponse) FromModel(marker model.PendingReservation) {
	r.ReservationID = marker.ReservationID
	r.PaymentSessionID = marker.PaymentSessionID
	r.CreatedAt = marker.CreatedAt
}
