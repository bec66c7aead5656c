package model

import (
	"math"
	"stay/shared/model"
	"time"

	"github.com/shopspring/decimal"
)

const (
	EntityName = "booking_draft"
)

// Step is one state of the booking wizard. The path is linear:
// dates -> guests -> summary -> identity. No step can be skipped.
type Step string

const (
	StepDates    Step = "dates"
	StepGuests   Step = "guests"
	StepSummary  Step = "summary"
	StepIdentity Step = "identity"
)

var stepOrder = []Step{StepDates, StepGuests, StepSummary, StepIdentity}

// Next returns the following step, or false from the last step.
func (s Step) Next() (Step, bool) {
	for i, step := range stepOrder {
		if step == s && i < len(stepOrder)-1 {
			return stepOrder[i+1], true
		}
	}

	return s, false
}

// Prev returns the preceding step, or false from the first step.
func (s Step) Prev() (Step, bool) {
	for i, step := range stepOrder {
		if step == s && i > 0 {
			return stepOrder[i-1], true
		}
	}

	return s, false
}

// Status tracks the submission lifecycle of a draft. A draft in flight
// rejects further submit attempts; a submitted draft is immutable.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusSubmitting Status = "submitting"
	StatusSubmitted  Status = "submitted"
)

type DateRange struct {
	CheckIn  time.Time `json:"check_in"`
	CheckOut time.Time `json:"check_out"`
}

// Nights is the whole-day difference between check-out and check-in.
// Rounding absorbs DST-shortened days in the application timezone.
func (r DateRange) Nights() int {
	return int(math.Round(r.CheckOut.Sub(r.CheckIn).Hours() / 24))
}

type Occupancy struct {
	Adults   int `json:"adults"`
	Children int `json:"children"`
}

func (o Occupancy) Total() int {
	return o.Adults + o.Children
}

// OccupancyLimits are the room type's ceilings, captured into the draft
// when the workflow starts. They are owned by the room-type catalog.
type OccupancyLimits struct {
	MaxAdults    int `json:"max_adults"`
	MaxChildren  int `json:"max_children"`
	MaxOccupancy int `json:"max_occupancy"`
}

type GuestIdentity struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// PricingBreakdown is derived state. It is recomputed from the nightly
// rate and the date range whenever either changes, never edited.
type PricingBreakdown struct {
	Nights     int             `json:"nights"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	Taxes      decimal.Decimal `json:"taxes"`
	ServiceFee decimal.Decimal `json:"service_fee"`
	Total      decimal.Decimal `json:"total"`
}

// Draft accumulates the booking wizard's inputs. It lives in the
// session-scoped draft store until submitted or expired; nothing is
// persisted to the reservation backend before submission.
type Draft struct {
	ID             string          `json:"id"`
	SessionID      string          `json:"session_id"`
	PropertyID     string          `json:"property_id"`
	RoomTypeID     string          `json:"room_type_id"`
	IdempotencyKey string          `json:"idempotency_key"`
	Step           Step            `json:"step"`
	Status         Status          `json:"status"`
	NightlyRate    decimal.Decimal `json:"nightly_rate"`
	Limits         OccupancyLimits `json:"limits"`

	Dates     *DateRange        `json:"dates,omitempty"`
	Occupancy *Occupancy        `json:"occupancy,omitempty"`
	Identity  *GuestIdentity    `json:"identity,omitempty"`
	Pricing   *PricingBreakdown `json:"pricing,omitempty"`

	model.Metadata
}

// PendingReservation is the local breadcrumb written after a successful
// submission, linking the reservation to its payment session so an
// interrupted checkout redirect can be reconciled.
type PendingReservation struct {
	ReservationID    string `json:"reservation_id"`
	PaymentSessionID string `json:"payment_session_id"`
	CreatedAt        int64  `json:"created_at"` // epoch milliseconds
}
