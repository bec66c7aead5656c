package dto_test

import (
	"testing"

	"stay/internal/domains/booking/model"
	"stay/internal/domains/booking/model/dto"
	"stay/shared/failure"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDatesPayload_ToModel(t *testing.T) {
	t.Run("parses calendar dates", func(t *testing.T) {
		payload := dto.DatesPayload{CheckIn: "2024-07-01", CheckOut: "2024-07-04"}

		dates, err := payload.ToModel()

		assert.NoError(t, err)
		assert.Equal(t, 3, dates.Nights())
	})

	t.Run("empty strings stay zero for the gate to report", func(t *testing.T) {
		payload := dto.DatesPayload{}

		dates, err := payload.ToModel()

		assert.NoError(t, err)
		assert.True(t, dates.CheckIn.IsZero())
		assert.True(t, dates.CheckOut.IsZero())
	})

	t.Run("malformed dates are a bad request", func(t *testing.T) {
		payload := dto.DatesPayload{CheckIn: "01/07/2024", CheckOut: "2024-07-04"}

		_, err := payload.ToModel()

		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})
}

func TestSubmitBookingRequest_ToModel(t *testing.T) {
	req := dto.SubmitBookingRequest{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@example.com",
		Phone:     "+15550100",
	}

	identity := req.ToModel()

	assert.Equal(t, "Jane", identity.FirstName)
	assert.Equal(t, "Doe", identity.LastName)
	assert.Equal(t, "jane@example.com", identity.Email)
	assert.Equal(t, "+15550100", identity.Phone)
}

func TestDraftResponse_FromModel(t *testing.T) {
	breakdown := model.PricingBreakdown{
		Nights:     3,
		Subtotal:   decimal.RequireFromString("15000"),
		Taxes:      decimal.RequireFromString("1800"),
		ServiceFee: decimal.RequireFromString("750"),
		Total:      decimal.RequireFromString("17550"),
	}

	draft := model.Draft{
		ID:          "draft-1",
		SessionID:   "session-1",
		PropertyID:  "property-1",
		RoomTypeID:  "roomtype-1",
		Step:        model.StepSummary,
		Status:      model.StatusInProgress,
		NightlyRate: decimal.RequireFromString("5000"),
		Occupancy:   &model.Occupancy{Adults: 2, Children: 1},
		Pricing:     &breakdown,
	}

	var response dto.DraftResponse
	response.FromModel(draft)

	assert.Equal(t, "draft-1", response.ID)
	assert.Equal(t, "summary", response.Step)
	assert.Equal(t, "in_progress", response.Status)
	assert.Nil(t, response.Dates)
	assert.Nil(t, response.Identity)

	if assert.NotNil(t, response.Occupancy) {
		assert.Equal(t, 2, response.Occupancy.Adults)
	}

	if assert.NotNil(t, response.Pricing) {
		assert.True(t, response.Pricing.Total.Equal(decimal.RequireFromString("17550")))
	}
}
