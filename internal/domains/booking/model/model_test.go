package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"stay/internal/domains/booking/model"
)

func TestStepOrder(t *testing.T) {
	tests := []struct {
		step     model.Step
		wantNext model.Step
		hasNext  bool
		wantPrev model.Step
		hasPrev  bool
	}{
		{step: model.StepDates, wantNext: model.StepGuests, hasNext: true, wantPrev: model.StepDates, hasPrev: false},
		{step: model.StepGuests, wantNext: model.StepSummary, hasNext: true, wantPrev: model.StepDates, hasPrev: true},
		{step: model.StepSummary, wantNext: model.StepIdentity, hasNext: true, wantPrev: model.StepGuests, hasPrev: true},
		{step: model.StepIdentity, wantNext: model.StepIdentity, hasNext: false, wantPrev: model.StepSummary, hasPrev: true},
	}

	for _, tt := range tests {
		t.Run(string(tt.step), func(t *testing.T) {
			next, ok := tt.step.Next()
			assert.Equal(t, tt.hasNext, ok)
			assert.Equal(t, tt.wantNext, next)

			prev, ok := tt.step.Prev()
			assert.Equal(t, tt.hasPrev, ok)
			assert.Equal(t, tt.wantPrev, prev)
		})
	}
}

func TestDateRangeNights(t *testing.T) {
	day := func(value string) time.Time {
		parsed, err := time.Parse("2006-01-02", value)
		assert.NoError(t, err)

		return parsed
	}

	tests := []struct {
		name  string
		dates model.DateRange
		want  int
	}{
		{name: "three nights", dates: model.DateRange{CheckIn: day("2024-07-01"), CheckOut: day("2024-07-04")}, want: 3},
		{name: "one night", dates: model.DateRange{CheckIn: day("2024-07-01"), CheckOut: day("2024-07-02")}, want: 1},
		{name: "same day", dates: model.DateRange{CheckIn: day("2024-07-01"), CheckOut: day("2024-07-01")}, want: 0},
		{name: "across a month boundary", dates: model.DateRange{CheckIn: day("2024-01-30"), CheckOut: day("2024-02-02")}, want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.dates.Nights())
		})
	}
}

func TestOccupancyTotal(t *testing.T) {
	occupancy := model.Occupancy{Adults: 2, Children: 3}
	assert.Equal(t, 5, occupancy.Total())
}
