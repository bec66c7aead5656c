// Package validate is the gate between wizard steps. Validators report
// violations as data instead of returning errors; an empty set means
// the step may advance.
package validate

import (
	"fmt"
	"maps"
	"stay/internal/domains/booking/model"
	"stay/shared/validator"
)

// Kind is a machine-readable violation code, stable across message
// wording changes.
type Kind string

const (
	KindMissingDate       Kind = "missing_date"
	KindInvalidRange      Kind = "invalid_range"
	KindAdultsRequired    Kind = "adults_required"
	KindTooManyAdults     Kind = "too_many_adults"
	KindTooManyChildren   Kind = "too_many_children"
	KindOccupancyExceeded Kind = "occupancy_exceeded"
	KindNameRequired      Kind = "name_required"
	KindNameTooLong       Kind = "name_too_long"
	KindInvalidEmail      Kind = "invalid_email"
	KindIncompleteDraft   Kind = "incomplete_draft"
	KindInvalidAmount     Kind = "invalid_amount"
)

const maxNameLength = 50

type Violation struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

// Violations maps a field name to its violation. At most one violation
// is reported per field; the most specific check wins.
type Violations map[string]Violation

func (v Violations) Empty() bool {
	return len(v) == 0
}

// Dates checks the first wizard step: both dates present and check-out
// strictly after check-in. Equal dates are a zero-night stay and are
// rejected.
func Dates(r *model.DateRange) Violations {
	violations := Violations{}

	if r == nil || r.CheckIn.IsZero() {
		violations["check_in"] = Violation{Kind: KindMissingDate, Message: "check-in date is required"}
	}

	if r == nil || r.CheckOut.IsZero() {
		violations["check_out"] = Violation{Kind: KindMissingDate, Message: "check-out date is required"}
	}

	if !violations.Empty() {
		return violations
	}

	if !r.CheckOut.After(r.CheckIn) {
		violations["check_out"] = Violation{Kind: KindInvalidRange, Message: "check-out date must be after the check-in date"}
	}

	return violations
}

// Guests checks the occupancy step against the room type's ceilings.
// The per-category ceilings are checked first; the combined ceiling is
// only consulted once both categories pass individually, so the guest
// is told which count to lower before being told the room is full.
func Guests(o *model.Occupancy, limits model.OccupancyLimits) Violations {
	violations := Violations{}

	if o == nil || o.Adults < 1 {
		violations["adults"] = Violation{Kind: KindAdultsRequired, Message: "at least one adult is required"}

		if o == nil {
			return violations
		}
	} else if o.Adults > limits.MaxAdults {
		violations["adults"] = Violation{
			Kind:    KindTooManyAdults,
			Message: fmt.Sprintf("this room accommodates at most %d adults", limits.MaxAdults),
		}
	}

	if o.Children > limits.MaxChildren {
		violations["children"] = Violation{
			Kind:    KindTooManyChildren,
			Message: fmt.Sprintf("this room accommodates at most %d children", limits.MaxChildren),
		}
	}

	if violations.Empty() && o.Total() > limits.MaxOccupancy {
		violations["occupancy"] = Violation{
			Kind:    KindOccupancyExceeded,
			Message: fmt.Sprintf("this room accommodates at most %d guests in total", limits.MaxOccupancy),
		}
	}

	return violations
}

// Identity checks the final step: names present and within length, email
// well-formed. The phone number is optional and unchecked.
func Identity(g *model.GuestIdentity) Violations {
	violations := Violations{}

	firstName, lastName, email := "", "", ""
	if g != nil {
		firstName, lastName, email = g.FirstName, g.LastName, g.Email
	}

	violations.checkName("first_name", "first name", firstName)
	violations.checkName("last_name", "last name", lastName)

	if email == "" || !validator.Var(email, "email") {
		violations["email"] = Violation{Kind: KindInvalidEmail, Message: "a valid email address is required"}
	}

	return violations
}

func (v Violations) checkName(field, label, value string) {
	switch {
	case value == "":
		v[field] = Violation{Kind: KindNameRequired, Message: label + " is required"}
	case len(value) > maxNameLength:
		v[field] = Violation{
			Kind:    KindNameTooLong,
			Message: fmt.Sprintf("%s must be at most %d characters", label, maxNameLength),
		}
	}
}

// Draft revalidates every step of the draft at once. It is the
// last-line check before submission, guarding against drafts whose
// stored inputs drifted out of validity.
func Draft(d model.Draft) Violations {
	violations := Violations{}

	maps.Copy(violations, Dates(d.Dates))
	maps.Copy(violations, Guests(d.Occupancy, d.Limits))
	maps.Copy(violations, Identity(d.Identity))

	switch {
	case d.Pricing == nil:
		violations["pricing"] = Violation{Kind: KindIncompleteDraft, Message: "pricing has not been computed"}
	case d.Pricing.Nights < 1:
		violations["pricing"] = Violation{Kind: KindInvalidAmount, Message: "a stay must cover at least one night"}
	case d.Pricing.Subtotal.Sign() <= 0 || d.Pricing.Total.Sign() <= 0:
		violations["pricing"] = Violation{Kind: KindInvalidAmount, Message: "the computed amounts must be positive"}
	}

	return violations
}
