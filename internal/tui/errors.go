package tui

import (
	"errors"

	"github.com/ankurdhir/BharatAutoBazaar-sub000/domain"
)

// userFacing turns a flow error into the line shown under the active input
func userFacing(err error) string {
	switch {
	case errors.Is(err, domain.ErrIdentifierEmpty):
		return "Enter your phone number or email"
	case errors.Is(err, domain.ErrIdentifierInvalid):
		return "That doesn't look like a valid phone number or email"
	case errors.Is(err, domain.ErrCodeInvalid):
		return "Check the number of digits in the OTP"
	case errors.Is(err, domain.ErrChallengeMissing):
		return "Request an OTP first"
	case errors.Is(err, domain.ErrStepBlocked):
		return "Please fix the highlighted fields"
	case errors.Is(err, domain.ErrSubmitInFlight):
		return "Already submitting, hold on"
	}

	var apiErr *domain.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return "Something went wrong, please try again"
}
