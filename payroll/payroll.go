// Package payroll holds the pay arithmetic for work reports: duration
// derivation, amount calculation, and the submission-time validation gate.
package payroll

import (
	"time"

	"github.com/JoelBarbosa07/nomina-variable/httperr"
	"github.com/JoelBarbosa07/nomina-variable/models"
)

// Hours returns the fractional hours elapsed between start and end. It does
// not clamp; callers gate invalid ranges through ValidateSubmission.
func Hours(start, end time.Time) float64 {
	return end.Sub(start).Hours()
}

// Amount computes the pay for a report. Hourly pay is rate times hours; fixed
// pay ignores hours entirely. A nil rate yields 0 rather than an error, so
// validated input is a precondition for meaningful output.
func Amount(paymentType models.PaymentType, hours float64, hourlyRate, fixedRate *float64) float64 {
	if paymentType == models.PaymentFixed {
		if fixedRate == nil {
			return 0
		}
		return *fixedRate
	}
	if hourlyRate == nil {
		return 0
	}
	return *hourlyRate * hours
}

// ValidateSubmission enforces the submission invariants: a positive duration
// and a positive rate matching the chosen payment type.
func ValidateSubmission(paymentType models.PaymentType, start, end time.Time, hourlyRate, fixedRate *float64) error {
	if start.IsZero() || end.IsZero() {
		return httperr.Validation("startTime y endTime son requeridos")
	}
	if !end.After(start) {
		return httperr.Validation("endTime debe ser posterior a startTime")
	}

	switch paymentType {
	case models.PaymentHourly:
		if hourlyRate == nil || *hourlyRate <= 0 {
			return httperr.Validation("hourlyRate es requerido para pago por hora")
		}
	case models.PaymentFixed:
		if fixedRate == nil || *fixedRate <= 0 {
			return httperr.Validation("fixedRate es requerido para pago fijo")
		}
	default:
		return httperr.Validation("paymentType debe ser hourly o fixed")
	}
	return nil
}
