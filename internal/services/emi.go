package services

import (
	"fmt"
	"math"
)

// EMIQuote is one amortization result
type EMIQuote struct {
	Principal     int
	MonthlyEMI    int
	TotalPayable  int
	TotalInterest int
	Months        int
}

// CalculateEMI computes the equated monthly installment for a car loan.
// annualRatePct is the nominal yearly interest rate in percent. A zero rate
// degrades to straight division instead of the amortization formula.
func CalculateEMI(price, downPayment int, annualRatePct float64, months int) (*EMIQuote, error) {
	if price <= 0 {
		return nil, fmt.Errorf("price must be positive")
	}
	if downPayment < 0 || downPayment >= price {
		return nil, fmt.Errorf("down payment must be between 0 and the price")
	}
	if annualRatePct < 0 {
		return nil, fmt.Errorf("interest rate must not be negative")
	}
	if months <= 0 {
		return nil, fmt.Errorf("tenure must be at least one month")
	}

	principal := price - downPayment

	var monthly float64
	if annualRatePct == 0 {
		monthly = float64(principal) / float64(months)
	} else {
		r := annualRatePct / 12 / 100
		factor := math.Pow(1+r, float64(months))
		monthly = float64(principal) * r * factor / (factor - 1)
	}

	emi := int(math.Round(monthly))
	total := emi * months
	return &EMIQuote{
		Principal:     principal,
		MonthlyEMI:    emi,
		TotalPayable:  total,
		TotalInterest: total - principal,
		Months:        months,
	}, nil
}
