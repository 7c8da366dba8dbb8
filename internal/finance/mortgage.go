package finance

import "math"

// Underwriting defaults when a listing carries no figure of its own.
const (
	DefaultTaxRate      = 0.0125
	annualInsuranceRate = 0.0035
	annualPMIRate       = 0.005
	defaultTermYears    = 30
)

// PaymentInput describes one financing scenario.
type PaymentInput struct {
	Price          float64
	DownPaymentPct float64 // fraction, e.g. 0.20
	InterestRate   float64 // annual percent, e.g. 7.0
	TermYears      int
	TaxRate        float64 // annual fraction of price
	HOAFee         float64 // monthly
}

// MonthlyPayment estimates the all-in monthly cost: amortized loan payment
// plus property tax, insurance, HOA, and PMI when the down payment is under
// 20%. Rounded to cents.
func MonthlyPayment(in PaymentInput) float64 {
	if in.TermYears <= 0 {
		in.TermYears = defaultTermYears
	}
	if in.TaxRate <= 0 {
		in.TaxRate = DefaultTaxRate
	}

	loan := in.Price * (1 - in.DownPaymentPct)
	monthlyRate := in.InterestRate / 100 / 12
	n := float64(in.TermYears * 12)

	var base float64
	if monthlyRate == 0 {
		base = loan / n
	} else {
		growth := math.Pow(1+monthlyRate, n)
		base = loan * (monthlyRate * growth) / (growth - 1)
	}

	tax := in.Price * in.TaxRate / 12
	insurance := MonthlyInsurance(in.Price)
	pmi := 0.0
	if in.DownPaymentPct < 0.20 {
		pmi = in.Price * annualPMIRate / 12
	}

	return round2(base + tax + in.HOAFee + insurance + pmi)
}

// MonthlyInsurance is the flat insurance estimate used throughout the screen.
func MonthlyInsurance(price float64) float64 {
	return round2(price * annualInsuranceRate / 12)
}

// DSCR is rent over total monthly payment, rounded to 2 decimals. Zero when
// the payment is not positive.
func DSCR(rent, monthlyPayment float64) float64 {
	if monthlyPayment <= 0 {
		return 0
	}
	return round2(rent / monthlyPayment)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
