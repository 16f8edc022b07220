// Package scoring implements the STR market investment scoring model: a
// cash-on-cash financial model, five weighted factor scorers, and the
// grade/verdict derivation. Every function is pure and safe for concurrent
// use; callers own caching and staleness policy.
package scoring

import "math"

// Fixed parameters of the financial model. These define the published scoring
// semantics and must not be tuned per deployment.
const (
	operatingExpenseRatio = 0.35 // cleaning, utilities, PM, insurance, repairs
	loanToValue           = 0.80
	annualInterestRate    = 0.07 // nominal, compounded monthly
	mortgageTermYears     = 30
	downPaymentRatio      = 0.20
	closingCostRatio      = 0.03
)

// CashOnCash returns the cash-on-cash return percentage for a market given
// its monthly STR revenue and median home price, rounded to one decimal.
//
// Assumes a 20% down payment, 3% closing costs, an 80% LTV mortgage at 7%
// over 30 years, and operating expenses at 35% of gross revenue. Returns 0
// when either input is zero or negative so downstream scorers never divide
// by zero.
func CashOnCash(monthlyRevenue, homePrice float64) float64 {
	if homePrice <= 0 || monthlyRevenue <= 0 {
		return 0
	}

	annualGross := monthlyRevenue * 12
	annualNOI := annualGross - annualGross*operatingExpenseRatio

	loanAmount := homePrice * loanToValue
	monthlyRate := annualInterestRate / 12
	numPayments := float64(mortgageTermYears * 12)
	growth := math.Pow(1+monthlyRate, numPayments)
	monthlyMortgage := loanAmount * (monthlyRate * growth) / (growth - 1)
	annualMortgage := monthlyMortgage * 12

	annualCashFlow := annualNOI - annualMortgage
	totalCashInvested := homePrice * (downPaymentRatio + closingCostRatio)

	coc := annualCashFlow / totalCashInvested * 100
	return math.Round(coc*10) / 10
}
