package models

import (
	"github.com/shopspring/decimal"
)

// Statistics are the aggregates over a set of installments.
//
// They are computed on demand from the current installments and never
// persisted, so they cannot go stale.
type Statistics struct {
	TotalExpected        decimal.Decimal `json:"totalExpected" example:"6000"`      // Sum of all installment amounts
	TotalPaid            decimal.Decimal `json:"totalPaid" example:"1500"`          // Sum of all paid amounts
	Outstanding          decimal.Decimal `json:"outstanding" example:"4500"`        // Sum of all balances
	PendingCount         int             `json:"pendingCount" example:"9"`          // Number of untouched installments
	PartialCount         int             `json:"partialCount" example:"1"`          // Number of partially paid installments
	PaidCount            int             `json:"paidCount" example:"2"`             // Number of fully paid installments
	TotalInstallments    int             `json:"totalInstallments" example:"12"`    // Number of installments in the set
	CompletionPercentage decimal.Decimal `json:"completionPercentage" example:"25"` // TotalPaid / TotalExpected * 100, 0 for an empty set
}

// CalculateStatistics reduces a set of installments to its aggregates.
func CalculateStatistics(installments []Installment) Statistics {
	stats := Statistics{
		TotalExpected:        decimal.Zero,
		TotalPaid:            decimal.Zero,
		Outstanding:          decimal.Zero,
		CompletionPercentage: decimal.Zero,
		TotalInstallments:    len(installments),
	}

	for _, installment := range installments {
		stats.TotalExpected = stats.TotalExpected.Add(installment.InstallmentAmount)
		stats.TotalPaid = stats.TotalPaid.Add(installment.PaidAmount)
		stats.Outstanding = stats.Outstanding.Add(installment.BalanceAmount)

		switch installment.Status {
		case InstallmentStatusPending:
			stats.PendingCount++
		case InstallmentStatusPartial:
			stats.PartialCount++
		case InstallmentStatusPaid:
			stats.PaidCount++
		}
	}

	if stats.TotalExpected.IsPositive() {
		stats.CompletionPercentage = stats.TotalPaid.
			Div(stats.TotalExpected).
			Mul(decimal.NewFromInt(100))
	}

	return stats
}
