package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// InstallmentsPerYear returns how many installments a cadence produces
// per year.
func InstallmentsPerYear(installmentType InstallmentType, customInstallments uint) (uint, error) {
	switch installmentType {
	case InstallmentTypeMonthly:
		return 12, nil
	case InstallmentTypeQuarterly:
		return 4, nil
	case InstallmentTypeHalfYearly:
		return 2, nil
	case InstallmentTypeAnnual:
		return 1, nil
	case InstallmentTypeCustom:
		if customInstallments == 0 {
			return 0, fmt.Errorf("%w: the custom installment type needs a positive number of installments per year", ErrInvalidConfiguration)
		}
		return customInstallments, nil
	}

	return 0, fmt.Errorf("%w: unknown installment type %q", ErrInvalidConfiguration, installmentType)
}

// scheduleStepMonths returns the number of months between two due dates.
//
// Custom cadences advance by one month per installment no matter how
// many installments per year are configured. This is ambiguous (a
// custom cadence of 6 gives 6 monthly-spaced installments, not
// installments two months apart), but it is what the schedules in the
// field look like, so it stays.
func scheduleStepMonths(installmentType InstallmentType) int {
	switch installmentType {
	case InstallmentTypeQuarterly:
		return 3
	case InstallmentTypeHalfYearly:
		return 6
	case InstallmentTypeAnnual:
		return 12
	default:
		return 1
	}
}

// GenerateSchedule generates the full installment schedule for a share.
//
// The schedule is ordered by installment number, which is also
// ascending due date order. Each installment amount is rounded to two
// decimal places independently (round half away from zero); the
// rounding remainder is deliberately not redistributed, so the sum of
// the schedule may differ from the share total by up to one cent per
// installment.
//
// The generator performs no I/O. Persisting the schedule is the
// caller's responsibility, which also makes it usable for previews: a
// share that has not been saved yet generates the same schedule as one
// that has.
func GenerateSchedule(share Share) ([]Installment, error) {
	perYear, err := InstallmentsPerYear(share.InstallmentType, share.CustomInstallments)
	if err != nil {
		return nil, err
	}

	totalInstallments := share.Duration * perYear
	if totalInstallments == 0 {
		return nil, fmt.Errorf("%w: the configuration results in zero installments", ErrInvalidConfiguration)
	}

	totalAmount := share.AnnualAmount.Mul(decimal.NewFromInt(int64(share.Duration)))
	installmentAmount := totalAmount.Div(decimal.NewFromInt(int64(totalInstallments))).Round(2)

	start := share.StartDate.In(time.UTC)
	stepMonths := scheduleStepMonths(share.InstallmentType)

	schedule := make([]Installment, 0, totalInstallments)
	for i := uint(0); i < totalInstallments; i++ {
		schedule = append(schedule, Installment{
			ShareID:           share.ID,
			InstallmentNumber: i + 1,
			DueDate:           start.AddDate(0, int(i)*stepMonths, 0),
			InstallmentAmount: installmentAmount,
			PaidAmount:        decimal.Zero,
			BalanceAmount:     installmentAmount,
			Status:            InstallmentStatusPending,
			PaidDate:          nil,
		})
	}

	return schedule, nil
}
