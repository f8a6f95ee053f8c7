package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// AllocationUpdate describes the new state of one installment after a
// lump sum has been allocated across a set of installments.
type AllocationUpdate struct {
	InstallmentID   uuid.UUID
	PaidAmount      decimal.Decimal
	BalanceAmount   decimal.Decimal
	Status          InstallmentStatus
	PaidDate        time.Time
	AllocatedAmount decimal.Decimal // The part of the payment allocated to this installment
}

// AllocatePayment distributes a payment across the given installments,
// oldest due date first.
//
// Installments that are already paid are skipped. Each installment is
// satisfied in full before the next one is touched; the last
// installment reached may end up partially paid. Unlike the
// single-installment payment path, a payment larger than the total
// outstanding balance is not an error here: allocation is capped and
// the unallocated remainder is returned for the caller to decide what
// to do with.
//
// The input slice is not modified. Callers scope the allocation by
// choosing which installments to pass in, typically all installments
// of one share.
func AllocatePayment(amount decimal.Decimal, date time.Time, installments []Installment) ([]AllocationUpdate, decimal.Decimal) {
	open := make([]Installment, 0, len(installments))
	for _, installment := range installments {
		if installment.Status != InstallmentStatusPaid {
			open = append(open, installment)
		}
	}

	// Oldest obligation first. Installment numbers break ties so that
	// the order is deterministic for equal due dates.
	slices.SortStableFunc(open, func(a, b Installment) int {
		if c := a.DueDate.Compare(b.DueDate); c != 0 {
			return c
		}
		return int(a.InstallmentNumber) - int(b.InstallmentNumber)
	})

	if date.IsZero() {
		date = time.Now().In(time.UTC)
	} else {
		date = date.In(time.UTC)
	}

	remaining := amount
	updates := make([]AllocationUpdate, 0, len(open))

	for _, installment := range open {
		if !remaining.IsPositive() {
			break
		}

		owed := installment.BalanceAmount

		if remaining.GreaterThanOrEqual(owed) {
			updates = append(updates, AllocationUpdate{
				InstallmentID:   installment.ID,
				PaidAmount:      installment.PaidAmount.Add(owed),
				BalanceAmount:   decimal.Zero,
				Status:          InstallmentStatusPaid,
				PaidDate:        date,
				AllocatedAmount: owed,
			})
			remaining = remaining.Sub(owed)
			continue
		}

		updates = append(updates, AllocationUpdate{
			InstallmentID:   installment.ID,
			PaidAmount:      installment.PaidAmount.Add(remaining),
			BalanceAmount:   owed.Sub(remaining),
			Status:          InstallmentStatusPartial,
			PaidDate:        date,
			AllocatedAmount: remaining,
		})
		remaining = decimal.Zero
	}

	return updates, remaining
}
