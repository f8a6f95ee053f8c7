package models_test

import (
	"time"

	"github.com/google/uuid"
	"github.com/shareledger/backend/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testInstallment(number uint, dueDate time.Time, amount, paid float64) models.Installment {
	installment := models.Installment{
		InstallmentNumber: number,
		DueDate:           dueDate,
		InstallmentAmount: decimal.NewFromFloat(amount),
		PaidAmount:        decimal.NewFromFloat(paid),
	}
	installment.ID = uuid.New()
	installment.BalanceAmount = installment.InstallmentAmount.Sub(installment.PaidAmount)

	switch {
	case installment.PaidAmount.IsZero():
		installment.Status = models.InstallmentStatusPending
	case installment.PaidAmount.GreaterThanOrEqual(installment.InstallmentAmount):
		installment.Status = models.InstallmentStatusPaid
	default:
		installment.Status = models.InstallmentStatusPartial
	}

	return installment
}

func (suite *TestSuiteStandard) TestAllocatePayment() {
	date := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	a := testInstallment(1, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 300, 0)
	b := testInstallment(2, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), 500, 0)
	c := testInstallment(3, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), 200, 0)

	// Shuffled input, oldest due date must still be paid first
	updates, remainder := models.AllocatePayment(decimal.NewFromFloat(700), date, []models.Installment{c, a, b})

	require.Len(suite.T(), updates, 2)
	assert.True(suite.T(), remainder.IsZero())

	assert.Equal(suite.T(), a.ID, updates[0].InstallmentID)
	assert.True(suite.T(), updates[0].AllocatedAmount.Equal(decimal.NewFromFloat(300)))
	assert.Equal(suite.T(), models.InstallmentStatusPaid, updates[0].Status)
	assert.True(suite.T(), updates[0].BalanceAmount.IsZero())

	assert.Equal(suite.T(), b.ID, updates[1].InstallmentID)
	assert.True(suite.T(), updates[1].AllocatedAmount.Equal(decimal.NewFromFloat(400)))
	assert.Equal(suite.T(), models.InstallmentStatusPartial, updates[1].Status)
	assert.True(suite.T(), updates[1].BalanceAmount.Equal(decimal.NewFromFloat(100)))
	assert.True(suite.T(), updates[1].PaidAmount.Equal(decimal.NewFromFloat(400)))
}

func (suite *TestSuiteStandard) TestAllocatePaymentSkipsPaid() {
	date := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	paid := testInstallment(1, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 100, 100)
	open := testInstallment(2, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), 100, 0)

	updates, remainder := models.AllocatePayment(decimal.NewFromFloat(50), date, []models.Installment{paid, open})

	require.Len(suite.T(), updates, 1)
	assert.True(suite.T(), remainder.IsZero())
	assert.Equal(suite.T(), open.ID, updates[0].InstallmentID)
}

func (suite *TestSuiteStandard) TestAllocatePaymentPartiallyPaid() {
	date := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	partial := testInstallment(1, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 100, 60)

	updates, remainder := models.AllocatePayment(decimal.NewFromFloat(100), date, []models.Installment{partial})

	require.Len(suite.T(), updates, 1)
	assert.True(suite.T(), remainder.Equal(decimal.NewFromFloat(60)), "remainder is %s", remainder)
	assert.True(suite.T(), updates[0].PaidAmount.Equal(decimal.NewFromFloat(100)))
	assert.True(suite.T(), updates[0].AllocatedAmount.Equal(decimal.NewFromFloat(40)))
	assert.Equal(suite.T(), models.InstallmentStatusPaid, updates[0].Status)
}

func (suite *TestSuiteStandard) TestAllocatePaymentRemainder() {
	date := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	a := testInstallment(1, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 100, 0)
	b := testInstallment(2, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), 100, 0)

	// More money than open balance: everything is settled, the rest
	// is returned
	updates, remainder := models.AllocatePayment(decimal.NewFromFloat(250), date, []models.Installment{a, b})

	require.Len(suite.T(), updates, 2)
	assert.True(suite.T(), remainder.Equal(decimal.NewFromFloat(50)), "remainder is %s", remainder)

	for _, update := range updates {
		assert.Equal(suite.T(), models.InstallmentStatusPaid, update.Status)
		assert.True(suite.T(), update.PaidDate.Equal(date))
	}
}

func (suite *TestSuiteStandard) TestAllocatePaymentDueDateTie() {
	date := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	due := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	second := testInstallment(2, due, 100, 0)
	first := testInstallment(1, due, 100, 0)

	updates, _ := models.AllocatePayment(decimal.NewFromFloat(100), date, []models.Installment{second, first})

	require.Len(suite.T(), updates, 1)
	assert.Equal(suite.T(), first.ID, updates[0].InstallmentID, "equal due dates must be broken by installment number")
}

func (suite *TestSuiteStandard) TestAllocatePaymentNoOpenInstallments() {
	updates, remainder := models.AllocatePayment(decimal.NewFromFloat(100), time.Time{}, []models.Installment{})

	assert.Len(suite.T(), updates, 0)
	assert.True(suite.T(), remainder.Equal(decimal.NewFromFloat(100)))
}
