package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InstallmentStatus is derived from the paid amount of an installment.
// It is never set independently.
//
// swagger:enum InstallmentStatus
type InstallmentStatus string

const (
	InstallmentStatusPending InstallmentStatus = "pending"
	InstallmentStatusPartial InstallmentStatus = "partial"
	InstallmentStatusPaid    InstallmentStatus = "paid"
)

// Installment is one scheduled payment obligation within a share's
// schedule.
//
// InstallmentAmount is fixed at generation time. PaidAmount only ever
// grows, and BalanceAmount and Status are derived from it on every
// save.
type Installment struct {
	DefaultModel
	Share             Share     `json:"-"`
	ShareID           uuid.UUID `gorm:"uniqueIndex:installment_share_number"`
	InstallmentNumber uint      `gorm:"uniqueIndex:installment_share_number"` // 1-based position within the schedule
	DueDate           time.Time
	InstallmentAmount decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	PaidAmount        decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	BalanceAmount     decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Status            InstallmentStatus
	PaidDate          *time.Time // Time of the most recent payment, nil until the first one
}

var ErrInstallmentNumberNotUnique = errors.New("an installment with this number already exists for the share")

// statusForPayment derives the status from the paid amount and the
// installment amount.
func statusForPayment(paid, amount decimal.Decimal) InstallmentStatus {
	switch {
	case paid.IsZero():
		return InstallmentStatusPending
	case paid.GreaterThanOrEqual(amount):
		return InstallmentStatusPaid
	default:
		return InstallmentStatusPartial
	}
}

// BeforeSave re-derives the balance and status so that
// PaidAmount + BalanceAmount == InstallmentAmount always holds.
func (i *Installment) BeforeSave(_ *gorm.DB) error {
	i.BalanceAmount = i.InstallmentAmount.Sub(i.PaidAmount)
	i.Status = statusForPayment(i.PaidAmount, i.InstallmentAmount)

	if i.DueDate.IsZero() {
		i.DueDate = time.Now().In(time.UTC)
	} else {
		i.DueDate = i.DueDate.In(time.UTC)
	}

	return nil
}

// BeforeCreate uses the receiver instead of tx.Statement.Dest since
// installments are created in batches, where Dest is the whole slice.
func (i *Installment) BeforeCreate(tx *gorm.DB) error {
	_ = i.DefaultModel.BeforeCreate(tx)

	return i.checkIntegrity(tx, *i)
}

// checkIntegrity verifies references to other resources
func (i *Installment) checkIntegrity(tx *gorm.DB, toSave Installment) error {
	return tx.First(&Share{}, toSave.ShareID).Error
}

// AfterFind updates the timestamps to use UTC as timezone.
func (i *Installment) AfterFind(_ *gorm.DB) error {
	i.DueDate = i.DueDate.In(time.UTC)

	if i.PaidDate != nil {
		paidDate := i.PaidDate.In(time.UTC)
		i.PaidDate = &paidDate
	}

	return nil
}

// ApplyPayment applies a payment to the installment.
//
// The payment must be positive and must not exceed the current balance,
// overpaying a single installment is always rejected. On success the
// paid amount, balance, status and paid date are updated in place; the
// caller is responsible for persisting the installment.
func (i *Installment) ApplyPayment(amount decimal.Decimal, date time.Time) error {
	if !amount.IsPositive() {
		return ErrPaymentNotPositive
	}

	if amount.GreaterThan(i.BalanceAmount) {
		return fmt.Errorf("%w: the current balance is %s", ErrPaymentExceedsBalance, i.BalanceAmount)
	}

	if date.IsZero() {
		date = time.Now().In(time.UTC)
	} else {
		date = date.In(time.UTC)
	}

	i.PaidAmount = i.PaidAmount.Add(amount)
	i.BalanceAmount = i.InstallmentAmount.Sub(i.PaidAmount)
	i.Status = statusForPayment(i.PaidAmount, i.InstallmentAmount)
	i.PaidDate = &date

	return nil
}

// Payments returns all payments recorded against this installment.
func (i Installment) Payments(db *gorm.DB) ([]Payment, error) {
	var payments []Payment
	err := db.
		Where(&Payment{InstallmentID: i.ID}).
		Order("datetime(payments.payment_date) ASC").
		Find(&payments).Error

	return payments, err
}

// Returns all installments on this instance for export
func (Installment) Export() (json.RawMessage, error) {
	var installments []Installment
	err := DB.Unscoped().Where(&Installment{}).Find(&installments).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&installments)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}
