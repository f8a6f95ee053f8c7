package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Payment is the audit record for a single payment action against an
// installment. Payments are append-only: they are never updated or
// deleted, the installment carries the cumulative state.
type Payment struct {
	DefaultModel
	Installment   Installment `json:"-"`
	InstallmentID uuid.UUID
	Amount        decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	PaymentDate   time.Time
}

// BeforeSave sets the timezone for the payment date to UTC.
func (p *Payment) BeforeSave(_ *gorm.DB) error {
	if p.PaymentDate.IsZero() {
		p.PaymentDate = time.Now().In(time.UTC)
	} else {
		p.PaymentDate = p.PaymentDate.In(time.UTC)
	}

	return nil
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	_ = p.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*Payment)
	return p.checkIntegrity(tx, *toSave)
}

// checkIntegrity verifies references to other resources
func (p *Payment) checkIntegrity(tx *gorm.DB, toSave Payment) error {
	return tx.First(&Installment{}, toSave.InstallmentID).Error
}

// AfterFind updates the payment date to use UTC as timezone.
func (p *Payment) AfterFind(_ *gorm.DB) error {
	p.PaymentDate = p.PaymentDate.In(time.UTC)
	return nil
}

// Returns all payments on this instance for export
func (Payment) Export() (json.RawMessage, error) {
	var payments []Payment
	err := DB.Unscoped().Where(&Payment{}).Find(&payments).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&payments)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}
