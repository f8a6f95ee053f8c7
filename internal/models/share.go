package models

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InstallmentType is the cadence governing installment count and spacing.
//
// swagger:enum InstallmentType
type InstallmentType string

const (
	InstallmentTypeMonthly    InstallmentType = "monthly"
	InstallmentTypeQuarterly  InstallmentType = "quarterly"
	InstallmentTypeHalfYearly InstallmentType = "half-yearly"
	InstallmentTypeAnnual     InstallmentType = "annual"
	InstallmentTypeCustom     InstallmentType = "custom"
)

// Share represents a purchase commitment that is paid off over a
// duration via periodic installments.
type Share struct {
	DefaultModel
	Shareholder        Shareholder `json:"-"`
	ShareholderID      uuid.UUID
	Duration           uint            // Duration in whole years
	AnnualAmount       decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	InstallmentType    InstallmentType
	CustomInstallments uint // Installments per year, only used for the custom installment type
	StartDate          time.Time
	TotalAmount        decimal.Decimal `gorm:"type:DECIMAL(20,8)"` // Always AnnualAmount * Duration, never set directly
	PaymentMode        string
	OfficeStaff        string
}

// BeforeSave derives the total amount and normalizes the start date.
//
// TotalAmount is recomputed on every save so that it can never drift
// from AnnualAmount and Duration.
func (s *Share) BeforeSave(_ *gorm.DB) error {
	s.TotalAmount = s.AnnualAmount.Mul(decimal.NewFromInt(int64(s.Duration)))

	if s.StartDate.IsZero() {
		s.StartDate = time.Now().In(time.UTC)
	} else {
		s.StartDate = s.StartDate.In(time.UTC)
	}

	s.PaymentMode = strings.TrimSpace(s.PaymentMode)
	s.OfficeStaff = strings.TrimSpace(s.OfficeStaff)

	return nil
}

func (s *Share) BeforeCreate(tx *gorm.DB) error {
	_ = s.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*Share)
	return s.checkIntegrity(tx, *toSave)
}

// BeforeUpdate verifies the state of the share before
// committing an update to the database.
func (s *Share) BeforeUpdate(tx *gorm.DB) error {
	toSave := tx.Statement.Dest.(Share)
	if tx.Statement.Changed("ShareholderID") {
		err := s.checkIntegrity(tx, toSave)
		if err != nil {
			return err
		}
	}

	return nil
}

// BeforeDelete removes the installments of the share. A share and its
// schedule only exist together.
func (s *Share) BeforeDelete(tx *gorm.DB) error {
	return tx.Where(&Installment{ShareID: s.ID}).Delete(&Installment{}).Error
}

// checkIntegrity verifies references to other resources
func (s *Share) checkIntegrity(tx *gorm.DB, toSave Share) error {
	return tx.First(&Shareholder{}, toSave.ShareholderID).Error
}

// Installments returns the schedule of the share, ordered by
// installment number.
func (s Share) Installments(db *gorm.DB) ([]Installment, error) {
	var installments []Installment
	err := db.
		Where(&Installment{ShareID: s.ID}).
		Order("installments.installment_number ASC").
		Find(&installments).Error

	return installments, err
}

// AfterFind updates the start date to use UTC as timezone.
func (s *Share) AfterFind(_ *gorm.DB) error {
	s.StartDate = s.StartDate.In(time.UTC)
	return nil
}

// Returns all shares on this instance for export
func (Share) Export() (json.RawMessage, error) {
	var shares []Share
	err := DB.Unscoped().Where(&Share{}).Find(&shares).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&shares)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}
