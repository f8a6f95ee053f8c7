package models

import (
	"encoding/json"
	"strings"

	"gorm.io/gorm"
)

// Shareholder represents a person or entity holding one or more shares.
type Shareholder struct {
	DefaultModel
	Name    string
	Email   string `gorm:"index"`
	Mobile  string
	Country string
}

// BeforeSave trims whitespace from all strings
func (s *Shareholder) BeforeSave(_ *gorm.DB) error {
	s.Name = strings.TrimSpace(s.Name)
	s.Email = strings.TrimSpace(s.Email)
	s.Mobile = strings.TrimSpace(s.Mobile)
	s.Country = strings.TrimSpace(s.Country)

	return nil
}

// BeforeDelete blocks deletion while the shareholder still owns shares.
func (s *Shareholder) BeforeDelete(tx *gorm.DB) error {
	var count int64
	err := tx.Model(&Share{}).Where(&Share{ShareholderID: s.ID}).Count(&count).Error
	if err != nil {
		return err
	}

	if count > 0 {
		return ErrShareholderHasShares
	}

	return nil
}

// Shares returns all shares belonging to this shareholder.
func (s Shareholder) Shares(db *gorm.DB) ([]Share, error) {
	var shares []Share
	err := db.Where(&Share{ShareholderID: s.ID}).Find(&shares).Error
	return shares, err
}

// Returns all shareholders on this instance for export
func (Shareholder) Export() (json.RawMessage, error) {
	var shareholders []Shareholder
	err := DB.Unscoped().Where(&Shareholder{}).Find(&shareholders).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&shareholders)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}
