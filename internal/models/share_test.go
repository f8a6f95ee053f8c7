package models_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shareledger/backend/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestShareTotalAmount() {
	shareholder := suite.createTestShareholder(models.Shareholder{Name: "Total"})

	share := suite.createTestShare(models.Share{
		ShareholderID:   shareholder.ID,
		Duration:        5,
		AnnualAmount:    decimal.NewFromFloat(1200),
		InstallmentType: models.InstallmentTypeMonthly,
	})

	assert.True(suite.T(), share.TotalAmount.Equal(decimal.NewFromFloat(6000)), "TotalAmount is %s, expected 6000", share.TotalAmount)

	// TotalAmount is never taken from user input
	share.TotalAmount = decimal.NewFromFloat(1)
	share.Duration = 2
	err := models.DB.Save(&share).Error
	require.Nil(suite.T(), err)

	assert.True(suite.T(), share.TotalAmount.Equal(decimal.NewFromFloat(2400)), "TotalAmount is %s, expected 2400", share.TotalAmount)
}

func (suite *TestSuiteStandard) TestShareStartDateDefault() {
	shareholder := suite.createTestShareholder(models.Shareholder{Name: "StartDate"})

	share := suite.createTestShare(models.Share{
		ShareholderID:   shareholder.ID,
		Duration:        1,
		AnnualAmount:    decimal.NewFromFloat(100),
		InstallmentType: models.InstallmentTypeAnnual,
	})

	assert.False(suite.T(), share.StartDate.IsZero())
	assert.Equal(suite.T(), time.UTC, share.StartDate.Location())
}

func (suite *TestSuiteStandard) TestShareCreate() {
	shareholder := suite.createTestShareholder(models.Shareholder{Name: "References"})

	tests := []struct {
		name          string
		shareholderID uuid.UUID
		err           error
	}{
		{"Valid shareholder ID", shareholder.ID, nil},
		{"Invalid shareholder ID", uuid.New(), models.ErrResourceNotFound},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			share := models.Share{
				ShareholderID:   tt.shareholderID,
				Duration:        1,
				AnnualAmount:    decimal.NewFromFloat(100),
				InstallmentType: models.InstallmentTypeAnnual,
			}

			err := models.DB.Create(&share).Error
			assert.ErrorIs(t, err, tt.err, "Error is: %s", err)
		})
	}
}

func (suite *TestSuiteStandard) TestShareUpdateShareholder() {
	shareholder := suite.createTestShareholder(models.Shareholder{Name: "Old"})
	share := suite.createTestShare(models.Share{
		ShareholderID:   shareholder.ID,
		Duration:        1,
		AnnualAmount:    decimal.NewFromFloat(100),
		InstallmentType: models.InstallmentTypeAnnual,
	})

	err := models.DB.Model(&share).Updates(models.Share{ShareholderID: uuid.New()}).Error
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)

	newShareholder := suite.createTestShareholder(models.Shareholder{Name: "New"})
	err = models.DB.Model(&share).Updates(models.Share{ShareholderID: newShareholder.ID}).Error
	assert.Nil(suite.T(), err)
}

func (suite *TestSuiteStandard) TestShareDeleteCascades() {
	shareholder := suite.createTestShareholder(models.Shareholder{Name: "Cascade"})
	share := suite.createTestShare(models.Share{
		ShareholderID:   shareholder.ID,
		Duration:        1,
		AnnualAmount:    decimal.NewFromFloat(1200),
		InstallmentType: models.InstallmentTypeMonthly,
	})

	installments, err := models.GenerateSchedule(share)
	require.Nil(suite.T(), err)
	err = models.DB.Create(&installments).Error
	require.Nil(suite.T(), err)

	err = models.DB.Delete(&share).Error
	require.Nil(suite.T(), err)

	var count int64
	err = models.DB.Model(&models.Installment{}).Where(&models.Installment{ShareID: share.ID}).Count(&count).Error
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), int64(0), count, "Installments must be deleted together with their share")
}

func (suite *TestSuiteStandard) TestShareInstallmentsOrder() {
	shareholder := suite.createTestShareholder(models.Shareholder{Name: "Order"})
	share := suite.createTestShare(models.Share{
		ShareholderID:   shareholder.ID,
		Duration:        1,
		AnnualAmount:    decimal.NewFromFloat(400),
		InstallmentType: models.InstallmentTypeQuarterly,
	})

	schedule, err := models.GenerateSchedule(share)
	require.Nil(suite.T(), err)

	// Create out of order to verify the read order
	for i := len(schedule) - 1; i >= 0; i-- {
		_ = suite.createTestInstallment(schedule[i])
	}

	installments, err := share.Installments(models.DB)
	require.Nil(suite.T(), err)
	require.Len(suite.T(), installments, 4)

	for i, installment := range installments {
		assert.Equal(suite.T(), uint(i+1), installment.InstallmentNumber)
	}
}

func (suite *TestSuiteStandard) TestShareExport() {
	t := suite.T()

	shareholder := suite.createTestShareholder(models.Shareholder{Name: "Export"})
	for j := 0; j < 2; j++ {
		_ = suite.createTestShare(models.Share{
			ShareholderID:   shareholder.ID,
			Duration:        1,
			AnnualAmount:    decimal.NewFromFloat(100),
			InstallmentType: models.InstallmentTypeAnnual,
		})
	}

	raw, err := models.Share{}.Export()
	if err != nil {
		require.Fail(t, "share export failed", err)
	}

	var shares []models.Share
	err = json.Unmarshal(raw, &shares)
	if err != nil {
		require.Fail(t, "JSON could not be unmarshaled", err)
	}

	require.Len(t, shares, 2, "Number of shares in export is wrong")
}
