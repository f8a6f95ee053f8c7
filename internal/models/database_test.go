package models_test

import (
	"github.com/google/uuid"
	"github.com/shareledger/backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestResourceNotFoundMessage() {
	err := models.DB.First(&models.Shareholder{}, uuid.New()).Error

	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
	assert.Equal(suite.T(), "there is no shareholder matching your query", err.Error())
}

func (suite *TestSuiteStandard) TestGeneralErrorOnClosedDB() {
	suite.CloseDB()

	err := models.DB.First(&models.Shareholder{}, uuid.New()).Error
	assert.ErrorIs(suite.T(), err, models.ErrGeneral)
}
