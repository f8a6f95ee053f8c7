package v1_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	v1 "github.com/shareledger/backend/internal/controllers/v1"
	"github.com/shareledger/backend/internal/models"
	"github.com/shareledger/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSharesDBClosed verifies that errors are processed correctly when
// the database is closed.
func (suite *TestSuiteStandard) TestSharesDBClosed() {
	s := createTestShareholder(suite.T(), v1.ShareholderEditable{})

	tests := []struct {
		name string             // Name of the test
		test func(t *testing.T) // Code to run
	}{
		{
			"Creation fails",
			func(t *testing.T) {
				createTestShare(t, v1.ShareEditable{ShareholderID: s.Data.ID}, http.StatusInternalServerError)
			},
		},
		{
			"GET fails",
			func(t *testing.T) {
				recorder := test.Request(t, http.MethodGet, "http://example.com/v1/shares", "")
				test.AssertHTTPStatus(t, &recorder, http.StatusInternalServerError)

				var response v1.ShareListResponse
				test.DecodeResponse(t, &recorder, &response)
				assert.Contains(t, *response.Error, models.ErrGeneral.Error())
			},
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			suite.CloseDB()

			tt.test(t)
		})
	}
}

// TestSharesOptions verifies that OPTIONS requests are handled correctly.
func (suite *TestSuiteStandard) TestSharesOptions() {
	tests := []struct {
		name   string
		id     string // path at the Shares endpoint to test
		status int    // Expected HTTP status code
	}{
		{"No Share with this ID", uuid.New().String(), http.StatusNotFound},
		{"Not a valid UUID", "NotParseableAsUUID", http.StatusBadRequest},
		{"Share exists", createTestShare(suite.T(), v1.ShareEditable{}).Data.ID.String(), http.StatusNoContent},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			path := fmt.Sprintf("%s/%s", "http://example.com/v1/shares", tt.id)
			r := test.Request(t, http.MethodOptions, path, "")
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.status == http.StatusNoContent {
				assert.Equal(t, "OPTIONS, GET, PATCH, DELETE", r.Header().Get("allow"))
			}
		})
	}
}

func (suite *TestSuiteStandard) TestSharesCreateGeneratesInstallments() {
	share := createTestShare(suite.T(), v1.ShareEditable{
		Duration:        1,
		AnnualAmount:    decimal.NewFromFloat(1200),
		InstallmentType: models.InstallmentTypeMonthly,
		StartDate:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})

	require.NotNil(suite.T(), share.Data)
	assert.True(suite.T(), share.Data.TotalAmount.Equal(decimal.NewFromFloat(1200)))
	require.Len(suite.T(), share.Data.Installments, 12)

	for i, installment := range share.Data.Installments {
		assert.Equal(suite.T(), uint(i+1), installment.InstallmentNumber)
		assert.True(suite.T(), installment.InstallmentAmount.Equal(decimal.NewFromFloat(100)))
		assert.Equal(suite.T(), models.InstallmentStatusPending, installment.Status)
	}

	assert.True(suite.T(), share.Data.Statistics.TotalExpected.Equal(decimal.NewFromFloat(1200)))
	assert.Equal(suite.T(), 12, share.Data.Statistics.TotalInstallments)
}

func (suite *TestSuiteStandard) TestSharesCreateInvalid() {
	tests := []struct {
		name     string
		editable v1.ShareEditable
	}{
		{
			"Unknown shareholder",
			v1.ShareEditable{
				ShareholderID:   uuid.New(),
				Duration:        1,
				AnnualAmount:    decimal.NewFromFloat(100),
				InstallmentType: models.InstallmentTypeAnnual,
			},
		},
		{
			"Custom type without installments",
			v1.ShareEditable{
				Duration:        1,
				AnnualAmount:    decimal.NewFromFloat(100),
				InstallmentType: models.InstallmentTypeCustom,
			},
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			editable := tt.editable
			if editable.ShareholderID == uuid.Nil {
				editable.ShareholderID = createTestShareholder(t, v1.ShareholderEditable{}).Data.ID
			}

			r := test.Request(t, http.MethodPost, "http://example.com/v1/shares", []v1.ShareEditable{editable})
			test.AssertHTTPStatus(t, &r, http.StatusNotFound, http.StatusBadRequest)

			// The failed transaction must not leave a share behind
			list := test.Request(t, http.MethodGet, "http://example.com/v1/shares", "")
			var response v1.ShareListResponse
			test.DecodeResponse(t, &list, &response)
			assert.Len(t, response.Data, 0)
		})
	}
}

func (suite *TestSuiteStandard) TestSharesGetFilter() {
	shareholder := createTestShareholder(suite.T(), v1.ShareholderEditable{})
	other := createTestShareholder(suite.T(), v1.ShareholderEditable{})

	_ = createTestShare(suite.T(), v1.ShareEditable{ShareholderID: shareholder.Data.ID, InstallmentType: models.InstallmentTypeMonthly})
	_ = createTestShare(suite.T(), v1.ShareEditable{ShareholderID: shareholder.Data.ID, InstallmentType: models.InstallmentTypeQuarterly})
	_ = createTestShare(suite.T(), v1.ShareEditable{ShareholderID: other.Data.ID, InstallmentType: models.InstallmentTypeMonthly})

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"Shareholder", fmt.Sprintf("shareholder=%s", shareholder.Data.ID), 2},
		{"Installment type", "installmentType=monthly", 2},
		{"Shareholder and type", fmt.Sprintf("shareholder=%s&installmentType=quarterly", shareholder.Data.ID), 1},
		{"No match", fmt.Sprintf("shareholder=%s", uuid.New()), 0},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/shares?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.ShareListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Len(t, response.Data, tt.len)
		})
	}
}

func (suite *TestSuiteStandard) TestSharesUpdateDoesNotRegenerate() {
	share := createTestShare(suite.T(), v1.ShareEditable{
		Duration:        1,
		AnnualAmount:    decimal.NewFromFloat(1200),
		InstallmentType: models.InstallmentTypeMonthly,
	})
	require.Len(suite.T(), share.Data.Installments, 12)

	r := test.Request(suite.T(), http.MethodPatch, share.Data.Links.Self, map[string]any{
		"paymentMode": "cash",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated v1.ShareResponse
	test.DecodeResponse(suite.T(), &r, &updated)

	assert.Equal(suite.T(), "cash", updated.Data.PaymentMode)

	// The schedule stays as it was generated on creation
	require.Len(suite.T(), updated.Data.Installments, 12)
	for i, installment := range updated.Data.Installments {
		assert.Equal(suite.T(), share.Data.Installments[i].ID, installment.ID)
	}
}

// TestSharesUpdateRecomputesTotal verifies that the derived total
// follows duration and annual amount updates.
func (suite *TestSuiteStandard) TestSharesUpdateRecomputesTotal() {
	share := createTestShare(suite.T(), v1.ShareEditable{
		Duration:        1,
		AnnualAmount:    decimal.NewFromFloat(1200),
		InstallmentType: models.InstallmentTypeMonthly,
	})
	require.True(suite.T(), share.Data.TotalAmount.Equal(decimal.NewFromFloat(1200)))

	r := test.Request(suite.T(), http.MethodPatch, share.Data.Links.Self, map[string]any{
		"duration": 2,
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated v1.ShareResponse
	test.DecodeResponse(suite.T(), &r, &updated)
	assert.True(suite.T(), updated.Data.TotalAmount.Equal(decimal.NewFromFloat(2400)), "TotalAmount is %s", updated.Data.TotalAmount)

	// The recomputed total is persisted, not only reported
	r = test.Request(suite.T(), http.MethodGet, share.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var got v1.ShareResponse
	test.DecodeResponse(suite.T(), &r, &got)
	assert.True(suite.T(), got.Data.TotalAmount.Equal(decimal.NewFromFloat(2400)), "TotalAmount is %s", got.Data.TotalAmount)

	// Updating the annual amount recomputes with the new duration
	r = test.Request(suite.T(), http.MethodPatch, share.Data.Links.Self, map[string]any{
		"annualAmount": 600,
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	test.DecodeResponse(suite.T(), &r, &updated)
	assert.True(suite.T(), updated.Data.TotalAmount.Equal(decimal.NewFromFloat(1200)), "TotalAmount is %s", updated.Data.TotalAmount)
}

func (suite *TestSuiteStandard) TestSharesDeleteCascades() {
	share := createTestShare(suite.T(), v1.ShareEditable{})
	require.NotEmpty(suite.T(), share.Data.Installments)

	r := test.Request(suite.T(), http.MethodDelete, share.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/installments", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.InstallmentListResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Len(suite.T(), response.Data, 0, "Installments must be deleted together with their share")
}

func (suite *TestSuiteStandard) TestSharesPreview() {
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/shares/preview", v1.ShareEditable{
		Duration:        2,
		AnnualAmount:    decimal.NewFromFloat(2000),
		InstallmentType: models.InstallmentTypeQuarterly,
		StartDate:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.SharePreviewResponse
	test.DecodeResponse(suite.T(), &r, &response)

	require.NotNil(suite.T(), response.Data)
	assert.True(suite.T(), response.Data.TotalAmount.Equal(decimal.NewFromFloat(4000)))
	require.Len(suite.T(), response.Data.Installments, 8)

	for i, installment := range response.Data.Installments {
		assert.Equal(suite.T(), uint(i+1), installment.InstallmentNumber)
		assert.True(suite.T(), installment.InstallmentAmount.Equal(decimal.NewFromFloat(500)))
	}

	// Nothing may be persisted by a preview
	list := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/shares", "")
	var shares v1.ShareListResponse
	test.DecodeResponse(suite.T(), &list, &shares)
	assert.Len(suite.T(), shares.Data, 0)
}

func (suite *TestSuiteStandard) TestSharesPreviewInvalid() {
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/shares/preview", v1.ShareEditable{
		Duration:        1,
		AnnualAmount:    decimal.NewFromFloat(100),
		InstallmentType: models.InstallmentTypeCustom,
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v1.SharePreviewResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Contains(suite.T(), *response.Error, models.ErrInvalidConfiguration.Error())
}
