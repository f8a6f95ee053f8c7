package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	v1 "github.com/shareledger/backend/internal/controllers/v1"
	"github.com/shareledger/backend/internal/models"
	"github.com/shareledger/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestPayment records a payment against the first installment of a
// new share and returns it.
func createTestPayment(t *testing.T, amount float64) v1.Payment {
	share := createTestShare(t, v1.ShareEditable{})

	r := test.Request(t, http.MethodPost, share.Data.Installments[0].Links.Payments, v1.PaymentEditable{
		Amount: decimal.NewFromFloat(amount),
	})
	test.AssertHTTPStatus(t, &r, http.StatusCreated)

	var response v1.InstallmentPaymentResponse
	test.DecodeResponse(t, &r, &response)
	require.NotNil(t, response.Data)

	return response.Data.Payment
}

// TestPaymentsDBClosed verifies that errors are processed correctly when
// the database is closed.
func (suite *TestSuiteStandard) TestPaymentsDBClosed() {
	suite.CloseDB()

	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/payments", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusInternalServerError)

	var response v1.PaymentListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Contains(suite.T(), *response.Error, models.ErrGeneral.Error())
}

// TestPaymentsOptions verifies that OPTIONS requests are handled correctly.
func (suite *TestSuiteStandard) TestPaymentsOptions() {
	payment := createTestPayment(suite.T(), 50)

	tests := []struct {
		name   string
		id     string // path at the Payments endpoint to test
		status int    // Expected HTTP status code
	}{
		{"No Payment with this ID", uuid.New().String(), http.StatusNotFound},
		{"Not a valid UUID", "NotParseableAsUUID", http.StatusBadRequest},
		{"Payment exists", payment.ID.String(), http.StatusNoContent},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			path := fmt.Sprintf("%s/%s", "http://example.com/v1/payments", tt.id)
			r := test.Request(t, http.MethodOptions, path, "")
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.status == http.StatusNoContent {
				assert.Equal(t, "OPTIONS, GET", r.Header().Get("allow"))
			}
		})
	}
}

// TestPaymentsReadOnly verifies that payments cannot be created, changed or
// deleted directly.
func (suite *TestSuiteStandard) TestPaymentsReadOnly() {
	payment := createTestPayment(suite.T(), 50)

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "http://example.com/v1/payments"},
		{http.MethodPatch, payment.Links.Self},
		{http.MethodDelete, payment.Links.Self},
	}

	for _, tt := range tests {
		suite.T().Run(tt.method, func(t *testing.T) {
			r := test.Request(t, tt.method, tt.path, "")
			test.AssertHTTPStatus(t, &r, http.StatusMethodNotAllowed)
		})
	}
}

func (suite *TestSuiteStandard) TestPaymentsGetSingle() {
	payment := createTestPayment(suite.T(), 50)

	r := test.Request(suite.T(), http.MethodGet, payment.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.PaymentResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), payment.ID, response.Data.ID)
	assert.True(suite.T(), response.Data.Amount.Equal(decimal.NewFromFloat(50)))
}

func (suite *TestSuiteStandard) TestPaymentsGetFilter() {
	share := createTestShare(suite.T(), v1.ShareEditable{
		Duration:        1,
		AnnualAmount:    decimal.NewFromFloat(1200),
		InstallmentType: models.InstallmentTypeMonthly,
	})

	// Two payments on the first installment, one on the second
	for _, p := range []struct {
		installment v1.Installment
		amount      float64
	}{
		{share.Data.Installments[0], 60},
		{share.Data.Installments[0], 40},
		{share.Data.Installments[1], 100},
	} {
		r := test.Request(suite.T(), http.MethodPost, p.installment.Links.Payments, v1.PaymentEditable{
			Amount: decimal.NewFromFloat(p.amount),
		})
		test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)
	}

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"All", "", 3},
		{"First installment", fmt.Sprintf("installment=%s", share.Data.Installments[0].ID), 2},
		{"Second installment", fmt.Sprintf("installment=%s", share.Data.Installments[1].ID), 1},
		{"No matches", fmt.Sprintf("installment=%s", uuid.New()), 0},
		{"Limit", "limit=1", 1},
		{"Offset", "offset=2", 1},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/payments?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.PaymentListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Len(t, response.Data, tt.len)
		})
	}
}
