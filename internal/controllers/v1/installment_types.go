package v1

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shareledger/backend/internal/models"
	sl_uuid "github.com/shareledger/backend/internal/uuid"
	"github.com/shopspring/decimal"
)

type InstallmentLinks struct {
	Self     string `json:"self" example:"https://example.com/api/v1/installments/d1b7ccc3-4bb1-4e51-b04a-b9a1e9e63c44"`              // The installment itself
	Share    string `json:"share" example:"https://example.com/api/v1/shares/a4e36f92-3d43-4a2d-84ac-9a5a8b857e23"`              // The share the installment belongs to
	Payments string `json:"payments" example:"https://example.com/api/v1/installments/d1b7ccc3-4bb1-4e51-b04a-b9a1e9e63c44/payments"` // Payments recorded against this installment
}

type Installment struct {
	models.DefaultModel
	ShareID           uuid.UUID                `json:"shareId" example:"a4e36f92-3d43-4a2d-84ac-9a5a8b857e23"` // ID of the share the installment belongs to
	InstallmentNumber uint                     `json:"installmentNumber" example:"3"`                          // 1-based position within the schedule
	DueDate           time.Time                `json:"dueDate" example:"2024-03-01T00:00:00Z"`                 // Due date of the installment
	InstallmentAmount decimal.Decimal          `json:"installmentAmount" example:"100"`                        // Amount due for the installment
	PaidAmount        decimal.Decimal          `json:"paidAmount" example:"40"`                                // Amount already paid
	BalanceAmount     decimal.Decimal          `json:"balanceAmount" example:"60"`                             // Amount still outstanding
	Status            models.InstallmentStatus `json:"status" example:"partial"`                               // Payment status, derived from the paid amount
	PaidDate          *time.Time               `json:"paidDate" example:"2024-03-04T18:14:00Z"`                // Time of the most recent payment, null until the first one
	Links             InstallmentLinks         `json:"links"`
}

func newInstallment(c *gin.Context, model models.Installment) Installment {
	url := c.GetString(string(models.DBContextURL))

	return Installment{
		DefaultModel:      model.DefaultModel,
		ShareID:           model.ShareID,
		InstallmentNumber: model.InstallmentNumber,
		DueDate:           model.DueDate,
		InstallmentAmount: model.InstallmentAmount,
		PaidAmount:        model.PaidAmount,
		BalanceAmount:     model.BalanceAmount,
		Status:            model.Status,
		PaidDate:          model.PaidDate,
		Links: InstallmentLinks{
			Self:     fmt.Sprintf("%s/v1/installments/%s", url, model.ID),
			Share:    fmt.Sprintf("%s/v1/shares/%s", url, model.ShareID),
			Payments: fmt.Sprintf("%s/v1/installments/%s/payments", url, model.ID),
		},
	}
}

type InstallmentListResponse struct {
	Data       []Installment `json:"data"`                                                          // List of Installments
	Error      *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination   `json:"pagination"`                                                    // Pagination information
}

type InstallmentResponse struct {
	Data  *Installment `json:"data"`                                                          // Data for the Installment
	Error *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// PaymentEditable represents all user configurable parameters of a payment
type PaymentEditable struct {
	Amount      decimal.Decimal `json:"amount" example:"100" default:"0"`           // Amount of the payment
	PaymentDate time.Time       `json:"paymentDate" example:"2024-03-04T18:14:00Z"` // Time the payment was made. Defaults to the current time
}

// InstallmentPaymentResponse is the response for recording a payment
// against an installment.
type InstallmentPaymentResponse struct {
	Data  *InstallmentPayment `json:"data"`                                                                         // The recorded payment and the updated installment
	Error *string             `json:"error" example:"the payment would overpay the installment: the current balance is 60"` // The error, if any occurred
}

type InstallmentPayment struct {
	Payment     Payment     `json:"payment"`     // The payment that was recorded
	Installment Installment `json:"installment"` // The installment after the payment was applied
}

type InstallmentQueryFilter struct {
	ShareID   sl_uuid.UUID `form:"share"`                         // By ID of the Share
	Status    string       `form:"status"`                        // By payment status
	FromDate  time.Time    `form:"fromDate" filterField:"false" time_format:"2006-01-02" time_utc:"1" example:"2024-03-01"`  // Only installments due on or after this date
	UntilDate time.Time    `form:"untilDate" filterField:"false" time_format:"2006-01-02" time_utc:"1" example:"2024-12-31"` // Only installments due on or before this date
	Offset    uint         `form:"offset" filterField:"false"`    // The offset of the first Installment returned. Defaults to 0.
	Limit     int          `form:"limit" filterField:"false"`     // Maximum number of Installments to return. Defaults to 50.
}

func (f InstallmentQueryFilter) model() models.Installment {
	return models.Installment{
		ShareID: f.ShareID.UUID,
		Status:  models.InstallmentStatus(f.Status),
	}
}
