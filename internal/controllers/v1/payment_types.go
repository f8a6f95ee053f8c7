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

type PaymentLinks struct {
	Self        string `json:"self" example:"https://example.com/api/v1/payments/1e777d21-b16b-4f27-a46a-cbec6a06ae90"`              // The payment itself
	Installment string `json:"installment" example:"https://example.com/api/v1/installments/d1b7ccc3-4bb1-4e51-b04a-b9a1e9e63c44"` // The installment the payment was applied to
}

type Payment struct {
	models.DefaultModel
	InstallmentID uuid.UUID       `json:"installmentId" example:"d1b7ccc3-4bb1-4e51-b04a-b9a1e9e63c44"` // ID of the installment the payment was applied to
	Amount        decimal.Decimal `json:"amount" example:"100"`                                         // Amount of the payment
	PaymentDate   time.Time       `json:"paymentDate" example:"2024-03-04T18:14:00Z"`                   // Time the payment was made
	Links         PaymentLinks    `json:"links"`
}

func newPayment(c *gin.Context, model models.Payment) Payment {
	url := c.GetString(string(models.DBContextURL))

	return Payment{
		DefaultModel:  model.DefaultModel,
		InstallmentID: model.InstallmentID,
		Amount:        model.Amount,
		PaymentDate:   model.PaymentDate,
		Links: PaymentLinks{
			Self:        fmt.Sprintf("%s/v1/payments/%s", url, model.ID),
			Installment: fmt.Sprintf("%s/v1/installments/%s", url, model.InstallmentID),
		},
	}
}

type PaymentListResponse struct {
	Data       []Payment   `json:"data"`                                                          // List of Payments
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type PaymentResponse struct {
	Data  *Payment `json:"data"`                                                          // Data for the Payment
	Error *string  `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type PaymentQueryFilter struct {
	InstallmentID sl_uuid.UUID `form:"installment"`                // By ID of the Installment
	Offset        uint         `form:"offset" filterField:"false"` // The offset of the first Payment returned. Defaults to 0.
	Limit         int          `form:"limit" filterField:"false"`  // Maximum number of Payments to return. Defaults to 50.
}

func (f PaymentQueryFilter) model() models.Payment {
	return models.Payment{
		InstallmentID: f.InstallmentID.UUID,
	}
}
