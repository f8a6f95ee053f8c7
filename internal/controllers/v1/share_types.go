package v1

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shareledger/backend/internal/models"
	sl_uuid "github.com/shareledger/backend/internal/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ShareEditable represents all user configurable parameters
type ShareEditable struct {
	ShareholderID      uuid.UUID              `json:"shareholderId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"` // ID of the shareholder owning the share
	Duration           uint                   `json:"duration" example:"5" default:"0"`                             // Duration of the share in years
	AnnualAmount       decimal.Decimal        `json:"annualAmount" example:"1200" default:"0"`                      // Amount due per year
	InstallmentType    models.InstallmentType `json:"installmentType" example:"monthly" default:""`                 // Cadence of the installment schedule
	CustomInstallments uint                   `json:"customInstallments" example:"6" default:"0"`                   // Installments per year, only used with the custom installment type
	StartDate          time.Time              `json:"startDate" example:"2024-01-01T00:00:00Z"`                     // Due date of the first installment. Defaults to the current time
	PaymentMode        string                 `json:"paymentMode" example:"bank transfer" default:""`               // How payments are made
	OfficeStaff        string                 `json:"officeStaff" example:"F. Herbert" default:""`                  // Staff member who registered the share
}

func (editable ShareEditable) model() models.Share {
	return models.Share{
		ShareholderID:      editable.ShareholderID,
		Duration:           editable.Duration,
		AnnualAmount:       editable.AnnualAmount,
		InstallmentType:    editable.InstallmentType,
		CustomInstallments: editable.CustomInstallments,
		StartDate:          editable.StartDate,
		PaymentMode:        editable.PaymentMode,
		OfficeStaff:        editable.OfficeStaff,
	}
}

type ShareLinks struct {
	Self         string `json:"self" example:"https://example.com/api/v1/shares/a4e36f92-3d43-4a2d-84ac-9a5a8b857e23"`                 // The share itself
	Shareholder  string `json:"shareholder" example:"https://example.com/api/v1/shareholders/3b1ea324-d438-4419-882a-2fc91d71772f"`    // The shareholder owning the share
	Installments string `json:"installments" example:"https://example.com/api/v1/installments?share=a4e36f92-3d43-4a2d-84ac-9a5a8b857e23"` // Installments of this share
}

type Share struct {
	models.DefaultModel
	ShareEditable
	TotalAmount decimal.Decimal `json:"totalAmount" example:"6000"` // AnnualAmount * Duration, derived
	Links       ShareLinks      `json:"links"`

	// These fields are computed
	Installments []Installment     `json:"installments"` // The installment schedule of the share
	Statistics   models.Statistics `json:"statistics"`   // Aggregates over the schedule
}

func newShare(c *gin.Context, db *gorm.DB, model models.Share) (Share, error) {
	url := c.GetString(string(models.DBContextURL))

	share := Share{
		DefaultModel: model.DefaultModel,
		ShareEditable: ShareEditable{
			ShareholderID:      model.ShareholderID,
			Duration:           model.Duration,
			AnnualAmount:       model.AnnualAmount,
			InstallmentType:    model.InstallmentType,
			CustomInstallments: model.CustomInstallments,
			StartDate:          model.StartDate,
			PaymentMode:        model.PaymentMode,
			OfficeStaff:        model.OfficeStaff,
		},
		TotalAmount: model.TotalAmount,
		Links: ShareLinks{
			Self:         fmt.Sprintf("%s/v1/shares/%s", url, model.ID),
			Shareholder:  fmt.Sprintf("%s/v1/shareholders/%s", url, model.ShareholderID),
			Installments: fmt.Sprintf("%s/v1/installments?share=%s", url, model.ID),
		},
	}

	installments, err := model.Installments(db)
	if err != nil {
		return Share{}, err
	}

	share.Installments = make([]Installment, 0, len(installments))
	for _, installment := range installments {
		share.Installments = append(share.Installments, newInstallment(c, installment))
	}

	share.Statistics = models.CalculateStatistics(installments)

	return share, nil
}

type ShareListResponse struct {
	Data       []Share     `json:"data"`                                                          // List of Shares
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type ShareCreateResponse struct {
	Data  []ShareResponse `json:"data"`                                                          // List of the created Shares or their respective error
	Error *string         `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (s *ShareCreateResponse) appendError(err error, currentStatus int) int {
	e := err.Error()
	s.Data = append(s.Data, ShareResponse{Error: &e})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type ShareResponse struct {
	Data  *Share  `json:"data"`                                                          // Data for the Share
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type SharePreviewInstallment struct {
	InstallmentNumber uint            `json:"installmentNumber" example:"1"`           // 1-based position within the schedule
	DueDate           time.Time       `json:"dueDate" example:"2024-01-01T00:00:00Z"`  // Due date of the installment
	InstallmentAmount decimal.Decimal `json:"installmentAmount" example:"100"`         // Amount due for the installment
}

type SharePreview struct {
	TotalAmount  decimal.Decimal           `json:"totalAmount" example:"6000"` // AnnualAmount * Duration
	Installments []SharePreviewInstallment `json:"installments"`               // The schedule the share would get
}

type SharePreviewResponse struct {
	Data  *SharePreview `json:"data"`                                                             // The previewed schedule
	Error *string       `json:"error" example:"the custom installment type needs a positive number of installments per year"` // The error, if any occurred
}

type ShareQueryFilter struct {
	ShareholderID   sl_uuid.UUID `form:"shareholder"`                // By ID of the Shareholder
	InstallmentType string       `form:"installmentType"`            // By installment type
	Offset          uint         `form:"offset" filterField:"false"` // The offset of the first Share returned. Defaults to 0.
	Limit           int          `form:"limit" filterField:"false"`  // Maximum number of Shares to return. Defaults to 50.
}

func (f ShareQueryFilter) model() models.Share {
	return models.Share{
		ShareholderID:   f.ShareholderID.UUID,
		InstallmentType: models.InstallmentType(f.InstallmentType),
	}
}
