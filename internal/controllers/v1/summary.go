package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shareledger/backend/internal/httputil"
	"github.com/shareledger/backend/internal/models"
	"github.com/shopspring/decimal"
)

func RegisterSummaryRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsSummary)
	r.GET("", GetSummary)
}

type Summary struct {
	Statistics       models.Statistics `json:"statistics"`                     // Aggregates over all installments on the instance
	MonthlyCollected decimal.Decimal   `json:"monthlyCollected" example:"730"` // Paid amounts of installments last paid in the current month
	ShareholderCount int64             `json:"shareholderCount" example:"31"`  // Number of shareholders
	ShareCount       int64             `json:"shareCount" example:"52"`        // Number of shares
}

type SummaryResponse struct {
	Data  *Summary `json:"data"`                                             // The summary
	Error *string  `json:"error" example:"there is no database connection"` // The error, if any occurred
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Summary
// @Success		204
// @Router			/v1/summary [options]
func OptionsSummary(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get summary
// @Description	Returns the aggregates over all resources for dashboards
// @Tags			Summary
// @Produce		json
// @Success		200	{object}	SummaryResponse
// @Failure		500	{object}	SummaryResponse
// @Router			/v1/summary [get]
func GetSummary(c *gin.Context) {
	var installments []models.Installment
	err := models.DB.Find(&installments).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SummaryResponse{
			Error: &s,
		})
		return
	}

	summary := Summary{
		Statistics:       models.CalculateStatistics(installments),
		MonthlyCollected: decimal.Zero,
	}

	now := time.Now().In(time.UTC)
	for _, installment := range installments {
		if installment.PaidDate == nil {
			continue
		}

		if installment.PaidDate.Year() == now.Year() && installment.PaidDate.Month() == now.Month() {
			summary.MonthlyCollected = summary.MonthlyCollected.Add(installment.PaidAmount)
		}
	}

	err = models.DB.Model(&models.Shareholder{}).Count(&summary.ShareholderCount).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SummaryResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&models.Share{}).Count(&summary.ShareCount).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SummaryResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, SummaryResponse{Data: &summary})
}
