package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shareledger/backend/internal/httputil"
	"github.com/shareledger/backend/internal/models"
)

func RegisterRootRoutes(r *gin.RouterGroup) {
	r.GET("", Get)
	r.DELETE("", Cleanup)
	r.OPTIONS("", Options)
}

type Response struct {
	Links Links `json:"links"` // Links for the v1 API
}

type Links struct {
	Shareholders string `json:"shareholders" example:"https://example.com/api/v1/shareholders"` // URL of Shareholder collection endpoint
	Shares       string `json:"shares" example:"https://example.com/api/v1/shares"`             // URL of Share collection endpoint
	Installments string `json:"installments" example:"https://example.com/api/v1/installments"` // URL of Installment collection endpoint
	Payments     string `json:"payments" example:"https://example.com/api/v1/payments"`         // URL of Payment collection endpoint
	Summary      string `json:"summary" example:"https://example.com/api/v1/summary"`           // URL of the summary endpoint
	Export       string `json:"export" example:"https://example.com/api/v1/export"`             // URL of the export endpoint
}

// Get returns the link list for v1
//
//	@Summary		v1 API
//	@Description	Returns general information about the v1 API
//	@Tags			v1
//	@Success		200	{object}	Response
//	@Router			/v1 [get]
func Get(c *gin.Context) {
	url := c.GetString(string(models.DBContextURL))

	c.JSON(http.StatusOK, Response{
		Links: Links{
			Shareholders: url + "/v1/shareholders",
			Shares:       url + "/v1/shares",
			Installments: url + "/v1/installments",
			Payments:     url + "/v1/payments",
			Summary:      url + "/v1/summary",
			Export:       url + "/v1/export",
		},
	})
}

// Options returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			v1
//	@Success		204
//	@Router			/v1 [options]
func Options(c *gin.Context) {
	httputil.OptionsGetDelete(c)
}
