package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/shareledger/backend/internal/models"
)

// ShareholderEditable represents all user configurable parameters
type ShareholderEditable struct {
	Name    string `json:"name" example:"Ravi Kumar" default:""`           // Name of the shareholder
	Email   string `json:"email" example:"ravi@example.com" default:""`    // Email address of the shareholder
	Mobile  string `json:"mobile" example:"+91 98765 43210" default:""`    // Mobile number of the shareholder
	Country string `json:"country" example:"United Arab Emirates" default:""` // Country the shareholder lives in
}

func (editable ShareholderEditable) model() models.Shareholder {
	return models.Shareholder{
		Name:    editable.Name,
		Email:   editable.Email,
		Mobile:  editable.Mobile,
		Country: editable.Country,
	}
}

type ShareholderLinks struct {
	Self   string `json:"self" example:"https://example.com/api/v1/shareholders/3b1ea324-d438-4419-882a-2fc91d71772f"`          // The shareholder itself
	Shares string `json:"shares" example:"https://example.com/api/v1/shares?shareholder=3b1ea324-d438-4419-882a-2fc91d71772f"` // Shares of this shareholder
}

type Shareholder struct {
	models.DefaultModel
	ShareholderEditable
	Links ShareholderLinks `json:"links"`
}

func newShareholder(c *gin.Context, model models.Shareholder) Shareholder {
	url := c.GetString(string(models.DBContextURL))

	return Shareholder{
		DefaultModel: model.DefaultModel,
		ShareholderEditable: ShareholderEditable{
			Name:    model.Name,
			Email:   model.Email,
			Mobile:  model.Mobile,
			Country: model.Country,
		},
		Links: ShareholderLinks{
			Self:   fmt.Sprintf("%s/v1/shareholders/%s", url, model.ID),
			Shares: fmt.Sprintf("%s/v1/shares?shareholder=%s", url, model.ID),
		},
	}
}

type ShareholderListResponse struct {
	Data       []Shareholder `json:"data"`                                                          // List of Shareholders
	Error      *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination   `json:"pagination"`                                                    // Pagination information
}

type ShareholderCreateResponse struct {
	Data  []ShareholderResponse `json:"data"`                                                          // List of the created Shareholders or their respective error
	Error *string               `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (s *ShareholderCreateResponse) appendError(err error, currentStatus int) int {
	e := err.Error()
	s.Data = append(s.Data, ShareholderResponse{Error: &e})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type ShareholderResponse struct {
	Data  *Shareholder `json:"data"`                                                          // Data for the Shareholder
	Error *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type ShareholderQueryFilter struct {
	Name    string `form:"name" filterField:"false"`   // By name
	Email   string `form:"email" filterField:"false"`  // By email
	Country string `form:"country"`                    // By country
	Search  string `form:"search" filterField:"false"` // By search term in name, email or mobile. Supports "*" wildcards
	Offset  uint   `form:"offset" filterField:"false"` // The offset of the first Shareholder returned. Defaults to 0.
	Limit   int    `form:"limit" filterField:"false"`  // Maximum number of Shareholders to return. Defaults to 50.
}

func (f ShareholderQueryFilter) model() models.Shareholder {
	return models.Shareholder{
		Country: f.Country,
	}
}
