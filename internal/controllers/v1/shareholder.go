package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shareledger/backend/internal/httputil"
	"github.com/shareledger/backend/internal/models"
	"golang.org/x/exp/slices"
)

// RegisterShareholderRoutes registers the routes for shareholders with
// the RouterGroup that is passed.
func RegisterShareholderRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsShareholderList)
		r.GET("", GetShareholders)
		r.POST("", CreateShareholders)
	}

	// Shareholder with ID
	{
		r.OPTIONS("/:id", OptionsShareholderDetail)
		r.GET("/:id", GetShareholder)
		r.PATCH("/:id", UpdateShareholder)
		r.DELETE("/:id", DeleteShareholder)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Shareholders
// @Success		204
// @Router			/v1/shareholders [options]
func OptionsShareholderList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Shareholders
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/shareholders/{id} [options]
func OptionsShareholderDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Shareholder{}, httputil.OptionsGetPatchDelete)
}

// @Summary		Create shareholders
// @Description	Creates new shareholders
// @Tags			Shareholders
// @Produce		json
// @Success		201				{object}	ShareholderCreateResponse
// @Failure		400				{object}	ShareholderCreateResponse
// @Failure		409				{object}	ShareholderCreateResponse
// @Failure		500				{object}	ShareholderCreateResponse
// @Param			shareholders	body		[]ShareholderEditable	true	"Shareholders"
// @Router			/v1/shareholders [post]
func CreateShareholders(c *gin.Context) {
	var editables []ShareholderEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ShareholderCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := ShareholderCreateResponse{}

	for _, editable := range editables {
		shareholder := editable.model()

		// Reject a second shareholder with the same email address.
		// The check is case-insensitive since sqlite's LIKE is.
		if shareholder.Email != "" {
			var count int64
			err = models.DB.Model(&models.Shareholder{}).Where("email LIKE ?", shareholder.Email).Count(&count).Error
			if err != nil {
				status = r.appendError(err, status)
				continue
			}

			if count > 0 {
				status = r.appendError(models.ErrShareholderEmailExists, status)
				continue
			}
		}

		err = models.DB.Create(&shareholder).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newShareholder(c, shareholder)
		r.Data = append(r.Data, ShareholderResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get shareholders
// @Description	Returns a list of shareholders
// @Tags			Shareholders
// @Produce		json
// @Success		200	{object}	ShareholderListResponse
// @Failure		400	{object}	ShareholderListResponse
// @Failure		500	{object}	ShareholderListResponse
// @Router			/v1/shareholders [get]
// @Param			name	query	string	false	"Filter by name"
// @Param			email	query	string	false	"Filter by email"
// @Param			country	query	string	false	"Filter by country"
// @Param			search	query	string	false	"Search for this text in name, email and mobile. Supports * wildcards"
// @Param			offset	query	uint	false	"The offset of the first Shareholder returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of Shareholders to return. Defaults to 50."
func GetShareholders(c *gin.Context) {
	var filter ShareholderQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	// Get the fields that we are filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	filterModel := filter.model()

	q := models.DB.
		Order("name ASC").
		Where(&filterModel, queryFields...)

	q = stringFilters(q, setFields, filter.Name, filter.Email)

	var shareholders []models.Shareholder
	err := q.Find(&shareholders).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ShareholderListResponse{
			Error: &s,
		})
		return
	}

	// The search term matches with wildcards, so it is applied after
	// reading from the database
	if filter.Search != "" {
		shareholders = searchShareholders(shareholders, filter.Search)
	}

	// Pagination over the matched set
	count := len(shareholders)
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}

	offset := int(filter.Offset)
	if offset > count {
		offset = count
	}

	end := count
	if limit >= 0 && offset+limit < end {
		end = offset + limit
	}
	shareholders = shareholders[offset:end]

	data := make([]Shareholder, 0)
	for _, shareholder := range shareholders {
		data = append(data, newShareholder(c, shareholder))
	}

	c.JSON(http.StatusOK, ShareholderListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  int64(count),
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get shareholder
// @Description	Returns a specific shareholder
// @Tags			Shareholders
// @Produce		json
// @Success		200	{object}	ShareholderResponse
// @Failure		400	{object}	ShareholderResponse
// @Failure		404	{object}	ShareholderResponse
// @Failure		500	{object}	ShareholderResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/shareholders/{id} [get]
func GetShareholder(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ShareholderResponse{
			Error: &s,
		})
		return
	}

	var shareholder models.Shareholder
	err = models.DB.First(&shareholder, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ShareholderResponse{
			Error: &s,
		})
		return
	}

	data := newShareholder(c, shareholder)
	c.JSON(http.StatusOK, ShareholderResponse{Data: &data})
}

// @Summary		Update shareholder
// @Description	Update an existing shareholder. Only values to be updated need to be specified.
// @Tags			Shareholders
// @Accept			json
// @Produce		json
// @Success		200			{object}	ShareholderResponse
// @Failure		400			{object}	ShareholderResponse
// @Failure		404			{object}	ShareholderResponse
// @Failure		500			{object}	ShareholderResponse
// @Param			id			path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			shareholder	body		ShareholderEditable	true	"Shareholder"
// @Router			/v1/shareholders/{id} [patch]
func UpdateShareholder(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ShareholderResponse{
			Error: &s,
		})
		return
	}

	var shareholder models.Shareholder
	err = models.DB.First(&shareholder, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ShareholderResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, ShareholderEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ShareholderResponse{
			Error: &s,
		})
		return
	}

	var data ShareholderEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ShareholderResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&shareholder).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ShareholderResponse{
			Error: &s,
		})
		return
	}

	r := newShareholder(c, shareholder)
	c.JSON(http.StatusOK, ShareholderResponse{Data: &r})
}

// @Summary		Delete shareholder
// @Description	Deletes a shareholder. Fails while the shareholder still holds shares.
// @Tags			Shareholders
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/shareholders/{id} [delete]
func DeleteShareholder(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var shareholder models.Shareholder
	err = models.DB.First(&shareholder, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&shareholder).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
