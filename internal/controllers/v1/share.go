package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shareledger/backend/internal/httputil"
	"github.com/shareledger/backend/internal/models"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// RegisterShareRoutes registers the routes for shares with
// the RouterGroup that is passed.
func RegisterShareRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsShareList)
		r.GET("", GetShares)
		r.POST("", CreateShares)
	}

	// Schedule preview
	{
		r.OPTIONS("/preview", OptionsSharePreview)
		r.POST("/preview", PreviewShare)
	}

	// Share with ID
	{
		r.OPTIONS("/:id", OptionsShareDetail)
		r.GET("/:id", GetShare)
		r.PATCH("/:id", UpdateShare)
		r.DELETE("/:id", DeleteShare)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Shares
// @Success		204
// @Router			/v1/shares [options]
func OptionsShareList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Shares
// @Success		204
// @Router			/v1/shares/preview [options]
func OptionsSharePreview(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Shares
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/shares/{id} [options]
func OptionsShareDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Share{}, httputil.OptionsGetPatchDelete)
}

// @Summary		Create shares
// @Description	Creates new shares. For every share, the full installment schedule is generated and saved together with the share.
// @Tags			Shares
// @Produce		json
// @Success		201		{object}	ShareCreateResponse
// @Failure		400		{object}	ShareCreateResponse
// @Failure		404		{object}	ShareCreateResponse
// @Failure		500		{object}	ShareCreateResponse
// @Param			shares	body		[]ShareEditable	true	"Shares"
// @Router			/v1/shares [post]
func CreateShares(c *gin.Context) {
	var editables []ShareEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ShareCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := ShareCreateResponse{}

	for _, editable := range editables {
		share := editable.model()

		// The share and its schedule only ever exist together, so they
		// are created in one transaction
		err = models.DB.Transaction(func(tx *gorm.DB) error {
			err := tx.Create(&share).Error
			if err != nil {
				return err
			}

			installments, err := models.GenerateSchedule(share)
			if err != nil {
				return err
			}

			return tx.Create(&installments).Error
		})
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data, err := newShare(c, models.DB, share)
		if err != nil {
			status = r.appendError(err, status)
			continue
		}
		r.Data = append(r.Data, ShareResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Preview installment schedule
// @Description	Returns the installment schedule a share with the submitted configuration would get, without saving anything
// @Tags			Shares
// @Accept			json
// @Produce		json
// @Success		200		{object}	SharePreviewResponse
// @Failure		400		{object}	SharePreviewResponse
// @Param			share	body		ShareEditable	true	"Share"
// @Router			/v1/shares/preview [post]
func PreviewShare(c *gin.Context) {
	var editable ShareEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SharePreviewResponse{
			Error: &e,
		})
		return
	}

	share := editable.model()
	if share.StartDate.IsZero() {
		share.StartDate = time.Now().In(time.UTC)
	}

	installments, err := models.GenerateSchedule(share)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SharePreviewResponse{
			Error: &e,
		})
		return
	}

	preview := SharePreview{
		TotalAmount:  share.AnnualAmount.Mul(decimal.NewFromInt(int64(share.Duration))),
		Installments: make([]SharePreviewInstallment, 0, len(installments)),
	}

	for _, installment := range installments {
		preview.Installments = append(preview.Installments, SharePreviewInstallment{
			InstallmentNumber: installment.InstallmentNumber,
			DueDate:           installment.DueDate,
			InstallmentAmount: installment.InstallmentAmount,
		})
	}

	c.JSON(http.StatusOK, SharePreviewResponse{Data: &preview})
}

// @Summary		Get shares
// @Description	Returns a list of shares
// @Tags			Shares
// @Produce		json
// @Success		200	{object}	ShareListResponse
// @Failure		400	{object}	ShareListResponse
// @Failure		500	{object}	ShareListResponse
// @Router			/v1/shares [get]
// @Param			shareholder		query	string	false	"Filter by shareholder ID"
// @Param			installmentType	query	string	false	"Filter by installment type"
// @Param			offset			query	uint	false	"The offset of the first Share returned. Defaults to 0."
// @Param			limit			query	int		false	"Maximum number of Shares to return. Defaults to 50."
func GetShares(c *gin.Context) {
	var filter ShareQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	// Get the fields that we are filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	filterModel := filter.model()

	q := models.DB.
		Order("datetime(start_date) ASC").
		Where(&filterModel, queryFields...)

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 Shares and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var shares []models.Share
	err := q.Find(&shares).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ShareListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ShareListResponse{
			Error: &e,
		})
		return
	}

	data := make([]Share, 0)
	for _, share := range shares {
		apiResource, err := newShare(c, models.DB, share)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), ShareListResponse{
				Error: &s,
			})
			return
		}
		data = append(data, apiResource)
	}

	c.JSON(http.StatusOK, ShareListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get share
// @Description	Returns a specific share with its installment schedule and statistics
// @Tags			Shares
// @Produce		json
// @Success		200	{object}	ShareResponse
// @Failure		400	{object}	ShareResponse
// @Failure		404	{object}	ShareResponse
// @Failure		500	{object}	ShareResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/shares/{id} [get]
func GetShare(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ShareResponse{
			Error: &s,
		})
		return
	}

	var share models.Share
	err = models.DB.First(&share, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ShareResponse{
			Error: &s,
		})
		return
	}

	data, err := newShare(c, models.DB, share)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ShareResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, ShareResponse{Data: &data})
}

// @Summary		Update share
// @Description	Update an existing share. Only values to be updated need to be specified. The installment schedule is not regenerated.
// @Tags			Shares
// @Accept			json
// @Produce		json
// @Success		200		{object}	ShareResponse
// @Failure		400		{object}	ShareResponse
// @Failure		404		{object}	ShareResponse
// @Failure		500		{object}	ShareResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			share	body		ShareEditable	true	"Share"
// @Router			/v1/shares/{id} [patch]
func UpdateShare(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ShareResponse{
			Error: &s,
		})
		return
	}

	var share models.Share
	err = models.DB.First(&share, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ShareResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, ShareEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ShareResponse{
			Error: &s,
		})
		return
	}

	var data ShareEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ShareResponse{
			Error: &s,
		})
		return
	}

	model := data.model()

	// Updates only writes the selected columns, so the derived total
	// is computed here from the merged values and selected as well.
	duration := share.Duration
	annualAmount := share.AnnualAmount
	for _, field := range updateFields {
		switch field {
		case "Duration":
			duration = model.Duration
		case "AnnualAmount":
			annualAmount = model.AnnualAmount
		}
	}
	model.TotalAmount = annualAmount.Mul(decimal.NewFromInt(int64(duration)))
	updateFields = append(updateFields, "TotalAmount")

	err = models.DB.Model(&share).Select("", updateFields...).Updates(model).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ShareResponse{
			Error: &s,
		})
		return
	}

	r, err := newShare(c, models.DB, share)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ShareResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, ShareResponse{Data: &r})
}

// @Summary		Delete share
// @Description	Deletes a share together with its installment schedule
// @Tags			Shares
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/shares/{id} [delete]
func DeleteShare(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var share models.Share
	err = models.DB.First(&share, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&share).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
