package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shareledger/backend/internal/httputil"
	"github.com/shareledger/backend/internal/models"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// RegisterInstallmentRoutes registers the routes for installments with
// the RouterGroup that is passed.
//
// Installments are generated together with their share and only change
// through payments, so there are no create, update or delete routes.
func RegisterInstallmentRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsInstallmentList)
		r.GET("", GetInstallments)
	}

	// Installment with ID
	{
		r.OPTIONS("/:id", OptionsInstallmentDetail)
		r.GET("/:id", GetInstallment)
	}

	// Payments of the installment
	{
		r.OPTIONS("/:id/payments", OptionsInstallmentPayments)
		r.GET("/:id/payments", GetInstallmentPayments)
		r.POST("/:id/payments", CreateInstallmentPayment)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Installments
// @Success		204
// @Router			/v1/installments [options]
func OptionsInstallmentList(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Installments
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/installments/{id} [options]
func OptionsInstallmentDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Installment{}, httputil.OptionsGet)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Installments
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/installments/{id}/payments [options]
func OptionsInstallmentPayments(c *gin.Context) {
	resourceOptionsDetail(c, models.Installment{}, httputil.OptionsGetPost)
}

// @Summary		Get installments
// @Description	Returns a list of installments
// @Tags			Installments
// @Produce		json
// @Success		200	{object}	InstallmentListResponse
// @Failure		400	{object}	InstallmentListResponse
// @Failure		500	{object}	InstallmentListResponse
// @Router			/v1/installments [get]
// @Param			share		query	string	false	"Filter by share ID"
// @Param			status		query	string	false	"Filter by payment status"
// @Param			fromDate	query	string	false	"Only installments due on or after this date (YYYY-MM-DD)"
// @Param			untilDate	query	string	false	"Only installments due on or before this date (YYYY-MM-DD)"
// @Param			offset		query	uint	false	"The offset of the first Installment returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of Installments to return. Defaults to 50."
func GetInstallments(c *gin.Context) {
	var filter InstallmentQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	// Get the fields that we are filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	filterModel := filter.model()

	q := models.DB.
		Order("datetime(due_date) ASC, installment_number ASC").
		Where(&filterModel, queryFields...)

	if !filter.FromDate.IsZero() {
		q = q.Where("datetime(due_date) >= datetime(?)", filter.FromDate)
	}

	if !filter.UntilDate.IsZero() {
		q = q.Where("datetime(due_date) <= datetime(?)", filter.UntilDate)
	}

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 Installments and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var installments []models.Installment
	err := q.Find(&installments).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), InstallmentListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), InstallmentListResponse{
			Error: &e,
		})
		return
	}

	data := make([]Installment, 0)
	for _, installment := range installments {
		data = append(data, newInstallment(c, installment))
	}

	c.JSON(http.StatusOK, InstallmentListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get installment
// @Description	Returns a specific installment
// @Tags			Installments
// @Produce		json
// @Success		200	{object}	InstallmentResponse
// @Failure		400	{object}	InstallmentResponse
// @Failure		404	{object}	InstallmentResponse
// @Failure		500	{object}	InstallmentResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/installments/{id} [get]
func GetInstallment(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), InstallmentResponse{
			Error: &s,
		})
		return
	}

	var installment models.Installment
	err = models.DB.First(&installment, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), InstallmentResponse{
			Error: &s,
		})
		return
	}

	data := newInstallment(c, installment)
	c.JSON(http.StatusOK, InstallmentResponse{Data: &data})
}

// @Summary		Get payments of installment
// @Description	Returns the payments recorded against a specific installment
// @Tags			Installments
// @Produce		json
// @Success		200	{object}	PaymentListResponse
// @Failure		400	{object}	PaymentListResponse
// @Failure		404	{object}	PaymentListResponse
// @Failure		500	{object}	PaymentListResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/installments/{id}/payments [get]
func GetInstallmentPayments(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PaymentListResponse{
			Error: &s,
		})
		return
	}

	var installment models.Installment
	err = models.DB.First(&installment, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PaymentListResponse{
			Error: &s,
		})
		return
	}

	payments, err := installment.Payments(models.DB)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PaymentListResponse{
			Error: &s,
		})
		return
	}

	data := make([]Payment, 0, len(payments))
	for _, payment := range payments {
		data = append(data, newPayment(c, payment))
	}

	c.JSON(http.StatusOK, PaymentListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  int64(len(data)),
			Offset: 0,
			Limit:  -1,
		},
	})
}

// @Summary		Record payment
// @Description	Records a payment against an installment. The payment must be positive and must not exceed the current balance of the installment.
// @Tags			Installments
// @Accept			json
// @Produce		json
// @Success		201		{object}	InstallmentPaymentResponse
// @Failure		400		{object}	InstallmentPaymentResponse
// @Failure		404		{object}	InstallmentPaymentResponse
// @Failure		500		{object}	InstallmentPaymentResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			payment	body		PaymentEditable	true	"Payment"
// @Router			/v1/installments/{id}/payments [post]
func CreateInstallmentPayment(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), InstallmentPaymentResponse{
			Error: &s,
		})
		return
	}

	var editable PaymentEditable
	err = httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), InstallmentPaymentResponse{
			Error: &s,
		})
		return
	}

	var installment models.Installment
	err = models.DB.First(&installment, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), InstallmentPaymentResponse{
			Error: &s,
		})
		return
	}

	// The installment update and the payment record are committed
	// together. A rejected payment leaves both untouched.
	var payment models.Payment
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		err := installment.ApplyPayment(editable.Amount, editable.PaymentDate)
		if err != nil {
			return err
		}

		err = tx.Save(&installment).Error
		if err != nil {
			return err
		}

		payment = models.Payment{
			InstallmentID: installment.ID,
			Amount:        editable.Amount,
			PaymentDate:   *installment.PaidDate,
		}
		return tx.Create(&payment).Error
	})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), InstallmentPaymentResponse{
			Error: &s,
		})
		return
	}

	paymentData := newPayment(c, payment)
	installmentData := newInstallment(c, installment)
	c.JSON(http.StatusCreated, InstallmentPaymentResponse{
		Data: &InstallmentPayment{
			Payment:     paymentData,
			Installment: installmentData,
		},
	})
}
