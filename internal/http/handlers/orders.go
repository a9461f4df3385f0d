package handlers

import (
	"net/http"

	"dealerpos/internal/http/middleware"
	"dealerpos/internal/services"
	"dealerpos/internal/utils"

	"github.com/gin-gonic/gin"
)

// POST /api/orders/quote
func (h Handler) QuoteOrder(c *gin.Context) {
	var req services.OrderRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	q, err := h.Orders.Quote(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, q)
}

// POST /api/orders returns the challan PDF inline.
func (h Handler) SubmitOrder(c *gin.Context) {
	var req services.OrderRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	res, err := h.Orders.Submit(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	caller := middleware.RequestContext(c)
	utils.LogEvent(middleware.GetRequestID(c), "orders", "issued", "dc="+res.Order.DCNumber+" user="+caller.Username)

	c.Header("X-DC-Number", res.Order.DCNumber)
	if res.LedgerWarning != "" {
		c.Header("X-Ledger-Warning", res.LedgerWarning)
	}
	c.Header("Content-Disposition", `inline; filename="`+res.Filename+`"`)
	c.Data(http.StatusCreated, "application/pdf", res.PDF)
}
