package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	defaultRecordLimit = 50
	maxRecordLimit     = 5000
)

// GET /api/sales-records?limit=
func (h Handler) ListSalesRecords(c *gin.Context) {
	limit := queryLimit(c, defaultRecordLimit, maxRecordLimit)
	records, err := h.Records.ListRecent(c.Request.Context(), limit)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": records, "count": len(records)})
}

// GET /api/sales-records/export?limit= (admin)
func (h Handler) ExportSalesRecords(c *gin.Context) {
	limit := queryLimit(c, maxRecordLimit, maxRecordLimit)
	data, filename, err := h.Export.Export(c.Request.Context(), limit)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
