package handlers

import (
	"net/http"

	"dealerpos/internal/domain/models"
	"dealerpos/internal/http/middleware"
	"dealerpos/internal/repositories"
	"dealerpos/internal/utils"

	"github.com/gin-gonic/gin"
)

// referenceResponse is what the order form needs to fill its pickers.
type referenceResponse struct {
	Available  bool                `json:"available"`
	Staff      []string            `json:"staff"`
	Executives []string            `json:"executives"`
	Financiers []string            `json:"financiers"`
	Models     []string            `json:"models"`
	Variants   map[string][]string `json:"variants"`
	Vehicles   []models.Vehicle    `json:"vehicles"`
	Colors     map[string][]string `json:"colors"`
	Firms      map[int]models.Firm `json:"firms"`
}

// GET /api/reference
func (h Handler) GetReference(c *gin.Context) {
	ref, err := h.Reference.Get(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	resp := referenceResponse{
		Available:  true,
		Staff:      ref.Staff,
		Executives: ref.Executives,
		Financiers: ref.Financiers,
		Models:     ref.Models(),
		Variants:   map[string][]string{},
		Vehicles:   ref.Vehicles,
		Colors:     ref.Colors,
		Firms:      ref.Firms,
	}
	for _, m := range resp.Models {
		resp.Variants[m] = ref.VariantsFor(m)
	}
	c.JSON(http.StatusOK, resp)
}

// POST /api/reference/refresh (admin)
func (h Handler) RefreshReference(c *gin.Context) {
	h.Reference.Refresh()
	utils.LogEvent(middleware.GetRequestID(c), "reference", "refresh", "user="+middleware.RequestContext(c).Username)
	c.JSON(http.StatusOK, gin.H{"message": "reference data will reload on next use"})
}

type addEntryRequest struct {
	Name string `json:"name"`
}

// POST /api/reference/:kind (admin), kind is staff, executives or financiers.
func (h Handler) AddReferenceEntry(c *gin.Context) {
	var req addEntryRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	kind := repositories.ReferenceKind(c.Param("kind"))
	if err := h.Reference.AddEntry(c.Request.Context(), kind, req.Name); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"kind": kind, "name": req.Name})
}
