package handler

import (
	appusage "github.com/esimhub/backend/internal/application/usage"
	"github.com/esimhub/backend/internal/domain/provider"
	"github.com/gin-gonic/gin"
)

// UsageHandler handles eSIM data-usage lookups.
type UsageHandler struct {
	BaseHandler
	usage *appusage.Service
}

// NewUsageHandler creates a new UsageHandler
func NewUsageHandler(usage *appusage.Service) *UsageHandler {
	return &UsageHandler{usage: usage}
}

// RegisterRoutes registers the usage routes
func (h *UsageHandler) RegisterRoutes(rg *gin.RouterGroup) {
	store := rg.Group("/store")
	{
		store.GET("/usage", h.GetUsage)
	}
}

// UsageResponse is the consumption snapshot for one ICCID.
type UsageResponse struct {
	ICCID     string `json:"iccid"`
	DataUsed  int64  `json:"data_used"`
	DataTotal int64  `json:"data_total"`
	Status    string `json:"status"`
	ExpiresAt string `json:"expires_at,omitempty"`
}

func toUsageResponse(report *provider.UsageReport) UsageResponse {
	return UsageResponse{
		ICCID:     report.ICCID,
		DataUsed:  report.Used,
		DataTotal: report.Total,
		Status:    report.Status,
		ExpiresAt: report.ExpiresAt,
	}
}

// GetUsage returns the usage snapshot for the ICCID given in the query.
func (h *UsageHandler) GetUsage(c *gin.Context) {
	iccid := c.Query("iccid")
	if iccid == "" {
		h.BadRequest(c, "iccid query parameter is required")
		return
	}

	report, err := h.usage.Usage(c.Request.Context(), iccid)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, toUsageResponse(report))
}
