package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	appusage "github.com/esimhub/backend/internal/application/usage"
	"github.com/esimhub/backend/internal/domain/provider"
	"github.com/esimhub/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mapCache struct {
	entries map[string]*provider.UsageReport
}

func (c *mapCache) Get(iccid string) (*provider.UsageReport, bool) {
	report, ok := c.entries[iccid]
	return report, ok
}

func (c *mapCache) Set(iccid string, report *provider.UsageReport) {
	c.entries[iccid] = report
}

func newUsageRig(client *MockProviderClient) *gin.Engine {
	svc := appusage.NewService(client, &mapCache{entries: make(map[string]*provider.UsageReport)}, zap.NewNop())
	engine := gin.New()
	NewUsageHandler(svc).RegisterRoutes(engine.Group("/api/v1"))
	return engine
}

func TestUsageHandler_GetUsage(t *testing.T) {
	t.Run("returns usage snapshot", func(t *testing.T) {
		client := new(MockProviderClient)
		client.On("Usage", mock.Anything, "8944500").Return(&provider.UsageReport{
			ICCID:  "8944500",
			Used:   1024,
			Total:  10240,
			Status: "active",
		}, nil)
		engine := newUsageRig(client)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/store/usage?iccid=8944500", nil)
		engine.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		resp := decodeResponse(t, w)
		data := resp.Data.(map[string]any)
		assert.Equal(t, "8944500", data["iccid"])
		assert.Equal(t, float64(1024), data["data_used"])
		assert.Equal(t, float64(10240), data["data_total"])
	})

	t.Run("missing iccid yields bad request", func(t *testing.T) {
		engine := newUsageRig(new(MockProviderClient))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/store/usage", nil)
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeResponse(t, w)
		assert.Equal(t, dto.ErrCodeBadRequest, resp.Error.Code)
	})

	t.Run("missing session token maps to bad gateway", func(t *testing.T) {
		client := new(MockProviderClient)
		client.On("Usage", mock.Anything, "8944500").Return(nil, provider.ErrTokenUnavailable)
		engine := newUsageRig(client)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/store/usage?iccid=8944500", nil)
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadGateway, w.Code)
	})
}
