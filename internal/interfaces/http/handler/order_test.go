package handler

import (
	"bytes"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	appordering "github.com/esimhub/backend/internal/application/ordering"
	"github.com/esimhub/backend/internal/domain/ordering"
	"github.com/esimhub/backend/internal/domain/provider"
	"github.com/esimhub/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newOrderRig(orders *MockOrderRepository, client *MockProviderClient) *gin.Engine {
	svc := appordering.NewProvisioningService(orders, client, zap.NewNop())
	engine := gin.New()
	NewOrderHandler(svc).RegisterRoutes(engine.Group("/api/v1"))
	return engine
}

func provisionedOrder() *ordering.Order {
	order := &ordering.Order{
		ID:        uuid.New(),
		Email:     "buyer@example.com",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Items: []ordering.LineItem{
			{ID: uuid.New(), Quantity: 1, Title: "Europe 10GB", PlanID: "P1"},
		},
		CreatedAt: time.Now().Add(-time.Hour),
	}
	order.SetProvisioning([]ordering.ProvisioningRecord{{
		ProviderOrderID: "ORD-1",
		PlanID:          "P1",
		SIMs: []ordering.ProvisionedSIM{
			{ICCID: "8944500", IMSI: "22801", LPA: "LPA:1$rsp$x", QRCode: "LPA:1$rsp.example.com$TOKEN"},
		},
		Status: "active",
	}})
	return order
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestOrderHandler_GetOrder(t *testing.T) {
	t.Run("returns order with provisioning records", func(t *testing.T) {
		orders := new(MockOrderRepository)
		order := provisionedOrder()
		orders.On("FindByID", mock.Anything, order.ID).Return(order, nil)
		engine := newOrderRig(orders, new(MockProviderClient))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/"+order.ID.String(), nil)
		engine.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		resp := decodeResponse(t, w)
		require.True(t, resp.Success)

		data := resp.Data.(map[string]any)
		assert.Equal(t, order.ID.String(), data["id"])
		assert.Equal(t, true, data["provisioned"])
		records := data["order_data"].([]any)
		require.Len(t, records, 1)
		assert.Equal(t, "ORD-1", records[0].(map[string]any)["id"])
	})

	t.Run("invalid ID yields bad request", func(t *testing.T) {
		engine := newOrderRig(new(MockOrderRepository), new(MockProviderClient))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/not-a-uuid", nil)
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeResponse(t, w)
		assert.Equal(t, dto.ErrCodeBadRequest, resp.Error.Code)
	})

	t.Run("unknown order yields not found", func(t *testing.T) {
		orders := new(MockOrderRepository)
		id := uuid.New()
		orders.On("FindByID", mock.Anything, id).Return(nil, ordering.ErrOrderNotFound)
		engine := newOrderRig(orders, new(MockProviderClient))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/"+id.String(), nil)
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		resp := decodeResponse(t, w)
		assert.Equal(t, dto.ErrCodeNotFound, resp.Error.Code)
	})
}

func TestOrderHandler_Provision(t *testing.T) {
	t.Run("provisioning failure maps to bad gateway", func(t *testing.T) {
		orders := new(MockOrderRepository)
		client := new(MockProviderClient)
		order := &ordering.Order{
			ID:    uuid.New(),
			Email: "buyer@example.com",
			Items: []ordering.LineItem{{ID: uuid.New(), Quantity: 1, PlanID: "P1"}},
		}
		orders.On("FindByID", mock.Anything, order.ID).Return(order, nil)
		client.On("Subscribe", mock.Anything, mock.Anything).Return(nil, provider.ErrRequestFailed)
		engine := newOrderRig(orders, client)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/orders/"+order.ID.String()+"/provision", nil)
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadGateway, w.Code)
		resp := decodeResponse(t, w)
		assert.Equal(t, dto.ErrCodeUpstreamFailed, resp.Error.Code)
		orders.AssertNotCalled(t, "UpdateMetadata", mock.Anything, mock.Anything)
	})

	t.Run("order without line items maps to unprocessable", func(t *testing.T) {
		orders := new(MockOrderRepository)
		order := &ordering.Order{ID: uuid.New(), Email: "buyer@example.com"}
		orders.On("FindByID", mock.Anything, order.ID).Return(order, nil)
		engine := newOrderRig(orders, new(MockProviderClient))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/orders/"+order.ID.String()+"/provision", nil)
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestOrderHandler_QRCodeImage(t *testing.T) {
	t.Run("renders a decodable PNG", func(t *testing.T) {
		orders := new(MockOrderRepository)
		order := provisionedOrder()
		orders.On("FindByID", mock.Anything, order.ID).Return(order, nil)
		engine := newOrderRig(orders, new(MockProviderClient))

		w := httptest.NewRecorder()
		url := "/api/v1/orders/" + order.ID.String() + "/items/" + order.Items[0].ID.String() + "/qrcode.png"
		req := httptest.NewRequest(http.MethodGet, url, nil)
		engine.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
		img, err := png.Decode(bytes.NewReader(w.Body.Bytes()))
		require.NoError(t, err)
		assert.Equal(t, qrImageSize, img.Bounds().Dx())
	})

	t.Run("unprovisioned order yields not found", func(t *testing.T) {
		orders := new(MockOrderRepository)
		order := provisionedOrder()
		delete(order.Metadata, ordering.MetadataKeyProvisioning)
		orders.On("FindByID", mock.Anything, order.ID).Return(order, nil)
		engine := newOrderRig(orders, new(MockProviderClient))

		w := httptest.NewRecorder()
		url := "/api/v1/orders/" + order.ID.String() + "/items/" + order.Items[0].ID.String() + "/qrcode.png"
		req := httptest.NewRequest(http.MethodGet, url, nil)
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("reordered items still resolve their own record", func(t *testing.T) {
		first := ordering.LineItem{ID: uuid.New(), Quantity: 1, Title: "Europe 10GB", PlanID: "P1"}
		second := ordering.LineItem{ID: uuid.New(), Quantity: 1, Title: "Asia 5GB", PlanID: "P2"}
		order := &ordering.Order{
			ID:    uuid.New(),
			Email: "buyer@example.com",
			Items: []ordering.LineItem{first, second},
		}
		order.SetProvisioning([]ordering.ProvisioningRecord{
			{ProviderOrderID: "ORD-1", PlanID: "P1", SIMs: []ordering.ProvisionedSIM{{QRCode: "LPA:1$rsp$P1"}}},
			{ProviderOrderID: "ORD-2", PlanID: "P2", SIMs: []ordering.ProvisionedSIM{{QRCode: "LPA:1$rsp$P2"}}},
		})
		// A later load can hand the items back in a different row order.
		order.Items = []ordering.LineItem{second, first}

		payload, err := activationPayload(order, second.ID)
		require.NoError(t, err)
		assert.Equal(t, "LPA:1$rsp$P2", payload)

		payload, err = activationPayload(order, first.ID)
		require.NoError(t, err)
		assert.Equal(t, "LPA:1$rsp$P1", payload)
	})

	t.Run("unknown line item yields not found", func(t *testing.T) {
		orders := new(MockOrderRepository)
		order := provisionedOrder()
		orders.On("FindByID", mock.Anything, order.ID).Return(order, nil)
		engine := newOrderRig(orders, new(MockProviderClient))

		w := httptest.NewRecorder()
		url := "/api/v1/orders/" + order.ID.String() + "/items/" + uuid.New().String() + "/qrcode.png"
		req := httptest.NewRequest(http.MethodGet, url, nil)
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
