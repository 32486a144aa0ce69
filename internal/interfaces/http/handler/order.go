package handler

import (
	"net/http"
	"time"

	appordering "github.com/esimhub/backend/internal/application/ordering"
	"github.com/esimhub/backend/internal/domain/ordering"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"
)

const qrImageSize = 512

// OrderHandler handles order lookup, provisioning and QR delivery.
type OrderHandler struct {
	BaseHandler
	provisioning *appordering.ProvisioningService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(provisioning *appordering.ProvisioningService) *OrderHandler {
	return &OrderHandler{provisioning: provisioning}
}

// RegisterRoutes registers the order routes
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	{
		orders.GET("/:id", h.GetOrder)
		orders.POST("/:id/provision", h.Provision)
		orders.GET("/:id/items/:item_id/qrcode.png", h.QRCodeImage)
	}
}

// OrderResponse is one order with its provisioning state.
type OrderResponse struct {
	ID          string                        `json:"id"`
	Email       string                        `json:"email"`
	FirstName   string                        `json:"first_name"`
	LastName    string                        `json:"last_name"`
	Phone       string                        `json:"phone,omitempty"`
	RegionID    string                        `json:"region_id,omitempty"`
	Items       []LineItemResponse            `json:"items"`
	Provisioned bool                          `json:"provisioned"`
	OrderData   []ordering.ProvisioningRecord `json:"order_data,omitempty"`
	CreatedAt   time.Time                     `json:"created_at"`
	UpdatedAt   time.Time                     `json:"updated_at"`
}

// LineItemResponse is one purchased item on an order.
type LineItemResponse struct {
	ID            string `json:"id"`
	Quantity      int    `json:"quantity"`
	Title         string `json:"title"`
	ProductHandle string `json:"product_handle,omitempty"`
	PlanID        string `json:"plan_id"`
}

func toOrderResponse(order *ordering.Order) OrderResponse {
	items := make([]LineItemResponse, len(order.Items))
	for i, item := range order.Items {
		items[i] = LineItemResponse{
			ID:            item.ID.String(),
			Quantity:      item.Quantity,
			Title:         item.Title,
			ProductHandle: item.ProductHandle,
			PlanID:        item.PlanID,
		}
	}

	resp := OrderResponse{
		ID:        order.ID.String(),
		Email:     order.Email,
		FirstName: order.FirstName,
		LastName:  order.LastName,
		Phone:     order.Phone,
		RegionID:  order.RegionID,
		Items:     items,
		CreatedAt: order.CreatedAt,
		UpdatedAt: order.UpdatedAt,
	}
	if records, err := order.ProvisioningRecords(); err == nil {
		resp.Provisioned = true
		resp.OrderData = records
	}
	return resp
}

// GetOrder returns one order with its provisioning records.
func (h *OrderHandler) GetOrder(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "invalid order ID")
		return
	}

	order, err := h.provisioning.GetOrder(c.Request.Context(), orderID)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, toOrderResponse(order))
}

// Provision runs post-purchase provisioning for every line item on the order
// and returns the updated order.
func (h *OrderHandler) Provision(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "invalid order ID")
		return
	}

	order, err := h.provisioning.Provision(c.Request.Context(), orderID)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, toOrderResponse(order))
}

// QRCodeImage renders the activation QR payload of one line item as a PNG.
func (h *OrderHandler) QRCodeImage(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "invalid order ID")
		return
	}
	itemID, err := uuid.Parse(c.Param("item_id"))
	if err != nil {
		h.BadRequest(c, "invalid line item ID")
		return
	}

	order, err := h.provisioning.GetOrder(c.Request.Context(), orderID)
	if err != nil {
		h.DomainError(c, err)
		return
	}

	payload, err := activationPayload(order, itemID)
	if err != nil {
		h.DomainError(c, err)
		return
	}

	png, err := qrcode.Encode(payload, qrcode.Medium, qrImageSize)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

// activationPayload resolves the QR payload for one line item. Records are
// stored in line-item order; the item's position selects its record when the
// plans agree, otherwise the record is matched by plan so metadata written
// against an earlier item ordering still resolves to the right plan.
func activationPayload(order *ordering.Order, itemID uuid.UUID) (string, error) {
	records, err := order.ProvisioningRecords()
	if err != nil {
		return "", err
	}

	idx := -1
	for i := range order.Items {
		if order.Items[i].ID == itemID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return "", ordering.ErrLineItemNotFound
	}

	record := recordForItem(records, idx, order.Items[idx].PlanID)
	if record == nil {
		return "", ordering.ErrNotProvisioned
	}

	for _, sim := range record.SIMs {
		if sim.QRCode != "" {
			return sim.QRCode, nil
		}
	}
	return "", ordering.ErrProvisioningNoQRCode
}

func recordForItem(records []ordering.ProvisioningRecord, idx int, planID string) *ordering.ProvisioningRecord {
	if idx < len(records) && records[idx].PlanID == planID {
		return &records[idx]
	}
	for i := range records {
		if records[i].PlanID == planID {
			return &records[i]
		}
	}
	return nil
}
