package models

import (
	"encoding/json"
	"time"

	"github.com/esimhub/backend/internal/domain/ordering"
	"github.com/google/uuid"
)

// OrderModel is the persistence model for the Order domain entity.
type OrderModel struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key"`
	Email        string          `gorm:"type:varchar(255);not null;index"`
	FirstName    string          `gorm:"type:varchar(128)"`
	LastName     string          `gorm:"type:varchar(128)"`
	Phone        string          `gorm:"type:varchar(64)"`
	RegionID     string          `gorm:"type:varchar(64);index"`
	MetadataJSON string          `gorm:"type:jsonb;column:metadata"`
	Items        []LineItemModel `gorm:"foreignKey:OrderID"`
	CreatedAt    time.Time       `gorm:"not null"`
	UpdatedAt    time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// LineItemModel is the persistence model for the LineItem domain entity.
type LineItemModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key"`
	OrderID       uuid.UUID `gorm:"type:uuid;not null;index"`
	Quantity      int       `gorm:"not null;default:1"`
	Title         string    `gorm:"type:varchar(255)"`
	ProductHandle string    `gorm:"type:varchar(192)"`
	PlanID        string    `gorm:"type:varchar(128)"`
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (LineItemModel) TableName() string {
	return "line_items"
}

// ToDomain converts the persistence model to a domain Order entity.
func (m *OrderModel) ToDomain() *ordering.Order {
	order := &ordering.Order{
		ID:        m.ID,
		Email:     m.Email,
		FirstName: m.FirstName,
		LastName:  m.LastName,
		Phone:     m.Phone,
		RegionID:  m.RegionID,
		Metadata:  map[string]any{},
		Items:     make([]ordering.LineItem, len(m.Items)),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}

	if m.MetadataJSON != "" {
		var metadata map[string]any
		if err := json.Unmarshal([]byte(m.MetadataJSON), &metadata); err == nil {
			order.Metadata = metadata
		}
	}

	for i, item := range m.Items {
		order.Items[i] = ordering.LineItem{
			ID:            item.ID,
			OrderID:       item.OrderID,
			Quantity:      item.Quantity,
			Title:         item.Title,
			ProductHandle: item.ProductHandle,
			PlanID:        item.PlanID,
		}
	}

	return order
}

// OrderModelFromDomain creates a persistence model from a domain Order.
func OrderModelFromDomain(o *ordering.Order) *OrderModel {
	m := &OrderModel{
		ID:        o.ID,
		Email:     o.Email,
		FirstName: o.FirstName,
		LastName:  o.LastName,
		Phone:     o.Phone,
		RegionID:  o.RegionID,
		Items:     make([]LineItemModel, len(o.Items)),
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}

	m.MetadataJSON = EncodeMetadata(o.Metadata)

	for i, item := range o.Items {
		m.Items[i] = LineItemModel{
			ID:            item.ID,
			OrderID:       item.OrderID,
			Quantity:      item.Quantity,
			Title:         item.Title,
			ProductHandle: item.ProductHandle,
			PlanID:        item.PlanID,
		}
	}

	return m
}

// EncodeMetadata serializes order metadata to its JSONB column value.
func EncodeMetadata(metadata map[string]any) string {
	if len(metadata) == 0 {
		return "{}"
	}
	b, err := json.Marshal(metadata)
	if err != nil {
		return "{}"
	}
	return string(b)
}
