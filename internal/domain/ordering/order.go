package ordering

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrOrderNotFound        = errors.New("ordering: order not found")
	ErrOrderNoLineItems     = errors.New("ordering: order has no line items")
	ErrLineItemNotFound     = errors.New("ordering: line item not found")
	ErrLineItemMissingPlan  = errors.New("ordering: line item product has no plan ID")
	ErrProvisioningFailed   = errors.New("ordering: provisioning failed")
	ErrNotProvisioned       = errors.New("ordering: order has not been provisioned")
	ErrProvisioningNoQRCode = errors.New("ordering: provisioning record has no QR payload")
)

// MetadataKeyProvisioning is the order metadata field holding the merged
// provisioning records. Writes overwrite any previous value.
const MetadataKeyProvisioning = "orderData"

// Order is a finalized commerce order. Orders enter this system already
// placed and paid; carts and payments are out of scope.
type Order struct {
	ID        uuid.UUID
	Email     string
	FirstName string
	LastName  string
	Phone     string
	RegionID  string
	Items     []LineItem
	// Metadata carries arbitrary structured data attached to the order,
	// including the provisioning records after purchase.
	Metadata  map[string]any
	CreatedAt time.Time
	UpdatedAt time.Time
}

// LineItem is one purchased product on an order.
type LineItem struct {
	ID       uuid.UUID
	OrderID  uuid.UUID
	Quantity int
	Title    string
	// ProductHandle references the purchased catalog product.
	ProductHandle string
	// PlanID is the originating provider plan, copied from the product
	// metadata at purchase time.
	PlanID string
}

// Validate checks the order can be provisioned.
func (o *Order) Validate() error {
	if len(o.Items) == 0 {
		return ErrOrderNoLineItems
	}
	for _, item := range o.Items {
		if item.PlanID == "" {
			return ErrLineItemMissingPlan
		}
	}
	return nil
}

// Item returns the line item with the given ID.
func (o *Order) Item(id uuid.UUID) (*LineItem, error) {
	for i := range o.Items {
		if o.Items[i].ID == id {
			return &o.Items[i], nil
		}
	}
	return nil, ErrLineItemNotFound
}

// ProvisioningRecord is the eSIM activation data for one line item, combined
// from the provider's subscribe, order-details and QR responses.
type ProvisioningRecord struct {
	ProviderOrderID string           `json:"id"`
	PlanID          string           `json:"package_id"`
	PackageName     string           `json:"package"`
	PackageData     string           `json:"data"`
	SIMs            []ProvisionedSIM `json:"sims"`
	Price           string           `json:"price"`
	NetPrice        string           `json:"net_price"`
	Currency        string           `json:"currency"`
	Quantity        int              `json:"quantity"`
	Validity        string           `json:"validity"`
	Voice           string           `json:"voice,omitempty"`
	Status          string           `json:"status"`
	CreatedAt       time.Time        `json:"created_at"`
}

// ProvisionedSIM is one activated eSIM profile within a provisioning record.
type ProvisionedSIM struct {
	LPA    string `json:"lpa"`
	ICCID  string `json:"iccid"`
	IMSI   string `json:"imsis"`
	QRCode string `json:"qrcode"`
}

// SetProvisioning attaches the merged provisioning records to the order
// metadata, overwriting any previous value for the field.
func (o *Order) SetProvisioning(records []ProvisioningRecord) {
	if o.Metadata == nil {
		o.Metadata = make(map[string]any)
	}
	o.Metadata[MetadataKeyProvisioning] = records
	o.UpdatedAt = time.Now()
}

// ProvisioningRecords decodes the provisioning records from the order
// metadata. The metadata value may be the typed slice set by SetProvisioning
// or the generic JSON shape produced by a storage round trip; both decode the
// same way.
func (o *Order) ProvisioningRecords() ([]ProvisioningRecord, error) {
	raw, ok := o.Metadata[MetadataKeyProvisioning]
	if !ok {
		return nil, ErrNotProvisioned
	}
	if records, ok := raw.([]ProvisioningRecord); ok {
		return records, nil
	}

	data, err := json.Marshal(raw)
	if err != nil {
		return nil, ErrNotProvisioned
	}
	var records []ProvisioningRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, ErrNotProvisioned
	}
	return records, nil
}
