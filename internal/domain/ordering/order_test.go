package ordering

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrder_Validate(t *testing.T) {
	order := &Order{ID: uuid.New()}
	assert.ErrorIs(t, order.Validate(), ErrOrderNoLineItems)

	order.Items = []LineItem{{ID: uuid.New(), Quantity: 1}}
	assert.ErrorIs(t, order.Validate(), ErrLineItemMissingPlan)

	order.Items[0].PlanID = "P1"
	assert.NoError(t, order.Validate())
}

func TestOrder_Item(t *testing.T) {
	itemID := uuid.New()
	order := &Order{Items: []LineItem{{ID: itemID, PlanID: "P1"}}}

	item, err := order.Item(itemID)
	require.NoError(t, err)
	assert.Equal(t, "P1", item.PlanID)

	_, err = order.Item(uuid.New())
	assert.ErrorIs(t, err, ErrLineItemNotFound)
}

func TestOrder_SetProvisioning(t *testing.T) {
	order := &Order{ID: uuid.New()}
	order.Metadata = map[string]any{"note": "gift"}

	first := []ProvisioningRecord{{ProviderOrderID: "TS-1", PlanID: "P1"}}
	order.SetProvisioning(first)

	second := []ProvisioningRecord{
		{ProviderOrderID: "TS-2", PlanID: "P1"},
		{ProviderOrderID: "TS-3", PlanID: "P2"},
	}
	order.SetProvisioning(second)

	// The provisioning field is overwritten, other metadata is preserved.
	assert.Equal(t, "gift", order.Metadata["note"])
	records, ok := order.Metadata[MetadataKeyProvisioning].([]ProvisioningRecord)
	require.True(t, ok)
	require.Len(t, records, 2)
	assert.Equal(t, "TS-2", records[0].ProviderOrderID)
}
