package ordering

import (
	"context"
	"fmt"

	"github.com/esimhub/backend/internal/domain/ordering"
	"github.com/esimhub/backend/internal/domain/provider"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// subscribeAddress and subscribeCountry are the fixed purchaser fields the
// provider requires for digital delivery.
const (
	subscribeAddress = "digital delivery"
	subscribeCountry = "US"
)

// ProvisioningService provisions eSIM subscriptions for finalized orders.
// Line items are provisioned concurrently; each one walks the provider's
// three-call sequence (subscribe, order details, QR codes). The metadata
// write is all-or-nothing: if any item fails, nothing is persisted.
type ProvisioningService struct {
	orders ordering.OrderRepository
	client provider.Client
	logger *zap.Logger
}

// NewProvisioningService creates a new ProvisioningService
func NewProvisioningService(orders ordering.OrderRepository, client provider.Client, logger *zap.Logger) *ProvisioningService {
	return &ProvisioningService{orders: orders, client: client, logger: logger}
}

// GetOrder loads an order with its line items and metadata
func (s *ProvisioningService) GetOrder(ctx context.Context, orderID uuid.UUID) (*ordering.Order, error) {
	return s.orders.FindByID(ctx, orderID)
}

// Provision provisions every line item of the order and attaches the merged
// records under the order metadata.
func (s *ProvisioningService) Provision(ctx context.Context, orderID uuid.UUID) (*ordering.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}

	records := make([]ordering.ProvisioningRecord, len(order.Items))

	g, gctx := errgroup.WithContext(ctx)
	for i := range order.Items {
		g.Go(func() error {
			record, err := s.provisionItem(gctx, order, &order.Items[i])
			if err != nil {
				return fmt.Errorf("line item %s: %w", order.Items[i].ID, err)
			}
			records[i] = *record
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.Error("provisioning failed, discarding all results",
			zap.String("order_id", orderID.String()),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %v", ordering.ErrProvisioningFailed, err)
	}

	order.SetProvisioning(records)
	if err := s.orders.UpdateMetadata(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("order provisioned",
		zap.String("order_id", orderID.String()),
		zap.Int("line_items", len(records)),
	)
	return order, nil
}

// OrderCreated implements ordering.OrderCreatedHook so the commerce flow can
// trigger provisioning right after an order is finalized.
func (s *ProvisioningService) OrderCreated(ctx context.Context, orderID uuid.UUID) error {
	_, err := s.Provision(ctx, orderID)
	return err
}

// provisionItem walks the three provider calls for one line item and merges
// the responses into a single record.
func (s *ProvisioningService) provisionItem(ctx context.Context, order *ordering.Order, item *ordering.LineItem) (*ordering.ProvisioningRecord, error) {
	sub, err := s.client.Subscribe(ctx, provider.SubscribeRequest{
		PlanID:      item.PlanID,
		Quantity:    item.Quantity,
		FirstName:   order.FirstName,
		LastName:    order.LastName,
		Address:     subscribeAddress,
		Country:     subscribeCountry,
		Email:       order.Email,
		PhoneNumber: order.Phone,
	})
	if err != nil {
		return nil, err
	}

	details, err := s.client.OrderDetails(ctx, sub.OrderID)
	if err != nil {
		return nil, err
	}

	qrCodes, err := s.client.QRCodes(ctx, sub.OrderID)
	if err != nil {
		return nil, err
	}

	sims := make([]ordering.ProvisionedSIM, len(sub.SIMs))
	for i, sim := range sub.SIMs {
		qr := ""
		if i < len(qrCodes) {
			qr = qrCodes[i]
		}
		sims[i] = ordering.ProvisionedSIM{
			LPA:    sim.LPAServer,
			ICCID:  sim.ICCID,
			IMSI:   sim.IMSI,
			QRCode: qr,
		}
	}

	return &ordering.ProvisioningRecord{
		ProviderOrderID: sub.OrderID,
		PlanID:          item.PlanID,
		PackageName:     details.PackageName,
		PackageData:     details.PackageData,
		SIMs:            sims,
		Price:           details.Amount,
		NetPrice:        details.Amount,
		Currency:        details.Currency,
		Quantity:        details.Quantity,
		Validity:        details.Validity,
		Voice:           details.Voice,
		Status:          sub.Status,
		CreatedAt:       order.CreatedAt,
	}, nil
}

// Ensure ProvisioningService implements the order-created hook
var _ ordering.OrderCreatedHook = (*ProvisioningService)(nil)
