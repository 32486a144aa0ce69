package esim

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/esimhub/backend/internal/domain/provider"
)

// maxResponseSize is the maximum allowed response size from the TSIM API (10MB)
const maxResponseSize = 10 * 1024 * 1024

// TSIMClient implements provider.Client against the TSIM HTTP API.
// v1 calls carry the HMAC-signed header set; v2 calls carry a bearer session
// token obtained from the shared token store.
type TSIMClient struct {
	config     *TSIMConfig
	tokens     provider.SessionTokenStore
	httpClient *http.Client
}

// NewTSIMClient creates a new TSIM client with the given configuration
func NewTSIMClient(config *TSIMConfig, tokens provider.SessionTokenStore) (*TSIMClient, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &TSIMClient{
		config: config,
		tokens: tokens,
		httpClient: &http.Client{
			Timeout: time.Duration(config.TimeoutSeconds) * time.Second,
		},
	}, nil
}

// FetchCatalog returns the full plan catalog
func (c *TSIMClient) FetchCatalog(ctx context.Context) ([]provider.Package, error) {
	body, err := c.doSigned(ctx, http.MethodGet, c.config.BaseURL+"/tsim/v1/esimDataplanList", nil, nil)
	if err != nil {
		return nil, err
	}

	var resp tsimCatalogResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: failed to parse catalog response: %v", provider.ErrInvalidResponse, err)
	}
	if resp.Result == nil {
		return nil, fmt.Errorf("%w: catalog response missing result", provider.ErrInvalidResponse)
	}
	return *resp.Result, nil
}

// Subscribe creates an eSIM subscription for one line item
func (c *TSIMClient) Subscribe(ctx context.Context, req provider.SubscribeRequest) (*provider.Subscription, error) {
	payload := tsimSubscribeRequest{
		PackageID:   req.PlanID,
		Quantity:    req.Quantity,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Address:     req.Address,
		Country:     req.Country,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
	}

	body, err := c.doSigned(ctx, http.MethodPost, c.config.BaseURL+"/tsim/v1/esimSubscribe", nil, payload)
	if err != nil {
		return nil, err
	}

	var resp tsimSubscribeResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: failed to parse subscribe response: %v", provider.ErrInvalidResponse, err)
	}
	if resp.OrderID == "" {
		return nil, fmt.Errorf("%w: subscribe response missing order_id", provider.ErrInvalidResponse)
	}

	sub := &provider.Subscription{
		OrderID: resp.OrderID,
		Status:  resp.Status,
		SIMs:    make([]provider.SIM, len(resp.SIMs)),
	}
	for i, sim := range resp.SIMs {
		sub.SIMs[i] = provider.SIM{
			ICCID:     sim.ICCID,
			IMSI:      sim.IMSINumber,
			LPAServer: sim.LPAServer,
		}
	}
	return sub, nil
}

// OrderDetails retrieves plan metadata for a provider order
func (c *TSIMClient) OrderDetails(ctx context.Context, orderID string) (*provider.OrderDetails, error) {
	query := url.Values{}
	query.Set("order_id", orderID)

	body, err := c.doSigned(ctx, http.MethodGet, c.config.BaseURL+"/tsim/v1/esimOrderDetails", query, nil)
	if err != nil {
		return nil, err
	}

	var resp tsimOrderDetailsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: failed to parse order details response: %v", provider.ErrInvalidResponse, err)
	}
	if resp.Data == nil {
		return nil, fmt.Errorf("%w: order details response missing data", provider.ErrInvalidResponse)
	}

	return &provider.OrderDetails{
		PackageName: resp.Data.PackageName,
		PackageData: resp.Data.PackageData,
		Amount:      resp.Data.Amount,
		Currency:    resp.Data.Currency,
		Quantity:    resp.Data.Quantity,
		Validity:    resp.Data.Validity,
		Voice:       resp.Data.Voice,
	}, nil
}

// QRCodes retrieves the activation QR payloads for a provider order
func (c *TSIMClient) QRCodes(ctx context.Context, orderID string) ([]string, error) {
	query := url.Values{}
	query.Set("order_id", orderID)

	body, err := c.doSigned(ctx, http.MethodGet, c.config.BaseURL+"/tsim/v1/esimQrCode", query, nil)
	if err != nil {
		return nil, err
	}

	var resp tsimQRCodeResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: failed to parse QR code response: %v", provider.ErrInvalidResponse, err)
	}
	if len(resp.QRCodes) == 0 {
		return nil, fmt.Errorf("%w: QR code response has no codes", provider.ErrInvalidResponse)
	}
	return resp.QRCodes, nil
}

// Usage retrieves the usage snapshot for an ICCID via the v2 API
func (c *TSIMClient) Usage(ctx context.Context, iccid string) (*provider.UsageReport, error) {
	token, err := c.tokens.Get(ctx)
	if err != nil {
		return nil, err
	}

	headers := map[string]string{"Authorization": "Bearer " + token.Token}
	body, err := c.doRequest(ctx, http.MethodPost, c.config.BaseURLV2+"/sims/ESim-Usage", nil, tsimUsageRequest{ICCID: iccid}, headers)
	if err != nil {
		return nil, err
	}

	var resp tsimUsageResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: failed to parse usage response: %v", provider.ErrInvalidResponse, err)
	}

	return &provider.UsageReport{
		ICCID:     resp.ICCID,
		Used:      resp.DataUsed,
		Total:     resp.DataTotal,
		Status:    resp.Status,
		ExpiresAt: resp.ExpiresAt,
	}, nil
}

// CreateToken exchanges the configured credentials for a fresh session token
func (c *TSIMClient) CreateToken(ctx context.Context) (*provider.SessionToken, error) {
	payload := tsimCreateTokenRequest{
		Email:    c.config.Username,
		Password: c.config.Password,
	}
	headers := map[string]string{"AccessToken": c.config.AccessToken}

	body, err := c.doRequest(ctx, http.MethodPost, c.config.BaseURLV2+"/Create-Token", nil, payload, headers)
	if err != nil {
		return nil, err
	}

	var resp tsimCreateTokenResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: failed to parse token response: %v", provider.ErrInvalidResponse, err)
	}
	if resp.SessionToken == "" {
		return nil, fmt.Errorf("%w: token response missing session_token", provider.ErrInvalidResponse)
	}

	return &provider.SessionToken{Token: resp.SessionToken}, nil
}

// doSigned performs a v1 request with the HMAC-signed header set
func (c *TSIMClient) doSigned(ctx context.Context, method, endpoint string, query url.Values, payload any) ([]byte, error) {
	headers, err := c.config.SignedHeaders()
	if err != nil {
		return nil, fmt.Errorf("tsim: failed to sign request: %w", err)
	}
	return c.doRequest(ctx, method, endpoint, query, payload, headers)
}

// doRequest performs an HTTP request to the TSIM API
func (c *TSIMClient) doRequest(ctx context.Context, method, endpoint string, query url.Values, payload any, headers map[string]string) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("tsim: failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	if len(query) > 0 {
		endpoint = endpoint + "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("tsim: failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", provider.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("tsim: failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: HTTP %d", provider.ErrUnavailable, resp.StatusCode)
	}

	return respBody, nil
}

// Ensure TSIMClient implements the provider client interface
var _ provider.Client = (*TSIMClient)(nil)
