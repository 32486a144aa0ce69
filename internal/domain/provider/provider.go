// Package provider defines the contract with the external eSIM provider:
// catalog listing, subscription provisioning, QR retrieval, usage lookup and
// session-token creation. Implementations live in infrastructure.
package provider

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrUnavailable indicates a network failure or non-2xx response from
	// the provider. Per-package callers convert it into a skip-and-log;
	// whole-pipeline callers abort.
	ErrUnavailable = errors.New("provider: temporarily unavailable")
	// ErrInvalidResponse indicates the provider response is missing its
	// expected shape (e.g. no "result" array). Aborts the entire sync run.
	ErrInvalidResponse = errors.New("provider: invalid response format")
	// ErrRequestFailed indicates the provider returned an application-level
	// failure status.
	ErrRequestFailed = errors.New("provider: request failed")
	// ErrTokenUnavailable indicates no valid session token is available.
	ErrTokenUnavailable = errors.New("provider: session token unavailable")
)

// Package is one data plan from the provider catalog. Treated as immutable
// input per sync run; the provider is the source of truth.
type Package struct {
	PlanID           string   `json:"channel_dataplan_id"`
	PlanName         string   `json:"channel_dataplan_name"`
	Price            string   `json:"price"`
	Currency         string   `json:"currency"`
	Status           string   `json:"status"`
	Remark           string   `json:"remark"`
	Days             int      `json:"day"`
	APN              string   `json:"apn"`
	Coverages        []string `json:"coverages"`
	DataAllowance    int64    `json:"data_allowance,omitempty"`
	DayDataAllowance int64    `json:"day_data_allowance,omitempty"`
	IsDaily          bool     `json:"is_daily,omitempty"`
}

// SubscribeRequest carries the purchaser details for one line item.
type SubscribeRequest struct {
	PlanID      string
	Quantity    int
	FirstName   string
	LastName    string
	Address     string
	Country     string
	Email       string
	PhoneNumber string
}

// SIM identifies one provisioned eSIM profile.
type SIM struct {
	ICCID     string
	IMSI      string
	LPAServer string
}

// Subscription is the result of a subscribe call.
type Subscription struct {
	OrderID string
	Status  string
	SIMs    []SIM
}

// OrderDetails carries the plan/usage metadata for a provider order.
type OrderDetails struct {
	PackageName string
	PackageData string
	Amount      string
	Currency    string
	Quantity    int
	Validity    string
	Voice       string
}

// UsageReport is the data consumption snapshot for one ICCID.
type UsageReport struct {
	ICCID     string
	Used      int64
	Total     int64
	Status    string
	ExpiresAt string
}

// SessionToken is a provider bearer token with its expiry.
type SessionToken struct {
	Token     string
	ExpiresAt time.Time
}

// Client is the external eSIM provider API.
type Client interface {
	// FetchCatalog returns the full plan catalog.
	FetchCatalog(ctx context.Context) ([]Package, error)
	// Subscribe creates an eSIM subscription for one line item.
	Subscribe(ctx context.Context, req SubscribeRequest) (*Subscription, error)
	// OrderDetails retrieves plan metadata for a provider order.
	OrderDetails(ctx context.Context, orderID string) (*OrderDetails, error)
	// QRCodes retrieves the activation QR payloads for a provider order.
	QRCodes(ctx context.Context, orderID string) ([]string, error)
	// Usage retrieves the usage snapshot for an ICCID.
	Usage(ctx context.Context, iccid string) (*UsageReport, error)
	// CreateToken exchanges credentials for a fresh session token.
	CreateToken(ctx context.Context) (*SessionToken, error)
}

// SessionTokenStore holds the provider bearer token in a store shared across
// instances, with explicit expiry. Replaces the legacy pattern of rewriting a
// local environment file.
type SessionTokenStore interface {
	// Get returns the current token. Returns ErrTokenUnavailable when the
	// store is empty or the token has expired.
	Get(ctx context.Context) (*SessionToken, error)
	// Put stores a token with its expiry.
	Put(ctx context.Context, token *SessionToken) error
}
