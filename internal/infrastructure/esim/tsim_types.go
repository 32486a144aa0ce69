package esim

import "github.com/esimhub/backend/internal/domain/provider"

// tsimCatalogResponse is the response of GET /tsim/v1/esimDataplanList.
// A payload without the result array is treated as invalid.
type tsimCatalogResponse struct {
	Result *[]provider.Package `json:"result"`
}

// tsimSubscribeRequest is the body of POST /tsim/v1/esimSubscribe
type tsimSubscribeRequest struct {
	PackageID   string `json:"package_id"`
	Quantity    int    `json:"quantity"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Address     string `json:"address"`
	Country     string `json:"country"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
}

// tsimSubscribeResponse is the response of POST /tsim/v1/esimSubscribe
type tsimSubscribeResponse struct {
	OrderID string    `json:"order_id"`
	Status  string    `json:"status"`
	SIMs    []tsimSIM `json:"sims"`
}

type tsimSIM struct {
	ICCID      string `json:"iccid"`
	IMSINumber string `json:"imsi_number"`
	LPAServer  string `json:"lpa_server"`
}

// tsimOrderDetailsResponse is the response of GET /tsim/v1/esimOrderDetails
type tsimOrderDetailsResponse struct {
	Data *tsimOrderDetails `json:"data"`
}

type tsimOrderDetails struct {
	PackageName string `json:"package_name"`
	PackageData string `json:"package_data"`
	Amount      string `json:"amount"`
	Currency    string `json:"currency"`
	Quantity    int    `json:"quantity"`
	Validity    string `json:"validity"`
	Voice       string `json:"voice"`
}

// tsimQRCodeResponse is the response of GET /tsim/v1/esimQrCode
type tsimQRCodeResponse struct {
	QRCodes []string `json:"qr_codes"`
}

// tsimUsageRequest is the body of POST /v2/sims/ESim-Usage
type tsimUsageRequest struct {
	ICCID string `json:"iccid"`
}

// tsimUsageResponse is the response of POST /v2/sims/ESim-Usage
type tsimUsageResponse struct {
	ICCID     string `json:"iccid"`
	DataUsed  int64  `json:"data_used"`
	DataTotal int64  `json:"data_total"`
	Status    string `json:"status"`
	ExpiresAt string `json:"expires_at"`
}

// tsimCreateTokenRequest is the body of POST /v2/Create-Token
type tsimCreateTokenRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// tsimCreateTokenResponse is the response of POST /v2/Create-Token
type tsimCreateTokenResponse struct {
	SessionToken string `json:"session_token"`
}
