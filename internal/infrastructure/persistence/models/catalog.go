package models

import (
	"encoding/json"
	"time"

	"github.com/esimhub/backend/internal/domain/catalog"
)

// RegionModel is the persistence model for the Region domain entity.
type RegionModel struct {
	ID                       string    `gorm:"type:varchar(64);primary_key"`
	Name                     string    `gorm:"type:varchar(255);not null"`
	CurrencyCode             string    `gorm:"type:varchar(8);not null"`
	CountriesJSON            string    `gorm:"type:jsonb;column:countries"`
	PaymentProvidersJSON     string    `gorm:"type:jsonb;column:payment_providers"`
	FulfillmentProvidersJSON string    `gorm:"type:jsonb;column:fulfillment_providers"`
	CoverageCodesJSON        string    `gorm:"type:jsonb;column:coverage_codes"`
	OriginalCoverage         string    `gorm:"type:varchar(32)"`
	CreatedAt                time.Time `gorm:"not null"`
	UpdatedAt                time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (RegionModel) TableName() string {
	return "regions"
}

// ToDomain converts the persistence model to a domain Region entity.
func (m *RegionModel) ToDomain() *catalog.Region {
	return &catalog.Region{
		ID:                   m.ID,
		Name:                 m.Name,
		CurrencyCode:         m.CurrencyCode,
		Countries:            decodeStrings(m.CountriesJSON),
		PaymentProviders:     decodeStrings(m.PaymentProvidersJSON),
		FulfillmentProviders: decodeStrings(m.FulfillmentProvidersJSON),
		CoverageCodes:        decodeStrings(m.CoverageCodesJSON),
		OriginalCoverage:     m.OriginalCoverage,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}
}

// RegionModelFromDomain creates a persistence model from a domain Region.
func RegionModelFromDomain(r *catalog.Region) *RegionModel {
	return &RegionModel{
		ID:                       r.ID,
		Name:                     r.Name,
		CurrencyCode:             r.CurrencyCode,
		CountriesJSON:            encodeStrings(r.Countries),
		PaymentProvidersJSON:     encodeStrings(r.PaymentProviders),
		FulfillmentProvidersJSON: encodeStrings(r.FulfillmentProviders),
		CoverageCodesJSON:        encodeStrings(r.CoverageCodes),
		OriginalCoverage:         r.OriginalCoverage,
		CreatedAt:                r.CreatedAt,
		UpdatedAt:                r.UpdatedAt,
	}
}

// CollectionModel is the persistence model for the Collection domain entity.
type CollectionModel struct {
	ID                string    `gorm:"type:varchar(64);primary_key"`
	Handle            string    `gorm:"type:varchar(128);not null;uniqueIndex:idx_collections_handle"`
	Title             string    `gorm:"type:varchar(255);not null"`
	IsContinent       bool      `gorm:"not null;default:false"`
	Continent         string    `gorm:"type:varchar(16)"`
	Image             string    `gorm:"type:varchar(512)"`
	PlanID            string    `gorm:"type:varchar(128);index"`
	RegionIDsJSON     string    `gorm:"type:jsonb;column:region_ids"`
	CountryCodesJSON  string    `gorm:"type:jsonb;column:country_codes"`
	CoverageCodesJSON string    `gorm:"type:jsonb;column:coverage_codes"`
	APN               string    `gorm:"type:varchar(128)"`
	Days              int
	Price             string    `gorm:"type:varchar(32)"`
	CurrencyCode      string    `gorm:"type:varchar(8)"`
	CreatedAt         time.Time `gorm:"not null"`
	UpdatedAt         time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CollectionModel) TableName() string {
	return "collections"
}

// ToDomain converts the persistence model to a domain Collection entity.
func (m *CollectionModel) ToDomain() *catalog.Collection {
	return &catalog.Collection{
		ID:            m.ID,
		Handle:        m.Handle,
		Title:         m.Title,
		IsContinent:   m.IsContinent,
		Continent:     m.Continent,
		Image:         m.Image,
		PlanID:        m.PlanID,
		RegionIDs:     decodeStrings(m.RegionIDsJSON),
		CountryCodes:  decodeStrings(m.CountryCodesJSON),
		CoverageCodes: decodeStrings(m.CoverageCodesJSON),
		APN:           m.APN,
		Days:          m.Days,
		Price:         m.Price,
		CurrencyCode:  m.CurrencyCode,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// CollectionModelFromDomain creates a persistence model from a domain Collection.
func CollectionModelFromDomain(c *catalog.Collection) *CollectionModel {
	return &CollectionModel{
		ID:                c.ID,
		Handle:            c.Handle,
		Title:             c.Title,
		IsContinent:       c.IsContinent,
		Continent:         c.Continent,
		Image:             c.Image,
		PlanID:            c.PlanID,
		RegionIDsJSON:     encodeStrings(c.RegionIDs),
		CountryCodesJSON:  encodeStrings(c.CountryCodes),
		CoverageCodesJSON: encodeStrings(c.CoverageCodes),
		APN:               c.APN,
		Days:              c.Days,
		Price:             c.Price,
		CurrencyCode:      c.CurrencyCode,
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
	}
}

// ProductModel is the persistence model for the Product domain entity.
type ProductModel struct {
	ID               string    `gorm:"type:varchar(64);primary_key"`
	Handle           string    `gorm:"type:varchar(192);not null;uniqueIndex:idx_products_handle"`
	Title            string    `gorm:"type:varchar(255);not null"`
	Description      string    `gorm:"type:text"`
	Status           string    `gorm:"type:varchar(16);not null;default:'published'"`
	CollectionHandle string    `gorm:"type:varchar(128);index"`
	PlanID           string    `gorm:"type:varchar(128);index"`
	RegionID         string    `gorm:"type:varchar(64);index"`
	CoveragesJSON    string    `gorm:"type:jsonb;column:coverages"`
	Days             int
	APN              string    `gorm:"type:varchar(128)"`
	DataAllowance    int64
	DayDataAllowance int64
	IsDaily          bool
	CountriesJSON    string    `gorm:"type:jsonb;column:countries"`
	VariantTitle     string    `gorm:"type:varchar(255)"`
	VariantAmount    int64     `gorm:"not null"`
	VariantCurrency  string    `gorm:"type:varchar(8);not null"`
	CreatedAt        time.Time `gorm:"not null"`
	UpdatedAt        time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product entity.
func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		ID:               m.ID,
		Handle:           m.Handle,
		Title:            m.Title,
		Description:      m.Description,
		Status:           catalog.ProductStatus(m.Status),
		CollectionHandle: m.CollectionHandle,
		PlanID:           m.PlanID,
		RegionID:         m.RegionID,
		Coverages:        decodeStrings(m.CoveragesJSON),
		Days:             m.Days,
		APN:              m.APN,
		DataAllowance:    m.DataAllowance,
		DayDataAllowance: m.DayDataAllowance,
		IsDaily:          m.IsDaily,
		Countries:        decodeStrings(m.CountriesJSON),
		Variant: catalog.Variant{
			Title:        m.VariantTitle,
			Amount:       m.VariantAmount,
			CurrencyCode: m.VariantCurrency,
		},
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// ProductModelFromDomain creates a persistence model from a domain Product.
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	return &ProductModel{
		ID:               p.ID,
		Handle:           p.Handle,
		Title:            p.Title,
		Description:      p.Description,
		Status:           string(p.Status),
		CollectionHandle: p.CollectionHandle,
		PlanID:           p.PlanID,
		RegionID:         p.RegionID,
		CoveragesJSON:    encodeStrings(p.Coverages),
		Days:             p.Days,
		APN:              p.APN,
		DataAllowance:    p.DataAllowance,
		DayDataAllowance: p.DayDataAllowance,
		IsDaily:          p.IsDaily,
		CountriesJSON:    encodeStrings(p.Countries),
		VariantTitle:     p.Variant.Title,
		VariantAmount:    p.Variant.Amount,
		VariantCurrency:  p.Variant.CurrencyCode,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

// CurrencyModel is the persistence model for the Currency domain entity.
type CurrencyModel struct {
	Code         string    `gorm:"type:varchar(8);primary_key"`
	Symbol       string    `gorm:"type:varchar(8)"`
	SymbolNative string    `gorm:"type:varchar(8)"`
	Name         string    `gorm:"type:varchar(64);not null"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CurrencyModel) TableName() string {
	return "currencies"
}

// ToDomain converts the persistence model to a domain Currency entity.
func (m *CurrencyModel) ToDomain() *catalog.Currency {
	return &catalog.Currency{
		Code:         m.Code,
		Symbol:       m.Symbol,
		SymbolNative: m.SymbolNative,
		Name:         m.Name,
	}
}

// CurrencyModelFromDomain creates a persistence model from a domain Currency.
func CurrencyModelFromDomain(c *catalog.Currency) *CurrencyModel {
	now := time.Now()
	return &CurrencyModel{
		Code:         c.Code,
		Symbol:       c.Symbol,
		SymbolNative: c.SymbolNative,
		Name:         c.Name,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func encodeStrings(s []string) string {
	if len(s) == 0 {
		return "[]"
	}
	b, err := json.Marshal(s)
	if err != nil {
		return "[]"
	}
	return string(b)
}

func decodeStrings(s string) []string {
	if s == "" {
		return []string{}
	}
	var out []string
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return []string{}
	}
	return out
}
