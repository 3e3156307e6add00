// Package models holds the gorm models. Column tags here are the only place that knows the
// store's lowercase column naming; JSON tags carry the application's camelCase naming.
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"                      json:"id"`
	Name         string          `gorm:"column:name;not null"                      json:"name"`
	ImageURL     string          `gorm:"column:imageurl;not null"                  json:"imageUrl"`
	MRP          decimal.Decimal `gorm:"column:mrp;type:decimal(12,2);not null"    json:"mrp"`
	SellingPrice decimal.Decimal `gorm:"column:sellingprice;type:decimal(12,2);not null" json:"sellingPrice"`
	Category     string          `gorm:"column:category;index;not null"            json:"category"`
	Subcategory  string          `gorm:"column:subcategory;not null"               json:"subcategory"`
	Code         string          `gorm:"column:code;index;not null"                json:"code"`
	AffiliateURL string          `gorm:"column:affiliateurl;not null"              json:"affiliateUrl"`
	Clicks       int64           `gorm:"column:clicks;not null;default:0"          json:"clicks"`
	CreatedAt    time.Time       `gorm:"column:created_at;index"                   json:"createdAt"`
	UpdatedAt    time.Time       `gorm:"column:updated_at"                         json:"updatedAt"`
}

func (Product) TableName() string { return "products" }

func (p *Product) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

type Category struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"       json:"id"`
	Name          string     `gorm:"column:name;index;not null" json:"name"`
	Subcategories StringList `gorm:"column:subcategories"       json:"subcategories"`
	CreatedAt     time.Time  `gorm:"column:created_at"          json:"-"`
	UpdatedAt     time.Time  `gorm:"column:updated_at"          json:"-"`
}

func (Category) TableName() string { return "categories" }

func (c *Category) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.Subcategories == nil {
		c.Subcategories = StringList{}
	}
	return nil
}

type Banner struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"         json:"id"`
	ImageURL     string    `gorm:"column:imageurl;not null"     json:"imageUrl"`
	AffiliateURL string    `gorm:"column:affiliateurl;not null" json:"affiliateUrl"`
	Title        string    `gorm:"column:title;not null"        json:"title"`
	IsActive     bool      `gorm:"column:isactive;not null"     json:"isActive"`
	CreatedAt    time.Time `gorm:"column:created_at;index"      json:"createdAt"`
	UpdatedAt    time.Time `gorm:"column:updated_at"            json:"updatedAt"`
}

func (Banner) TableName() string { return "banners" }

func (b *Banner) BeforeCreate(*gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// AdminSettings is a singleton row. SessionActive and SessionExpiry are not stored: they are
// filled from the caller's admin session and are informational only.
type AdminSettings struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"         json:"-"`
	SecretCode    string    `gorm:"column:secretcode;not null"   json:"secretCode"`
	SessionActive bool      `gorm:"-"                            json:"sessionActive"`
	SessionExpiry int64     `gorm:"-"                            json:"sessionExpiry"`
	CreatedAt     time.Time `gorm:"column:created_at"            json:"-"`
	UpdatedAt     time.Time `gorm:"column:updated_at"            json:"-"`
}

func (AdminSettings) TableName() string { return "admin_settings" }

func (s *AdminSettings) BeforeCreate(*gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// Analytics is keyed by product id. ProductName is the name at the first click and is not re-synced.
type Analytics struct {
	ProductID   uuid.UUID `gorm:"column:productid;type:uuid;primaryKey" json:"productId"`
	ProductName string    `gorm:"column:productname;not null"          json:"productName"`
	Clicks      int64     `gorm:"column:clicks;not null;default:0;index" json:"clicks"`
	LastClicked int64     `gorm:"column:lastclicked;not null"          json:"lastClicked"`
}

func (Analytics) TableName() string { return "analytics" }

func All() []any {
	return []any{&Product{}, &Category{}, &Banner{}, &AdminSettings{}, &Analytics{}}
}

func init() {
	// prices go over the wire as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true
}
