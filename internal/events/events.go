package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	ProductCreated     = "product_created"
	ProductUpdated     = "product_updated"
	ProductDeleted     = "product_deleted"
	CategoryCreated    = "category_created"
	CategoryRenamed    = "category_renamed"
	CategoryDeleted    = "category_deleted"
	SubcategoryAdded   = "subcategory_added"
	SubcategoryRenamed = "subcategory_renamed"
	SubcategoryDeleted = "subcategory_deleted"
	BannerCreated      = "banner_created"
	BannerUpdated      = "banner_updated"
	BannerDeleted      = "banner_deleted"
	ProductClicked     = "product_clicked"
)

type CatalogEvent struct {
	Type     string    `json:"type"`
	EntityID uuid.UUID `json:"entityID"`
	Name     string    `json:"name,omitempty"`
	OldName  string    `json:"oldName,omitempty"`
	Affected int64     `json:"affected,omitempty"`
	At       time.Time `json:"at"`
}

type ClickEvent struct {
	Type        string    `json:"type"`
	ProductID   uuid.UUID `json:"productID"`
	ProductName string    `json:"productName"`
	ClickedAt   int64     `json:"clickedAt"`
}
