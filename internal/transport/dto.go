package transport

import (
	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/showcase/internal/domain"
	"github.com/Skotchmaster/showcase/internal/models"
)

type CreateProductRequest struct {
	Name         string          `json:"name"`
	ImageURL     string          `json:"imageUrl"`
	MRP          decimal.Decimal `json:"mrp"`
	SellingPrice decimal.Decimal `json:"sellingPrice"`
	Category     string          `json:"category"`
	Subcategory  string          `json:"subcategory"`
	Code         string          `json:"code"`
	AffiliateURL string          `json:"affiliateUrl"`
}

type PatchProductRequest struct {
	Name         *string          `json:"name"`
	ImageURL     *string          `json:"imageUrl"`
	MRP          *decimal.Decimal `json:"mrp"`
	SellingPrice *decimal.Decimal `json:"sellingPrice"`
	Category     *string          `json:"category"`
	Subcategory  *string          `json:"subcategory"`
	Code         *string          `json:"code"`
	AffiliateURL *string          `json:"affiliateUrl"`
}

type ProductResponse struct {
	models.Product
	Discount float64 `json:"discount"`
}

func NewProductResponse(p models.Product) ProductResponse {
	return ProductResponse{Product: p, Discount: domain.Discount(p.MRP, p.SellingPrice)}
}

func NewProductResponses(items []models.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(items))
	for _, p := range items {
		out = append(out, NewProductResponse(p))
	}
	return out
}

type CreateCategoryRequest struct {
	Name          string   `json:"name"`
	Subcategories []string `json:"subcategories"`
}

type RenameCategoryRequest struct {
	Name string `json:"name"`
}

type SubcategoryRequest struct {
	Name string `json:"name"`
}

type RenameSubcategoryRequest struct {
	NewName string `json:"newName"`
}

type PatchBannerRequest struct {
	ImageURL     *string `json:"imageUrl"`
	AffiliateURL *string `json:"affiliateUrl"`
	Title        *string `json:"title"`
	IsActive     *bool   `json:"isActive"`
}

type UpdateSettingsRequest struct {
	SecretCode string `json:"secretCode"`
}

type SubmitCodeRequest struct {
	Code string `json:"code"`
}

type AnalyticsSummary struct {
	TotalProducts int64 `json:"totalProducts"`
	TotalClicks   int64 `json:"totalClicks"`
	ActiveBanners int64 `json:"activeBanners"`
}
