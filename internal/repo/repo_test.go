package repo_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/showcase/internal/domain"
	"github.com/Skotchmaster/showcase/internal/models"
	"github.com/Skotchmaster/showcase/internal/repo"
	"github.com/Skotchmaster/showcase/internal/repo/repotest"
)

func newProduct(name, code, category, sub string, created time.Time) *models.Product {
	return &models.Product{
		Name:         name,
		ImageURL:     "https://img.example.com/" + code,
		MRP:          decimal.NewFromInt(9999),
		SellingPrice: decimal.NewFromInt(6999),
		Category:     category,
		Subcategory:  sub,
		Code:         code,
		AffiliateURL: "https://example.com/" + code,
		CreatedAt:    created,
	}
}

func TestProducts_CRUDAndOrdering(t *testing.T) {
	r := repotest.New(t)
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	older, err := r.CreateProduct(ctx, newProduct("Older", "PROD-1", "Electronics", "Laptops", base))
	require.NoError(t, err)
	newer, err := r.CreateProduct(ctx, newProduct("Newer", "PROD-2", "Electronics", "Tablets", base.Add(time.Hour)))
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, older.ID)

	list, err := r.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID)

	got, err := r.GetProduct(ctx, older.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(9999).Equal(got.MRP))

	updated, err := r.UpdateProduct(ctx, older.ID, map[string]any{
		"name":         "Renamed",
		"sellingPrice": decimal.RequireFromString("5999.50"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.True(t, decimal.RequireFromString("5999.50").Equal(updated.SellingPrice))
	assert.Equal(t, "Laptops", updated.Subcategory)

	_, err = r.UpdateProduct(ctx, older.ID, map[string]any{"sellingprice": 1})
	require.ErrorIs(t, err, repo.ErrUnknownField)

	_, err = r.UpdateProduct(ctx, uuid.New(), map[string]any{"name": "x"})
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, r.DeleteProduct(ctx, newer.ID))
	require.ErrorIs(t, r.DeleteProduct(ctx, newer.ID), gorm.ErrRecordNotFound)
}

func TestFindProducts_Filter(t *testing.T) {
	r := repotest.New(t)
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, p := range []*models.Product{
		newProduct("Premium Wireless Headphones", "PROD-0001", "Electronics", "Accessories", base),
		newProduct("Smart Watch Pro", "PROD-0002", "Electronics", "Accessories", base.Add(time.Minute)),
		newProduct("Designer Leather Jacket", "PROD-0003", "Fashion", "Men's Clothing", base.Add(2*time.Minute)),
		newProduct("100% Cotton Tee", "PROD-0004", "Fashion", "Men's Clothing", base.Add(3*time.Minute)),
	} {
		_, err := r.CreateProduct(ctx, p)
		require.NoError(t, err, i)
	}

	total, items, err := r.FindProducts(ctx, domain.ProductFilter{Query: "WATCH"}, 0, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "PROD-0002", items[0].Code)

	total, items, err = r.FindProducts(ctx, domain.ProductFilter{Query: "prod-000", Category: "Electronics"}, 0, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Equal(t, "PROD-0002", items[0].Code)

	total, _, err = r.FindProducts(ctx, domain.ProductFilter{Query: "100%"}, 0, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)

	total, items, err = r.FindProducts(ctx, domain.ProductFilter{}, 1, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 4, total)
	require.Len(t, items, 2)
	assert.Equal(t, "PROD-0003", items[0].Code)

	n, err := r.CountProductsBySubcategory(ctx, "Fashion", "Men's Clothing")
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
	n, err = r.CountProductsByCategory(ctx, "Electronics")
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}

func TestCategories_StringListRoundTrip(t *testing.T) {
	r := repotest.New(t)
	ctx := context.Background()

	c, err := r.CreateCategory(ctx, &models.Category{Name: "Fashion", Subcategories: models.StringList{"Men's Clothing", "Shoes, Boots"}})
	require.NoError(t, err)

	got, err := r.GetCategory(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StringList{"Men's Clothing", "Shoes, Boots"}, got.Subcategories)

	updated, err := r.UpdateCategory(ctx, c.ID, map[string]any{"subcategories": models.StringList{"Footwear"}})
	require.NoError(t, err)
	assert.Equal(t, models.StringList{"Footwear"}, updated.Subcategories)

	byName, err := r.CategoryByName(ctx, "Fashion")
	require.NoError(t, err)
	assert.Equal(t, c.ID, byName.ID)

	require.NoError(t, r.DeleteCategory(ctx, c.ID))
	_, err = r.GetCategory(ctx, c.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestBanners_ActiveFilterAndCount(t *testing.T) {
	r := repotest.New(t)
	ctx := context.Background()

	on, err := r.CreateBanner(ctx, &models.Banner{Title: "On", IsActive: true})
	require.NoError(t, err)
	_, err = r.CreateBanner(ctx, &models.Banner{Title: "Off", IsActive: false})
	require.NoError(t, err)

	all, err := r.ListBanners(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	active, err := r.ListBanners(ctx, true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, on.ID, active[0].ID)

	_, err = r.UpdateBanner(ctx, on.ID, map[string]any{"isActive": false})
	require.NoError(t, err)
	n, err := r.CountActiveBanners(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestAdminSettings_LazyDefaultAndUpdate(t *testing.T) {
	r := repotest.New(t)
	ctx := context.Background()

	s, err := r.GetAdminSettings(ctx, "123456")
	require.NoError(t, err)
	assert.Equal(t, "123456", s.SecretCode)

	again, err := r.GetAdminSettings(ctx, "999999")
	require.NoError(t, err)
	assert.Equal(t, s.ID, again.ID)
	assert.Equal(t, "123456", again.SecretCode)

	updated, err := r.UpdateSecretCode(ctx, "123456", "654321")
	require.NoError(t, err)
	assert.Equal(t, "654321", updated.SecretCode)

	var rows int64
	require.NoError(t, r.DB.Model(&models.AdminSettings{}).Count(&rows).Error)
	assert.EqualValues(t, 1, rows)
}

func TestIncrementClick(t *testing.T) {
	r := repotest.New(t)
	ctx := context.Background()
	id := uuid.New()

	require.NoError(t, r.IncrementClick(ctx, id, "Smart Watch", 1000))
	require.NoError(t, r.IncrementClick(ctx, id, "Smart Watch Renamed", 2000))

	row, err := r.GetAnalytics(ctx, id)
	require.NoError(t, err)
	assert.EqualValues(t, 2, row.Clicks)
	assert.EqualValues(t, 2000, row.LastClicked)
	assert.Equal(t, "Smart Watch", row.ProductName)

	other := uuid.New()
	require.NoError(t, r.IncrementClick(ctx, other, "Jacket", 3000))

	list, err := r.ListAnalytics(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, id, list[0].ProductID)

	total, err := r.TotalClicks(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
}

func TestSeedDefaults_Idempotent(t *testing.T) {
	r := repotest.New(t)
	ctx := context.Background()

	require.NoError(t, r.SeedDefaults(ctx, "123456"))
	require.NoError(t, r.SeedDefaults(ctx, "123456"))

	cats, err := r.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 3)
	assert.Equal(t, "Electronics", cats[0].Name)
	assert.Equal(t, models.StringList{"Mobile Phones", "Laptops", "Tablets", "Accessories"}, cats[0].Subcategories)
	assert.Equal(t, "Home & Kitchen", cats[2].Name)

	s, err := r.GetAdminSettings(ctx, "000000")
	require.NoError(t, err)
	assert.Equal(t, "123456", s.SecretCode)
}

func TestTransaction_RollsBack(t *testing.T) {
	r := repotest.New(t)
	ctx := context.Background()

	boom := errors.New("boom")
	err := r.Transaction(ctx, func(tx *repo.GormRepo) error {
		if _, err := tx.CreateCategory(ctx, &models.Category{Name: "Temp"}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	cats, err := r.ListCategories(ctx)
	require.NoError(t, err)
	assert.Empty(t, cats)
}
