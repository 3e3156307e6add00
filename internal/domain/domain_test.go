package domain

import (
	"math/rand/v2"
	"regexp"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/showcase/internal/models"
)

func TestDiscount(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		mrp  string
		sp   string
		want float64
	}{
		{"typical", "9999", "6999", 30},
		{"repeating decimal", "3", "2", 33.33},
		{"no discount", "100", "100", 0},
		{"zero mrp", "0", "50", 0},
		{"negative mrp", "-10", "5", 0},
		{"selling above mrp", "100", "120", -20},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Discount(decimal.RequireFromString(tc.mrp), decimal.RequireFromString(tc.sp))
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNewProductCode(t *testing.T) {
	t.Parallel()

	now := time.UnixMilli(1_700_000_000_000)
	code := NewProductCode(now, rand.New(rand.NewPCG(1, 2)))
	require.Regexp(t, regexp.MustCompile(`^PROD-[0-9A-Z]+-[0-9A-Z]{4}$`), code)
	require.Contains(t, code, "PROD-LOYW3V28-")
}

func TestValidAffiliateURL(t *testing.T) {
	t.Parallel()

	require.NoError(t, ValidAffiliateURL("https://example.com/p?id=1"))
	require.NoError(t, ValidAffiliateURL("http://shop.example.com"))
	for _, bad := range []string{"", "example.com", "ftp://example.com", "https://", "not a url"} {
		require.ErrorIs(t, ValidAffiliateURL(bad), ErrInvalidURL, bad)
	}
}

func TestFilterProducts(t *testing.T) {
	t.Parallel()

	products := []models.Product{
		{Name: "Premium Wireless Headphones", Code: "PROD-0001", Category: "Electronics", Subcategory: "Headphones"},
		{Name: "Smart Watch Pro", Code: "PROD-0002", Category: "Electronics", Subcategory: "Smart Watches"},
		{Name: "Designer Leather Jacket", Code: "PROD-0003", Category: "Fashion", Subcategory: "Men's Clothing"},
	}

	got := FilterProducts(products, ProductFilter{Query: "WATCH"})
	require.Len(t, got, 1)
	require.Equal(t, "PROD-0002", got[0].Code)

	got = FilterProducts(products, ProductFilter{Query: "prod-000", Category: "Electronics"})
	require.Len(t, got, 2)
	require.Equal(t, "PROD-0001", got[0].Code)

	got = FilterProducts(products, ProductFilter{Category: "Electronics", Subcategory: "Headphones"})
	require.Len(t, got, 1)

	require.Len(t, FilterProducts(products, ProductFilter{}), 3)
	require.Empty(t, FilterProducts(products, ProductFilter{Category: "electronics"}))
}

func TestSanitizeCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "123456", SanitizeCode("12-34 56"))
	assert.Equal(t, "123456", SanitizeCode("1234567890"))
	assert.Equal(t, "12", SanitizeCode("ab12"))
	assert.Equal(t, "", SanitizeCode("abcdef"))
}

func TestSubcategoryListEdits(t *testing.T) {
	t.Parallel()

	list := models.StringList{"Mobile Phones", "Laptops", "Tablets"}

	renamed := ReplaceSubcategory(list, "Laptops", "Notebooks")
	require.Equal(t, models.StringList{"Mobile Phones", "Notebooks", "Tablets"}, renamed)
	require.Equal(t, "Laptops", list[1])

	require.Equal(t, models.StringList{"Mobile Phones", "Tablets"}, RemoveSubcategory(list, "Laptops"))
	require.Equal(t, models.StringList{"Mobile Phones", "Laptops", "Tablets", "Cameras"}, AppendSubcategory(list, "Cameras"))
	require.Len(t, list, 3)

	require.Equal(t, models.StringList{"A", "B"}, NormalizeSubcategories([]string{" A ", "", "B", "A"}))
}

func TestSelectCategory(t *testing.T) {
	t.Parallel()

	sel := ProductSelection{Category: "Electronics", Subcategory: "Laptops"}
	require.Equal(t, ProductSelection{Category: "Electronics", Subcategory: "Laptops"}, SelectCategory(sel, "Electronics"))
	require.Equal(t, ProductSelection{Category: "Fashion"}, SelectCategory(sel, "Fashion"))

	cats := []models.Category{{Name: "Electronics", Subcategories: models.StringList{"Laptops"}}}
	require.Equal(t, models.StringList{"Laptops"}, SubcategoryChoices(cats, "Electronics"))
	require.Empty(t, SubcategoryChoices(cats, "Unknown"))
}
