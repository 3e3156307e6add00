// Package domain holds the storefront and admin rules that need no store access.
package domain

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/showcase/internal/models"
)

var ErrInvalidURL = errors.New("affiliate url must be an absolute http(s) url")

// Discount is the percentage off mrp, rounded to two decimals. Zero when mrp is not positive.
func Discount(mrp, sellingPrice decimal.Decimal) float64 {
	if !mrp.IsPositive() {
		return 0
	}
	pct := mrp.Sub(sellingPrice).Div(mrp).Mul(decimal.NewFromInt(100))
	f, _ := pct.Round(2).Float64()
	return f
}

// NewProductCode builds PROD-<base36 millis>-<4 base36 chars>.
func NewProductCode(now time.Time, r *rand.Rand) string {
	const alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	suffix := make([]byte, 4)
	for i := range suffix {
		if r != nil {
			suffix[i] = alphabet[r.IntN(len(alphabet))]
		} else {
			suffix[i] = alphabet[rand.IntN(len(alphabet))]
		}
	}
	return strings.ToUpper(fmt.Sprintf("PROD-%s-%s", strconv.FormatInt(now.UnixMilli(), 36), suffix))
}

func ValidAffiliateURL(raw string) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalidURL
	}
	return nil
}

type ProductFilter struct {
	Query       string
	Category    string
	Subcategory string
}

func (f ProductFilter) Match(p models.Product) bool {
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.Subcategory != "" && p.Subcategory != f.Subcategory {
		return false
	}
	q := strings.ToLower(strings.TrimSpace(f.Query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), q) || strings.Contains(strings.ToLower(p.Code), q)
}

// FilterProducts keeps input order.
func FilterProducts(products []models.Product, f ProductFilter) []models.Product {
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if f.Match(p) {
			out = append(out, p)
		}
	}
	return out
}
