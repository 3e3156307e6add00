package repo

import (
	"errors"
	"fmt"
	"time"
)

var ErrUnknownField = errors.New("unknown field")

// fieldColumns maps application field names to store columns, per table.
var fieldColumns = map[string]map[string]string{
	"products": {
		"name":         "name",
		"imageUrl":     "imageurl",
		"mrp":          "mrp",
		"sellingPrice": "sellingprice",
		"category":     "category",
		"subcategory":  "subcategory",
		"code":         "code",
		"affiliateUrl": "affiliateurl",
		"clicks":       "clicks",
	},
	"categories": {
		"name":          "name",
		"subcategories": "subcategories",
	},
	"banners": {
		"imageUrl":     "imageurl",
		"affiliateUrl": "affiliateurl",
		"title":        "title",
		"isActive":     "isactive",
	},
	"admin_settings": {
		"secretCode": "secretcode",
	},
}

// toColumns translates fields and stamps updated_at.
func toColumns(table string, fields map[string]any) (map[string]any, error) {
	known, ok := fieldColumns[table]
	if !ok {
		return nil, fmt.Errorf("%w: table %q", ErrUnknownField, table)
	}
	out := make(map[string]any, len(fields)+1)
	for field, v := range fields {
		col, ok := known[field]
		if !ok {
			return nil, fmt.Errorf("%w: %s.%s", ErrUnknownField, table, field)
		}
		out[col] = v
	}
	out["updated_at"] = time.Now().UTC()
	return out, nil
}
