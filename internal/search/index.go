// Package search keeps an elasticsearch index of products for storefront queries.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/google/uuid"

	"github.com/Skotchmaster/showcase/internal/domain"
	"github.com/Skotchmaster/showcase/internal/models"
)

// ErrDisabled is returned by Nop so callers fall back to the store.
var ErrDisabled = errors.New("search index disabled")

type Indexer interface {
	Upsert(ctx context.Context, p models.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, f domain.ProductFilter, from, size int) (int64, []uuid.UUID, error)
}

type Config struct {
	URL      string
	User     string
	Password string
	Index    string
}

type ESIndex struct {
	es    *elasticsearch.Client
	index string
}

type productDoc struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Code        string    `json:"code"`
	Category    string    `json:"category"`
	Subcategory string    `json:"subcategory"`
	CreatedAt   time.Time `json:"created_at"`
}

// name and code are lowercased keywords so a wildcard query gives the same case-insensitive
// substring match as the store.
const mapping = `{
  "settings": {
    "analysis": {
      "normalizer": {
        "lowercase_keyword": {"type": "custom", "filter": ["lowercase"]}
      }
    }
  },
  "mappings": {
    "properties": {
      "id":          {"type": "keyword"},
      "name":        {"type": "keyword", "normalizer": "lowercase_keyword"},
      "code":        {"type": "keyword", "normalizer": "lowercase_keyword"},
      "category":    {"type": "keyword"},
      "subcategory": {"type": "keyword"},
      "created_at":  {"type": "date"}
    }
  }
}`

// NewClient connects and checks the cluster answers.
func NewClient(cfg Config) (*ESIndex, error) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{cfg.URL},
		Username:  cfg.User,
		Password:  cfg.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("es: new client: %w", err)
	}

	res, err := client.Info()
	if err != nil {
		return nil, fmt.Errorf("es: info: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("es: info: %s: %s", res.Status(), body)
	}

	return &ESIndex{es: client, index: cfg.Index}, nil
}

// EnsureIndex creates the index with its mapping when it does not exist.
func (x *ESIndex) EnsureIndex(ctx context.Context) error {
	res, err := x.es.Indices.Exists([]string{x.index}, x.es.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("es: exists: %w", err)
	}
	res.Body.Close()
	if res.StatusCode == http.StatusOK {
		return nil
	}

	res, err = x.es.Indices.Create(x.index,
		x.es.Indices.Create.WithContext(ctx),
		x.es.Indices.Create.WithBody(strings.NewReader(mapping)),
	)
	if err != nil {
		return fmt.Errorf("es: create index: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return responseError("create index", res.Status(), res.Body)
	}
	return nil
}

func (x *ESIndex) Upsert(ctx context.Context, p models.Product) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(productDoc{
		ID:          p.ID.String(),
		Name:        p.Name,
		Code:        p.Code,
		Category:    p.Category,
		Subcategory: p.Subcategory,
		CreatedAt:   p.CreatedAt,
	}); err != nil {
		return fmt.Errorf("es: encode: %w", err)
	}

	res, err := x.es.Index(x.index, &buf,
		x.es.Index.WithContext(ctx),
		x.es.Index.WithDocumentID(p.ID.String()),
	)
	if err != nil {
		return fmt.Errorf("es: index: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return responseError("index", res.Status(), res.Body)
	}
	return nil
}

func (x *ESIndex) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := x.es.Delete(x.index, id.String(), x.es.Delete.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("es: delete: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return responseError("delete", res.Status(), res.Body)
	}
	return nil
}

// Search returns matching product ids, newest first.
func (x *ESIndex) Search(ctx context.Context, f domain.ProductFilter, from, size int) (int64, []uuid.UUID, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(buildQuery(f, from, size)); err != nil {
		return 0, nil, fmt.Errorf("es: encode query: %w", err)
	}

	res, err := x.es.Search(
		x.es.Search.WithContext(ctx),
		x.es.Search.WithIndex(x.index),
		x.es.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("es: search: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return 0, nil, responseError("search", res.Status(), res.Body)
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source productDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, fmt.Errorf("es: decode: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(r.Hits.Hits))
	for _, hit := range r.Hits.Hits {
		id, err := uuid.Parse(hit.Source.ID)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return r.Hits.Total.Value, ids, nil
}

var wildcardEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`)

func buildQuery(f domain.ProductFilter, from, size int) map[string]any {
	var filters []any
	if f.Category != "" {
		filters = append(filters, map[string]any{"term": map[string]any{"category": f.Category}})
	}
	if f.Subcategory != "" {
		filters = append(filters, map[string]any{"term": map[string]any{"subcategory": f.Subcategory}})
	}

	boolQuery := map[string]any{}
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		pattern := "*" + wildcardEscaper.Replace(q) + "*"
		boolQuery["should"] = []any{
			wildcardClause("name", pattern),
			wildcardClause("code", pattern),
		}
		boolQuery["minimum_should_match"] = 1
	}
	if len(filters) > 0 {
		boolQuery["filter"] = filters
	}

	return map[string]any{
		"query": map[string]any{"bool": boolQuery},
		"sort":  []any{map[string]any{"created_at": "desc"}},
		"from":  from,
		"size":  size,
	}
}

func wildcardClause(field, pattern string) map[string]any {
	return map[string]any{"wildcard": map[string]any{
		field: map[string]any{"value": pattern, "case_insensitive": true},
	}}
}

func responseError(op, status string, body io.Reader) error {
	b, _ := io.ReadAll(io.LimitReader(body, 4096))
	return fmt.Errorf("es: %s: %s: %s", op, status, b)
}

// Nop is used when ES_URL is not set.
type Nop struct{}

func (Nop) Upsert(context.Context, models.Product) error { return nil }
func (Nop) Delete(context.Context, uuid.UUID) error      { return nil }
func (Nop) Search(context.Context, domain.ProductFilter, int, int) (int64, []uuid.UUID, error) {
	return 0, nil, ErrDisabled
}
