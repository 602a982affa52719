package search

import (
	"context"

	"github.com/elastic/go-elasticsearch/v8"

	"github.com/oksasatya/devcamper-api/internal/domain/entity"
	"github.com/oksasatya/devcamper-api/pkg/helpers"
)

// bootcampDoc is the indexed projection of a bootcamp.
type bootcampDoc struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Address     string   `json:"address"`
	Careers     []string `json:"careers"`
	UserID      string   `json:"user_id"`
}

// BootcampIndex keeps bootcamps searchable in Elasticsearch.
type BootcampIndex struct {
	es    *elasticsearch.Client
	index string
}

func NewBootcampIndex(es *elasticsearch.Client, index string) *BootcampIndex {
	return &BootcampIndex{es: es, index: index}
}

func (i *BootcampIndex) Index(ctx context.Context, b *entity.Bootcamp) error {
	doc := bootcampDoc{
		ID:          b.ID,
		Name:        b.Name,
		Description: b.Description,
		Address:     b.Address,
		Careers:     b.Careers,
		UserID:      b.UserID,
	}
	return helpers.ESIndexJSON(ctx, i.es, i.index, b.ID, doc)
}

func (i *BootcampIndex) Remove(ctx context.Context, id string) error {
	return helpers.ESDelete(ctx, i.es, i.index, id)
}

func (i *BootcampIndex) Search(ctx context.Context, query string, limit int) ([]string, error) {
	return helpers.ESSearchIDs(ctx, i.es, i.index, Query(query, limit))
}

// Query builds the multi_match body used for bootcamp search.
func Query(q string, limit int) map[string]any {
	return map[string]any{
		"size":    limit,
		"_source": false,
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     q,
				"fields":    []string{"name^3", "careers^2", "description", "address"},
				"fuzziness": "AUTO",
			},
		},
	}
}
