package es

import (
	"Newsroom/internal/model"
	"Newsroom/internal/repository"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/typedapi/core/search"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/conflicts"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/sortorder"
	"github.com/goccy/go-json"
)

var wildcardEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`)

type PostIndex interface {
	EnsureIndex(ctx context.Context) error
	IndexPost(ctx context.Context, doc *PostDoc) error
	BulkIndex(ctx context.Context, docs []*PostDoc) error
	DeletePost(ctx context.Context, id uint64) error
	DeleteIndexedBefore(ctx context.Context, before time.Time) (int64, error)
	SearchPublished(ctx context.Context, q string, from, size int) ([]uint64, int64, error)
}

type PostIndexImpl struct {
	client *elasticsearch.TypedClient
	index  string
}

func NewPostIndex(client *elasticsearch.TypedClient, index string) PostIndex {
	return &PostIndexImpl{client: client, index: index}
}

func postMapping() *types.TypeMapping {
	props := map[string]types.Property{
		"id":           types.NewUnsignedLongNumberProperty(),
		"slug":         types.NewKeywordProperty(),
		"status":       types.NewKeywordProperty(),
		"category_id":  types.NewUnsignedLongNumberProperty(),
		"published_at": types.NewDateProperty(),
		"created_at":   types.NewDateProperty(),
		"indexed_at":   types.NewDateProperty(),
	}
	for _, col := range repository.PostLocaleColumns {
		props[col] = types.NewWildcardProperty()
	}
	return &types.TypeMapping{Properties: props}
}

func (s *PostIndexImpl) EnsureIndex(ctx context.Context) error {
	exists, err := s.client.Indices.Exists(s.index).Do(ctx)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	_, err = s.client.Indices.Create(s.index).Mappings(postMapping()).Do(ctx)
	return err
}

func (s *PostIndexImpl) IndexPost(ctx context.Context, doc *PostDoc) error {
	_, err := s.client.Index(s.index).
		Id(strconv.FormatUint(doc.ID, 10)).
		Document(doc).
		Do(ctx)
	return err
}

func (s *PostIndexImpl) BulkIndex(ctx context.Context, docs []*PostDoc) error {
	if len(docs) == 0 {
		return nil
	}
	req := s.client.Bulk().Index(s.index)
	for _, doc := range docs {
		id := strconv.FormatUint(doc.ID, 10)
		if err := req.IndexOp(types.IndexOperation{Id_: &id}, doc); err != nil {
			return err
		}
	}
	resp, err := req.Do(ctx)
	if err != nil {
		return err
	}
	if resp.Errors {
		failed := 0
		for _, item := range resp.Items {
			for _, r := range item {
				if r.Error != nil {
					failed++
				}
			}
		}
		return fmt.Errorf("post index: bulk index has %d failures", failed)
	}
	return nil
}

func (s *PostIndexImpl) DeletePost(ctx context.Context, id uint64) error {
	_, err := s.client.Delete(s.index, strconv.FormatUint(id, 10)).Do(ctx)
	if err != nil {
		var e *types.ElasticsearchError
		if errors.As(err, &e) && e.Status == NotFoundCode {
			return nil
		}
		return err
	}
	return nil
}

// DeleteIndexedBefore drops documents a full reindex did not touch.
func (s *PostIndexImpl) DeleteIndexedBefore(ctx context.Context, before time.Time) (int64, error) {
	lt := before.UTC().Format(time.RFC3339Nano)
	resp, err := s.client.DeleteByQuery(s.index).
		Query(&types.Query{
			Range: map[string]types.RangeQuery{
				"indexed_at": types.DateRangeQuery{Lt: &lt},
			},
		}).
		Conflicts(conflicts.Proceed).
		Do(ctx)
	if err != nil {
		return 0, err
	}
	if len(resp.Failures) != 0 {
		return 0, fmt.Errorf("post index: delete stale has %d failures", len(resp.Failures))
	}
	if resp.Deleted == nil {
		return 0, nil
	}
	return *resp.Deleted, nil
}

// SearchPublished case-insensitive containment of q in any locale field,
// newest first. Returns matching ids in order and the total hit count.
func (s *PostIndexImpl) SearchPublished(ctx context.Context, q string, from, size int) ([]uint64, int64, error) {
	req := s.client.Search().
		Index(s.index).
		Query(searchQuery(q)).
		Source_(&types.SourceFilter{Includes: []string{"id"}}).
		TrackTotalHits(true).
		From(from).
		Size(size)
	for _, field := range []string{"published_at", "created_at", "id"} {
		req.Sort(types.SortOptions{SortOptions: map[string]types.FieldSort{
			field: {Order: &sortorder.Desc, Missing: "_last"},
		}})
	}
	return s.executeSearch(ctx, req)
}

func searchQuery(q string) *types.Query {
	pattern := "*" + wildcardEscaper.Replace(q) + "*"
	caseInsensitive := true
	should := make([]types.Query, 0, len(repository.PostLocaleColumns))
	for _, col := range repository.PostLocaleColumns {
		should = append(should, types.Query{
			Wildcard: map[string]types.WildcardQuery{
				col: {Value: &pattern, CaseInsensitive: &caseInsensitive},
			},
		})
	}
	return &types.Query{
		Bool: &types.BoolQuery{
			Filter: []types.Query{
				{Term: map[string]types.TermQuery{"status": {Value: model.PostStatusPublished}}},
			},
			Should:             should,
			MinimumShouldMatch: 1,
		},
	}
}

func (s *PostIndexImpl) executeSearch(ctx context.Context, req *search.Search) ([]uint64, int64, error) {
	resp, err := req.Do(ctx)
	if err != nil {
		return nil, 0, err
	}

	ids := make([]uint64, 0, len(resp.Hits.Hits))
	for _, hit := range resp.Hits.Hits {
		if hit.Source_ == nil {
			continue
		}
		var doc struct {
			ID uint64 `json:"id"`
		}
		if err = json.Unmarshal(hit.Source_, &doc); err != nil {
			continue
		}
		ids = append(ids, doc.ID)
	}

	var total int64
	if resp.Hits.Total != nil {
		total = resp.Hits.Total.Value
	}
	return ids, total, nil
}
