package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/oksasatya/go-blog-api/internal/domain/repository"
)

// PostIndex keeps a full-text copy of posts in Elasticsearch.
type PostIndex struct {
	es    *elasticsearch.Client
	index string
}

func NewPostIndex(es *elasticsearch.Client, index string) *PostIndex {
	return &PostIndex{es: es, index: index}
}

const postMapping = `{
  "mappings": {
    "properties": {
      "id":         {"type": "long"},
      "title":      {"type": "text"},
      "subtitle":   {"type": "text"},
      "content":    {"type": "text"},
      "authorId":   {"type": "long"},
      "authorName": {"type": "text", "fields": {"keyword": {"type": "keyword"}}},
      "published":  {"type": "boolean"},
      "createdAt":  {"type": "date"}
    }
  }
}`

// EnsureIndex creates the index with its mapping when it does not exist yet.
func (p *PostIndex) EnsureIndex(ctx context.Context) error {
	exists, err := esapi.IndicesExistsRequest{Index: []string{p.index}}.Do(ctx, p.es)
	if err != nil {
		return err
	}
	_ = exists.Body.Close()
	if exists.StatusCode == http.StatusOK {
		return nil
	}
	if exists.StatusCode != http.StatusNotFound {
		return fmt.Errorf("es check index %s: %s", p.index, exists.Status())
	}

	res, err := esapi.IndicesCreateRequest{Index: p.index, Body: strings.NewReader(postMapping)}.Do(ctx, p.es)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("es create index %s: %s", p.index, res.Status())
	}
	return nil
}

func (p *PostIndex) Index(ctx context.Context, doc repository.PostDocument) error {
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{
		Index:      p.index,
		DocumentID: strconv.FormatInt(doc.ID, 10),
		Body:       bytes.NewReader(b),
		Refresh:    "false",
	}
	res, err := req.Do(ctx, p.es)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("es index post %d: %s", doc.ID, res.Status())
	}
	return nil
}

// Remove treats a missing document as already removed.
func (p *PostIndex) Remove(ctx context.Context, id int64) error {
	req := esapi.DeleteRequest{Index: p.index, DocumentID: strconv.FormatInt(id, 10)}
	res, err := req.Do(ctx, p.es)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("es delete post %d: %s", id, res.Status())
	}
	return nil
}

// Search runs a multi_match over title, subtitle and content and returns
// matching post ids by score.
func (p *PostIndex) Search(ctx context.Context, q string, size int) ([]int64, error) {
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"title^3", "subtitle^2", "content", "authorName"},
			},
		},
		"size":    size,
		"_source": false,
	}
	b, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}
	res, err := p.es.Search(
		p.es.Search.WithContext(ctx),
		p.es.Search.WithIndex(p.index),
		p.es.Search.WithBody(bytes.NewReader(b)),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("es search: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		id, err := strconv.ParseInt(h.ID, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

var _ repository.PostSearchIndex = (*PostIndex)(nil)
