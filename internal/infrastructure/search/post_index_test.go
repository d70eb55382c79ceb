package search_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-blog-api/internal/domain/repository"
	"github.com/oksasatya/go-blog-api/internal/infrastructure/search"
	"github.com/oksasatya/go-blog-api/pkg/helpers"
)

type recorded struct {
	method string
	path   string
	body   string
}

// fakeES answers just enough of the REST API for the index.
func fakeES(t *testing.T, index, searchReply string) (*search.PostIndex, func() []recorded) {
	t.Helper()
	var (
		mu   sync.Mutex
		reqs []recorded
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		mu.Lock()
		reqs = append(reqs, recorded{method: r.Method, path: r.URL.Path, body: string(b)})
		mu.Unlock()

		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodHead && r.URL.Path == "/missing":
			w.WriteHeader(http.StatusNotFound)
		case r.Method == http.MethodHead:
			w.WriteHeader(http.StatusOK)
		case strings.HasSuffix(r.URL.Path, "/_search"):
			_, _ = io.WriteString(w, searchReply)
		case r.Method == http.MethodDelete && strings.HasSuffix(r.URL.Path, "/404"):
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"result":"not_found"}`)
		default:
			_, _ = io.WriteString(w, `{"result":"created"}`)
		}
	}))
	t.Cleanup(srv.Close)

	es, err := helpers.NewESClient([]string{srv.URL}, "", "")
	require.NoError(t, err)
	return search.NewPostIndex(es, index), func() []recorded {
		mu.Lock()
		defer mu.Unlock()
		return append([]recorded(nil), reqs...)
	}
}

func TestPostIndex_Index(t *testing.T) {
	idx, reqs := fakeES(t, "posts", `{}`)

	err := idx.Index(context.Background(), repository.PostDocument{ID: 12, Title: "Hello", AuthorName: "Jane"})
	require.NoError(t, err)

	got := reqs()
	require.Len(t, got, 1)
	assert.Equal(t, http.MethodPut, got[0].method)
	assert.Equal(t, "/posts/_doc/12", got[0].path)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(got[0].body), &doc))
	assert.Equal(t, "Hello", doc["title"])
	assert.Equal(t, "Jane", doc["authorName"])
}

func TestPostIndex_RemoveIgnoresMissing(t *testing.T) {
	idx, reqs := fakeES(t, "posts", `{}`)

	require.NoError(t, idx.Remove(context.Background(), 5))
	require.NoError(t, idx.Remove(context.Background(), 404))

	got := reqs()
	require.Len(t, got, 2)
	assert.Equal(t, http.MethodDelete, got[0].method)
	assert.Equal(t, "/posts/_doc/5", got[0].path)
	assert.Equal(t, "/posts/_doc/404", got[1].path)
}

func TestPostIndex_Search(t *testing.T) {
	reply := `{"hits":{"hits":[{"_id":"3"},{"_id":"bogus"},{"_id":"1"}]}}`
	idx, reqs := fakeES(t, "posts", reply)

	ids, err := idx.Search(context.Background(), "golang", 5)
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 1}, ids)

	got := reqs()
	require.Len(t, got, 1)
	assert.Equal(t, "/posts/_search", got[0].path)
	assert.Contains(t, got[0].body, `"multi_match"`)
	assert.Contains(t, got[0].body, `"golang"`)
	assert.Contains(t, got[0].body, `"size":5`)
}

func TestPostIndex_EnsureIndex(t *testing.T) {
	idx, reqs := fakeES(t, "missing", `{}`)
	require.NoError(t, idx.EnsureIndex(context.Background()))

	got := reqs()
	require.Len(t, got, 2)
	assert.Equal(t, http.MethodHead, got[0].method)
	assert.Equal(t, http.MethodPut, got[1].method)
	assert.Equal(t, "/missing", got[1].path)
	assert.Contains(t, got[1].body, `"authorName"`)

	idx, reqs = fakeES(t, "posts", `{}`)
	require.NoError(t, idx.EnsureIndex(context.Background()))
	assert.Len(t, reqs(), 1)
}
