package pagination_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-blog-api/internal/domain/errs"
	"github.com/oksasatya/go-blog-api/internal/domain/pagination"
)

var fields = pagination.Fields{
	"id":        "id",
	"createdAt": "created_at",
	"title":     "title",
}

// memSource serves a fixed slice the way a repository would.
func memSource(items []int) (pagination.FetchFunc[int], pagination.CountFunc) {
	fetch := func(_ context.Context, q pagination.Query) ([]int, error) {
		if q.Skip >= len(items) {
			return nil, nil
		}
		end := q.Skip + q.Take
		if end > len(items) {
			end = len(items)
		}
		return append([]int(nil), items[q.Skip:end]...), nil
	}
	count := func(context.Context) (int64, error) { return int64(len(items)), nil }
	return fetch, count
}

func TestNormalize(t *testing.T) {
	p := pagination.Params{Page: -3, ItemsPerPage: 0}.Normalize()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 1, p.ItemsPerPage)

	p = pagination.Params{Page: 4, ItemsPerPage: 5000}.Normalize()
	assert.Equal(t, 4, p.Page)
	assert.Equal(t, 5000, p.ItemsPerPage, "no upper bound")
}

func TestWindow(t *testing.T) {
	assert.Equal(t, pagination.Window{Skip: 0, Take: 10}, pagination.Params{Page: 1, ItemsPerPage: 10}.Window())
	assert.Equal(t, pagination.Window{Skip: 20, Take: 10}, pagination.Params{Page: 3, ItemsPerPage: 10}.Window())
	assert.Equal(t, pagination.Window{Skip: 0, Take: 1}, pagination.Params{}.Window())
}

func TestWindowSaturatesInsteadOfOverflowing(t *testing.T) {
	w := pagination.Params{Page: math.MaxInt, ItemsPerPage: 2}.Window()
	assert.Equal(t, math.MaxInt, w.Skip)
	assert.Equal(t, 2, w.Take)
	assert.True(t, w.Exhausted())

	w = pagination.Params{Page: 2, ItemsPerPage: math.MaxInt}.Window()
	assert.Equal(t, math.MaxInt, w.Skip)

	assert.False(t, pagination.Params{Page: 3, ItemsPerPage: 10}.Window().Exhausted())
}

func TestTotalPages(t *testing.T) {
	cases := []struct {
		total   int64
		perPage int
		want    int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{5, 2, 3},
		{7, 1, 7},
		{5, math.MaxInt, 1},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, pagination.TotalPages(tc.total, tc.perPage), "total=%d perPage=%d", tc.total, tc.perPage)
	}
}

func TestResolve(t *testing.T) {
	s, err := fields.Resolve("", "")
	require.NoError(t, err)
	assert.Equal(t, pagination.Sort{Column: "created_at", Order: pagination.Asc}, s)

	s, err = fields.Resolve("title", "DESC")
	require.NoError(t, err)
	assert.Equal(t, pagination.Sort{Column: "title", Order: pagination.Desc}, s)

	_, err = fields.Resolve("password", pagination.Asc)
	assert.ErrorIs(t, err, errs.ErrInvalidField)

	_, err = fields.Resolve("title", "sideways")
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestSortClause(t *testing.T) {
	s := pagination.Sort{Column: "posts.created_at", Order: pagination.Desc}
	assert.Equal(t, "posts.created_at DESC, posts.id DESC", s.Clause("posts.id"))
	assert.Equal(t, "posts.id ASC", pagination.Sort{Column: "posts.id", Order: pagination.Asc}.Clause("posts.id"))
}

func TestPaginateFirstPage(t *testing.T) {
	fetch, count := memSource([]int{1, 2, 3, 4, 5})

	page, err := pagination.Paginate(context.Background(), pagination.Params{Page: 1, ItemsPerPage: 2}, fields, fetch, count)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, page.Data)
	assert.EqualValues(t, 5, page.Total)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 2, page.Limit)
	assert.Equal(t, 3, page.TotalPages)
}

func TestPaginateBeyondLastPage(t *testing.T) {
	fetch, count := memSource([]int{1, 2, 3, 4, 5})

	page, err := pagination.Paginate(context.Background(), pagination.Params{Page: 10, ItemsPerPage: 2}, fields, fetch, count)
	require.NoError(t, err)
	assert.NotNil(t, page.Data)
	assert.Empty(t, page.Data)
	assert.EqualValues(t, 5, page.Total)
	assert.Equal(t, 3, page.TotalPages)

	fetched := false
	_, count = memSource([]int{1, 2, 3, 4, 5})
	onlyCount := func(context.Context, pagination.Query) ([]int, error) { fetched = true; return []int{1}, nil }
	page, err = pagination.Paginate(context.Background(), pagination.Params{Page: math.MaxInt, ItemsPerPage: 2}, fields, onlyCount, count)
	require.NoError(t, err)
	assert.False(t, fetched, "a saturated window must not reach storage")
	assert.NotNil(t, page.Data)
	assert.Empty(t, page.Data)
	assert.Equal(t, math.MaxInt, page.Page)
	assert.EqualValues(t, 5, page.Total)
	assert.Equal(t, 3, page.TotalPages)
}

func TestPaginateBoundsHoldForAllWindows(t *testing.T) {
	items := make([]int, 23)
	for i := range items {
		items[i] = i
	}
	fetch, count := memSource(items)

	for perPage := 1; perPage <= 25; perPage++ {
		for p := 1; p <= 30; p++ {
			page, err := pagination.Paginate(context.Background(), pagination.Params{Page: p, ItemsPerPage: perPage}, fields, fetch, count)
			require.NoError(t, err)
			assert.LessOrEqual(t, len(page.Data), perPage)
			assert.Equal(t, pagination.TotalPages(page.Total, perPage), page.TotalPages)
		}
	}
}

func TestPaginateRejectsUnknownField(t *testing.T) {
	called := false
	fetch := func(context.Context, pagination.Query) ([]int, error) { called = true; return nil, nil }
	count := func(context.Context) (int64, error) { called = true; return 0, nil }

	_, err := pagination.Paginate(context.Background(), pagination.Params{OrderBy: "nope"}, fields, fetch, count)
	assert.ErrorIs(t, err, errs.ErrInvalidField)
	assert.False(t, called, "no query should run for a bad orderBy")
}

func TestPaginatePropagatesStorageErrors(t *testing.T) {
	boom := errors.New("connection reset")
	fetch, _ := memSource([]int{1})
	count := func(context.Context) (int64, error) { return 0, boom }

	_, err := pagination.Paginate(context.Background(), pagination.Params{}, fields, fetch, count)
	assert.ErrorIs(t, err, boom)
}

func TestMap(t *testing.T) {
	in := &pagination.Page[int]{Data: []int{1, 2}, Total: 9, Page: 2, Limit: 2, TotalPages: 5}
	out, err := pagination.Map(in, func(v int) (string, error) { return string(rune('a' + v)), nil })
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c"}, out.Data)
	assert.EqualValues(t, 9, out.Total)
	assert.Equal(t, 5, out.TotalPages)

	_, err = pagination.Map(in, func(int) (string, error) { return "", errs.ErrDanglingReference })
	assert.ErrorIs(t, err, errs.ErrDanglingReference)
}
