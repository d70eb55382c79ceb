// Package pagination turns page/itemsPerPage/orderBy/order query input into
// a bounded fetch plus a matching count and assembles the listing envelope.
package pagination

import (
	"context"
	"math"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/oksasatya/go-blog-api/internal/domain/errs"
)

type Order string

const (
	Asc  Order = "asc"
	Desc Order = "desc"
)

const (
	DefaultPage         = 1
	DefaultItemsPerPage = 10
	DefaultOrderBy      = "createdAt"
)

// Params is bound straight from the query string. No upper bound is put on
// ItemsPerPage.
type Params struct {
	Page         int    `form:"page,default=1" json:"page"`
	ItemsPerPage int    `form:"itemsPerPage,default=10" json:"itemsPerPage"`
	OrderBy      string `form:"orderBy" json:"orderBy,omitempty"`
	Order        Order  `form:"order" json:"order,omitempty"`
}

// Normalize clamps page and itemsPerPage to at least 1.
func (p Params) Normalize() Params {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.ItemsPerPage < 1 {
		p.ItemsPerPage = 1
	}
	return p
}

// Window is the (skip, take) pair for a normalized Params.
type Window struct {
	Skip int
	Take int
}

// Window saturates Skip at math.MaxInt instead of overflowing.
func (p Params) Window() Window {
	p = p.Normalize()
	if p.Page-1 > math.MaxInt/p.ItemsPerPage {
		return Window{Skip: math.MaxInt, Take: p.ItemsPerPage}
	}
	return Window{Skip: (p.Page - 1) * p.ItemsPerPage, Take: p.ItemsPerPage}
}

// Exhausted reports a saturated window, which no table can reach.
func (w Window) Exhausted() bool { return w.Skip == math.MaxInt }

// TotalPages is ceil(total/perPage), 0 for an empty set.
func TotalPages(total int64, perPage int) int {
	if total <= 0 || perPage < 1 {
		return 0
	}
	per := int64(perPage)
	n := total / per
	if total%per != 0 {
		n++
	}
	return int(n)
}

// Sort is a resolved ordering on a real column.
type Sort struct {
	Column string
	Order  Order
}

// Clause renders the ORDER BY expression; id breaks ties in the same direction.
func (s Sort) Clause(idColumn string) string {
	dir := strings.ToUpper(string(s.Order))
	if idColumn == "" || idColumn == s.Column {
		return s.Column + " " + dir
	}
	return s.Column + " " + dir + ", " + idColumn + " " + dir
}

// Fields maps public field names to SQL columns. Anything not listed cannot be
// ordered on.
type Fields map[string]string

func (f Fields) Resolve(orderBy string, order Order) (Sort, error) {
	if orderBy == "" {
		orderBy = DefaultOrderBy
	}
	col, ok := f[orderBy]
	if !ok {
		return Sort{}, &errs.InvalidFieldError{Field: orderBy}
	}
	switch Order(strings.ToLower(string(order))) {
	case "", Asc:
		return Sort{Column: col, Order: Asc}, nil
	case Desc:
		return Sort{Column: col, Order: Desc}, nil
	default:
		return Sort{}, errs.Invalid("order", `must be "asc" or "desc"`)
	}
}

// Query is what a repository needs to produce one page.
type Query struct {
	Window
	Sort Sort
}

type Page[T any] struct {
	Data       []T   `json:"data"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

type FetchFunc[T any] func(ctx context.Context, q Query) ([]T, error)

type CountFunc func(ctx context.Context) (int64, error)

// Paginate runs fetch and count as two independent round trips. Both closures
// must apply the same filter or total will not describe data.
func Paginate[T any](ctx context.Context, p Params, fields Fields, fetch FetchFunc[T], count CountFunc) (*Page[T], error) {
	p = p.Normalize()
	sort, err := fields.Resolve(p.OrderBy, p.Order)
	if err != nil {
		return nil, err
	}
	q := Query{Window: p.Window(), Sort: sort}

	var (
		rows  []T
		total int64
	)
	g, gctx := errgroup.WithContext(ctx)
	if !q.Exhausted() {
		g.Go(func() error {
			var err error
			rows, err = fetch(gctx, q)
			return err
		})
	}
	g.Go(func() error {
		var err error
		total, err = count(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []T{}
	}
	return &Page[T]{
		Data:       rows,
		Total:      total,
		Page:       p.Page,
		Limit:      p.ItemsPerPage,
		TotalPages: TotalPages(total, p.ItemsPerPage),
	}, nil
}

// Map converts every item of a page, keeping the counters. The first mapping
// error aborts.
func Map[T, U any](in *Page[T], fn func(T) (U, error)) (*Page[U], error) {
	out := &Page[U]{
		Data:       make([]U, 0, len(in.Data)),
		Total:      in.Total,
		Page:       in.Page,
		Limit:      in.Limit,
		TotalPages: in.TotalPages,
	}
	for _, item := range in.Data {
		v, err := fn(item)
		if err != nil {
			return nil, err
		}
		out.Data = append(out.Data, v)
	}
	return out, nil
}
