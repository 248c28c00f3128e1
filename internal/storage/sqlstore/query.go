package sqlstore

import (
	"fmt"
	"strings"

	"propwise/internal/domain"
)

// listingQuery accumulates predicate clauses and their bound parameters.
// Values only ever travel as arguments; the SQL text holds column names and placeholders.
type listingQuery struct {
	d          Dialect
	conditions []string
	args       []any
}

func newListingQuery(d Dialect) *listingQuery {
	return &listingQuery{d: d}
}

// where appends "<column> <op> <placeholder>".
func (q *listingQuery) where(column, op string, arg any) {
	q.args = append(q.args, arg)
	q.conditions = append(q.conditions, fmt.Sprintf("%s %s %s", column, op, q.d.placeholder(len(q.args))))
}

func (q *listingQuery) whereClause() string {
	if len(q.conditions) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(q.conditions, " AND ")
}

func orderClause(s domain.SortKey) string {
	switch s {
	case domain.SortPriceAsc:
		return " ORDER BY listed_price ASC, id DESC"
	case domain.SortPriceDesc:
		return " ORDER BY listed_price DESC, id DESC"
	default:
		return " ORDER BY id DESC"
	}
}

// builtQuery is the COUNT statement and the page statement for one filter.
type builtQuery struct {
	countSQL  string
	countArgs []any
	pageSQL   string
	pageArgs  []any
	page      int
}

func buildListingQuery(d Dialect, f domain.ListingFilter) builtQuery {
	q := newListingQuery(d)

	if f.Q != "" {
		q.where("location", d.like, "%"+f.Q+"%")
	}
	if f.Location != "" {
		q.where("location", "=", f.Location)
	}
	if f.BHK != nil {
		q.where("bhk", "=", *f.BHK)
	}
	if f.MinPrice != nil {
		q.where("listed_price", ">=", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q.where("listed_price", "<=", *f.MaxPrice)
	}

	page := f.Page
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * domain.PageSize

	where := q.whereClause()
	n := len(q.args)
	pageSQL := "SELECT " + listingColumns + " FROM properties" + where + orderClause(f.Sort) +
		fmt.Sprintf(" LIMIT %s OFFSET %s", d.placeholder(n+1), d.placeholder(n+2))

	pageArgs := make([]any, 0, n+2)
	pageArgs = append(pageArgs, q.args...)
	pageArgs = append(pageArgs, domain.PageSize, offset)

	return builtQuery{
		countSQL:  countListingsSQL + where,
		countArgs: q.args,
		pageSQL:   pageSQL,
		pageArgs:  pageArgs,
		page:      page,
	}
}
