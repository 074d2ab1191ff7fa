// Package postgres provides PostgreSQL implementations of repository interfaces.
package postgres

import (
	"strings"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/doug-martin/goqu/v9/exp"

	"content-service/internal/repository"
)

const contentTable = "content_items"

var contentColumns = []any{"id", "title", "content", "author_id", "publication_date", "tags"}

// ContentQueryBuilder renders the SELECT and COUNT statements used by List and Count.
// Both share one WHERE clause so paging totals always agree with the page.
// Statements are prepared, so values travel as $N arguments.
type ContentQueryBuilder struct {
	dialect goqu.DialectWrapper
}

// NewContentQueryBuilder creates a query builder for the postgres dialect.
func NewContentQueryBuilder() *ContentQueryBuilder {
	return &ContentQueryBuilder{dialect: goqu.Dialect("postgres")}
}

// Conditions converts the Tag and Query parts of filter into goqu expressions.
func (qb *ContentQueryBuilder) Conditions(filter repository.ContentFilter) []exp.Expression {
	var conds []exp.Expression
	if filter.Tag != "" {
		conds = append(conds, goqu.L("? = ANY(tags)", filter.Tag))
	}
	if filter.Query != "" {
		pattern := "%" + EscapeILIKE(filter.Query) + "%"
		conds = append(conds, goqu.Or(
			goqu.C("title").ILike(pattern),
			goqu.C("content").ILike(pattern),
		))
	}
	return conds
}

// Select builds the paged listing query ordered by id.
func (qb *ContentQueryBuilder) Select(filter repository.ContentFilter) (string, []any, error) {
	ds := qb.dialect.From(contentTable).Prepared(true).
		Select(contentColumns...).
		Where(qb.Conditions(filter)...).
		Order(goqu.C("id").Asc())
	if filter.Limit > 0 {
		ds = ds.Limit(uint(filter.Limit))
	}
	if filter.Offset > 0 {
		ds = ds.Offset(uint(filter.Offset))
	}
	return ds.ToSQL()
}

// Count builds the total query for filter; paging fields are ignored.
func (qb *ContentQueryBuilder) Count(filter repository.ContentFilter) (string, []any, error) {
	return qb.dialect.From(contentTable).Prepared(true).
		Select(goqu.COUNT(goqu.Star())).
		Where(qb.Conditions(filter)...).
		ToSQL()
}

var ilikeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeILIKE escapes the ILIKE wildcards in s so it matches literally.
func EscapeILIKE(s string) string {
	return ilikeEscaper.Replace(s)
}
