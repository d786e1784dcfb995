// Package querybuilder composes SELECT statements from an explicit set of
// optional predicates, combined conjunctively. Callers append a Condition
// only when its filter applies, then evaluate the builder once.
package querybuilder

import (
	"fmt"
	"strconv"
	"strings"
)

type Condition interface {
	appendSQL(buf *strings.Builder, args *[]any)
}

type eqCondition struct {
	column string
	value  any
}

// Eq matches rows where column equals value.
func Eq(column string, value any) Condition {
	return eqCondition{column: column, value: value}
}

func (c eqCondition) appendSQL(buf *strings.Builder, args *[]any) {
	buf.WriteString(c.column)
	buf.WriteString(" = ?")
	*args = append(*args, c.value)
}

type ltCondition struct {
	column string
	value  any
}

// Lt matches rows where column is strictly less than value.
func Lt(column string, value any) Condition {
	return ltCondition{column: column, value: value}
}

func (c ltCondition) appendSQL(buf *strings.Builder, args *[]any) {
	buf.WriteString(c.column)
	buf.WriteString(" < ?")
	*args = append(*args, c.value)
}

type gteCondition struct {
	column string
	value  any
}

// Gte matches rows where column is greater than or equal to value.
func Gte(column string, value any) Condition {
	return gteCondition{column: column, value: value}
}

func (c gteCondition) appendSQL(buf *strings.Builder, args *[]any) {
	buf.WriteString(c.column)
	buf.WriteString(" >= ?")
	*args = append(*args, c.value)
}

type inCondition struct {
	column string
	values []any
}

// In matches rows where column is one of values. An empty value list
// matches nothing.
func In(column string, values []any) Condition {
	return inCondition{column: column, values: values}
}

func (c inCondition) appendSQL(buf *strings.Builder, args *[]any) {
	if len(c.values) == 0 {
		buf.WriteString("1=0")
		return
	}
	buf.WriteString(c.column)
	buf.WriteString(" IN (")
	for i, v := range c.values {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString("?")
		*args = append(*args, v)
	}
	buf.WriteString(")")
}

type orCondition struct {
	conditions []Condition
}

// Or matches rows satisfying any of the given conditions.
func Or(conditions ...Condition) Condition {
	return orCondition{conditions: conditions}
}

func (c orCondition) appendSQL(buf *strings.Builder, args *[]any) {
	buf.WriteString("(")
	for i, cond := range c.conditions {
		if i > 0 {
			buf.WriteString(" OR ")
		}
		cond.appendSQL(buf, args)
	}
	buf.WriteString(")")
}

type SelectBuilder struct {
	columns []string
	table   string
	where   []Condition
	orderBy []string
	limit   int
	offset  int
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: append([]string(nil), columns...)}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

func (b *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *SelectBuilder) OrderBy(parts ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, parts...)
	return b
}

func (b *SelectBuilder) Limit(limit int) *SelectBuilder {
	b.limit = limit
	return b
}

func (b *SelectBuilder) Offset(offset int) *SelectBuilder {
	b.offset = offset
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("select columns are required")
	}
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("select table is required")
	}

	var buf strings.Builder
	buf.WriteString("SELECT ")
	buf.WriteString(strings.Join(b.columns, ", "))
	buf.WriteString(" FROM ")
	buf.WriteString(b.table)

	args := make([]any, 0, len(b.where))
	if len(b.where) > 0 {
		buf.WriteString(" WHERE ")
		for i, c := range b.where {
			if i > 0 {
				buf.WriteString(" AND ")
			}
			c.appendSQL(&buf, &args)
		}
	}
	if len(b.orderBy) > 0 {
		buf.WriteString(" ORDER BY ")
		buf.WriteString(strings.Join(b.orderBy, ", "))
	}
	if b.limit > 0 {
		buf.WriteString(" LIMIT ")
		buf.WriteString(strconv.Itoa(b.limit))
	}
	if b.offset > 0 {
		buf.WriteString(" OFFSET ")
		buf.WriteString(strconv.Itoa(b.offset))
	}

	return buf.String(), args, nil
}
