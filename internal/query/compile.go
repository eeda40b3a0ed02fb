package query

import (
	"fmt"
	"strings"

	"github.com/lib/pq"
)

// Dialect selects the SQL flavor predicates compile to.
type Dialect int

const (
	Postgres Dialect = iota
	SQLite
)

// SupportsInQueryAggregation reports whether the dialect can extract numbers
// from price text inside the aggregate query. SQLite cannot, so summaries
// fall back to application-side grouping.
func (d Dialect) SupportsInQueryAggregation() bool {
	return d == Postgres
}

func (d Dialect) placeholder(n int) string {
	if d == Postgres {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

// Compile renders a predicate list as a parameterized WHERE clause (without
// the WHERE keyword) plus its argument list. An empty predicate list yields
// an empty clause. Column names come from the fixed constants in this
// package, never from caller input.
func Compile(d Dialect, preds []Predicate) (string, []any) {
	var clauses []string
	var args []any

	for _, p := range preds {
		switch p.Op {
		case OpEq:
			clauses = append(clauses, fmt.Sprintf("%s = %s", p.Column, d.placeholder(len(args)+1)))
			args = append(args, p.Value)
		case OpGTE:
			clauses = append(clauses, fmt.Sprintf("%s >= %s", p.Column, d.placeholder(len(args)+1)))
			args = append(args, p.Value)
		case OpLTE:
			clauses = append(clauses, fmt.Sprintf("%s <= %s", p.Column, d.placeholder(len(args)+1)))
			args = append(args, p.Value)
		case OpIn:
			values := p.Value.([]string)
			if len(values) == 0 {
				// Empty membership matches nothing; SQLite rejects "IN ()".
				clauses = append(clauses, "1 = 0")
				continue
			}
			if d == Postgres {
				clauses = append(clauses, fmt.Sprintf("%s = ANY(%s)", p.Column, d.placeholder(len(args)+1)))
				args = append(args, pq.Array(values))
			} else {
				marks := make([]string, len(values))
				for i, v := range values {
					marks[i] = "?"
					args = append(args, v)
				}
				clauses = append(clauses, fmt.Sprintf("%s IN (%s)", p.Column, strings.Join(marks, ", ")))
			}
		case OpContains:
			clauses = append(clauses, fmt.Sprintf("%s LIKE %s", p.Column, d.placeholder(len(args)+1)))
			args = append(args, "%"+fmt.Sprintf("%v", p.Value)+"%")
		case OpIContains:
			n := d.placeholder(len(args) + 1)
			if d == Postgres {
				clauses = append(clauses, fmt.Sprintf("%s ILIKE %s", p.Column, n))
			} else {
				clauses = append(clauses, fmt.Sprintf("LOWER(%s) LIKE LOWER(%s)", p.Column, n))
			}
			args = append(args, "%"+fmt.Sprintf("%v", p.Value)+"%")
		}
	}

	return strings.Join(clauses, " AND "), args
}
