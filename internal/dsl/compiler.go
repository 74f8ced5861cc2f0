package dsl

import (
	"strconv"
	"strings"
)

// Compile parses and compiles a query string to a parameterised SQL
// WHERE fragment and its bind values (spec §4.C). The returned SQL never
// contains any user-supplied literal inline; every value is a '?'-style
// placeholder position, later rendered with Postgres's $N syntax by the
// caller (offerings.sql.go QueryOfferings numbers them $1..$n, ahead of
// its own LIMIT/OFFSET binds).
func Compile(query string) (string, []interface{}, error) {
	filters, err := Parse(query)
	if err != nil {
		return "", nil, err
	}

	var clauses []string
	var binds []interface{}

	for _, f := range filters {
		def, ok := Allowlist[f.Field]
		if !ok {
			return "", nil, unknownField(f.Field)
		}

		clause, values, err := compileFilter(f, def)
		if err != nil {
			return "", nil, err
		}
		clauses = append(clauses, clause)
		binds = append(binds, values...)
	}

	return strings.Join(clauses, " AND "), binds, nil
}

func compileFilter(f Filter, def FieldDef) (string, []interface{}, error) {
	switch f.Op {
	case "range":
		lo, err := coerce(f.Field, def, f.Values[0])
		if err != nil {
			return "", nil, err
		}
		hi, err := coerce(f.Field, def, f.Values[1])
		if err != nil {
			return "", nil, err
		}
		clause := def.Column + " BETWEEN ? AND ?"
		return negateWrap(f.Negated, clause), []interface{}{lo, hi}, nil

	case "or":
		var parts []string
		var values []interface{}
		for _, raw := range f.Values {
			v, err := coerce(f.Field, def, raw)
			if err != nil {
				return "", nil, err
			}
			parts = append(parts, eqClause(def))
			values = append(values, v)
		}
		clause := "(" + strings.Join(parts, " OR ") + ")"
		return negateWrap(f.Negated, clause), values, nil

	case ">=", "<=", ">", "<":
		v, err := coerce(f.Field, def, f.Values[0])
		if err != nil {
			return "", nil, err
		}
		op := f.Op
		if f.Negated {
			op = invertOp(op)
			return def.Column + " " + op + " ?", []interface{}{v}, nil
		}
		return def.Column + " " + op + " ?", []interface{}{v}, nil

	default: // plain equality / contains
		v, err := coerce(f.Field, def, f.Values[0])
		if err != nil {
			return "", nil, err
		}
		clause := eqClause(def)
		return negateWrap(f.Negated, clause), []interface{}{v}, nil
	}
}

// eqClause renders one equality/contains comparison: LIKE '%' || ? || '%'
// for LIKE-enabled text fields, 'col = ?' otherwise. The column is cast to
// text for LIKE fields since not every LIKE-enabled field backs onto a text
// column (memory_gib is integer; spec §4.C still calls for substring match
// on it), and LIKE is undefined against a non-text operand in Postgres.
func eqClause(def FieldDef) string {
	if def.Like {
		return "CAST(" + def.Column + " AS TEXT) LIKE '%' || ? || '%'"
	}
	return def.Column + " = ?"
}

func negateWrap(negated bool, clause string) string {
	if !negated {
		return clause
	}
	return "NOT (" + clause + ")"
}

// invertOp flips an ordered comparison operator for a negated filter
// (spec §4.C: "inverts the comparison for ordered ops").
func invertOp(op string) string {
	switch op {
	case ">=":
		return "<"
	case "<=":
		return ">"
	case ">":
		return "<="
	case "<":
		return ">="
	}
	return op
}

func coerce(field string, def FieldDef, raw string) (interface{}, error) {
	switch def.Type {
	case TypeInteger:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, typeMismatch(field, "integer")
		}
		return n, nil
	case TypeFloat:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, typeMismatch(field, "number")
		}
		return f, nil
	case TypeBool:
		b, err := strconv.ParseBool(strings.ToLower(raw))
		if err != nil {
			return nil, typeMismatch(field, "boolean")
		}
		return b, nil
	default: // text, csv_text
		return raw, nil
	}
}
