package mysqlstmt

import (
	"strings"

	"mysqlstmt/common"
)

// UsingCols is a USING join condition over shared column names.
type UsingCols []string

// Using builds a USING join condition.
func Using(cols ...string) UsingCols {
	return UsingCols(cols)
}

// OnPair equates a column on an earlier table with a column on the joined
// table. Left uses the dotted shorthand: ".col" refers to the root table,
// "..col" to the previously joined table, "tab.col" to an explicit table.
type OnPair struct {
	Left  string
	Right string
}

// OnEq builds an OnPair join condition.
func OnEq(left, right string) OnPair {
	return OnPair{Left: left, Right: right}
}

type joinRef struct {
	kind      string
	table     string // may include " AS alias"
	using     []string
	conds     []string // raw ON conditions, AND-joined
	pair      *OnPair
	shorthand string // dotted column, resolved against root/previous at render
}

// joinClause collects the JOIN references of a statement. Condition forms:
//
//	"col"            USING (col)
//	".col"           ON root.col = joined.col
//	"..col"          ON previous.col = joined.col
//	[]string{...}    ON (cond AND cond ...)
//	Using("a", "b")  USING (a, b)
//	OnEq(".a", ".b") ON root.a = joined.b
type joinClause struct {
	joins []joinRef
}

func (j *joinClause) addJoin(s *stmt, kind, table string, cond interface{}) {
	kind = strings.ToUpper(strings.TrimSpace(kind))
	if kind == "" {
		kind = "JOIN"
	} else if !strings.HasSuffix(kind, "JOIN") {
		kind += " JOIN"
	}
	if table == "" {
		s.setErr(ErrNoTable)
		return
	}
	ref := joinRef{kind: kind, table: table}
	switch c := cond.(type) {
	case string:
		if c == "" {
			s.setErr(ErrInvalidJoinCond)
			return
		}
		if c[0] == '.' {
			ref.shorthand = c
		} else {
			ref.using = []string{c}
		}
	case UsingCols:
		if len(c) == 0 {
			s.setErr(ErrInvalidJoinCond)
			return
		}
		ref.using = c
	case []string:
		if len(c) == 0 {
			s.setErr(ErrInvalidJoinCond)
			return
		}
		ref.conds = c
	case OnPair:
		ref.pair = &c
	default:
		s.setErr(ErrInvalidJoinCond)
		return
	}
	j.joins = append(j.joins, ref)
}

// renderJoins writes the join clauses. rootRef is the first table reference
// of the statement, used to resolve the "." shorthand.
func (j *joinClause) renderJoins(s *stmt, rootRef string, buf common.BufferWriter) error {
	root := refAlias(rootRef)
	prev := root
	for i := range j.joins {
		ref := &j.joins[i]
		joined := refAlias(ref.table)

		buf.WriteString(" ")
		buf.WriteString(ref.kind)
		buf.WriteString(" ")
		buf.WriteString(ref.table)

		switch {
		case len(ref.using) > 0:
			buf.WriteString(" USING (")
			for i, col := range ref.using {
				if i > 0 {
					buf.WriteString(", ")
				}
				buf.WriteString(s.quoteColRef(col))
			}
			buf.WriteString(")")
		case len(ref.conds) > 0:
			buf.WriteString(" ON (")
			buf.WriteString(strings.Join(ref.conds, " AND "))
			buf.WriteString(")")
		case ref.pair != nil:
			ltab, lcol := resolveDotted(ref.pair.Left, root, prev)
			_, rcol := resolveDotted(ref.pair.Right, joined, joined)
			writeOnEquality(s, buf, ltab, lcol, joined, rcol)
		case ref.shorthand != "":
			ltab, lcol := resolveDotted(ref.shorthand, root, prev)
			writeOnEquality(s, buf, ltab, lcol, joined, lcol)
		}
		prev = joined
	}
	return nil
}

func writeOnEquality(s *stmt, buf common.BufferWriter, ltab, lcol, rtab, rcol string) {
	buf.WriteString(" ON (")
	buf.WriteString(ltab)
	buf.WriteString(".")
	buf.WriteString(s.quoteColRef(lcol))
	buf.WriteString(" = ")
	buf.WriteString(rtab)
	buf.WriteString(".")
	buf.WriteString(s.quoteColRef(rcol))
	buf.WriteString(")")
}

// refAlias returns the name a table reference goes by in conditions.
func refAlias(ref string) string {
	name, alias := splitAlias(ref)
	if alias != "" {
		return alias
	}
	return name
}

func resolveDotted(col, root, prev string) (table, field string) {
	if strings.HasPrefix(col, "..") {
		return prev, col[2:]
	}
	if strings.HasPrefix(col, ".") {
		return root, col[1:]
	}
	if i := strings.IndexByte(col, '.'); i >= 0 {
		return col[:i], col[i+1:]
	}
	return root, col
}
