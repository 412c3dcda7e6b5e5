package mysqlstmt

import (
	"bytes"
	"sort"
	"strings"

	"mysqlstmt/common"
)

// operators accepted by the value-compare forms
var validOps = map[string]bool{
	"=":        true,
	"<>":       true,
	"<":        true,
	"<=":       true,
	">":        true,
	">=":       true,
	"LIKE":     true,
	"NOT LIKE": true,
	"IN":       true,
	"NOT IN":   true,
	"IS":       true,
	"IS NOT":   true,
}

type condKind int

const (
	condGroup condKind = iota
	condValue
	condRaw
	condExpr
	condSelect
	condBetween
)

type condNode struct {
	kind   condKind
	group  *Cond
	col    string
	op     string
	value  interface{}
	value2 interface{} // BETWEEN upper bound
	raw    string
	params []interface{}
	sub    *SelectBuilder
}

// Cond is a group of predicate expressions joined by AND or OR. Groups nest
// to any depth and are never flattened, so mixed AND/OR precedence is always
// explicit in the output. An empty group renders nothing.
type Cond struct {
	predicate string
	nodes     []condNode
	err       error
}

// NewCond creates a condition group. predicate must be "AND" or "OR".
func NewCond(predicate string) *Cond {
	c := &Cond{predicate: strings.ToUpper(strings.TrimSpace(predicate))}
	if c.predicate != "AND" && c.predicate != "OR" {
		c.err = ErrInvalidPredicate
	}
	return c
}

func (c *Cond) fail(err error) {
	if c.err == nil {
		c.err = err
	}
}

// And adds a nested AND group and returns the new group.
func (c *Cond) And() *Cond {
	g := NewCond("AND")
	c.nodes = append(c.nodes, condNode{kind: condGroup, group: g})
	return g
}

// Or adds a nested OR group and returns the new group.
func (c *Cond) Or() *Cond {
	g := NewCond("OR")
	c.nodes = append(c.nodes, condNode{kind: condGroup, group: g})
	return g
}

// Group attaches a caller-built group.
func (c *Cond) Group(sub *Cond) *Cond {
	c.nodes = append(c.nodes, condNode{kind: condGroup, group: sub})
	return c
}

// Eq adds "col = value". A slice value compares with IN, nil with IS NULL,
// an *Expression with its raw SQL and a *SelectBuilder as a subquery.
func (c *Cond) Eq(col string, value interface{}) *Cond {
	return c.Op(col, "=", value)
}

// Op adds "col op value" with the same value handling as Eq.
func (c *Cond) Op(col, op string, value interface{}) *Cond {
	op = strings.ToUpper(strings.TrimSpace(op))
	if op == "!=" {
		op = "<>"
	}
	if !validOps[op] {
		c.fail(ErrInvalidOperator)
		return c
	}
	switch v := value.(type) {
	case *SelectBuilder:
		c.nodes = append(c.nodes, condNode{kind: condSelect, col: col, op: op, sub: v})
	case *Expression:
		c.nodes = append(c.nodes, condNode{kind: condRaw, col: col, op: op, raw: v.Sql, params: v.Args})
	default:
		c.nodes = append(c.nodes, condNode{kind: condValue, col: col, op: op, value: value})
	}
	return c
}

// EqAll adds an equality compare per map entry in sorted key order.
func (c *Cond) EqAll(eq Eq) *Cond {
	for _, col := range sortedKeys(eq) {
		c.Eq(col, eq[col])
	}
	return c
}

// Raw adds "col op raw" where raw is written verbatim. params are appended
// as args in placeholder mode and interpolated otherwise.
func (c *Cond) Raw(col, op, raw string, params ...interface{}) *Cond {
	if col == "" || op == "" {
		c.fail(ErrInvalidOperator)
		return c
	}
	c.nodes = append(c.nodes, condNode{kind: condRaw, col: col, op: strings.ToUpper(strings.TrimSpace(op)), raw: raw, params: params})
	return c
}

// Expr adds a free-form predicate expression.
func (c *Cond) Expr(expr string, params ...interface{}) *Cond {
	c.nodes = append(c.nodes, condNode{kind: condExpr, raw: expr, params: params})
	return c
}

// Between adds "col BETWEEN lo AND hi".
func (c *Cond) Between(col string, lo, hi interface{}) *Cond {
	c.nodes = append(c.nodes, condNode{kind: condBetween, col: col, value: lo, value2: hi})
	return c
}

func (c *Cond) isEmpty() bool {
	for _, n := range c.nodes {
		if n.kind != condGroup || !n.group.isEmpty() {
			return false
		}
	}
	return true
}

// render writes the group and reports whether anything was written. Parens
// wrap the group only when it yields more than one expression.
func (c *Cond) render(s *stmt, buf common.BufferWriter, args *[]interface{}) (bool, error) {
	if c.err != nil {
		return false, c.err
	}
	var frags []string
	for i := range c.nodes {
		var nb bytes.Buffer
		wrote, err := c.nodes[i].render(s, &nb, args)
		if err != nil {
			return false, err
		}
		if wrote {
			frags = append(frags, nb.String())
		}
	}
	switch len(frags) {
	case 0:
		return false, nil
	case 1:
		buf.WriteString(frags[0])
	default:
		buf.WriteString("(")
		buf.WriteString(strings.Join(frags, " "+c.predicate+" "))
		buf.WriteString(")")
	}
	return true, nil
}

func (n *condNode) render(s *stmt, buf *bytes.Buffer, args *[]interface{}) (bool, error) {
	switch n.kind {
	case condGroup:
		return n.group.render(s, buf, args)
	case condValue:
		return true, n.renderValue(s, buf, args)
	case condRaw:
		buf.WriteString(s.quoteColRef(n.col))
		buf.WriteString(" ")
		buf.WriteString(n.op)
		buf.WriteString(" ")
		return true, s.writeRaw(buf, n.raw, n.params, args)
	case condExpr:
		return true, s.writeRaw(buf, n.raw, n.params, args)
	case condBetween:
		buf.WriteString(s.quoteColRef(n.col))
		buf.WriteString(" BETWEEN ")
		if err := s.writeValue(buf, n.value, args); err != nil {
			return false, err
		}
		buf.WriteString(" AND ")
		return true, s.writeValue(buf, n.value2, args)
	case condSelect:
		buf.WriteString(s.quoteColRef(n.col))
		buf.WriteString(" ")
		buf.WriteString(n.op)
		buf.WriteString(" ")
		return true, s.writeSubquery(buf, n.sub, args)
	}
	return false, nil
}

// renderValue handles the nil and slice semantics of a plain comparison.
func (n *condNode) renderValue(s *stmt, buf *bytes.Buffer, args *[]interface{}) error {
	col := s.quoteColRef(n.col)

	if n.value == nil {
		switch n.op {
		case "=", "IS", "IN":
			buf.WriteString(col)
			buf.WriteString(" IS NULL")
		case "<>", "IS NOT", "NOT IN":
			buf.WriteString(col)
			buf.WriteString(" IS NOT NULL")
		default:
			return ErrInvalidOperator
		}
		return nil
	}

	if rv, ok := sliceValue(n.value); ok {
		switch rv.Len() {
		case 0:
			// guard instead of invalid "IN ()"
			if n.op == "<>" || n.op == "NOT IN" {
				buf.WriteString("1=1")
			} else {
				buf.WriteString("1=0")
			}
			return nil
		case 1:
			op, err := collapseInOp(n.op)
			if err != nil {
				return err
			}
			buf.WriteString(col)
			buf.WriteString(" ")
			buf.WriteString(op)
			buf.WriteString(" ")
			return s.writeValue(buf, rv.Index(0).Interface(), args)
		default:
			op, err := expandInOp(n.op)
			if err != nil {
				return err
			}
			buf.WriteString(col)
			buf.WriteString(" ")
			buf.WriteString(op)
			buf.WriteString(" (")
			for i := 0; i < rv.Len(); i++ {
				if i > 0 {
					buf.WriteString(", ")
				}
				if err := s.writeValue(buf, rv.Index(i).Interface(), args); err != nil {
					return err
				}
			}
			buf.WriteString(")")
			return nil
		}
	}

	if n.op == "IN" || n.op == "NOT IN" {
		// IN requires a slice value
		return ErrInvalidOperator
	}
	buf.WriteString(col)
	buf.WriteString(" ")
	buf.WriteString(n.op)
	buf.WriteString(" ")
	return s.writeValue(buf, n.value, args)
}

func collapseInOp(op string) (string, error) {
	switch op {
	case "=", "IN":
		return "=", nil
	case "<>", "NOT IN":
		return "<>", nil
	}
	return "", ErrInvalidOperator
}

func expandInOp(op string) (string, error) {
	switch op {
	case "=", "IN":
		return "IN", nil
	case "<>", "NOT IN":
		return "NOT IN", nil
	}
	return "", ErrInvalidOperator
}

// whereClause manages a statement's root condition group. The root is an OR
// group seeded with one AND child; the Where*/Having* methods target the most
// recently added child group, so plain calls AND together while WhereOr and
// WhereAnd start new groups.
type whereClause struct {
	keyword string
	root    *Cond
}

func newWhereClause(keyword string) whereClause {
	root := NewCond("OR")
	root.And()
	return whereClause{keyword: keyword, root: root}
}

func (w *whereClause) active() *Cond {
	for i := len(w.root.nodes) - 1; i >= 0; i-- {
		if w.root.nodes[i].kind == condGroup {
			return w.root.nodes[i].group
		}
	}
	return w.root
}

func (w *whereClause) addGroup(sub *Cond) {
	w.root.Group(sub)
}

func (w *whereClause) isEmpty() bool {
	return w.root.isEmpty()
}

// clause renders e.g. "WHERE (`a` = ? AND `b` = ?)", or "" when empty.
func (w *whereClause) clause(s *stmt, args *[]interface{}) (string, error) {
	var buf bytes.Buffer
	wrote, err := w.root.render(s, &buf, args)
	if err != nil {
		return "", err
	}
	if !wrote {
		return "", nil
	}
	return w.keyword + " " + buf.String(), nil
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
