package mysqlstmt

import "mysqlstmt/common"

type assignKind int

const (
	assignValue assignKind = iota
	assignRaw
	assignSelect
)

type assignment struct {
	kind   assignKind
	col    string
	value  interface{}
	raw    string
	params []interface{}
	sub    *SelectBuilder
}

// setValues collects column assignments for INSERT, REPLACE and UPDATE.
type setValues struct {
	assignments []assignment
}

func (sv *setValues) set(col string, value interface{}) {
	switch v := value.(type) {
	case *Expression:
		sv.assignments = append(sv.assignments, assignment{kind: assignRaw, col: col, raw: v.Sql, params: v.Args})
	case *SelectBuilder:
		sv.assignments = append(sv.assignments, assignment{kind: assignSelect, col: col, sub: v})
	default:
		sv.assignments = append(sv.assignments, assignment{kind: assignValue, col: col, value: value})
	}
}

func (sv *setValues) setMap(values Values) {
	for _, col := range sortedKeys(values) {
		sv.set(col, values[col])
	}
}

func (sv *setValues) setRaw(col, raw string, params []interface{}) {
	sv.assignments = append(sv.assignments, assignment{kind: assignRaw, col: col, raw: raw, params: params})
}

func (sv *setValues) writeAssignmentValue(s *stmt, buf common.BufferWriter, a *assignment, args *[]interface{}) error {
	switch a.kind {
	case assignRaw:
		return s.writeRaw(buf, a.raw, a.params, args)
	case assignSelect:
		return s.writeSubquery(buf, a.sub, args)
	}
	return s.writeValue(buf, a.value, args)
}

// writeSetClauses renders "col = value, ..." for UPDATE SET.
func (sv *setValues) writeSetClauses(s *stmt, buf common.BufferWriter, args *[]interface{}) error {
	for i := range sv.assignments {
		a := &sv.assignments[i]
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(s.quoteColRef(a.col))
		buf.WriteString(" = ")
		if err := sv.writeAssignmentValue(s, buf, a, args); err != nil {
			return err
		}
	}
	return nil
}

// writeInsertClauses renders "(col, ...) VALUES (value, ...)" for INSERT.
func (sv *setValues) writeInsertClauses(s *stmt, buf common.BufferWriter, args *[]interface{}) error {
	buf.WriteString(" (")
	for i := range sv.assignments {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(s.quoteColRef(sv.assignments[i].col))
	}
	buf.WriteString(") VALUES (")
	for i := range sv.assignments {
		if i > 0 {
			buf.WriteString(", ")
		}
		if err := sv.writeAssignmentValue(s, buf, &sv.assignments[i], args); err != nil {
			return err
		}
	}
	buf.WriteString(")")
	return nil
}
