package repository

import (
	"strings"
)

// condition is one optional WHERE predicate and the value bound to its
// single '?' placeholder. Identifiers never come from callers; values are
// always bound.
type condition struct {
	clause string
	arg    any
}

// normalizeLogic whitelists a caller-supplied logical operator.
func normalizeLogic(s string) string {
	if strings.EqualFold(strings.TrimSpace(s), "OR") {
		return "OR"
	}
	return "AND"
}

// foldConditions joins the present conditions strictly left to right:
// ((c1) l1 (c2)) l2 (c3). logics[i] joins conds[i+1] to everything before
// it, so an absent condition never consumes an operator. Missing operators
// default to AND.
func foldConditions(conds []condition, logics ...string) (string, []any) {
	if len(conds) == 0 {
		return "", nil
	}
	expr := "(" + conds[0].clause + ")"
	args := []any{conds[0].arg}
	for i, c := range conds[1:] {
		op := "AND"
		if i < len(logics) {
			op = normalizeLogic(logics[i])
		}
		expr = "(" + expr + " " + op + " (" + c.clause + "))"
		args = append(args, c.arg)
	}
	return expr, args
}

// projectColumns keeps the requested columns found in allowed (matched
// case-insensitively, returned in their canonical spelling, duplicates
// dropped) and falls back to fallback when nothing survives.
func projectColumns(requested, allowed []string, fallback string) []string {
	canon := make(map[string]string, len(allowed))
	for _, a := range allowed {
		canon[strings.ToLower(a)] = a
	}
	seen := map[string]bool{}
	var out []string
	for _, r := range requested {
		c, ok := canon[strings.ToLower(strings.TrimSpace(r))]
		if !ok || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	if len(out) == 0 {
		out = []string{fallback}
	}
	return out
}

// assignment is one "column = ?" entry of an UPDATE's SET clause.
type assignment struct {
	column string
	arg    any
}

// buildUpdate renders UPDATE table SET a = ?, b = ? WHERE key = ?.
// Callers guarantee sets is non-empty and that table/column names are
// constants.
func buildUpdate(table string, sets []assignment, key string, keyArg any) (string, []any) {
	parts := make([]string, 0, len(sets))
	args := make([]any, 0, len(sets)+1)
	for _, s := range sets {
		parts = append(parts, s.column+" = ?")
		args = append(args, s.arg)
	}
	args = append(args, keyArg)
	return "UPDATE " + table + " SET " + strings.Join(parts, ", ") + " WHERE " + key + " = ?", args
}
