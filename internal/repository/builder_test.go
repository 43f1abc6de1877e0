package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFoldConditions(t *testing.T) {
	a := condition{"a = ?", 1}
	b := condition{"b = ?", 2}
	c := condition{"c = ?", 3}

	tests := []struct {
		name     string
		conds    []condition
		logics   []string
		wantExpr string
		wantArgs []any
	}{
		{"none", nil, []string{"OR", "OR"}, "", nil},
		{"single ignores operators", []condition{a}, []string{"OR"}, "(a = ?)", []any{1}},
		{"two", []condition{a, b}, []string{"or"}, "((a = ?) OR (b = ?))", []any{1, 2}},
		{"three left to right", []condition{a, b, c}, []string{"OR", "AND"}, "(((a = ?) OR (b = ?)) AND (c = ?))", []any{1, 2, 3}},
		{"missing operators default to AND", []condition{a, b, c}, nil, "(((a = ?) AND (b = ?)) AND (c = ?))", []any{1, 2, 3}},
		{"unknown operator is AND", []condition{a, b}, []string{"1=1; DROP TABLE users"}, "((a = ?) AND (b = ?))", []any{1, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr, args := foldConditions(tt.conds, tt.logics...)
			assert.Equal(t, tt.wantExpr, expr)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestProjectColumns(t *testing.T) {
	allowed := []string{"id", "name", "height", "weight"}

	assert.Equal(t, []string{"id"}, projectColumns([]string{"id", "bogus"}, allowed, "id"))
	assert.Equal(t, []string{"name", "weight"}, projectColumns([]string{" NAME", "name", "Weight"}, allowed, "id"))
	assert.Equal(t, []string{"id"}, projectColumns([]string{"id; DROP TABLE users", "*"}, allowed, "id"))
	assert.Equal(t, []string{"id"}, projectColumns(nil, allowed, "id"))
}

func TestBuildUpdate(t *testing.T) {
	q, args := buildUpdate("recipe_create", []assignment{{"name", "Pancakes"}, {"usrid", int64(2)}}, "id", int64(7))
	assert.Equal(t, "UPDATE recipe_create SET name = ?, usrid = ? WHERE id = ?", q)
	assert.Equal(t, []any{"Pancakes", int64(2), int64(7)}, args)
}
