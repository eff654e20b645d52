package io

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEval(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		expr  string
		value int64
	}){
		{"0", 0},
		{"1+2*3", 7},
		{"-(4 // 3)", -1},
		{"len('abc')", 3},
		{"1 << 40", 1 << 40},
	}

	for _, entry := range table {
		value, err := Eval(entry.expr)
		assert.NoError(err, entry.expr)
		assert.Equal(entry.value, value, entry.expr)
	}
}

func TestEval_Invalid(t *testing.T) {
	assert := assert.New(t)

	for _, expr := range []string{"", "1+", "'text'", "1 << 80", "None"} {
		_, err := Eval(expr)
		var ee *ErrExpression
		if assert.ErrorAs(err, &ee, expr) {
			assert.Equal(expr, ee.Expr)
		}
	}

	_, err := Eval("True")
	assert.ErrorIs(err, ErrNotInteger)
}
