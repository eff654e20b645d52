package io

import (
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// isExpr returns true for a $(...) word.
func isExpr(word string) bool {
	return strings.HasPrefix(word, "$(") && strings.HasSuffix(word, ")")
}

// Eval does $(...) evaluations of integer expressions.
func Eval(expr string) (value int64, err error) {
	thread := starlark.Thread{Name: "seed"}
	opts := syntax.FileOptions{}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, nil)
	if err != nil {
		err = &ErrExpression{Expr: expr, Err: err}
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = &ErrExpression{Expr: expr, Err: ErrNotInteger}
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = &ErrExpression{Expr: expr, Err: ErrNotInteger}
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = &ErrExpression{Expr: expr, Err: ErrNotInteger}
		return
	}

	return
}
