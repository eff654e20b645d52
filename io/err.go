package io

import (
	"errors"

	"github.com/ezrec/hrm/translate"
)

var f = translate.From

var (
	// Seed errors
	ErrNotInteger = errors.New(f("not an integer"))
)

// ErrExpression reports a $(...) word that could not be evaluated.
type ErrExpression struct {
	Expr string
	Err  error
}

func (err *ErrExpression) Error() string {
	return f("$(%v) is not a valid expression: %v", err.Expr, err.Err)
}

func (err *ErrExpression) Unwrap() error {
	return err.Err
}
