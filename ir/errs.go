package ir

import (
	"errors"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrNotObject = errors.New("not an object")
	ErrNotArray  = errors.New("not an array")
	ErrDupKey    = errors.New("duplicate key")
)
