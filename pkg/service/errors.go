package service

import "errors"

var (
	ErrValidation       = errors.New("missing required order data")
	ErrInvalidSignature = errors.New("invalid payment signature")
)
