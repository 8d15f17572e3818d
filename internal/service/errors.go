package service

import "errors"

var (
	ErrCheckoutInProgress = errors.New("cart is locked while a payment is in progress")
	ErrInvalidSessionID   = errors.New("invalid session id")
)
