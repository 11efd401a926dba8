package services

import "errors"

var (
	ErrQuoteNotFound    = errors.New("quote not found")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrQuoteNotAccepted = errors.New("quote is not accepted")
	ErrAlreadyConverted = errors.New("quote already has an order")
	ErrUnknownAction    = errors.New("unknown quote action")
	ErrInvalidStage     = errors.New("invoice stage must be deposit or balance")
	ErrNotConfigured    = errors.New("notification channel not configured")
)
