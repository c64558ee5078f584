package ledger

import "errors"

var (
	ErrInvalidAmount        = errors.New("Invalid amount")
	ErrInvalidQuantity      = errors.New("Invalid quantity")
	ErrCoinNotFound         = errors.New("Coin not found")
	ErrInsufficientBalance  = errors.New("Insufficient balance")
	ErrInsufficientHoldings = errors.New("Insufficient holdings")
)
