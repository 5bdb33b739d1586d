package apperrors

import (
	"errors"
)

var (
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrUserNotFound      = errors.New("user not found")

	ErrWithdrawalNotFound          = errors.New("withdrawal not found")
	ErrWithdrawalInvalidTransition = errors.New("invalid withdrawal status transition")

	ErrInvalidShareKind = errors.New("unknown share kind")
	ErrInvalidAmount    = errors.New("amount must be positive")
	ErrInvalidLimit     = errors.New("limit must be a positive integer")

	ErrBalanceInsufficient = errors.New("insufficient referral balance")
)
