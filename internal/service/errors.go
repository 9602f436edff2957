package service

import (
	"errors"

	"github.com/macroprep/macroprep-cli/internal/store"
)

var (
	// ErrInsufficientInventory blocks a commit whose mass exceeds what the
	// batch (or the finished pot) holds.
	ErrInsufficientInventory = errors.New("insufficient inventory")
	// ErrNoSolution is returned when a protein target meets zero protein.
	ErrNoSolution         = errors.New("no solution")
	ErrInvalidInput       = errors.New("invalid input")
	ErrTransactionFailure = store.ErrTxFailed
	ErrMalformedBackup    = errors.New("malformed backup")
	ErrNotFound           = errors.New("not found")
)
