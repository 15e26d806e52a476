package model

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// Common errors used across the application
var (
	// Identity errors
	ErrInvalidIdentity = errors.New("identity is empty")
	ErrInvalidMark     = errors.New("mark must be X or O")

	// Move errors. Every rejected move wraps ErrIllegalMove.
	ErrIllegalMove     = errors.New("illegal move")
	ErrInvalidPosition = fmt.Errorf("%w: position must be 0-8", ErrIllegalMove)
	ErrCellOccupied    = fmt.Errorf("%w: cell is already occupied", ErrIllegalMove)
	ErrGameComplete    = fmt.Errorf("%w: game is already complete", ErrIllegalMove)

	// Game errors
	ErrGameNotFound    = errors.New("game not found")
	ErrGameNotFinished = errors.New("game is not finished")
	ErrMarkLocked      = errors.New("mark can only be changed before the first move")

	// Storage errors
	ErrRecordNotFound = errors.New("record not found")
	ErrStorageFault   = errors.New("storage fault")
)

// IsWarning reports whether err only signals a storage fault. The operation
// that returned it completed against in-memory defaults.
func IsWarning(err error) bool {
	return err != nil && errors.Is(err, ErrStorageFault)
}

// Warnings flattens err into one message per underlying fault, unpacking
// aggregated errors
func Warnings(err error) []string {
	if err == nil {
		return nil
	}
	var merr *multierror.Error
	if errors.As(err, &merr) {
		msgs := make([]string, 0, len(merr.Errors))
		for _, e := range merr.Errors {
			msgs = append(msgs, Warnings(e)...)
		}
		return msgs
	}
	return []string{err.Error()}
}
