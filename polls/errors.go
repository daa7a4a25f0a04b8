// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package polls

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	// ErrStorage marks transient store failures. Only these are worth retrying.
	ErrStorage = errors.New("storage failure")
)

// NotFound variants; each matches ErrNotFound with errors.Is
var (
	ErrUnknownRoom      = fmt.Errorf("unknown room: %w", ErrNotFound)
	ErrProposalNotFound = fmt.Errorf("proposal not found: %w", ErrNotFound)
	ErrRoomMismatch     = fmt.Errorf("proposal belongs to another room: %w", ErrNotFound)
)

func storageErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStorage, err)
}

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, msg)
}
