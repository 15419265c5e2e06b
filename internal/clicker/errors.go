package clicker

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateRegister means the OS declined a registration: the key
	// combination is bound elsewhere or the id is already in use. The OS does
	// not say which.
	ErrDuplicateRegister = errors.New("hot key already registered")
	// ErrNotRegistered means the OS declined to remove a binding.
	ErrNotRegistered = errors.New("hot key not registered")
	// ErrInvalidID means the id is outside the range hotkey messages carry.
	ErrInvalidID = errors.New("hot key id out of range")
	// ErrInternal means the hotkey loop went away before answering.
	ErrInternal = errors.New("internal error")
)

// HotkeyError ties a registration failure to the id it was for.
type HotkeyError struct {
	ID  int
	Err error
}

func (e *HotkeyError) Error() string {
	return fmt.Sprintf("hot key %d: %v", e.ID, e.Err)
}

func (e *HotkeyError) Unwrap() error {
	return e.Err
}
