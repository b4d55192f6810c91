package notifications

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateID is matched by DuplicateIDError. It signals a broken id
	// generator and should never surface to end users.
	ErrDuplicateID = errors.New("notification id already exists")

	// ErrEmptyID is returned when a notification without an id is inserted.
	ErrEmptyID = errors.New("notification id is required")

	// ErrManagerClosed is reported by Manager.Ready after Close.
	ErrManagerClosed = errors.New("notification manager is closed")
)

// DuplicateIDError is returned by Store.Insert when the id is already present.
type DuplicateIDError struct {
	ID string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("notifications: duplicate id %q", e.ID)
}

func (e *DuplicateIDError) Unwrap() error {
	return ErrDuplicateID
}
