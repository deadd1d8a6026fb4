package engine

import "fmt"

// NotFoundError is returned when an id does not resolve to a record.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

// InvalidInputError reports a rejected field value.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// LockedError indicates an accessory that has not been unlocked yet.
type LockedError struct {
	Accessory string
}

func (e LockedError) Error() string {
	return fmt.Sprintf("accessory '%s' is locked", e.Accessory)
}
