package errors

import "errors"

var (
	ErrEventNotFound         = errors.New("documentable event not found")
	ErrNarrativeNotFound     = errors.New("narrative context not found")
	ErrInvalidEventInput     = errors.New("invalid documentable event input")
	ErrInvalidNarrativeInput = errors.New("invalid narrative context input")
	ErrDuplicateEventID      = errors.New("documentable event id already exists")
)
