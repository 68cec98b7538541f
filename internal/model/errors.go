package model

import (
	"errors"
	"fmt"

	"cloud.google.com/go/civil"
)

// Классы ошибок создания занятий
var (
	ErrInvalidInput             = errors.New("invalid input")
	ErrNoAvailabilityConfigured = errors.New("no availability configured")
	ErrSlotConflict             = errors.New("slot conflict")
	ErrCreationFailure          = errors.New("creation failure")
	ErrSlotUnavailable          = errors.New("slot is no longer available")
	ErrTutorNotFound            = errors.New("tutor not found")
	ErrUserNotFound             = errors.New("user not found")
	ErrNotATutor                = errors.New("user is not a tutor")
	ErrGroupNotFound            = errors.New("session group not found")
)

// ConflictError одно или несколько занятий не попадают в доступность учителя.
// Ни одно занятие не создано.
type ConflictError struct {
	Violations []Violation
	Total      int
	Message    string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s (no sessions were created)", e.Message)
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrSlotConflict
}

// CreationError хранилище отклонило занятие уже после успешной проверки.
// Created занятий уже сохранены.
type CreationError struct {
	Created    int
	Total      int
	Date       civil.Date
	RolledBack bool
	Err        error
}

func (e *CreationError) Error() string {
	msg := fmt.Sprintf("created %d of %d sessions before failing on %s: %v", e.Created, e.Total, e.Date, e.Err)
	if e.RolledBack {
		msg += " (created sessions were rolled back)"
	}
	return msg
}

func (e *CreationError) Is(target error) bool {
	return target == ErrCreationFailure
}

func (e *CreationError) Unwrap() error {
	return e.Err
}
