package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidOperation = errors.New("invalid operation")
	ErrPageCycle        = errors.New("page hierarchy cycle")
	ErrMalformedBackup  = errors.New("malformed backup")
	ErrImportFailed     = errors.New("import failed")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NotFoundError reports a missing page or block
type NotFoundError struct {
	Kind string
	ID   int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Kind, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// CycleError reports a page that would become its own ancestor
type CycleError struct {
	PageID   int64
	ParentID int64
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("cannot move page %d under %d: would create a cycle", e.PageID, e.ParentID)
}

func (e *CycleError) Is(target error) bool {
	return target == ErrPageCycle
}
