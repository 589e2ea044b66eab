package advmacro

import (
	"errors"
	"fmt"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the input file is not a valid xlsx format.
var ErrInvalidFormat = errors.New("invalid xlsx format")

// SheetError represents an error while loading one sheet.
type SheetError struct {
	SheetName string
	Component string // "cells", "macros"
	Err       error
}

func (e *SheetError) Error() string {
	return fmt.Sprintf("error in sheet %q (%s): %v", e.SheetName, e.Component, e.Err)
}

func (e *SheetError) Unwrap() error {
	return e.Err
}

// NewSheetError creates a new SheetError.
func NewSheetError(sheetName, component string, err error) *SheetError {
	return &SheetError{
		SheetName: sheetName,
		Component: component,
		Err:       err,
	}
}
