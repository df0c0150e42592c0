/*
errors.go - Centralized error types for the asset domain

PURPOSE:
  All sentinel errors in one place for consistency and discoverability.
  The stores and the API layer wrap these with additional context.

ERROR CATEGORIES:
  1. Lookup errors   - Missing records
  2. Integrity errors - Duplicate serial numbers
  3. Input errors    - Bad dates, bad QR payloads

NOTE:
  The depreciation engine itself never returns errors: degenerate input
  degrades to an empty schedule. Only the checked schedule variant
  surfaces ErrUnparsableDate as a warning.

USAGE:
  if errors.Is(err, asset.ErrNotFound) {
      writeError(w, http.StatusNotFound, "Asset not found", err)
  }
*/
package asset

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrNotFound is returned when a referenced asset doesn't exist.
	ErrNotFound = errors.New("asset not found")

	// ErrDuplicateSerial is returned when registering an asset whose
	// serial number is already in the inventory.
	ErrDuplicateSerial = errors.New("duplicate serial number")

	// ErrMissingPurchaseDate is returned when a date field is empty.
	ErrMissingPurchaseDate = errors.New("missing purchase date")

	// ErrUnparsableDate is returned when a date string matches no
	// accepted layout. Schedule computation treats this as "no schedule".
	ErrUnparsableDate = errors.New("unparsable date")

	// ErrInvalidPayload is returned when a scanned QR payload cannot be
	// decoded into a serial-number lookup.
	ErrInvalidPayload = errors.New("invalid qr payload")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// UnparsableDateError carries the rejected date value.
type UnparsableDateError struct {
	Value string
}

func (e *UnparsableDateError) Error() string {
	return fmt.Sprintf("unparsable date %q", e.Value)
}

func (e *UnparsableDateError) Unwrap() error {
	return ErrUnparsableDate
}

// DuplicateSerialError names the conflicting serial number.
type DuplicateSerialError struct {
	SerialNumber string
	ExistingID   string
}

func (e *DuplicateSerialError) Error() string {
	return fmt.Sprintf("serial number %q already registered (asset: %s)",
		e.SerialNumber, e.ExistingID)
}

func (e *DuplicateSerialError) Unwrap() error {
	return ErrDuplicateSerial
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsNotFound returns true if the error indicates a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrDuplicateSerial) ||
		errors.Is(err, ErrUnparsableDate) ||
		errors.Is(err, ErrMissingPurchaseDate) ||
		errors.Is(err, ErrInvalidPayload)
}
