package repository

import "errors"

var (
	// ErrDuplicateLocalRef is returned when an enqueue reuses an existing
	// idempotency key. For the caller it means "already recorded".
	ErrDuplicateLocalRef = errors.New("local_ref already exists")

	// ErrServerSaleIDMismatch is returned when MarkSynced would overwrite a
	// row's server sale id with a different value. That never happens in a
	// correct reconciliation and must not be silently absorbed.
	ErrServerSaleIDMismatch = errors.New("server sale id differs from stored value")

	// ErrInvalidTransition is returned for a status change the sale state
	// machine does not allow (e.g. synced → failed, failed → synced).
	ErrInvalidTransition = errors.New("invalid sale status transition")
)
