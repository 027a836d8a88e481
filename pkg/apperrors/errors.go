// Package apperrors defines the sentinel errors shared across the CRM core.
package apperrors

import "errors"

var (
	// ErrAuth indicates credential issuance or refresh failed. Fatal for the
	// call; retry policy belongs to the caller, never to the provider.
	ErrAuth = errors.New("credential exchange failed")

	// ErrTransport indicates a non-2xx response or a network-level failure
	// talking to the CRM.
	ErrTransport = errors.New("crm transport failure")

	// ErrEntityTypeNotFound indicates a referenced entry type is absent from
	// the CRM schema. An absent field is not an error; an absent entry type is.
	ErrEntityTypeNotFound = errors.New("entry type not found")
)
