// Package errors provides structured error handling for the mfbldr CLI.
// It defines sentinel errors, exit codes, and helpers for adding
// context, details, and suggestions to errors.
//
//nolint:revive // Package name intentionally shadows stdlib for domain-specific error handling
package errors

import (
	"errors"
	"fmt"
	"sort"
)

// Exit codes.
const (
	ExitSuccess  = 0 // Successful execution
	ExitGeneral  = 1 // General/unknown error
	ExitInput    = 2 // Invalid input
	ExitAuth     = 3 // Authentication failed
	ExitNotFound = 4 // Resource not found
	ExitRejected = 5 // Claim rejected by the registry or signer
)

// ClaimError is the structured error type for the mfbldr CLI.
type ClaimError struct {
	Code       string            // Machine-readable error code
	Message    string            // Human-readable message
	Details    map[string]string // Additional context
	Suggestion string            // Actionable suggestion for user
	Cause      error             // Underlying error
	ExitCode   int               // Exit code for CLI
}

func (e *ClaimError) Error() string {
	msg := e.Message

	// Include details in error message (sorted for deterministic output)
	if len(e.Details) > 0 {
		keys := make([]string, 0, len(e.Details))
		for k := range e.Details {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			msg = fmt.Sprintf("%s (%s: %s)", msg, k, e.Details[k])
		}
	}

	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *ClaimError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is for ClaimError.
func (e *ClaimError) Is(target error) bool {
	var t *ClaimError
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// Sentinel errors.
var (
	ErrGeneral = &ClaimError{
		Code:     "GENERAL_ERROR",
		Message:  "an error occurred",
		ExitCode: ExitGeneral,
	}

	ErrInvalidInput = &ClaimError{
		Code:     "INVALID_INPUT",
		Message:  "invalid input",
		ExitCode: ExitInput,
	}

	ErrNetworkError = &ClaimError{
		Code:     "NETWORK_ERROR",
		Message:  "network communication failed",
		ExitCode: ExitGeneral,
	}

	// Validation errors (checked locally, never submitted).
	ErrLabelRequired = &ClaimError{
		Code:     "LABEL_REQUIRED",
		Message:  "please enter a name",
		ExitCode: ExitInput,
	}

	ErrLabelInvalid = &ClaimError{
		Code:     "LABEL_INVALID",
		Message:  "capital letters and spaces are not supported",
		ExitCode: ExitInput,
	}

	// Resolution errors.
	ErrResolutionFailed = &ClaimError{
		Code:     "ASSET_RESOLUTION_FAILED",
		Message:  "failed to resolve owned tokens",
		ExitCode: ExitGeneral,
	}

	ErrNoQualifyingToken = &ClaimError{
		Code:     "NO_QUALIFYING_TOKEN",
		Message:  "the connected address owns no qualifying token",
		ExitCode: ExitNotFound,
	}

	ErrSelectionRequired = &ClaimError{
		Code:     "SELECTION_REQUIRED",
		Message:  "multiple qualifying tokens found, select one to claim with",
		ExitCode: ExitInput,
	}

	// Submission errors (classified from raw provider failure text).
	ErrNotOwner = &ClaimError{
		Code:     "NOT_OWNER",
		Message:  "you don't own an MFBLDR token",
		ExitCode: ExitRejected,
	}

	ErrLabelTaken = &ClaimError{
		Code:     "LABEL_TAKEN",
		Message:  "sub-domain already exists",
		ExitCode: ExitRejected,
	}

	ErrUserRejected = &ClaimError{
		Code:     "USER_REJECTED",
		Message:  "transaction rejected",
		ExitCode: ExitRejected,
	}

	ErrAssetAlreadyClaimed = &ClaimError{
		Code:     "ASSET_ALREADY_CLAIMED",
		Message:  "a name has already been claimed with this token",
		ExitCode: ExitRejected,
	}

	ErrClaimFailed = &ClaimError{
		Code:     "CLAIM_FAILED",
		Message:  "registration error",
		ExitCode: ExitGeneral,
	}

	// Lifecycle errors.
	ErrClaimInProgress = &ClaimError{
		Code:     "CLAIM_IN_PROGRESS",
		Message:  "a claim is already pending for this session",
		ExitCode: ExitInput,
	}

	ErrClaimReverted = &ClaimError{
		Code:     "CLAIM_REVERTED",
		Message:  "registration failed",
		ExitCode: ExitRejected,
	}

	ErrSessionComplete = &ClaimError{
		Code:     "SESSION_COMPLETE",
		Message:  "a name was already registered in this session",
		ExitCode: ExitInput,
	}

	// Signer errors.
	ErrKeyNotFound = &ClaimError{
		Code:     "KEY_NOT_FOUND",
		Message:  "signing key not found",
		ExitCode: ExitNotFound,
	}

	ErrKeyExists = &ClaimError{
		Code:     "KEY_EXISTS",
		Message:  "signing key already exists",
		ExitCode: ExitInput,
	}

	ErrDecryptionFailed = &ClaimError{
		Code:     "DECRYPTION_FAILED",
		Message:  "decryption failed - wrong password or corrupted file",
		ExitCode: ExitAuth,
	}

	ErrInvalidMnemonic = &ClaimError{
		Code:     "INVALID_MNEMONIC",
		Message:  "invalid mnemonic phrase",
		ExitCode: ExitInput,
	}

	// Chain errors.
	ErrInvalidAddress = &ClaimError{
		Code:     "INVALID_ADDRESS",
		Message:  "invalid address format",
		ExitCode: ExitInput,
	}

	ErrInvalidTokenID = &ClaimError{
		Code:     "INVALID_TOKEN_ID",
		Message:  "invalid token identifier",
		ExitCode: ExitInput,
	}

	// Config errors.
	ErrConfigInvalid = &ClaimError{
		Code:     "CONFIG_INVALID",
		Message:  "configuration file is invalid",
		ExitCode: ExitInput,
	}
)

// New creates a new ClaimError with the given code and message.
func New(code, message string) *ClaimError {
	return &ClaimError{
		Code:     code,
		Message:  message,
		ExitCode: ExitGeneral,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}

	msg := fmt.Sprintf(format, args...)

	var ce *ClaimError
	if errors.As(err, &ce) {
		return &ClaimError{
			Code:       ce.Code,
			Message:    fmt.Sprintf("%s: %s", msg, ce.Message),
			Details:    ce.Details,
			Suggestion: ce.Suggestion,
			Cause:      err,
			ExitCode:   ce.ExitCode,
		}
	}

	return &ClaimError{
		Code:     "GENERAL_ERROR",
		Message:  msg,
		Cause:    err,
		ExitCode: ExitGeneral,
	}
}

// WithDetails adds details to an error.
func WithDetails(err error, details map[string]string) error {
	if err == nil {
		return nil
	}

	var ce *ClaimError
	if errors.As(err, &ce) {
		return &ClaimError{
			Code:       ce.Code,
			Message:    ce.Message,
			Details:    details,
			Suggestion: ce.Suggestion,
			Cause:      ce.Cause,
			ExitCode:   ce.ExitCode,
		}
	}

	return &ClaimError{
		Code:     "GENERAL_ERROR",
		Message:  err.Error(),
		Details:  details,
		Cause:    err,
		ExitCode: ExitGeneral,
	}
}

// WithMessage replaces the user-facing message of an error, keeping its code.
func WithMessage(err error, message string) error {
	if err == nil {
		return nil
	}

	var ce *ClaimError
	if errors.As(err, &ce) {
		return &ClaimError{
			Code:       ce.Code,
			Message:    message,
			Details:    ce.Details,
			Suggestion: ce.Suggestion,
			Cause:      ce.Cause,
			ExitCode:   ce.ExitCode,
		}
	}

	return &ClaimError{
		Code:     "GENERAL_ERROR",
		Message:  message,
		Cause:    err,
		ExitCode: ExitGeneral,
	}
}

// WithSuggestion adds a suggestion to an error.
func WithSuggestion(err error, suggestion string) error {
	if err == nil {
		return nil
	}

	var ce *ClaimError
	if errors.As(err, &ce) {
		return &ClaimError{
			Code:       ce.Code,
			Message:    ce.Message,
			Details:    ce.Details,
			Suggestion: suggestion,
			Cause:      ce.Cause,
			ExitCode:   ce.ExitCode,
		}
	}

	return &ClaimError{
		Code:       "GENERAL_ERROR",
		Message:    err.Error(),
		Suggestion: suggestion,
		Cause:      err,
		ExitCode:   ExitGeneral,
	}
}

// ExitCode returns the appropriate exit code for an error.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var ce *ClaimError
	if errors.As(err, &ce) {
		return ce.ExitCode
	}

	return ExitGeneral
}

// Code returns the error code for an error.
func Code(err error) string {
	var ce *ClaimError
	if errors.As(err, &ce) {
		return ce.Code
	}
	return "GENERAL_ERROR"
}

// Is wraps errors.Is for convenience.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience.
func As(err error, target any) bool {
	return errors.As(err, target)
}
