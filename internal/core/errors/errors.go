// Package errors provides centralized error definitions for the application.
//
// Naming conventions:
//   - Exported errors (Err*): for errors callers check with errors.Is
//   - All sentinel errors are variables, never inline errors.New calls
//   - Wrap with fmt.Errorf and %w to add context
package errors

import "errors"

// Channel and video resolution errors.
var (
	// ErrChannelNotFound indicates a channel could not be resolved.
	ErrChannelNotFound = errors.New("channel not found")

	// ErrVideoNotFound indicates a video id did not resolve to a video.
	ErrVideoNotFound = errors.New("video not found")

	// ErrNoUploads indicates a channel has no uploads playlist.
	ErrNoUploads = errors.New("channel has no uploads playlist")
)

// Analytics errors.
var (
	// ErrNotOwnVideo indicates the video is not on the authenticated channel.
	ErrNotOwnVideo = errors.New("video is not on the authenticated channel")

	// ErrNoChannelForAccount indicates the authenticated account has no channel.
	ErrNoChannelForAccount = errors.New("authenticated account has no channel")

	// ErrNoRetentionData indicates the analytics API returned no retention rows.
	ErrNoRetentionData = errors.New("no retention data available")
)

// License errors.
var (
	// ErrLicenseNotFound indicates the license key is not in the store.
	ErrLicenseNotFound = errors.New("license not found")

	// ErrUnauthorized indicates a request without a valid license or admin password.
	ErrUnauthorized = errors.New("unauthorized")
)

// Validation errors.
var (
	// ErrInvalidInput indicates invalid input was provided.
	ErrInvalidInput = errors.New("invalid input")
)
