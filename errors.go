package lexalign

import "fmt"

// NetworkError indicates a transport failure while talking to the translation
// backend. The in-progress turn is aborted and the previous turn's model
// stays visible.
type NetworkError struct {
	Message   string
	Cause     error
	Retryable bool // Whether the request can be retried
}

func (e *NetworkError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("network error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("network error: %s", e.Message)
}

func (e *NetworkError) Unwrap() error {
	return e.Cause
}

// MalformedResponseError indicates the backend payload could not be decoded
// at all. Missing or inconsistent alignment data for individual styles is not
// an error; the parser and normalizer repair those locally and the turn
// completes as DEGRADED.
type MalformedResponseError struct {
	Message string
	Cause   error
}

func (e *MalformedResponseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("malformed response: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("malformed response: %s", e.Message)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Cause
}

// StoreError indicates a settings-store operation failure.
type StoreError struct {
	Message string
	Cause   error
}

func (e *StoreError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("store error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("store error: %s", e.Message)
}

func (e *StoreError) Unwrap() error {
	return e.Cause
}

// StaleResponseError reports that a response arrived for a turn that has
// already been superseded by a newer one. The response is discarded, not
// applied out of order.
type StaleResponseError struct {
	TurnID string
}

func (e *StaleResponseError) Error() string {
	return fmt.Sprintf("stale response discarded for superseded turn %s", e.TurnID)
}

// SyncMismatchError describes a display/audio format disagreement on one
// entry. It is diagnostic only: the entry is retained and flagged, and the
// mismatch is aggregated into the style's sync health. It is never returned
// from Normalize.
type SyncMismatchError struct {
	Style StyleID
	Order int
	Want  string
	Got   string
}

func (e *SyncMismatchError) Error() string {
	return fmt.Sprintf("sync mismatch in %s entry %d: display %q, expected %q",
		e.Style, e.Order, e.Got, e.Want)
}
