package transcript

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidReference means the input matched no accepted URL shape.
	ErrInvalidReference = errors.New("invalid video reference")
	// ErrNoTracks means no caption track could be fetched and parsed.
	ErrNoTracks = errors.New("no caption tracks available")
	// ErrParseFailure means a fetched document yielded no segments.
	ErrParseFailure = errors.New("caption document yielded no segments")
	// ErrMetadataUnavailable wraps metadata query failures.
	ErrMetadataUnavailable = errors.New("video metadata unavailable")
)

// TrackFetchError records a failed attempt on one candidate.
type TrackFetchError struct {
	Language string
	Origin   Origin
	Format   Format
	Err      error
}

func (e *TrackFetchError) Error() string {
	return fmt.Sprintf("track %s/%s/%s: %v", e.Origin, e.Language, e.Format, e.Err)
}

func (e *TrackFetchError) Unwrap() error { return e.Err }
