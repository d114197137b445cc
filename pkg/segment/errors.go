package segment

import (
	"fmt"

	"github.com/seren-space/orrery/pkg/epoch"
)

// IntegritySection identifies which part of a segment failed validation.
type IntegritySection string

const (
	SectionMetadata       IntegritySection = "metadata"
	SectionStateData      IntegritySection = "state data"
	SectionEpochData      IntegritySection = "epoch data"
	SectionEpochDirectory IntegritySection = "epoch directory"
)

// MalformedDataError reports a buffer that is too short for its declared
// contents, or an access past its bounds. Need carries the minimum length
// or offset that was required. Callers should reject the segment.
type MalformedDataError struct {
	Need   int
	Reason string
}

func (e *MalformedDataError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("malformed segment data: %s (need %d)", e.Reason, e.Need)
	}
	return fmt.Sprintf("malformed segment data: need at least %d values", e.Need)
}

// IntegrityError reports a NaN or infinite value found in segment data.
// This is data corruption, not a programming fault; callers should reject
// the segment.
type IntegrityError struct {
	Section IntegritySection
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("integrity check failed: non-finite value in %s", e.Section)
}

// MissingInterpolationDataError reports a query epoch outside the segment's
// covered interval. Callers should try another segment.
type MissingInterpolationDataError struct {
	Epoch epoch.Epoch
}

func (e *MissingInterpolationDataError) Error() string {
	return fmt.Sprintf("no interpolation data covering %s", e.Epoch)
}
