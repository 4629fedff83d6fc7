// Package errs holds the sentinel errors for every distinct failure kind
// named in spec §7, so callers can test error identity with errors.Is
// instead of matching on message text.
//
// Grounded on the teacher's errs.ErrInvalidXxx sentinel-error call sites
// (blob/numeric_decoder.go, blob/text_decoder.go); the package itself
// wasn't present in the retrieved copy of the teacher repo, but the
// convention is clear from every call site that imports it: one
// exported sentinel per distinct condition, wrapped with extra context
// via fmt.Errorf("...: %w", errs.ErrX).
package errs

import "errors"

// Encoder errors (spec §7).
var (
	ErrUnsupported     = errors.New("sbs: value type outside the supported set")
	ErrIncorrect       = errors.New("sbs: value shape mismatch for its declared type")
	ErrNestDepth       = errors.New("sbs: composite nesting exceeds the maximum depth")
	ErrNoMemory        = errors.New("sbs: buffer growth failed")
	ErrEncodeInvariant = errors.New("sbs: value cannot be represented by the wire format")
)

// Decoder errors (spec §7).
var (
	ErrInvalidProtocol  = errors.New("sbs: unrecognized protocol byte")
	ErrInvalidTag       = errors.New("sbs: unrecognized tag byte")
	ErrTruncated        = errors.New("sbs: buffer ended before the declared length was consumed")
	ErrInvalidEncoding  = errors.New("sbs: payload bytes are not valid for their declared type")
	ErrConstructFailure = errors.New("sbs: domain constructor rejected decoded payload")
)

// Segment errors (spec §7).
var (
	ErrAlreadyExists    = errors.New("sbs: shared-memory segment already exists")
	ErrNotFound         = errors.New("sbs: shared-memory segment does not exist")
	ErrMapFailed        = errors.New("sbs: failed to map shared-memory segment")
	ErrTruncateFailed   = errors.New("sbs: failed to resize shared-memory segment")
	ErrMutexInitFailed  = errors.New("sbs: failed to initialize segment lock")
	ErrUnlinkFailed     = errors.New("sbs: failed to remove shared-memory segment")
)
