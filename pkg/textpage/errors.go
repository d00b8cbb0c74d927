package textpage

import "errors"

// Error kinds per spec.md §7. These are distinct Go error types rather than
// integer codes, but preserve the three-way open-failure taxonomy.
var (
	// ErrOpenFailed means the underlying file could not be opened or is not
	// recognizable as a PDF.
	ErrOpenFailed = errors.New("textpage: failed to open document")

	// ErrAuthFailed means the owner/user password was rejected; this is
	// non-recoverable, matching PDFTextLib's documented behavior.
	ErrAuthFailed = errors.New("textpage: authentication failed")

	// ErrDamagedDocument means the cross-reference table or catalog is
	// unreadable even after one reconstruction attempt.
	ErrDamagedDocument = errors.New("textpage: document structurally damaged")
)

// OpenError wraps ErrOpenFailed with the underlying cause.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return "textpage: open " + e.Path + ": " + e.Err.Error()
}

func (e *OpenError) Unwrap() error { return e.Err }
func (e *OpenError) Is(target error) bool { return target == ErrOpenFailed }

// AuthError wraps ErrAuthFailed.
type AuthError struct {
	Path string
}

func (e *AuthError) Error() string {
	return "textpage: authentication failed for " + e.Path
}

func (e *AuthError) Is(target error) bool { return target == ErrAuthFailed }

// DamagedDocumentError wraps ErrDamagedDocument with the reconstruction
// attempt's outcome.
type DamagedDocumentError struct {
	Path           string
	Reconstructed  bool
	Err            error
}

func (e *DamagedDocumentError) Error() string {
	if e.Reconstructed {
		return "textpage: " + e.Path + " damaged, reconstruction also failed: " + e.Err.Error()
	}
	return "textpage: " + e.Path + " damaged: " + e.Err.Error()
}

func (e *DamagedDocumentError) Unwrap() error { return e.Err }
func (e *DamagedDocumentError) Is(target error) bool { return target == ErrDamagedDocument }
