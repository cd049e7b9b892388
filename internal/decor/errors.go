package decor

import "errors"

var (
	// ErrNotFound reports a missing image, user or decoration.
	ErrNotFound = errors.New("not found")
	// ErrInvalidReference reports a batch that names a nonexistent sticker.
	ErrInvalidReference = errors.New("invalid reference")
	// ErrQuotaExceeded reports a placement that would push a user past the
	// per-image cap.
	ErrQuotaExceeded = errors.New("quota exceeded")
	// ErrDenied reports an update or delete by a user the policy rejects.
	ErrDenied = errors.New("denied")
)
