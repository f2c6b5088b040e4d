package cookie

import "errors"

var (
	ErrNoSecret       = errors.New("cookie.secret_missing")
	ErrSecretTooShort = errors.New("cookie.secret_too_short")

	ErrCookieNotFound = errors.New("cookie.missing")
	// ErrInvalidFormat means the value is not in the signed or encrypted layout.
	ErrInvalidFormat = errors.New("cookie.malformed")
	// ErrDecryptionFailed covers both bad signatures and failed decryption.
	ErrDecryptionFailed = errors.New("cookie.tampered")
)
