package csrf

import "errors"

var (
	ErrInvalidToken     = errors.New("invalid token format")
	ErrSignatureInvalid = errors.New("signature mismatch")
	ErrTokenExpired     = errors.New("token expired")
	ErrSessionMismatch  = errors.New("token issued for another session")
	ErrEmptySecret      = errors.New("csrf secret must not be empty")
)
