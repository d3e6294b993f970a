// Package csrf issues and verifies stateless CSRF tokens for rendered forms.
//
// A token is the base64url JSON payload {nonce, session, expiry} followed by
// a dot and an 8-byte truncated HMAC-SHA256 signature:
//
//	p, err := csrf.New(secret, csrf.WithTTL(30*time.Minute))
//	tok, err := p.TokenFor(sessionID)
//	...
//	if err := p.Verify(r.PostFormValue(p.FieldName()), sessionID); err != nil {
//	    // ErrInvalidToken, ErrSignatureInvalid, ErrTokenExpired or ErrSessionMismatch
//	}
package csrf
