package csrf

import (
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultTTL is the token lifetime when none is configured.
	DefaultTTL = time.Hour
	// DefaultFieldName is the form field carrying the token.
	DefaultFieldName = "_csrf"
)

type payload struct {
	Nonce   uuid.UUID `json:"n"`
	Session string    `json:"s,omitempty"`
	Expires int64     `json:"e"`
}

// Option configures a Provider.
type Option func(*Provider)

// WithTTL sets the token lifetime. Non-positive values are ignored.
func WithTTL(ttl time.Duration) Option {
	return func(p *Provider) {
		if ttl > 0 {
			p.ttl = ttl
		}
	}
}

// WithFieldName sets the form field name used for the token.
func WithFieldName(name string) Option {
	return func(p *Provider) {
		if name != "" {
			p.field = name
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(p *Provider) {
		if now != nil {
			p.now = now
		}
	}
}

// Provider issues and verifies stateless CSRF tokens. A token carries a
// random nonce, the session it was issued for and its expiry, and is signed
// with the provider secret.
type Provider struct {
	secret []byte
	ttl    time.Duration
	field  string
	now    func() time.Time
}

// New creates a provider. It returns ErrEmptySecret for an empty secret.
func New(secret string, opts ...Option) (*Provider, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	p := &Provider{
		secret: []byte(secret),
		ttl:    DefaultTTL,
		field:  DefaultFieldName,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// FieldName returns the form field name carrying the token.
func (p *Provider) FieldName() string {
	return p.field
}

// Token issues a token that is not bound to a session.
func (p *Provider) Token() (string, error) {
	return p.TokenFor("")
}

// TokenFor issues a token bound to session.
func (p *Provider) TokenFor(session string) (string, error) {
	return sign(payload{
		Nonce:   uuid.New(),
		Session: session,
		Expires: p.now().Add(p.ttl).Unix(),
	}, p.secret)
}

// Verify checks the token signature, expiry and session binding.
func (p *Provider) Verify(token, session string) error {
	if token == "" {
		return ErrInvalidToken
	}
	pl, err := verify[payload](token, p.secret)
	if err != nil {
		return err
	}
	if pl.Nonce == uuid.Nil {
		return ErrInvalidToken
	}
	if p.now().Unix() > pl.Expires {
		return ErrTokenExpired
	}
	if pl.Session != session {
		return ErrSessionMismatch
	}
	return nil
}
