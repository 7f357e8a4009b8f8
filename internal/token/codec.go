// Package token encodes and decodes the signed claim set that grants access
// to one stored document. Tokens are HMAC-signed and time-bounded; a codec
// holds the symmetric secret it was constructed with and nothing else.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidSignature is returned when the token signature does not match.
	ErrInvalidSignature = errors.New("token signature mismatch")
	// ErrExpired is returned when the token is past its expiry.
	ErrExpired = errors.New("token expired")
	// ErrMalformed is returned when the token cannot be parsed at all.
	ErrMalformed = errors.New("token malformed")
)

// Permissions describe what the grant holder may do with the document.
type Permissions struct {
	Edit   bool `json:"edit"`
	Review bool `json:"review"`
}

// Document is the claim-set descriptor of one document-access grant. Key is a
// per-grant random handle, not the storage id; URL embeds the storage id so
// redemption can resolve the blob without consulting external state.
type Document struct {
	FileType    string      `json:"fileType"`
	Key         string      `json:"key"`
	Title       string      `json:"title"`
	URL         string      `json:"url"`
	Permissions Permissions `json:"permissions"`
}

// EditorConfig carries the embedded editor's user context.
type EditorConfig struct {
	Mode string     `json:"mode"`
	User EditorUser `json:"user"`
}

// EditorUser identifies the editing user to the embedded editor.
type EditorUser struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Claims is the full signed payload. DocumentType is the editor document type
// ("word" or "cell"); expiry and issue time live in the registered claims.
type Claims struct {
	Document     Document     `json:"document"`
	DocumentType string       `json:"documentType"`
	EditorConfig EditorConfig `json:"editorConfig"`
	jwt.RegisteredClaims
}

// Codec signs and verifies access claims with a symmetric secret.
type Codec struct {
	secret []byte
}

// NewCodec creates a codec bound to the given secret. The secret is injected
// here rather than read from process-wide state so tests can swap keys.
func NewCodec(secret []byte) *Codec {
	return &Codec{secret: secret}
}

// Encode serializes and signs the claims with HS256.
func (c *Codec) Encode(claims *Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.secret)
}

// Decode verifies the token and returns its claims. Verification has no side
// effects: decoding the same token twice yields identical claims.
//
// Errors: ErrExpired when past expiry, ErrInvalidSignature when signed with a
// different secret, ErrMalformed when the token cannot be parsed.
func (c *Codec) Decode(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuedAt())
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrInvalidSignature
		default:
			return nil, ErrMalformed
		}
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrMalformed
	}
	return claims, nil
}

// NewRegisteredClaims builds registered claims for a grant issued now with the
// given TTL, enforcing expiresAt = issuedAt + ttl.
func NewRegisteredClaims(now time.Time, ttl time.Duration) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
}
