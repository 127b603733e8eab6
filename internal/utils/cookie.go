package utils // package utils provides helper functions for hashing and the session cookie

import (
    "crypto/rand"  // secure random generation for session tokens
    "encoding/hex" // hex encoding of token bytes
    "errors"
    "time"

    "github.com/golang-jwt/jwt/v5" // JWT library used for the signed cookie envelope
)

// ErrBadCookie is returned when the session cookie cannot be parsed or its
// signature does not match the configured secret.
var ErrBadCookie = errors.New("invalid session cookie")

// NewSessionToken returns an opaque, unguessable session token: 32 bytes of
// cryptographically secure random data encoded as 64 hex characters.  The
// token itself carries no user information; it is only a lookup key into
// the session store.
func NewSessionToken() (string, error) {
    buf := make([]byte, 32)
    if _, err := rand.Read(buf); err != nil {
        return "", err
    }
    return hex.EncodeToString(buf), nil
}

// SealSessionCookie wraps an opaque session token in a signed HS256 JWT so
// the cookie value is secret-derived: a tampered or forged cookie fails
// signature verification before the session store is ever consulted.  The
// exp claim mirrors the store-side TTL; the store remains authoritative.
func SealSessionCookie(secret, token string, ttl time.Duration) (string, error) {
    claims := jwt.MapClaims{
        "sid": token,
        "exp": time.Now().UTC().Add(ttl).Unix(),
        "iat": time.Now().UTC().Unix(),
    }
    t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
    return t.SignedString([]byte(secret))
}

// OpenSessionCookie verifies the signed cookie value and returns the opaque
// session token embedded in it.  Any parse, signature or claim failure is
// reported as ErrBadCookie; callers treat that the same as no cookie at all.
func OpenSessionCookie(secret, value string) (string, error) {
    tok, err := jwt.Parse(value, func(t *jwt.Token) (interface{}, error) {
        if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
            return nil, ErrBadCookie
        }
        return []byte(secret), nil
    })
    if err != nil || !tok.Valid {
        return "", ErrBadCookie
    }
    claims, ok := tok.Claims.(jwt.MapClaims)
    if !ok {
        return "", ErrBadCookie
    }
    sid, ok := claims["sid"].(string)
    if !ok || sid == "" {
        return "", ErrBadCookie
    }
    return sid, nil
}
