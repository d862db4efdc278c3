package sessions

import (
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/eventdesk/eventdesk/internal/errors"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// TokenValidity is the cryptographic lifetime of a session token. The
// `exp` claim derived from it is the authoritative hard stop; the
// payload's ExpiresAt is advisory metadata consulted by the Manager.
const TokenValidity = 24 * time.Hour

// Payload is the authenticated session state carried by the signed token.
type Payload struct {
	Principal string
	ExpiresAt time.Time
}

// Codec signs and verifies the self-contained session token using
// symmetric HMAC-SHA256.
type Codec struct {
	secret []byte
}

// NewCodec creates a codec for the given signing secret. An empty secret
// is a configuration error and refused outright.
func NewCodec(secret string) (*Codec, error) {
	if secret == "" {
		return nil, errors.Wrapf(errors.ErrMissingConfiguration, "sessions: signing secret")
	}
	return &Codec{secret: []byte(secret)}, nil
}

// Encode produces a signed token for the payload.
func (c *Codec) Encode(payload Payload) (string, error) {
	now := NowTimeFunc()
	claims := jwtlib.MapClaims{
		"sub":       payload.Principal,
		"expiresAt": payload.ExpiresAt.Unix(),
		"iat":       now.Unix(),
		"exp":       now.Add(TokenValidity).Unix(),
		"jti":       uuid.New().String(),
	}

	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(c.secret)
	if err != nil {
		return "", errors.Wrapf(err, "sessions: failed to sign token")
	}
	return signedToken, nil
}

// Decode verifies a token and returns its payload. It returns nil on a
// missing token, an invalid signature, or an expired token; signature and
// expiry checks happen inside the parser, so no payload is ever exposed
// unless both succeed.
func (c *Codec) Decode(token string) *Payload {
	if token == "" {
		return nil
	}
	if len(c.secret) == 0 {
		log.Error().Msg("sessions: signing secret is not configured, cannot verify token")
		return nil
	}

	parsed, err := jwtlib.Parse(token, c.verificationKey,
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithTimeFunc(func() time.Time { return NowTimeFunc() }),
		jwtlib.WithExpirationRequired(),
	)
	if err != nil {
		log.Debug().Err(err).Msg("sessions: failed to verify token")
		return nil
	}

	claims, ok := parsed.Claims.(jwtlib.MapClaims)
	if !ok {
		return nil
	}

	principal, ok := claims["sub"].(string)
	if !ok || principal == "" {
		return nil
	}

	payload := &Payload{Principal: principal}
	if expiresAt, ok := claims["expiresAt"].(float64); ok {
		payload.ExpiresAt = time.Unix(int64(expiresAt), 0)
	}
	return payload
}

func (c *Codec) verificationKey(token *jwtlib.Token) (any, error) {
	if _, ok := token.Method.(*jwtlib.SigningMethodHMAC); !ok {
		return nil, errors.Wrapf(errors.ErrInvalidToken, "unexpected signing method: %v", token.Header["alg"])
	}
	return c.secret, nil
}
