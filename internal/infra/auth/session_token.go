package auth

import (
	"time"

	"secretwall/config"
	"secretwall/internal/domain/service"
	"secretwall/internal/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const sessionTokenIssuer = "secretwall"

// jwtSessionTokens signs session ids into HS256 JWTs for the session cookie.
type jwtSessionTokens struct {
	secret []byte
	now    func() time.Time
}

// NewSessionTokenService is the constructor for the cookie token signer.
func NewSessionTokenService(cfg *config.Config) (service.SessionTokenService, error) {
	if cfg.Session.Secret == "" {
		return nil, errors.New("session secret must be provided")
	}

	return &jwtSessionTokens{
		secret: []byte(cfg.Session.Secret),
		now:    time.Now,
	}, nil
}

// Issue signs a token naming sessionID.
func (s *jwtSessionTokens) Issue(sessionID uuid.UUID, expiresAt time.Time) (string, error) {
	claims := service.SessionClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    sessionTokenIssuer,
			IssuedAt:  jwt.NewNumericDate(s.now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "sign session token")
	}

	return signed, nil
}

// Parse verifies signature and issuer. Expiry is owned by the session record, so an
// expired token still names its session and lets the caller delete it.
func (s *jwtSessionTokens) Parse(tokenString string) (uuid.UUID, error) {
	claims := &service.SessionClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return uuid.Nil, errors.Wrap(err, "parse session token")
	}

	if claims.Issuer != sessionTokenIssuer {
		return uuid.Nil, errors.Errorf("unexpected session token issuer %q", claims.Issuer)
	}
	if claims.SessionID == uuid.Nil {
		return uuid.Nil, errors.New("session token has no session id")
	}

	return claims.SessionID, nil
}
