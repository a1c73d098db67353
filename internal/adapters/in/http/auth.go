package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"grameego/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const actorKey = "actor"

// Claims is the token payload issued by the identity provider.
type Claims struct {
	ID     string `json:"id"`
	Role   string `json:"role"`
	Name   string `json:"name,omitempty"`
	ShopID string `json:"shopId,omitempty"`
	jwt.RegisteredClaims
}

// TokenVerifier checks HS256 bearer tokens and turns them into actors.
type TokenVerifier struct {
	secret []byte
}

func NewTokenVerifier(secret string) (*TokenVerifier, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("jwt secret is empty")
	}
	return &TokenVerifier{secret: []byte(secret)}, nil
}

// Verify parses and validates the token. Any failure, including an unknown
// role or a malformed id, is reported as an invalid token.
func (v *TokenVerifier) Verify(token string) (kernel.Actor, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return kernel.Actor{}, err
	}

	id, err := kernel.ParseUUID("id", claims.ID)
	if err != nil {
		return kernel.Actor{}, err
	}
	role, err := kernel.ParseRole(claims.Role)
	if err != nil {
		return kernel.Actor{}, err
	}
	return kernel.NewActor(id, role, claims.Name, claims.ShopID)
}

// Issue signs a token for actor. The service never logs anybody in; this is
// for development tooling and tests.
func (v *TokenVerifier) Issue(actor kernel.Actor, ttl time.Duration, now time.Time) (string, error) {
	claims := Claims{
		ID:     actor.ID().String(),
		Role:   actor.Role().String(),
		Name:   actor.Name(),
		ShopID: actor.ShopID(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}

// authenticate requires a valid bearer token and stores the actor on the
// echo context.
func authenticate(verifier *TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "No token")
			}

			actor, err := verifier.Verify(token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token").SetInternal(err)
			}

			c.Set(actorKey, actor)
			return next(c)
		}
	}
}

func actorFrom(c echo.Context) (kernel.Actor, error) {
	actor, ok := c.Get(actorKey).(kernel.Actor)
	if !ok {
		return kernel.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "No token")
	}
	return actor, nil
}
