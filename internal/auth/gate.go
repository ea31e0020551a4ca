// Package auth implements the administrator gate: a single configured
// identity and one static bearer token with no expiry or revocation.
package auth

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/nhoyhub/orderhub/internal/config"
	"github.com/nhoyhub/orderhub/internal/presentation/http/response"
	"github.com/nhoyhub/orderhub/pkg/errorbank"
)

const bearerPrefix = "Bearer "

// Gate validates credentials and tokens against the configured admin identity.
// It is a stateless check against constants; there is no lockout and no audit.
type Gate struct {
	username string
	password string
	token    string
}

// NewGate builds the gate from configuration.
func NewGate(cfg config.Config) *Gate {
	return &Gate{
		username: cfg.Auth.Username,
		password: cfg.Auth.Password,
		token:    cfg.Auth.Token,
	}
}

// Login exchanges the admin credential pair for the static bearer token.
// Anything but an exact match fails.
func (g *Gate) Login(username, password string) (string, error) {
	if username != g.username || password != g.password {
		return "", errorbank.Unauthorized("incorrect username or password")
	}
	return g.token, nil
}

// Authorize checks a presented token for exact equality with the static token
// and returns the admin identity it maps to.
func (g *Gate) Authorize(presented string) (string, error) {
	if presented != g.token {
		return "", errorbank.Unauthorized("invalid authentication credentials")
	}
	return g.username, nil
}

// Middleware guards admin routes. It extracts the bearer token from the
// Authorization header, authorizes it, and stores the admin identity on the
// request context under "admin".
func (g *Gate) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(header, bearerPrefix) {
				return response.New(c).WithError(errorbank.Unauthorized("missing bearer token")).Build()
			}
			admin, err := g.Authorize(strings.TrimPrefix(header, bearerPrefix))
			if err != nil {
				return response.New(c).WithError(err).Build()
			}
			c.Set("admin", admin)
			return next(c)
		}
	}
}
