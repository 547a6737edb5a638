package auth

import (
	"context"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
	"github.com/google/uuid"
	"github.com/portalis/go-portal-auth/middleware/jwtware"
)

// UserResolver loads the full user record a validated token points at.
type UserResolver interface {
	FindUserByUUID(ctx context.Context, id uuid.UUID) (*User, error)
}

// RouteAuthenticator wires the Authenticator into route middleware for
// JSON APIs. Auth failures always answer 401 with a JSON body; the bearer
// token is the only credential carrier.
type RouteAuthenticator struct {
	auth             Authenticator
	cfg              Config
	validator        TokenValidator
	users            UserResolver
	Logger           Logger
	AuthErrorHandler func(c router.Context, err error) error
	ErrorHandler     func(c router.Context, err error) error
}

func NewHTTPAuthenticator(auther Authenticator, cfg Config) (*RouteAuthenticator, error) {
	a := &RouteAuthenticator{
		cfg:    cfg,
		auth:   auther,
		Logger: defLogger{},
	}

	if ts, ok := auther.(interface{ TokenService() TokenService }); ok {
		a.validator = ts.TokenService()
	} else {
		a.validator = NewTokenService(
			[]byte(cfg.GetSigningKey()),
			cfg.GetTokenExpiration(),
			cfg.GetIssuer(),
			defLogger{},
		)
	}

	a.ErrorHandler = a.defaultErrHandler
	a.AuthErrorHandler = a.defaultAuthErrHandler

	return a, nil
}

func (a *RouteAuthenticator) WithLogger(logger Logger) *RouteAuthenticator {
	if logger != nil {
		a.Logger = logger
	}
	return a
}

// WithUserResolver makes protected routes load the full user record and
// attach it to the request context.
func (a *RouteAuthenticator) WithUserResolver(users UserResolver) *RouteAuthenticator {
	a.users = users
	return a
}

// Protected returns middleware that rejects requests without a valid
// bearer token.
func (a *RouteAuthenticator) Protected() router.MiddlewareFunc {
	return a.protectedRoute(false)
}

// AdminOnly returns middleware that additionally requires the token's
// admin flag.
func (a *RouteAuthenticator) AdminOnly() router.MiddlewareFunc {
	return a.protectedRoute(true)
}

func (a *RouteAuthenticator) protectedRoute(requireAdmin bool) router.MiddlewareFunc {
	return jwtware.New(jwtware.Config{
		ErrorHandler:   a.MakeRouteAuthErrorHandler(false),
		TokenValidator: jwtwareValidator{a.validator},
		SigningKey: jwtware.SigningKey{
			Key:    []byte(a.cfg.GetSigningKey()),
			JWTAlg: a.cfg.GetSigningMethod(),
		},
		AuthScheme:      a.cfg.GetAuthScheme(),
		ContextKey:      a.cfg.GetContextKey(),
		TokenLookup:     a.cfg.GetTokenLookup(),
		RequireAdmin:    requireAdmin,
		ContextEnricher: ContextEnricherAdapter,
		SuccessHandler:  a.resolveUser,
	})
}

// resolveUser runs after token validation. When a resolver is configured it
// loads the user record and attaches it to the standard context so handlers
// downstream can use FromContext.
func (a *RouteAuthenticator) resolveUser(ctx router.Context) error {
	if a.users == nil {
		return ctx.Next()
	}

	claims, ok := GetRouterClaims(ctx, a.cfg.GetContextKey())
	if !ok {
		return a.AuthErrorHandler(ctx, ErrUnableToMapClaims)
	}

	id, err := uuid.Parse(claims.UserID())
	if err != nil {
		a.Logger.Error("Protected route token carries a non uuid subject: %v", err)
		return a.AuthErrorHandler(ctx, ErrUnableToMapClaims)
	}

	user, err := a.users.FindUserByUUID(ctx.Context(), id)
	if err != nil {
		return a.AuthErrorHandler(ctx, err)
	}

	ctx.SetContext(WithContext(ctx.Context(), user))

	return ctx.Next()
}

// MakeRouteAuthErrorHandler normalizes token errors before answering. With
// optional set the request proceeds unauthenticated instead of failing.
func (a *RouteAuthenticator) MakeRouteAuthErrorHandler(optional bool) func(router.Context, error) error {
	return func(ctx router.Context, err error) error {
		var richErr *errors.Error

		if IsTokenExpiredError(err) {
			richErr = ErrTokenExpired
		} else if IsMalformedError(err) {
			richErr = ErrTokenMalformed
		} else if !errors.As(err, &richErr) {
			richErr = errors.Wrap(err, errors.CategoryAuth, "Invalid authentication token").
				WithCode(errors.CodeUnauthorized)
		}

		if optional {
			a.Logger.Info("Optional auth failed, proceeding: %s", richErr.Message)
			return ctx.Next()
		}

		return a.AuthErrorHandler(ctx, richErr)
	}
}

func (a *RouteAuthenticator) defaultAuthErrHandler(c router.Context, err error) error {
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		richErr = errors.Wrap(err, errors.CategoryAuth, "An unexpected authentication error").
			WithCode(errors.CodeUnauthorized)
	}

	a.Logger.Info(
		"Authentication error: %s text_code=%s path=%s",
		richErr.Message,
		richErr.TextCode,
		c.OriginalURL(),
	)

	status := richErr.Code
	if status == 0 {
		status = router.StatusUnauthorized
	}

	return c.JSON(status, router.ViewContext{
		"error": richErr.Message,
	})
}

func (a *RouteAuthenticator) defaultErrHandler(c router.Context, err error) error {
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		richErr = errors.Wrap(err, errors.CategoryInternal, "An unexpected server error occurred").
			WithCode(errors.CodeInternal)
	}

	a.Logger.Info(
		"Middleware error handler: %s category=%s details=%s",
		richErr.Message,
		richErr.Category,
		print.MaybePrettyJSON(richErr.Metadata),
	)

	switch richErr.Category {
	case errors.CategoryAuth, errors.CategoryAuthz:
		return a.AuthErrorHandler(c, richErr)
	default:
		return c.JSON(richErr.Code, router.ViewContext{
			"error": richErr.Message,
		})
	}
}

// jwtwareValidator bridges the auth token validator into the middleware
// package without an import cycle.
type jwtwareValidator struct {
	validator TokenValidator
}

func (j jwtwareValidator) Validate(tokenString string) (jwtware.AuthClaims, error) {
	claims, err := j.validator.Validate(tokenString)
	if err != nil {
		return nil, err
	}
	return claims, nil
}
