package auth

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
)

// RouteRegistrar captures the router methods used by the controller.
type RouteRegistrar interface {
	Get(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo
	Post(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo
}

type AuthControllerRoutes struct {
	Login    string
	Register string
}

// AuthController exposes the login and registration endpoints as a JSON
// API. Handlers delegate to the Authenticator and the register command and
// answer through a single error mapper, they never render errors ad hoc.
type AuthController struct {
	Debug        bool
	Logger       Logger
	Repo         RepositoryManager
	Routes       *AuthControllerRoutes
	Auther       Authenticator
	Activity     ActivitySink
	UseHashid    bool
	ErrorHandler func(ctx router.Context, err error) error
}

type AuthControllerOption func(*AuthController) *AuthController

func WithControllerLogger(logger Logger) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		if logger != nil {
			c.Logger = logger
		}
		return c
	}
}

func WithControllerRepo(repo RepositoryManager) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Repo = repo
		return c
	}
}

func WithControllerAuther(auther Authenticator) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Auther = auther
		return c
	}
}

func WithControllerActivitySink(sink ActivitySink) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Activity = normalizeActivitySink(sink)
		return c
	}
}

func NewAuthController(opts ...AuthControllerOption) *AuthController {
	c := &AuthController{
		Logger:   defLogger{},
		Activity: noopActivitySink{},
		Routes: &AuthControllerRoutes{
			Login:    "/login",
			Register: "/register",
		},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Repo == nil {
		panic("Missing RepositoryManager in auth controller...")
	}

	if c.Auther == nil {
		panic("Missing Authenticator in auth controller...")
	}

	return c
}

func RegisterAuthRoutes(app RouteRegistrar, opts ...AuthControllerOption) *AuthController {
	controller := NewAuthController(opts...)

	app.Post(controller.Routes.Login, controller.LoginPost)
	app.Post(controller.Routes.Register, controller.RegistrationCreate)

	return controller
}

// LoginRequest payload
type LoginRequest struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

// Validate runs validation rules. The first failing rule decides the
// response message.
func (r LoginRequest) Validate() error {
	if err := validation.Validate(r.Email,
		validation.Required.Error("Email must be provided"),
	); err != nil {
		return payloadError(err)
	}

	if err := validation.Validate(r.Password,
		validation.Required.Error("Password must be provided"),
	); err != nil {
		return payloadError(err)
	}

	return nil
}

func (a *AuthController) LoginPost(ctx router.Context) error {
	payload := new(LoginRequest)

	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("login parse payload: %v", err)
		return a.handleError(ctx, bindError(err))
	}

	if err := payload.Validate(); err != nil {
		return a.handleError(ctx, err)
	}

	if a.Debug {
		fmt.Println("======= AUTH LOGIN ======")
		fmt.Println(print.MaybePrettyJSON(payload))
		fmt.Println("=========================")
	}

	token, err := a.Auther.Login(ctx.Context(), payload.Email, payload.Password)
	if err != nil {
		return a.handleError(ctx, err)
	}

	return ctx.JSON(fiber.StatusOK, router.ViewContext{
		"error": nil,
		"token": token,
	})
}

// RegistrationUserPayload is the nested user object of the register body.
type RegistrationUserPayload struct {
	FirstName string `form:"first_name" json:"first_name"`
	LastName  string `form:"last_name" json:"last_name"`
	Email     string `form:"email" json:"email"`
	Phone     string `form:"phone_number" json:"phone_number"`
	Password  string `form:"password" json:"password"`
}

// RegistrationCreateRequest is the register body, user profile wrapped
// under a user key.
type RegistrationCreateRequest struct {
	User *RegistrationUserPayload `form:"user" json:"user"`
}

// Validate runs validation rules in order, first failure wins.
func (r RegistrationCreateRequest) Validate() error {
	if r.User == nil {
		return payloadError(goerrors.New("User must be provided", goerrors.CategoryValidation))
	}

	if err := validation.Validate(r.User.Password,
		validation.Required.Error("Password must be provided"),
	); err != nil {
		return payloadError(err)
	}

	if err := validation.Validate(r.User.Password,
		validation.Length(10, 0).Error("Password should be at least 10 characters long"),
	); err != nil {
		return payloadError(err)
	}

	if err := validation.Validate(r.User.Email,
		validation.Required.Error("Email must be provided"),
		is.Email.Error("Email must be valid"),
	); err != nil {
		return payloadError(err)
	}

	return nil
}

func (a *AuthController) RegistrationCreate(ctx router.Context) error {
	payload := new(RegistrationCreateRequest)

	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("register user parse payload: %v", err)
		return a.handleError(ctx, bindError(err))
	}

	if err := payload.Validate(); err != nil {
		a.Logger.Error("register user validate payload: %v", err)
		return a.handleError(ctx, err)
	}

	req := RegisterUserMessage{
		FirstName: payload.User.FirstName,
		LastName:  payload.User.LastName,
		Email:     payload.User.Email,
		Phone:     payload.User.Phone,
		Password:  payload.User.Password,
		UseHashid: a.UseHashid,
	}

	registerUser := NewRegisterUserHandler(a.Repo).
		WithActivitySink(a.Activity).
		WithLogger(a.Logger)

	user, err := registerUser.Execute(ctx.Context(), req)
	if err != nil {
		a.Logger.Error("register user error: %v", err)
		return a.handleError(ctx, err)
	}

	return ctx.JSON(fiber.StatusOK, router.ViewContext{
		"error": nil,
		"user":  user.PublicProfile(),
	})
}

func (a *AuthController) handleError(ctx router.Context, err error) error {
	if a.ErrorHandler != nil {
		return a.ErrorHandler(ctx, err)
	}

	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		richErr = goerrors.Wrap(err, goerrors.CategoryInternal, "An unexpected server error occurred").
			WithCode(goerrors.CodeInternal)
	}

	status := richErr.Code
	if status == 0 {
		status = fiber.StatusInternalServerError
	}

	if a.Debug {
		fmt.Println(print.MaybePrettyJSON(richErr))
	}

	return ctx.JSON(status, router.ViewContext{
		"error": richErr.Message,
	})
}

func payloadError(err error) error {
	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return richErr.WithCode(goerrors.CodeBadRequest)
	}

	return goerrors.Wrap(err, goerrors.CategoryValidation, err.Error()).
		WithCode(goerrors.CodeBadRequest)
}

func bindError(err error) error {
	return goerrors.Wrap(err, goerrors.CategoryBadInput, "Failed to parse request body").
		WithCode(goerrors.CodeBadRequest)
}
