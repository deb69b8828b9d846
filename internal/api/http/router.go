// Package http provides the HTTP delivery layer for the cookie keeper
// service. It contains the router, the authentication middleware and the
// handlers used for processing incoming requests, validating input, and
// formatting responses.
package http

import (
	"context"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v2"
	"github.com/go-playground/validator/v10"
	httpSwagger "github.com/swaggo/http-swagger"
	"github.com/vadimbarashkov/cookie-keeper/internal/models"
	"github.com/vadimbarashkov/cookie-keeper/internal/service"
)

// UserService defines the interface for account management consumed by the
// HTTP layer.
type UserService interface {
	// Register creates a new account.
	// Returns the created user or an error if the username is taken.
	Register(ctx context.Context, username, password string) (*models.User, error)

	// Login verifies credentials and issues an access token.
	Login(ctx context.Context, username, password string) (string, *models.User, error)

	// GetUser retrieves the account behind an authenticated user id.
	GetUser(ctx context.Context, id int64) (*models.User, error)

	// VerifyToken validates an access token and returns the user id it carries.
	VerifyToken(token string) (int64, error)
}

// CookieService defines the interface for the core cookie keeping business
// logic.
type CookieService interface {
	// Upload persists the cookies supplied for a website, one record per pair.
	Upload(ctx context.Context, userID int64, website, header string, cookies []service.CookiePayload) ([]*models.Cookie, error)

	// List retrieves the caller's cookie records, optionally filtered by website.
	List(ctx context.Context, userID int64, website string) ([]*models.Cookie, error)

	// Delete removes a cookie record owned by the caller.
	Delete(ctx context.Context, userID int64, id string) error

	// Validate checks the website with the caller's stored cookies and applies
	// the verdict to every record of that website.
	Validate(ctx context.Context, userID int64, website string) (*service.ValidationSummary, error)
}

// getValidate initializes a new validator instance for validating incoming
// request payloads. It customizes tag name extraction from struct fields to
// match JSON tags.
func getValidate() *validator.Validate {
	validate := validator.New()

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return validate
}

// NewRouter initializes and returns a new HTTP router with all routes and
// middleware configured.
func NewRouter(logger *httplog.Logger, userSvc UserService, cookieSvc CookieService) http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*"},
		AllowedMethods:   []string{"POST", "GET", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Accept", "Authorization"},
		AllowCredentials: false,
		MaxAge:           84600,
	}))
	r.Use(middleware.AllowContentType("application/json"))
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(httplog.RequestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/swagger.yml"),
	))

	r.Get("/docs/swagger.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./docs/swagger.yml")
	})

	r.Route("/api/v1", func(r chi.Router) {
		validate := getValidate()

		r.Get("/ping", handlePing)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", handleRegister(userSvc, validate))
			r.Post("/login", handleLogin(userSvc, validate))
			r.With(authenticate(userSvc)).Get("/user", handleGetUser(userSvc))
		})

		r.Route("/cookies", func(r chi.Router) {
			r.Use(authenticate(userSvc))

			r.Post("/", handleUploadCookies(cookieSvc, validate))
			r.Get("/", handleListCookies(cookieSvc))
			r.Delete("/{cookieID}", handleDeleteCookie(cookieSvc))
			r.Post("/validate", handleValidateCookies(cookieSvc, validate))
		})
	})

	return r
}
