package http

import (
	"strings"
	"time"

	"github.com/vadimbarashkov/cookie-keeper/internal/models"
	"github.com/vadimbarashkov/cookie-keeper/internal/service"
)

// registerRequest represents the request payload for creating an account.
type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// loginRequest represents the request payload for logging in.
type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// userResponse represents the response payload describing an account.
type userResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserResponse(user *models.User) userResponse {
	return userResponse{
		ID:        user.ID,
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
	}
}

// loginResponse represents the response payload for a successful login.
type loginResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

// cookiePayload is a single structured cookie in an upload request.
type cookiePayload struct {
	Name    string     `json:"name"`
	Value   string     `json:"value"`
	Domain  string     `json:"domain"`
	Path    string     `json:"path"`
	Expires *time.Time `json:"expires"`
}

// uploadCookiesRequest represents the request payload for uploading cookies.
// Cookies may be supplied as a raw Cookie header, as structured pairs, or both.
type uploadCookiesRequest struct {
	Website      string          `json:"website" validate:"required"`
	CookieHeader string          `json:"cookie_header"`
	Cookies      []cookiePayload `json:"cookies"`
}

// normalize trims the website so a padded label matches the stored one on
// later lookups. Must run before validation so a blank website is rejected.
func (req *uploadCookiesRequest) normalize() {
	req.Website = strings.TrimSpace(req.Website)
}

func (req *uploadCookiesRequest) payloads() []service.CookiePayload {
	payloads := make([]service.CookiePayload, len(req.Cookies))
	for i, cookie := range req.Cookies {
		payloads[i] = service.CookiePayload{
			Name:    cookie.Name,
			Value:   cookie.Value,
			Domain:  cookie.Domain,
			Path:    cookie.Path,
			Expires: cookie.Expires,
		}
	}

	return payloads
}

// cookieResponse represents a stored cookie record in API responses.
// IsValid is null until the record has been validated at least once.
type cookieResponse struct {
	ID            string     `json:"id"`
	Website       string     `json:"website"`
	Name          string     `json:"name"`
	Value         string     `json:"value"`
	Domain        string     `json:"domain"`
	Path          string     `json:"path"`
	Expires       *time.Time `json:"expires"`
	IsValid       *bool      `json:"is_valid"`
	LastValidated *time.Time `json:"last_validated"`
	CreatedAt     time.Time  `json:"created_at"`
}

func toCookieResponse(cookie *models.Cookie) cookieResponse {
	return cookieResponse{
		ID:            cookie.ID,
		Website:       cookie.Website,
		Name:          cookie.Name,
		Value:         cookie.Value,
		Domain:        cookie.Domain,
		Path:          cookie.Path,
		Expires:       cookie.Expires,
		IsValid:       cookie.Validity.Bool(),
		LastValidated: cookie.LastValidated,
		CreatedAt:     cookie.CreatedAt,
	}
}

func toCookieResponses(cookies []*models.Cookie) []cookieResponse {
	resps := make([]cookieResponse, len(cookies))
	for i, cookie := range cookies {
		resps[i] = toCookieResponse(cookie)
	}

	return resps
}

// uploadCookiesResponse represents the response payload for an upload.
type uploadCookiesResponse struct {
	Website string           `json:"website"`
	Count   int              `json:"count"`
	Cookies []cookieResponse `json:"cookies"`
}

// listCookiesResponse represents the response payload for a listing.
type listCookiesResponse struct {
	Cookies []cookieResponse `json:"cookies"`
	Count   int              `json:"count"`
}

// validateCookiesRequest represents the request payload for a validation run.
type validateCookiesRequest struct {
	Website string `json:"website" validate:"required"`
}

func (req *validateCookiesRequest) normalize() {
	req.Website = strings.TrimSpace(req.Website)
}

// validateCookiesResponse represents the response payload for a validation
// run. Verdict is null when there was nothing to validate.
type validateCookiesResponse struct {
	Website      string `json:"website"`
	Verdict      *bool  `json:"verdict"`
	UpdatedCount int64  `json:"updated_count"`
}

func toValidateCookiesResponse(summary *service.ValidationSummary) validateCookiesResponse {
	resp := validateCookiesResponse{
		Website:      summary.Website,
		UpdatedCount: summary.UpdatedCount,
	}

	if summary.Checked {
		verdict := summary.Valid
		resp.Verdict = &verdict
	}

	return resp
}
