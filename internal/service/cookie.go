package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vadimbarashkov/cookie-keeper/internal/models"
	"github.com/vadimbarashkov/cookie-keeper/pkg/cookieheader"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// ErrNoCookies is returned when an upload contains no usable cookie pairs
// after parsing and merging both input sources.
var ErrNoCookies = errors.New("no usable cookies provided")

const defaultCookiePath = "/"

// CookieRepository defines the interface for working with cookie records
// at the business logic layer.
type CookieRepository interface {
	// CreateBatch inserts the given cookie records atomically.
	// Either every record is persisted or none are.
	CreateBatch(ctx context.Context, cookies []*models.Cookie) ([]*models.Cookie, error)

	// List retrieves the caller's cookie records, optionally filtered by website.
	// An empty website returns all records owned by the caller.
	List(ctx context.Context, userID int64, website string) ([]*models.Cookie, error)

	// UpdateValidation sets the validity and validation timestamp for the given
	// record ids in one statement. Returns the number of records updated.
	UpdateValidation(ctx context.Context, ids []string, valid bool, validatedAt time.Time) (int64, error)

	// Delete removes a cookie record owned by the caller.
	// Returns an error if the record doesn't exist or belongs to another user.
	Delete(ctx context.Context, userID int64, id string) error
}

// Checker determines whether a website still accepts a set of cookie pairs.
// A check always terminates in a verdict, never an error.
type Checker interface {
	Check(ctx context.Context, website string, pairs []cookieheader.Pair) bool
}

// CookiePayload is a single cookie supplied in structured form on upload.
type CookiePayload struct {
	Name    string
	Value   string
	Domain  string
	Path    string
	Expires *time.Time
}

// ValidationSummary describes the outcome of one validation attempt.
type ValidationSummary struct {
	// Website is the site label the cookies were checked against.
	Website string
	// Checked is false when no records existed for the website, in which
	// case nothing was validated and Valid is meaningless.
	Checked bool
	// Valid is the verdict applied to every record of the website.
	Valid bool
	// UpdatedCount is the number of records the verdict was applied to.
	UpdatedCount int64
}

// CookieService provides methods to manage stored cookies and validate them
// against their originating sites.
type CookieService struct {
	repo     CookieRepository
	checker  Checker
	idLength int
}

// NewCookieService creates a new instance of CookieService with the provided
// repository, checker and record id length.
func NewCookieService(repo CookieRepository, checker Checker, idLength int) *CookieService {
	return &CookieService{
		repo:     repo,
		checker:  checker,
		idLength: idLength,
	}
}

// Upload merges cookies parsed from a raw Cookie header with cookies supplied
// in structured form and persists one record per pair for the given website,
// all in a single transaction. Pairs with an empty name or value are dropped
// from either source. When the merged list ends up empty the upload is
// rejected with ErrNoCookies and nothing is persisted.
func (s *CookieService) Upload(ctx context.Context, userID int64, website, header string, cookies []CookiePayload) ([]*models.Cookie, error) {
	const op = "service.CookieService.Upload"

	var payloads []CookiePayload

	for _, pair := range cookieheader.Parse(header) {
		payloads = append(payloads, CookiePayload{
			Name:  pair.Name,
			Value: pair.Value,
			Path:  defaultCookiePath,
		})
	}

	for _, cookie := range cookies {
		cookie.Name = strings.TrimSpace(cookie.Name)
		cookie.Value = strings.TrimSpace(cookie.Value)
		if cookie.Name == "" || cookie.Value == "" {
			continue
		}

		if cookie.Path == "" {
			cookie.Path = defaultCookiePath
		}

		payloads = append(payloads, cookie)
	}

	if len(payloads) == 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrNoCookies)
	}

	records := make([]*models.Cookie, 0, len(payloads))

	for _, payload := range payloads {
		id, err := gonanoid.New(s.idLength)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to generate cookie id: %w", op, err)
		}

		records = append(records, &models.Cookie{
			ID:      id,
			UserID:  userID,
			Website: website,
			Name:    payload.Name,
			Value:   payload.Value,
			Domain:  payload.Domain,
			Path:    payload.Path,
			Expires: payload.Expires,
		})
	}

	created, err := s.repo.CreateBatch(ctx, records)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to save cookies: %w", op, err)
	}

	return created, nil
}

// List retrieves the caller's cookie records, optionally filtered by website.
func (s *CookieService) List(ctx context.Context, userID int64, website string) ([]*models.Cookie, error) {
	const op = "service.CookieService.List"

	cookies, err := s.repo.List(ctx, userID, website)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to list cookies: %w", op, err)
	}

	return cookies, nil
}

// Delete removes a cookie record owned by the caller.
func (s *CookieService) Delete(ctx context.Context, userID int64, id string) error {
	const op = "service.CookieService.Delete"

	err := s.repo.Delete(ctx, userID, id)
	if err != nil {
		return fmt.Errorf("%s: failed to delete cookie: %w", op, err)
	}

	return nil
}

// Validate checks whether the website still accepts the caller's stored
// cookies and applies the single per-site verdict to every record of that
// website together with the validation timestamp.
//
// When no records exist for the website the summary reports Checked=false
// and nothing is updated. The verdict computation itself cannot fail.
func (s *CookieService) Validate(ctx context.Context, userID int64, website string) (*ValidationSummary, error) {
	const op = "service.CookieService.Validate"

	cookies, err := s.repo.List(ctx, userID, website)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to list cookies: %w", op, err)
	}

	if len(cookies) == 0 {
		return &ValidationSummary{Website: website}, nil
	}

	ids := make([]string, len(cookies))
	pairs := make([]cookieheader.Pair, len(cookies))
	for i, cookie := range cookies {
		ids[i] = cookie.ID
		pairs[i] = cookieheader.Pair{Name: cookie.Name, Value: cookie.Value}
	}

	valid := s.checker.Check(ctx, website, pairs)

	count, err := s.repo.UpdateValidation(ctx, ids, valid, time.Now())
	if err != nil {
		return nil, fmt.Errorf("%s: failed to persist validation verdict: %w", op, err)
	}

	return &ValidationSummary{
		Website:      website,
		Checked:      true,
		Valid:        valid,
		UpdatedCount: count,
	}, nil
}
