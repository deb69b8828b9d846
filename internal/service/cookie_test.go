package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/vadimbarashkov/cookie-keeper/internal/models"
	"github.com/vadimbarashkov/cookie-keeper/pkg/cookieheader"
)

type MockCookieRepository struct {
	mock.Mock
}

func (r *MockCookieRepository) CreateBatch(ctx context.Context, cookies []*models.Cookie) ([]*models.Cookie, error) {
	args := r.Called(ctx, cookies)
	created, _ := args.Get(0).([]*models.Cookie)
	return created, args.Error(1)
}

func (r *MockCookieRepository) List(ctx context.Context, userID int64, website string) ([]*models.Cookie, error) {
	args := r.Called(ctx, userID, website)
	cookies, _ := args.Get(0).([]*models.Cookie)
	return cookies, args.Error(1)
}

func (r *MockCookieRepository) UpdateValidation(ctx context.Context, ids []string, valid bool, validatedAt time.Time) (int64, error) {
	args := r.Called(ctx, ids, valid, validatedAt)
	return args.Get(0).(int64), args.Error(1)
}

func (r *MockCookieRepository) Delete(ctx context.Context, userID int64, id string) error {
	args := r.Called(ctx, userID, id)
	return args.Error(0)
}

type MockChecker struct {
	mock.Mock
}

func (c *MockChecker) Check(ctx context.Context, website string, pairs []cookieheader.Pair) bool {
	args := c.Called(ctx, website, pairs)
	return args.Bool(0)
}

func setupCookieService(t testing.TB) (*CookieService, *MockCookieRepository, *MockChecker) {
	t.Helper()

	repo := new(MockCookieRepository)
	checker := new(MockChecker)
	svc := NewCookieService(repo, checker, 21)

	t.Cleanup(func() {
		repo.AssertExpectations(t)
		checker.AssertExpectations(t)
	})

	return svc, repo, checker
}

func TestCookieService_Upload(t *testing.T) {
	t.Run("no usable cookies", func(t *testing.T) {
		svc, _, _ := setupCookieService(t)

		cookies := []CookiePayload{
			{Name: "", Value: "x"},
			{Name: "  ", Value: "y"},
			{Name: "z", Value: ""},
		}

		created, err := svc.Upload(context.TODO(), 1, "example.com", "junk; =x; c=", cookies)

		assert.Error(t, err)
		assert.ErrorIs(t, err, ErrNoCookies)
		assert.Nil(t, created)
	})

	t.Run("repository error persists nothing", func(t *testing.T) {
		svc, repo, _ := setupCookieService(t)

		repo.On("CreateBatch", mock.Anything, mock.AnythingOfType("[]*models.Cookie")).
			Return(nil, errUnknown).
			Once()

		created, err := svc.Upload(context.TODO(), 1, "example.com", "a=1; b=2", nil)

		assert.Error(t, err)
		assert.ErrorIs(t, err, errUnknown)
		assert.Nil(t, created)
	})

	t.Run("merges header and structured cookies into one batch", func(t *testing.T) {
		svc, repo, _ := setupCookieService(t)

		var got []*models.Cookie
		repo.On("CreateBatch", mock.Anything, mock.AnythingOfType("[]*models.Cookie")).
			Run(func(args mock.Arguments) {
				got = args.Get(1).([]*models.Cookie)
			}).
			Return([]*models.Cookie{{}, {}, {}}, nil).
			Once()

		cookies := []CookiePayload{
			{Name: "token", Value: "abc=def", Domain: ".example.com"},
			{Name: "", Value: "dropped"},
		}

		created, err := svc.Upload(context.TODO(), 1, "example.com", "a=1; b=2", cookies)

		assert.NoError(t, err)
		assert.Len(t, created, 3)
		assert.Len(t, got, 3)

		assert.Equal(t, "a", got[0].Name)
		assert.Equal(t, "1", got[0].Value)
		assert.Equal(t, "b", got[1].Name)
		assert.Equal(t, "token", got[2].Name)
		assert.Equal(t, "abc=def", got[2].Value)
		assert.Equal(t, ".example.com", got[2].Domain)

		for _, cookie := range got {
			assert.NotEmpty(t, cookie.ID)
			assert.Equal(t, int64(1), cookie.UserID)
			assert.Equal(t, "example.com", cookie.Website)
			assert.Equal(t, "/", cookie.Path)
		}
	})
}

func TestCookieService_List(t *testing.T) {
	t.Run("repository error", func(t *testing.T) {
		svc, repo, _ := setupCookieService(t)

		repo.On("List", mock.Anything, int64(1), "").
			Return(nil, errUnknown).
			Once()

		cookies, err := svc.List(context.TODO(), 1, "")

		assert.Error(t, err)
		assert.ErrorIs(t, err, errUnknown)
		assert.Nil(t, cookies)
	})

	t.Run("success", func(t *testing.T) {
		svc, repo, _ := setupCookieService(t)

		want := []*models.Cookie{{ID: "ck1"}, {ID: "ck2"}}
		repo.On("List", mock.Anything, int64(1), "example.com").
			Return(want, nil).
			Once()

		cookies, err := svc.List(context.TODO(), 1, "example.com")

		assert.NoError(t, err)
		assert.Equal(t, want, cookies)
	})
}

func TestCookieService_Delete(t *testing.T) {
	t.Run("repository error", func(t *testing.T) {
		svc, repo, _ := setupCookieService(t)

		repo.On("Delete", mock.Anything, int64(1), "ck1").
			Return(errUnknown).
			Once()

		err := svc.Delete(context.TODO(), 1, "ck1")

		assert.Error(t, err)
		assert.ErrorIs(t, err, errUnknown)
	})

	t.Run("success", func(t *testing.T) {
		svc, repo, _ := setupCookieService(t)

		repo.On("Delete", mock.Anything, int64(1), "ck1").
			Return(nil).
			Once()

		err := svc.Delete(context.TODO(), 1, "ck1")

		assert.NoError(t, err)
	})
}

func TestCookieService_Validate(t *testing.T) {
	stored := []*models.Cookie{
		{ID: "ck1", Name: "session", Value: "abc"},
		{ID: "ck2", Name: "token", Value: "xyz"},
	}
	wantPairs := []cookieheader.Pair{
		{Name: "session", Value: "abc"},
		{Name: "token", Value: "xyz"},
	}

	t.Run("list error", func(t *testing.T) {
		svc, repo, _ := setupCookieService(t)

		repo.On("List", mock.Anything, int64(1), "example.com").
			Return(nil, errUnknown).
			Once()

		summary, err := svc.Validate(context.TODO(), 1, "example.com")

		assert.Error(t, err)
		assert.ErrorIs(t, err, errUnknown)
		assert.Nil(t, summary)
	})

	t.Run("nothing to validate", func(t *testing.T) {
		svc, repo, _ := setupCookieService(t)

		repo.On("List", mock.Anything, int64(1), "example.com").
			Return([]*models.Cookie{}, nil).
			Once()

		summary, err := svc.Validate(context.TODO(), 1, "example.com")

		assert.NoError(t, err)
		assert.NotNil(t, summary)
		assert.False(t, summary.Checked)
		assert.Zero(t, summary.UpdatedCount)
	})

	t.Run("valid verdict is applied to all records", func(t *testing.T) {
		svc, repo, checker := setupCookieService(t)

		repo.On("List", mock.Anything, int64(1), "example.com").
			Return(stored, nil).
			Once()
		checker.On("Check", mock.Anything, "example.com", wantPairs).
			Return(true).
			Once()
		repo.On("UpdateValidation", mock.Anything, []string{"ck1", "ck2"}, true, mock.AnythingOfType("time.Time")).
			Return(int64(2), nil).
			Once()

		summary, err := svc.Validate(context.TODO(), 1, "example.com")

		assert.NoError(t, err)
		assert.True(t, summary.Checked)
		assert.True(t, summary.Valid)
		assert.Equal(t, int64(2), summary.UpdatedCount)
	})

	t.Run("invalid verdict is applied to all records", func(t *testing.T) {
		svc, repo, checker := setupCookieService(t)

		repo.On("List", mock.Anything, int64(1), "example.com").
			Return(stored, nil).
			Once()
		checker.On("Check", mock.Anything, "example.com", wantPairs).
			Return(false).
			Once()
		repo.On("UpdateValidation", mock.Anything, []string{"ck1", "ck2"}, false, mock.AnythingOfType("time.Time")).
			Return(int64(2), nil).
			Once()

		summary, err := svc.Validate(context.TODO(), 1, "example.com")

		assert.NoError(t, err)
		assert.True(t, summary.Checked)
		assert.False(t, summary.Valid)
		assert.Equal(t, int64(2), summary.UpdatedCount)
	})

	t.Run("update error", func(t *testing.T) {
		svc, repo, checker := setupCookieService(t)

		repo.On("List", mock.Anything, int64(1), "example.com").
			Return(stored, nil).
			Once()
		checker.On("Check", mock.Anything, "example.com", wantPairs).
			Return(true).
			Once()
		repo.On("UpdateValidation", mock.Anything, []string{"ck1", "ck2"}, true, mock.AnythingOfType("time.Time")).
			Return(int64(0), errUnknown).
			Once()

		summary, err := svc.Validate(context.TODO(), 1, "example.com")

		assert.Error(t, err)
		assert.ErrorIs(t, err, errUnknown)
		assert.Nil(t, summary)
	})
}
