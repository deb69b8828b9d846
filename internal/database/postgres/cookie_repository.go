package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/vadimbarashkov/cookie-keeper/internal/database"
	"github.com/vadimbarashkov/cookie-keeper/internal/models"
)

type cookieRecord struct {
	ID            string       `db:"id"`
	UserID        int64        `db:"user_id"`
	Website       string       `db:"website"`
	Name          string       `db:"name"`
	Value         string       `db:"value"`
	Domain        string       `db:"domain"`
	Path          string       `db:"path"`
	Expires       sql.NullTime `db:"expires"`
	IsValid       sql.NullBool `db:"is_valid"`
	LastValidated sql.NullTime `db:"last_validated"`
	CreatedAt     time.Time    `db:"created_at"`
}

func (r *cookieRecord) ToCookie() *models.Cookie {
	cookie := &models.Cookie{
		ID:        r.ID,
		UserID:    r.UserID,
		Website:   r.Website,
		Name:      r.Name,
		Value:     r.Value,
		Domain:    r.Domain,
		Path:      r.Path,
		CreatedAt: r.CreatedAt,
	}

	if r.Expires.Valid {
		cookie.Expires = &r.Expires.Time
	}
	if r.IsValid.Valid {
		cookie.Validity = models.ValidityFromBool(&r.IsValid.Bool)
	}
	if r.LastValidated.Valid {
		cookie.LastValidated = &r.LastValidated.Time
	}

	return cookie
}

type CookieRepository struct {
	db *sqlx.DB
}

func NewCookieRepository(db *sqlx.DB) *CookieRepository {
	return &CookieRepository{
		db: db,
	}
}

// CreateBatch inserts the given cookie records in a single transaction.
// Either every record is persisted or none are.
func (r *CookieRepository) CreateBatch(ctx context.Context, cookies []*models.Cookie) ([]*models.Cookie, error) {
	const op = "database.postgres.CookieRepository.CreateBatch"

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}
	defer tx.Rollback()

	query := `INSERT INTO cookies(id, user_id, website, name, value, domain, path, expires)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING *`

	created := make([]*models.Cookie, 0, len(cookies))

	for _, cookie := range cookies {
		var expires sql.NullTime
		if cookie.Expires != nil {
			expires = sql.NullTime{Time: *cookie.Expires, Valid: true}
		}

		rec := new(cookieRecord)
		err := tx.GetContext(ctx, rec, query,
			cookie.ID, cookie.UserID, cookie.Website, cookie.Name, cookie.Value,
			cookie.Domain, cookie.Path, expires)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to create cookie record: %w", op, err)
		}

		created = append(created, rec.ToCookie())
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}

	return created, nil
}

func (r *CookieRepository) List(ctx context.Context, userID int64, website string) ([]*models.Cookie, error) {
	const op = "database.postgres.CookieRepository.List"

	var recs []cookieRecord
	var err error

	if website != "" {
		query := `SELECT * FROM cookies
			WHERE user_id = $1 AND website = $2
			ORDER BY created_at DESC, id`

		err = r.db.SelectContext(ctx, &recs, query, userID, website)
	} else {
		query := `SELECT * FROM cookies
			WHERE user_id = $1
			ORDER BY created_at DESC, id`

		err = r.db.SelectContext(ctx, &recs, query, userID)
	}

	if err != nil {
		return nil, fmt.Errorf("%s: failed to list cookie records: %w", op, err)
	}

	cookies := make([]*models.Cookie, len(recs))
	for i := range recs {
		cookies[i] = recs[i].ToCookie()
	}

	return cookies, nil
}

func (r *CookieRepository) UpdateValidation(ctx context.Context, ids []string, valid bool, validatedAt time.Time) (int64, error) {
	const op = "database.postgres.CookieRepository.UpdateValidation"

	if len(ids) == 0 {
		return 0, nil
	}

	query, args, err := sqlx.In(`UPDATE cookies
		SET is_valid = ?, last_validated = ?
		WHERE id IN (?)`, valid, validatedAt, ids)
	if err != nil {
		return 0, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	res, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return 0, fmt.Errorf("%s: failed to update cookie records: %w", op, err)
	}

	count, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: failed to get affected rows: %w", op, err)
	}

	return count, nil
}

func (r *CookieRepository) Delete(ctx context.Context, userID int64, id string) error {
	const op = "database.postgres.CookieRepository.Delete"

	query := `DELETE FROM cookies
		WHERE id = $1 AND user_id = $2`

	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("%s: failed to delete cookie record: %w", op, err)
	}

	count, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: failed to get affected rows: %w", op, err)
	}

	if count == 0 {
		return fmt.Errorf("%s: %w", op, database.ErrCookieNotFound)
	}

	return nil
}
