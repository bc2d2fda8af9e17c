package data

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/forkful/menuboard/internal/data/pgxutil"
	"github.com/forkful/menuboard/internal/domain/model"
	apperrors "github.com/forkful/menuboard/internal/errors"
)

// IdentityRepo provides database operations for local identities.
type IdentityRepo struct {
	DB *sql.DB
}

// NewIdentityRepo creates a new IdentityRepo.
func NewIdentityRepo(db *sql.DB) *IdentityRepo {
	return &IdentityRepo{DB: db}
}

const identityColumns = `id, name, email, picture_url`

// Create inserts a new identity. A duplicate email surfaces as a conflict
// through the users_email_unique constraint.
func (r *IdentityRepo) Create(ctx context.Context, req model.CreateIdentityRequest) (*model.Identity, error) {
	email := normalizeEmail(req.Email)
	if email == "" {
		return nil, apperrors.ValidationField("email", "email is required")
	}

	var out model.Identity
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO users (name, email, picture_url)
			VALUES ($1, $2, $3)
			RETURNING `+identityColumns,
			strings.TrimSpace(req.Name),
			email,
			strings.TrimSpace(req.PictureURL),
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Identity])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// GetByID retrieves an identity by id.
func (r *IdentityRepo) GetByID(ctx context.Context, id int64) (*model.Identity, error) {
	return r.getBy(ctx, `SELECT `+identityColumns+` FROM users WHERE id = $1`, id)
}

// GetByEmail retrieves an identity by its unique email.
func (r *IdentityRepo) GetByEmail(ctx context.Context, email string) (*model.Identity, error) {
	return r.getBy(ctx, `SELECT `+identityColumns+` FROM users WHERE email = $1`, normalizeEmail(email))
}

func (r *IdentityRepo) getBy(ctx context.Context, query string, arg any) (*model.Identity, error) {
	var out model.Identity
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, arg)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Identity])
		return err
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IdentityStore adapts IdentityRepo to the narrow store interface the auth
// flow consumes.
type IdentityStore struct {
	Repo *IdentityRepo
}

// NewIdentityStore wraps an IdentityRepo for the auth flow.
func NewIdentityStore(repo *IdentityRepo) *IdentityStore {
	return &IdentityStore{Repo: repo}
}

// LookupByEmail returns the identity id for an email if one exists.
func (s *IdentityStore) LookupByEmail(ctx context.Context, email string) (int64, bool, error) {
	identity, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return identity.ID, true, nil
}

// Create inserts a new identity and returns its id.
func (s *IdentityStore) Create(ctx context.Context, name, email, pictureURL string) (int64, error) {
	identity, err := s.Repo.Create(ctx, model.CreateIdentityRequest{
		Name:       name,
		Email:      email,
		PictureURL: pictureURL,
	})
	if err != nil {
		return 0, err
	}
	return identity.ID, nil
}
