package data

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/forkful/menuboard/internal/data/database"
	"github.com/forkful/menuboard/internal/data/pgxutil"
	"github.com/forkful/menuboard/internal/domain/model"
	apperrors "github.com/forkful/menuboard/internal/errors"
)

// RestaurantRepo provides database operations for restaurants.
type RestaurantRepo struct {
	DB *sql.DB
}

// NewRestaurantRepo creates a new RestaurantRepo.
func NewRestaurantRepo(db *sql.DB) *RestaurantRepo {
	return &RestaurantRepo{DB: db}
}

const restaurantColumns = `id, name, owner_id, created_at`

// Create inserts a new restaurant.
func (r *RestaurantRepo) Create(ctx context.Context, req *model.CreateRestaurantRequest) (*model.Restaurant, error) {
	if req == nil {
		return nil, errors.New("create restaurant request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var out model.Restaurant
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO restaurants (name, owner_id)
			VALUES ($1, $2)
			RETURNING `+restaurantColumns,
			strings.TrimSpace(req.Name),
			req.OwnerID,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Restaurant])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// GetByID retrieves a restaurant by id.
func (r *RestaurantRepo) GetByID(ctx context.Context, id int64) (*model.Restaurant, error) {
	var out model.Restaurant
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx,
			`SELECT `+restaurantColumns+` FROM restaurants WHERE id = $1`, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Restaurant])
		return err
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("restaurant not found")
		}
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// List retrieves restaurants with pagination, newest first.
func (r *RestaurantRepo) List(ctx context.Context, limit, offset int) ([]*model.Restaurant, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return r.list(ctx, `
		SELECT `+restaurantColumns+`
		FROM restaurants
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`, limit, offset)
}

// ListWithOptions retrieves restaurants with optional name search and owner
// filters.
func (r *RestaurantRepo) ListWithOptions(ctx context.Context, opts model.RestaurantsListOptions) ([]*model.Restaurant, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := max(opts.Offset, 0)

	queryOpts := []database.ListQueryOption{
		database.WithColumns("id", "name", "owner_id", "created_at"),
		database.WithLimit(limit),
		database.WithOffset(offset),
	}
	if opts.Q != nil && strings.TrimSpace(*opts.Q) != "" {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("name", database.ILike, "%"+strings.TrimSpace(*opts.Q)+"%"),
		))
	}
	if opts.OwnerID != nil {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("owner_id", database.Equal, *opts.OwnerID),
		))
	}
	sortCol, sortDir := validateRestaurantSort(opts.Sort, opts.Dir)
	queryOpts = append(queryOpts, database.WithOrderBy(sortCol, sortDir))

	query, args := database.BuildListQuery(database.NewListQueryOptions("restaurants", queryOpts...))
	return r.list(ctx, query, args...)
}

func (r *RestaurantRepo) list(ctx context.Context, query string, args ...any) ([]*model.Restaurant, error) {
	var rowsOut []model.Restaurant
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Restaurant])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}

	res := make([]*model.Restaurant, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Update renames a restaurant.
func (r *RestaurantRepo) Update(ctx context.Context, id int64, req model.UpdateRestaurantRequest) (*model.Restaurant, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var out model.Restaurant
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			UPDATE restaurants SET name = $1
			WHERE id = $2
			RETURNING `+restaurantColumns,
			strings.TrimSpace(req.Name),
			id,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Restaurant])
		return err
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("restaurant not found")
		}
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// Delete deletes a restaurant by id. Menu items go with it via the schema
// cascade.
func (r *RestaurantRepo) Delete(ctx context.Context, id int64) (bool, error) {
	var affected int64
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM restaurants WHERE id = $1`, id)
		if err != nil {
			return err
		}
		affected = ct.RowsAffected()
		return nil
	}); err != nil {
		return false, apperrors.MapDBError(err)
	}
	return affected > 0, nil
}

func validateRestaurantSort(sort, dir string) (string, string) {
	sortCol := "created_at"
	sortDir := "desc"

	switch strings.ToLower(strings.TrimSpace(sort)) {
	case "name":
		sortCol = "name"
	case "created_at", "":
	}
	switch strings.ToLower(strings.TrimSpace(dir)) {
	case "asc":
		sortDir = "asc"
	case "desc", "":
	}
	return sortCol, sortDir
}
