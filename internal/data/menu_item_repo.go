package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/forkful/menuboard/internal/data/pgxutil"
	"github.com/forkful/menuboard/internal/domain/model"
	apperrors "github.com/forkful/menuboard/internal/errors"
)

// MenuItemRepo provides database operations for menu items.
type MenuItemRepo struct {
	DB *sql.DB
}

// NewMenuItemRepo creates a new MenuItemRepo.
func NewMenuItemRepo(db *sql.DB) *MenuItemRepo {
	return &MenuItemRepo{DB: db}
}

const menuItemColumns = `id, restaurant_id, owner_id, name, course, description, price, image, created_at`

// Create inserts a new menu item.
func (r *MenuItemRepo) Create(ctx context.Context, req *model.CreateMenuItemRequest) (*model.MenuItem, error) {
	if req == nil {
		return nil, errors.New("create menu item request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var out model.MenuItem
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO menu_items (restaurant_id, owner_id, name, course, description, price, image)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING `+menuItemColumns,
			req.RestaurantID,
			req.OwnerID,
			strings.TrimSpace(req.Name),
			strings.TrimSpace(req.Course),
			strings.TrimSpace(req.Description),
			strings.TrimSpace(req.Price),
			strings.TrimSpace(req.Image),
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.MenuItem])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// GetByID retrieves a menu item by id.
func (r *MenuItemRepo) GetByID(ctx context.Context, id int64) (*model.MenuItem, error) {
	var out model.MenuItem
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx,
			`SELECT `+menuItemColumns+` FROM menu_items WHERE id = $1`, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.MenuItem])
		return err
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("menu item not found")
		}
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// ListByRestaurant retrieves all items on a restaurant's menu, grouped the
// way menus read: by course, then by name.
func (r *MenuItemRepo) ListByRestaurant(ctx context.Context, restaurantID int64) ([]*model.MenuItem, error) {
	var rowsOut []model.MenuItem
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT `+menuItemColumns+`
			FROM menu_items
			WHERE restaurant_id = $1
			ORDER BY course, name`, restaurantID)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.MenuItem])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}

	res := make([]*model.MenuItem, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Update edits the fields present in the request. An empty request returns
// the row unchanged.
func (r *MenuItemRepo) Update(ctx context.Context, id int64, req model.UpdateMenuItemRequest) (*model.MenuItem, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	setClause, args := buildMenuItemUpdateClause(req)
	if setClause == "" {
		return r.GetByID(ctx, id)
	}

	var out model.MenuItem
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		args = append(args, id)
		query := "UPDATE menu_items SET " + setClause +
			" WHERE id = $" + strconv.Itoa(len(args)) +
			" RETURNING " + menuItemColumns
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.MenuItem])
		return err
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("menu item not found")
		}
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

func buildMenuItemUpdateClause(req model.UpdateMenuItemRequest) (string, []any) {
	setParts := make([]string, 0, 5)
	args := make([]any, 0, 5)
	add := func(column string, value *string) {
		if value == nil {
			return
		}
		args = append(args, strings.TrimSpace(*value))
		setParts = append(setParts, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	add("name", req.Name)
	add("course", req.Course)
	add("description", req.Description)
	add("price", req.Price)
	add("image", req.Image)

	if len(setParts) == 0 {
		return "", nil
	}
	return strings.Join(setParts, ", "), args
}

// Delete deletes a menu item by id.
func (r *MenuItemRepo) Delete(ctx context.Context, id int64) (bool, error) {
	var affected int64
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM menu_items WHERE id = $1`, id)
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
