package httpx

import (
	"net/http"
	"strconv"

	"github.com/forkful/menuboard/internal/domain/model"
)

// parseIntQuery returns the integer value of a query param or a default.
// It is tolerant of missing/invalid values.
func parseIntQuery(r *http.Request, key string, def int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

// ParseLimitOffset parses common pagination params and clamps to sane bounds.
// - defLimit: default limit when not specified
// - maxLimit: maximum allowed limit (values > maxLimit are clamped to maxLimit).
func ParseLimitOffset(r *http.Request, defLimit, maxLimit int) (int, int) {
	if maxLimit < 1 {
		maxLimit = 1
	}

	lim := parseIntQuery(r, "limit", defLimit)
	off := parseIntQuery(r, "offset", 0)
	if lim < 1 {
		lim = 1
	}
	if lim > maxLimit {
		lim = maxLimit
	}
	if off < 0 {
		off = 0
	}
	return lim, off
}

// pathID parses a numeric path value. Returns 0 and false when missing or
// not a positive integer.
func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// menuItemRef parses the {id}/{itemID} pair every per-item route carries.
func menuItemRef(r *http.Request) (model.MenuItemRef, bool) {
	restaurantID, ok := pathID(r, "id")
	if !ok {
		return model.MenuItemRef{}, false
	}
	itemID, ok := pathID(r, "itemID")
	if !ok {
		return model.MenuItemRef{}, false
	}
	return model.MenuItemRef{RestaurantID: restaurantID, ItemID: itemID}, true
}
