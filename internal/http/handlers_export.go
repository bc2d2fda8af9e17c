package httpx

import (
	"net/http"

	"github.com/forkful/menuboard/internal/service"
)

// ExportHandlers serves the machine-readable catalog endpoints. The JSON
// variants accept an optional `filter` query holding a JMESPath expression;
// the Atom variants serve the payload as a feed.
type ExportHandlers struct {
	Svc *service.ExportService
}

// RestaurantsJSON handles GET /restaurants/JSON?filter=<jmespath>.
func (h *ExportHandlers) RestaurantsJSON(w http.ResponseWriter, r *http.Request) {
	export, err := h.Svc.Restaurants(r.Context())
	if err != nil {
		WriteAppError(w, err)
		return
	}
	h.writeFiltered(w, r, export)
}

// RestaurantsAtom handles GET /restaurants/ATOM.
func (h *ExportHandlers) RestaurantsAtom(w http.ResponseWriter, r *http.Request) {
	export, err := h.Svc.Restaurants(r.Context())
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteAtom(w, restaurantsFeed(export))
}

// MenuJSON handles GET /restaurants/{id}/menu/JSON?filter=<jmespath>.
func (h *ExportHandlers) MenuJSON(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeInvalidPath(w)
		return
	}
	export, err := h.Svc.Menu(r.Context(), id)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	h.writeFiltered(w, r, export)
}

// MenuAtom handles GET /restaurants/{id}/menu/ATOM.
func (h *ExportHandlers) MenuAtom(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeInvalidPath(w)
		return
	}
	export, err := h.Svc.Menu(r.Context(), id)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteAtom(w, menuFeed(export))
}

// ItemJSON handles GET /restaurants/{id}/menu/{itemID}/JSON?filter=<jmespath>.
func (h *ExportHandlers) ItemJSON(w http.ResponseWriter, r *http.Request) {
	ref, ok := menuItemRef(r)
	if !ok {
		writeInvalidPath(w)
		return
	}
	export, err := h.Svc.Item(r.Context(), ref)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	h.writeFiltered(w, r, export)
}

// ItemAtom handles GET /restaurants/{id}/menu/{itemID}/ATOM.
func (h *ExportHandlers) ItemAtom(w http.ResponseWriter, r *http.Request) {
	ref, ok := menuItemRef(r)
	if !ok {
		writeInvalidPath(w)
		return
	}
	export, err := h.Svc.Item(r.Context(), ref)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteAtom(w, itemFeed(export))
}

func (h *ExportHandlers) writeFiltered(w http.ResponseWriter, r *http.Request, payload any) {
	result, err := h.Svc.ApplyFilter(payload, r.URL.Query().Get("filter"))
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, result)
}
