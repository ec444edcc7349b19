package handlers

import (
	"errors"
	"heritage-itinerary-service/internal/api/dto"
	"heritage-itinerary-service/internal/domain"
	"heritage-itinerary-service/internal/ports"
	"log/slog"
	"net/http"
	"strings"
)

// PoiHandler exposes read-only catalog endpoints.
type PoiHandler struct {
	Repo ports.PoiRepository
}

// List returns the catalog, or the POIs named by a comma-separated ?ids= filter.
func (h *PoiHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.Repo == nil {
		writeError(w, r, http.StatusServiceUnavailable, "catalog unavailable")
		return
	}

	var ids []string
	if raw := strings.TrimSpace(r.URL.Query().Get("ids")); raw != "" {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, id)
			}
		}
	}

	pois, err := h.Repo.ListPOIs(r.Context(), ids)
	if errors.Is(err, domain.ErrPOINotFound) {
		writeError(w, r, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "list pois failed", slog.Any("error", err))
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListPOIsResponse{POIs: make([]dto.POIResponse, 0, len(pois))}
	for _, p := range pois {
		res.POIs = append(res.POIs, dto.NewPOIResponse(p))
	}

	writeJSON(w, r, http.StatusOK, res)
}
