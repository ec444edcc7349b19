package handlers

import (
	"context"
	"errors"
	"heritage-itinerary-service/internal/api/dto"
	"heritage-itinerary-service/internal/domain"
	"heritage-itinerary-service/internal/ports"
	"heritage-itinerary-service/internal/services"
	"log/slog"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// ItineraryHandler plans itineraries. Repo is optional; requests naming
// catalog POIs are rejected without it.
type ItineraryHandler struct {
	Planner *services.Planner
	Repo    ports.PoiRepository
}

// Create decodes a trip request, gathers POIs, and runs the planner.
// Catalog POIs named by poi_ids come first, followed by inline POIs.
func (h *ItineraryHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ItineraryHandler").Start(r.Context(), "Create")
	defer span.End()

	var req dto.ItineraryRequest
	if err := decodeStrict(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, r, http.StatusBadRequest, validationMessage(err))
		return
	}

	dayCount := max(1, req.DayCount)

	pois := make([]*domain.POI, 0, len(req.POIIDs)+len(req.POIs))
	if len(req.POIIDs) > 0 {
		if h.Repo == nil {
			writeError(w, r, http.StatusServiceUnavailable, "catalog unavailable")
			return
		}
		catalog, err := h.Repo.ListPOIs(ctx, req.POIIDs)
		if errors.Is(err, domain.ErrPOINotFound) {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "catalog lookup failed")
			slog.ErrorContext(ctx, "catalog lookup failed", slog.Any("error", err))
			writeError(w, r, http.StatusInternalServerError, "internal server error")
			return
		}
		pois = append(pois, catalog...)
	}
	for _, p := range req.POIs {
		pois = append(pois, p.ToDomain())
	}

	forecast := make([]domain.DayForecast, 0, len(req.Forecast))
	for _, f := range req.Forecast {
		forecast = append(forecast, f.ToDomain())
	}

	span.SetAttributes(
		attribute.Int("poi_count", len(pois)),
		attribute.Int("forecast_days", len(forecast)),
	)

	it, err := h.Planner.Plan(ctx, domain.TripRequest{
		Origin:        strings.TrimSpace(req.Origin),
		DayCount:      dayCount,
		POIs:          pois,
		Forecast:      forecast,
		FetchForecast: req.FetchForecast,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "planning failed")
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			writeError(w, r, http.StatusServiceUnavailable, "request cancelled")
			return
		}
		slog.ErrorContext(ctx, "plan itinerary failed", slog.Any("error", err))
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewItineraryResponse(it))
}
