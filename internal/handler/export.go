package handler

import (
	"encoding/csv"
	"net/http"
	"strconv"
	"time"

	"github.com/tripforge/backend/internal/domain"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"trip_id", "trip_title", "trip_start_date", "trip_end_date", "currency",
	"location", "kind", "name", "price", "starts_at", "ends_at",
}

// ExportTrip implements GET /api/trips/{tripID}/export.
// It returns the itinerary as a flat table, one row per nested item.
// Use ?format=csv to receive CSV; default is JSON.
func (s *Server) ExportTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}

	rows, err := s.trips.Export(r.Context(), principal(r), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if r.URL.Query().Get("format") == "csv" {
		writeCSV(w, rows)
		return
	}
	writeJSON(w, http.StatusOK, dataResponse(rows))
}

// writeCSV streams export rows as a CSV attachment.
func writeCSV(w http.ResponseWriter, rows []domain.ExportRow) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="trip-export.csv"`)

	cw := csv.NewWriter(w)
	// A failed response write leaves nothing useful to report.
	_ = cw.Write(csvHeaders)
	for _, row := range rows {
		_ = cw.Write(csvRecord(row))
	}
	cw.Flush()
}

// csvRecord flattens one export row; absent optional fields become empty cells.
func csvRecord(r domain.ExportRow) []string {
	price := ""
	if r.Price != nil {
		price = strconv.FormatFloat(*r.Price, 'f', -1, 64)
	}
	return []string{
		r.TripID, r.TripTitle, r.TripStartDate, r.TripEndDate, r.Currency,
		r.Location, r.Kind, r.Name, price,
		formatTimePtr(r.StartsAt), formatTimePtr(r.EndsAt),
	}
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
