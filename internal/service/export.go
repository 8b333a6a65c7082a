package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/tripforge/backend/internal/domain"
)

// Export flattens a trip into one row per nested item for download.
// Read access follows the same rule as GetByID: public trips export for
// anyone, private ones only for the owner or an admin.
func (s *TripService) Export(ctx context.Context, p domain.Principal, tripID uuid.UUID) ([]domain.ExportRow, error) {
	trip, err := s.GetByID(ctx, p, tripID)
	if err != nil {
		return nil, err
	}
	return buildExportRows(trip), nil
}

// buildExportRows walks the itinerary in document order. Every row repeats
// the trip fields; a visit with no items still yields one row so the export
// never silently drops a stop.
func buildExportRows(trip domain.Trip) []domain.ExportRow {
	base := domain.ExportRow{
		TripID:        trip.ID.String(),
		TripTitle:     trip.Title,
		TripStartDate: trip.StartDate.Format("2006-01-02"),
		TripEndDate:   trip.EndDate.Format("2006-01-02"),
		Currency:      trip.Budget.Currency,
	}

	if len(trip.Destinations) == 0 {
		return []domain.ExportRow{base}
	}

	rows := []domain.ExportRow{}
	for _, visit := range trip.Destinations {
		visitRow := base
		visitRow.Location = visit.Location

		before := len(rows)
		for _, a := range visit.Accommodations {
			row := visitRow
			row.Kind = "accommodation"
			row.Name = a.Name
			row.Price = a.Price
			row.StartsAt = a.CheckIn
			row.EndsAt = a.CheckOut
			rows = append(rows, row)
		}
		for _, act := range visit.Activities {
			row := visitRow
			row.Kind = "activity"
			row.Name = act.Name
			row.Price = act.Price
			row.StartsAt = act.Date
			rows = append(rows, row)
		}
		for _, tr := range visit.Transportation {
			row := visitRow
			row.Kind = "transportation"
			row.Name = string(tr.Mode)
			row.Price = tr.Price
			row.StartsAt = tr.DepartureTime
			row.EndsAt = tr.ArrivalTime
			rows = append(rows, row)
		}
		if len(rows) == before {
			rows = append(rows, visitRow)
		}
	}
	return rows
}
