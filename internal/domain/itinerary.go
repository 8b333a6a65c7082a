package domain

import (
	"github.com/google/uuid"
)

// Nested-collection mutation surface for the trip aggregate.
//
// Every collection is an ordered sequence keyed by a stable item ID.
// Add appends, Update replaces in place, Remove deletes without reordering
// the surviving siblings. Lookups by unknown ID return ErrNotFound.

// Visit returns a pointer to the destination visit with the given ID.
func (t *Trip) Visit(visitID uuid.UUID) (*DestinationVisit, error) {
	for i := range t.Destinations {
		if t.Destinations[i].ID == visitID {
			return &t.Destinations[i], nil
		}
	}
	return nil, ErrNotFound
}

// AddVisit appends a destination visit, assigning it a fresh ID.
func (t *Trip) AddVisit(v DestinationVisit) *DestinationVisit {
	v.ID = uuid.New()
	if v.Accommodations == nil {
		v.Accommodations = []Accommodation{}
	}
	if v.Activities == nil {
		v.Activities = []Activity{}
	}
	if v.Transportation == nil {
		v.Transportation = []Transportation{}
	}
	t.Destinations = append(t.Destinations, v)
	return &t.Destinations[len(t.Destinations)-1]
}

// UpdateVisit replaces the scalar fields of an existing visit, keeping its
// ID and nested collections.
func (t *Trip) UpdateVisit(visitID uuid.UUID, v DestinationVisit) (*DestinationVisit, error) {
	existing, err := t.Visit(visitID)
	if err != nil {
		return nil, err
	}
	existing.Location = v.Location
	existing.Coordinates = v.Coordinates
	existing.StartDate = v.StartDate
	existing.EndDate = v.EndDate
	return existing, nil
}

// RemoveVisit deletes a visit and everything embedded in it.
func (t *Trip) RemoveVisit(visitID uuid.UUID) error {
	for i := range t.Destinations {
		if t.Destinations[i].ID == visitID {
			t.Destinations = append(t.Destinations[:i], t.Destinations[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// AddAccommodation appends an accommodation to the given visit.
func (t *Trip) AddAccommodation(visitID uuid.UUID, a Accommodation) (*Accommodation, error) {
	visit, err := t.Visit(visitID)
	if err != nil {
		return nil, err
	}
	a.ID = uuid.New()
	visit.Accommodations = append(visit.Accommodations, a)
	return &visit.Accommodations[len(visit.Accommodations)-1], nil
}

// UpdateAccommodation replaces an accommodation in place, keeping its ID.
func (t *Trip) UpdateAccommodation(visitID, itemID uuid.UUID, a Accommodation) (*Accommodation, error) {
	visit, err := t.Visit(visitID)
	if err != nil {
		return nil, err
	}
	for i := range visit.Accommodations {
		if visit.Accommodations[i].ID == itemID {
			a.ID = itemID
			visit.Accommodations[i] = a
			return &visit.Accommodations[i], nil
		}
	}
	return nil, ErrNotFound
}

// RemoveAccommodation deletes an accommodation from the given visit.
func (t *Trip) RemoveAccommodation(visitID, itemID uuid.UUID) error {
	visit, err := t.Visit(visitID)
	if err != nil {
		return err
	}
	for i := range visit.Accommodations {
		if visit.Accommodations[i].ID == itemID {
			visit.Accommodations = append(visit.Accommodations[:i], visit.Accommodations[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// AddActivity appends an activity to the given visit.
func (t *Trip) AddActivity(visitID uuid.UUID, a Activity) (*Activity, error) {
	visit, err := t.Visit(visitID)
	if err != nil {
		return nil, err
	}
	a.ID = uuid.New()
	visit.Activities = append(visit.Activities, a)
	return &visit.Activities[len(visit.Activities)-1], nil
}

// UpdateActivity replaces an activity in place, keeping its ID.
func (t *Trip) UpdateActivity(visitID, itemID uuid.UUID, a Activity) (*Activity, error) {
	visit, err := t.Visit(visitID)
	if err != nil {
		return nil, err
	}
	for i := range visit.Activities {
		if visit.Activities[i].ID == itemID {
			a.ID = itemID
			visit.Activities[i] = a
			return &visit.Activities[i], nil
		}
	}
	return nil, ErrNotFound
}

// RemoveActivity deletes an activity from the given visit.
func (t *Trip) RemoveActivity(visitID, itemID uuid.UUID) error {
	visit, err := t.Visit(visitID)
	if err != nil {
		return err
	}
	for i := range visit.Activities {
		if visit.Activities[i].ID == itemID {
			visit.Activities = append(visit.Activities[:i], visit.Activities[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// AddTransportation appends a travel leg to the given visit.
func (t *Trip) AddTransportation(visitID uuid.UUID, tr Transportation) (*Transportation, error) {
	visit, err := t.Visit(visitID)
	if err != nil {
		return nil, err
	}
	tr.ID = uuid.New()
	visit.Transportation = append(visit.Transportation, tr)
	return &visit.Transportation[len(visit.Transportation)-1], nil
}

// UpdateTransportation replaces a travel leg in place, keeping its ID.
func (t *Trip) UpdateTransportation(visitID, itemID uuid.UUID, tr Transportation) (*Transportation, error) {
	visit, err := t.Visit(visitID)
	if err != nil {
		return nil, err
	}
	for i := range visit.Transportation {
		if visit.Transportation[i].ID == itemID {
			tr.ID = itemID
			visit.Transportation[i] = tr
			return &visit.Transportation[i], nil
		}
	}
	return nil, ErrNotFound
}

// RemoveTransportation deletes a travel leg from the given visit.
func (t *Trip) RemoveTransportation(visitID, itemID uuid.UUID) error {
	visit, err := t.Visit(visitID)
	if err != nil {
		return err
	}
	for i := range visit.Transportation {
		if visit.Transportation[i].ID == itemID {
			visit.Transportation = append(visit.Transportation[:i], visit.Transportation[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// AddNote appends a note, assigning it a fresh ID.
// The caller is responsible for defaulting the date.
func (t *Trip) AddNote(n TripNote) *TripNote {
	n.ID = uuid.New()
	t.Notes = append(t.Notes, n)
	return &t.Notes[len(t.Notes)-1]
}

// UpdateNote replaces a note in place, keeping its ID.
func (t *Trip) UpdateNote(noteID uuid.UUID, n TripNote) (*TripNote, error) {
	for i := range t.Notes {
		if t.Notes[i].ID == noteID {
			n.ID = noteID
			t.Notes[i] = n
			return &t.Notes[i], nil
		}
	}
	return nil, ErrNotFound
}

// RemoveNote deletes a note by ID.
func (t *Trip) RemoveNote(noteID uuid.UUID) error {
	for i := range t.Notes {
		if t.Notes[i].ID == noteID {
			t.Notes = append(t.Notes[:i], t.Notes[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
