package domain

// DefaultVisitHours applies when a POI carries no visit-duration hint.
const DefaultVisitHours = 2.0

// Represents a single visitable site from the catalog.
// Coord is nil until the catalog or the coordinate resolver provides one.
// DistanceFromPrevKm and TravelTimeHours are populated by the tour sequencer.
type POI struct {
	ID                 string
	Name               string
	Category           string
	Region             string
	Address            string
	Coord              *Coordinates
	VisitDurationHours *float64

	DistanceFromPrevKm float64
	TravelTimeHours    float64
}

// VisitHours returns the visit-duration hint, or DefaultVisitHours if absent.
func (p *POI) VisitHours() float64 {
	if p.VisitDurationHours == nil || *p.VisitDurationHours <= 0 {
		return DefaultVisitHours
	}
	return *p.VisitDurationHours
}

// HasCoordinates reports whether the POI can be routed without resolution.
func (p *POI) HasCoordinates() bool {
	return p.Coord != nil && p.Coord.Valid()
}

// Clone returns a copy that shares no pointers with p.
func (p *POI) Clone() *POI {
	c := *p
	if p.Coord != nil {
		coord := *p.Coord
		c.Coord = &coord
	}
	if p.VisitDurationHours != nil {
		h := *p.VisitDurationHours
		c.VisitDurationHours = &h
	}
	return &c
}
