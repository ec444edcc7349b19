package domain

// Which fallback tier produced a coordinate.
type ResolutionTier string

const (
	TierProvided ResolutionTier = "provided"
	TierRemote   ResolutionTier = "remote"
	TierTable    ResolutionTier = "table"
	TierDefault  ResolutionTier = "default"
)

// Resolution is the outcome of resolving a place name.
// A default-tier resolution still carries a coordinate, but it is the
// regional fallback rather than the place itself.
type Resolution struct {
	Coord Coordinates
	Tier  ResolutionTier
}

// Resolved reports whether the coordinate identifies the queried place.
func (r Resolution) Resolved() bool { return r.Tier != TierDefault }
