package store

// LabUpdate describes a partial update to a lab record. Nil fields are
// left untouched, which lets the availability toggle and the full-form
// edit share one code path.
type LabUpdate struct {
	Name         *string
	Building     *string
	Capacity     *int
	HasProjector *bool
	HasAC        *bool
	IsAvailable  *bool
}

// Assignments converts the update into a GORM column assignment map.
func (u LabUpdate) Assignments() map[string]any {
	assignments := make(map[string]any)
	if u.Name != nil {
		assignments["name"] = *u.Name
	}
	if u.Building != nil {
		assignments["building"] = *u.Building
	}
	if u.Capacity != nil {
		assignments["capacity"] = *u.Capacity
	}
	if u.HasProjector != nil {
		assignments["has_projector"] = *u.HasProjector
	}
	if u.HasAC != nil {
		assignments["has_ac"] = *u.HasAC
	}
	if u.IsAvailable != nil {
		assignments["is_available"] = *u.IsAvailable
	}
	return assignments
}
