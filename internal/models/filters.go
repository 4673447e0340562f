package models

// Filters are the effective filters applied to a listing after role scoping.
type Filters struct {
	Region string
	Status string
	// RegionPinned marks a region forced from the session. A pinned region is
	// always matched literally, even when empty.
	RegionPinned bool
}

func active(v string) bool {
	return v != "" && v != FilterAll
}

// Equality returns column -> value for every filter that restricts results.
func (f Filters) Equality() map[string]any {
	eq := make(map[string]any, 2)
	if f.RegionPinned || active(f.Region) {
		eq["region"] = f.Region
	}
	if active(f.Status) {
		eq["status"] = f.Status
	}
	return eq
}
