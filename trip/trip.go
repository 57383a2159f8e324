package trip

import "strings"

// Waypoint is an intermediate stop the computed route must pass through.
type Waypoint struct {
	Location string `json:"location"`
}

// Trip is the subset of the trip record the tracking subsystem consumes.
// A trip is immutable for the duration of a tracking session; switching trips
// creates a new session.
type Trip struct {
	ID           string     `json:"id"`
	Source       string     `json:"source"`
	Destination  string     `json:"destination"`
	Waypoints    []Waypoint `json:"waypoints"`
	VehicleRegNo string     `json:"vehicleRegNo"`
	Status       string     `json:"status"`
}

// ActiveWaypoints returns the waypoint locations with empty entries removed,
// preserving the caller-given order. Order is a caller contract.
func (t Trip) ActiveWaypoints() []string {
	out := make([]string, 0, len(t.Waypoints))
	for _, w := range t.Waypoints {
		loc := strings.TrimSpace(w.Location)
		if loc == "" {
			continue
		}
		out = append(out, loc)
	}
	return out
}

// HasVehicle reports whether the trip carries a telemetry key.
func (t Trip) HasVehicle() bool {
	return NormalizeVehicleNo(t.VehicleRegNo) != ""
}

// NormalizeVehicleNo uppercases a vehicle registration and strips separators
// so it matches the form the telemetry provider indexes by,
// e.g. "KA-01 MQ 0633" becomes "KA01MQ0633".
func NormalizeVehicleNo(regNo string) string {
	var b strings.Builder
	b.Grow(len(regNo))
	for _, r := range strings.ToUpper(regNo) {
		switch r {
		case ' ', '-', '.', '\t':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
