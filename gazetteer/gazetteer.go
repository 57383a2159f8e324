package gazetteer

import (
	"strings"

	"github.com/fleetops/livetrack/geo"
)

// Entry is one known place in the table.
type Entry struct {
	Name     string
	Position geo.Coordinate
}

// The first entry is the documented default for unmatched names.
var cities = []Entry{
	{Name: "Mumbai", Position: geo.Coordinate{Lat: 19.0760, Lng: 72.8777}},
	{Name: "Delhi", Position: geo.Coordinate{Lat: 28.6139, Lng: 77.2090}},
	{Name: "Bengaluru", Position: geo.Coordinate{Lat: 12.9716, Lng: 77.5946}},
	{Name: "Hyderabad", Position: geo.Coordinate{Lat: 17.3850, Lng: 78.4867}},
	{Name: "Ahmedabad", Position: geo.Coordinate{Lat: 23.0225, Lng: 72.5714}},
	{Name: "Chennai", Position: geo.Coordinate{Lat: 13.0827, Lng: 80.2707}},
	{Name: "Kolkata", Position: geo.Coordinate{Lat: 22.5726, Lng: 88.3639}},
	{Name: "Surat", Position: geo.Coordinate{Lat: 21.1702, Lng: 72.8311}},
	{Name: "Pune", Position: geo.Coordinate{Lat: 18.5204, Lng: 73.8567}},
	{Name: "Jaipur", Position: geo.Coordinate{Lat: 26.9124, Lng: 75.7873}},
	{Name: "Nagpur", Position: geo.Coordinate{Lat: 21.1458, Lng: 79.0882}},
	{Name: "Indore", Position: geo.Coordinate{Lat: 22.7196, Lng: 75.8577}},
	{Name: "Vadodara", Position: geo.Coordinate{Lat: 22.3072, Lng: 73.1812}},
	{Name: "Udaipur", Position: geo.Coordinate{Lat: 24.5854, Lng: 73.7125}},
}

// Default returns the entry used when no table match is found.
func Default() Entry { return cities[0] }

// Resolve maps a free-text place name to a table entry. Matching is
// case-insensitive and substring-based in both directions, so "Navi Mumbai"
// and "Mum" both hit the Mumbai row. Resolve never fails: unmatched names
// return the default entry with ok=false.
func Resolve(name string) (Entry, bool) {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle != "" {
		for _, c := range cities {
			table := strings.ToLower(c.Name)
			if strings.Contains(needle, table) || strings.Contains(table, needle) {
				return c, true
			}
		}
	}
	return Default(), false
}

// ResolvePoints maps each name to a coordinate in order. The result always
// has len(names) finite coordinates; unknown names use the default entry.
// An unmatched final name that would land on the same point as the first one
// takes the second table entry instead, so the origin and destination of a
// synthesized route are always distinct.
func ResolvePoints(names []string) []geo.Coordinate {
	out := make([]geo.Coordinate, 0, len(names))
	for i, n := range names {
		e, ok := Resolve(n)
		if !ok && i == len(names)-1 && len(out) > 0 && e.Position == out[0] {
			e = cities[1]
		}
		out = append(out, e.Position)
	}
	return out
}
