package telemetry

import (
	"fmt"
	"strings"
	"time"
)

// Provider timestamps come as "2006-01-02 15:04:05"; some deployments send
// RFC3339 instead.
var readTimeLayouts = []string{"2006-01-02 15:04:05", time.RFC3339}

// TollEvent is one recorded toll-plaza crossing.
type TollEvent struct {
	PlazaName     string    `json:"plazaName"`
	Geocode       string    `json:"geocode"` // raw "lat,lng", parsed downstream
	ReadAt        time.Time `json:"readAt"`
	LaneDirection string    `json:"laneDirection"`
	VehicleType   string    `json:"vehicleType"`
	VehicleRegNo  string    `json:"vehicleRegNo"`
}

// Wire envelope for the telemetry query. The provider nests the payload four
// levels deep; everything is validated here and nowhere else.
type queryEnvelope struct {
	Error    string       `json:"error"`
	Response []queryOuter `json:"response"`
}

type queryOuter struct {
	ResponseStatus string     `json:"responseStatus"`
	Response       queryInner `json:"response"`
}

type queryInner struct {
	Result  string       `json:"result"`
	Vehicle queryVehicle `json:"vehicle"`
}

type queryVehicle struct {
	ErrCode     string       `json:"errCode"`
	VehlTxnList queryTxnList `json:"vehltxnList"`
}

type queryTxnList struct {
	Txn []queryTxn `json:"txn"`
}

type queryTxn struct {
	ReaderReadTime string `json:"readerReadTime"`
	TollPlazaGeo   string `json:"tollPlazaGeocode"`
	TollPlazaName  string `json:"tollPlazaName"`
	LaneDirection  string `json:"laneDirection"`
	VehicleType    string `json:"vehicleType"`
	VehicleRegNo   string `json:"vehicleRegNo"`
}

type authResponse struct {
	Token string `json:"token"`
	Error string `json:"error"`
}

// events extracts toll events from a validated envelope. Records with an
// unparseable read time keep a zero timestamp rather than being dropped;
// geocode validation happens in the aggregator.
func (e *queryEnvelope) events() []TollEvent {
	if len(e.Response) == 0 {
		return nil
	}
	txns := e.Response[0].Response.Vehicle.VehlTxnList.Txn
	out := make([]TollEvent, 0, len(txns))
	for _, t := range txns {
		out = append(out, TollEvent{
			PlazaName:     t.TollPlazaName,
			Geocode:       t.TollPlazaGeo,
			ReadAt:        parseReadTime(t.ReaderReadTime),
			LaneDirection: t.LaneDirection,
			VehicleType:   t.VehicleType,
			VehicleRegNo:  t.VehicleRegNo,
		})
	}
	return out
}

// businessFailure reports whether a well-formed envelope signals a
// provider-side rejection, with the offending code for diagnostics.
func (e *queryEnvelope) businessFailure() (string, bool) {
	if strings.EqualFold(e.Error, "true") {
		return "envelope error flag set", true
	}
	if len(e.Response) == 0 {
		return "empty response list", true
	}
	outer := e.Response[0]
	if !strings.EqualFold(outer.ResponseStatus, "SUCCESS") {
		return fmt.Sprintf("responseStatus %q", outer.ResponseStatus), true
	}
	if outer.Response.Result != "" && !strings.EqualFold(outer.Response.Result, "SUCCESS") {
		return fmt.Sprintf("result %q", outer.Response.Result), true
	}
	if code := outer.Response.Vehicle.ErrCode; code != "" && code != "000" {
		return fmt.Sprintf("vehicle errCode %q", code), true
	}
	return "", false
}

func parseReadTime(s string) time.Time {
	for _, layout := range readTimeLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts
		}
	}
	return time.Time{}
}
