// Package maprender is the boundary to the external map rendering surface.
//
// The tracking subsystem hands markers, polylines and route framing to a
// MapView; the rendering engine behind the interface is an external
// collaborator and stays out of scope. LogView and Recorder are the two
// in-repo implementations (operational logging and test capture).
package maprender
