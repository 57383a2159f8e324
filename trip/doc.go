// Package trip defines the trip master-data record consumed by the live
// tracking subsystem and the normalization rules applied to its fields.
package trip
