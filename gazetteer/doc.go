// Package gazetteer maps a small fixed set of known place names to approximate
// coordinates. It backs route synthesis when the routing service is
// unreachable and is deliberately forgiving: unknown names resolve to a
// documented default city instead of failing.
package gazetteer
