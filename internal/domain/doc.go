// Package domain models calendar event locations and their resolution to
// map coordinates.
//
// # Location strings
//
// Calendar sources carry location as free text. Three shapes occur in
// practice:
//
//	"1600 Amphitheatre Pkwy, Mountain View"   → resolved via the provider
//	"Conference Room (37.7749, -122.4194)"    → coordinates embedded in parens
//	"40.7128,-74.0060"                        → the whole string is a pair
//
// Embedded coordinates are recognized by [ParseCoordinates] and bypass the
// external provider entirely. Range validation (lat in [-90, 90], lng in
// [-180, 180]) is deliberately not performed during parsing; the resolver
// rejects out-of-range pairs before treating a parse as a success, so an
// invalid pair falls through to a normal provider lookup.
//
// # Map geometry
//
// [Bounds] computes the smallest axis-aligned lat/lng rectangle enclosing a
// pin set, taking the max/min independently per axis. [ZoomLevel] maps the
// larger of the two box spans onto a web-map zoom step. The span thresholds
// are heuristics for a city-to-continent map widget, not projection math;
// the only property callers may rely on is that a larger span never yields
// a higher zoom.
//
// # Error taxonomy
//
// Resolution failures are classified by [ErrorKind]: bad caller input,
// missing provider credential, a genuine no-match, or a provider/transport
// fault. Batch-level validation (empty or oversized input) is a fifth kind
// that rejects before any work starts. Messages always carry the offending
// address so they can be surfaced to users as-is.
package domain
