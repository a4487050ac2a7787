// Package algorithms is the closed set of algorithms the player can trace.
//
// Every supported algorithm is a [Kind]. A kind is resolved once from its
// slug with [Parse] and carries everything needed to build a trace:
//
//   - [Kind.Family]: search, sort, graph, string or dp
//   - [Kind.Complexity]: static time and space cost, shown next to the counters
//   - [Kind.Fields]: the [Input] fields the generator reads
//   - [Generate]: dispatches to the generator for the kind
//
// Raw parameters from YAML or flags become an [Input] through [DecodeInput]
// and [Overlay]. Named demo inputs are available through [Presets] and
// [Preset].
//
// # Thread Safety
//
// The kind table and the preset table are never written after init. All
// functions are safe for concurrent use.
package algorithms
