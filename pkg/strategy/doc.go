// Package strategy normalizes strategy-endpoint payloads into one
// canonical record shape.
//
// Successive backend revisions produced four incompatible response shapes:
// the canonical record itself, a {"strategy": ...} wrapper, a {"data": ...}
// wrapper, and a {"final_output": ...} wrapper whose value may itself be a
// JSON-encoded string. Normalize collapses the union into a Record or nil.
// The wrapper shapes are modeled as an explicit enumerated union rather
// than an open-ended chain of key probes, and unwrapping is bounded so a
// malformed self-referential payload terminates instead of recursing
// forever.
//
// Both Normalize and Record.Valid are pure and never panic; every failure
// path returns nil or false.
package strategy
