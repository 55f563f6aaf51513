// Package placedex is the client SDK for the placedex places API.
//
// Client talks to the HTTP API (autocomplete and details endpoints).
// Resolver layers the type-ahead workflow on top of any Source: it
// debounces keystrokes, discards superseded responses, and resolves a
// chosen suggestion into a full place record.
package placedex
