// Package lang is the user-facing surface of the transcription system:
// a catalog of languages, each bound to a compiled rule table and ready
// to transcribe raw text.
//
// ARCHITECTURE:
//
// The catalog is built once and used everywhere:
//
//  1. Built-in packs (embedded CUE under packs/) are compiled and
//     validated at construction
//  2. Caller-supplied packs are layered on top, overriding by code
//  3. Each pack becomes a Transcriber: metadata + rule table + the
//     shared engine
//
// Callers interact with two types only. Catalog answers "which
// languages?" (Lookup, Codes); Transcriber answers "what does this text
// sound like?" (Transcribe). Input normalization (case folding, NFC)
// happens inside Transcribe so callers never worry about orthographic
// case or encoding form.
//
// The built-in packs double as live documentation of rule authoring:
// eo and fi are complete single-variant languages, es shows per-variant
// divergence (castilian vs latin-american), it and el are in-progress
// packs whose unmatched foreign letters exercise fallback diagnostics.
package lang
