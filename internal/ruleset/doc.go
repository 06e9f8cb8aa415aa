// Package ruleset provides the declarative data model for grapheme
// rewrite tables.
//
// This package contains type definitions and their canonical encoding
// only. All other internal packages import ruleset; ruleset imports
// nothing internal. This ensures the rule data model remains the
// foundational layer with no circular dependencies.
//
// Key design constraints:
//   - Tables are immutable after construction; declaration order is the
//     sole priority mechanism and must never be disturbed
//   - Lengths are counted in runes, never bytes
//   - All JSON tags use snake_case
//   - Fingerprints hash canonical JSON (RFC 8785): UTF-16 key order,
//     NFC strings, no HTML escaping, no floats, no null
package ruleset
