// Package catid encodes catalog and content identifiers.
//
// A CatalogID is an unsigned 128-bit value with three interchangeable forms:
//
//   - base-16: 32 lowercase hex characters, left-zero-padded
//   - base-62: 22 characters over 0-9a-zA-Z, left-padded with '0'
//   - raw: 16 bytes, big-endian (high 64 bits first)
//
// A ContentID is an opaque 20-byte value whose only text form is 40 lowercase
// hex characters.
//
// Both types are immutable values; they are comparable with == and may be
// shared between goroutines without synchronization.
//
// Parsing never wraps: text that denotes a value above 2^128-1 fails with an
// Overflow error instead of being truncated.
package catid
