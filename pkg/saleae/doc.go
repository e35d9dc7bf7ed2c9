// Package saleae parses change-based CSV exports of logic analyzer
// captures.
//
// The input is the "export changed values" table a Saleae-style analyzer
// writes: a header row whose first column is Time[s] followed by one
// column per recorded signal, then one row per change with the timestamp
// and every signal's level. Parse turns each signal column into a
// trace.Channel, finished with a tail guard so decoders can sample past
// the final change.
//
// Exports pad timestamps with trailing zeros well past their real
// precision. The parser strips that padding and tracks the widest number
// of significant fractional digits actually seen, so downstream output can
// print timestamps at input precision instead of float noise.
package saleae
