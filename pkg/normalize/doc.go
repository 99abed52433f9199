// Package normalize coerces messy spreadsheet strings into canonical typed
// registry values.
//
// Every function is total over string input: unparseable values degrade to
// an explicit absence (ok=false), an empty string, or a best-effort guess.
// Nothing in this package panics or returns an error.
//
// Normalization includes:
//   - Names: split into given and family name, "Unknown" placeholders for blanks
//   - Ages: first digit run, bounded to [0,150]
//   - Phone numbers: digits plus leading "+", default +91 country code for bare
//     10-digit numbers, raw input preserved when cleaning fails
//   - Gender: canonical Male/Female/Other tags
//   - Years: direct parse with a 4-digit-run fallback, bounded to [1900, next year]
//   - Timestamps: ordinal-suffix stripping and an ordered list of layouts
//   - Stages: "stage" prefix stripped, upper-cased
//   - Addresses: known-city and state-name extraction
//   - Patient IDs: sheet-derived prefix plus the digits of the source MRN
package normalize
