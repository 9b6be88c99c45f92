// Package diagnostic collects the source values that could not be
// translated through the value table, so a human can extend the table.
//
// Key capabilities:
//   - Noise filtering: ids, names, addresses, dates, comments, media and
//     coordinate fields are never reported (ShouldTrack)
//   - A run-wide, de-duplicated miss set (Unmapped)
//   - A sorted plain-text report (WriteReport)
package diagnostic
