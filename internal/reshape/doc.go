// Package reshape turns cadastre export records into Treesta import rows.
//
// Every input cell goes through exactly one route, checked in this order:
//
//  1. Columns without a field mapping are dropped, unless they hold
//     coordinates; those keep their own name.
//  2. Measures: a column mapped to measures_N is paired with the column
//     mapped to measures_N_urgency; BK4 also reads the urgency from the
//     column name (massnahme_hoch, ...). Measures are
//     grouped by urgency and written to measures_1..5 after the row is
//     done, most urgent first.
//  3. Aggregate targets (feature and habitat descriptors, restriction)
//     collect values from many columns into one "{a, b}" cell.
//  4. Coordinates are copied verbatim.
//  5. species is cleaned of inventory numbers and common names.
//  6. condition and vitality come from two column families; the control
//     columns (Kontrollen_*) win over the plain ones.
//  7. Everything else is translated and booleans are normalized; the first
//     non-empty value for a field wins.
package reshape
