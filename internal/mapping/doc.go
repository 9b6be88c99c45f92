// Package mapping loads the two human-curated translation tables and
// translates cell values through them.
//
// The tables are semicolon-delimited text files with a header row.
//
// # Field mapping
//
//	old_field;new_field              or   source_field;target_field
//	Kontrollen_zustand;Kontrollen_zustand
//	baumart;species
//	Kontrollen_massnahme1;measures_1
//
// Rows with an empty target are skipped. The first-seen order of the
// targets is the default column order of the import file. A reverse
// index (target -> source) links paired columns, e.g. a measure and its
// urgency.
//
// # Value mapping
//
//	old_value;new_value              or   source_value;treesta_value
//	gut;good
//	12 Totholz;deadwood
//
// Any other header falls back to the first two columns. Rows with an
// empty source are skipped; an empty replacement maps a value to itself,
// so it is a known no-op and not a miss.
//
// # Compound values
//
// A cell wrapped in braces holds one or more selected options, e.g.
// "{12 Totholz, 34 Zwiesel}". Because the same syntax also carries single
// numbers with thousands separators ("{1,234}"), translation tries the
// least destructive reading first:
//  1. the whole inner text
//  2. the inner text with commas removed
//  3. the parts split at ", " followed by two or more digits
//  4. when step 3 yields a single unknown part, the parts split at every
//     comma, provided each of them has an entry
package mapping
