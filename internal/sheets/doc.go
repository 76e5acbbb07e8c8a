// Package sheets fetches and normalizes the spreadsheet-backed data sources.
//
// Both sources are flat JSON arrays of string-valued rows served by a
// spreadsheet-to-JSON gateway. Rows are messy: fields may be missing, empty,
// or carry the sheet's "N/A"/"#N/A" sentinels, and dates arrive as D/M/Y
// strings. The adapter is deliberately forgiving:
//
//   - sentinel and blank values normalize to absent
//   - booleans are a case-insensitive "true" compare
//   - unparseable dates fall back to the current time, never an error
//   - a failed fetch or decode yields an empty list, never an error
//
// Entry identity is the external catalog id when present, otherwise a
// composite of the human-readable fields plus the row index; a per-fetch
// occurrence counter suffixes exact duplicates so no two entries in one
// result share an id. Results are sorted most recently added first.
package sheets
