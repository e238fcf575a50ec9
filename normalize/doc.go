// Package normalize turns raw rows of the legacy order spreadsheets into
// clean field values. Every function here is pure: no storage, no clock,
// no logging. Heuristic business rules live in rules.go as ordered tables.
package normalize
