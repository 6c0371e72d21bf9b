// Package uischema loads UI schema overlays that enrich form definitions with
// titles, sections, rows, action buttons and per-field copy. The model builder
// stays unaware of presentation; callers opt into the overlay through
// Decorator.
package uischema
