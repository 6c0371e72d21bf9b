// Package model defines the typed form model shared by the validator, the
// session controller and the renderers. Builders reside in internal/model but
// return the types re-exported here. Fields declare a FieldKind and a list of
// typed Rule variants; Values and ValidationResult carry the mutable state of
// one form session.
package model
