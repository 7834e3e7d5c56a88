// Package eval scores agreement between a reference and a predicted
// annotation document.
//
// Annotations are grouped by type and compared whole; each annotation is
// also decomposed into facts (span presence, each property, each string
// property value) that are grouped and compared per Key. Counts land in a
// Results map from Key to Scores, from which precision, recall and F1 are
// derived.
//
// Two equivalences are available. Exact compares spans by identity.
// Overlapping treats spans as equal when any sub-span of one overlaps any
// sub-span of the other. Overlap is not transitive, so a Set built under it
// holds clusters whose membership depends on insertion order, and
// IntersectionSize is not symmetric in general.
package eval
