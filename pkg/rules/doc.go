// Package rules holds the transformations applied to form fragments and the
// registry that orders them.
//
// Two kinds of rule share one contract. String-pattern rules rewrite raw
// markup without parsing it, inserting a class token right after a known
// marker token wherever the marker appears as a whole word. Structural rules
// parse the fragment, locate elements by tag and class membership, edit their
// class lists, and serialise the result. Either kind returns its input
// unchanged, byte for byte, when it does not apply or finds nothing to do.
//
// Bootstrap builds the registry of built-in rules that map Gravity Forms
// markup onto Bootstrap 5 classes.
package rules
