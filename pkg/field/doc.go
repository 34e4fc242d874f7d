// Package field describes the metadata a form renderer hands over alongside
// each markup fragment: the field kind, the owning form, and the extension
// point (stage) the fragment was produced for. Rules use it to decide whether
// they apply; they never mutate it.
package field
