// Package config loads the immutable tables rules are built from: which field
// types count as form controls, which marker classes identify elements, and
// which grid classes complex groups receive. Defaults are embedded; YAML files
// layer on top of them.
package config
