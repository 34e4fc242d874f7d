// Package fragment round-trips HTML fragments through a parsed tree. A
// fragment is wrapped in a minimal document shell so the HTML5 parser can
// recover whatever it is given, and only the body's children are ever
// serialised back.
package fragment
