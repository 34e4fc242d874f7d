// Package pipeline selects the rules that apply to a fragment's metadata and
// folds them over the fragment in registry order.
//
// A Pipeline is immutable after New and safe for concurrent use. ApplyBatch
// annotates many fragments at once on a bounded worker pool.
package pipeline
