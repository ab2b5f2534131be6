// Package pipeline turns a book into a Cargo project whose code examples run as
// doc tests, then runs them.
//
// A run moves strictly forward through its states:
//
//	configuring → scaffolding → materializing → manifest_writing → executing → done
//
// Any stage failure moves the run to failed and aborts it. Nothing written to
// the target directory is rolled back, so a failed run can be inspected.
package pipeline
