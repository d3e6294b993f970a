package sanitizer

import "slices"

// Pipeline runs string transforms in order.
type Pipeline []func(string) string

// Clean passes s through every transform.
func (p Pipeline) Clean(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

// Then returns a new pipeline with fns appended; p is left unchanged.
func (p Pipeline) Then(fns ...func(string) string) Pipeline {
	return append(slices.Clip(p), fns...)
}

// Compose returns the pipeline of fns as a single transform.
func Compose(fns ...func(string) string) func(string) string {
	return Pipeline(fns).Clean
}
