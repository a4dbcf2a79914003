// Package bloom tracks already-processed target URLs during batch runs
// using a Bloom filter.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter records target URLs so duplicate batch entries update a post
// only once per run.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a filter sized for n expected URLs with the given
// false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add records a URL.
func (f *Filter) Add(url string) {
	f.f.AddString(url)
}

// Seen returns true if the URL might have been recorded already.
// False positives are possible; false negatives are not.
func (f *Filter) Seen(url string) bool {
	return f.f.TestString(url)
}
