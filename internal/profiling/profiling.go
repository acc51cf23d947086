// Package profiling collects per-frame timings for the frame loop's
// slow-frame report.
package profiling

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"
)

// Bucket is the time spent under one name during the current frame.
type Bucket struct {
	Name    string
	Total   time.Duration
	Samples int
}

type frame struct {
	mu      sync.Mutex
	buckets map[string]*Bucket
}

func (f *frame) add(name string, d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.buckets[name]
	if !ok {
		b = &Bucket{Name: name}
		f.buckets[name] = b
	}
	b.Total += d
	b.Samples++
}

var current = &frame{buckets: make(map[string]*Bucket)}

// Track starts timing a section of the frame; call the result to stop it.
//
//	defer profiling.Track("glfw.SwapBuffers")()
func Track(name string) func() {
	start := time.Now()
	return func() { current.add(name, time.Since(start)) }
}

// ResetFrame drops the buckets of the previous frame.
func ResetFrame() {
	current.mu.Lock()
	clear(current.buckets)
	current.mu.Unlock()
}

// Buckets returns the current frame's buckets, largest total first.
func Buckets() []Bucket {
	current.mu.Lock()
	out := make([]Bucket, 0, len(current.buckets))
	for _, b := range current.buckets {
		out = append(out, *b)
	}
	current.mu.Unlock()

	slices.SortFunc(out, func(a, b Bucket) int {
		if c := cmp.Compare(b.Total, a.Total); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})
	return out
}

// TopN formats the n largest buckets, e.g. "frame.Dispatch:4.2ms, glfw.PollEvents:2.1ms/3".
// A "/k" suffix gives the sample count when a section ran more than once.
func TopN(n int) string {
	all := Buckets()
	parts := make([]string, 0, min(n, len(all)))
	for _, b := range all[:min(n, len(all))] {
		s := fmt.Sprintf("%s:%.1fms", b.Name, float64(b.Total.Microseconds())/1000)
		if b.Samples > 1 {
			s += fmt.Sprintf("/%d", b.Samples)
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, ", ")
}
