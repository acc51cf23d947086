package profiling

import (
	"strings"
	"testing"
	"time"
)

func TestTopN(t *testing.T) {
	ResetFrame()
	current.add("a", 1*time.Millisecond)
	current.add("b", 3*time.Millisecond)
	current.add("c", 2*time.Millisecond)
	current.add("b", 1500*time.Microsecond)

	if got, want := TopN(2), "b:4.5ms/2, c:2.0ms"; got != want {
		t.Errorf("TopN(2) = %q, want %q", got, want)
	}
	if got := TopN(10); strings.Count(got, ",") != 2 {
		t.Errorf("TopN(10) = %q, want all three buckets", got)
	}
}

func TestBucketsOrder(t *testing.T) {
	ResetFrame()
	current.add("z", time.Millisecond)
	current.add("y", time.Millisecond)
	current.add("x", 5*time.Millisecond)

	got := Buckets()
	want := []string{"x", "y", "z"}
	if len(got) != len(want) {
		t.Fatalf("got %d buckets, want %d", len(got), len(want))
	}
	for i, name := range want {
		if got[i].Name != name {
			t.Errorf("bucket %d = %s, want %s", i, got[i].Name, name)
		}
	}
}

func TestTrackAndReset(t *testing.T) {
	ResetFrame()
	for i := 0; i < 2; i++ {
		stop := Track("work")
		time.Sleep(time.Millisecond)
		stop()
	}

	b := Buckets()
	if len(b) != 1 || b[0].Samples != 2 || b[0].Total < 2*time.Millisecond {
		t.Errorf("buckets = %+v, want one work bucket with 2 samples over 2ms", b)
	}
	ResetFrame()
	if len(Buckets()) != 0 {
		t.Error("ResetFrame left buckets behind")
	}
	if TopN(3) != "" {
		t.Error("TopN on empty frame should be empty")
	}
}
