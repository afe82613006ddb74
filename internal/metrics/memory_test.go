package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

var sink []byte

func TestMemoryCollector_Snapshot(t *testing.T) {
	t.Parallel()

	snap := NewMemoryCollector().Snapshot()
	if snap.HeapAlloc == 0 {
		t.Error("HeapAlloc should be > 0")
	}
	if snap.Sys == 0 {
		t.Error("Sys should be > 0")
	}
}

func TestDelta(t *testing.T) {
	t.Parallel()

	mc := NewMemoryCollector()
	before := mc.Snapshot()
	sink = make([]byte, 1<<20)
	after := mc.Snapshot()

	if d := Delta(before, after); d < 1<<20 {
		t.Errorf("Delta = %d, want at least 1 MiB", d)
	}
	if d := Delta(after, before); d != 0 {
		t.Errorf("reversed Delta = %d, want 0", d)
	}
}

func TestMemoryCollector_Collect(t *testing.T) {
	t.Parallel()

	if n := testutil.CollectAndCount(NewMemoryCollector()); n != 3 {
		t.Errorf("collected %d metrics, want 3", n)
	}
}
