package metrics

import "testing"

var sink []byte

func TestMemoryCollector_Snapshot(t *testing.T) {
	t.Parallel()
	snap := NewMemoryCollector().Snapshot()
	if snap.HeapAlloc == 0 || snap.Sys == 0 {
		t.Errorf("expected non-zero heap readings, got %+v", snap)
	}
}

func TestMemorySnapshot_Since(t *testing.T) {
	mc := NewMemoryCollector()
	before := mc.Snapshot()
	sink = make([]byte, 1<<20)
	after := mc.Snapshot()

	d := after.Since(before)
	if d.Mallocs == 0 {
		t.Error("expected at least one allocation")
	}
	if d.Bytes < 1<<20 {
		t.Errorf("Bytes = %d, want at least 1 MiB", d.Bytes)
	}
}
