package pools

import "testing"

func TestLineBufferRoundTrip(t *testing.T) {
	buf := Pools.GetLineBuffer()
	if len(buf) != 0 {
		t.Fatalf("fresh buffer length = %d, want 0", len(buf))
	}
	buf = append(buf, "GET /index.html HTTP/1.1"...)
	Pools.ReturnLineBuffer(buf)

	again := Pools.GetLineBuffer()
	if len(again) != 0 {
		t.Fatalf("reused buffer length = %d, want 0", len(again))
	}
}

func TestLineBufferDiscardsOversized(t *testing.T) {
	huge := make([]byte, 0, 128<<10)
	Pools.ReturnLineBuffer(huge) // must not panic; silently dropped
}

func TestRangeSliceRoundTrip(t *testing.T) {
	s := Pools.GetRangeSlice()
	s = append(s, 0, 5, 12)
	Pools.ReturnRangeSlice(s)

	again := Pools.GetRangeSlice()
	if len(again) != 0 {
		t.Fatalf("reused slice length = %d, want 0", len(again))
	}
}

func TestReset(t *testing.T) {
	Pools.GetLineBuffer()
	Pools.Reset()
	// must still be usable after Reset
	buf := Pools.GetLineBuffer()
	if len(buf) != 0 {
		t.Fatalf("buffer length after Reset = %d, want 0", len(buf))
	}
}
