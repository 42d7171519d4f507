package slug

import "testing"

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for _, id := range []int64{1, 42, 110909, 9223372036854000000 - 110909} {
		if got := Decode(Encode(id)); got != id {
			t.Fatalf("round trip for %d: got %d", id, got)
		}
	}
}

func TestEncodeObfuscates(t *testing.T) {
	if Encode(1) == 1 {
		t.Fatal("expected encoded slug to differ from the raw id")
	}
}

func TestDecodeRejectsImpossibleSlugs(t *testing.T) {
	for _, s := range []int64{0, 1, 110909} {
		if Decode(s) != 0 {
			t.Fatalf("expected slug %d to decode to 0", s)
		}
	}
}
