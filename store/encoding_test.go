package store

import "testing"

func TestValuesRoundTrip(t *testing.T) {
	in := []float64{0, -1.5, 3.25e17}
	b, err := EncodeValues(in)
	if err != nil {
		t.Fatalf("EncodeValues failed: %v", err)
	}
	out, err := DecodeValues(b)
	if err != nil {
		t.Fatalf("DecodeValues failed: %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("decoded %d values, want %d", len(out), len(in))
	}
	for i := range in {
		if out[i] != in[i] {
			t.Fatalf("decoded[%d] = %v, want %v", i, out[i], in[i])
		}
	}
}

func TestEncodeValuesEmpty(t *testing.T) {
	b, err := EncodeValues(nil)
	if err != nil || b != nil {
		t.Fatalf("EncodeValues(nil) = %v, %v; want nil, nil", b, err)
	}
}

func TestDecodeValuesInvalidLength(t *testing.T) {
	if _, err := DecodeValues([]byte{1, 2, 3}); err == nil {
		t.Fatal("DecodeValues on truncated blob succeeded, want error")
	}
}
