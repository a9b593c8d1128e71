package vector

import "testing"

func TestEncodeDecodeEmbedding(t *testing.T) {
	vec := []float32{1.5, -2.25, 0, 3.0}
	blob, err := EncodeEmbedding(vec)
	if err != nil {
		t.Fatalf("EncodeEmbedding failed: %v", err)
	}
	if len(blob) != len(vec)*4 {
		t.Fatalf("blob length = %d, want %d", len(blob), len(vec)*4)
	}
	got, err := DecodeEmbedding(blob, len(vec))
	if err != nil {
		t.Fatalf("DecodeEmbedding failed: %v", err)
	}
	for i := range vec {
		if got[i] != vec[i] {
			t.Fatalf("round trip mismatch at %d: %v != %v", i, got[i], vec[i])
		}
	}
}

func TestDecodeEmbeddingErrors(t *testing.T) {
	if _, err := DecodeEmbedding([]byte{1, 2, 3}, 0); err == nil {
		t.Fatalf("non-multiple-of-4 blob must fail")
	}
	blob, _ := EncodeEmbedding([]float32{1, 2})
	if _, err := DecodeEmbedding(blob, 3); err == nil {
		t.Fatalf("dim mismatch must fail")
	}
	if vec, err := DecodeEmbedding(nil, 0); err != nil || vec != nil {
		t.Fatalf("nil blob should decode to nil, nil; got %v, %v", vec, err)
	}
}
