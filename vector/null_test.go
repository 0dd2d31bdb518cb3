package vector

import "testing"

func TestFromBlob(t *testing.T) {
	absent, err := FromBlob(nil)
	if err != nil || absent.Valid {
		t.Fatalf("FromBlob(nil) = %+v, %v; want absent, nil", absent, err)
	}
	present, err := FromBlob(EncodeEmbedding([]float32{1, 2}))
	if err != nil || !present.Valid || len(present.Embedding) != 2 {
		t.Fatalf("FromBlob(valid) = %+v, %v; want 2-dim present embedding", present, err)
	}
	if _, err := FromBlob([]byte{0}); err == nil {
		t.Fatalf("FromBlob(1 byte) should fail")
	}
}
