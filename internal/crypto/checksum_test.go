package crypto

import "testing"

var testData = []byte("hello world")

func TestVerifyDigest(t *testing.T) {
	digest, err := Digest(testData)
	if err != nil {
		t.Fatalf("Digest() error = %v", err)
	}

	if !VerifyDigest(testData, digest) {
		t.Error("VerifyDigest() should return true for a matching digest")
	}
	if VerifyDigest([]byte("hello world!"), digest) {
		t.Error("VerifyDigest() should return false for modified data")
	}
	if VerifyDigest(nil, digest) {
		t.Error("VerifyDigest() should return false for empty data")
	}
}

func TestVerifyJSONDigest(t *testing.T) {
	doc := map[string]any{"accounts": []string{"DE89370400440532013000"}}

	digest, err := DigestJSON(doc)
	if err != nil {
		t.Fatalf("DigestJSON() error = %v", err)
	}

	if !VerifyJSONDigest(doc, digest) {
		t.Error("VerifyJSONDigest() should return true for the same document")
	}

	tampered := map[string]any{"accounts": []string{"DE89370400440532013000", "DE02120300000000202051"}}
	if VerifyJSONDigest(tampered, digest) {
		t.Error("VerifyJSONDigest() should return false for a tampered document")
	}
}
