package audit

import (
	"regexp"
	"testing"
)

var hexHash = regexp.MustCompile(`^[0-9a-f]{64}$`)

func TestHashValue_Format(t *testing.T) {
	hash, err := HashValue(map[string]interface{}{"a": 1})
	if err != nil {
		t.Fatal(err)
	}
	if !hexHash.MatchString(hash) {
		t.Errorf("hash %q is not 64 lowercase hex characters", hash)
	}
}

func TestHashValue_KeyOrderIndependent(t *testing.T) {
	first := map[string]interface{}{
		"context":    map[string]interface{}{"amount": float64(100), "country": "DE"},
		"decision":   "approve",
		"confidence": 0.85,
	}
	second := map[string]interface{}{
		"confidence": 0.85,
		"decision":   "approve",
		"context":    map[string]interface{}{"country": "DE", "amount": float64(100)},
	}

	h1, err := HashValue(first)
	if err != nil {
		t.Fatal(err)
	}
	h2, err := HashValue(second)
	if err != nil {
		t.Fatal(err)
	}
	if h1 != h2 {
		t.Errorf("logically equal values hashed differently: %s vs %s", h1, h2)
	}
}

func TestHashValue_SensitiveToContent(t *testing.T) {
	base := map[string]interface{}{"decision": "approve", "confidence": 0.85}
	changed := map[string]interface{}{"decision": "approve", "confidence": 0.86}

	h1, _ := HashValue(base)
	h2, _ := HashValue(changed)
	if h1 == h2 {
		t.Error("different content produced the same hash")
	}
}

func TestCanonicalize_NumberFormat(t *testing.T) {
	// RFC 8785 renders numbers in ES6 shortest form: 1.0 becomes 1.
	canonical, err := Canonicalize(map[string]interface{}{"weight": float64(1.0), "half": 0.5})
	if err != nil {
		t.Fatal(err)
	}
	want := `{"half":0.5,"weight":1}`
	if string(canonical) != want {
		t.Errorf("canonical form = %s, want %s", canonical, want)
	}
}

func TestCanonicalize_RejectsUnencodable(t *testing.T) {
	if _, err := Canonicalize(map[string]interface{}{"ch": make(chan int)}); err == nil {
		t.Error("expected error for unencodable value")
	}
}
