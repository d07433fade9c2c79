package codec

import (
	"strings"
	"testing"
)

func TestLimitCapsDecode(t *testing.T) {
	c := Limit[string]{Inner: String{}, MaxDecode: 4}

	b, err := c.Encode("a much longer value than the cap")
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if _, err := c.Decode(b); err == nil {
		t.Fatalf("expected decode rejection above cap")
	}

	got, err := c.Decode([]byte("ok"))
	if err != nil {
		t.Fatalf("Decode under cap: %v", err)
	}
	if got != "ok" {
		t.Fatalf("Decode = %q", got)
	}
}

func TestLimitDisabled(t *testing.T) {
	c := Limit[string]{Inner: String{}}

	long := strings.Repeat("x", 1<<16)
	got, err := c.Decode([]byte(long))
	if err != nil {
		t.Fatalf("Decode with cap disabled: %v", err)
	}
	if got != long {
		t.Fatalf("Decode mangled payload")
	}
}
