package security

import (
	"encoding/json"
	"fmt"
	"testing"
)

func TestSecretRedaction(t *testing.T) {
	s := FromString("boiler-pw")
	for _, verb := range []string{"%v", "%s", "%+v", "%#v", "%q"} {
		if got := fmt.Sprintf(verb, s); got != "[SECRET]" {
			t.Fatalf("%s: unexpected fmt output %q", verb, got)
		}
	}
	b, err := json.Marshal(struct{ Password Secret }{s})
	if err != nil {
		t.Fatalf("json.Marshal failed: %v", err)
	}
	if string(b) != `{"Password":"[SECRET]"}` {
		t.Fatalf("unexpected json: %s", b)
	}
	if s.Reveal() != "boiler-pw" {
		t.Fatalf("Reveal returned %q", s.Reveal())
	}
}

func TestSecretValueAndScan(t *testing.T) {
	v, err := FromString("pw").Value()
	if err != nil {
		t.Fatalf("Value failed: %v", err)
	}
	if string(v.([]byte)) != "pw" {
		t.Fatalf("unexpected driver value %v", v)
	}

	cases := []struct {
		name string
		src  any
		want string
	}{
		{"bytes", []byte("from-bytes"), "from-bytes"},
		{"string", "from-string", "from-string"},
		{"nil", nil, ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var s Secret
			if err := s.Scan(c.src); err != nil {
				t.Fatalf("Scan failed: %v", err)
			}
			if s.Reveal() != c.want {
				t.Fatalf("expected %q, got %q", c.want, s.Reveal())
			}
		})
	}

	var s Secret
	if err := s.Scan(42); err == nil {
		t.Fatalf("expected error scanning int")
	}
}

func TestSecretScanCopiesBytes(t *testing.T) {
	src := []byte("mutable")
	var s Secret
	if err := s.Scan(src); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	src[0] = 'X'
	if s.Reveal() != "mutable" {
		t.Fatalf("Scan did not copy input bytes: %q", s.Reveal())
	}
}
