package bignum

import (
	"encoding"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/vmihailenco/msgpack/v5"
)

func TestBigIntInterfaces(t *testing.T) {
	var v any = BigInt{}
	if _, ok := v.(fmt.Stringer); !ok {
		t.Errorf("%T does not implement fmt.Stringer", v)
	}
	if _, ok := v.(encoding.TextMarshaler); !ok {
		t.Errorf("%T does not implement encoding.TextMarshaler", v)
	}
	v = &BigInt{}
	if _, ok := v.(encoding.TextUnmarshaler); !ok {
		t.Errorf("%T does not implement encoding.TextUnmarshaler", v)
	}
}

func TestBigIntUnmarshalText(t *testing.T) {
	var x BigInt
	if err := x.UnmarshalText([]byte("-00420")); err != nil {
		t.Fatal(err)
	}
	if x.String() != "-420" {
		t.Fatalf("UnmarshalText = %s, want -420", x)
	}
	if err := x.UnmarshalText([]byte("4e2")); !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("expected ErrInvalidFormat, got %v", err)
	}
	if x.String() != "-420" {
		t.Fatalf("failed UnmarshalText changed the value to %s", x)
	}
}

func TestBigIntMsgpack(t *testing.T) {
	type record struct {
		Name  string
		Value BigInt
	}
	in := record{Name: "fact30", Value: MustParse("265252859812191058636308480000000")}
	data, err := msgpack.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out record
	if err := msgpack.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Name != in.Name || !out.Value.Equal(in.Value) {
		t.Fatalf("round trip mismatch: %+v", out)
	}

	bad, err := msgpack.Marshal(map[string]string{"Name": "x", "Value": "12x"})
	if err != nil {
		t.Fatal(err)
	}
	if err := msgpack.Unmarshal(bad, &out); err == nil || !strings.Contains(err.Error(), ErrInvalidFormat.Error()) {
		t.Fatalf("expected invalid format error, got %v", err)
	}
}
