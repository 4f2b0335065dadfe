package types_test

import (
	"encoding/json"
	"testing"

	"github.com/n42chain/engineapi/types"
)

func TestQuantityMarshal(t *testing.T) {
	cases := []struct {
		in   types.Quantity
		want string
	}{
		{0, `"0x0"`},
		{1, `"0x1"`},
		{0x2fefd8, `"0x2fefd8"`},
		{1<<64 - 1, `"0xffffffffffffffff"`},
	}
	for _, tc := range cases {
		got, err := json.Marshal(tc.in)
		if err != nil {
			t.Fatalf("marshal %d: %v", tc.in, err)
		}
		if string(got) != tc.want {
			t.Errorf("marshal %d: expected %s, got %s", tc.in, tc.want, got)
		}
	}
}

func TestQuantityUnmarshal(t *testing.T) {
	cases := []struct {
		in   string
		want types.Quantity
	}{
		{`"0x0"`, 0},
		{`"0x2fefd8"`, 0x2fefd8},
		// Leading zeros and uppercase input are accepted, prefix included.
		{`"0x02FEFD8"`, 0x2fefd8},
		{`"0X2fefd8"`, 0x2fefd8},
		{`"0x000"`, 0},
	}
	for _, tc := range cases {
		var got types.Quantity
		if err := json.Unmarshal([]byte(tc.in), &got); err != nil {
			t.Fatalf("unmarshal %s: %v", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("unmarshal %s: expected %d, got %d", tc.in, tc.want, got)
		}
	}
}

func TestQuantityUnmarshalRejects(t *testing.T) {
	for _, in := range []string{
		`"1234"`,                 // missing prefix
		`"0x"`,                   // no digits
		`"0xgg"`,                 // not hex
		`"0x10000000000000000"`,  // overflows uint64
		`12`,                     // not a string
	} {
		var q types.Quantity
		if err := json.Unmarshal([]byte(in), &q); err == nil {
			t.Errorf("expected error for %s", in)
		}
	}
}

func TestU256Marshal(t *testing.T) {
	cases := []struct {
		in   types.U256
		want string
	}{
		{types.NewU256(0), `"0x0"`},
		{types.NewU256(0x342770c0), `"0x342770c0"`},
	}
	for _, tc := range cases {
		got, err := json.Marshal(tc.in)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if string(got) != tc.want {
			t.Errorf("expected %s, got %s", tc.want, got)
		}
	}
}

func TestU256Unmarshal(t *testing.T) {
	cases := []struct {
		in   string
		want types.U256
	}{
		{`"0x0"`, types.NewU256(0)},
		{`"0x342770c0"`, types.NewU256(0x342770c0)},
		{`"0x000342770C0"`, types.NewU256(0x342770c0)},
		{`"0X342770c0"`, types.NewU256(0x342770c0)},
	}
	for _, tc := range cases {
		var got types.U256
		if err := json.Unmarshal([]byte(tc.in), &got); err != nil {
			t.Fatalf("unmarshal %s: %v", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("unmarshal %s: expected %s, got %s", tc.in, tc.want.Hex(), got.Hex())
		}
	}
}

func TestU256UnmarshalRejects(t *testing.T) {
	for _, in := range []string{
		`"7"`,  // missing prefix
		`"0x"`, // no digits
		`"0x10000000000000000000000000000000000000000000000000000000000000000"`, // > 256 bits
	} {
		var u types.U256
		if err := json.Unmarshal([]byte(in), &u); err == nil {
			t.Errorf("expected error for %s", in)
		}
	}
}

func TestBlockNonceText(t *testing.T) {
	n := types.BlockNonce{0, 0, 0, 0, 0, 0, 0, 0x2a}
	got, err := json.Marshal(n)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(got) != `"0x000000000000002a"` {
		t.Errorf("unexpected encoding: %s", got)
	}

	var back types.BlockNonce
	if err := json.Unmarshal(got, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back != n {
		t.Errorf("round trip mismatch: %v", back)
	}

	// Wrong digit count for the fixed width.
	if err := json.Unmarshal([]byte(`"0x2a"`), &back); err == nil {
		t.Error("expected error for short nonce")
	}
}

func TestPayloadIDText(t *testing.T) {
	id := types.PayloadID{0xde, 0xad, 0xbe, 0xef, 0, 0, 0, 1}
	if id.String() != "0xdeadbeef00000001" {
		t.Errorf("unexpected string: %s", id.String())
	}

	got, err := json.Marshal(id)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back types.PayloadID
	if err := json.Unmarshal(got, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back != id {
		t.Errorf("round trip mismatch: %s", back)
	}
}
