package bignum

import (
	"math/big"
	"testing"
)

func FuzzParse(f *testing.F) {
	for _, s := range []string{"", "0", "-0", "007", "-123", "--1", "1a", "18446744073709551616"} {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, s string) {
		if len(s) > 512 {
			s = s[:512]
		}
		got, err := Parse(s)
		want, ok := new(big.Int).SetString(s, 10)
		// math/big also takes a leading '+', which Parse rejects.
		if err != nil {
			return
		}
		if s != "" && !ok {
			t.Fatalf("Parse(%q) accepted text math/big rejects", s)
		}
		if s == "" {
			want = new(big.Int)
		}
		if got.String() != want.String() {
			t.Fatalf("Parse(%q) = %s, want %s", s, got, want)
		}
		again, err := Parse(got.String())
		if err != nil || !again.Equal(got) {
			t.Fatalf("round trip of %s failed: %v", got, err)
		}
	})
}

func FuzzArith(f *testing.F) {
	f.Add(int64(0), int64(1))
	f.Add(int64(-7), int64(2))
	f.Add(int64(1)<<62, int64(-3))
	f.Add(int64(-1)<<63, int64(-1))
	f.Fuzz(func(t *testing.T, a, b int64) {
		x, y := FromInt64(a), FromInt64(b)
		bx, by := big.NewInt(a), big.NewInt(b)

		check := func(op string, got BigInt, want *big.Int) {
			if got.String() != want.String() {
				t.Fatalf("%d %s %d = %s, want %s", a, op, b, got, want)
			}
		}
		check("+", x.Add(y), new(big.Int).Add(bx, by))
		check("-", x.Sub(y), new(big.Int).Sub(bx, by))
		check("*", x.Mul(y), new(big.Int).Mul(bx, by))
		if b == 0 {
			return
		}
		q, r, err := x.QuoRem(y)
		if err != nil {
			t.Fatal(err)
		}
		wq, wr := new(big.Int).QuoRem(bx, by, new(big.Int))
		check("/", q, wq)
		check("%", r, wr)
	})
}
