package scalar

import "math/big"

// ExtGCD computes (g, x, y) such that g = gcd(a, b) = x*a + y*b, via the
// recursive extended Euclidean algorithm. Mirrors the reference
// implementation's egcd (arithmetic/mod_inverse.rs): callers pass a < b.
func ExtGCD(a, b *big.Int) (g, x, y *big.Int) {
	if a.Sign() == 0 {
		return new(big.Int).Set(b), big.NewInt(0), big.NewInt(1)
	}
	q, r := new(big.Int).QuoRem(b, a, new(big.Int))
	g, x1, y1 := ExtGCD(r, a)
	// x = y1 - (b/a)*x1, y = x1
	x = new(big.Int).Sub(y1, new(big.Int).Mul(q, x1))
	y = x1
	return g, x, y
}

// Inverse returns a's multiplicative inverse mod m, or an error if a has no
// inverse (gcd(a, m) != 1). The reference returns (x mod m) + m without a
// final reduction, leaving the result in [0, 2m); that detail is an
// implementation artifact of the original, not an API guarantee, so this
// port canonicalizes fully into [0, m) — see DESIGN.md.
func Inverse(a, m *big.Int) (*big.Int, error) {
	g, x, _ := ExtGCD(a, m)
	if g.CmpAbs(big.NewInt(1)) != 0 {
		return nil, errNotInvertible(a, m)
	}
	r := new(big.Int).Mod(x, m)
	if r.Sign() < 0 {
		r.Add(r, m)
	}
	return r, nil
}

func errNotInvertible(a, m *big.Int) error {
	return &notInvertibleError{a: a, m: m}
}

type notInvertibleError struct {
	a, m *big.Int
}

func (e *notInvertibleError) Error() string {
	return "scalar: " + e.a.String() + " has no inverse mod " + e.m.String()
}
