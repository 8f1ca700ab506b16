// Package scalar implements ModInt, an arbitrary-precision integer paired
// with a modulus that auto-reduces every arithmetic result. It is the
// algebraic substrate the rest of zkvote is built on: group elements,
// ciphertexts and proof responses are all ModInt values.
package scalar

import (
	"encoding/hex"
	"math/big"

	"github.com/pkg/errors"

	"github.com/openballot/zkvote/internal/logging"
)

var log = logging.Logger("scalar")

var (
	bigZero = big.NewInt(0)
	bigOne  = big.NewInt(1)
)

// ModInt is an integer value carrying a modulus. When Modulus is zero the
// value behaves as an unbounded integer; otherwise every arithmetic result
// is reduced into [0, Modulus) before being returned, except Rem, which keeps
// the sign of a negative dividend. ModInt is immutable: every method returns
// a new value.
type ModInt struct {
	Value   *big.Int
	Modulus *big.Int
}

// Zero returns the ModInt (0, 0).
func Zero() ModInt {
	return ModInt{Value: new(big.Int), Modulus: new(big.Int)}
}

// One returns the ModInt (1, 0).
func One() ModInt {
	return ModInt{Value: new(big.Int).Set(bigOne), Modulus: new(big.Int)}
}

// New builds a ModInt from an int64 value with a zero modulus.
func New(value int64) ModInt {
	return FromBigInt(big.NewInt(value), new(big.Int))
}

// FromBigInt builds and normalizes a ModInt from the given value and modulus.
// Both are copied; the caller's big.Ints are never retained or mutated.
func FromBigInt(value, modulus *big.Int) ModInt {
	m := ModInt{Value: new(big.Int).Set(value), Modulus: new(big.Int).Set(modulus)}
	return m.normalize()
}

// FromBigIntZero returns the ModInt (0, modulus).
func FromBigIntZero(modulus *big.Int) ModInt {
	return FromBigInt(new(big.Int), modulus)
}

// FromHex parses a hex string (no "0x" prefix) as the value of a ModInt with
// the given modulus.
func FromHex(hexString string, modulus *big.Int) (ModInt, error) {
	v, ok := new(big.Int).SetString(hexString, 16)
	if !ok {
		return ModInt{}, errors.Errorf("scalar: %q is not valid hex", hexString)
	}
	return FromBigInt(v, modulus), nil
}

// Hex renders the value (not the modulus) as lowercase hex with no prefix.
func (m ModInt) Hex() string {
	return hex.EncodeToString(m.Value.Bytes())
}

// String renders the decimal value only, with no modulus and no delimiter —
// this is also the Fiat-Shamir transcript encoding (see package transcript).
func (m ModInt) String() string {
	return m.Value.String()
}

func (m ModInt) normalize() ModInt {
	if m.Modulus.Sign() > 0 {
		m.Value = new(big.Int).Mod(m.Value, m.Modulus)
	}
	return m
}

func (m ModInt) checkCompatible(other ModInt) error {
	if m.Modulus.Sign() > 0 && other.Modulus.Sign() > 0 && m.Modulus.Cmp(other.Modulus) != 0 {
		return errors.Errorf("scalar: mismatched moduli %s and %s", m.Modulus, other.Modulus)
	}
	return nil
}

// Add returns (m.Value + other.Value) reduced by m's modulus.
func (m ModInt) Add(other ModInt) (ModInt, error) {
	if err := m.checkCompatible(other); err != nil {
		return ModInt{}, err
	}
	return ModInt{Value: new(big.Int).Add(m.Value, other.Value), Modulus: new(big.Int).Set(m.Modulus)}.normalize(), nil
}

// MustAdd panics on a precondition violation; it exists for proof
// construction code where the moduli are known-compatible by invariant.
func (m ModInt) MustAdd(other ModInt) ModInt {
	r, err := m.Add(other)
	if err != nil {
		log.Errorf("MustAdd: %v", err)
		panic(err)
	}
	return r
}

// Sub returns (m.Value - other.Value) reduced by m's modulus. With a
// nonzero modulus this is computed as an add of the negation, to stay in
// [0, Modulus).
func (m ModInt) Sub(other ModInt) (ModInt, error) {
	if err := m.checkCompatible(other); err != nil {
		return ModInt{}, err
	}
	if m.Modulus.Sign() == 0 {
		return ModInt{Value: new(big.Int).Sub(m.Value, other.Value), Modulus: new(big.Int)}.normalize(), nil
	}
	return m.Add(other.negWithModulus(m.Modulus))
}

// MustSub panics on a precondition violation.
func (m ModInt) MustSub(other ModInt) ModInt {
	r, err := m.Sub(other)
	if err != nil {
		log.Errorf("MustSub: %v", err)
		panic(err)
	}
	return r
}

// Neg negates m: arithmetic negation when Modulus is zero, otherwise
// (Modulus - Value) mod Modulus.
func (m ModInt) Neg() ModInt {
	return m.negWithModulus(m.Modulus)
}

func (m ModInt) negWithModulus(modulus *big.Int) ModInt {
	m = m.normalize()
	if modulus.Sign() == 0 {
		return ModInt{Value: new(big.Int).Neg(m.Value), Modulus: new(big.Int)}
	}
	v := new(big.Int).Sub(modulus, m.Value)
	return ModInt{Value: v, Modulus: new(big.Int).Set(modulus)}.normalize()
}

// Mul returns (m.Value * other.Value) reduced by m's modulus.
func (m ModInt) Mul(other ModInt) (ModInt, error) {
	if err := m.checkCompatible(other); err != nil {
		return ModInt{}, err
	}
	return ModInt{Value: new(big.Int).Mul(m.Value, other.Value), Modulus: new(big.Int).Set(m.Modulus)}.normalize(), nil
}

// MustMul panics on a precondition violation.
func (m ModInt) MustMul(other ModInt) ModInt {
	r, err := m.Mul(other)
	if err != nil {
		log.Errorf("MustMul: %v", err)
		panic(err)
	}
	return r
}

// Div divides m by other: truncated integer division when Modulus is zero,
// otherwise multiplication by other's modular inverse mod m.Modulus. Returns
// an error if other.Value is zero or has no inverse mod m.Modulus.
func (m ModInt) Div(other ModInt) (ModInt, error) {
	if other.Value.Sign() == 0 {
		return ModInt{}, errors.New("scalar: division by zero")
	}
	if m.Modulus.Sign() == 0 {
		return ModInt{Value: new(big.Int).Quo(m.Value, other.Value), Modulus: new(big.Int)}, nil
	}
	inv, err := Inverse(other.Value, m.Modulus)
	if err != nil {
		return ModInt{}, errors.Wrap(err, "scalar: division")
	}
	return ModInt{Value: new(big.Int).Mul(m.Value, inv), Modulus: new(big.Int).Set(m.Modulus)}.normalize(), nil
}

// MustDiv panics on a precondition violation (division by zero or a
// non-invertible divisor).
func (m ModInt) MustDiv(other ModInt) ModInt {
	r, err := m.Div(other)
	if err != nil {
		log.Errorf("MustDiv: %v", err)
		panic(err)
	}
	return r
}

// Rem reduces m.Value by other's modulus (deliberately not other's value —
// callers use this to re-reduce a value by a modulus carried on a different
// scalar).
func (m ModInt) Rem(other ModInt) ModInt {
	return ModInt{Value: new(big.Int).Rem(m.Value, other.Modulus), Modulus: new(big.Int).Set(other.Modulus)}
}

// Pow raises m to the exponent carried in other.Value. With a zero modulus
// this is classical integer exponentiation (the exponent must fit a machine
// uint); with a nonzero modulus it is modular exponentiation mod m.Modulus.
func (m ModInt) Pow(other ModInt) (ModInt, error) {
	if m.Modulus.Sign() == 0 {
		if !other.Value.IsUint64() {
			return ModInt{}, errors.Errorf("scalar: exponent %s does not fit a machine word", other.Value)
		}
		return ModInt{Value: new(big.Int).Exp(m.Value, other.Value, nil), Modulus: new(big.Int)}, nil
	}
	return ModInt{Value: new(big.Int).Exp(m.Value, other.Value, m.Modulus), Modulus: new(big.Int).Set(m.Modulus)}, nil
}

// MustPow panics on a precondition violation.
func (m ModInt) MustPow(other ModInt) ModInt {
	r, err := m.Pow(other)
	if err != nil {
		log.Errorf("MustPow: %v", err)
		panic(err)
	}
	return r
}

// Cmp compares the normalized values of m and other. Ordering across
// scalars carrying unrelated moduli is total but not meaningful.
func (m ModInt) Cmp(other ModInt) int {
	return m.normalize().Value.Cmp(other.normalize().Value)
}

// Equal reports whether m and other normalize to the same value. Hashing
// (for use as a map key, see Key) is defined over the same normalized pair.
func (m ModInt) Equal(other ModInt) bool {
	return m.Cmp(other) == 0
}

// IsZero reports whether the (unnormalized) value is the integer zero.
func (m ModInt) IsZero() bool {
	return m.Value.Sign() == 0
}

// Clone returns a deep copy; ModInt is logically immutable but callers that
// hold on to Value/Modulus directly (e.g. codec) should clone before
// mutating.
func (m ModInt) Clone() ModInt {
	return ModInt{Value: new(big.Int).Set(m.Value), Modulus: new(big.Int).Set(m.Modulus)}
}

// Key returns a comparable representation suitable for use as a Go map key.
func (m ModInt) Key() [2]string {
	n := m.normalize()
	return [2]string{n.Value.String(), n.Modulus.String()}
}
