// Package fraction implements reduced rational arithmetic (spec.md
// §4.10): add/sub/mul/div over normalized fractions (denominator > 0,
// gcd(num,den)=1), plus a Stern-Brocot/Farey-sequence float-to-fraction
// approximation.
//
// Grounded on the teacher's internal/evaluator/builtins_bignum.go
// "reduce via GCD, keep denominator positive" discipline for
// Num/Denom representation and normalization, but built around
// math/big.Int directly rather than math/big.Rat: big.Rat normalizes
// on every operation (matching Reduce's contract) but exposes no
// Farey/Stern-Brocot walk, which spec.md §4.10 explicitly requires for
// FromFloat, so that one function is hand-rolled, and Reduce/Add/Sub/
// Mul/Div reduce through a Euclidean gcd written over big.Int.
package fraction

import "math/big"

// Fraction is a reduced rational: Den is always > 0 and
// gcd(|Num|, Den) == 1 (or Num == 0, Den == 1).
type Fraction struct {
	Num *big.Int
	Den *big.Int
}

// New builds an unreduced fraction and immediately reduces it.
func New(num, den int64) Fraction {
	return Reduce(Fraction{Num: big.NewInt(num), Den: big.NewInt(den)})
}

// Reduce normalizes f so the denominator is positive and the
// numerator/denominator share no common factor (spec.md §4.10).
func Reduce(f Fraction) Fraction {
	num := new(big.Int).Set(f.Num)
	den := new(big.Int).Set(f.Den)
	if den.Sign() == 0 {
		panic("fraction: division by zero denominator")
	}
	if den.Sign() < 0 {
		num.Neg(num)
		den.Neg(den)
	}
	if num.Sign() == 0 {
		return Fraction{Num: big.NewInt(0), Den: big.NewInt(1)}
	}
	g := gcd(new(big.Int).Abs(num), den)
	num.Quo(num, g)
	den.Quo(den, g)
	return Fraction{Num: num, Den: den}
}

// gcd computes the Euclidean-algorithm greatest common divisor of two
// non-negative big.Ints (spec.md §4.10).
func gcd(a, b *big.Int) *big.Int {
	x := new(big.Int).Set(a)
	y := new(big.Int).Set(b)
	for y.Sign() != 0 {
		x, y = y, new(big.Int).Mod(x, y)
	}
	if x.Sign() == 0 {
		return big.NewInt(1)
	}
	return x
}

// Add returns the reduced sum a+b.
func Add(a, b Fraction) Fraction {
	num := new(big.Int).Add(new(big.Int).Mul(a.Num, b.Den), new(big.Int).Mul(b.Num, a.Den))
	den := new(big.Int).Mul(a.Den, b.Den)
	return Reduce(Fraction{Num: num, Den: den})
}

// Sub returns the reduced difference a-b.
func Sub(a, b Fraction) Fraction {
	num := new(big.Int).Sub(new(big.Int).Mul(a.Num, b.Den), new(big.Int).Mul(b.Num, a.Den))
	den := new(big.Int).Mul(a.Den, b.Den)
	return Reduce(Fraction{Num: num, Den: den})
}

// Mul returns the reduced product a*b.
func Mul(a, b Fraction) Fraction {
	num := new(big.Int).Mul(a.Num, b.Num)
	den := new(big.Int).Mul(a.Den, b.Den)
	return Reduce(Fraction{Num: num, Den: den})
}

// Div returns the reduced quotient a/b.
func Div(a, b Fraction) Fraction {
	if b.Num.Sign() == 0 {
		panic("fraction: division by zero")
	}
	num := new(big.Int).Mul(a.Num, b.Den)
	den := new(big.Int).Mul(a.Den, b.Num)
	return Reduce(Fraction{Num: num, Den: den})
}

// Neg returns -a: spec.md §4.8's unary '-' multiplies the numerator by -1.
func Neg(a Fraction) Fraction {
	return Fraction{Num: new(big.Int).Neg(a.Num), Den: new(big.Int).Set(a.Den)}
}

// Float returns a as a float64 approximation.
func (f Fraction) Float() float64 {
	n := new(big.Float).SetInt(f.Num)
	d := new(big.Float).SetInt(f.Den)
	result, _ := new(big.Float).Quo(n, d).Float64()
	return result
}

func (f Fraction) String() string {
	return f.Num.String() + "/" + f.Den.String()
}

// FromFloat approximates x by walking the Stern-Brocot tree (the
// mediant-based Farey-sequence walk of spec.md §4.10) until the
// resulting fraction is within eps of x.
func FromFloat(x float64, eps float64) Fraction {
	if x == 0 {
		return New(0, 1)
	}
	neg := x < 0
	if neg {
		x = -x
	}

	// Stern-Brocot search between 0/1 and 1/0 (infinity), refined by
	// mediants: at each step pick the child (left or mediant, right or
	// mediant) on the side of x, narrowing the bracket until the
	// mediant is within eps of x.
	loNum, loDen := big.NewInt(0), big.NewInt(1)
	hiNum, hiDen := big.NewInt(1), big.NewInt(0)

	for i := 0; i < 10000; i++ {
		medNum := new(big.Int).Add(loNum, hiNum)
		medDen := new(big.Int).Add(loDen, hiDen)
		med := Fraction{Num: medNum, Den: medDen}
		approx := med.Float()

		if abs(approx-x) <= eps {
			if neg {
				return Reduce(Neg(med))
			}
			return Reduce(med)
		}
		if approx < x {
			loNum, loDen = medNum, medDen
		} else {
			hiNum, hiDen = medNum, medDen
		}
	}
	// Fell out without reaching eps (x irrational or eps too small for
	// the iteration budget): return the tightest mediant found.
	med := Reduce(Fraction{Num: new(big.Int).Add(loNum, hiNum), Den: new(big.Int).Add(loDen, hiDen)})
	if neg {
		return Neg(med)
	}
	return med
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
