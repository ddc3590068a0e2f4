// Package linear is the affine-expression form exchanged with the external
// dispatch solver: a constant plus one coefficient per named decision variable.
package linear

import (
	"fmt"
	"sort"
)

// Var names a solver decision variable, e.g. "ess_dis[17]".
type Var string

// Expr is Constant + Σ Coeffs[v] * v.
// The zero value is the constant 0.
type Expr struct {
	Constant float64
	Coeffs   map[Var]float64
}

// Const returns the constant expression c.
func Const(c float64) Expr {
	return Expr{Constant: c}
}

// Variable returns the expression 1*v.
func Variable(v Var) Expr {
	return Expr{Coeffs: map[Var]float64{v: 1}}
}

// IsZero reports whether e is the constant 0 with no variable terms.
func (e Expr) IsZero() bool {
	if e.Constant != 0 {
		return false
	}
	for _, c := range e.Coeffs {
		if c != 0 {
			return false
		}
	}
	return true
}

// Add returns e + o. Neither operand is modified.
func (e Expr) Add(o Expr) Expr {
	out := Expr{Constant: e.Constant + o.Constant}
	if len(e.Coeffs)+len(o.Coeffs) > 0 {
		out.Coeffs = make(map[Var]float64, len(e.Coeffs)+len(o.Coeffs))
	}
	for v, c := range e.Coeffs {
		out.Coeffs[v] += c
	}
	for v, c := range o.Coeffs {
		out.Coeffs[v] += c
	}
	return out
}

// Sub returns e - o.
func (e Expr) Sub(o Expr) Expr {
	return e.Add(o.Scale(-1))
}

// Scale returns k * e.
func (e Expr) Scale(k float64) Expr {
	out := Expr{Constant: e.Constant * k}
	if len(e.Coeffs) > 0 {
		out.Coeffs = make(map[Var]float64, len(e.Coeffs))
		for v, c := range e.Coeffs {
			out.Coeffs[v] = c * k
		}
	}
	return out
}

// Vars returns the variables with a non-zero coefficient, sorted.
func (e Expr) Vars() []Var {
	out := make([]Var, 0, len(e.Coeffs))
	for v, c := range e.Coeffs {
		if c != 0 {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Eval evaluates e at the given variable values.
// Every variable with a non-zero coefficient must have a value.
func (e Expr) Eval(values map[Var]float64) (float64, error) {
	total := e.Constant
	for v, c := range e.Coeffs {
		if c == 0 {
			continue
		}
		x, ok := values[v]
		if !ok {
			return 0, fmt.Errorf("no value for variable %q", v)
		}
		total += c * x
	}
	return total, nil
}

// Dot returns Σ w[i] * xs[i]. The slices must have equal length.
func Dot(w []float64, xs []Expr) (Expr, error) {
	if len(w) != len(xs) {
		return Expr{}, fmt.Errorf("length mismatch: %d weights, %d expressions", len(w), len(xs))
	}
	out := Expr{Coeffs: map[Var]float64{}}
	for i, x := range xs {
		if w[i] == 0 {
			continue
		}
		out.Constant += w[i] * x.Constant
		for v, c := range x.Coeffs {
			out.Coeffs[v] += w[i] * c
		}
	}
	return out, nil
}

// NetLoad builds siteLoad + netStorageOutput - generation - variableGeneration
// per step. Nil generation slices are treated as zero.
func NetLoad(siteLoad []float64, netStorage, generation, variableGen []Expr) ([]Expr, error) {
	n := len(siteLoad)
	for name, xs := range map[string][]Expr{
		"net storage":         netStorage,
		"generation":          generation,
		"variable generation": variableGen,
	} {
		if xs != nil && len(xs) != n {
			return nil, fmt.Errorf("%s has %d steps, site load has %d", name, len(xs), n)
		}
	}
	out := make([]Expr, n)
	for i := range out {
		e := Const(siteLoad[i])
		if netStorage != nil {
			e = e.Add(netStorage[i])
		}
		if generation != nil {
			e = e.Sub(generation[i])
		}
		if variableGen != nil {
			e = e.Sub(variableGen[i])
		}
		out[i] = e
	}
	return out, nil
}
