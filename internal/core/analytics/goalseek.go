package analytics

import (
	"math"
)

const (
	seekStart         = 1.0
	seekMaxIterations = 50
	seekTolerance     = 1e-4
	seekRelaxed       = 0.1
	seekStep          = 1e-4
	seekMinSlope      = 1e-4
)

// Solution is the input that drives f to the target.
type Solution struct {
	X          float64 `json:"x"`
	FX         float64 `json:"fx"`
	Iterations int     `json:"iterations"`
}

// SolveForTarget finds x with f(x) close to target by Newton-Raphson
// iteration from x=1 using a forward-difference derivative. It stops early on a
// near-flat slope and accepts the last estimate only within a relaxed
// tolerance. ok is false when no solution was found or f left the reals.
func SolveForTarget(f func(float64) float64, target float64) (sol Solution, ok bool) {
	x := seekStart
	iterations := 0

	for iterations < seekMaxIterations {
		fx := f(x)
		if !finite(fx) {
			return Solution{}, false
		}
		if math.Abs(fx-target) < seekTolerance {
			return newSolution(x, fx, iterations), true
		}

		fxh := f(x + seekStep)
		if !finite(fxh) {
			return Solution{}, false
		}
		slope := (fxh - fx) / seekStep
		if math.Abs(slope) < seekMinSlope {
			break
		}

		x -= (fx - target) / slope
		iterations++
	}

	fx := f(x)
	if finite(fx) && math.Abs(fx-target) < seekRelaxed {
		return newSolution(x, fx, iterations), true
	}
	return Solution{}, false
}

func newSolution(x, fx float64, iterations int) Solution {
	return Solution{X: round5(x), FX: round5(fx), Iterations: iterations}
}

func round5(v float64) float64 {
	return math.Round(v*1e5) / 1e5
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Operator is a binary arithmetic operator for SolveSimple.
type Operator string

const (
	OpAdd Operator = "+"
	OpSub Operator = "-"
	OpMul Operator = "*"
	OpDiv Operator = "/"
)

// SolveSimple returns the operand x with "base op x = goal". The answer is
// rounded to five decimals; ok is false for an unknown operator or a division
// by zero.
func SolveSimple(base float64, op Operator, goal float64) (answer float64, ok bool) {
	switch op {
	case OpAdd:
		answer = goal - base
	case OpSub:
		answer = base - goal
	case OpMul:
		if base == 0 {
			return 0, false
		}
		answer = goal / base
	case OpDiv:
		if goal == 0 {
			return 0, false
		}
		answer = base / goal
	default:
		return 0, false
	}
	return round5(answer), true
}
