package analytics_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/adsc/report-system/internal/core/analytics"
	"github.com/adsc/report-system/internal/core/domain"
)

var _ = Describe("SolveForTarget", func() {
	It("converges on a linear function", func() {
		sol, ok := analytics.SolveForTarget(func(x float64) float64 { return x*2 + 5 }, 15)
		Expect(ok).To(BeTrue())
		Expect(sol.X).To(Equal(5.0))
		Expect(sol.FX).To(Equal(15.0))
		Expect(sol.Iterations).To(BeNumerically("<=", 3))
	})

	It("solves a quadratic from the positive side", func() {
		sol, ok := analytics.SolveForTarget(func(x float64) float64 { return x * x }, 49)
		Expect(ok).To(BeTrue())
		Expect(sol.X).To(BeNumerically("~", 7, 1e-4))
	})

	It("gives up on a flat function", func() {
		_, ok := analytics.SolveForTarget(func(float64) float64 { return 0 }, 10)
		Expect(ok).To(BeFalse())
	})

	It("gives up when the function is not finite", func() {
		_, ok := analytics.SolveForTarget(func(x float64) float64 { return math.NaN() }, 1)
		Expect(ok).To(BeFalse())
	})

	It("reports failure when no root exists", func() {
		_, ok := analytics.SolveForTarget(func(x float64) float64 { return x*x + 1 }, 0)
		Expect(ok).To(BeFalse())
	})
})

var _ = Describe("SolveSimple", func() {
	DescribeTable("inverts the operator",
		func(base float64, op analytics.Operator, goal, want float64) {
			got, ok := analytics.SolveSimple(base, op, goal)
			Expect(ok).To(BeTrue())
			Expect(got).To(Equal(want))
		},
		Entry("add", 10.0, analytics.OpAdd, 25.0, 15.0),
		Entry("sub", 10.0, analytics.OpSub, 4.0, 6.0),
		Entry("mul", 4.0, analytics.OpMul, 10.0, 2.5),
		Entry("div", 9.0, analytics.OpDiv, 3.0, 3.0),
		Entry("rounds to five places", 3.0, analytics.OpMul, 1.0, 0.33333),
	)

	It("rejects division by zero and unknown operators", func() {
		_, ok := analytics.SolveSimple(0, analytics.OpMul, 5)
		Expect(ok).To(BeFalse())
		_, ok = analytics.SolveSimple(1, analytics.Operator("^"), 5)
		Expect(ok).To(BeFalse())
	})
})

var _ = Describe("ParseFormula", func() {
	DescribeTable("evaluates",
		func(expr string, x, want float64) {
			f, err := analytics.ParseFormula(expr, "price")
			Expect(err).NotTo(HaveOccurred())
			Expect(f(x)).To(BeNumerically("~", want, 1e-9))
		},
		Entry("precedence", "2 + price * 3", 4.0, 14.0),
		Entry("parentheses", "(2 + price) * 3", 4.0, 18.0),
		Entry("unary minus", "-price + 10", 4.0, 6.0),
		Entry("division", "price / 4", 10.0, 2.5),
		Entry("unknown identifiers are zero", "price * qty + 1", 7.0, 1.0),
	)

	It("feeds the solver", func() {
		f, err := analytics.ParseFormula("units * 250 - 1000", "units")
		Expect(err).NotTo(HaveOccurred())
		sol, ok := analytics.SolveForTarget(f, 4000)
		Expect(ok).To(BeTrue())
		Expect(sol.X).To(Equal(20.0))
	})

	DescribeTable("rejects malformed input",
		func(expr string) {
			_, err := analytics.ParseFormula(expr, "x")
			Expect(errors.Is(err, domain.ErrValidation)).To(BeTrue())
		},
		Entry("dangling operator", "x +"),
		Entry("unbalanced parenthesis", "(x + 1"),
		Entry("stray character", "x ^ 2"),
		Entry("empty", ""),
		Entry("bad number", "1.2.3"),
	)

	It("validates variable names", func() {
		Expect(analytics.ValidVariable("price")).To(BeTrue())
		Expect(analytics.ValidVariable("x1")).To(BeFalse())
		Expect(analytics.ValidVariable("")).To(BeFalse())
	})
})
