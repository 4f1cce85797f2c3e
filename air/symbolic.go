package air

import (
	"github.com/consensys/gnark-crypto/field/goldilocks"
)

// Op tags an expression node.
type Op uint8

const (
	OpConst Op = iota
	OpVar
	OpAdd
	OpSub
	OpMul
	OpNeg
)

// Expr is a node of the circuit-description form of a constraint set: a
// tagged-variant expression tree over frame variables. It is the second,
// algebraically equivalent implementation of the transition contract;
// Eval lets tests check it against the numeric path on arbitrary inputs.
type Expr struct {
	Op    Op
	Const goldilocks.Element // OpConst
	Index int                // OpVar, see Frame variable layout below
	X, Y  *Expr
}

// Variable layout for symbolic frames: local columns first, then next-row
// columns, then public inputs.
func symbolicFrameVar(i int) *Expr { return &Expr{Op: OpVar, Index: i} }

// NewSymbolicFrame returns a frame whose entries are fresh variables, plus
// the total variable count. Assignments for Eval use the same layout.
func NewSymbolicFrame(numColumns, numPublicInputs int) (Frame[*Expr], int) {
	n := 2*numColumns + numPublicInputs
	f := Frame[*Expr]{
		Local:        make([]*Expr, numColumns),
		Next:         make([]*Expr, numColumns),
		PublicInputs: make([]*Expr, numPublicInputs),
	}
	for i := 0; i < numColumns; i++ {
		f.Local[i] = symbolicFrameVar(i)
		f.Next[i] = symbolicFrameVar(numColumns + i)
	}
	for i := 0; i < numPublicInputs; i++ {
		f.PublicInputs[i] = symbolicFrameVar(2*numColumns + i)
	}
	return f, n
}

// Eval evaluates the expression under the given variable assignment.
func (e *Expr) Eval(assignment []goldilocks.Element) goldilocks.Element {
	var z goldilocks.Element
	switch e.Op {
	case OpConst:
		z = e.Const
	case OpVar:
		z = assignment[e.Index]
	case OpAdd:
		x, y := e.X.Eval(assignment), e.Y.Eval(assignment)
		z.Add(&x, &y)
	case OpSub:
		x, y := e.X.Eval(assignment), e.Y.Eval(assignment)
		z.Sub(&x, &y)
	case OpMul:
		x, y := e.X.Eval(assignment), e.Y.Eval(assignment)
		z.Mul(&x, &y)
	case OpNeg:
		x := e.X.Eval(assignment)
		z.Neg(&x)
	default:
		panic("air: unknown expression op")
	}
	return z
}

// Sym is the symbolic algebra, Algebra[*Expr].
type Sym struct{}

func (Sym) Zero() *Expr { return &Expr{Op: OpConst} }
func (Sym) One() *Expr  { return &Expr{Op: OpConst, Const: goldilocks.One()} }
func (Sym) FromUint64(v uint64) *Expr {
	var c goldilocks.Element
	c.SetUint64(v)
	return &Expr{Op: OpConst, Const: c}
}
func (Sym) Add(a, b *Expr) *Expr { return &Expr{Op: OpAdd, X: a, Y: b} }
func (Sym) Sub(a, b *Expr) *Expr { return &Expr{Op: OpSub, X: a, Y: b} }
func (Sym) Mul(a, b *Expr) *Expr { return &Expr{Op: OpMul, X: a, Y: b} }
func (Sym) Neg(a *Expr) *Expr    { return &Expr{Op: OpNeg, X: a} }
