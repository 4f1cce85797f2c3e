// Package cpu provides a sample constraint capability: stack-pointer
// bookkeeping for an EVM-like machine, expressed through the air interfaces.
//
// Each operation class declares how it moves the stack (pops, pushes, which
// memory channel carries the new top) in an immutable behavior table, and
// one generic evaluation function turns the table into constraints for the
// base field, the extension field and the symbolic form alike.
package cpu

import (
	"github.com/consensys/gnark-crypto/field/goldilocks"
	"github.com/consensys/stark/air"
	"github.com/consensys/stark/fext"
)

// NumGPChannels is the number of general-purpose memory channels per row.
// Channel 0 always carries the current top of the stack.
const NumGPChannels = 3

// segmentStack is the memory segment identifier for stack accesses.
const segmentStack = 1

// per-channel column offsets
const (
	chanUsed = iota
	chanIsRead
	chanAddrContext
	chanAddrSegment
	chanAddrVirtual
	chanValue
	channelWidth
)

// fixed column indices; operation filters follow the channels
const (
	colStackLen = iota
	colContext
	colStackInv
	colStackInvAux
	colChannelsStart
)

const colOpStart = colChannelsStart + NumGPChannels*channelWidth

// NumColumns is the trace width of the stack capability.
const NumColumns = colOpStart + int(numOps)

// Op identifies an operation class with its own stack behavior.
type Op int

const (
	OpBinary Op = iota // pop two, push the result
	OpPop              // pop one, discard
	OpJump             // pop one, leave other channels alone
	OpPush0            // push a constant
	OpJumpdest         // touch nothing
	numOps
)

// StackBehavior declares how an operation class moves the stack.
type StackBehavior struct {
	NumPops       int
	Pushes        bool
	NewTopChannel int // channel holding the next row's top, -1 if none
	DisableOther  bool
}

// stackBehaviors is pure data, never mutated after initialization.
var stackBehaviors = [numOps]StackBehavior{
	OpBinary:   {NumPops: 2, Pushes: true, NewTopChannel: NumGPChannels - 1, DisableOther: true},
	OpPop:      {NumPops: 1, Pushes: false, NewTopChannel: -1, DisableOther: true},
	OpJump:     {NumPops: 1, Pushes: false, NewTopChannel: -1, DisableOther: false},
	OpPush0:    {NumPops: 0, Pushes: true, NewTopChannel: -1, DisableOther: true},
	OpJumpdest: {NumPops: 0, Pushes: false, NewTopChannel: -1, DisableOther: true},
}

// Behavior returns the stack behavior of op.
func Behavior(op Op) StackBehavior { return stackBehaviors[op] }

// channelView addresses one memory channel inside a row.
type channelView[T any] struct {
	used, isRead, addrContext, addrSegment, addrVirtual, value T
}

func channelOf[T any](row []T, i int) channelView[T] {
	base := colChannelsStart + i*channelWidth
	return channelView[T]{
		used:        row[base+chanUsed],
		isRead:      row[base+chanIsRead],
		addrContext: row[base+chanAddrContext],
		addrSegment: row[base+chanAddrSegment],
		addrVirtual: row[base+chanAddrVirtual],
		value:       row[base+chanValue],
	}
}

// StackAIR is the constraint capability for stack bookkeeping.
type StackAIR struct{}

func (StackAIR) NumColumns() int      { return NumColumns }
func (StackAIR) NumPublicInputs() int { return 0 }

func (StackAIR) EvalBase(f air.Frame[goldilocks.Element], cc *air.Consumer[goldilocks.Element]) {
	Eval(air.GF{}, f, cc)
}

func (StackAIR) EvalExt(f air.Frame[fext.E2], cc *air.Consumer[fext.E2]) {
	Eval(air.EF{}, f, cc)
}

// Eval accumulates the stack constraints of every operation class. It is
// exported so the symbolic instantiation can be checked against the numeric
// ones.
func Eval[T any](alg air.Algebra[T], f air.Frame[T], cc *air.Consumer[T]) {
	for op := Op(0); op < numOps; op++ {
		evalOne(alg, f, f.Local[colOpStart+int(op)], stackBehaviors[op], cc)
	}
}

// evalOne emits the constraints of a single operation class, gated by its
// filter column. The inverse-selector pair (stackInv, stackInvAux) encodes
// "the stack is non-empty after this operation": soundness depends on the
// exact products below, so the zero/nonzero case split is kept verbatim.
func evalOne[T any](alg air.Algebra[T], f air.Frame[T], filter T, sb StackBehavior, cc *air.Consumer[T]) {
	one := alg.One()
	lvStackLen := f.Local[colStackLen]
	nvStackLen := f.Next[colStackLen]
	stackInv := f.Local[colStackInv]
	stackInvAux := f.Local[colStackInvAux]

	if sb.NumPops > 0 {
		// the first read (i == 1) is for the second stack element, at
		// stack[stackLen-2]; the top already sits in channel 0
		for i := 1; i < sb.NumPops; i++ {
			ch := channelOf(f.Local, i)
			cc.Constraint(alg.Mul(filter, alg.Sub(ch.used, one)))
			cc.Constraint(alg.Mul(filter, alg.Sub(ch.isRead, one)))
			cc.Constraint(alg.Mul(filter, alg.Sub(ch.addrContext, f.Local[colContext])))
			cc.Constraint(alg.Mul(filter, alg.Sub(ch.addrSegment, alg.FromUint64(segmentStack))))
			addrVirtual := alg.Sub(lvStackLen, alg.FromUint64(uint64(i+1)))
			cc.Constraint(alg.Mul(filter, alg.Sub(ch.addrVirtual, addrVirtual)))
		}

		// If the op also pushes, the new top needs no read. If it does not:
		// when the stack is non-empty after the pops, the next row reads the
		// new top through an extra pop; when it is empty, that read must be
		// disabled. Transition constraints: they don't apply to the last row.
		if !sb.Pushes {
			lenDiff := alg.Sub(lvStackLen, alg.FromUint64(uint64(sb.NumPops)))
			newFilter := alg.Mul(lenDiff, filter)
			ch := channelOf(f.Next, 0)
			cc.ConstraintTransition(alg.Mul(newFilter, alg.Sub(ch.used, one)))
			cc.ConstraintTransition(alg.Mul(newFilter, alg.Sub(ch.isRead, one)))
			cc.ConstraintTransition(alg.Mul(newFilter, alg.Sub(ch.addrContext, f.Next[colContext])))
			cc.ConstraintTransition(alg.Mul(newFilter, alg.Sub(ch.addrSegment, alg.FromUint64(segmentStack))))
			addrVirtual := alg.Sub(nvStackLen, one)
			cc.ConstraintTransition(alg.Mul(newFilter, alg.Sub(ch.addrVirtual, addrVirtual)))

			cc.Constraint(alg.Mul(filter, alg.Sub(alg.Mul(lenDiff, stackInv), stackInvAux)))
			emptyStackFilter := alg.Mul(filter, alg.Sub(stackInvAux, one))
			cc.ConstraintTransition(alg.Mul(emptyStackFilter, ch.used))
		}
	} else if sb.Pushes {
		// a pure push writes the previous top to memory through the last
		// channel, unless the stack was empty
		newFilter := alg.Mul(lvStackLen, filter)
		ch := channelOf(f.Local, NumGPChannels-1)
		cc.Constraint(alg.Mul(newFilter, alg.Sub(ch.used, one)))
		cc.Constraint(alg.Mul(newFilter, ch.isRead))
		cc.Constraint(alg.Mul(newFilter, alg.Sub(ch.addrContext, f.Local[colContext])))
		cc.Constraint(alg.Mul(newFilter, alg.Sub(ch.addrSegment, alg.FromUint64(segmentStack))))
		addrVirtual := alg.Sub(lvStackLen, one)
		cc.Constraint(alg.Mul(newFilter, alg.Sub(ch.addrVirtual, addrVirtual)))
		top := channelOf(f.Local, 0)
		cc.Constraint(alg.Mul(newFilter, alg.Sub(ch.value, top.value)))

		cc.Constraint(alg.Mul(filter, alg.Sub(alg.Mul(lvStackLen, stackInv), stackInvAux)))
		emptyStackFilter := alg.Mul(filter, alg.Sub(stackInvAux, one))
		cc.Constraint(alg.Mul(emptyStackFilter, ch.used))
	} else {
		// neither pops nor pushes: the top must not move
		next := channelOf(f.Next, 0)
		cc.Constraint(alg.Mul(filter, next.used))
		top := channelOf(f.Local, 0)
		cc.Constraint(alg.Mul(filter, alg.Sub(top.value, next.value)))
	}

	if sb.NewTopChannel >= 0 {
		src := channelOf(f.Local, sb.NewTopChannel)
		dst := channelOf(f.Next, 0)
		cc.ConstraintTransition(alg.Mul(filter, alg.Sub(src.value, dst.value)))
	}

	if sb.DisableOther {
		hi := NumGPChannels
		if sb.Pushes {
			hi--
		}
		for i := max(1, sb.NumPops); i < hi; i++ {
			ch := channelOf(f.Local, i)
			cc.Constraint(alg.Mul(filter, ch.used))
		}
	}

	// new stack length
	pops := alg.FromUint64(uint64(sb.NumPops))
	push := alg.Zero()
	if sb.Pushes {
		push = one
	}
	expected := alg.Add(alg.Sub(lvStackLen, pops), push)
	cc.ConstraintTransition(alg.Mul(filter, alg.Sub(nvStackLen, expected)))
}
