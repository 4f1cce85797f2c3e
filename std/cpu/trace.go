package cpu

import (
	"errors"
	"fmt"

	"github.com/consensys/gnark-crypto/field/goldilocks"
	"github.com/consensys/stark/internal/utils"
)

var (
	// ErrStackUnderflow is returned when an operation pops more elements
	// than the model stack holds.
	ErrStackUnderflow = errors.New("cpu: stack underflow")
	// ErrBadHeight is returned when the requested trace height is not a
	// power of two or leaves no room for padding.
	ErrBadHeight = errors.New("cpu: trace height must be a power of two larger than the program")
)

// pending carries the channel-0 obligations an operation imposes on the row
// after it.
type pending struct {
	read  bool // next row reads the new top through an extra pop
	force bool // next row's channel 0 must stay unused
}

// GenerateTrace executes ops against a model stack and lays the run out as a
// satisfying trace of the given power-of-two height, padded with no-op rows.
// The result is column-major, ready for proving.
func GenerateTrace(ops []Op, height int) ([][]goldilocks.Element, error) {
	if h := uint64(height); !utils.IsPowerOfTwo(h) || height <= len(ops) {
		return nil, ErrBadHeight
	}

	var stack []goldilocks.Element
	rows := make([][]goldilocks.Element, height)
	var carry pending

	for i := 0; i < height; i++ {
		row := make([]goldilocks.Element, NumColumns)
		row[colStackLen].SetUint64(uint64(len(stack)))

		// channel 0 carries the current top; whether it is an actual read
		// depends on what the previous operation demanded
		setChannel(row, 0, channelSpec{
			used:   carry.read,
			isRead: carry.read,
			addr:   len(stack) - 1,
			value:  top(stack),
		})
		carry = pending{}

		if i >= len(ops) {
			rows[i] = row
			continue
		}

		op := ops[i]
		sb := stackBehaviors[op]
		if len(stack) < sb.NumPops {
			return nil, fmt.Errorf("%w: row %d pops %d of %d", ErrStackUnderflow, i, sb.NumPops, len(stack))
		}
		row[colOpStart+int(op)].SetOne()

		for j := 1; j < sb.NumPops; j++ {
			setChannel(row, j, channelSpec{
				used:   true,
				isRead: true,
				addr:   len(stack) - (j + 1),
				value:  stack[len(stack)-1-j],
			})
		}

		switch {
		case sb.NumPops > 0 && !sb.Pushes:
			lenDiff := len(stack) - sb.NumPops
			setInvSelector(row, lenDiff)
			stack = stack[:lenDiff]
			if lenDiff > 0 {
				carry.read = true
			} else {
				carry.force = true
			}

		case sb.NumPops > 0 && sb.Pushes:
			// binary-style: pop the operands, push their sum through the
			// last channel
			var result goldilocks.Element
			result.Add(&stack[len(stack)-1], &stack[len(stack)-2])
			stack = stack[:len(stack)-sb.NumPops]
			stack = append(stack, result)
			setChannel(row, NumGPChannels-1, channelSpec{
				used:  true,
				addr:  len(stack) - 1,
				value: result,
			})

		case sb.Pushes:
			// pure push: write the previous top out, unless the stack was
			// empty
			setInvSelector(row, len(stack))
			if len(stack) > 0 {
				setChannel(row, NumGPChannels-1, channelSpec{
					used:  true,
					addr:  len(stack) - 1,
					value: top(stack),
				})
			}
			var zero goldilocks.Element
			stack = append(stack, zero)

		default:
			carry.force = true
		}

		rows[i] = row
	}

	return utils.Transpose(rows), nil
}

func top(stack []goldilocks.Element) goldilocks.Element {
	var z goldilocks.Element
	if len(stack) > 0 {
		z = stack[len(stack)-1]
	}
	return z
}

type channelSpec struct {
	used, isRead bool
	addr         int
	value        goldilocks.Element
}

func setChannel(row []goldilocks.Element, i int, spec channelSpec) {
	base := colChannelsStart + i*channelWidth
	if spec.used {
		row[base+chanUsed].SetOne()
		row[base+chanAddrSegment].SetUint64(segmentStack)
		if spec.addr >= 0 {
			row[base+chanAddrVirtual].SetUint64(uint64(spec.addr))
		}
	}
	if spec.isRead {
		row[base+chanIsRead].SetOne()
	}
	row[base+chanValue] = spec.value
}

// setInvSelector fills the (stackInv, stackInvAux) pair witnessing whether
// n is nonzero.
func setInvSelector(row []goldilocks.Element, n int) {
	if n == 0 {
		return
	}
	var el goldilocks.Element
	el.SetUint64(uint64(n))
	row[colStackInv].Inverse(&el)
	row[colStackInvAux].SetOne()
}
