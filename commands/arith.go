package commands

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/josephlewis42/minish/core/vos"
)

// ErrDivisionByZero is returned by div and mod when the divisor is zero.
var ErrDivisionByZero = errors.New("division by zero")

// ArithFunc combines two operands.
type ArithFunc func(a, b float64) (float64, error)

var arithOps = []struct {
	name  string
	short string
	op    ArithFunc
}{
	{"add", "Print the sum of A and B.", func(a, b float64) (float64, error) { return a + b, nil }},
	{"sub", "Print A minus B.", func(a, b float64) (float64, error) { return a - b, nil }},
	{"mul", "Print the product of A and B.", func(a, b float64) (float64, error) { return a * b, nil }},
	{"div", "Print A divided by B.", func(a, b float64) (float64, error) {
		if b == 0 {
			return 0, ErrDivisionByZero
		}
		return a / b, nil
	}},
	{"mod", "Print the remainder of A divided by B, both truncated to integers.", func(a, b float64) (float64, error) {
		divisor := math.Trunc(b)
		if divisor == 0 {
			return 0, ErrDivisionByZero
		}
		return math.Mod(math.Trunc(a), divisor), nil
	}},
}

// Arith creates a builtin that applies op to its two operands.
func Arith(op ArithFunc) BuiltinFunc {
	return func(cmd *SimpleCommand, virtOS vos.VOS) int {
		cmd.RawArgs = true

		return cmd.Run(virtOS, func(args []string) int {
			var operands [2]float64
			for i := range operands {
				v, err := strconv.ParseFloat(args[i], 64)
				if err != nil {
					cmd.LogProgramError(virtOS, fmt.Errorf("invalid number %q", args[i]))
					return 1
				}
				operands[i] = v
			}

			result, err := op(operands[0], operands[1])
			if err != nil {
				cmd.LogProgramError(virtOS, err)
				return 1
			}

			fmt.Fprintf(virtOS.Stdout(), "Result: %.2f\n", result)
			return 0
		})
	}
}

func init() {
	for _, entry := range arithOps {
		addBuiltin(&Builtin{
			Name:    entry.name,
			MinArgs: 2,
			Use:     entry.name + " A B",
			Short:   entry.short,
			Main:    Arith(entry.op),
		})
	}
}
