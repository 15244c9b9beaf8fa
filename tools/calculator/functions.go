package calculator

import (
	"errors"
	"fmt"
	"math"

	"github.com/Knetic/govaluate"
)

var errArgs = errors.New("wrong number of arguments")

// unary lifts a float64 function to a govaluate function
func unary(name string, fn func(float64) float64) govaluate.ExpressionFunction {
	return func(args ...interface{}) (interface{}, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("%s: %w, want 1 got %d", name, errArgs, len(args))
		}
		v, err := toFloat(name, args[0])
		if err != nil {
			return nil, err
		}
		return fn(v), nil
	}
}

func binary(name string, fn func(float64, float64) float64) govaluate.ExpressionFunction {
	return func(args ...interface{}) (interface{}, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("%s: %w, want 2 got %d", name, errArgs, len(args))
		}
		a, err := toFloat(name, args[0])
		if err != nil {
			return nil, err
		}
		b, err := toFloat(name, args[1])
		if err != nil {
			return nil, err
		}
		return fn(a, b), nil
	}
}

// variadic folds one or more arguments
func variadic(name string, fn func(float64, float64) float64) govaluate.ExpressionFunction {
	return func(args ...interface{}) (interface{}, error) {
		if len(args) == 0 {
			return nil, fmt.Errorf("%s: %w, want at least 1", name, errArgs)
		}
		acc, err := toFloat(name, args[0])
		if err != nil {
			return nil, err
		}
		for _, arg := range args[1:] {
			v, err := toFloat(name, arg)
			if err != nil {
				return nil, err
			}
			acc = fn(acc, v)
		}
		return acc, nil
	}
}

func toFloat(name string, v interface{}) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("%s: argument %v is not a number", name, v)
	}
}

var functions = map[string]govaluate.ExpressionFunction{
	"sqrt":  unary("sqrt", math.Sqrt),
	"abs":   unary("abs", math.Abs),
	"sin":   unary("sin", math.Sin),
	"cos":   unary("cos", math.Cos),
	"tan":   unary("tan", math.Tan),
	"log":   unary("log", math.Log10),
	"log2":  unary("log2", math.Log2),
	"ln":    unary("ln", math.Log),
	"exp":   unary("exp", math.Exp),
	"floor": unary("floor", math.Floor),
	"ceil":  unary("ceil", math.Ceil),
	"round": unary("round", math.Round),
	"pow":   binary("pow", math.Pow),
	"min":   variadic("min", math.Min),
	"max":   variadic("max", math.Max),
}
