package calculator

import (
	"context"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/Knetic/govaluate"

	"github.com/bububa/vexa/tools"
)

const (
	defaultName        = "calculator"
	defaultDescription = "Useful for performing mathematical calculations. Input should be a mathematical expression like '2+2' or 'sqrt(16)'. Supports basic operations: +, -, *, /, %, **, () and functions like sqrt, abs, sin, cos, log, pow, min, max."
)

var (
	// ErrInvalidExpression the expression contains characters or names outside the calculator grammar
	ErrInvalidExpression = errors.New("invalid characters in expression")
	// ErrNotFinite the expression evaluated to infinity or NaN
	ErrNotFinite = errors.New("result is not a finite number")
)

var identRe = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_]*`)

// Tool for performing calculations. Supports basic arithmetic operations
// like addition, subtraction, multiplication, and division, as well as more
// complex operations like exponentiation and trigonometric functions.
type Tool struct {
	tools.Config
}

var _ tools.Tool = (*Tool)(nil)

func New(opts ...tools.Option) *Tool {
	ret := new(Tool)
	tools.Apply(&ret.Config, defaultName, defaultDescription, opts...)
	return ret
}

// Invoke evaluates the expression and formats it as "Result: <n>"
func (t *Tool) Invoke(_ context.Context, argument string) (string, error) {
	result, err := Evaluate(argument)
	if err != nil {
		return "", fmt.Errorf("calculating '%s': %w", strings.TrimSpace(argument), err)
	}
	return "Result: " + strconv.FormatFloat(result, 'f', -1, 64), nil
}

// Evaluate runs a single arithmetic expression
func Evaluate(expression string) (float64, error) {
	expression = clean(expression)
	if expression == "" {
		return 0, fmt.Errorf("%w: empty expression", ErrInvalidExpression)
	}
	if err := checkAllowed(expression); err != nil {
		return 0, err
	}
	exp, err := govaluate.NewEvaluableExpressionWithFunctions(expression, functions)
	if err != nil {
		return 0, err
	}
	value, err := exp.Evaluate(constParams)
	if err != nil {
		return 0, err
	}
	result, ok := value.(float64)
	if !ok {
		return 0, fmt.Errorf("%w: got %v", ErrInvalidExpression, value)
	}
	if math.IsInf(result, 0) || math.IsNaN(result) {
		return 0, ErrNotFinite
	}
	return result, nil
}

// clean drops the wrapping quotes and trailing '=' models like to add
func clean(expression string) string {
	expression = strings.TrimSpace(expression)
	expression = strings.Trim(expression, "\"'`")
	expression = strings.TrimSuffix(expression, "=")
	return strings.TrimSpace(expression)
}

func checkAllowed(expression string) error {
	for _, name := range identRe.FindAllString(expression, -1) {
		if _, ok := functions[name]; ok {
			continue
		}
		if _, ok := constParams[name]; ok {
			continue
		}
		return fmt.Errorf("%w: unknown name %q", ErrInvalidExpression, name)
	}
	rest := identRe.ReplaceAllString(expression, "")
	for _, r := range rest {
		switch {
		case r >= '0' && r <= '9':
		case strings.ContainsRune("+-*/%()., \t", r):
		default:
			return fmt.Errorf("%w: %q. Only numbers and basic math operators (+, -, *, /, %%, **, ()) are allowed", ErrInvalidExpression, r)
		}
	}
	return nil
}
