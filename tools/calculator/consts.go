package calculator

import (
	"math"
)

var constParams = map[string]interface{}{
	"pi":    math.Pi,
	"e":     math.E,
	"phi":   math.Phi,
	"sqrt2": math.Sqrt2,
	"ln2":   math.Ln2,
	"ln10":  math.Ln10,
	"tau":   2 * math.Pi,
}
