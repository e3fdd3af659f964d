package ir

import "fmt"

// CalculationType is the operator applied by Calculate and CalculateMv.
// The textual name of each kind is fixed; see ParseCalculationType.
type CalculationType int

const (
	CalcInvalid CalculationType = iota

	// Binary operators.
	CalcGeometricProduct
	CalcOuterProduct
	CalcInnerProduct
	CalcAdd
	CalcSubtract
	CalcDivision

	// Unary operators.
	CalcInverse
	CalcReverse
	CalcNegate
	CalcAbs
	CalcSqrt
	CalcExponential
	CalcSin
	CalcCos
)

var calcNames = map[CalculationType]string{
	CalcGeometricProduct: "GP",
	CalcOuterProduct:     "OP",
	CalcInnerProduct:     "IP",
	CalcAdd:              "ADD",
	CalcSubtract:         "SUB",
	CalcDivision:         "DIVISION",
	CalcInverse:          "INVERSE",
	CalcReverse:          "REVERSE",
	CalcNegate:           "NEGATE",
	CalcAbs:              "ABS",
	CalcSqrt:             "SQRT",
	CalcExponential:      "EXPONENTIAL",
	CalcSin:              "SIN",
	CalcCos:              "COS",
}

var calcByName = func() map[string]CalculationType {
	m := make(map[string]CalculationType, len(calcNames))
	for k, v := range calcNames {
		m[v] = k
	}
	return m
}()

// ParseCalculationType resolves an operator name such as "GP".
// Matching is exact.
func ParseCalculationType(name string) (CalculationType, error) {
	t, ok := calcByName[name]
	if !ok {
		return CalcInvalid, fmt.Errorf("unknown calculation type %q", name)
	}
	return t, nil
}

func (t CalculationType) String() string {
	if name, ok := calcNames[t]; ok {
		return name
	}
	return fmt.Sprintf("CalculationType(%d)", int(t))
}

// Valid reports whether t is a known operator.
func (t CalculationType) Valid() bool {
	_, ok := calcNames[t]
	return ok
}

// Arity returns 2 for binary operators, 1 for unary ones and 0 for
// CalcInvalid.
func (t CalculationType) Arity() int {
	switch {
	case t >= CalcGeometricProduct && t <= CalcDivision:
		return 2
	case t >= CalcInverse && t <= CalcCos:
		return 1
	default:
		return 0
	}
}
