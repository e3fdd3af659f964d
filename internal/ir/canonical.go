package ir

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"unicode/utf16"

	"golang.org/x/text/unicode/norm"
)

// Encode converts an instruction into a plain document of maps, slices,
// strings and ints suitable for MarshalCanonical and JSON output.
// Constants are encoded as their shortest decimal string so that documents
// never carry floats.
func Encode(inst Instruction) map[string]any {
	out, _ := inst.Accept(encoder{}, nil)
	doc := out.(map[string]any)
	doc["kind"] = inst.Kind().Mnemonic()
	return doc
}

type encoder struct{}

func encodeSelector(s Selector) map[string]any {
	return map[string]any{"index": s.Index, "sign": int(s.Sign)}
}

func encodeSelectors(set Selectorset) []any {
	out := make([]any, len(set))
	for i, s := range set {
		out[i] = encodeSelector(s)
	}
	return out
}

func encodeVariables(vs Variableset) []any {
	out := make([]any, len(vs))
	for i, op := range vs {
		doc, _ := op.Accept(encoder{}, nil)
		out[i] = doc
	}
	return out
}

func (encoder) VisitVariable(op *Variable, _ any) (any, error) {
	return map[string]any{"variable": op.Name}, nil
}

func (encoder) VisitConstant(op *Constant, _ any) (any, error) {
	return map[string]any{"constant": op.String()}, nil
}

func (encoder) VisitMvComponent(op *MvComponent, _ any) (any, error) {
	return map[string]any{"component": map[string]any{
		"multivector": op.Multivector.Name,
		"selector":    encodeSelector(op.Selector),
	}}, nil
}

func (encoder) VisitResetMv(inst *ResetMv, _ any) (any, error) {
	return map[string]any{"destination": inst.Destination.Name}, nil
}

func (encoder) VisitSetMv(inst *SetMv, _ any) (any, error) {
	return map[string]any{
		"destination":    inst.Destination.Name,
		"source":         inst.Source.Name,
		"selectors_dest": encodeSelectors(inst.SelectorsDest),
		"selectors_src":  encodeSelectors(inst.SelectorsSrc),
	}, nil
}

func (encoder) VisitAddMv(inst *AddMv, _ any) (any, error) {
	return map[string]any{
		"destination":    inst.Destination.Name,
		"source":         inst.Source.Name,
		"selectors_dest": encodeSelectors(inst.SelectorsDest),
		"selectors_src":  encodeSelectors(inst.SelectorsSrc),
	}, nil
}

func (encoder) VisitAssignMv(inst *AssignMv, _ any) (any, error) {
	return map[string]any{
		"destination": inst.Destination.Name,
		"selectors":   encodeSelectors(inst.Selectors),
		"values":      encodeVariables(inst.Values),
	}, nil
}

func (encoder) VisitDotVectors(inst *DotVectors, _ any) (any, error) {
	parts := make([]any, len(inst.Parts))
	for i, p := range inst.Parts {
		parts[i] = p.Name
	}
	return map[string]any{
		"destination":   inst.Destination.Name,
		"dest_selector": encodeSelector(inst.DestSelector),
		"parts":         parts,
	}, nil
}

func (encoder) VisitSetVector(inst *SetVector, _ any) (any, error) {
	return map[string]any{
		"destination":   inst.Destination.Name,
		"source":        inst.Source.Name,
		"selectors_src": encodeSelectors(inst.SelectorsSrc),
	}, nil
}

func (encoder) VisitAssignVector(inst *AssignVector, _ any) (any, error) {
	return map[string]any{
		"destination": inst.Destination.Name,
		"values":      encodeVariables(inst.Values),
	}, nil
}

func (encoder) VisitCalculate(inst *Calculate, _ any) (any, error) {
	return map[string]any{
		"type":     inst.Type.String(),
		"target":   inst.Target.Name,
		"operand1": inst.Operand1.Name,
		"operand2": inst.Operand2.Name,
		"used1":    encodeSelectors(inst.Used1),
		"used2":    encodeSelectors(inst.Used2),
	}, nil
}

func (encoder) VisitCalculateMv(inst *CalculateMv, _ any) (any, error) {
	return map[string]any{
		"type":     inst.Type.String(),
		"target":   inst.Target.Name,
		"operand1": inst.Operand1.Name,
		"operand2": inst.Operand2.Name,
	}, nil
}

// MarshalCanonical produces RFC 8785 style canonical JSON for hashing.
//
// Differences from json.Marshal:
//  1. Object keys sorted by UTF-16 code units (not UTF-8 bytes)
//  2. No HTML escaping
//  3. Strings are NFC normalized
//  4. No floats and no null (returns error)
func MarshalCanonical(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := marshalCanonical(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func marshalCanonical(buf *bytes.Buffer, v any) error {
	switch val := v.(type) {
	case nil:
		return fmt.Errorf("null is forbidden in canonical JSON")
	case string:
		return marshalCanonicalString(buf, val)
	case int:
		buf.WriteString(strconv.Itoa(val))
	case int64:
		buf.WriteString(strconv.FormatInt(val, 10))
	case bool:
		buf.WriteString(strconv.FormatBool(val))
	case []any:
		buf.WriteByte('[')
		for i, elem := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := marshalCanonical(buf, elem); err != nil {
				return fmt.Errorf("array[%d]: %w", i, err)
			}
		}
		buf.WriteByte(']')
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		slices.SortFunc(keys, compareKeysUTF16)

		buf.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := marshalCanonicalString(buf, k); err != nil {
				return fmt.Errorf("key %q: %w", k, err)
			}
			buf.WriteByte(':')
			if err := marshalCanonical(buf, val[k]); err != nil {
				return fmt.Errorf("value for key %q: %w", k, err)
			}
		}
		buf.WriteByte('}')
	case float64, float32:
		return fmt.Errorf("floats are forbidden in canonical JSON: %v", val)
	default:
		return fmt.Errorf("unsupported type for canonical JSON: %T", v)
	}
	return nil
}

// marshalCanonicalString writes s NFC normalized without HTML escaping.
func marshalCanonicalString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(norm.NFC.String(s)); err != nil {
		return err
	}
	// json.Encoder adds a trailing newline
	buf.Write(bytes.TrimSuffix(tmp.Bytes(), []byte("\n")))
	return nil
}

// compareKeysUTF16 orders strings by UTF-16 code units as RFC 8785 requires.
// Go's native string comparison uses UTF-8 bytes, which differs above the BMP.
func compareKeysUTF16(a, b string) int {
	a16 := utf16.Encode([]rune(a))
	b16 := utf16.Encode([]rune(b))
	return slices.Compare(a16, b16)
}
