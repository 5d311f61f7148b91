package prettify

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Value is a parsed JSON value. Objects keep their keys in the order they
// were first seen, which a Go map would lose.
type Value interface {
	jsonKind() string
}

// Object is a JSON object with ordered members.
type Object struct {
	Members []Member
}

// Member is one key/value pair of an Object.
type Member struct {
	Key   string
	Value Value
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (Value, bool) {
	for _, m := range o.Members {
		if m.Key == key {
			return m.Value, true
		}
	}
	return nil, false
}

// Array is a JSON array.
type Array []Value

// String is a decoded JSON string. A \u escape naming half of a surrogate
// pair with no partner decodes to U+FFFD.
type String string

// Number is a JSON number literal exactly as it appeared in the input.
type Number string

// Bool is a JSON boolean.
type Bool bool

// Null is the JSON null literal.
type Null struct{}

func (*Object) jsonKind() string { return "object" }
func (Array) jsonKind() string   { return "array" }
func (String) jsonKind() string  { return "string" }
func (Number) jsonKind() string  { return "number" }
func (Bool) jsonKind() string    { return "bool" }
func (Null) jsonKind() string    { return "null" }

// Float64 returns the number's value. Literals beyond the float64 range
// come back as ±Inf.
func (n Number) Float64() float64 {
	f, _ := strconv.ParseFloat(string(n), 64)
	return f
}

// decodeValue reads one complete value from dec. The input has already
// been validated, so any error here is unexpected.
func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		}
		return nil, fmt.Errorf("prettify: unexpected delimiter %q", t)
	case string:
		return String(t), nil
	case json.Number:
		return Number(t), nil
	case bool:
		return Bool(t), nil
	case nil:
		return Null{}, nil
	}
	return nil, fmt.Errorf("prettify: unexpected token %T", tok)
}

func decodeObject(dec *json.Decoder) (Value, error) {
	obj := &Object{}
	index := map[string]int{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("prettify: expected object key, found %v", tok)
		}
		v, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		// a repeated key keeps its first position and takes the last value
		if i, ok := index[key]; ok {
			obj.Members[i].Value = v
			continue
		}
		index[key] = len(obj.Members)
		obj.Members = append(obj.Members, Member{Key: key, Value: v})
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return obj, nil
}

func decodeArray(dec *json.Decoder) (Value, error) {
	arr := Array{}
	for dec.More() {
		v, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return arr, nil
}

// formatNumber re-emits a number literal in its canonical form: the
// shortest decimal that round-trips through float64, with exponent
// notation outside [1e-6, 1e21). Values beyond the float64 range become
// null, and negative zero becomes 0.
func formatNumber(lit string) string {
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil && (math.IsInf(f, 0) || math.IsNaN(f)) {
		return "null"
	}
	if f == 0 {
		return "0"
	}
	abs := math.Abs(f)
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	s := strconv.FormatFloat(f, 'e', -1, 64)
	mant, exp, _ := strings.Cut(s, "e")
	return mant + "e" + exp[:1] + strings.TrimLeft(exp[1:], "0")
}
