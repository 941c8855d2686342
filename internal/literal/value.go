// Package literal parses the data-only subset of Python literal syntax.
//
// Parse accepts mappings, lists, tuples, sets, strings, bytes, integers,
// floats, complex numbers, booleans, None and Ellipsis. It never resolves
// names or evaluates expressions: the only call accepted is the empty set
// constructor set(), and the only operators are a single unary sign on a
// number and the real/imaginary sum that spells a complex literal.
//
// Parsed values use the following Go representations:
//
//	None      NoneType (the None value)
//	...       EllipsisType (the Ellipsis value)
//	bool      bool
//	str       string
//	bytes     Bytes
//	int       *big.Int
//	float     float64
//	complex   complex128
//	list      List
//	tuple     Tuple
//	set       *Set
//	dict      *Dict
package literal

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Value is any value produced by Parse.
type Value interface{}

// NoneType is the type of None.
type NoneType struct{}

// EllipsisType is the type of the Ellipsis constant (...).
type EllipsisType struct{}

var (
	// None is the parsed form of the None keyword.
	None = NoneType{}
	// Ellipsis is the parsed form of the ... constant.
	Ellipsis = EllipsisType{}
)

// Bytes is a bytes literal such as b'abc'.
type Bytes []byte

// List is a list literal.
type List []Value

// Tuple is a tuple literal.
type Tuple []Value

// Set is a set literal. Members keep first-insertion order.
type Set struct {
	items []Value
	index map[string]int
}

// NewSet returns an empty set.
func NewSet() *Set {
	return &Set{index: make(map[string]int)}
}

// Add inserts v unless an equal member is already present.
func (s *Set) Add(v Value) error {
	key, err := HashKey(v)
	if err != nil {
		return err
	}
	if _, ok := s.index[key]; ok {
		return nil
	}
	s.index[key] = len(s.items)
	s.items = append(s.items, v)
	return nil
}

// Items returns the members in insertion order.
func (s *Set) Items() []Value {
	out := make([]Value, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of members.
func (s *Set) Len() int { return len(s.items) }

// Dict is a mapping literal. Keys keep the position of their first
// insertion; a repeated key replaces the value in place.
type Dict struct {
	keys   []Value
	values []Value
	index  map[string]int
}

// NewDict returns an empty mapping.
func NewDict() *Dict {
	return &Dict{index: make(map[string]int)}
}

// Set stores value under key.
func (d *Dict) Set(key, value Value) error {
	h, err := HashKey(key)
	if err != nil {
		return err
	}
	if i, ok := d.index[h]; ok {
		d.values[i] = value
		return nil
	}
	d.index[h] = len(d.keys)
	d.keys = append(d.keys, key)
	d.values = append(d.values, value)
	return nil
}

// Get returns the value stored under key.
func (d *Dict) Get(key Value) (Value, bool) {
	h, err := HashKey(key)
	if err != nil {
		return nil, false
	}
	i, ok := d.index[h]
	if !ok {
		return nil, false
	}
	return d.values[i], true
}

// Len returns the number of entries.
func (d *Dict) Len() int { return len(d.keys) }

// Keys returns the keys in insertion order.
func (d *Dict) Keys() []Value {
	out := make([]Value, len(d.keys))
	copy(out, d.keys)
	return out
}

// Values returns the values in key order.
func (d *Dict) Values() []Value {
	out := make([]Value, len(d.values))
	copy(out, d.values)
	return out
}

// Entry returns the i-th key and value.
func (d *Dict) Entry(i int) (Value, Value) {
	return d.keys[i], d.values[i]
}

// Truthy reports whether v is true in a boolean context: None, False,
// numeric zero and empty strings or containers are false.
func Truthy(v Value) bool {
	switch x := v.(type) {
	case nil, NoneType:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case Bytes:
		return len(x) > 0
	case *big.Int:
		return x.Sign() != 0
	case float64:
		return x != 0
	case complex128:
		return x != 0
	case List:
		return len(x) > 0
	case Tuple:
		return len(x) > 0
	case *Set:
		return x.Len() > 0
	case *Dict:
		return x.Len() > 0
	default:
		return true
	}
}

// TypeName returns the Python type name of v, used in error messages.
func TypeName(v Value) string {
	switch v.(type) {
	case nil, NoneType:
		return "NoneType"
	case EllipsisType:
		return "ellipsis"
	case bool:
		return "bool"
	case string:
		return "str"
	case Bytes:
		return "bytes"
	case *big.Int:
		return "int"
	case float64:
		return "float"
	case complex128:
		return "complex"
	case List:
		return "list"
	case Tuple:
		return "tuple"
	case *Set:
		return "set"
	case *Dict:
		return "dict"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// HashKey returns a key under which v is stored in a Set or Dict.
// Values that compare equal share a key, so True, 1, 1.0 and 1+0j
// collide. Lists, sets and dicts are unhashable.
func HashKey(v Value) (string, error) {
	switch x := v.(type) {
	case nil, NoneType:
		return "none", nil
	case EllipsisType:
		return "ellipsis", nil
	case string:
		return "s:" + x, nil
	case Bytes:
		return "b:" + string(x), nil
	case bool:
		if x {
			return "n:1", nil
		}
		return "n:0", nil
	case *big.Int:
		return "n:" + x.String(), nil
	case float64:
		return floatKey(x), nil
	case complex128:
		if imag(x) == 0 {
			return floatKey(real(x)), nil
		}
		return "c:" + strconv.FormatComplex(x, 'g', -1, 128), nil
	case Tuple:
		parts := make([]string, len(x))
		for i, item := range x {
			k, err := HashKey(item)
			if err != nil {
				return "", err
			}
			parts[i] = strconv.Quote(k)
		}
		return "t:(" + strings.Join(parts, ",") + ")", nil
	default:
		return "", &Error{Kind: KindType, Offset: -1, Msg: fmt.Sprintf("unhashable type: '%s'", TypeName(v))}
	}
}

func floatKey(f float64) string {
	if !math.IsInf(f, 0) && !math.IsNaN(f) && f == math.Trunc(f) {
		if bf := new(big.Float).SetFloat64(f); bf.IsInt() {
			i, _ := bf.Int(nil)
			return "n:" + i.String()
		}
	}
	return "f:" + strconv.FormatFloat(f, 'g', -1, 64)
}
