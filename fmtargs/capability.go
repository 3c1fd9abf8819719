package fmtargs

import (
	"fmt"
	"reflect"
)

// Capability renders a value into a sink. A field is rendered through exactly
// one capability, chosen by the caller when it asks the descriptor for a child.
type Capability interface {
	Render(s fmt.State, v any) error
}

// The standard capabilities. Each keeps the width, precision and flags of the
// sink it renders into.
var (
	Display  Capability = verbCapability{name: "Display", verb: 'v'}
	Debug    Capability = verbCapability{name: "Debug", verb: 'v', flag: '#'}
	Octal    Capability = verbCapability{name: "Octal", verb: 'o'}
	LowerHex Capability = verbCapability{name: "LowerHex", verb: 'x'}
	UpperHex Capability = verbCapability{name: "UpperHex", verb: 'X'}
	Binary   Capability = verbCapability{name: "Binary", verb: 'b'}
	LowerExp Capability = verbCapability{name: "LowerExp", verb: 'e'}
	UpperExp Capability = verbCapability{name: "UpperExp", verb: 'E'}
	Pointer  Capability = verbCapability{name: "Pointer", verb: 'p'}
)

var capabilities = map[rune]Capability{
	'v': Display,
	'?': Debug,
	'o': Octal,
	'x': LowerHex,
	'X': UpperHex,
	'b': Binary,
	'e': LowerExp,
	'E': UpperExp,
	'p': Pointer,
}

// CapabilityFor returns the capability selected by a format-string verb.
// '?' selects Debug.
func CapabilityFor(verb rune) (Capability, error) {
	c, ok := capabilities[verb]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVerb, verb)
	}

	return c, nil
}

// verbCapability renders with a single fmt verb, optionally forcing one flag
// on top of the ones already set on the sink.
type verbCapability struct {
	name string
	verb rune
	flag rune
}

func (c verbCapability) Render(s fmt.State, v any) error {
	verb := c.verb
	if verb == 'v' && c.flag == 0 && s.Flag('+') {
		verb = signedVerb(v)
	}

	format := fmt.FormatString(s, verb)
	if c.flag != 0 && !s.Flag(int(c.flag)) {
		format = "%" + string(c.flag) + format[1:]
	}

	_, err := fmt.Fprintf(s, format, v)

	return err
}

func (c verbCapability) String() string {
	return c.name
}

// signedVerb returns the verb that prints v with an explicit sign. fmt reads
// '+' on %v as "add field names", which drops the sign of plain numbers.
func signedVerb(v any) rune {
	switch v.(type) {
	case fmt.Formatter, fmt.Stringer:
		return 'v'
	}

	switch reflect.ValueOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return 'd'
	case reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return 'g'
	default:
		return 'v'
	}
}
