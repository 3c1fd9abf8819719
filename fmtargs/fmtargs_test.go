package fmtargs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type point struct {
	X    int
	Y    int
	Size uint
}

// pointDescriptor is a hand-written descriptor in the shape the generator
// emits.
type pointDescriptor struct{}

func (pointDescriptor) ValidateName(name string) (int, bool) {
	switch name {
	case "x":
		return 0, true
	case "y":
		return 1, true
	case "size":
		return 2, true
	default:
		return 0, false
	}
}

func (pointDescriptor) ValidateIndex(index int) bool {
	return index >= 0 && index < 3
}

func (pointDescriptor) Child(index int, c Capability) RenderFunc[point] {
	switch index {
	case 0:
		return Combine(c, func(r *point) *int { return &r.X })
	case 1:
		return Combine(c, func(r *point) *int { return &r.Y })
	case 2:
		return Combine(c, func(r *point) *uint { return &r.Size })
	default:
		panic(BadIndex(index))
	}
}

func (pointDescriptor) AsSize(index int) (SizeFunc[point], bool) {
	switch index {
	case 2:
		return AsSize(func(r *point) *uint { return &r.Size }), true
	case 0, 1:
		return nil, false
	default:
		panic(BadIndex(index))
	}
}

func (point) FormatArgs() Descriptor[point] {
	return pointDescriptor{}
}

// sign has its own String method, which wins over the numeric verb.
type sign int

func (s sign) String() string {
	return fmt.Sprintf("sign(%d)", int(s))
}

func TestCapabilities(t *testing.T) {
	tests := []struct {
		name   string
		c      Capability
		format string
		value  any
		want   string
	}{
		{"display", Display, "%v", 255, "255"},
		{"display width", Display, "%5v", 255, "  255"},
		{"display left", Display, "%-5v|", 255, "255  |"},
		{"debug", Debug, "%v", "s", `"s"`},
		{"debug keeps flag", Debug, "%#v", "s", `"s"`},
		{"debug struct", Debug, "%v", point{X: 1}, "fmtargs.point{X:1, Y:0, Size:0x0}"},
		{"octal", Octal, "%v", 8, "10"},
		{"octal alt", Octal, "%#v", 8, "010"},
		{"lower hex", LowerHex, "%v", 255, "ff"},
		{"lower hex alt", LowerHex, "%#v", 255, "0xff"},
		{"upper hex", UpperHex, "%v", 255, "FF"},
		{"upper hex padded", UpperHex, "%04v", 255, "00FF"},
		{"binary", Binary, "%v", 5, "101"},
		{"lower exp", LowerExp, "%.1v", 1234.5, "1.2e+03"},
		{"upper exp", UpperExp, "%.1v", 1234.5, "1.2E+03"},
		{"plus int", Display, "%+v", 3, "+3"},
		{"plus negative", Display, "%+v", -3, "-3"},
		{"plus uint padded", Display, "%+4v", uint(7), "  +7"},
		{"plus float", Display, "%+v", 1.5, "+1.5"},
		{"plus float precision", Display, "%+.2v", 2.0, "+2"},
		{"plus struct keeps field names", Display, "%+v", point{X: 1}, "{X:1 Y:0 Size:0}"},
		{"plus string", Display, "%+v", "s", "s"},
		{"plus stringer", Display, "%+v", sign(4), "sign(4)"},
		{"plus debug", Debug, "%+v", 3, "3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := tt.value
			f := Bind(&v, func(r *any, s fmt.State) error {
				return tt.c.Render(s, *r)
			})
			assert.Equal(t, tt.want, fmt.Sprintf(tt.format, f))
		})
	}
}

func TestCapabilityFor(t *testing.T) {
	for verb, want := range map[rune]Capability{
		'v': Display,
		'?': Debug,
		'o': Octal,
		'x': LowerHex,
		'X': UpperHex,
		'b': Binary,
		'e': LowerExp,
		'E': UpperExp,
		'p': Pointer,
	} {
		got, err := CapabilityFor(verb)
		require.NoError(t, err, string(verb))
		assert.Equal(t, want, got, string(verb))
	}

	_, err := CapabilityFor('q')
	assert.ErrorIs(t, err, ErrUnknownVerb)
}

func TestCapabilityString(t *testing.T) {
	assert.Equal(t, "Debug", fmt.Sprint(Debug))
	assert.Equal(t, "UpperHex", fmt.Sprint(UpperHex))
}

func TestCombine(t *testing.T) {
	p := point{X: 10, Y: -4}

	f := Combine(LowerHex, func(r *point) *int { return &r.X })
	assert.Equal(t, "a", fmt.Sprint(Bind(&p, f)))

	p.X = 11
	assert.Equal(t, "b", fmt.Sprint(Bind(&p, f)))
}

func TestAsSize(t *testing.T) {
	p := point{Size: 3}

	f := AsSize(func(r *point) *uint { return &r.Size })
	assert.Same(t, &p.Size, f(&p))

	*f(&p) = 5
	assert.Equal(t, uint(5), p.Size)
}

func TestBind_Error(t *testing.T) {
	r := 0
	f := Bind(&r, func(*int, fmt.State) error { return errors.New("boom") })

	assert.Equal(t, "%!(ERROR=boom)", fmt.Sprint(f))
}

func TestIndexError(t *testing.T) {
	err := BadIndex(7)

	assert.EqualError(t, err, "bad index 7")

	var target IndexError
	require.ErrorAs(t, fmt.Errorf("wrapped: %w", err), &target)
	assert.Equal(t, 7, target.Index)

	// Panic values for the same index compare equal.
	assert.True(t, BadIndex(7) == BadIndex(7))
	assert.False(t, BadIndex(7) == BadIndex(8))
}

func TestDescriptorOf_PanicValue(t *testing.T) {
	d := DescriptorOf[point]()

	var got any

	func() {
		defer func() { got = recover() }()

		d.Child(5, Display)
	}()

	require.IsType(t, IndexError{}, got)
	assert.Equal(t, BadIndex(5), got)
}

func TestDescriptorOf(t *testing.T) {
	d := DescriptorOf[point]()
	p := point{X: 1, Y: 2, Size: 3}

	index, ok := d.ValidateName("y")
	require.True(t, ok)
	assert.Equal(t, "2", fmt.Sprint(Bind(&p, d.Child(index, Display))))

	assert.PanicsWithValue(t, BadIndex(3), func() { d.Child(3, Display) })
	assert.PanicsWithValue(t, BadIndex(-1), func() { d.AsSize(-1) })

	_, ok = d.AsSize(0)
	assert.False(t, ok)
}

func TestResolve(t *testing.T) {
	d := pointDescriptor{}

	tests := []struct {
		ref       string
		wantIndex int
		wantOK    bool
	}{
		{"x", 0, true},
		{"size", 2, true},
		{"2", 2, true},
		{"3", 0, false},
		{"007", 0, false},
		{"+1", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			index, ok := Resolve[point](d, tt.ref)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantIndex, index)
		})
	}
}
