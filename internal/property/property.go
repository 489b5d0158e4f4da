package property

import "errors"

// UniformPrefix is prepended to a property's name to form its uniform name.
const UniformPrefix = "prop_"

// Defaults used when a numeric property omits its editing range.
const (
	DefaultValue = 1
	DefaultMin   = 1
	DefaultMax   = 100
	DefaultStep  = 1
)

var (
	// ErrTypeMismatch is returned when SetValue receives a Go value the
	// property's kind cannot hold.
	ErrTypeMismatch = errors.New("property value has the wrong type")

	// ErrUnknownOption is returned when an enum is set to text that is not
	// one of its options.
	ErrUnknownOption = errors.New("unknown enum option")
)

// Property is a named, typed setting owned by a single node.
type Property struct {
	Name        string
	DisplayName string

	value    Value
	onChange func(*Property)
}

// New creates a property holding v.
func New(name, displayName string, v Value) *Property {
	if v == nil {
		panic("property: nil value for " + name)
	}
	return &Property{Name: name, DisplayName: displayName, value: v}
}

// NewFloat creates a Float property.
func NewFloat(name, displayName string, value, minValue, maxValue, step float32) *Property {
	return New(name, displayName, &Float{Value: value, Min: minValue, Max: maxValue, Step: step})
}

// NewInt creates an Int property.
func NewInt(name, displayName string, value, minValue, maxValue, step int32) *Property {
	return New(name, displayName, &Int{Value: value, Min: minValue, Max: maxValue, Step: step})
}

// NewBool creates a Bool property.
func NewBool(name, displayName string, value bool) *Property {
	return New(name, displayName, &Bool{Value: value})
}

// NewEnum creates an Enum property with the given option selected.
func NewEnum(name, displayName string, options []string, index int) *Property {
	return New(name, displayName, &Enum{Options: append([]string(nil), options...), Index: index})
}

// NewColor creates a Color property.
func NewColor(name, displayName string, value RGBA) *Property {
	return New(name, displayName, &Color{Value: value})
}

// NewString creates a String property.
func NewString(name, displayName, value string) *Property {
	return New(name, displayName, &String{Value: value})
}

// Kind reports the property's kind.
func (p *Property) Kind() Kind { return p.value.Kind() }

// Value returns the underlying variant. Use a type switch or the Kind to get
// at constraints such as Float.Min.
func (p *Property) Value() Value { return p.value }

// Interface returns the current value as a plain Go value.
func (p *Property) Interface() any { return p.value.Interface() }

// SetValue stores v and notifies the owner. No range or step checks are made;
// only values of an incompatible Go type are rejected, in which case the
// owner is not notified.
func (p *Property) SetValue(v any) error {
	if err := p.value.assign(v); err != nil {
		return err
	}
	if p.onChange != nil {
		p.onChange(p)
	}
	return nil
}

// OnChange installs the owner's change hook, replacing any previous one.
func (p *Property) OnChange(fn func(*Property)) { p.onChange = fn }

// UniformName is the name the property is declared under in shader source.
func (p *Property) UniformName() string { return UniformPrefix + p.Name }

// Declaration returns the uniform declaration line for the property, or ""
// for kinds without a uniform.
func (p *Property) Declaration() string {
	t := p.Kind().UniformType()
	if t == "" {
		return ""
	}
	return "uniform " + t + " " + p.UniformName() + ";\n"
}

// Bind pushes the current value into u under the property's uniform name.
func (p *Property) Bind(u Uniforms) {
	p.value.bind(u, p.UniformName())
}

// Clone returns an independent copy without the change hook.
func (p *Property) Clone() *Property {
	return &Property{Name: p.Name, DisplayName: p.DisplayName, value: p.value.clone()}
}
