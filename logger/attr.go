package logger

import "github.com/philipp01105/attrlog/core"

// Attribute constructors for convenience.

// String creates a string attribute.
func String(name, value string) core.Attribute {
	return core.Attribute{Name: name, Value: core.String(value)}
}

// Int creates a signed integer attribute.
func Int(name string, value int) core.Attribute {
	return core.Attribute{Name: name, Value: core.Int64(int64(value))}
}

// Int64 creates a signed integer attribute.
func Int64(name string, value int64) core.Attribute {
	return core.Attribute{Name: name, Value: core.Int64(value)}
}

// Uint64 creates an unsigned integer attribute.
func Uint64(name string, value uint64) core.Attribute {
	return core.Attribute{Name: name, Value: core.Uint64(value)}
}

// Float64 creates a floating point attribute.
func Float64(name string, value float64) core.Attribute {
	return core.Attribute{Name: name, Value: core.Float64(value)}
}

// Bool creates a boolean attribute.
func Bool(name string, value bool) core.Attribute {
	return core.Attribute{Name: name, Value: core.Bool(value)}
}

// Nil creates a null attribute.
func Nil(name string) core.Attribute {
	return core.Attribute{Name: name, Value: core.Nil()}
}

// Err creates an "error" attribute from err's message.
func Err(err error) core.Attribute {
	if err == nil {
		return core.Attribute{Name: "error", Value: core.Nil()}
	}
	return core.Attribute{Name: "error", Value: core.String(err.Error())}
}
