// Package marshaller converts typed values to and from text formats.
package marshaller

import (
	"bytes"
	"errors"
	"io"

	"gopkg.in/yaml.v3"
)

const formatYAML = "yaml"

// TypedMarshaller is a generic interface for typed marshalling operations.
type TypedMarshaller[T any] interface {
	Format() string
	Marshal(data T) ([]byte, error)
	Unmarshal(data []byte) (T, error)
}

// TypedYAMLMarshaller is a YAML marshaller for values of type T.
type TypedYAMLMarshaller[T any] struct {
	strict bool
}

// NewTypedYAMLMarshaller creates a marshaller that ignores unknown fields.
func NewTypedYAMLMarshaller[T any]() TypedYAMLMarshaller[T] {
	return TypedYAMLMarshaller[T]{strict: false}
}

// NewStrictYAMLMarshaller creates a marshaller that rejects documents with
// fields not present in T.
func NewStrictYAMLMarshaller[T any]() TypedYAMLMarshaller[T] {
	return TypedYAMLMarshaller[T]{strict: true}
}

// Format returns "yaml".
func (m TypedYAMLMarshaller[T]) Format() string {
	return formatYAML
}

// Marshal serializes the typed data to YAML format.
func (m TypedYAMLMarshaller[T]) Marshal(data T) ([]byte, error) {
	marshalled, err := yaml.Marshal(data)
	if err != nil {
		return nil, errMarshal(formatYAML, err)
	}

	return marshalled, nil
}

// Unmarshal deserializes a YAML document into a typed object. An empty
// document yields the zero value.
func (m TypedYAMLMarshaller[T]) Unmarshal(data []byte) (T, error) {
	var out T

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(m.strict)

	err := decoder.Decode(&out)
	if err != nil && !errors.Is(err, io.EOF) {
		var zero T
		return zero, errUnmarshal(formatYAML, err)
	}

	return out, nil
}
