package marshaller_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tarantool/go-snapstore/marshaller"
)

type TestStruct struct {
	Name  string   `yaml:"name"`
	Value int      `yaml:"value"`
	Tags  []string `yaml:"tags,omitempty"`
}

func TestTypedYAMLMarshaller_Marshal(t *testing.T) {
	t.Parallel()

	marsh := marshaller.NewTypedYAMLMarshaller[TestStruct]()
	assert.Equal(t, "yaml", marsh.Format())

	result, err := marsh.Marshal(TestStruct{Name: "test", Value: 42, Tags: []string{"tag1", "tag2"}})
	require.NoError(t, err)

	expectedYaml := `name: test
value: 42
tags:
    - tag1
    - tag2
`
	require.YAMLEq(t, expectedYaml, string(result))
}

func TestTypedYAMLMarshaller_Unmarshal(t *testing.T) {
	t.Parallel()

	marsh := marshaller.NewTypedYAMLMarshaller[TestStruct]()

	out, err := marsh.Unmarshal([]byte("name: x\nvalue: 7\nextra: ignored\n"))
	require.NoError(t, err)
	assert.Equal(t, TestStruct{Name: "x", Value: 7, Tags: nil}, out)

	out, err = marsh.Unmarshal(nil)
	require.NoError(t, err)
	assert.Equal(t, TestStruct{Name: "", Value: 0, Tags: nil}, out)
}

func TestTypedYAMLMarshaller_UnmarshalInvalid(t *testing.T) {
	t.Parallel()

	invalidYaml := `
name: 123
     value: true
`

	_, err := marshaller.NewTypedYAMLMarshaller[TestStruct]().Unmarshal([]byte(invalidYaml))
	require.Error(t, err)

	var unmarshalErr marshaller.UnmarshalError
	require.ErrorAs(t, err, &unmarshalErr)
	assert.Equal(t, "yaml", unmarshalErr.Format)
}

func TestStrictYAMLMarshaller_RejectsUnknownFields(t *testing.T) {
	t.Parallel()

	_, err := marshaller.NewStrictYAMLMarshaller[TestStruct]().Unmarshal([]byte("name: x\nextra: 1\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to unmarshal yaml")
}
