package scenario_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	snapstore "github.com/tarantool/go-snapstore"
	"github.com/tarantool/go-snapstore/operation"
	"github.com/tarantool/go-snapstore/scenario"
)

func loadFile(t *testing.T, path string) scenario.Scenario {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	sc, err := scenario.Load(data)
	require.NoError(t, err)

	return sc
}

func TestRun_ReferenceTrace(t *testing.T) {
	t.Parallel()

	sc := loadFile(t, "testdata/reference.yaml")
	assert.Equal(t, "reference trace", sc.Name)

	store := snapstore.New()

	report, err := scenario.Run(store, sc)
	require.NoError(t, err)
	require.NoError(t, report.Err())

	assert.Len(t, report.Results, len(sc.Steps))
	assert.Equal(t, operation.TypeGet, report.Operations[6].Type())
	assert.Equal(t, uint64(1), report.Operations[6].Snapshot())
	assert.Equal(t, []snapstore.SnapshotID{0, 1, 3}, store.Snapshots())
}

func TestRun_ReportsMismatches(t *testing.T) {
	t.Parallel()

	sc, err := scenario.Load([]byte(`
name: wrong expectations
steps:
  - {op: put, key: a, value: apple}
  - {op: snapshot, as: s, expect: {snapshot: 7}}
  - {op: get, key: a, snapshot: s, expect: {value: pear}}
  - {op: delete, key: nope}
  - {op: get, key: a, snapshot: s, expect: {error: KeyNotFound}}
`))
	require.NoError(t, err)

	report, err := scenario.Run(snapstore.New(), sc)
	require.NoError(t, err)

	require.Len(t, report.Mismatches, 4)

	assert.Equal(t, scenario.MismatchError{Step: 1, Field: "snapshot", Expected: "7", Actual: "0"},
		report.Mismatches[0])
	assert.Equal(t, scenario.MismatchError{Step: 2, Field: "value", Expected: `"pear"`, Actual: `"apple"`},
		report.Mismatches[1])
	assert.Equal(t, scenario.MismatchError{Step: 3, Field: "error", Expected: "None", Actual: "KeyNotFound"},
		report.Mismatches[2])
	assert.Equal(t, scenario.MismatchError{Step: 4, Field: "error", Expected: "KeyNotFound", Actual: "None"},
		report.Mismatches[3])

	require.Error(t, report.Err())
	assert.Contains(t, report.Err().Error(), `step 2: value: expected "pear", got "apple"`)
}

func TestLoad_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected error
	}{
		{"unknown op", "steps: [{op: frobnicate}]", scenario.ErrUnknownOp},
		{"put without value", "steps: [{op: put, key: a}]", scenario.ErrInvalidStep},
		{"get without snapshot", "steps: [{op: get, key: a}]", scenario.ErrInvalidStep},
		{"unknown error kind", "steps: [{op: snapshot, expect: {error: Oops}}]", scenario.ErrInvalidStep},
		{"numeric snapshot name", `steps: [{op: snapshot, as: "5"}]`, scenario.ErrInvalidStep},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := scenario.Load([]byte(tt.input))
			require.ErrorIs(t, err, tt.expected)

			var stepErr scenario.StepError
			require.ErrorAs(t, err, &stepErr)
			assert.Equal(t, 0, stepErr.Step)
		})
	}
}

func TestLoad_UnknownField(t *testing.T) {
	t.Parallel()

	_, err := scenario.Load([]byte("steps: [{op: snapshot, bogus: 1}]"))
	require.Error(t, err)
}

func TestRun_UnboundSnapshotName(t *testing.T) {
	t.Parallel()

	sc, err := scenario.Load([]byte("steps: [{op: snapshot}, {op: get, key: a, snapshot: later}]"))
	require.NoError(t, err)

	report, err := scenario.Run(snapstore.New(), sc)
	require.ErrorIs(t, err, scenario.ErrUnknownSnapshotName)

	var stepErr scenario.StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, 1, stepErr.Step)
	assert.Len(t, report.Results, 1)
}
