package validate_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pathlab/parser"
	"github.com/katalvlaran/pathlab/validate"
)

func check(text string) error {
	return validate.Validate(parser.Parse(text).Graph)
}

func reasonOf(t *testing.T, err error) *validate.Error {
	t.Helper()
	var verr *validate.Error
	require.True(t, errors.As(err, &verr), "want *validate.Error, got %v", err)
	return verr
}

func TestValidate_Accepts(t *testing.T) {
	cases := map[string]string{
		"directed road network":    "A -> B 4\nA -> C 2\nB -> C 5\nB -> D 10\nC -> D 3\n",
		"directed plus undirected": "A -> B 3\nA -- B 3\n",
		"undirected plus bidir":    "A -- B 3\nA <-> B 3\n",
		"opposing directed":        "A -> B 1\nB -> A 1\n",
		"single undirected":        "A -- B 1\n",
		"empty":                    "",
	}
	for name, text := range cases {
		t.Run(name, func(t *testing.T) {
			assert.NoError(t, check(text))
		})
	}
}

func TestValidate_Disconnected(t *testing.T) {
	err := check("A -> B 1\nC -> D 1\n")
	assert.ErrorIs(t, err, validate.ErrDisconnected)

	verr := reasonOf(t, err)
	assert.Equal(t, validate.Disconnected, verr.Reason)
	assert.Equal(t, []string{"C", "D"}, verr.Unvisited)
	assert.Nil(t, verr.Edge)
	assert.Contains(t, err.Error(), "unreachable C, D")
}

// The check walks from the first node only; a directed edge into the root's
// component from elsewhere does not make that node reachable.
func TestValidate_ConnectivityFromFirstNode(t *testing.T) {
	assert.ErrorIs(t, check("A -> B 1\nC -> B 1\n"), validate.ErrDisconnected)
	assert.NoError(t, check("C -> B 1\nC -> A 1\n"))
	assert.NoError(t, check("A -> B 1\nC -- B 1\n"))
}

func TestValidate_Duplicate(t *testing.T) {
	err := check("A -> B 3\nA -> B 3\n")
	assert.ErrorIs(t, err, validate.ErrDuplicateEdge)
	verr := reasonOf(t, err)
	require.NotNil(t, verr.Edge)
	assert.Equal(t, "A -> B 3", verr.Edge.String())

	assert.ErrorIs(t, check("A -- B 3\nA -- B 5\n"), validate.ErrDuplicateEdge)
	assert.ErrorIs(t, check("A -- B 3\nB -- A 5\n"), validate.ErrDuplicateEdge)
	assert.ErrorIs(t, check("A <-> B 3\nB <-> A 3\n"), validate.ErrDuplicateEdge)
}

// The later of two colliding edges is the one reported.
func TestValidate_DuplicateReportsLaterEdge(t *testing.T) {
	verr := reasonOf(t, check("A -- B 3\nB -- C 1\nB -- A 9\n"))
	assert.Equal(t, int64(9), verr.Edge.Weight)
	assert.Equal(t, "B", verr.Edge.Source)
}

func TestValidate_NonPositiveWeight(t *testing.T) {
	for _, text := range []string{"A -> B 0\n", "A -> B -2\n", "A -- B 0\n"} {
		err := check(text)
		assert.ErrorIs(t, err, validate.ErrNonPositiveWeight, text)
		assert.Equal(t, validate.NonPositiveWeight, reasonOf(t, err).Reason)
	}
}

func TestValidate_InvalidWeight(t *testing.T) {
	for _, text := range []string{"A -> B 2.5\n", "A -> B x\n", "A -> B 99999999999999999999\n"} {
		err := check(text)
		assert.ErrorIs(t, err, validate.ErrInvalidWeight, text)
		verr := reasonOf(t, err)
		assert.Equal(t, validate.InvalidWeight, verr.Reason)
		assert.NotEmpty(t, verr.Edge.Literal)
	}
	assert.Contains(t, check("A -> B 2.5\n").Error(), `"2.5"`)
}

// Weight violations are reported before duplicates and connectivity.
func TestValidate_Order(t *testing.T) {
	assert.ErrorIs(t, check("A -> B 1\nA -> B 1\nC -> D 0\n"), validate.ErrNonPositiveWeight)
	assert.ErrorIs(t, check("A -> B 1\nA -> B 1\nC -> D 1\n"), validate.ErrDuplicateEdge)
}

func TestReason_String(t *testing.T) {
	assert.Equal(t, "DuplicateEdge", validate.DuplicateEdge.String())
	b, err := validate.Disconnected.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "Disconnected", string(b))
}
