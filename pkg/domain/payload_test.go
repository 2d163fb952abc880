package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculation_String(t *testing.T) {
	tests := []struct {
		name string
		calc Calculation
		want string
	}{
		{"divide", Calculation{A: 10, B: 5, Operation: OpDivide, Result: 2}, "10 divide 5 = 2"},
		{"fraction", Calculation{A: 1, B: 4, Operation: OpDivide, Result: 0.25}, "1 divide 4 = 0.25"},
		{"negative", Calculation{A: 3, B: 7, Operation: OpSubtract, Result: -4}, "3 subtract 7 = -4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.calc.String())
		})
	}
}

func TestParseOperation(t *testing.T) {
	for _, op := range Operations {
		got, err := ParseOperation(string(op))
		assert.NoError(t, err)
		assert.Equal(t, op, got)
	}

	_, err := ParseOperation("modulo")
	assert.ErrorIs(t, err, ErrUnknownOperation)
}

func TestFailureMessage(t *testing.T) {
	cause := errors.New("connection refused")

	assert.Equal(t, "Backend not reachable: connection refused", FailureMessage(KeyHealth, cause))
	assert.Equal(t, "Failed to fetch greeting: connection refused", FailureMessage(KeyGreeting, cause))
	assert.Equal(t, "Failed to toggle todo: connection refused", FailureMessage(ToggleKey(3), cause))
	assert.Equal(t, "Calculation failed: connection refused", FailureMessage(CalculateKey(OpAdd), cause))
	assert.Equal(t, "reindex failed: connection refused", FailureMessage("reindex", cause))
}

func TestActionKind(t *testing.T) {
	assert.Equal(t, "toggle", ActionKind("toggle-12"))
	assert.Equal(t, "delete", ActionKind(DeleteKey(1)))
	assert.Equal(t, "calc", ActionKind(CalculateKey(OpMultiply)))
	assert.Equal(t, KeyHealth, ActionKind(KeyHealth))
}
