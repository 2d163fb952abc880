package domain

import (
	"fmt"
	"strconv"
)

// Health is the body of GET /api/health.
type Health struct {
	Status  string `json:"Status"`
	Message string `json:"Message"`
}

// Greeting is the body of GET /api/greeting.
// Timestamp is kept verbatim; backends disagree on its layout.
type Greeting struct {
	Greeting  string `json:"Greeting"`
	Timestamp string `json:"Timestamp"`
}

// Todo is one entry of GET /api/todos.
type Todo struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	IsCompleted bool   `json:"isCompleted"`
}

// NewTodo is the body of POST /api/todos.
type NewTodo struct {
	Title string `json:"title"`
}

// Operation is a calculator operator.
type Operation string

const (
	OpAdd      Operation = "add"
	OpSubtract Operation = "subtract"
	OpMultiply Operation = "multiply"
	OpDivide   Operation = "divide"
)

// Operations lists the supported operators in display order.
var Operations = []Operation{OpAdd, OpSubtract, OpMultiply, OpDivide}

// Valid reports whether op is one of the supported operators.
func (op Operation) Valid() bool {
	switch op {
	case OpAdd, OpSubtract, OpMultiply, OpDivide:
		return true
	}
	return false
}

// ParseOperation converts a string to an Operation.
func ParseOperation(s string) (Operation, error) {
	op := Operation(s)
	if !op.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownOperation, s)
	}
	return op, nil
}

// Calculation is the body of GET /api/calculate.
type Calculation struct {
	A         float64   `json:"A"`
	B         float64   `json:"B"`
	Operation Operation `json:"Operation"`
	Result    float64   `json:"Result"`
}

// String renders the calculation as "10 divide 5 = 2".
func (c Calculation) String() string {
	return fmt.Sprintf("%s %s %s = %s", formatNumber(c.A), c.Operation, formatNumber(c.B), formatNumber(c.Result))
}

// RandomNumber is the body of GET /api/random.
type RandomNumber struct {
	RandomNumber int `json:"RandomNumber"`
}

// Default bounds requested by the demo.
const (
	RandomMin = 1
	RandomMax = 100
)

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
