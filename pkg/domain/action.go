package domain

import (
	"strconv"
	"strings"
)

// Fixed action keys.
const (
	KeyHealth     = "health"
	KeyGreeting   = "greeting"
	KeyFetchTodos = "fetchTodos"
	KeyAddTodo    = "addTodo"
	KeyRandom     = "random"
)

// Prefixes for keys parameterised by a todo id or an operation.
const (
	PrefixToggle    = "toggle-"
	PrefixDelete    = "delete-"
	PrefixCalculate = "calc-"
)

// ToggleKey returns the action key for toggling the todo with the given id.
func ToggleKey(id int) string {
	return PrefixToggle + strconv.Itoa(id)
}

// DeleteKey returns the action key for deleting the todo with the given id.
func DeleteKey(id int) string {
	return PrefixDelete + strconv.Itoa(id)
}

// CalculateKey returns the action key for a calculator operation.
func CalculateKey(op Operation) string {
	return PrefixCalculate + string(op)
}

// ActionKind collapses parameterised keys ("toggle-3", "calc-add") to their
// family ("toggle", "calc"). Used for metric labels.
func ActionKind(key string) string {
	for _, p := range []string{PrefixToggle, PrefixDelete, PrefixCalculate} {
		if strings.HasPrefix(key, p) {
			return strings.TrimSuffix(p, "-")
		}
	}
	return key
}

var failureLabels = map[string]string{
	KeyHealth:     "Backend not reachable",
	KeyGreeting:   "Failed to fetch greeting",
	KeyFetchTodos: "Failed to fetch todos",
	KeyAddTodo:    "Failed to add todo",
	KeyRandom:     "Failed to fetch random number",
	"toggle":      "Failed to toggle todo",
	"delete":      "Failed to delete todo",
	"calc":        "Calculation failed",
}

// FailureLabel returns the human readable prefix used when the action fails.
// Unknown keys fall back to "<key> failed".
func FailureLabel(key string) string {
	if label, ok := failureLabels[ActionKind(key)]; ok {
		return label
	}
	return key + " failed"
}

// FailureMessage formats the message stored in ActionState.LastError.
func FailureMessage(key string, cause error) string {
	return FailureLabel(key) + ": " + cause.Error()
}
