package app

import (
	"github.com/aretw0/conncheck/pkg/action"
	"github.com/aretw0/conncheck/pkg/domain"
)

// Health returns the last successful health check.
func (a *App) Health() (domain.Health, bool) {
	return action.ResultAs[domain.Health](a.ctrl, domain.KeyHealth)
}

// Greeting returns the last successful greeting.
func (a *App) Greeting() (domain.Greeting, bool) {
	return action.ResultAs[domain.Greeting](a.ctrl, domain.KeyGreeting)
}

// Todos returns the last fetched list, empty before the first fetch.
func (a *App) Todos() []domain.Todo {
	todos, ok := action.ResultAs[[]domain.Todo](a.ctrl, domain.KeyFetchTodos)
	if !ok || todos == nil {
		return []domain.Todo{}
	}
	return todos
}

// Calculation returns the result of the most recent successful calculation.
func (a *App) Calculation() (domain.Calculation, bool) {
	a.mu.Lock()
	key := a.lastCalc
	a.mu.Unlock()
	if key == "" {
		return domain.Calculation{}, false
	}
	return action.ResultAs[domain.Calculation](a.ctrl, key)
}

// Random returns the last fetched random number.
func (a *App) Random() (domain.RandomNumber, bool) {
	return action.ResultAs[domain.RandomNumber](a.ctrl, domain.KeyRandom)
}

// State returns a copy of the controller state.
func (a *App) State() domain.ActionState {
	return a.ctrl.State()
}

// IsBusy reports whether key is the action in flight.
func (a *App) IsBusy(key string) bool {
	return a.ctrl.IsBusy(key)
}

// CalculatorBusy reports whether any calculator operation is in flight.
func (a *App) CalculatorBusy() bool {
	return a.ctrl.IsBusyPrefix(domain.PrefixCalculate)
}
