package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/conncheck/pkg/app"
	"github.com/aretw0/conncheck/pkg/domain"
)

// BusyLabels maps action kinds to the progress text shown while they run.
var BusyLabels = map[string]string{
	domain.KeyHealth:     "Checking...",
	domain.KeyGreeting:   "Loading...",
	domain.KeyFetchTodos: "Refreshing...",
	domain.KeyAddTodo:    "Adding...",
	domain.KeyRandom:     "Generating...",
	"toggle":             "Updating...",
	"delete":             "Deleting...",
	"calc":               "Calculating...",
}

// BusyLine returns the progress text for key, or "" when idle.
func BusyLine(key string) string {
	if key == "" {
		return ""
	}
	if label, ok := BusyLabels[domain.ActionKind(key)]; ok {
		return fmt.Sprintf("%s (%s)", label, key)
	}
	return fmt.Sprintf("Working... (%s)", key)
}

// RenderView renders the app state as markdown.
func RenderView(a *app.App) string {
	var b strings.Builder
	st := a.State()

	b.WriteString("# Backend connection test\n\n")

	if st.LastError != "" {
		fmt.Fprintf(&b, "> **Error:** %s\n\n", st.LastError)
	}

	b.WriteString("## Health\n\n")
	if h, ok := a.Health(); ok {
		fmt.Fprintf(&b, "**%s**: %s\n\n", h.Status, h.Message)
	} else {
		b.WriteString("_not checked_\n\n")
	}

	b.WriteString("## Greeting\n\n")
	if g, ok := a.Greeting(); ok {
		fmt.Fprintf(&b, "%s\n\n_%s_\n\n", g.Greeting, g.Timestamp)
	} else {
		b.WriteString("_none yet_\n\n")
	}

	if a.Mode() == app.ModeBasic {
		return b.String()
	}

	b.WriteString("## Todos\n\n")
	todos := a.Todos()
	if len(todos) == 0 {
		b.WriteString("_no todos_\n\n")
	} else {
		for _, t := range todos {
			mark := " "
			if t.IsCompleted {
				mark = "x"
			}
			fmt.Fprintf(&b, "- [%s] %d. %s\n", mark, t.ID, t.Title)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Calculator\n\n")
	if c, ok := a.Calculation(); ok {
		fmt.Fprintf(&b, "`%s`\n\n", c.String())
	} else {
		b.WriteString("_no calculation yet_\n\n")
	}

	b.WriteString("## Random number\n\n")
	if n, ok := a.Random(); ok {
		fmt.Fprintf(&b, "**%d**\n\n", n.RandomNumber)
	} else {
		b.WriteString("_none yet_\n\n")
	}

	return b.String()
}
