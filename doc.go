/*
Package conncheck exercises a backend's REST endpoints through a remote-action
controller that tracks, per action, whether it is in flight, its last error and
its last successful result.

# Concept

Every user intent (check health, fetch a greeting, add a todo, calculate, ...)
is an action identified by a string key. The controller marks the key busy,
runs the request, stores the payload under the key on success, or records a
human readable failure such as "Backend not reachable: ..." on error.
Mutations on the todo list are followed by a full re-fetch of the list.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/conncheck"
	)

	func main() {
		ctx := context.Background()
		a, err := conncheck.New(ctx, "http://localhost:5000")
		if err != nil {
			log.Fatal(err)
		}

		if err := a.CheckHealth(ctx); err != nil {
			fmt.Println(a.State().LastError)
			return
		}
		health, _ := a.Health()
		fmt.Println(health.Status)
	}

# Packages

  - pkg/action: the controller and its state.
  - pkg/app: the demo actions and views.
  - pkg/client: the HTTP backend client with OpenAPI response validation.
  - pkg/adapters/stub: a reference backend serving the same endpoints.
  - pkg/adapters/mcp: the actions exposed as Model Context Protocol tools.
  - pkg/observability: Prometheus metrics and logging hooks.
*/
package conncheck
