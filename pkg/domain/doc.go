/*
Package domain contains the core types shared by the conncheck controller, the
backend client and the adapters.

It is kept free of I/O so that every layer (CLI, MCP, reference backend) can
depend on it without pulling transport concerns.

# Key Entities

  - ActionState: busy key, last error and per-action results owned by a controller.
  - Action keys: the identifiers of the user-triggered remote operations.
  - Payloads: Health, Greeting, Todo, Calculation and RandomNumber as returned by the backend.
  - ActionEvent / LifecycleHooks: observation points fired when an action starts and settles.
*/
package domain
