/*
Package stub is a reference implementation of the backend endpoints that
conncheck consumes.

It exists so that the client, the console and the MCP adapter can be exercised
without the real service: health, greeting, todo CRUD, calculator and random
number, plus /openapi.yaml and /metrics. Todos are kept in any ports.TodoStore
(memory by default, Redis when several replicas share state).
*/
package stub
