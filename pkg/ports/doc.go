/*
Package ports defines the interfaces between conncheck's core and its adapters.

# Key Interfaces

  - Backend: the remote REST API consumed by the demo actions (implemented by pkg/client).
  - TodoStore: persistence for the reference backend's todo list (memory and Redis adapters).
  - DistributedLocker: cross-replica locking used by the Redis todo store.
*/
package ports
