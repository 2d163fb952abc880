/*
Package observability provides tools for monitoring the action controller.

It includes Prometheus metrics driven by lifecycle hooks, structured logging
hooks, and a helper to chain several hook sets onto one controller.
*/
package observability
