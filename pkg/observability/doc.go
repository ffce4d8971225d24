/*
Package observability turns routing lifecycle events into logs and Prometheus metrics.

Both are delivered as domain.LifecycleHooks so they plug into a Router with
ribs.WithLifecycleHooks; Chain merges several hook sets into one.
*/
package observability
