/*
Package capsule persists router snapshots under stable capsule keys.

A capsule key names one router instance across process restarts (a window, a tab, a
user session). The Manager serialises access per key with reference-counted local
mutexes and, when configured, a distributed lock so that replicas sharing a store
never interleave read-modify-write cycles.
*/
package capsule
