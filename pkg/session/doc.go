/*
Package session implements session management and persistence orchestration.

It provides high-level abstractions for handling concurrent access to
provisioning conversations across multiple replicas, combining per-session
in-process locks with optional distributed locking over a pluggable store.
Turns for one session always run one at a time; different sessions proceed
in parallel.
*/
package session
