/*
Package session coordinates concurrent access to persisted quiz sessions.

A Manager serialises operations per session ID with reference-counted local
mutexes, optionally backed by a distributed lock so that several replicas can
share one store. Update implements the load, transition, persist cycle used by
every quiz operation: finished sessions are deleted instead of saved.
*/
package session
