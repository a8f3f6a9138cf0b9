/*
Package ports defines the driven ports (interfaces) of QuizFlow.

These interfaces decouple the quiz state machine from external implementations,
allowing sessions to live in various storage backends and quizzes to come from
various sources.

# Key Interfaces

  - QuizLoader: Resolves quiz decks by ID (e.g., from YAML files, Loam or Memory).
  - SessionStore: Persists and loads quiz sessions.
  - DistributedLocker: Provides distributed locking for concurrent session access.
  - Telemetry: Receives flow events (step viewed, choice made, closed...).
  - Localizer: Resolves the translation keys used by the rendered view.
*/
package ports
