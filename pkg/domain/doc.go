/*
Package domain contains the core models of the QuizFlow engine.
It defines the quiz definitions supplied by the caller, the mutable session
owned by the flow controller, the events emitted by transitions and the view
derived for presentation. This package is kept pure and free of external
dependencies like I/O or persistence, following Hexagonal Architecture principles.

# Key Entities

  - Quiz, Step, Choice: Immutable quiz definitions (questions and answers).
  - Session: The runtime snapshot of a quiz attempt (Phase, StepIndex, Score, Selection).
  - Event: A side-channel notification emitted by a transition (telemetry, outcomes).
  - View: The presentation descriptor computed from a Session and its Quiz.
*/
package domain
