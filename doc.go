/*
Package quizflow drives multi-step quizzes: a deck of questions shown one at a
time, a cumulative score, a one-time start gate and a terminal outcome.

The state machine itself is pure (see internal/runtime): every operation takes
a session and returns the next session plus the events it emitted. This
package wraps it for two kinds of hosts.

# Flow

Flow owns a single in-process session, the way a UI component would. Callbacks
fire when the quiz is won, lost or closed:

	flow, err := quizflow.New(steps,
		quizflow.WithOnWin(func() { fmt.Println("perfect score!") }),
		quizflow.WithOnLose(func() { fmt.Println("try again") }),
		quizflow.WithOnClose(func() { fmt.Println("bye") }),
	)
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	flow.Start(ctx)
	if _, err := flow.SelectChoice(ctx, 0); err != nil {
		log.Fatal(err)
	}
	view := flow.Advance(ctx)

A win requires every answer to be correct. Selecting twice on the same step
keeps the first answer, and advancing before answering does nothing.

# Service

Service hosts many concurrent sessions behind a ports.SessionStore, resolving
decks through a ports.QuizLoader. It is what the HTTP and MCP adapters use.
Finished sessions are removed from the store.
*/
package quizflow
