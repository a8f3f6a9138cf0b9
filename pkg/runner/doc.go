/*
Package runner plays a quiz session in a terminal or over a JSON-lines pipe.

The Runner loops render → input → transition against a quiz Service until the
session finishes or the input ends. How the view is shown and how commands are
read is delegated to an IOHandler:

  - TextHandler: human readable output, optionally rendered with glamour.
  - JSONHandler: one JSON view per line out, one JSON command per line in.

# Usage

	r := runner.NewRunner(svc,
		runner.WithInputHandler(runner.NewTextHandler(os.Stdin, os.Stdout)),
	)
	view, err := r.Run(ctx, sessionID)

Leaving with "exit" (or closing stdin) keeps the session in its store so it can
be resumed later.
*/
package runner
