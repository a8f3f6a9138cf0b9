/*
Package dsl provides a fluent Go builder for quiz decks.

It is an alternative to YAML or JSON files when decks are generated in code or
written inline in tests.

Example usage:

	quiz := dsl.New("capitals").
		Title("Capitals").
		Step("Capital of France?").
			Choice("Paris").Correct().
			Choice("Lyon").
			Explain("Paris has been the capital since 987.").
		Step("Capital of Japan?").
			Choice("Kyoto").
			Choice("Tokyo").Correct().
		Quiz()

	flow, err := quizflow.NewFromQuiz(quiz)
*/
package dsl
