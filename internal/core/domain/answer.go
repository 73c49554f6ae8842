package domain

// AnswerKind classifies how a question was answered.
type AnswerKind string

const (
	// AnswerStructured means a structured intent produced the answer.
	AnswerStructured AnswerKind = "structured"

	// AnswerSemantic means passages were retrieved by similarity.
	AnswerSemantic AnswerKind = "semantic"

	// AnswerNoData means the corpus is empty.
	AnswerNoData AnswerKind = "no_data"

	// AnswerNoRelevant means the index returned no neighbours.
	AnswerNoRelevant AnswerKind = "no_relevant"
)

// Answer is the rendered response to a natural-language question.
type Answer struct {
	// Query is the question as asked.
	Query string

	// Intent names the structured intent that answered, empty for semantic answers.
	Intent string

	// Kind classifies the answer.
	Kind AnswerKind

	// Text is the markdown-like rendering shown to the user.
	Text string

	// FollowUps are the semantic queries chained after a structured answer.
	FollowUps []string
}
