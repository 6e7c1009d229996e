package domain

// Question is a generated multiple-choice question. Options always holds
// exactly four shuffled translations, one of which is correct; the payload
// never reveals which.
type Question struct {
	Word    string
	Options []string
}

// AnswerResult is the outcome of an answer check.
type AnswerResult struct {
	Correct            bool
	CorrectTranslation string
}
