package fakebackend

// bankQuestion is a multiple-choice question with a 0-based correct index.
type bankQuestion struct {
	Question    string
	Choices     []string
	Correct     int
	Explanation string
}

// QuestionsPerQuiz is how many questions every generated quiz holds.
const QuestionsPerQuiz = 5

// defaultBank is served in order for every quiz.
var defaultBank = []bankQuestion{
	{
		Question:    "She ___ to the market every Saturday.",
		Choices:     []string{"go", "goes", "going", "gone"},
		Correct:     1,
		Explanation: "Third person singular subjects take -s in the present simple: she goes.",
	},
	{
		Question:    "I have lived here ___ 2015.",
		Choices:     []string{"for", "since", "from", "during"},
		Correct:     1,
		Explanation: "Use since with a point in time and for with a length of time.",
	},
	{
		Question:    "If I ___ more time, I would travel.",
		Choices:     []string{"have", "had", "will have", "am having"},
		Correct:     1,
		Explanation: "The second conditional uses the past simple in the if-clause.",
	},
	{
		Question:    "There are ___ apples left in the basket.",
		Choices:     []string{"a little", "much", "a few", "any"},
		Correct:     2,
		Explanation: "A few goes with countable nouns such as apples.",
	},
	{
		Question:    "He is interested ___ learning Japanese.",
		Choices:     []string{"on", "at", "for", "in"},
		Correct:     3,
		Explanation: "The adjective interested takes the preposition in.",
	},
}
