package domain

// Choice is a single-letter operator answer
type Choice string

const (
	ChoiceA       Choice = "A"
	ChoiceB       Choice = "B"
	ChoiceC       Choice = "C"
	ChoiceD       Choice = "D"
	ChoiceUnknown Choice = "E"
	ChoiceQuit    Choice = "F"
)

// OptionLetters are assigned to options in the order supplied
var OptionLetters = []Choice{ChoiceA, ChoiceB, ChoiceC, ChoiceD}

// Index returns the option position of a letter, or -1 for control letters
func (c Choice) Index() int {
	for i, l := range OptionLetters {
		if l == c {
			return i
		}
	}
	return -1
}

// Question holds everything needed to render one multiple-choice prompt
type Question struct {
	Number    int
	Remaining int // drill only, 0 in exam mode
	Term      string
	Options   []string
	Correct   int
	AllowQuit bool
}

// Allowed returns the letters the operator may answer with
func (q Question) Allowed() []Choice {
	allowed := make([]Choice, 0, len(q.Options)+2)
	for i := range q.Options {
		if i >= len(OptionLetters) {
			break
		}
		allowed = append(allowed, OptionLetters[i])
	}
	allowed = append(allowed, ChoiceUnknown)
	if q.AllowQuit {
		allowed = append(allowed, ChoiceQuit)
	}
	return allowed
}

// CorrectDefinition returns the text of the right option
func (q Question) CorrectDefinition() string {
	return q.Options[q.Correct]
}
