package quiz

// Phase identifies which variant of State is live.
type Phase int

const (
	PhaseLearning     Phase = iota // Pairs are shown one by one
	PhaseAnswering                 // Learner types the paired word for each prompt
	PhaseIntermediate              // Imperfect pass, retry offered
	PhaseCompleted                 // Perfect pass, fresh start offered
)

func (p Phase) String() string {
	switch p {
	case PhaseLearning:
		return "learning"
	case PhaseAnswering:
		return "answering"
	case PhaseIntermediate:
		return "intermediate"
	case PhaseCompleted:
		return "completed"
	}
	return "unknown"
}

// State is the quiz state. Exactly one of Learning, Answering, Intermediate
// or Completed is live at a time.
type State interface {
	Phase() Phase
	Try() int
	state()
}

// Learning is the memorization phase.
type Learning struct {
	Started     bool
	IndexOfPair int
	NumberOfTry int
}

// Answering is the recall phase.
type Answering struct {
	IndexOfPair            int
	Answer                 string
	NumberOfCorrectAnswers int
	NumberOfTry            int
}

// Intermediate is the scorecard after a pass with at least one miss.
type Intermediate struct {
	NumberOfCorrectAnswers int
	NumberOfTry            int
}

// Completed follows a pass where every answer was right.
type Completed struct {
	NumberOfTry int
}

func (Learning) Phase() Phase     { return PhaseLearning }
func (Answering) Phase() Phase    { return PhaseAnswering }
func (Intermediate) Phase() Phase { return PhaseIntermediate }
func (Completed) Phase() Phase    { return PhaseCompleted }

func (s Learning) Try() int     { return s.NumberOfTry }
func (s Answering) Try() int    { return s.NumberOfTry }
func (s Intermediate) Try() int { return s.NumberOfTry }
func (s Completed) Try() int    { return s.NumberOfTry }

func (Learning) state()     {}
func (Answering) state()    {}
func (Intermediate) state() {}
func (Completed) state()    {}

// Initial returns the state every session starts in.
func Initial() State {
	return Learning{Started: false, IndexOfPair: 0, NumberOfTry: 1}
}
