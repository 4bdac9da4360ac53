package quiz

// Operation names used in errors, logs and Transition records.
const (
	OpStartLearning            = "start learning"
	OpAdvancePair              = "advance pair"
	OpAdvancePhaseFromLearning = "advance phase from learning"
	OpChangeAnswer             = "change answer"
	OpConfirmAnswer            = "confirm answer"
	OpRestartAfterIntermediate = "restart after intermediate"
	OpRestartAfterCompletion   = "restart after completion"
)

// Transition describes one applied operation.
type Transition struct {
	Op   string
	From State
	To   State
}

// The functions below are pure: they never touch the input state and
// return it unchanged alongside any error.

func startLearning(s State) (State, error) {
	l, ok := s.(Learning)
	if !ok {
		return s, invalid(OpStartLearning, s)
	}
	l.Started = true
	return l, nil
}

func advancePair(s State, numPairs int) (State, error) {
	l, ok := s.(Learning)
	if !ok || !l.Started {
		return s, invalid(OpAdvancePair, s)
	}
	if isLast(l.IndexOfPair, numPairs) {
		return s, ErrIndexOutOfRange
	}
	l.IndexOfPair++
	return l, nil
}

func advancePhaseFromLearning(s State) (State, error) {
	l, ok := s.(Learning)
	if !ok {
		return s, invalid(OpAdvancePhaseFromLearning, s)
	}
	return Answering{
		IndexOfPair:            0,
		Answer:                 "",
		NumberOfCorrectAnswers: 0,
		NumberOfTry:            l.NumberOfTry,
	}, nil
}

func changeAnswer(s State, text string) (State, error) {
	a, ok := s.(Answering)
	if !ok {
		return s, invalid(OpChangeAnswer, s)
	}
	a.Answer = text
	return a, nil
}

func confirmAnswer(s State, pairs []WordPair) (State, error) {
	a, ok := s.(Answering)
	if !ok {
		return s, invalid(OpConfirmAnswer, s)
	}

	count := a.NumberOfCorrectAnswers
	if a.Answer == pairs[a.IndexOfPair].RightAnswer {
		count++
	}

	if isLast(a.IndexOfPair, len(pairs)) {
		if count < len(pairs) {
			return Intermediate{NumberOfCorrectAnswers: count, NumberOfTry: a.NumberOfTry}, nil
		}
		return Completed{NumberOfTry: a.NumberOfTry}, nil
	}

	return Answering{
		IndexOfPair:            a.IndexOfPair + 1,
		Answer:                 "",
		NumberOfCorrectAnswers: count,
		NumberOfTry:            a.NumberOfTry,
	}, nil
}

func restartAfterIntermediate(s State) (State, error) {
	i, ok := s.(Intermediate)
	if !ok {
		return s, invalid(OpRestartAfterIntermediate, s)
	}
	return Learning{Started: false, IndexOfPair: 0, NumberOfTry: i.NumberOfTry + 1}, nil
}

func restartAfterCompletion(s State) (State, error) {
	if _, ok := s.(Completed); !ok {
		return s, invalid(OpRestartAfterCompletion, s)
	}
	return Learning{Started: false, IndexOfPair: 0, NumberOfTry: 1}, nil
}

func isLast(index, numPairs int) bool {
	return index == numPairs-1
}
