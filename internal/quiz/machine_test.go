package quiz_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/wordpair/internal/quiz"
	"github.com/abhisek/wordpair/internal/quiz/quiztest"
)

func newMachine(t *testing.T, pairs []quiz.WordPair) (*quiz.Machine, *quiztest.ManualScheduler) {
	t.Helper()
	sched := quiztest.NewManualScheduler()
	m, err := quiz.New(quiz.Config{Pairs: pairs, LearningTime: quiz.DefaultLearningTime}, quiz.Options{Scheduler: sched})
	require.NoError(t, err)
	return m, sched
}

// learnAll starts learning and lets the timer walk through every pair.
func learnAll(t *testing.T, m *quiz.Machine, sched *quiztest.ManualScheduler) {
	t.Helper()
	require.NoError(t, m.StartLearning())
	for i := 0; i < m.NumPairs(); i++ {
		require.Equal(t, 1, sched.Advance(m.LearningTime()))
	}
	require.Equal(t, quiz.PhaseAnswering, m.State().Phase())
}

func answerAll(t *testing.T, m *quiz.Machine, answers ...string) {
	t.Helper()
	for _, a := range answers {
		require.NoError(t, m.ChangeAnswer(a))
		require.NoError(t, m.ConfirmAnswer())
	}
}

func TestNew_InitialState(t *testing.T) {
	m, sched := newMachine(t, quiz.DefaultPairs())

	assert.Equal(t, quiz.Learning{Started: false, IndexOfPair: 0, NumberOfTry: 1}, m.State())
	assert.Equal(t, 0, sched.Pending())
	assert.False(t, m.TimerArmed())

	_, ok := m.CurrentPair()
	assert.False(t, ok)
}

func TestNew_RejectsBadConfig(t *testing.T) {
	sched := quiztest.NewManualScheduler()
	tests := []struct {
		name string
		cfg  quiz.Config
	}{
		{"no pairs", quiz.Config{LearningTime: time.Second}},
		{"empty pairs", quiz.Config{Pairs: []quiz.WordPair{}, LearningTime: time.Second}},
		{"empty answer", quiz.Config{Pairs: []quiz.WordPair{{Question: "a"}}, LearningTime: time.Second}},
		{"empty question", quiz.Config{Pairs: []quiz.WordPair{{RightAnswer: "b"}}, LearningTime: time.Second}},
		{"zero learning time", quiz.Config{Pairs: quiz.DefaultPairs()}},
		{"negative learning time", quiz.Config{Pairs: quiz.DefaultPairs(), LearningTime: -time.Second}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := quiz.New(tt.cfg, quiz.Options{Scheduler: sched})
			require.ErrorIs(t, err, quiz.ErrInvalidConfig)
		})
	}
}

func TestNew_RequiresScheduler(t *testing.T) {
	_, err := quiz.New(quiz.DefaultConfig(), quiz.Options{})
	require.Error(t, err)
}

func TestStartLearning_Idempotent(t *testing.T) {
	m, sched := newMachine(t, quiz.DefaultPairs())

	require.NoError(t, m.StartLearning())
	once := m.State()
	require.NoError(t, m.StartLearning())

	assert.Equal(t, once, m.State())
	assert.Equal(t, quiz.Learning{Started: true, IndexOfPair: 0, NumberOfTry: 1}, m.State())
	assert.Equal(t, 1, sched.Pending(), "second start must not arm another timer")
}

func TestStartLearning_DoesNotResetIndex(t *testing.T) {
	m, sched := newMachine(t, quiz.DefaultPairs())
	require.NoError(t, m.StartLearning())
	sched.Advance(quiz.DefaultLearningTime)

	require.NoError(t, m.StartLearning())
	assert.Equal(t, 1, m.State().(quiz.Learning).IndexOfPair)
}

func TestAllCorrect_Completes(t *testing.T) {
	m, sched := newMachine(t, quiz.DefaultPairs())

	learnAll(t, m, sched)
	answerAll(t, m, "ロチ", "トン", "ダイ")

	assert.Equal(t, quiz.Completed{NumberOfTry: 1}, m.State())
}

func TestOneMiss_IntermediateThenRetry(t *testing.T) {
	m, sched := newMachine(t, quiz.DefaultPairs())

	learnAll(t, m, sched)
	answerAll(t, m, "ロチ", "トン", "XXX")
	assert.Equal(t, quiz.Intermediate{NumberOfCorrectAnswers: 2, NumberOfTry: 1}, m.State())

	require.NoError(t, m.RestartAfterIntermediate())
	assert.Equal(t, quiz.Learning{Started: false, IndexOfPair: 0, NumberOfTry: 2}, m.State())
}

func TestAnswerMatching_IsExact(t *testing.T) {
	tests := []struct {
		name   string
		answer string
		want   quiz.State
	}{
		{"exact", "b", quiz.Completed{NumberOfTry: 1}},
		{"trailing space", "b ", quiz.Intermediate{NumberOfCorrectAnswers: 0, NumberOfTry: 1}},
		{"different case", "B", quiz.Intermediate{NumberOfCorrectAnswers: 0, NumberOfTry: 1}},
		{"empty", "", quiz.Intermediate{NumberOfCorrectAnswers: 0, NumberOfTry: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, sched := newMachine(t, []quiz.WordPair{{Question: "a", RightAnswer: "b"}})
			learnAll(t, m, sched)
			answerAll(t, m, tt.answer)
			assert.Equal(t, tt.want, m.State())
		})
	}
}

func TestRestartAfterCompletion_ResetsTry(t *testing.T) {
	m, sched := newMachine(t, quiz.DefaultPairs())

	// Fail twice, then succeed on the third attempt.
	for try := 1; try <= 2; try++ {
		learnAll(t, m, sched)
		answerAll(t, m, "x", "y", "z")
		require.Equal(t, quiz.Intermediate{NumberOfCorrectAnswers: 0, NumberOfTry: try}, m.State())
		require.NoError(t, m.RestartAfterIntermediate())
	}
	learnAll(t, m, sched)
	answerAll(t, m, "ロチ", "トン", "ダイ")
	require.Equal(t, quiz.Completed{NumberOfTry: 3}, m.State())

	require.NoError(t, m.RestartAfterCompletion())
	assert.Equal(t, quiz.Learning{Started: false, IndexOfPair: 0, NumberOfTry: 1}, m.State())
}

func TestScoreAccumulates(t *testing.T) {
	m, sched := newMachine(t, quiz.DefaultPairs())
	learnAll(t, m, sched)

	require.NoError(t, m.ChangeAnswer("ロチ"))
	require.NoError(t, m.ConfirmAnswer())
	assert.Equal(t, quiz.Answering{IndexOfPair: 1, Answer: "", NumberOfCorrectAnswers: 1, NumberOfTry: 1}, m.State())

	require.NoError(t, m.ChangeAnswer("nope"))
	require.NoError(t, m.ConfirmAnswer())
	assert.Equal(t, quiz.Answering{IndexOfPair: 2, Answer: "", NumberOfCorrectAnswers: 1, NumberOfTry: 1}, m.State())
}

func TestChangeAnswer_Verbatim(t *testing.T) {
	m, sched := newMachine(t, quiz.DefaultPairs())
	learnAll(t, m, sched)

	require.NoError(t, m.ChangeAnswer("  ロ チ "))
	assert.Equal(t, "  ロ チ ", m.State().(quiz.Answering).Answer)

	require.NoError(t, m.ChangeAnswer(""))
	assert.Equal(t, "", m.State().(quiz.Answering).Answer)
}

func TestTimer_AdvancesThroughPairs(t *testing.T) {
	pairs := []quiz.WordPair{{Question: "a", RightAnswer: "b"}, {Question: "c", RightAnswer: "d"}}
	m, sched := newMachine(t, pairs)
	require.NoError(t, m.StartLearning())

	// Nothing happens before the delay has fully elapsed.
	assert.Equal(t, 0, sched.Advance(quiz.DefaultLearningTime-time.Millisecond))
	assert.Equal(t, 0, m.State().(quiz.Learning).IndexOfPair)

	sched.Advance(time.Millisecond)
	assert.Equal(t, quiz.Learning{Started: true, IndexOfPair: 1, NumberOfTry: 1}, m.State())
	assert.Equal(t, 1, sched.Pending())

	sched.Advance(quiz.DefaultLearningTime)
	assert.Equal(t, quiz.Answering{IndexOfPair: 0, NumberOfTry: 1}, m.State())
	assert.Equal(t, 0, sched.Pending())
	assert.False(t, m.TimerArmed())
}

func TestTimer_SinglePair(t *testing.T) {
	m, sched := newMachine(t, []quiz.WordPair{{Question: "a", RightAnswer: "b"}})
	require.NoError(t, m.StartLearning())

	sched.Advance(quiz.DefaultLearningTime)
	assert.Equal(t, quiz.PhaseAnswering, m.State().Phase())
}

func TestTimer_NotArmedBeforeStart(t *testing.T) {
	m, sched := newMachine(t, quiz.DefaultPairs())

	sched.Advance(time.Hour)
	assert.Equal(t, quiz.Initial(), m.State())
}

func TestTimer_ManualAdvanceRearms(t *testing.T) {
	m, sched := newMachine(t, quiz.DefaultPairs())
	require.NoError(t, m.StartLearning())
	sched.Advance(2 * time.Second)

	require.NoError(t, m.AdvancePair())
	assert.Equal(t, 1, sched.Pending())

	// The first timer was cancelled, so the full delay restarts at index 1.
	sched.Advance(4 * time.Second)
	assert.Equal(t, 1, m.State().(quiz.Learning).IndexOfPair)
	sched.Advance(time.Second)
	assert.Equal(t, 2, m.State().(quiz.Learning).IndexOfPair)
}

func TestTimer_CancelledWhenLeavingLearning(t *testing.T) {
	m, sched := newMachine(t, quiz.DefaultPairs())
	require.NoError(t, m.StartLearning())

	require.NoError(t, m.AdvancePhaseFromLearning())
	assert.Equal(t, 0, sched.Pending())

	sched.Advance(time.Hour)
	assert.Equal(t, quiz.Answering{IndexOfPair: 0, NumberOfTry: 1}, m.State())
}

func TestClose_CancelsTimer(t *testing.T) {
	m, sched := newMachine(t, quiz.DefaultPairs())
	require.NoError(t, m.StartLearning())

	m.Close()
	assert.Equal(t, 0, sched.Pending())

	sched.Advance(time.Hour)
	assert.Equal(t, quiz.Learning{Started: true, IndexOfPair: 0, NumberOfTry: 1}, m.State())
}

func TestAdvancePair_Errors(t *testing.T) {
	m, sched := newMachine(t, quiz.DefaultPairs())

	err := m.AdvancePair()
	require.ErrorIs(t, err, quiz.ErrInvalidTransition, "not started")
	assert.Equal(t, quiz.Initial(), m.State())

	require.NoError(t, m.StartLearning())
	require.NoError(t, m.AdvancePair())
	require.NoError(t, m.AdvancePair())

	before := m.State()
	err = m.AdvancePair()
	require.ErrorIs(t, err, quiz.ErrIndexOutOfRange)
	assert.Equal(t, before, m.State())
	assert.Equal(t, 1, sched.Pending(), "rejected advance keeps the armed timer")
}

func TestInvalidTransitions_DoNotMutate(t *testing.T) {
	ops := map[string]func(*quiz.Machine) error{
		"start":         (*quiz.Machine).StartLearning,
		"advance pair":  (*quiz.Machine).AdvancePair,
		"advance phase": (*quiz.Machine).AdvancePhaseFromLearning,
		"change":        func(m *quiz.Machine) error { return m.ChangeAnswer("x") },
		"confirm":       (*quiz.Machine).ConfirmAnswer,
		"restart retry": (*quiz.Machine).RestartAfterIntermediate,
		"restart fresh": (*quiz.Machine).RestartAfterCompletion,
	}
	valid := map[quiz.Phase][]string{
		quiz.PhaseLearning:     {"start", "advance pair", "advance phase"},
		quiz.PhaseAnswering:    {"change", "confirm"},
		quiz.PhaseIntermediate: {"restart retry"},
		quiz.PhaseCompleted:    {"restart fresh"},
	}

	setups := map[quiz.Phase]func(*testing.T, *quiz.Machine, *quiztest.ManualScheduler){
		quiz.PhaseLearning: func(*testing.T, *quiz.Machine, *quiztest.ManualScheduler) {},
		quiz.PhaseAnswering: func(t *testing.T, m *quiz.Machine, s *quiztest.ManualScheduler) {
			learnAll(t, m, s)
		},
		quiz.PhaseIntermediate: func(t *testing.T, m *quiz.Machine, s *quiztest.ManualScheduler) {
			learnAll(t, m, s)
			answerAll(t, m, "x", "y", "z")
		},
		quiz.PhaseCompleted: func(t *testing.T, m *quiz.Machine, s *quiztest.ManualScheduler) {
			learnAll(t, m, s)
			answerAll(t, m, "ロチ", "トン", "ダイ")
		},
	}

	for phase, setup := range setups {
		for name, op := range ops {
			allowed := false
			for _, v := range valid[phase] {
				if v == name {
					allowed = true
				}
			}
			if allowed {
				continue
			}
			t.Run(phase.String()+"/"+name, func(t *testing.T) {
				m, sched := newMachine(t, quiz.DefaultPairs())
				setup(t, m, sched)
				before := m.State()

				err := op(m)
				require.ErrorIs(t, err, quiz.ErrInvalidTransition)

				var te *quiz.TransitionError
				require.ErrorAs(t, err, &te)
				assert.Equal(t, phase, te.Phase)
				assert.Equal(t, before, m.State())
			})
		}
	}
}

func TestAdvance_DispatchesByPhase(t *testing.T) {
	m, sched := newMachine(t, quiz.DefaultPairs())

	require.NoError(t, m.StartLearning())
	require.NoError(t, m.Advance())
	assert.Equal(t, quiz.PhaseAnswering, m.State().Phase())
	assert.Equal(t, 0, sched.Pending())

	require.ErrorIs(t, m.Advance(), quiz.ErrInvalidTransition)

	answerAll(t, m, "ロチ", "x", "ダイ")
	require.NoError(t, m.Advance())
	assert.Equal(t, quiz.Learning{NumberOfTry: 2}, m.State())

	learnAll(t, m, sched)
	answerAll(t, m, "ロチ", "トン", "ダイ")
	require.NoError(t, m.Advance())
	assert.Equal(t, quiz.Learning{NumberOfTry: 1}, m.State())
}

func TestCurrentPair(t *testing.T) {
	m, sched := newMachine(t, quiz.DefaultPairs())
	require.NoError(t, m.StartLearning())

	p, ok := m.CurrentPair()
	require.True(t, ok)
	assert.Equal(t, "ペミ", p.Question)

	sched.Advance(quiz.DefaultLearningTime)
	p, _ = m.CurrentPair()
	assert.Equal(t, "テス", p.Question)

	sched.Advance(2 * quiz.DefaultLearningTime)
	p, ok = m.CurrentPair()
	require.True(t, ok)
	assert.Equal(t, "ペミ", p.Question, "answering starts from the first pair")
}

func TestOnTransition(t *testing.T) {
	var got []quiz.Transition
	sched := quiztest.NewManualScheduler()
	m, err := quiz.New(quiz.DefaultConfig(), quiz.Options{
		Scheduler:    sched,
		OnTransition: func(tr quiz.Transition) { got = append(got, tr) },
	})
	require.NoError(t, err)

	require.NoError(t, m.StartLearning())
	_ = m.ChangeAnswer("rejected")
	sched.Advance(quiz.DefaultLearningTime)

	require.Len(t, got, 2)
	assert.Equal(t, quiz.OpStartLearning, got[0].Op)
	assert.Equal(t, quiz.Initial(), got[0].From)
	assert.Equal(t, quiz.OpAdvancePair, got[1].Op)
	assert.Equal(t, quiz.Learning{Started: true, IndexOfPair: 1, NumberOfTry: 1}, got[1].To)
}

func TestIndexStaysInBounds(t *testing.T) {
	pairs := []quiz.WordPair{
		{Question: "a", RightAnswer: "1"},
		{Question: "b", RightAnswer: "2"},
		{Question: "c", RightAnswer: "3"},
		{Question: "d", RightAnswer: "4"},
	}
	m, sched := newMachine(t, pairs)

	check := func() {
		switch s := m.State().(type) {
		case quiz.Learning:
			assert.GreaterOrEqual(t, s.IndexOfPair, 0)
			assert.Less(t, s.IndexOfPair, len(pairs))
		case quiz.Answering:
			assert.GreaterOrEqual(t, s.IndexOfPair, 0)
			assert.Less(t, s.IndexOfPair, len(pairs))
			assert.LessOrEqual(t, s.NumberOfCorrectAnswers, len(pairs))
		}
	}

	for round := 0; round < 3; round++ {
		require.NoError(t, m.StartLearning())
		for m.State().Phase() == quiz.PhaseLearning {
			_ = m.AdvancePair()
			check()
			sched.Advance(quiz.DefaultLearningTime)
			check()
		}
		for m.State().Phase() == quiz.PhaseAnswering {
			require.NoError(t, m.ChangeAnswer("1"))
			require.NoError(t, m.ConfirmAnswer())
			check()
		}
		require.NoError(t, m.Advance())
	}
}
