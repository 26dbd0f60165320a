package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/lshigami/Tamarin/internal/dto"
	"github.com/lshigami/Tamarin/internal/errs"
	"github.com/lshigami/Tamarin/internal/model"
	"github.com/rs/zerolog/log"
)

// State is the lifecycle position of one exam attempt.
type State int

const (
	StateUninitialized State = iota
	StateLoaded
	StateInProgress
	StateCompleted
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateLoaded:
		return "loaded"
	case StateInProgress:
		return "in_progress"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	}
	return "uninitialized"
}

// ErrSubmitInFlight is returned when a second Submit arrives while one
// is already on the wire. The duplicate is suppressed, never sent; the
// countdown's forced submit ignores this error.
var ErrSubmitInFlight = errs.New(errs.KindSubmit, "a submit is already in flight")

// examAPI is the slice of the HTTP client the session needs.
type examAPI interface {
	GetExam(ctx context.Context, examID string) (*dto.RawExam, error)
	StartExam(ctx context.Context, examID string) (*dto.StartExamResponse, error)
	SaveAnswers(ctx context.Context, submissionID string, req dto.SaveAnswersRequest) error
	SubmitExam(ctx context.Context, submissionID string, req dto.SubmitRequest) (*dto.SubmitResponse, error)
}

// ExamSession drives one exam attempt from load to graded result and
// guarantees the result is produced exactly once, also under forced
// submission and mid-save failures. Answers live in a local buffer that
// is only ever sent whole; the buffer survives every failure until a
// submit fully succeeds.
//
// All methods are safe for concurrent use. Remote calls run outside the
// lock; a completion that arrives after the attempt moved on is dropped.
type ExamSession struct {
	mu  sync.Mutex
	api examAPI

	state        State
	exam         *model.Exam
	questions    map[string]model.Question
	submissionID string
	buffer       map[string]string
	resultID     string

	startInFlight  bool
	submitInFlight bool
	attempt        int // bumped per started attempt, guards late responses
}

func NewExamSession(api examAPI) *ExamSession {
	return &ExamSession{api: api, buffer: make(map[string]string)}
}

// LoadExam fetches and normalizes the exam definition. The session must
// be uninitialized; question normalization failures (unknown type tags)
// leave it that way.
func (s *ExamSession) LoadExam(ctx context.Context, examID string) error {
	s.mu.Lock()
	if s.state != StateUninitialized {
		s.mu.Unlock()
		return errs.New(errs.KindValidation, "an exam is already loaded in this session")
	}
	s.mu.Unlock()

	raw, err := s.api.GetExam(ctx, examID)
	if err != nil {
		log.Warn().Err(err).Str("examID", examID).Msg("LoadExam: fetch failed")
		return err
	}

	exam, err := normalizeExam(raw)
	if err != nil {
		log.Warn().Err(err).Str("examID", examID).Msg("LoadExam: normalization failed")
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateUninitialized {
		log.Warn().Str("examID", examID).Msg("LoadExam: session moved on, response dropped")
		return errs.New(errs.KindValidation, "session state changed while loading")
	}
	s.exam = exam
	s.questions = make(map[string]model.Question, len(exam.Questions))
	for _, q := range exam.Questions {
		s.questions[q.ID] = q
	}
	s.state = StateLoaded
	log.Info().Str("examID", exam.ID).Int("questions", len(exam.Questions)).Msg("Exam loaded")
	return nil
}

// StartAttempt opens a new submission. Allowed from Loaded and, for a
// retry, from Failed; a failure parks the session in Failed.
func (s *ExamSession) StartAttempt(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateLoaded && s.state != StateFailed {
		s.mu.Unlock()
		return errs.New(errs.KindValidation, fmt.Sprintf("cannot start an attempt from state %s", s.state))
	}
	if s.startInFlight {
		s.mu.Unlock()
		return errs.New(errs.KindAttemptStart, "an attempt start is already in flight")
	}
	s.startInFlight = true
	examID := s.exam.ID
	attempt := s.attempt
	s.mu.Unlock()

	resp, err := s.api.StartExam(ctx, examID)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.startInFlight = false
	if s.attempt != attempt || (s.state != StateLoaded && s.state != StateFailed) {
		log.Warn().Str("examID", examID).Msg("StartAttempt: session moved on, response dropped")
		return errs.New(errs.KindAttemptStart, "session state changed while starting the attempt")
	}
	if err != nil {
		s.state = StateFailed
		log.Error().Err(err).Str("examID", examID).Msg("StartAttempt failed")
		return err
	}

	s.attempt++
	s.submissionID = resp.SubmissionID()
	s.buffer = make(map[string]string)
	s.resultID = ""
	s.state = StateInProgress
	log.Info().Str("examID", examID).Str("submissionID", s.submissionID).Msg("Attempt started")
	return nil
}

// RecordAnswer stores one answer in the local buffer. Purely local and
// synchronous; nothing goes on the wire. For SHORT_ANSWER the value is
// trimmed, and an empty value marks the question unanswered by removing
// its key.
func (s *ExamSession) RecordAnswer(questionID, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateInProgress {
		return errs.New(errs.KindValidation, "no attempt in progress")
	}
	q, ok := s.questions[questionID]
	if !ok {
		return errs.New(errs.KindValidation, fmt.Sprintf("question %s is not part of this exam", questionID))
	}
	if q.Kind == model.ShortAnswer {
		value = strings.TrimSpace(value)
	}
	if value == "" {
		delete(s.buffer, questionID)
		return nil
	}
	s.buffer[questionID] = value
	return nil
}

// FlushAnswers sends the whole current buffer as one save call. Failure
// changes nothing locally; the same buffer can simply be resent. Safe to
// call repeatedly and concurrently, each call carries a full snapshot.
func (s *ExamSession) FlushAnswers(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateInProgress {
		s.mu.Unlock()
		return errs.New(errs.KindValidation, "no attempt in progress")
	}
	submissionID := s.submissionID
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	if err := s.api.SaveAnswers(ctx, submissionID, snapshot); err != nil {
		log.Warn().Err(err).Str("submissionID", submissionID).Msg("FlushAnswers failed, buffer retained")
		return err
	}
	log.Debug().Str("submissionID", submissionID).Int("answers", len(snapshot.Answers)).Msg("Answers flushed")
	return nil
}

// Submit finalizes the attempt: flush first, then the remote submit. A
// failed flush aborts before anything is submitted; a failed submit
// leaves the attempt open for retry with the buffer intact. At most one
// submit is ever in flight — concurrent calls get ErrSubmitInFlight.
// An "already submitted" reply from the service counts as success.
func (s *ExamSession) Submit(ctx context.Context, notes string, elapsedSeconds int) error {
	s.mu.Lock()
	if s.state == StateCompleted {
		s.mu.Unlock()
		return nil
	}
	if s.state != StateInProgress {
		s.mu.Unlock()
		return errs.New(errs.KindValidation, "no attempt in progress")
	}
	if s.submitInFlight {
		s.mu.Unlock()
		return ErrSubmitInFlight
	}
	s.submitInFlight = true
	submissionID := s.submissionID
	attempt := s.attempt
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	release := func() {
		s.mu.Lock()
		s.submitInFlight = false
		s.mu.Unlock()
	}

	if err := s.api.SaveAnswers(ctx, submissionID, snapshot); err != nil {
		release()
		log.Warn().Err(err).Str("submissionID", submissionID).Msg("Submit aborted: pre-submit flush failed")
		return err
	}

	req := dto.SubmitRequest{Notes: notes}
	if elapsedSeconds > 0 {
		req.TimeElapsed = &elapsedSeconds
	}
	resp, err := s.api.SubmitExam(ctx, submissionID, req)
	if err != nil && !isAlreadySubmitted(err) {
		release()
		log.Error().Err(err).Str("submissionID", submissionID).Msg("Submit failed, attempt stays open")
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitInFlight = false
	if s.attempt != attempt || s.state != StateInProgress {
		log.Warn().Str("submissionID", submissionID).Msg("Submit: session moved on, response dropped")
		return nil
	}
	if resp != nil {
		s.resultID = resp.ResultID()
	}
	s.state = StateCompleted
	log.Info().Str("submissionID", submissionID).Str("resultID", s.resultID).Msg("Attempt submitted")
	return nil
}

// snapshotLocked builds the save payload in exam question order, so
// repeated saves of the same buffer are byte-identical.
func (s *ExamSession) snapshotLocked() dto.SaveAnswersRequest {
	req := dto.SaveAnswersRequest{Answers: []dto.AnswerItem{}}
	for _, q := range s.exam.Questions {
		if answer, ok := s.buffer[q.ID]; ok {
			req.Answers = append(req.Answers, dto.AnswerItem{QuestionID: q.ID, Answer: answer})
		}
	}
	return req
}

// isAlreadySubmitted recognizes the idempotent-resubmit reply: the
// service reports a submission that already went through rather than
// grading twice.
func isAlreadySubmitted(err error) bool {
	var e *errs.Error
	if !errors.As(err, &e) {
		return false
	}
	return strings.Contains(strings.ToLower(e.Message), "already submitted")
}

// State returns the current lifecycle position.
func (s *ExamSession) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Exam returns the loaded definition, nil before LoadExam succeeds.
func (s *ExamSession) Exam() *model.Exam {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exam
}

// Questions returns the normalized questions in exam order.
func (s *ExamSession) Questions() []model.Question {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.exam == nil {
		return nil
	}
	return append([]model.Question(nil), s.exam.Questions...)
}

// Answers returns a copy of the buffer; mutation goes through
// RecordAnswer only.
func (s *ExamSession) Answers() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]string, len(s.buffer))
	for k, v := range s.buffer {
		out[k] = v
	}
	return out
}

// AnsweredCount is the number of questions currently answered.
func (s *ExamSession) AnsweredCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.buffer)
}

// SubmissionID returns the open submission's identifier, empty before
// StartAttempt succeeds.
func (s *ExamSession) SubmissionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submissionID
}

// ResultID returns the graded result reference, set once the session
// reaches Completed. May be empty when the service acknowledged an
// already-submitted attempt without repeating the result reference.
func (s *ExamSession) ResultID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resultID
}
