// Package cli is the terminal presentation layer. It renders questions,
// collects answers, and delegates every mutation to the exam session.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/lshigami/Tamarin/config"
	"github.com/lshigami/Tamarin/internal/client"
	"github.com/lshigami/Tamarin/internal/draft"
	"github.com/lshigami/Tamarin/internal/dto"
	"github.com/lshigami/Tamarin/internal/errs"
	"github.com/lshigami/Tamarin/internal/model"
	"github.com/lshigami/Tamarin/internal/service"
	"github.com/lshigami/Tamarin/internal/session"
	"github.com/rs/zerolog/log"
)

type CLI struct {
	cfg     *config.Config
	store   *session.Store
	api     *client.Client
	catalog service.ExamCatalogService
	drafts  *draft.Repository
	in      *bufio.Reader
	out     io.Writer
}

func New(cfg *config.Config, store *session.Store, api *client.Client, catalog service.ExamCatalogService, drafts *draft.Repository, in io.Reader, out io.Writer) *CLI {
	return &CLI{
		cfg:     cfg,
		store:   store,
		api:     api,
		catalog: catalog,
		drafts:  drafts,
		in:      bufio.NewReader(in),
		out:     out,
	}
}

func (c *CLI) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		c.usage()
		return nil
	}
	var err error
	switch args[0] {
	case "login":
		err = c.login(ctx)
	case "logout":
		err = c.store.Logout()
		if err == nil {
			fmt.Fprintln(c.out, "Logged out.")
		}
	case "whoami":
		err = c.whoami()
	case "exams":
		err = c.listExams(ctx)
	case "take":
		if len(args) < 2 {
			return errs.New(errs.KindValidation, "usage: take <exam-id>")
		}
		err = c.takeExam(ctx, args[1])
	case "results":
		err = c.listResults(ctx)
	case "drafts":
		err = c.listDrafts()
	default:
		c.usage()
		return errs.New(errs.KindValidation, fmt.Sprintf("unknown command %q", args[0]))
	}
	if err != nil && errs.IsKind(err, errs.KindUnauthorized) {
		// Session invalid is systemic: tell the user to re-login instead
		// of retrying the call.
		fmt.Fprintln(c.out, "Your session is no longer valid. Run 'tamarin login' to sign in again.")
	}
	return err
}

func (c *CLI) usage() {
	fmt.Fprintln(c.out, `Usage: tamarin <command>

Commands:
  login           Sign in and persist the session
  logout          Discard the persisted session
  whoami          Show the signed-in user
  exams           List available exams
  take <exam-id>  Take an exam
  results         List your graded results
  drafts          List local exam drafts`)
}

func (c *CLI) login(ctx context.Context) error {
	email := c.prompt("Email: ")
	password := c.prompt("Password: ")
	resp, err := c.api.Login(ctx, email, password)
	if err != nil {
		return err
	}
	if err := c.store.Login(resp.User, resp.AccessToken); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Signed in as %s (%s)\n", resp.User.FullName, resp.User.Role)
	return nil
}

func (c *CLI) whoami() error {
	user, ok := c.store.CurrentUser()
	if !ok {
		fmt.Fprintln(c.out, "Not signed in.")
		return nil
	}
	fmt.Fprintf(c.out, "%s <%s> (%s)\n", user.FullName, user.Email, user.Role)
	return nil
}

func (c *CLI) listExams(ctx context.Context) error {
	exams, err := c.catalog.AvailableExams(ctx)
	if err != nil {
		return err
	}
	if len(exams) == 0 {
		fmt.Fprintln(c.out, "No exams available.")
		return nil
	}
	for _, exam := range exams {
		line := fmt.Sprintf("%s  %s (%d questions", exam.ID, exam.Title, exam.QuestionCount)
		if exam.Duration > 0 {
			line += fmt.Sprintf(", %d min", exam.Duration)
		}
		line += ")"
		fmt.Fprintln(c.out, line)
	}
	return nil
}

func (c *CLI) listResults(ctx context.Context) error {
	results, err := c.catalog.MyResults(ctx)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Fprintln(c.out, "No results yet.")
		return nil
	}
	for _, r := range results {
		fmt.Fprintln(c.out, formatResult(&r))
	}
	return nil
}

func (c *CLI) listDrafts() error {
	drafts, err := c.drafts.List()
	if err != nil {
		return err
	}
	if len(drafts) == 0 {
		fmt.Fprintln(c.out, "No local drafts.")
		return nil
	}
	for _, d := range drafts {
		fmt.Fprintf(c.out, "%s  %s (%d questions, updated %s)\n", d.ID, d.Title, len(d.Questions), d.UpdatedAt.Format(time.RFC3339))
	}
	return nil
}

// takeExam drives the full attempt: load, start, answer loop with
// periodic autosave, countdown when the exam is timed, submit, result.
func (c *CLI) takeExam(ctx context.Context, examID string) error {
	sess := service.NewExamSession(c.api)

	if err := sess.LoadExam(ctx, examID); err != nil {
		return err
	}
	if err := sess.StartAttempt(ctx); err != nil {
		return err
	}

	exam := sess.Exam()
	fmt.Fprintf(c.out, "\n%s\n", exam.Title)
	if exam.Description != "" {
		fmt.Fprintln(c.out, exam.Description)
	}

	started := time.Now()
	countdown := service.NewCountdown()
	if exam.Timed() {
		allotment := time.Duration(exam.DurationSeconds()) * time.Second
		countdown.Start(allotment, func() {
			// Forced submission goes through the same entry point as the
			// manual one; the in-flight guard drops the duplicate.
			if err := sess.Submit(context.Background(), "", exam.DurationSeconds()); err != nil && err != service.ErrSubmitInFlight {
				log.Error().Err(err).Msg("Forced submission failed, attempt stays open")
			}
		})
		defer countdown.Stop()
		fmt.Fprintf(c.out, "Time limit: %d minutes\n", exam.Duration)
	}

	stopAutosave := c.startAutosave(ctx, sess)
	defer stopAutosave()

	questions := sess.Questions()
	for i := 0; i < len(questions) && sess.State() == service.StateInProgress; {
		q := questions[i]
		c.renderQuestion(i+1, len(questions), q, sess.Answers()[q.ID], countdown)

		input := strings.TrimSpace(c.prompt("> "))
		if sess.State() != service.StateInProgress {
			break
		}
		switch input {
		case ":submit":
			i = len(questions)
			continue
		case ":save":
			if err := sess.FlushAnswers(ctx); err != nil {
				fmt.Fprintf(c.out, "Save failed: %s (answers kept, keep going)\n", errs.MessageOf(err))
			} else {
				fmt.Fprintln(c.out, "Saved.")
			}
			continue
		case ":next", "":
			i++
			continue
		case ":prev":
			if i > 0 {
				i--
			}
			continue
		}

		if err := c.applyAnswer(sess, q, input); err != nil {
			fmt.Fprintf(c.out, "%s\n", errs.MessageOf(err))
			continue
		}
		i++
	}

	stopAutosave()
	countdown.Stop()

	if sess.State() != service.StateCompleted {
		elapsed := int(time.Since(started).Seconds())
		notes := strings.TrimSpace(c.prompt("Notes (optional): "))
		if err := sess.Submit(ctx, notes, elapsed); err != nil {
			fmt.Fprintf(c.out, "Submission failed: %s\nYour answers are kept; submit again when ready.\n", errs.MessageOf(err))
			return err
		}
	}

	fmt.Fprintln(c.out, "Submitted.")
	if resultID := sess.ResultID(); resultID != "" {
		view, err := c.catalog.Result(ctx, resultID)
		if err != nil {
			log.Warn().Err(err).Str("resultID", resultID).Msg("Could not fetch result after submit")
			fmt.Fprintf(c.out, "Result %s is being graded; check 'tamarin results' later.\n", resultID)
			return nil
		}
		fmt.Fprintln(c.out, formatResult(view))
	}
	return nil
}

// applyAnswer turns terminal input into a recorded answer: an option
// number or the literal option text for choice questions, free text for
// short answers.
func (c *CLI) applyAnswer(sess *service.ExamSession, q model.Question, input string) error {
	value := input
	if q.Kind == model.MultipleChoice || q.Kind == model.TrueFalse {
		if n, err := strconv.Atoi(input); err == nil {
			if n < 1 || n > len(q.Options) {
				return errs.New(errs.KindValidation, fmt.Sprintf("pick an option between 1 and %d", len(q.Options)))
			}
			value = q.Options[n-1]
		}
	}
	return sess.RecordAnswer(q.ID, value)
}

func (c *CLI) renderQuestion(number, total int, q model.Question, current string, countdown *service.Countdown) {
	fmt.Fprintf(c.out, "\n[%d/%d] %s\n", number, total, q.Content)
	for i, opt := range q.Options {
		marker := " "
		if opt == current {
			marker = "*"
		}
		fmt.Fprintf(c.out, " %s %d) %s\n", marker, i+1, opt)
	}
	if q.Kind == model.ShortAnswer && current != "" {
		fmt.Fprintf(c.out, " current answer: %s\n", current)
	}
	if left := countdown.Remaining(); left > 0 {
		fmt.Fprintf(c.out, " time left: %s\n", left.Round(time.Second))
	}
}

// startAutosave flushes the buffer on the configured interval so a
// crash loses at most one interval of answers. Failures only get
// logged: saving must never block answering.
func (c *CLI) startAutosave(ctx context.Context, sess *service.ExamSession) (stop func()) {
	interval := time.Duration(c.cfg.Autosave.Seconds) * time.Second
	if interval <= 0 {
		return func() {}
	}
	done := make(chan struct{})
	var once sync.Once
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if sess.State() != service.StateInProgress {
					return
				}
				if err := sess.FlushAnswers(ctx); err != nil {
					log.Warn().Err(err).Msg("Autosave failed, will retry next interval")
				}
			}
		}
	}()
	return func() { once.Do(func() { close(done) }) }
}

func (c *CLI) prompt(label string) string {
	fmt.Fprint(c.out, label)
	line, err := c.in.ReadString('\n')
	if err != nil && line == "" {
		return ""
	}
	return strings.TrimRight(line, "\r\n")
}

func formatResult(r *dto.ResultView) string {
	verdict := "FAILED"
	if r.IsPassed {
		verdict = "PASSED"
	}
	return fmt.Sprintf("%s  %.1f/%.1f  correct %d, wrong %d, skipped %d  [%s]",
		r.ID, r.Score, r.TotalPoints, r.CorrectAnswers, r.WrongAnswers, r.Skipped, verdict)
}
