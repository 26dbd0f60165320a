package service

import (
	"fmt"
	"strings"

	"github.com/lshigami/Tamarin/internal/dto"
	"github.com/lshigami/Tamarin/internal/errs"
	"github.com/lshigami/Tamarin/internal/model"
)

// normalizeExam converts a raw backend exam into the canonical model the
// presentation layer sees. It fails on the first question whose type tag
// is unrecognized rather than guessing a kind.
func normalizeExam(raw *dto.RawExam) (*model.Exam, error) {
	exam := &model.Exam{
		ID:                raw.ID,
		Title:             raw.Title,
		Description:       raw.Description,
		Duration:          raw.Duration,
		PassingPercentage: raw.PassingPercentage,
		IsPublished:       raw.IsPublished,
		CreatedBy:         raw.CreatedBy,
	}
	for _, rq := range raw.Questions {
		q, err := normalizeQuestion(rq)
		if err != nil {
			return nil, err
		}
		exam.Questions = append(exam.Questions, q)
	}
	return exam, nil
}

// normalizeQuestion maps the backend's lowercase snake-case type tag to
// the canonical kind and shapes the options for that kind:
// TRUE_FALSE always gets the fixed two-option pair, MULTIPLE_CHOICE gets
// the non-empty option texts, SHORT_ANSWER carries none.
func normalizeQuestion(raw dto.RawQuestion) (model.Question, error) {
	q := model.Question{
		ID:      raw.Identifier(),
		Content: raw.Content,
	}

	switch strings.ToLower(strings.TrimSpace(raw.Type)) {
	case "multiple_choice":
		q.Kind = model.MultipleChoice
		q.Options = optionTexts(raw.Options)
	case "true_false":
		q.Kind = model.TrueFalse
		q.Options = append([]string(nil), model.TrueFalseOptions...)
	case "short_answer":
		q.Kind = model.ShortAnswer
	default:
		return model.Question{}, errs.New(errs.KindValidation,
			fmt.Sprintf("unrecognized question type %q for question %s", raw.Type, q.ID))
	}

	return q, nil
}

func optionTexts(options []dto.RawOption) []string {
	var texts []string
	for _, opt := range options {
		if opt.Text != "" {
			texts = append(texts, opt.Text)
		}
	}
	return texts
}
