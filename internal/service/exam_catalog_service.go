package service

import (
	"context"
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/lshigami/Tamarin/internal/dto"
	"github.com/lshigami/Tamarin/internal/model"
	"github.com/rs/zerolog/log"
)

// ExamCatalogService exposes the read-only listings around the attempt
// flow: available exams, past submissions and graded results.
type ExamCatalogService interface {
	AvailableExams(ctx context.Context) ([]dto.ExamSummaryView, error)
	Result(ctx context.Context, resultID string) (*dto.ResultView, error)
	MyResults(ctx context.Context) ([]dto.ResultView, error)
	MySubmissions(ctx context.Context) ([]model.Submission, error)
}

type catalogAPI interface {
	ListAvailableExams(ctx context.Context) ([]dto.RawExam, error)
	GetResult(ctx context.Context, resultID string) (*model.Result, error)
	MyResults(ctx context.Context) ([]model.Result, error)
	MySubmissions(ctx context.Context) ([]model.Submission, error)
}

type examCatalogService struct {
	api catalogAPI
}

func NewExamCatalogService(api catalogAPI) ExamCatalogService {
	return &examCatalogService{api: api}
}

func (s *examCatalogService) AvailableExams(ctx context.Context) ([]dto.ExamSummaryView, error) {
	exams, err := s.api.ListAvailableExams(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list available exams")
		return nil, fmt.Errorf("error fetching available exams: %w", err)
	}

	var views []dto.ExamSummaryView
	for _, exam := range exams {
		var view dto.ExamSummaryView
		if err := copier.Copy(&view, &exam); err != nil {
			log.Error().Err(err).Str("examID", exam.ID).Msg("Failed to copy exam to summary view")
			continue
		}
		view.QuestionCount = len(exam.Questions)
		views = append(views, view)
	}
	return views, nil
}

func (s *examCatalogService) Result(ctx context.Context, resultID string) (*dto.ResultView, error) {
	result, err := s.api.GetResult(ctx, resultID)
	if err != nil {
		log.Error().Err(err).Str("resultID", resultID).Msg("Failed to fetch result")
		return nil, fmt.Errorf("error fetching result %s: %w", resultID, err)
	}

	var view dto.ResultView
	if err := copier.Copy(&view, result); err != nil {
		log.Error().Err(err).Msg("Failed to copy result to view")
		return nil, fmt.Errorf("error preparing result view: %w", err)
	}
	return &view, nil
}

func (s *examCatalogService) MyResults(ctx context.Context) ([]dto.ResultView, error) {
	results, err := s.api.MyResults(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch results")
		return nil, fmt.Errorf("error fetching results: %w", err)
	}

	var views []dto.ResultView
	for _, result := range results {
		var view dto.ResultView
		if err := copier.Copy(&view, &result); err != nil {
			log.Error().Err(err).Str("resultID", result.ID).Msg("Failed to copy result to view")
			continue
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *examCatalogService) MySubmissions(ctx context.Context) ([]model.Submission, error) {
	submissions, err := s.api.MySubmissions(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch submissions")
		return nil, fmt.Errorf("error fetching submissions: %w", err)
	}
	return submissions, nil
}
