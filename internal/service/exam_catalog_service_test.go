package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Tamarin/config"
	"github.com/lshigami/Tamarin/internal/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvailableExamsSummaries(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/exams/available", func(c *gin.Context) {
		c.JSON(http.StatusOK, []gin.H{
			{"_id": "e1", "title": "Algebra", "duration": 30,
				"questions": []gin.H{{"_id": "q1", "content": "?", "type": "short_answer"}}},
			{"_id": "e2", "title": "History", "passingPercentage": 70},
		})
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	cfg := &config.Config{API: config.API{BaseURL: srv.URL, TimeoutSeconds: 5}}
	catalog := NewExamCatalogService(client.New(cfg, staticToken("tok")))

	exams, err := catalog.AvailableExams(context.Background())
	require.NoError(t, err)
	require.Len(t, exams, 2)
	assert.Equal(t, "Algebra", exams[0].Title)
	assert.Equal(t, 30, exams[0].Duration)
	assert.Equal(t, 1, exams[0].QuestionCount)
	assert.Equal(t, float64(70), exams[1].PassingPercentage)
	assert.Equal(t, 0, exams[1].QuestionCount)
}

func TestResultView(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/results/:id", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"_id": c.Param("id"), "submissionId": "sub-1",
			"totalPoints": 10, "score": 8,
			"correctAnswers": 4, "wrongAnswers": 1, "skipped": 0,
			"isPassed": true,
		})
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	cfg := &config.Config{API: config.API{BaseURL: srv.URL, TimeoutSeconds: 5}}
	catalog := NewExamCatalogService(client.New(cfg, staticToken("tok")))

	view, err := catalog.Result(context.Background(), "res-1")
	require.NoError(t, err)
	assert.Equal(t, "res-1", view.ID)
	assert.Equal(t, float64(8), view.Score)
	assert.Equal(t, 4, view.CorrectAnswers)
	assert.True(t, view.IsPassed)
}
