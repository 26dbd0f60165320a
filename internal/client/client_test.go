package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Tamarin/config"
	"github.com/lshigami/Tamarin/internal/dto"
	"github.com/lshigami/Tamarin/internal/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	cfg := &config.Config{API: config.API{BaseURL: srv.URL, TimeoutSeconds: 5}}
	return New(cfg, staticToken("tok-123"))
}

func TestBearerTokenAttached(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	var gotAuth string
	r.GET("/exams/:id", func(c *gin.Context) {
		gotAuth = c.GetHeader("Authorization")
		c.JSON(http.StatusOK, gin.H{"_id": c.Param("id"), "title": "T"})
	})
	c := newTestClient(t, r)

	exam, err := c.GetExam(context.Background(), "e1")
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Equal(t, "e1", exam.ID)
}

func TestEnvelopeMessagePassesThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/exams/:id", func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Exam not found or not published"})
	})
	c := newTestClient(t, r)

	_, err := c.GetExam(context.Background(), "e1")
	require.Error(t, err)
	assert.True(t, errs.IsKind(err, errs.KindNotFound))
	assert.Equal(t, "Exam not found or not published", errs.MessageOf(err))
}

func TestStatusKindMapping(t *testing.T) {
	cases := []struct {
		status int
		kind   errs.Kind
	}{
		{http.StatusUnauthorized, errs.KindUnauthorized},
		{http.StatusForbidden, errs.KindForbidden},
		{http.StatusNotFound, errs.KindNotFound},
	}
	for _, tc := range cases {
		gin.SetMode(gin.TestMode)
		r := gin.New()
		r.GET("/exams/:id", func(c *gin.Context) {
			c.JSON(tc.status, gin.H{"message": "no"})
		})
		c := newTestClient(t, r)

		_, err := c.GetExam(context.Background(), "e1")
		require.Error(t, err, "status %d", tc.status)
		assert.True(t, errs.IsKind(err, tc.kind), "status %d should map to %s", tc.status, tc.kind)
	}
}

func TestGenericFallbackMessage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/submissions/:id/save", func(c *gin.Context) {
		c.String(http.StatusBadGateway, "<html>bad gateway</html>")
	})
	c := newTestClient(t, r)

	err := c.SaveAnswers(context.Background(), "s1", dto.SaveAnswersRequest{})
	require.Error(t, err)
	assert.True(t, errs.IsKind(err, errs.KindSave))
	assert.Equal(t, "exam service returned status 502", errs.MessageOf(err))
}

func TestSaveAnswersStampsSaveKind(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/submissions/:id/save", func(c *gin.Context) {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "boom"})
	})
	c := newTestClient(t, r)

	err := c.SaveAnswers(context.Background(), "s1", dto.SaveAnswersRequest{})
	require.Error(t, err)
	assert.True(t, errs.IsKind(err, errs.KindSave))
	assert.False(t, errs.IsKind(err, errs.KindSubmit))
}

func TestUnreachableServiceIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // nothing listens anymore
	cfg := &config.Config{API: config.API{BaseURL: srv.URL, TimeoutSeconds: 1}}
	c := New(cfg, staticToken(""))

	err := c.SaveAnswers(context.Background(), "s1", dto.SaveAnswersRequest{})
	require.Error(t, err)
	assert.True(t, errs.IsKind(err, errs.KindSave))
	assert.True(t, errs.IsKind(err, errs.KindNetwork))
}

func TestStartExamRequiresSubmissionID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/submissions/start/:examId", func(c *gin.Context) {
		c.JSON(http.StatusCreated, gin.H{"exam": gin.H{"_id": c.Param("examId")}})
	})
	c := newTestClient(t, r)

	_, err := c.StartExam(context.Background(), "e1")
	require.Error(t, err)
	assert.True(t, errs.IsKind(err, errs.KindAttemptStart))
}

func TestStartExamTopLevelID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/submissions/start/:examId", func(c *gin.Context) {
		c.JSON(http.StatusCreated, gin.H{"_id": "sub-9", "examId": c.Param("examId")})
	})
	c := newTestClient(t, r)

	resp, err := c.StartExam(context.Background(), "e1")
	require.NoError(t, err)
	assert.Equal(t, "sub-9", resp.SubmissionID())
}

func TestLoginReturnsTokenAndUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/auth/login", func(c *gin.Context) {
		var req dto.LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		if req.Password != "secret" {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message":      "ok",
			"access_token": "tok-xyz",
			"user":         gin.H{"_id": "u1", "email": req.Email, "fullName": "Student One", "role": "student"},
		})
	})
	c := newTestClient(t, r)

	resp, err := c.Login(context.Background(), "s1@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "tok-xyz", resp.AccessToken)
	assert.Equal(t, "student", resp.User.Role)

	_, err = c.Login(context.Background(), "s1@example.com", "wrong")
	require.Error(t, err)
	assert.True(t, errs.IsKind(err, errs.KindUnauthorized))
	assert.Equal(t, "Invalid credentials", errs.MessageOf(err))
}
