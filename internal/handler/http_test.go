package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"finsakhi-server/internal/models"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubGameService returns canned results so the handler's routing, binding and
// error mapping can be tested in isolation.
type stubGameService struct {
	paths    []models.PathInfo
	response *models.StoryResponse
	err      error

	lastUserID   string
	lastPathID   string
	lastChoiceID string
	lastLanguage string
}

func (s *stubGameService) ListPaths(_ context.Context, language string) []models.PathInfo {
	s.lastLanguage = language
	return s.paths
}

func (s *stubGameService) SelectPath(_ context.Context, userID, pathID, language string) (*models.StoryResponse, error) {
	s.lastUserID, s.lastPathID, s.lastLanguage = userID, pathID, language
	return s.response, s.err
}

func (s *stubGameService) GetCurrent(_ context.Context, userID, language string) (*models.StoryResponse, error) {
	s.lastUserID, s.lastLanguage = userID, language
	return s.response, s.err
}

func (s *stubGameService) Choose(_ context.Context, userID, choiceID, language string) (*models.StoryResponse, error) {
	s.lastUserID, s.lastChoiceID, s.lastLanguage = userID, choiceID, language
	return s.response, s.err
}

func (s *stubGameService) Rollback(_ context.Context, userID, language string) (*models.StoryResponse, error) {
	s.lastUserID, s.lastLanguage = userID, language
	return s.response, s.err
}

func setup(stub *stubGameService) *echo.Echo {
	e := echo.New()
	e.Validator = NewRequestValidator()
	NewGameHandler(stub, zap.NewNop()).RegisterRoutes(e)
	return e
}

func doJSON(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func sampleResponse() *models.StoryResponse {
	return &models.StoryResponse{
		Node: models.NodeView{
			ID:        "start",
			Narrative: "You have 0 rupees.",
			Choices:   []models.ChoiceView{{ID: "invest", Text: "Invest", Cost: 50}},
		},
		Stats: models.PlayerStats{Confidence: 50},
	}
}

func TestListPathsEndpoint(t *testing.T) {
	stub := &stubGameService{paths: []models.PathInfo{
		{ID: "farming", Title: "Farming", Protagonist: "meera"},
	}}
	e := setup(stub)

	rec := doJSON(e, http.MethodGet, "/api/game/paths?language=hindi", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "hindi", stub.lastLanguage)

	var infos []models.PathInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &infos))
	require.Len(t, infos, 1)
	assert.Equal(t, "farming", infos[0].ID)
}

func TestSetPathEndpoint(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		stub := &stubGameService{response: sampleResponse()}
		e := setup(stub)

		rec := doJSON(e, http.MethodPost, "/api/game/set-path",
			`{"user_id":"user-1","path_id":"farming"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "user-1", stub.lastUserID)
		assert.Equal(t, "farming", stub.lastPathID)
		assert.Equal(t, models.DefaultLanguage, stub.lastLanguage)
	})

	t.Run("missing path_id fails validation", func(t *testing.T) {
		e := setup(&stubGameService{response: sampleResponse()})
		rec := doJSON(e, http.MethodPost, "/api/game/set-path", `{"user_id":"user-1"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown path maps to 404", func(t *testing.T) {
		e := setup(&stubGameService{err: models.ErrPathNotFound})
		rec := doJSON(e, http.MethodPost, "/api/game/set-path",
			`{"user_id":"user-1","path_id":"crypto"}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)

		var apiErr APIError
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
		assert.Equal(t, models.ErrPathNotFound.Error(), apiErr.Message)
	})
}

func TestGetCurrentEndpoint(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		stub := &stubGameService{response: sampleResponse()}
		e := setup(stub)

		rec := doJSON(e, http.MethodGet, "/api/game/current?user_id=user-1&language=hindi", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "user-1", stub.lastUserID)
		assert.Equal(t, "hindi", stub.lastLanguage)
	})

	t.Run("missing user_id", func(t *testing.T) {
		e := setup(&stubGameService{response: sampleResponse()})
		rec := doJSON(e, http.MethodGet, "/api/game/current", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("no session maps to 404", func(t *testing.T) {
		e := setup(&stubGameService{err: models.ErrSessionNotFound})
		rec := doJSON(e, http.MethodGet, "/api/game/current?user_id=user-1", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestChooseEndpoint(t *testing.T) {
	t.Run("ok with feedback", func(t *testing.T) {
		resp := sampleResponse()
		resp.Feedback = &models.FeedbackView{IsCorrect: true, Advice: "Good call."}
		stub := &stubGameService{response: resp}
		e := setup(stub)

		rec := doJSON(e, http.MethodPost, "/api/game/choose",
			`{"user_id":"user-1","choice_id":"invest","language":"hindi"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "invest", stub.lastChoiceID)
		assert.Equal(t, "hindi", stub.lastLanguage)

		var body models.StoryResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.NotNil(t, body.Feedback)
		assert.True(t, body.Feedback.IsCorrect)
	})

	t.Run("missing choice_id fails validation", func(t *testing.T) {
		e := setup(&stubGameService{response: sampleResponse()})
		rec := doJSON(e, http.MethodPost, "/api/game/choose", `{"user_id":"user-1"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("invalid choice maps to 400", func(t *testing.T) {
		e := setup(&stubGameService{err: models.ErrInvalidChoice})
		rec := doJSON(e, http.MethodPost, "/api/game/choose",
			`{"user_id":"user-1","choice_id":"nope"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("broken graph maps to 500", func(t *testing.T) {
		e := setup(&stubGameService{err: models.ErrBrokenGraph})
		rec := doJSON(e, http.MethodPost, "/api/game/choose",
			`{"user_id":"user-1","choice_id":"leap"}`)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("choice payloads never leak targets or impacts", func(t *testing.T) {
		e := setup(&stubGameService{response: sampleResponse()})
		rec := doJSON(e, http.MethodPost, "/api/game/choose",
			`{"user_id":"user-1","choice_id":"invest"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.NotContains(t, rec.Body.String(), "next_node")
		assert.NotContains(t, rec.Body.String(), "impact")
	})
}

func TestRollbackEndpoint(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		stub := &stubGameService{response: sampleResponse()}
		e := setup(stub)

		rec := doJSON(e, http.MethodPost, "/api/game/rollback", `{"user_id":"user-1"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "user-1", stub.lastUserID)
	})

	t.Run("empty history maps to 409", func(t *testing.T) {
		e := setup(&stubGameService{err: models.ErrNothingToRollback})
		rec := doJSON(e, http.MethodPost, "/api/game/rollback", `{"user_id":"user-1"}`)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("missing user_id fails validation", func(t *testing.T) {
		e := setup(&stubGameService{response: sampleResponse()})
		rec := doJSON(e, http.MethodPost, "/api/game/rollback", `{}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHealthEndpoint(t *testing.T) {
	e := setup(&stubGameService{})
	rec := doJSON(e, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}
