package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younghak9905/2-hertz-ai/internal/profile"
	"github.com/younghak9905/2-hertz-ai/store"
	"github.com/younghak9905/2-hertz-ai/store/db/memory"
	"github.com/younghak9905/2-hertz-ai/tuning"
)

type stubEmbedder struct{ dim int }

func (s stubEmbedder) Embed(context.Context, string) ([]float32, error) {
	return make([]float32, s.dim), nil
}

func (s stubEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i := range texts {
		v := make([]float32, s.dim)
		for j := range v {
			v[j] = float32(i+1) / float32(j+2)
		}
		vectors[i] = v
	}
	return vectors, nil
}

func (s stubEmbedder) Dimensions() int { return s.dim }

func newTestAPI(t *testing.T) (*echo.Echo, *APIV1Service) {
	t.Helper()
	p := &profile.Profile{
		Mode:                "demo",
		Driver:              "memory",
		EmbeddingDimensions: 4,
		CombineStrategy:     "sum",
		UnknownAgePolicy:    "equal",
		MatchTopK:           100,
		SyncConcurrency:     1,
	}
	st := store.New(memory.NewDB(), p)
	t.Cleanup(func() { _ = st.Close() })

	svc, err := tuning.NewService(p, st, stubEmbedder{dim: 4})
	require.NoError(t, err)

	e := echo.New()
	api := NewAPIV1Service(p, st, svc)
	api.RegisterRoutes(e)
	return e, api
}

const registerBody = `{
	"userId": %ID%,
	"emailDomain": "kakaotech.com",
	"gender": "MALE",
	"ageGroup": "AGE_20S",
	"MBTI": "ESTP",
	"religion": "NON_RELIGIOUS",
	"smoking": "NO_SMOKING",
	"drinking": "SOMETIMES",
	"personality": ["KIND", "INTROVERTED"],
	"preferredPeople": ["NICE_VOICE", "PASSIONATE"],
	"currentInterests": ["BAKING", "DRAWING"],
	"favoriteFoods": ["FRUIT", "WESTERN"],
	"likedSports": ["BOWLING", "YOGA"],
	"pets": ["FISH", "HAMSTER"],
	"selfDevelopment": ["READING"],
	"hobbies": ["GAMING", "MUSIC"]
}`

func doRequest(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func register(t *testing.T, e *echo.Echo, id string) *httptest.ResponseRecorder {
	t.Helper()
	return doRequest(e, http.MethodPost, "/api/v1/users", strings.ReplaceAll(registerBody, "%ID%", id))
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) response {
	t.Helper()
	var resp response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestRegisterUserCreated(t *testing.T) {
	e, _ := newTestAPI(t)

	rec := register(t, e, "1")
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, codeRegisterCreated, decodeResponse(t, rec).Code)
}

func TestRegisterUserDuplicate(t *testing.T) {
	e, _ := newTestAPI(t)

	register(t, e, "1")
	rec := register(t, e, "1")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, codeRegisterDuplicate, decodeResponse(t, rec).Code)
}

func TestRegisterUserValidation(t *testing.T) {
	e, _ := newTestAPI(t)

	tests := []struct {
		name string
		body string
	}{
		{"missing user id", strings.ReplaceAll(registerBody, `"userId": %ID%,`, "")},
		{"bad gender", strings.Replace(strings.ReplaceAll(registerBody, "%ID%", "1"), `"MALE"`, `"OTHER"`, 1)},
		{"empty personality", strings.Replace(strings.ReplaceAll(registerBody, "%ID%", "1"), `["KIND", "INTROVERTED"]`, `[]`, 1)},
		{"short mbti", strings.Replace(strings.ReplaceAll(registerBody, "%ID%", "1"), `"ESTP"`, `"ES"`, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(e, http.MethodPost, "/api/v1/users", tt.body)
			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			assert.Equal(t, codeRegisterValidationFailed, decodeResponse(t, rec).Code)
		})
	}
}

func TestRegisterAllowsEmptyHobbies(t *testing.T) {
	e, _ := newTestAPI(t)

	body := strings.Replace(strings.ReplaceAll(registerBody, "%ID%", "1"), `["GAMING", "MUSIC"]`, `[]`, 1)
	rec := doRequest(e, http.MethodPost, "/api/v1/users", body)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestDeleteUser(t *testing.T) {
	e, _ := newTestAPI(t)

	register(t, e, "1")
	rec := doRequest(e, http.MethodDelete, "/api/v1/users/1", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, codeDeleteSuccess, decodeResponse(t, rec).Code)

	rec = doRequest(e, http.MethodDelete, "/api/v1/users/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, codeDeleteNotFoundUser, decodeResponse(t, rec).Code)
}

func TestTuningMatches(t *testing.T) {
	e, _ := newTestAPI(t)

	register(t, e, "1")
	register(t, e, "2")

	rec := doRequest(e, http.MethodGet, "/api/v1/tuning?userId=1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Code string `json:"code"`
		Data struct {
			UserIDList []int64 `json:"userIdList"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, codeTuningSuccess, resp.Code)
	assert.Equal(t, []int64{2}, resp.Data.UserIDList)
}

func TestTuningNoMatch(t *testing.T) {
	e, _ := newTestAPI(t)

	register(t, e, "1")
	rec := doRequest(e, http.MethodGet, "/api/v1/tuning?userId=1", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, codeTuningNoMatch, decodeResponse(t, rec).Code)
}

func TestTuningUnknownUser(t *testing.T) {
	e, _ := newTestAPI(t)

	rec := doRequest(e, http.MethodGet, "/api/v1/tuning?userId=42", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, codeTuningNotFoundUser, decodeResponse(t, rec).Code)
}

func TestTuningCategoryPartition(t *testing.T) {
	e, api := newTestAPI(t)

	register(t, e, "1")
	register(t, e, "2")

	// Friend partition is only populated by the batch recompute.
	rec := doRequest(e, http.MethodGet, "/api/v1/tuning?userId=1&category=friend", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, codeTuningNoMatch, decodeResponse(t, rec).Code)

	_, err := api.Tuning.RecomputeAll(context.Background(), store.CategoryFriend)
	require.NoError(t, err)

	rec = doRequest(e, http.MethodGet, "/api/v1/tuning?userId=1&category=friend", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, codeTuningSuccess, decodeResponse(t, rec).Code)
}

func TestTuningBadCategory(t *testing.T) {
	e, _ := newTestAPI(t)

	rec := doRequest(e, http.MethodGet, "/api/v1/tuning?userId=1&category=enemies", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
