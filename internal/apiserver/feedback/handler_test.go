package feedback

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"medshare/internal/shared/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockFeedbackStore struct {
	items    []*model.Feedback
	failWith error
}

func (m *mockFeedbackStore) CreateFeedback(ctx context.Context, fb *model.Feedback) error {
	if m.failWith != nil {
		return m.failWith
	}
	m.items = append(m.items, fb)
	return nil
}

func (m *mockFeedbackStore) ListFeedbackByRatedUser(ctx context.Context, ratedUserID string) ([]*model.Feedback, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	var out []*model.Feedback
	for _, fb := range m.items {
		if fb.RatedUserID == ratedUserID {
			out = append(out, fb)
		}
	}
	return out, nil
}

func newMux(store *mockFeedbackStore) *http.ServeMux {
	mux := http.NewServeMux()
	NewHandler(store).RegisterRoutes(mux)
	return mux
}

func serve(mux http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func TestSubmit_AnyRatingAccepted(t *testing.T) {
	store := &mockFeedbackStore{}
	mux := newMux(store)

	for _, body := range []string{
		`{"userId":"u1","ratedUserId":"u2","rating":-5}`,
		`{"userId":"u1","ratedUserId":"u2","rating":999}`,
		`{"userId":"u1","ratedUserId":"u2","rating":999}`,
	} {
		w := serve(mux, "POST", "/api/feedback", body)
		require.Equal(t, http.StatusCreated, w.Code)
		assert.JSONEq(t, `{"message":"Feedback submitted successfully."}`, w.Body.String())
	}
	require.Len(t, store.items, 3)
	assert.Equal(t, -5.0, store.items[0].Rating)
	assert.Equal(t, 999.0, store.items[1].Rating)
	assert.NotEqual(t, store.items[1].ID, store.items[2].ID)
}

func TestSubmit_LooseTypes(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		userID      string
		ratedUserID string
		rating      float64
	}{
		{"string rating", `{"userId":"a","ratedUserId":"b","rating":"5"}`, "a", "b", 5},
		{"decimal string", `{"userId":"a","ratedUserId":"b","rating":" 4.5 "}`, "a", "b", 4.5},
		{"numeric ids", `{"userId":12,"ratedUserId":34,"rating":3}`, "12", "34", 3},
		{"empty rating", `{"userId":"a","ratedUserId":"b","rating":""}`, "a", "b", 0},
		{"missing fields", `{}`, "", "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &mockFeedbackStore{}
			w := serve(newMux(store), "POST", "/api/feedback", tt.body)
			require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
			require.Len(t, store.items, 1)
			fb := store.items[0]
			assert.Equal(t, tt.userID, fb.UserID)
			assert.Equal(t, tt.ratedUserID, fb.RatedUserID)
			assert.Equal(t, tt.rating, fb.Rating)
		})
	}
}

func TestSubmit_NonNumericRating(t *testing.T) {
	store := &mockFeedbackStore{}
	w := serve(newMux(store), "POST", "/api/feedback", `{"userId":"a","ratedUserId":"b","rating":"five"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, store.items)
}

func TestSubmit_Errors(t *testing.T) {
	w := serve(newMux(&mockFeedbackStore{}), "POST", "/api/feedback", `{"rating":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(newMux(&mockFeedbackStore{failWith: errors.New("down")}), "POST", "/api/feedback",
		`{"userId":"u1","ratedUserId":"u2","rating":4}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Error submitting feedback."}`, w.Body.String())
}

func TestListByRatedUser(t *testing.T) {
	store := &mockFeedbackStore{}
	mux := newMux(store)
	serve(mux, "POST", "/api/feedback", `{"userId":"u1","ratedUserId":"u2","rating":4}`)
	serve(mux, "POST", "/api/feedback", `{"userId":"u3","ratedUserId":"u2","rating":5}`)
	serve(mux, "POST", "/api/feedback", `{"userId":"u2","ratedUserId":"u1","rating":1}`)

	for _, path := range []string{"/api/feedback/u2", "/api/api/feedback/u2"} {
		t.Run(path, func(t *testing.T) {
			w := serve(mux, "GET", path, "")
			require.Equal(t, http.StatusOK, w.Code)
			var got []model.Feedback
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
			require.Len(t, got, 2)
			assert.Equal(t, "u1", got[0].UserID)
			assert.Equal(t, "u3", got[1].UserID)
		})
	}

	w := serve(mux, "GET", "/api/feedback/nobody", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]\n", w.Body.String())
}

func TestListByRatedUser_StoreError(t *testing.T) {
	w := serve(newMux(&mockFeedbackStore{failWith: errors.New("down")}), "GET", "/api/api/feedback/u2", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, w.Body.String())
}
