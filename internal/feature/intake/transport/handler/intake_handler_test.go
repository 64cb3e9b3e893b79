package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"earningsnerd_backend/internal/feature/intake/usecase"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// mockIntakeUsecase is a mock implementation of the IntakeUsecase interface.
type mockIntakeUsecase struct {
	JoinWaitlistFunc  func(ctx context.Context, email string) error
	SubmitContactFunc func(ctx context.Context, name, email, message string) error
}

func (m *mockIntakeUsecase) JoinWaitlist(ctx context.Context, email string) error {
	if m.JoinWaitlistFunc != nil {
		return m.JoinWaitlistFunc(ctx, email)
	}
	return nil
}

func (m *mockIntakeUsecase) SubmitContact(ctx context.Context, name, email, message string) error {
	if m.SubmitContactFunc != nil {
		return m.SubmitContactFunc(ctx, name, email, message)
	}
	return nil
}

func newIntakeRouter(uc IntakeUsecase) *gin.Engine {
	r := gin.New()
	h := NewIntakeHandler(uc)
	r.POST("/api/v1/waitlist", h.Waitlist)
	r.POST("/api/v1/contact", h.Contact)
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestIntakeHandler_Waitlist(t *testing.T) {
	t.Run("new signup returns 201", func(t *testing.T) {
		var joined string
		uc := &mockIntakeUsecase{
			JoinWaitlistFunc: func(ctx context.Context, email string) error {
				joined = email
				return nil
			},
		}

		w := postJSON(newIntakeRouter(uc), "/api/v1/waitlist", `{"email":"user@example.com"}`)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "user@example.com", joined)
		assert.Contains(t, w.Body.String(), "you're on the list")
	})

	t.Run("duplicate signup is idempotent", func(t *testing.T) {
		uc := &mockIntakeUsecase{
			JoinWaitlistFunc: func(ctx context.Context, email string) error {
				return usecase.ErrAlreadyOnWaitlist
			},
		}

		w := postJSON(newIntakeRouter(uc), "/api/v1/waitlist", `{"email":"user@example.com"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "you're on the list")
	})

	t.Run("invalid email returns 400", func(t *testing.T) {
		tests := []string{
			`{"email":"not-an-email"}`,
			`{"email":""}`,
			`{}`,
			`not json`,
		}
		for _, body := range tests {
			w := postJSON(newIntakeRouter(&mockIntakeUsecase{}), "/api/v1/waitlist", body)
			assert.Equal(t, http.StatusBadRequest, w.Code, "body: %s", body)
		}
	})

	t.Run("storage failure returns 500", func(t *testing.T) {
		uc := &mockIntakeUsecase{
			JoinWaitlistFunc: func(ctx context.Context, email string) error {
				return errors.New("db down")
			},
		}

		w := postJSON(newIntakeRouter(uc), "/api/v1/waitlist", `{"email":"user@example.com"}`)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestIntakeHandler_Contact(t *testing.T) {
	t.Run("valid submission returns 201", func(t *testing.T) {
		var gotName, gotMessage string
		uc := &mockIntakeUsecase{
			SubmitContactFunc: func(ctx context.Context, name, email, message string) error {
				gotName = name
				gotMessage = message
				return nil
			},
		}

		w := postJSON(newIntakeRouter(uc), "/api/v1/contact",
			`{"name":"Jane","email":"jane@example.com","message":"hello"}`)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "Jane", gotName)
		assert.Equal(t, "hello", gotMessage)
		assert.Contains(t, w.Body.String(), "message received")
	})

	t.Run("missing fields return 400", func(t *testing.T) {
		tests := []string{
			`{"email":"jane@example.com","message":"hello"}`,
			`{"name":"Jane","message":"hello"}`,
			`{"name":"Jane","email":"jane@example.com"}`,
		}
		for _, body := range tests {
			w := postJSON(newIntakeRouter(&mockIntakeUsecase{}), "/api/v1/contact", body)
			assert.Equal(t, http.StatusBadRequest, w.Code, "body: %s", body)
		}
	})
}
