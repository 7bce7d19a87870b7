package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func perform(t *testing.T, h gin.HandlerFunc) (*httptest.ResponseRecorder, HTTPError) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/x", h)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	var body HTTPError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestIsBusiness_Wrapped(t *testing.T) {
	err := fmt.Errorf("create: %w", ErrBusiness(CodeSlotUnavailable))
	assert.True(t, IsBusiness(err, CodeSlotUnavailable))
	assert.False(t, IsBusiness(err, CodeAlreadyCancelled))
	assert.False(t, IsBusiness(errors.New("x"), CodeSlotUnavailable))
}

func TestFromError(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"slot taken", ErrBusiness(CodeSlotUnavailable), http.StatusConflict, CodeSlotUnavailable},
		{"not found", ErrBusiness(CodeBookingNotFound), http.StatusNotFound, CodeBookingNotFound},
		{"window", ErrBusiness(CodeCancellationWindowPassed), http.StatusBadRequest, CodeCancellationWindowPassed},
		{"unknown business", ErrBusiness("weird"), http.StatusBadRequest, "weird"},
		{"internal", errors.New("db down"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, body := perform(t, func(c *gin.Context) { FromError(c, tc.err) })
			assert.Equal(t, tc.status, w.Code)
			assert.Equal(t, tc.code, body.Code)
		})
	}
}

func TestValidation(t *testing.T) {
	w, body := perform(t, func(c *gin.Context) {
		Validation(c, map[string]string{"customer_email": "E-mail inválido."})
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "validation_failed", body.Code)
	assert.Equal(t, "E-mail inválido.", body.Fields["customer_email"])
}

func TestPgCodes(t *testing.T) {
	excl := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23P01"})
	uniq := &pgconn.PgError{Code: "23505"}

	assert.True(t, IsExclusionConflict(excl))
	assert.False(t, IsUniqueViolation(excl))
	assert.True(t, IsUniqueViolation(uniq))
	assert.False(t, IsExclusionConflict(errors.New("x")))
}
