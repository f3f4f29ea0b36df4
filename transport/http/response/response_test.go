package response_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"labbook/shared/failure"
	"labbook/transport/http/response"
)

func TestWithError(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		code int
		body string
	}{
		{"slot exhausted", failure.SlotExhausted("no slots left"), http.StatusConflict, `{"error":"no slots left"}`},
		{"wrapped not found", fmt.Errorf("lookup: %w", failure.NotFound("appointment not found")), http.StatusNotFound, `{"error":"appointment not found"}`},
		{"storage error hidden", errors.New("pq: connection refused"), http.StatusInternalServerError, `{"error":"internal server error"}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			response.WithError(rec, tc.err)

			assert.Equal(t, tc.code, rec.Code)
			assert.JSONEq(t, tc.body, rec.Body.String())
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		})
	}
}

func TestWithJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	response.WithJSON(rec, http.StatusCreated, map[string]int{"amount": 8000})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"data":{"amount":8000}}`, rec.Body.String())
}
