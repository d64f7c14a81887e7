package middlewarex_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"deal_radar/pkg/middlewarex"
)

func TestBearerAuth(t *testing.T) {
	rq := require.New(t)

	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	testCases := []struct {
		name     string
		token    string
		header   string
		expected int
	}{
		{name: "Disabled", token: "", header: "", expected: http.StatusNoContent},
		{name: "Valid", token: "secret", header: "Bearer secret", expected: http.StatusNoContent},
		{name: "Missing", token: "secret", header: "", expected: http.StatusUnauthorized},
		{name: "Wrong", token: "secret", header: "Bearer nope", expected: http.StatusUnauthorized},
		{name: "Wrong scheme", token: "secret", header: "Basic secret", expected: http.StatusUnauthorized},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/v1/status", http.NoBody)
			if tc.header != "" {
				r.Header.Set("Authorization", tc.header)
			}

			w := httptest.NewRecorder()
			middlewarex.BearerAuth(tc.token)(ok).ServeHTTP(w, r)

			rq.Equal(tc.expected, w.Code)
		})
	}
}
