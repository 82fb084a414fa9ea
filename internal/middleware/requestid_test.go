package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestRequestID(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
		keep     bool
	}{
		{name: "reuses incoming", incoming: "req-42", keep: true},
		{name: "generates when missing"},
		{name: "replaces control characters", incoming: "bad\nid"},
		{name: "replaces overlong", incoming: strings.Repeat("a", maxRequestIDLength+1)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var seen string
			handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = RequestIDFromContext(r.Context())
			}))
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.incoming != "" {
				req.Header["X-Request-Id"] = []string{tc.incoming}
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if rr.Header().Get("X-Request-ID") != seen {
				t.Fatalf("header %q differs from context %q", rr.Header().Get("X-Request-ID"), seen)
			}
			if tc.keep {
				if seen != tc.incoming {
					t.Fatalf("request id = %q, want %q", seen, tc.incoming)
				}
				return
			}
			if _, err := uuid.Parse(seen); err != nil {
				t.Fatalf("request id %q is not a uuid", seen)
			}
		})
	}
}
