package v1

import (
	"net/http"
	"testing"

	"github.com/ekovalev/go-taskhub/internal/services"
)

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	auth := &fakeAuthService{}
	tasks := &fakeTaskService{}
	router := newTestRouter(auth, tasks)

	w := performRequest(router, http.MethodGet, "/api/tasks/", "", nil)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
	if auth.parsedToken != "" {
		t.Errorf("token was parsed despite missing header: %q", auth.parsedToken)
	}
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	tests := []struct {
		name     string
		parseErr error
	}{
		{"malformed", services.ErrTokenInvalid},
		{"expired", services.ErrTokenExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := &fakeAuthService{parseErr: tt.parseErr}
			router := newTestRouter(auth, &fakeTaskService{})

			w := performRequest(router, http.MethodGet, "/api/tasks/", "", bearerHeader("bad-token"))

			if w.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
			}

			// Malformed and expired tokens must be indistinguishable
			// to the client.
			var body map[string]string
			decodeBody(t, w, &body)
			if body["error"] != errInvalidOrExpired.Error() {
				t.Errorf("error = %q, want %q", body["error"], errInvalidOrExpired.Error())
			}
		})
	}
}

func TestAuthMiddlewareBearerPrefixOptional(t *testing.T) {
	tests := []struct {
		name      string
		header    string
		wantToken string
	}{
		{"with bearer prefix", "Bearer the-token", "the-token"},
		{"bare token", "the-token", "the-token"},
		{"lowercase prefix is not stripped", "bearer the-token", "bearer the-token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := &fakeAuthService{parseUserID: "user-1"}
			tasks := &fakeTaskService{}
			router := newTestRouter(auth, tasks)

			w := performRequest(router, http.MethodGet, "/api/tasks/", "",
				map[string]string{"Authorization": tt.header})

			if w.Code != http.StatusOK {
				t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
			}
			if auth.parsedToken != tt.wantToken {
				t.Errorf("parsed token = %q, want %q", auth.parsedToken, tt.wantToken)
			}
		})
	}
}

func TestAuthMiddlewarePropagatesIdentity(t *testing.T) {
	auth := &fakeAuthService{parseUserID: "user-42"}
	tasks := &fakeTaskService{}
	router := newTestRouter(auth, tasks)

	w := performRequest(router, http.MethodGet, "/api/tasks/", "", bearerHeader("ok"))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if tasks.listUserID != "user-42" {
		t.Errorf("owner scoping user id = %q, want %q", tasks.listUserID, "user-42")
	}
}
