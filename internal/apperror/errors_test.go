package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"validation", Required("title"), http.StatusBadRequest, "Field 'title' is required"},
		{"wrapped validation", fmt.Errorf("submit: %w", Validation("contact_email", "Invalid email address")), http.StatusBadRequest, "Invalid email address"},
		{"credentials", ErrInvalidCredentials, http.StatusUnauthorized, "Invalid email or password"},
		{"unauthorized", ErrUnauthorized, http.StatusUnauthorized, "Authentication required"},
		{"forbidden", ErrForbidden, http.StatusForbidden, "Insufficient permissions"},
		{"not found", NotFound("story"), http.StatusNotFound, "Story not found"},
		{"bare not found", ErrNotFound, http.StatusNotFound, "Not found"},
		{"transition", fmt.Errorf("set status: %w", ErrInvalidTransition), http.StatusConflict, "Submission has already been reviewed"},
		{"storage", errors.New("pq: relation \"innovation_stories\" does not exist"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := HTTPStatus(tt.err)
			if status != tt.wantStatus {
				t.Errorf("HTTPStatus() status = %d, want %d", status, tt.wantStatus)
			}
			if msg != tt.wantMsg {
				t.Errorf("HTTPStatus() message = %q, want %q", msg, tt.wantMsg)
			}
		})
	}
}

func TestNotFoundMatchesSentinel(t *testing.T) {
	err := fmt.Errorf("get: %w", NotFound("submission"))
	if !errors.Is(err, ErrNotFound) {
		t.Error("NotFound() should match ErrNotFound")
	}
	if errors.Is(err, ErrUnauthorized) {
		t.Error("NotFound() should not match ErrUnauthorized")
	}
}
