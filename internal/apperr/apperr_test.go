package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"workersdeck/internal/apperr"
)

func TestKindSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("service.Cancel: %w", apperr.Forbidden("Unauthorized or booking not found"))
	if apperr.KindOf(err) != apperr.KindForbidden {
		t.Fatalf("want forbidden, got %v", apperr.KindOf(err))
	}
	if apperr.KindOf(err).Status() != http.StatusForbidden {
		t.Fatalf("want 403, got %d", apperr.KindOf(err).Status())
	}
}

func TestPlainErrorIsServer(t *testing.T) {
	if apperr.KindOf(errors.New("disk full")) != apperr.KindServer {
		t.Fatal("plain errors must map to server kind")
	}
	if apperr.KindServer.Status() != http.StatusInternalServerError {
		t.Fatal("server kind must be 500")
	}
}

func TestServerKeepsCause(t *testing.T) {
	cause := errors.New("db down")
	err := apperr.Server("Login failed", cause)
	if !errors.Is(err, cause) {
		t.Fatal("cause lost")
	}
	if !apperr.Is(err, apperr.KindServer) {
		t.Fatal("kind lost")
	}
}
