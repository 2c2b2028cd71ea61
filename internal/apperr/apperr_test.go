package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestValidationNilOnEmptyList(t *testing.T) {
	if err := Validation(nil); err != nil {
		t.Fatalf("expected nil for empty field list, got %v", err)
	}
}

func TestValidationCarriesEveryField(t *testing.T) {
	err := Validation([]FieldError{{Message: "Invalid email."}, {Message: "Password too short. Make sure it is at least 5 characters long."}})
	var appErr *Error
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if appErr.Status != 422 {
		t.Fatalf("unexpected status: %d", appErr.Status)
	}
	if len(appErr.Data) != 2 {
		t.Fatalf("expected both field errors, got %d", len(appErr.Data))
	}
}

func TestErrorSurvivesWrapping(t *testing.T) {
	wrapped := fmt.Errorf("resolve: %w", New("Not authenticated.", 401))
	var appErr *Error
	if !errors.As(wrapped, &appErr) {
		t.Fatalf("expected wrapped *Error to unwrap")
	}
	if appErr.Status != 401 || appErr.Message != "Not authenticated." {
		t.Fatalf("unexpected error: %+v", appErr)
	}
}
