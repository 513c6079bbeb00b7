package domain

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestValidationError_SingleField(t *testing.T) {
	t.Parallel()

	err := NewValidationError("title", "required")

	if got := err.Error(); got != "validation: title: required" {
		t.Fatalf("unexpected Error(): %q", got)
	}
	if !errors.Is(err, ErrValidation) {
		t.Fatal("errors.Is(err, ErrValidation) = false")
	}
}

func TestValidationError_MultipleFields(t *testing.T) {
	t.Parallel()

	err := NewValidationErrors([]FieldError{
		{Field: "title", Message: "required"},
		{Field: "price", Message: "must not be negative"},
	})

	if got := err.Error(); got != "validation: 2 errors" {
		t.Fatalf("unexpected Error(): %q", got)
	}
	if !errors.Is(err, ErrValidation) {
		t.Fatal("errors.Is(err, ErrValidation) = false")
	}
	if len(err.Errors) != 2 {
		t.Fatalf("expected 2 field errors, got %d", len(err.Errors))
	}
}

func TestInsufficientStockError(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	err := &InsufficientStockError{
		BookID:    id,
		Title:     "Dune",
		Requested: 5,
		Available: 2,
	}

	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatal("errors.Is(err, ErrInsufficientStock) = false")
	}

	var ise *InsufficientStockError
	if !errors.As(error(err), &ise) {
		t.Fatal("errors.As failed for *InsufficientStockError")
	}
	if ise.Requested-ise.Available != 3 {
		t.Fatalf("shortfall mismatch: got %d, want 3", ise.Requested-ise.Available)
	}
}

func TestSentinelErrors_AreDistinct(t *testing.T) {
	t.Parallel()

	sentinels := []error{
		ErrNotFound, ErrAlreadyExists, ErrValidation,
		ErrConflict, ErrInsufficientStock,
	}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("sentinel errors %d and %d should not match", i, j)
			}
		}
	}
}
