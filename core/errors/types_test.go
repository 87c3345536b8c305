package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestValidationError(t *testing.T) {
	err := &ValidationError{Field: "wd", Message: "cannot be empty"}

	if !strings.Contains(err.Error(), "wd") {
		t.Errorf("message = %q", err.Error())
	}
	if !IsValidation(err) {
		t.Error("IsValidation false for ValidationError")
	}
	if IsValidation(errors.New("other")) {
		t.Error("IsValidation true for plain error")
	}
}

func TestValidationError_Wrapped(t *testing.T) {
	err := fmt.Errorf("handling request: %w", &ValidationError{Field: "id", Message: "bad"})

	if !IsValidation(err) {
		t.Error("IsValidation should see through wrapping")
	}
}

func TestExternalAPIError(t *testing.T) {
	err := &ExternalAPIError{StatusCode: 502, Message: "bad gateway", API: "黑木耳"}

	if !IsExternalAPI(err) {
		t.Error("IsExternalAPI false for ExternalAPIError")
	}
	msg := err.Error()
	if !strings.Contains(msg, "黑木耳") || !strings.Contains(msg, "502") {
		t.Errorf("message = %q", msg)
	}
}

func TestRetryExhaustedError_UnwrapsLastFailure(t *testing.T) {
	last := errors.New("connection refused")
	err := &RetryExhaustedError{Attempts: 6, LastErr: last}

	if !IsRetryExhausted(err) {
		t.Error("IsRetryExhausted false")
	}
	if !errors.Is(err, last) {
		t.Error("last failure not reachable through Unwrap")
	}
	if !strings.Contains(err.Error(), "6") {
		t.Errorf("message = %q", err.Error())
	}
}

func TestAggregateError_ConcatenatesFailures(t *testing.T) {
	err := &AggregateError{Failures: []string{"甲源: timeout", "乙源: bad code"}}

	if !IsAggregate(err) {
		t.Error("IsAggregate false")
	}
	msg := err.Error()
	if !strings.HasPrefix(msg, "all sources failed: ") {
		t.Errorf("message = %q", msg)
	}
	if !strings.Contains(msg, "甲源: timeout") || !strings.Contains(msg, "乙源: bad code") {
		t.Errorf("message = %q", msg)
	}
}

func TestWrapError(t *testing.T) {
	if WrapError(nil, "context") != nil {
		t.Error("WrapError(nil) should be nil")
	}

	inner := &NotFoundError{Resource: "source", ID: "x"}
	wrapped := WrapError(inner, "loading registry")

	if !IsNotFound(wrapped) {
		t.Error("wrapping lost the error type")
	}
	if !strings.Contains(wrapped.Error(), "loading registry") {
		t.Errorf("message = %q", wrapped.Error())
	}
}
