package protocol

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestIsKnownCode(t *testing.T) {
	cases := []Code{
		"",
		ErrCodeNotFound,
		ErrCodeConfiguration,
		ErrCodeBadRequest,
		ErrCodeInternal,
	}
	for _, c := range cases {
		if !IsKnownCode(c) {
			t.Fatalf("expected known code: %q", c)
		}
	}
	if IsKnownCode("E_NOT_DEFINED") {
		t.Fatalf("expected unknown code rejected")
	}
}

func TestError_IsMatchesByCode(t *testing.T) {
	err := fmt.Errorf("lookup: %w", NotFound("item", "Triple Jump"))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected wrapped NotFound to match sentinel: %v", err)
	}
	if errors.Is(err, ErrConfiguration) {
		t.Fatalf("NotFound must not match ErrConfiguration")
	}
	msg := err.Error()
	if !strings.Contains(msg, `"Triple Jump"`) || !strings.Contains(msg, "category=item") {
		t.Fatalf("message should name category and name: %s", msg)
	}
}

func TestWithMetadata_CopiesAndMerges(t *testing.T) {
	base := Configuration("bad pool", map[string]string{"fillable": "65"})
	got := WithMetadata(base, map[string]string{"player": "1", "slot": "Alice"})
	if got.Metadata["fillable"] != "65" || got.Metadata["player"] != "1" || got.Metadata["slot"] != "Alice" {
		t.Fatalf("metadata not merged: %#v", got.Metadata)
	}
	if _, ok := base.Metadata["player"]; ok {
		t.Fatalf("WithMetadata must not mutate the original error")
	}
	if !errors.Is(got, ErrConfiguration) {
		t.Fatalf("code should survive WithMetadata")
	}

	wrapped := WithMetadata(errors.New("disk full"), map[string]string{"player": "2"})
	if wrapped.Code != ErrCodeInternal || wrapped.Cause == nil {
		t.Fatalf("plain errors should become internal errors: %#v", wrapped)
	}
	if WithMetadata(nil, nil) != nil {
		t.Fatalf("nil in, nil out")
	}
}
