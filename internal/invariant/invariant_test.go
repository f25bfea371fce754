package invariant_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/opal-lang/pyfront/internal/invariant"
)

func TestPreconditionPass(t *testing.T) {
	invariant.Precondition(true, "this should pass")
	invariant.Precondition(1 == 1, "math works")
}

func TestPreconditionFail(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic for false precondition")
		}
		msg := fmt.Sprintf("%v", r)
		if !strings.Contains(msg, "PRECONDITION VIOLATION") {
			t.Errorf("expected PRECONDITION VIOLATION, got: %s", msg)
		}
		if !strings.Contains(msg, "indent stack must not be empty") {
			t.Errorf("expected custom message, got: %s", msg)
		}
		if !strings.Contains(msg, "at ") {
			t.Errorf("expected stack trace context, got: %s", msg)
		}
	}()

	invariant.Precondition(false, "indent stack must not be empty")
}

func TestInvariantFail(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic for false invariant")
		}
		if !strings.Contains(fmt.Sprint(r), "INVARIANT VIOLATION") {
			t.Errorf("expected INVARIANT VIOLATION, got: %v", r)
		}
	}()

	invariant.Invariant(1 > 2, "position must advance")
}

func TestNotNegativePass(t *testing.T) {
	invariant.NotNegative(0, "bracketDepth")
	invariant.NotNegative(3, "bracketDepth")
}

func TestNotNegativeFail(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic for negative value")
		}
		if !strings.Contains(fmt.Sprint(r), "bracketDepth must not be negative") {
			t.Errorf("unexpected message: %v", r)
		}
	}()

	invariant.NotNegative(-1, "bracketDepth")
}
