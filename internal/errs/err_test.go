package errs

import (
	"errors"
	"testing"
)

var errSentinel = errors.New("sentinel")

func TestErrors(t *testing.T) {
	e := New()
	if e.NilIfEmpty() != nil {
		t.Fatalf("empty Errors is not nil")
	}

	e.Add(nil)
	e.Addf("entry %d has no root", 3)
	e.Add(errSentinel)

	err := e.NilIfEmpty()
	if err == nil {
		t.Fatalf("Errors with two errors is nil")
	}
	if err.Error() != "entry 3 has no root\nsentinel" {
		t.Fatalf("bad message: %q", err.Error())
	}
	if !errors.Is(err, errSentinel) {
		t.Fatalf("errors.Is did not find the sentinel")
	}
}
