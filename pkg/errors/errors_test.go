package errors

import (
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/go-drift/controls/internal/logging"
)

func TestControlErrorString(t *testing.T) {
	err := &ControlError{
		Op:   "node.Append",
		Kind: KindStructure,
		Err:  ErrIllegalChild,
	}
	want := "node.Append [structure]: illegal child role"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestControlErrorWithNode(t *testing.T) {
	err := &ControlError{
		Op:   "markup.Parse",
		Kind: KindMarkup,
		Node: "option",
		Err:  ErrUnknownRole,
	}
	if got := err.Error(); !strings.Contains(got, "node=option") {
		t.Errorf("error string %q should contain node", got)
	}
	if !Is(err, ErrUnknownRole) {
		t.Error("expected Unwrap to expose ErrUnknownRole")
	}
}

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want string
	}{
		{KindUnknown, "unknown"},
		{KindStructure, "structure"},
		{KindMarkup, "markup"},
		{KindAttribute, "attribute"},
		{KindPanic, "panic"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("ErrorKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestPanicErrorString(t *testing.T) {
	err := &PanicError{Value: "boom", Timestamp: time.Now()}
	if got, want := err.Error(), "panic: boom"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	err.Op = "node.Dispatch"
	if got, want := err.Error(), "panic in node.Dispatch: boom"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestReportSetsTimestamp(t *testing.T) {
	var captured *ControlError
	SetHandler(&testHandler{onError: func(err *ControlError) { captured = err }})
	defer SetHandler(nil)

	Report(&ControlError{Op: "test.op", Kind: KindAttribute, Err: ErrUnknownRole})

	if captured == nil {
		t.Fatal("expected error to be captured")
	}
	if captured.Timestamp.IsZero() {
		t.Error("expected Timestamp to be set")
	}
}

func TestRecover(t *testing.T) {
	var captured *PanicError
	SetHandler(&testHandler{onPanic: func(err *PanicError) { captured = err }})
	defer SetHandler(nil)

	func() {
		defer Recover("test.recover")
		panic("intentional test panic")
	}()

	if captured == nil {
		t.Fatal("expected panic to be recovered and captured")
	}
	if captured.Op != "test.recover" {
		t.Errorf("Op = %q, want %q", captured.Op, "test.recover")
	}
	if captured.StackTrace == "" {
		t.Error("expected a stack trace")
	}
}

func TestSetHandlerNil(t *testing.T) {
	SetHandler(nil)
	if _, ok := Handler().(*LogHandler); !ok {
		t.Errorf("SetHandler(nil) should set LogHandler, got %T", Handler())
	}
}

func TestSetHandlerReturnsPrevious(t *testing.T) {
	c := &Collector{}
	first := SetHandler(c)
	defer SetHandler(first)

	if got := SetHandler(&testHandler{}); got != c {
		t.Errorf("SetHandler returned %T, want the collector", got)
	}
}

func TestCollector(t *testing.T) {
	c := &Collector{}
	defer SetHandler(SetHandler(c))

	Report(&ControlError{Op: "input.Text", Kind: KindAttribute, Err: ErrInvalidValue})
	func() {
		defer Recover("node.Dispatch")
		panic("boom")
	}()

	if got := len(c.Errors()); got != 1 {
		t.Fatalf("got %d errors, want 1", got)
	}
	panics := c.Panics()
	if len(panics) != 1 || panics[0].Value != "boom" {
		t.Fatalf("panics = %v", panics)
	}
	if panics[0].Timestamp.IsZero() {
		t.Error("expected panic Timestamp to be set")
	}
	if strings.Contains(panics[0].StackTrace, "pkg/errors.Recover") {
		t.Errorf("stack should omit the recovery helper:\n%s", panics[0].StackTrace)
	}
	if !strings.Contains(panics[0].StackTrace, "TestCollector") {
		t.Errorf("stack should include the panicking test:\n%s", panics[0].StackTrace)
	}
}

func TestLogHandlerWritesThroughLogger(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	logging.SetLogger(zap.New(core))
	defer logging.SetLogger(nil)

	h := &LogHandler{}
	h.HandleError(&ControlError{Op: "markup.Parse", Kind: KindMarkup, Err: ErrUnknownRole})
	h.HandlePanic(&PanicError{Op: "node.Dispatch", Value: "boom"})

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Level != zap.WarnLevel || entries[1].Level != zap.ErrorLevel {
		t.Errorf("levels = %v, %v; want warn, error", entries[0].Level, entries[1].Level)
	}
}

type testHandler struct {
	onError func(*ControlError)
	onPanic func(*PanicError)
}

func (h *testHandler) HandleError(err *ControlError) {
	if h.onError != nil {
		h.onError(err)
	}
}

func (h *testHandler) HandlePanic(err *PanicError) {
	if h.onPanic != nil {
		h.onPanic(err)
	}
}
