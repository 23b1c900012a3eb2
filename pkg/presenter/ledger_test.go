package presenter

import (
	stderrors "errors"
	"testing"

	"github.com/go-drift/beacon/pkg/errors"
	"github.com/go-drift/beacon/pkg/observe"
)

// panickySubject returns removers that panic, to exercise best-effort
// teardown.
type panickySubject struct {
	observe.Notifier
}

func (s *panickySubject) AddListener(fn func()) (remove func()) {
	s.Notifier.AddListener(fn)
	return func() { panic("bad remover") }
}

func TestLedger_DedupsPairs(t *testing.T) {
	var l Ledger
	subject := observe.NewNotifier()
	calls := 0

	l.Listen(subject, "k", func() { calls++ })
	got := l.Listen(subject, "k", func() { calls++ })

	if got != observe.Listenable(subject) {
		t.Error("expected subscribe to return the subject for chaining")
	}
	if l.Len() != 1 {
		t.Errorf("expected 1 recorded pair, got %d", l.Len())
	}

	subject.NotifyListeners()
	if calls != 1 {
		t.Errorf("expected exactly one invocation, got %d", calls)
	}

	// Same subject under a different key is a distinct pair.
	l.Listen(subject, "other", func() { calls++ })
	if l.Len() != 2 {
		t.Errorf("expected 2 pairs, got %d", l.Len())
	}
}

func TestLedger_UnsubscribeSinglePair(t *testing.T) {
	var l Ledger
	subject := observe.NewNotifier()
	l.Listen(subject, "k", func() {})

	l.Unsubscribe(subject, "k")

	if l.Len() != 0 {
		t.Errorf("expected empty ledger, got %d", l.Len())
	}
	if subject.ListenerCount() != 0 {
		t.Errorf("expected listener detached, got %d", subject.ListenerCount())
	}

	// Unknown pairs are ignored.
	l.Unsubscribe(subject, "missing")
}

func TestLedger_UnsubscribeAllIsIdempotent(t *testing.T) {
	var l Ledger
	a := observe.NewNotifier()
	b := observe.NewNotifier()
	l.Listen(a, "k", func() {})
	l.Listen(b, "k", func() {})

	if err := l.UnsubscribeAll(); err != nil {
		t.Fatalf("teardown failed: %v", err)
	}
	if a.ListenerCount() != 0 || b.ListenerCount() != 0 {
		t.Error("expected all listeners detached")
	}

	if err := l.UnsubscribeAll(); err != nil {
		t.Errorf("expected second teardown to be a no-op, got %v", err)
	}
}

func TestLedger_TeardownIsExhaustive(t *testing.T) {
	var l Ledger
	bad := &panickySubject{}
	good := observe.NewNotifier()

	// The failing pair must not prevent teardown of the healthy one.
	l.Listen(bad, "k", func() {})
	l.Listen(good, "k", func() {})

	err := l.UnsubscribeAll()

	var agg *errors.TeardownError
	if !stderrors.As(err, &agg) {
		t.Fatalf("expected aggregated teardown error, got %v", err)
	}
	if len(agg.Failures) != 1 {
		t.Errorf("expected 1 collected failure, got %d", len(agg.Failures))
	}
	if good.ListenerCount() != 0 {
		t.Error("expected healthy subject detached despite earlier panic")
	}
	if l.Len() != 0 {
		t.Errorf("expected cleared ledger, got %d", l.Len())
	}
}
