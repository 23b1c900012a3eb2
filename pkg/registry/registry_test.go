package registry

import (
	"sync"
	"testing"

	"github.com/go-drift/beacon/pkg/errors"
)

type counterService struct {
	clicks int
}

type auditService struct {
	entries []string
}

// disposableService records disposal and can probe the registry from inside
// its own teardown.
type disposableService struct {
	disposed  int
	onDispose func()
}

func (s *disposableService) Dispose() {
	s.disposed++
	if s.onDispose != nil {
		s.onDispose()
	}
}

func TestRegistry_RoundTrip(t *testing.T) {
	reg := New()
	svc := &counterService{}

	if err := Put(reg, svc); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	got, err := Resolve[*counterService](reg)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got != svc {
		t.Error("expected the registered instance back")
	}

	if err := Drop[*counterService](reg); err != nil {
		t.Fatalf("unregister failed: %v", err)
	}
	if Has[*counterService](reg) {
		t.Error("expected key absent after unregister")
	}

	if _, err := Resolve[*counterService](reg); !errors.IsNotRegistered(err) {
		t.Errorf("expected not-registered error, got %v", err)
	}
}

func TestRegistry_DuplicateRegistration(t *testing.T) {
	reg := New()
	first := &counterService{}

	if err := Put(reg, first); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	err := Put(reg, &counterService{})
	if !errors.IsDuplicateRegistration(err) {
		t.Fatalf("expected duplicate-registration error, got %v", err)
	}

	// The original entry is untouched.
	got, err := Resolve[*counterService](reg)
	if err != nil || got != first {
		t.Errorf("expected original instance to survive, got (%v, %v)", got, err)
	}
}

func TestRegistry_InvalidRegistration(t *testing.T) {
	reg := New()
	key := KeyFor[*counterService]()

	if err := reg.Register(key, Registration{}); !errors.IsInvalidRegistration(err) {
		t.Errorf("expected invalid-registration for neither, got %v", err)
	}
	both := Registration{Instance: &counterService{}, Factory: func() any { return &counterService{} }}
	if err := reg.Register(key, both); !errors.IsInvalidRegistration(err) {
		t.Errorf("expected invalid-registration for both, got %v", err)
	}
}

func TestRegistry_LazyFactoryRunsOnce(t *testing.T) {
	reg := New()
	builds := 0
	err := PutFactory(reg, func() *counterService {
		builds++
		return &counterService{}
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if builds != 0 {
		t.Fatalf("factory ran eagerly")
	}

	first, err := Resolve[*counterService](reg)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	second, err := Resolve[*counterService](reg)
	if err != nil {
		t.Fatalf("second get failed: %v", err)
	}

	if first != second {
		t.Error("expected both lookups to return the same built instance")
	}
	if builds != 1 {
		t.Errorf("expected factory to run once, ran %d times", builds)
	}
}

func TestRegistry_NamedCollision(t *testing.T) {
	reg := New()
	unnamed := &counterService{clicks: 1}
	named := &counterService{clicks: 2}

	if err := Put(reg, unnamed); err != nil {
		t.Fatalf("unnamed register failed: %v", err)
	}
	if err := PutNamed(reg, "b", named); err != nil {
		t.Fatalf("named register failed: %v", err)
	}

	got, _ := Resolve[*counterService](reg)
	if got != unnamed {
		t.Error("unnamed lookup returned wrong instance")
	}
	gotNamed, _ := ResolveNamed[*counterService](reg, "b")
	if gotNamed != named {
		t.Error("named lookup returned wrong instance")
	}

	if err := Drop[*counterService](reg); err != nil {
		t.Fatalf("unregister failed: %v", err)
	}
	if !HasNamed[*counterService](reg, "b") {
		t.Error("unregistering the unnamed slot must leave the named slot untouched")
	}
}

func TestRegistry_DisposalRunsOnceAfterRemoval(t *testing.T) {
	reg := New()
	svc := &disposableService{}
	registered := true
	svc.onDispose = func() {
		// Entry is already gone when its own teardown runs.
		registered = Has[*disposableService](reg)
	}

	if err := Put(reg, svc); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if err := Drop[*disposableService](reg); err != nil {
		t.Fatalf("unregister failed: %v", err)
	}

	if svc.disposed != 1 {
		t.Errorf("expected exactly one disposal, got %d", svc.disposed)
	}
	if registered {
		t.Error("expected reentrant lookup during disposal to report not registered")
	}
}

func TestRegistry_UnbuiltEntryNotDisposed(t *testing.T) {
	reg := New()
	built := 0
	err := PutFactory(reg, func() *disposableService {
		built++
		return &disposableService{}
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	// Never resolved: removal must not run the factory just to dispose it.
	if err := Drop[*disposableService](reg); err != nil {
		t.Fatalf("unregister failed: %v", err)
	}
	if built != 0 {
		t.Errorf("expected factory never to run, ran %d times", built)
	}
}

func TestRegistry_MissingTypeParameter(t *testing.T) {
	reg := New()

	if _, err := Resolve[any](reg); !errors.IsMissingTypeParameter(err) {
		t.Errorf("expected missing-type-parameter error, got %v", err)
	}
	if err := Put[any](reg, struct{}{}); !errors.IsMissingTypeParameter(err) {
		t.Errorf("expected missing-type-parameter on register, got %v", err)
	}
	if Has[any](reg) {
		t.Error("IsRegistered with an elided type must report false, not match")
	}
}

func TestRegistry_AmbiguousKey(t *testing.T) {
	reg := New()
	// A name without a type token cannot resolve to a single slot.
	_, err := reg.Get(Key{Name: "orphan"})
	if !errors.IsAmbiguousKey(err) {
		t.Errorf("expected ambiguous-key error, got %v", err)
	}
}

func TestRegistry_ClearDisposesEverything(t *testing.T) {
	reg := New()
	a := &disposableService{}
	b := &disposableService{}
	Put(reg, a)
	PutNamed(reg, "b", b)

	reg.Clear()

	if reg.Len() != 0 {
		t.Errorf("expected empty registry, got %d entries", reg.Len())
	}
	if a.disposed != 1 || b.disposed != 1 {
		t.Errorf("expected both disposals, got %d and %d", a.disposed, b.disposed)
	}
}

func TestRegistry_TypedMismatchReported(t *testing.T) {
	reg := New()
	key := KeyFor[*counterService]()
	if err := reg.Register(key, Registration{Instance: "not a counter"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, err := Resolve[*counterService](reg); !errors.IsAmbiguousKey(err) {
		t.Errorf("expected ambiguous-key error for mismatched stored type, got %v", err)
	}
}

func TestRegistry_FreezeBlocksMutation(t *testing.T) {
	reg := New()
	svc := &counterService{}
	if err := Put(reg, svc); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	reg.Freeze()
	if !reg.IsFrozen() {
		t.Fatal("expected registry to report frozen")
	}

	if err := PutNamed(reg, "late", &counterService{}); !errors.IsFrozenRegistry(err) {
		t.Errorf("expected frozen-registry error on register, got %v", err)
	}
	if err := Drop[*counterService](reg); !errors.IsFrozenRegistry(err) {
		t.Errorf("expected frozen-registry error on unregister, got %v", err)
	}

	// Lookups still work against the frozen wiring.
	got, err := Resolve[*counterService](reg)
	if err != nil || got != svc {
		t.Errorf("expected frozen lookup to succeed, got (%v, %v)", got, err)
	}

	// Clear is the shutdown path and bypasses the freeze.
	reg.Clear()
	if reg.Len() != 0 {
		t.Errorf("expected clear to empty a frozen registry, got %d entries", reg.Len())
	}
}

func TestSharedRegistry_LazyBuildIsAtomic(t *testing.T) {
	reg := NewShared()
	builds := 0
	err := PutFactory(reg, func() *counterService {
		builds++
		return &counterService{}
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	var wg sync.WaitGroup
	results := make([]*counterService, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = Resolve[*counterService](reg)
		}(i)
	}
	wg.Wait()

	if builds != 1 {
		t.Errorf("expected one build across concurrent callers, got %d", builds)
	}
	for i, got := range results {
		if got != results[0] {
			t.Fatalf("caller %d observed a different instance", i)
		}
	}
}

func TestDefaultRegistry_Reset(t *testing.T) {
	t.Cleanup(Reset)

	svc := &disposableService{}
	if err := Put(Default(), svc); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	Reset()

	if svc.disposed != 1 {
		t.Errorf("expected reset to dispose entries, got %d", svc.disposed)
	}
	if Has[*disposableService](Default()) {
		t.Error("expected fresh default registry after reset")
	}
}
