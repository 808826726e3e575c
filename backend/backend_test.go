package backend

import (
	"errors"
	"testing"

	"github.com/gogpu/ember"
)

// stubBackend is a minimal RenderBackend for registry tests. The real
// backends live in sub-packages and cannot be imported here without a
// cycle.
type stubBackend struct {
	name    string
	initErr error
	inited  bool
	closed  bool
}

func (b *stubBackend) Name() string { return b.name }

func (b *stubBackend) Init() error {
	if b.initErr != nil {
		return b.initErr
	}
	b.inited = true
	return nil
}

func (b *stubBackend) Close() { b.closed = true }

func (b *stubBackend) Submit(*Frame) error { return nil }

func (b *stubBackend) CreateTexture(width, height, layers int) (ember.TextureID, error) {
	return 1, nil
}

func (b *stubBackend) UploadTexture(ember.TextureID, int, int, int, int, int, []byte) error {
	return nil
}

func (b *stubBackend) DestroyTexture(ember.TextureID) {}

func (b *stubBackend) CreateTarget(width, height int) (ember.TargetID, ember.TextureID, error) {
	return 1, 1, nil
}

func (b *stubBackend) DestroyTarget(ember.TargetID) {}

func (b *stubBackend) PushTarget(ember.TargetID) error { return nil }

func (b *stubBackend) PopTarget() error { return ErrNoTarget }

// install registers a stub under name and removes it when the test ends.
func install(t *testing.T, name string) *stubBackend {
	t.Helper()
	b := &stubBackend{name: name}
	Register(name, func() RenderBackend { return b })
	t.Cleanup(func() { Unregister(name) })
	return b
}

func TestRegistryRegisterAndGet(t *testing.T) {
	install(t, "stub")

	if !IsRegistered("stub") {
		t.Error("stub backend should be registered")
	}

	b := Get("stub")
	if b == nil {
		t.Fatal("Get(stub) returned nil")
	}
	if b.Name() != "stub" {
		t.Errorf("Get(stub).Name() = %q, want %q", b.Name(), "stub")
	}
}

func TestRegistryGetUnregistered(t *testing.T) {
	b := Get("nonexistent")
	if b != nil {
		t.Error("Get(nonexistent) should return nil")
	}
}

func TestRegistryAvailable(t *testing.T) {
	install(t, "stub-a")
	install(t, "stub-b")

	available := Available()
	found := 0
	for _, name := range available {
		if name == "stub-a" || name == "stub-b" {
			found++
		}
	}
	if found != 2 {
		t.Errorf("Available() = %v, want both stub-a and stub-b", available)
	}
}

func TestRegistryIsRegistered(t *testing.T) {
	install(t, "stub")

	if !IsRegistered("stub") {
		t.Error("stub should be registered")
	}
	if IsRegistered("nonexistent") {
		t.Error("nonexistent should not be registered")
	}
}

func TestRegistryUnregister(t *testing.T) {
	Register("temp-backend", func() RenderBackend {
		return &stubBackend{name: "temp-backend"}
	})

	if !IsRegistered("temp-backend") {
		t.Error("temp-backend should be registered")
	}

	Unregister("temp-backend")

	if IsRegistered("temp-backend") {
		t.Error("temp-backend should be unregistered")
	}
}

func TestRegistryDefaultPriority(t *testing.T) {
	install(t, BackendHeadless)
	install(t, BackendWGPU)

	b := Default()
	if b == nil {
		t.Fatal("Default() returned nil")
	}
	if b.Name() != BackendWGPU {
		t.Errorf("Default().Name() = %q, want %q", b.Name(), BackendWGPU)
	}
}

func TestRegistryDefaultFallback(t *testing.T) {
	// A backend outside the priority list is still picked up when it
	// is the only one registered.
	install(t, "custom")

	b := Default()
	if b == nil {
		t.Fatal("Default() returned nil")
	}
	if b.Name() != "custom" {
		t.Errorf("Default().Name() = %q, want %q", b.Name(), "custom")
	}
}

func TestRegistryDefaultEmpty(t *testing.T) {
	if b := Default(); b != nil {
		t.Errorf("Default() with empty registry = %v, want nil", b)
	}
}

func TestRegistryMustDefaultPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("MustDefault() with empty registry should panic")
		}
	}()
	MustDefault()
}

func TestRegistryMustDefault(t *testing.T) {
	install(t, "stub")

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("MustDefault() panicked: %v", r)
		}
	}()
	b := MustDefault()
	if b == nil {
		t.Error("MustDefault() returned nil")
	}
}

func TestRegistryInitDefault(t *testing.T) {
	stub := install(t, "stub")

	b, err := InitDefault()
	if err != nil {
		t.Fatalf("InitDefault() error = %v", err)
	}
	if b == nil {
		t.Fatal("InitDefault() returned nil backend")
	}
	if !stub.inited {
		t.Error("InitDefault() should call Init on the backend")
	}
	b.Close()
}

func TestRegistryInitDefaultEmpty(t *testing.T) {
	_, err := InitDefault()
	if !errors.Is(err, ErrBackendNotAvailable) {
		t.Errorf("InitDefault() error = %v, want ErrBackendNotAvailable", err)
	}
}

func TestRegistryInitDefaultInitError(t *testing.T) {
	wantErr := errors.New("no device")
	b := &stubBackend{name: "stub", initErr: wantErr}
	Register("stub", func() RenderBackend { return b })
	t.Cleanup(func() { Unregister("stub") })

	_, err := InitDefault()
	if !errors.Is(err, wantErr) {
		t.Errorf("InitDefault() error = %v, want %v", err, wantErr)
	}
}
