package storage

import (
	"context"
	"errors"
	"testing"
)

func TestNew_RejectsEmptyKind(t *testing.T) {
	if _, err := New(context.Background(), Config{}); err == nil {
		t.Fatalf("expected error for empty kind")
	}
}

func TestNew_RejectsUnknownKind(t *testing.T) {
	if _, err := New(context.Background(), Config{Kind: "no-such-backend"}); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
}

func TestNew_DelegatesToFactory(t *testing.T) {
	wantErr := errors.New("factory called")
	Register("test-delegate", func(ctx context.Context, cfg Config) (Store, error) {
		if cfg.DSN != "dsn-value" {
			t.Errorf("cfg.DSN = %q, want dsn-value", cfg.DSN)
		}
		return nil, wantErr
	})

	_, err := New(context.Background(), Config{Kind: "test-delegate", DSN: "dsn-value"})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected factory error, got %v", err)
	}
}

func TestRegister_PanicsOnDuplicate(t *testing.T) {
	f := func(ctx context.Context, cfg Config) (Store, error) { return nil, nil }
	Register("test-dup", f)

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on duplicate registration")
		}
	}()
	Register("test-dup", f)
}

func TestRegister_PanicsOnEmptyKindAndNilFactory(t *testing.T) {
	mustPanic := func(name string, fn func()) {
		defer func() {
			if recover() == nil {
				t.Errorf("%s: expected panic", name)
			}
		}()
		fn()
	}
	mustPanic("empty kind", func() {
		Register("", func(ctx context.Context, cfg Config) (Store, error) { return nil, nil })
	})
	mustPanic("nil factory", func() { Register("test-nil", nil) })
}
