package agent

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestExecutor(t *testing.T) {
	ctx := context.Background()

	t.Run("Success carries the handler value", func(t *testing.T) {
		reg := NewRegistry()
		reg.MustRegister(&Descriptor{
			Name: "search",
			Handler: func(ctx context.Context, args map[string]any) (any, error) {
				return map[string]any{"count": 2}, nil
			},
		})
		exec := NewExecutor(reg, nil)

		out := exec.Execute(ctx, Invocation{Name: "search"})
		if !out.Succeeded() {
			t.Fatalf("expected success, got error %v", out.Error)
		}
		if out.Name != "search" {
			t.Errorf("expected outcome name 'search', got %q", out.Name)
		}
	})

	t.Run("Handler error becomes an outcome error", func(t *testing.T) {
		reg := NewRegistry()
		reg.MustRegister(&Descriptor{
			Name: "search",
			Handler: func(ctx context.Context, args map[string]any) (any, error) {
				return nil, errors.New("timeout")
			},
		})
		exec := NewExecutor(reg, nil)

		out := exec.Execute(ctx, Invocation{Name: "search"})
		if !out.Failed() {
			t.Fatal("expected failure")
		}
		if *out.Error != "timeout" {
			t.Errorf("expected error 'timeout', got %q", *out.Error)
		}
		if out.Value != nil {
			t.Errorf("expected nil value on failure, got %v", out.Value)
		}
	})

	t.Run("Unknown tool becomes an outcome error", func(t *testing.T) {
		exec := NewExecutor(NewRegistry(), nil)

		out := exec.Execute(ctx, Invocation{Name: "ghost"})
		if !out.Failed() {
			t.Fatal("expected failure")
		}
		if *out.Error != "Unknown tool: ghost" {
			t.Errorf("unexpected error text %q", *out.Error)
		}
	})

	t.Run("Handler panic is contained", func(t *testing.T) {
		reg := NewRegistry()
		reg.MustRegister(&Descriptor{
			Name: "boom",
			Handler: func(ctx context.Context, args map[string]any) (any, error) {
				panic(fmt.Errorf("index out of range"))
			},
		})
		exec := NewExecutor(reg, nil)

		out := exec.Execute(ctx, Invocation{Name: "boom"})
		if !out.Failed() {
			t.Fatal("expected panic folded into failure")
		}
		if *out.Error != "index out of range" {
			t.Errorf("unexpected error text %q", *out.Error)
		}
	})

	t.Run("Args reach the handler", func(t *testing.T) {
		reg := NewRegistry()
		reg.MustRegister(&Descriptor{
			Name: "echo",
			Handler: func(ctx context.Context, args map[string]any) (any, error) {
				return args["q"], nil
			},
		})
		exec := NewExecutor(reg, nil)

		out := exec.Execute(ctx, Invocation{Name: "echo", Args: map[string]any{"q": "cafe"}})
		if out.Value != "cafe" {
			t.Errorf("expected value 'cafe', got %v", out.Value)
		}
	})
}
