package services

import (
	"context"
	"testing"
)

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	if _, ok := RunIDFromContext(ctx); ok {
		t.Fatal("expected no run id on empty context")
	}
	ctx = WithRunID(ctx, "run-1")
	ctx = WithTake(ctx, 7)
	ctx = WithScene(ctx, "Forest")

	if id, ok := RunIDFromContext(ctx); !ok || id != "run-1" {
		t.Fatalf("unexpected run id %q (%v)", id, ok)
	}
	if take, ok := TakeFromContext(ctx); !ok || take != 7 {
		t.Fatalf("unexpected take %d (%v)", take, ok)
	}
	if scene, ok := SceneFromContext(ctx); !ok || scene != "Forest" {
		t.Fatalf("unexpected scene %q (%v)", scene, ok)
	}
}

func TestEmptyValuesAreIgnored(t *testing.T) {
	ctx := WithScene(WithRunID(context.Background(), ""), "")
	if _, ok := RunIDFromContext(ctx); ok {
		t.Fatal("empty run id should not be stored")
	}
	if _, ok := SceneFromContext(ctx); ok {
		t.Fatal("empty scene should not be stored")
	}
}
