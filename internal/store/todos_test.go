package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"todoapi/internal/store"
)

func TestTodoLifecycle(t *testing.T) {
	_, todos := setupStores(t)
	ctx := context.Background()

	todo, err := todos.Create(ctx, "buy milk")
	if err != nil {
		t.Fatalf("create returned error: %v", err)
	}
	if todo.Completed || todo.CompletedAt != nil {
		t.Fatalf("expected new todo to start incomplete")
	}

	found, err := todos.FindByID(ctx, todo.ID.Hex())
	if err != nil {
		t.Fatalf("find by id returned error: %v", err)
	}
	if found.Text != "buy milk" {
		t.Fatalf("expected text 'buy milk', got %q", found.Text)
	}

	all, err := todos.FindAll(ctx)
	if err != nil {
		t.Fatalf("find all returned error: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected one todo, got %d", len(all))
	}

	before := time.Now().UnixMilli()
	completed, err := todos.UpdateByID(ctx, todo.ID.Hex(), store.DeriveTodoPatch(map[string]any{"completed": true}, time.Now()))
	if err != nil {
		t.Fatalf("update returned error: %v", err)
	}
	if !completed.Completed || completed.CompletedAt == nil || *completed.CompletedAt < before {
		t.Fatalf("expected completion to stamp a fresh timestamp, got %+v", completed)
	}

	reopened, err := todos.UpdateByID(ctx, todo.ID.Hex(), store.DeriveTodoPatch(map[string]any{"completed": false}, time.Now()))
	if err != nil {
		t.Fatalf("update returned error: %v", err)
	}
	if reopened.Completed || reopened.CompletedAt != nil {
		t.Fatalf("expected reopening to clear completedAt, got %+v", reopened)
	}

	deleted, err := todos.DeleteByID(ctx, todo.ID.Hex())
	if err != nil {
		t.Fatalf("delete returned error: %v", err)
	}
	if deleted.ID != todo.ID {
		t.Fatalf("expected deleted doc to be returned")
	}

	if _, err := todos.FindByID(ctx, todo.ID.Hex()); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected deleted todo to be gone, got %v", err)
	}
}

func TestTodoInvalidAndMissingIDs(t *testing.T) {
	_, todos := setupStores(t)
	ctx := context.Background()

	missing := primitive.NewObjectID().Hex()
	patch := store.DeriveTodoPatch(map[string]any{"completed": true}, time.Now())

	for _, id := range []string{"1234", missing} {
		if _, err := todos.FindByID(ctx, id); !errors.Is(err, store.ErrNotFound) {
			t.Fatalf("expected not found for id %q, got %v", id, err)
		}
		if _, err := todos.DeleteByID(ctx, id); !errors.Is(err, store.ErrNotFound) {
			t.Fatalf("expected not found deleting id %q, got %v", id, err)
		}
		if _, err := todos.UpdateByID(ctx, id, patch); !errors.Is(err, store.ErrNotFound) {
			t.Fatalf("expected not found updating id %q, got %v", id, err)
		}
	}
}
