// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-task-keeper/models"
	"github.com/google/uuid"
)

func TestContextKeyString(t *testing.T) {
	key := contextKey("testKey")
	if key.String() != "testKey" {
		t.Errorf("expected 'testKey', got '%s'", key.String())
	}
}

func TestIdentityCtxKey(t *testing.T) {
	if IdentityCtxKey.String() != "identity" {
		t.Errorf("expected 'identity', got '%s'", IdentityCtxKey.String())
	}
}

func TestGetIdentityFromContext_Success(t *testing.T) {
	want := models.Identity{UserID: uuid.New(), Username: "alice", Email: "alice@example.com"}
	ctx := WithIdentity(context.Background(), want)

	got, ok := GetIdentityFromContext(ctx)

	if !ok {
		t.Fatal("expected ok=true, got false")
	}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestGetIdentityFromContext_Missing(t *testing.T) {
	got, ok := GetIdentityFromContext(context.Background())

	if ok {
		t.Fatal("expected ok=false, got true")
	}
	if got.UserID != uuid.Nil {
		t.Errorf("expected zero identity, got %+v", got)
	}
}

func TestGetIdentityFromContext_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), IdentityCtxKey, "not-an-identity")

	if _, ok := GetIdentityFromContext(ctx); ok {
		t.Fatal("expected ok=false for wrong type, got true")
	}
}

func TestGetIdentityFromContext_DifferentKey(t *testing.T) {
	ctx := context.WithValue(context.Background(), contextKey("otherKey"), models.Identity{UserID: uuid.New()})

	if _, ok := GetIdentityFromContext(ctx); ok {
		t.Fatal("expected ok=false for different key, got true")
	}
}

func TestUUIDGenerator_Generate(t *testing.T) {
	g := NewUUIDGenerator()

	first, second := g.Generate(), g.Generate()

	if first.Version() != 7 {
		t.Errorf("expected version 7, got %d", first.Version())
	}
	if first == second {
		t.Error("expected distinct identifiers")
	}
}
