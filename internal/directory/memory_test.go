// Copyright (c) 2026 Paneldir Authors
// Paneldir - account directory console for hosted panels
// This source code is licensed under the MIT license found in the LICENSE file.

package directory

import (
	"context"
	"testing"
)

func TestMemoryClient_CreateListDelete(t *testing.T) {
	m := NewMemoryClient()
	ctx := context.Background()

	acc, err := m.CreateAccount(ctx, NewAccount{Username: "alice", Password: "pw", TrafficLimitGB: 50, ExpireDays: 30})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if acc.ID == "" || !acc.IsActive {
		t.Fatalf("created account incomplete: %+v", acc)
	}
	if acc.TrafficLimitGB == nil || *acc.TrafficLimitGB != 50 {
		t.Fatalf("expected limit 50, got %+v", acc.TrafficLimitGB)
	}
	if acc.ExpireAt == nil {
		t.Fatal("expected expiry to be set for ExpireDays=30")
	}

	accounts, err := m.ListAccounts(ctx)
	if err != nil || len(accounts) != 1 {
		t.Fatalf("expected 1 account, got %d (err %v)", len(accounts), err)
	}

	if err := m.DeleteAccount(ctx, acc.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	accounts, _ = m.ListAccounts(ctx)
	if len(accounts) != 0 {
		t.Fatalf("expected empty directory after delete, got %d", len(accounts))
	}
}

func TestMemoryClient_DuplicateUsername(t *testing.T) {
	m := NewMemoryClient()
	ctx := context.Background()
	if _, err := m.CreateAccount(ctx, NewAccount{Username: "alice", Password: "pw"}); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	_, err := m.CreateAccount(ctx, NewAccount{Username: "alice", Password: "pw2"})
	if ErrorDetail(err) != "username already exists" {
		t.Fatalf("expected duplicate detail, got %v", err)
	}
}

func TestMemoryClient_ZeroLimitStoredAsUnlimited(t *testing.T) {
	m := NewMemoryClient()
	acc, err := m.CreateAccount(context.Background(), NewAccount{Username: "bob", Password: "pw", TrafficLimitGB: 0, ExpireDays: 0})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if acc.TrafficLimitGB != nil {
		t.Fatalf("zero draft limit should store as absent, got %v", *acc.TrafficLimitGB)
	}
	if acc.ExpireAt != nil {
		t.Fatal("zero expire days should store as never expiring")
	}
}

func TestMemoryClient_DeleteUnknownID(t *testing.T) {
	err := NewMemoryClient().DeleteAccount(context.Background(), "nope")
	if _, ok := err.(*Error); !ok {
		t.Fatalf("expected directory error, got %v", err)
	}
}
