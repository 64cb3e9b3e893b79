package session

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"

	"earningsnerd_backend/internal/feature/auth/domain/entity"
	"earningsnerd_backend/internal/feature/auth/usecase"
)

func testSession() *entity.Session {
	return &entity.Session{
		ID:         "sess-abc",
		UserID:     9,
		UserAgent:  "test-agent",
		CreatedAt:  time.Now().UTC(),
		ExpiresAt:  time.Now().UTC().Add(30 * 24 * time.Hour),
	}
}

func TestSessionRedis_Create(t *testing.T) {
	t.Parallel()

	t.Run("stores the session and tracks it under the user set", func(t *testing.T) {
		t.Parallel()

		rdb, mock := redismock.NewClientMock()
		defer func() { _ = rdb.Close() }()

		s := testSession()
		b, _ := json.Marshal(s)

		// The TTL is derived from time.Now inside Create; match loosely.
		mock.CustomMatch(func(expected, actual []interface{}) error {
			return nil
		}).ExpectSet("sessions:sess-abc", b, time.Until(s.ExpiresAt)).SetVal("OK")
		mock.ExpectSAdd("sessions:user:9", "sess-abc").SetVal(1)

		store := NewSessionRedis(rdb, "sessions")
		if err := store.Create(context.Background(), s); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unfulfilled mock expectations: %v", err)
		}
	})

	t.Run("rejects an already expired session", func(t *testing.T) {
		t.Parallel()

		rdb, _ := redismock.NewClientMock()
		defer func() { _ = rdb.Close() }()

		s := testSession()
		s.ExpiresAt = time.Now().Add(-time.Minute)

		store := NewSessionRedis(rdb, "sessions")
		if err := store.Create(context.Background(), s); err == nil {
			t.Fatal("expected error, got nil")
		}
	})

	t.Run("nil client returns ErrStoreUnavailable", func(t *testing.T) {
		t.Parallel()

		store := NewSessionRedis(nil, "sessions")
		if err := store.Create(context.Background(), testSession()); err != ErrStoreUnavailable {
			t.Errorf("expected ErrStoreUnavailable, got %v", err)
		}
	})
}

func TestSessionRedis_FindByID(t *testing.T) {
	t.Parallel()

	t.Run("returns the stored session", func(t *testing.T) {
		t.Parallel()

		rdb, mock := redismock.NewClientMock()
		defer func() { _ = rdb.Close() }()

		s := testSession()
		b, _ := json.Marshal(s)
		mock.ExpectGet("sessions:sess-abc").SetVal(string(b))

		store := NewSessionRedis(rdb, "sessions")
		got, err := store.FindByID(context.Background(), "sess-abc")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.UserID != s.UserID || got.ID != s.ID {
			t.Errorf("expected session %+v, got %+v", s, got)
		}
	})

	t.Run("missing session maps to ErrSessionNotFound", func(t *testing.T) {
		t.Parallel()

		rdb, mock := redismock.NewClientMock()
		defer func() { _ = rdb.Close() }()

		mock.ExpectGet("sessions:missing").RedisNil()

		store := NewSessionRedis(rdb, "sessions")
		_, err := store.FindByID(context.Background(), "missing")
		if err != usecase.ErrSessionNotFound {
			t.Errorf("expected ErrSessionNotFound, got %v", err)
		}
	})

	t.Run("nil client returns ErrStoreUnavailable", func(t *testing.T) {
		t.Parallel()

		store := NewSessionRedis(nil, "sessions")
		if _, err := store.FindByID(context.Background(), "sess-abc"); err != ErrStoreUnavailable {
			t.Errorf("expected ErrStoreUnavailable, got %v", err)
		}
	})
}

func TestSessionRedis_Revoke(t *testing.T) {
	t.Parallel()

	t.Run("marks the session revoked and keeps it until expiry", func(t *testing.T) {
		t.Parallel()

		rdb, mock := redismock.NewClientMock()
		defer func() { _ = rdb.Close() }()

		s := testSession()
		b, _ := json.Marshal(s)

		mock.ExpectGet("sessions:sess-abc").SetVal(string(b))
		// RevokedAt and the remaining TTL are stamped inside Revoke; match loosely.
		mock.CustomMatch(func(expected, actual []interface{}) error {
			return nil
		}).ExpectSet("sessions:sess-abc", b, time.Until(s.ExpiresAt)).SetVal("OK")

		store := NewSessionRedis(rdb, "sessions")
		if err := store.Revoke(context.Background(), "sess-abc"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unfulfilled mock expectations: %v", err)
		}
	})

	t.Run("revoking a missing session surfaces ErrSessionNotFound", func(t *testing.T) {
		t.Parallel()

		rdb, mock := redismock.NewClientMock()
		defer func() { _ = rdb.Close() }()

		mock.ExpectGet("sessions:missing").RedisNil()

		store := NewSessionRedis(rdb, "sessions")
		if err := store.Revoke(context.Background(), "missing"); err != usecase.ErrSessionNotFound {
			t.Errorf("expected ErrSessionNotFound, got %v", err)
		}
	})
}

func TestSessionRedis_RevokeAllByUserID(t *testing.T) {
	t.Parallel()

	t.Run("revokes every tracked session", func(t *testing.T) {
		t.Parallel()

		rdb, mock := redismock.NewClientMock()
		defer func() { _ = rdb.Close() }()

		s := testSession()
		b, _ := json.Marshal(s)

		mock.ExpectSMembers("sessions:user:9").SetVal([]string{"sess-abc"})
		mock.ExpectGet("sessions:sess-abc").SetVal(string(b))
		mock.CustomMatch(func(expected, actual []interface{}) error {
			return nil
		}).ExpectSet("sessions:sess-abc", b, time.Until(s.ExpiresAt)).SetVal("OK")

		store := NewSessionRedis(rdb, "sessions")
		if err := store.RevokeAllByUserID(context.Background(), 9); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unfulfilled mock expectations: %v", err)
		}
	})

	t.Run("sessions already expired from the store are skipped", func(t *testing.T) {
		t.Parallel()

		rdb, mock := redismock.NewClientMock()
		defer func() { _ = rdb.Close() }()

		mock.ExpectSMembers("sessions:user:9").SetVal([]string{"gone"})
		mock.ExpectGet("sessions:gone").RedisNil()

		store := NewSessionRedis(rdb, "sessions")
		if err := store.RevokeAllByUserID(context.Background(), 9); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("nil client returns ErrStoreUnavailable", func(t *testing.T) {
		t.Parallel()

		store := NewSessionRedis(nil, "sessions")
		if err := store.RevokeAllByUserID(context.Background(), 9); err != ErrStoreUnavailable {
			t.Errorf("expected ErrStoreUnavailable, got %v", err)
		}
	})
}
