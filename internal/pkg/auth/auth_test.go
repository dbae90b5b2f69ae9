package auth

import (
	"encoding/base64"
	"errors"
	"fmt"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
)

func TestHMACStrategyRoundTrip(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{TTL: time.Hour})

	token, err := strategy.IssueToken("8f14e45f-ceea-4e8f-9b6a-000000000001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	userID, err := strategy.ParseToken(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if userID != "8f14e45f-ceea-4e8f-9b6a-000000000001" {
		t.Fatalf("unexpected user id: %s", userID)
	}
}

func TestHMACStrategyRejectsBadUserIDs(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{})

	if _, err := strategy.IssueToken(""); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for empty id, got %v", err)
	}
	if _, err := strategy.IssueToken("user:1"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for colon in id, got %v", err)
	}
}

func TestHMACStrategyRejectsTampering(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{TTL: time.Hour})
	other := NewHMACStrategy("other-secret", Options{TTL: time.Hour})

	token, err := strategy.IssueToken("u-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := other.ParseToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected rejection with wrong secret, got %v", err)
	}
	if _, err := strategy.ParseToken("not-base64!"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected rejection of malformed token, got %v", err)
	}
	if _, err := strategy.ParseToken(""); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected rejection of empty token, got %v", err)
	}
}

func TestHMACStrategyExpiry(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{TTL: time.Hour})

	// Forge a correctly signed token that expired an hour ago.
	payload := fmt.Sprintf("u-1:%d", time.Now().Add(-time.Hour).Unix())
	expired := base64.StdEncoding.EncodeToString([]byte(payload + ":" + strategy.sign(payload)))

	if _, err := strategy.ParseToken(expired); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected expired token rejection, got %v", err)
	}
}

func TestHMACStrategyName(t *testing.T) {
	if got := NewHMACStrategy("secret", Options{}).Name(); got != "hmac" {
		t.Fatalf("unexpected name: %s", got)
	}
}

func TestBcryptHasher(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)

	hash, err := hasher.Hash("secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hash == "secret" {
		t.Fatal("hash must differ from the password")
	}

	if err := hasher.Compare(hash, "secret"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := hasher.Compare(hash, "wrong"); err == nil {
		t.Fatal("expected mismatch error")
	}
}
