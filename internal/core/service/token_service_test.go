package service

import (
	"errors"
	"testing"
	"time"

	"github.com/videotube/videotube-api/internal/core/domain"
)

func TestTokenService_IssueAndVerify(t *testing.T) {
	svc := NewTokenService("access-secret", "refresh-secret", time.Hour, 24*time.Hour)

	access, err := svc.IssueAccess("user-1")
	if err != nil {
		t.Fatalf("IssueAccess returned error: %v", err)
	}
	refresh, err := svc.IssueRefresh("user-1")
	if err != nil {
		t.Fatalf("IssueRefresh returned error: %v", err)
	}
	if access == refresh {
		t.Fatalf("expected distinct tokens per class")
	}

	if id, err := svc.VerifyAccess(access); err != nil || id != "user-1" {
		t.Fatalf("VerifyAccess = (%q, %v), want (user-1, nil)", id, err)
	}
	if id, err := svc.VerifyRefresh(refresh); err != nil || id != "user-1" {
		t.Fatalf("VerifyRefresh = (%q, %v), want (user-1, nil)", id, err)
	}
}

func TestTokenService_ClassesDoNotCross(t *testing.T) {
	svc := NewTokenService("access-secret", "refresh-secret", time.Hour, 24*time.Hour)

	access, _ := svc.IssueAccess("user-1")
	refresh, _ := svc.IssueRefresh("user-1")

	if _, err := svc.VerifyRefresh(access); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("access token accepted as refresh token: %v", err)
	}
	if _, err := svc.VerifyAccess(refresh); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("refresh token accepted as access token: %v", err)
	}
}

func TestTokenService_Expiry(t *testing.T) {
	svc := NewTokenService("access-secret", "refresh-secret", time.Hour, 24*time.Hour)

	now := time.Now()
	svc.now = func() time.Time { return now }
	access, _ := svc.IssueAccess("user-1")

	svc.now = func() time.Time { return now.Add(2 * time.Hour) }
	if _, err := svc.VerifyAccess(access); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestTokenService_GarbageRejected(t *testing.T) {
	svc := NewTokenService("access-secret", "refresh-secret", time.Hour, 24*time.Hour)

	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := svc.VerifyAccess(tok); !errors.Is(err, domain.ErrInvalidToken) {
			t.Fatalf("token %q: expected ErrInvalidToken, got %v", tok, err)
		}
	}
}
