package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestIssueAndParseAccessToken(t *testing.T) {
	svc := NewService("test-secret", "guideomra", 15*time.Minute, time.Hour)
	session := Session{UserID: uuid.New(), Email: "pilgrim@example.com", Role: RolePilgrim}

	pair, err := svc.IssueTokenPair(session)
	if err != nil {
		t.Fatalf("IssueTokenPair: %v", err)
	}
	if pair.ExpiresIn != 900 {
		t.Fatalf("expires_in = %d", pair.ExpiresIn)
	}

	got, err := svc.ParseAccessToken(pair.AccessToken)
	if err != nil {
		t.Fatalf("ParseAccessToken: %v", err)
	}
	if *got != session {
		t.Fatalf("session = %+v, want %+v", *got, session)
	}
}

func TestParseRejectsWrongTokenType(t *testing.T) {
	svc := NewService("test-secret", "guideomra", time.Minute, time.Hour)
	pair, _ := svc.IssueTokenPair(Session{UserID: uuid.New(), Role: RoleGuide})

	if _, err := svc.ParseAccessToken(pair.RefreshToken); !errors.Is(err, ErrInvalidTokenType) {
		t.Fatalf("refresh token accepted as access token: %v", err)
	}
	if _, err := svc.Refresh(pair.AccessToken); !errors.Is(err, ErrInvalidTokenType) {
		t.Fatalf("access token accepted as refresh token: %v", err)
	}

	refreshed, err := svc.Refresh(pair.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if refreshed.AccessToken == "" {
		t.Fatalf("refresh returned no access token")
	}
}

func TestParseRejectsForeignSignature(t *testing.T) {
	issuer := NewService("secret-a", "guideomra", time.Minute, time.Hour)
	verifier := NewService("secret-b", "guideomra", time.Minute, time.Hour)
	pair, _ := issuer.IssueTokenPair(Session{UserID: uuid.New(), Role: RolePilgrim})

	if _, err := verifier.ParseAccessToken(pair.AccessToken); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
	if _, err := verifier.ParseAccessToken("not-a-jwt"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestParseReportsExpiry(t *testing.T) {
	svc := NewService("test-secret", "guideomra", time.Minute, time.Hour).(*service)
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	pair, _ := svc.IssueTokenPair(Session{UserID: uuid.New(), Role: RolePilgrim})

	svc.now = time.Now
	if _, err := svc.ParseAccessToken(pair.AccessToken); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestIssueRequiresUser(t *testing.T) {
	svc := NewService("test-secret", "guideomra", time.Minute, time.Hour)
	if _, err := svc.IssueTokenPair(Session{Role: RolePilgrim}); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("anonymous session got a token: %v", err)
	}
}

func TestSessionRoles(t *testing.T) {
	var anonymous *Session
	if anonymous.IsAuthenticated() || anonymous.HasRole(RolePilgrim) {
		t.Fatalf("nil session must be anonymous")
	}
	guide := &Session{UserID: uuid.New(), Role: RoleGuide}
	if !guide.HasRole(RoleGuide, RoleAdmin) || guide.HasRole(RolePilgrim) {
		t.Fatalf("role check wrong for %+v", guide)
	}
}
