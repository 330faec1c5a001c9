package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/arlden/adpanel/internal/apperror"
	"github.com/arlden/adpanel/internal/gateway"
)

// --- Mock Gateway ---

// mockGateway implements gateway.Client for testing. Only the auth
// operations matter here; the rest return zero values.
type mockGateway struct {
	loginFn  func(ctx context.Context, creds gateway.Credentials) (string, error)
	logoutFn func(ctx context.Context) error

	logoutCalls int
	logoutToken string
}

func (m *mockGateway) Login(ctx context.Context, creds gateway.Credentials) (string, error) {
	if m.loginFn != nil {
		return m.loginFn(ctx, creds)
	}
	return "remote-token", nil
}

func (m *mockGateway) Logout(ctx context.Context) error {
	m.logoutCalls++
	m.logoutToken = gateway.ContextToken(ctx)
	if m.logoutFn != nil {
		return m.logoutFn(ctx)
	}
	return nil
}

func (m *mockGateway) Register(ctx context.Context, reg gateway.Registration) error {
	return nil
}

func (m *mockGateway) FetchProfile(ctx context.Context) (gateway.Profile, error) {
	return gateway.Profile{Name: "Alice"}, nil
}

func (m *mockGateway) ListCampaigns(ctx context.Context) ([]gateway.Campaign, error) {
	return nil, nil
}

func (m *mockGateway) GetCampaign(ctx context.Context, id int64) (gateway.Campaign, error) {
	return gateway.Campaign{}, apperror.NewNotFound("record not found")
}

func (m *mockGateway) SaveCampaign(ctx context.Context, campaign gateway.Campaign) error {
	return nil
}

func (m *mockGateway) DeleteCampaign(ctx context.Context, id int64) error {
	return nil
}

func (m *mockGateway) FetchBudgetSums(ctx context.Context) (gateway.BudgetSums, error) {
	return gateway.BudgetSums{}, nil
}

func (m *mockGateway) FetchRecordsByMonth(ctx context.Context, month string) ([]gateway.MonthlyRecord, error) {
	return nil, nil
}

// --- Test Helpers ---

func newTestService(t *testing.T, gw gateway.Client) Service {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewService(gw, rdb, time.Hour)
}

// --- Tests ---

func TestLoginCreatesSession(t *testing.T) {
	gw := &mockGateway{}
	svc := newTestService(t, gw)

	token, err := svc.Login(context.Background(), gateway.Credentials{Email: "alice@example.com", Password: "pw"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token == "" {
		t.Fatal("expected a session token")
	}

	session, err := svc.Validate(context.Background(), token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if session.RemoteToken != "remote-token" {
		t.Errorf("expected remote token to be stored, got %q", session.RemoteToken)
	}
	if session.Email != "alice@example.com" {
		t.Errorf("expected email alice@example.com, got %q", session.Email)
	}
	if session.Name != "Alice" {
		t.Errorf("expected profile name Alice, got %q", session.Name)
	}
}

func TestLoginFailureLeavesNoSession(t *testing.T) {
	gw := &mockGateway{
		loginFn: func(ctx context.Context, creds gateway.Credentials) (string, error) {
			return "", apperror.NewUnauthorized("invalid email or password")
		},
	}
	svc := newTestService(t, gw)

	token, err := svc.Login(context.Background(), gateway.Credentials{Email: "x@y.z", Password: "nope"})
	if err == nil {
		t.Fatal("expected an error")
	}
	if token != "" {
		t.Errorf("expected no token, got %q", token)
	}
}

func TestValidateUnknownToken(t *testing.T) {
	svc := newTestService(t, &mockGateway{})

	_, err := svc.Validate(context.Background(), "never-issued")
	if err == nil {
		t.Fatal("expected an error")
	}
	if !apperror.IsType(err, apperror.TypeUnauth) {
		t.Errorf("expected unauthorized, got %v", err)
	}
}

func TestLogoutDestroysSessionAndCallsRemote(t *testing.T) {
	gw := &mockGateway{}
	svc := newTestService(t, gw)

	token, err := svc.Login(context.Background(), gateway.Credentials{Email: "a@b.c", Password: "pw"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if err := svc.Logout(context.Background(), token); err != nil {
		t.Fatalf("logout: %v", err)
	}

	if gw.logoutCalls != 1 {
		t.Errorf("expected 1 remote logout call, got %d", gw.logoutCalls)
	}
	if gw.logoutToken != "remote-token" {
		t.Errorf("expected remote token attached to logout, got %q", gw.logoutToken)
	}

	if _, err := svc.Validate(context.Background(), token); err == nil {
		t.Error("expected session to be gone after logout")
	}
}

func TestLogoutClearsLocalSessionWhenRemoteFails(t *testing.T) {
	gw := &mockGateway{
		logoutFn: func(ctx context.Context) error {
			return apperror.NewNetwork(context.DeadlineExceeded)
		},
	}
	svc := newTestService(t, gw)

	token, err := svc.Login(context.Background(), gateway.Credentials{Email: "a@b.c", Password: "pw"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if err := svc.Logout(context.Background(), token); err != nil {
		t.Fatalf("logout should succeed despite remote failure: %v", err)
	}
	if _, err := svc.Validate(context.Background(), token); err == nil {
		t.Error("expected session to be gone")
	}
}
