package bootstrap

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"

	appconfig "github.com/clearslot/appointments/internal/config"
	"github.com/clearslot/appointments/internal/notify"
)

func TestBuildRedisClientDisabled(t *testing.T) {
	if c := BuildRedisClient(context.Background(), &appconfig.Config{}, nil, false); c != nil {
		t.Error("expected nil client without an address")
	}
	if c := BuildRedisClient(context.Background(), nil, nil, false); c != nil {
		t.Error("expected nil client without config")
	}
}

func TestBuildRedisClientVerified(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := &appconfig.Config{RedisAddr: mr.Addr()}

	client := BuildRedisClient(context.Background(), cfg, nil, true)
	if client == nil {
		t.Fatal("expected client for reachable redis")
	}
	defer client.Close()
}

func TestBuildRedisClientVerifyFailure(t *testing.T) {
	cfg := &appconfig.Config{RedisAddr: "127.0.0.1:1"}

	if c := BuildRedisClient(context.Background(), cfg, nil, true); c != nil {
		t.Error("expected nil client when ping fails")
	}
}

func TestBuildPoolDisabled(t *testing.T) {
	if p := BuildPool(context.Background(), &appconfig.Config{}, nil); p != nil {
		t.Error("expected nil pool without a database url")
	}
}

func TestBuildReportingDBDisabled(t *testing.T) {
	if db := BuildReportingDB(&appconfig.Config{}, nil); db != nil {
		t.Error("expected nil db without a database url")
	}
}

func TestBuildEmailSenderFallsBackToStub(t *testing.T) {
	sender := BuildEmailSender(&appconfig.Config{}, nil)
	if _, ok := sender.(*notify.StubEmailSender); !ok {
		t.Errorf("expected stub sender, got %T", sender)
	}
}

func TestBuildEmailSenderUsesSendGrid(t *testing.T) {
	cfg := &appconfig.Config{
		SendGridAPIKey:    "test-key",
		SendGridFromEmail: "bookings@example.com",
	}
	sender := BuildEmailSender(cfg, nil)
	if _, ok := sender.(*notify.SendGridSender); !ok {
		t.Errorf("expected sendgrid sender, got %T", sender)
	}
}
