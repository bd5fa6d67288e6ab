package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
)

func TestConnect_Pings(t *testing.T) {
	srv := miniredis.RunT(t)
	srv.RequireAuth("secret")

	client, err := Connect(context.Background(), Config{Addr: srv.Addr(), Password: "secret"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer client.Close()
}

func TestConnect_WrongPassword(t *testing.T) {
	srv := miniredis.RunT(t)
	srv.RequireAuth("secret")

	if _, err := Connect(context.Background(), Config{Addr: srv.Addr(), Password: "nope"}); err == nil {
		t.Fatal("expected ping to fail")
	}
}

func TestConnect_EmptyAddr(t *testing.T) {
	if _, err := Connect(context.Background(), Config{}); err == nil {
		t.Fatal("expected error for empty address")
	}
}
