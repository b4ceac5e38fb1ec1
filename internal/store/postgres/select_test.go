package postgres

import "testing"

func TestDSN(t *testing.T) {
	tests := []struct {
		name string
		cfg  ClientConfig
		want string
	}{
		{
			name: "explicit dsn wins",
			cfg:  ClientConfig{DSN: "postgres://u@h/db", Host: "ignored"},
			want: "postgres://u@h/db",
		},
		{
			name: "defaults",
			cfg:  ClientConfig{Host: "localhost", Database: "markets", User: "reader", Password: "pw"},
			want: "postgres://reader:pw@localhost:5432/markets?sslmode=disable",
		},
		{
			name: "explicit port and ssl",
			cfg:  ClientConfig{Host: "db", Port: 6543, Database: "m", User: "u", Password: "p", SSLMode: "require"},
			want: "postgres://u:p@db:6543/m?sslmode=require",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DSN(tt.cfg); got != tt.want {
				t.Errorf("DSN() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWiden(t *testing.T) {
	for _, v := range []any{int16(3), int32(3), 3, int64(3)} {
		if got := widen(v); got != int64(3) {
			t.Errorf("widen(%T) = %v (%T), want int64 3", v, got, got)
		}
	}
	if got := widen("x"); got != "x" {
		t.Errorf("widen(string) = %v", got)
	}
	if got := widen(nil); got != nil {
		t.Errorf("widen(nil) = %v", got)
	}
}
