package service

import "testing"

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("Passw0rd!")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	empty := ""

	tests := []struct {
		name     string
		password string
		hashed   *string
		want     bool
	}{
		{name: "correct", password: "Passw0rd!", hashed: &hash, want: true},
		{name: "wrong", password: "passw0rd!", hashed: &hash, want: false},
		{name: "nil-hash", password: "Passw0rd!", hashed: nil, want: false},
		{name: "empty-hash", password: "Passw0rd!", hashed: &empty, want: false},
		{name: "empty-password", password: "", hashed: &hash, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := VerifyPassword(tt.password, tt.hashed); got != tt.want {
				t.Fatalf("VerifyPassword() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHashPasswordSalted(t *testing.T) {
	h1, err := HashPassword("Passw0rd!")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	h2, err := HashPassword("Passw0rd!")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if h1 == h2 {
		t.Fatalf("expected distinct hashes for the same password")
	}
}
