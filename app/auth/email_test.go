package auth

import "testing"

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"User@Example.COM", "user@example.com"},
		{"  padded@example.com  ", "padded@example.com"},
		{"already@lower.net", "already@lower.net"},
		{"MiXeD@CaSe.Org", "mixed@case.org"},
	}

	for _, tt := range tests {
		if got := NormalizeEmail(tt.input); got != tt.expected {
			t.Errorf("NormalizeEmail(%q) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{
		"user@example.com",
		"a@b.co",
		"first.last@sub.domain.org",
	}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("Expected %q to be valid", email)
		}
	}

	invalid := []string{
		"",
		"plainstring",
		"missing-domain@",
		"@missing-local.com",
		"no-dot@domain",
		"spaces in@example.com",
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("Expected %q to be invalid", email)
		}
	}
}

func TestPasswordRoundtrip(t *testing.T) {
	hash, err := HashPassword("secret1")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if hash == "secret1" {
		t.Fatal("Expected hash to differ from plaintext")
	}

	if !CheckPassword("secret1", hash) {
		t.Error("Expected correct password to verify")
	}
	if CheckPassword("wrong", hash) {
		t.Error("Expected wrong password to fail verification")
	}
}

func TestNewSessionToken(t *testing.T) {
	first, err := NewSessionToken()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(first) != 64 {
		t.Errorf("Expected 64 hex characters, got %d", len(first))
	}

	second, err := NewSessionToken()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if first == second {
		t.Error("Expected tokens to be unique")
	}
}
