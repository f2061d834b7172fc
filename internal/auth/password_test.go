package auth

import (
	"strings"
	"testing"
)

func TestHashPassword_Format(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	// Verify PHC format: $argon2id$v=19$m=65536,t=3,p=4$<salt>$<hash>
	if !strings.HasPrefix(hash, "$argon2id$v=") {
		t.Errorf("Hash should be in PHC format, got: %s", hash)
	}

	parts := strings.Split(hash, "$")
	if len(parts) != 6 {
		t.Errorf("Hash should have 6 parts, got: %d", len(parts))
	}
	if parts[3] != "m=65536,t=3,p=4" {
		t.Errorf("Expected m=65536,t=3,p=4, got: %s", parts[3])
	}
}

func TestHashPassword_Uniqueness(t *testing.T) {
	t.Parallel()

	password := "the_same_password_12345"

	hash1, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	hash2, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	// Same password should produce different hashes (different salts)
	if hash1 == hash2 {
		t.Error("Same password should produce different hashes due to random salt")
	}

	// But both should be valid and verify correctly
	match1, _ := VerifyPassword(password, hash1)
	match2, _ := VerifyPassword(password, hash2)

	if !match1 || !match2 {
		t.Error("Both hashes should verify correctly")
	}
}

func TestVerifyPassword_Incorrect(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("pw1")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	// Wrong password should not verify (but no error)
	match, err := VerifyPassword("pw2", hash)
	if err != nil {
		t.Fatalf("VerifyPassword should not return error for wrong password: %v", err)
	}
	if match {
		t.Error("Wrong password should not match")
	}
}

func TestVerifyPassword_InvalidHashFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		hash    string
		wantErr error
	}{
		{"empty", "", ErrInvalidHash},
		{"wrong format", "not-a-hash", ErrInvalidHash},
		{"wrong algorithm", "$bcrypt$v=19$m=65536,t=3,p=4$salt$hash", ErrInvalidHash},
		{"missing parts", "$argon2id$v=19$m=65536", ErrInvalidHash},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := VerifyPassword("password", tt.hash)
			if err != tt.wantErr {
				t.Errorf("VerifyPassword with %q error = %v, want %v", tt.name, err, tt.wantErr)
			}
		})
	}
}

func TestVerifyPassword_WrongVersion(t *testing.T) {
	t.Parallel()

	// v=18 instead of v=19 simulates an incompatible argon2 version
	invalidVersionHash := "$argon2id$v=18$m=65536,t=3,p=4$c29tZXNhbHRoZXJl$c29tZWhhc2hoZXJl"

	match, err := VerifyPassword("password", invalidVersionHash)
	if err != ErrIncompatibleVersion {
		t.Errorf("Expected ErrIncompatibleVersion, got: %v", err)
	}
	if match {
		t.Error("Should not match with incompatible version")
	}
}
