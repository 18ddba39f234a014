package security

import "testing"

const testSecret = "this_is_a_test_secret_key_with_32_chars_minimum"

func TestGenerateAndValidateJWT(t *testing.T) {
	token, err := GenerateJWT("admin", testSecret)
	if err != nil {
		t.Fatalf("GenerateJWT() error = %v", err)
	}

	claims, err := ValidateJWT(token, testSecret)
	if err != nil {
		t.Fatalf("ValidateJWT() error = %v", err)
	}

	if claims.AdminID != "admin" {
		t.Errorf("AdminID = %q, want %q", claims.AdminID, "admin")
	}
}

func TestValidateJWT_WrongSecret(t *testing.T) {
	token, err := GenerateJWT("admin", testSecret)
	if err != nil {
		t.Fatalf("GenerateJWT() error = %v", err)
	}

	if _, err := ValidateJWT(token, "another_secret_that_is_long_enough_too"); err == nil {
		t.Error("ValidateJWT() expected error for wrong secret, got nil")
	}
}

func TestValidateJWT_Garbage(t *testing.T) {
	if _, err := ValidateJWT("not.a.token", testSecret); err == nil {
		t.Error("ValidateJWT() expected error for garbage token, got nil")
	}
}

func TestCleanDisplayName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "Plain name",
			input: "Alice",
			want:  "Alice",
		},
		{
			name:  "HTML stripped",
			input: "<b>Alice</b><script>alert(1)</script>",
			want:  "Alice",
		},
		{
			name:  "Whitespace trimmed",
			input: "  Bob  ",
			want:  "Bob",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanDisplayName(tt.input); got != tt.want {
				t.Errorf("CleanDisplayName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
