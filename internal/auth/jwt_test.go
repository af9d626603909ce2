package auth

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("s3cret", 42, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}
	shopID, err := ValidateToken("s3cret", token)
	if err != nil {
		t.Fatalf("ValidateToken returned error: %v", err)
	}
	if shopID != 42 {
		t.Fatalf("got shop %d want 42", shopID)
	}
}

func TestValidateTokenRejects(t *testing.T) {
	expired, _ := GenerateToken("s3cret", 42, -time.Minute)
	foreign, _ := GenerateToken("other", 42, time.Hour)
	noShop, _ := GenerateToken("s3cret", 0, time.Hour)

	tests := map[string]string{
		"expired":      expired,
		"wrong secret": foreign,
		"no shop":      noShop,
		"garbage":      "not.a.token",
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := ValidateToken("s3cret", token); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}
