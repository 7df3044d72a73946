package jwt

import "testing"

func TestIssueAndParse(t *testing.T) {
	tok, err := Issue("secret", 42, "librarian", 1)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := ParseAuth("Bearer "+tok, "secret")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if sub, _ := claims["sub"].(float64); int64(sub) != 42 {
		t.Fatalf("sub = %v; want 42", claims["sub"])
	}
	if role, _ := claims["role"].(string); role != "librarian" {
		t.Fatalf("role = %v; want librarian", claims["role"])
	}
}

func TestParse_WrongSecret(t *testing.T) {
	tok, err := Issue("secret", 42, "member", 1)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := ParseAuth("Bearer "+tok, "other"); err == nil {
		t.Fatal("expected error for wrong secret")
	}
}

func TestParse_MissingHeader(t *testing.T) {
	if _, err := ParseAuth("", "secret"); err == nil {
		t.Fatal("expected error for empty header")
	}
	if _, err := ParseAuth("Bearer ", "secret"); err == nil {
		t.Fatal("expected error for empty token")
	}
}
