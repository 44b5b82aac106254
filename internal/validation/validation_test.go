package validation

import "testing"

func TestValidateSignup(t *testing.T) {
	tests := []struct {
		name      string
		firstName string
		lastName  string
		email     string
		password  string
		wantErr   bool
	}{
		{"valid", "Alan", "Turing", "alan@example.com", "Enigma!1234", false},
		{"trims and normalizes", "  Alan  ", " Turing ", "  Alan@Example.COM ", "Enigma!1234", false},
		{"empty first name", "", "Turing", "alan@example.com", "Enigma!1234", true},
		{"first name too short", "Al", "Turing", "alan@example.com", "Enigma!1234", true},
		{"first name with digits", "Alan2", "Turing", "alan@example.com", "Enigma!1234", true},
		{"bad email", "Alan", "Turing", "not-an-email", "Enigma!1234", true},
		{"weak password", "Alan", "Turing", "alan@example.com", "password", true},
		{"password missing symbol", "Alan", "Turing", "alan@example.com", "Password1234", true},
		{"password too short", "Alan", "Turing", "alan@example.com", "Pw1!", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := ValidateSignup(tt.firstName, tt.lastName, tt.email, tt.password)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if in.FirstName != "Alan" || in.LastName != "Turing" {
				t.Fatalf("names not sanitized: %#v", in)
			}
			if in.Email != "alan@example.com" {
				t.Fatalf("email not normalized: %q", in.Email)
			}
		})
	}
}

func TestValidateLogin(t *testing.T) {
	email, err := ValidateLogin("  User@Example.COM ", "whatever")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if email != "user@example.com" {
		t.Fatalf("email not normalized: %q", email)
	}

	if _, err := ValidateLogin("", "whatever"); err == nil {
		t.Fatal("expected error for empty email")
	}
	if _, err := ValidateLogin("user@example.com", ""); err == nil {
		t.Fatal("expected error for empty password")
	}
	if _, err := ValidateLogin("nope", "whatever"); err == nil {
		t.Fatal("expected error for malformed email")
	}
}

func TestValidateAge(t *testing.T) {
	if err := ValidateAge(0); err != nil {
		t.Fatalf("zero age means not provided: %v", err)
	}
	if err := ValidateAge(18); err != nil {
		t.Fatalf("18 is the minimum: %v", err)
	}
	if err := ValidateAge(17); err == nil {
		t.Fatal("expected error for age below minimum")
	}
}

func TestValidateGender(t *testing.T) {
	for _, g := range []string{"", "male", "female", "others"} {
		if err := ValidateGender(g); err != nil {
			t.Fatalf("gender %q should be allowed: %v", g, err)
		}
	}
	if err := ValidateGender("Male"); err == nil {
		t.Fatal("gender values are case-sensitive")
	}
}

func TestValidatePhotoURL(t *testing.T) {
	valid := []string{
		"",
		"https://example.com/me.png",
		"http://cdn.example.com/a/b/avatar.jpeg",
		"https://example.com/pic.webp",
	}
	for _, u := range valid {
		if err := ValidatePhotoURL(u); err != nil {
			t.Fatalf("url %q should be allowed: %v", u, err)
		}
	}
	invalid := []string{
		"ftp://example.com/me.png",
		"https://example.com/page.html",
		"example.com/me.png",
	}
	for _, u := range invalid {
		if err := ValidatePhotoURL(u); err == nil {
			t.Fatalf("url %q should be rejected", u)
		}
	}
}

func TestValidateSkills(t *testing.T) {
	if err := ValidateSkills(nil); err != nil {
		t.Fatalf("nil skills are fine: %v", err)
	}
	ten := make([]string, 10)
	for i := range ten {
		ten[i] = "skill"
	}
	if err := ValidateSkills(ten); err != nil {
		t.Fatalf("ten skills are the maximum: %v", err)
	}
	if err := ValidateSkills(append(ten, "one more")); err == nil {
		t.Fatal("expected error above ten skills")
	}
	if err := ValidateSkills([]string{"go", "  "}); err == nil {
		t.Fatal("expected error for blank skill")
	}
}
