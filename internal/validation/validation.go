// Package validation provides input validation utilities.
//
// Validators operate on plain input values before any entity is constructed,
// so they can be reused by handlers, services, and the seeder without touching
// the storage layer.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

const (
	minNameLen     = 4
	maxNameLen     = 50
	minPasswordLen = 8
	maxPasswordLen = 128
	minAge         = 18
	maxSkills      = 10
)

var (
	nameRe     = regexp.MustCompile(`^[A-Za-z\s]+$`)
	emailRe    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	photoURLRe = regexp.MustCompile(`^https?://.+\.(jpg|jpeg|png|gif|webp)$`)
)

// NormalizeEmail trims and lowercases an email address. Emails are stored and
// compared in this normalized form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateName checks a first or last name. label names the field in errors.
func ValidateName(label, name string) error {
	if len(name) < minNameLen || len(name) > maxNameLen {
		return fmt.Errorf("%s must be between %d and %d characters", label, minNameLen, maxNameLen)
	}
	if !nameRe.MatchString(name) {
		return fmt.Errorf("%s must contain only letters and spaces", label)
	}
	return nil
}

// ValidateEmail checks the shape of an email address.
func ValidateEmail(email string) error {
	if !emailRe.MatchString(email) {
		return fmt.Errorf("email address is not valid")
	}
	return nil
}

// ValidatePassword checks that a password is strong enough: length bounds plus
// at least one lowercase letter, one uppercase letter, one digit, and one
// symbol.
func ValidatePassword(password string) error {
	if len(password) < minPasswordLen {
		return fmt.Errorf("password must be at least %d characters long", minPasswordLen)
	}
	if len(password) > maxPasswordLen {
		return fmt.Errorf("password must not exceed %d characters", maxPasswordLen)
	}

	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSymbol = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit || !hasSymbol {
		return fmt.Errorf("password must contain uppercase, lowercase, digit, and symbol characters")
	}
	return nil
}

// ValidateAge checks the minimum-age requirement. Zero means "not provided"
// and is allowed.
func ValidateAge(age int) error {
	if age != 0 && age < minAge {
		return fmt.Errorf("age must be at least %d", minAge)
	}
	return nil
}

// ValidateGender checks the gender enum. Empty means "not provided".
func ValidateGender(gender string) error {
	switch gender {
	case "", "male", "female", "others":
		return nil
	}
	return fmt.Errorf("gender must be either 'male', 'female', or 'others'")
}

// ValidatePhotoURL checks that a photo URL points at an image. Empty means
// "not provided".
func ValidatePhotoURL(url string) error {
	if url == "" {
		return nil
	}
	if !photoURLRe.MatchString(url) {
		return fmt.Errorf("photo URL must be a valid image URL")
	}
	return nil
}

// ValidateSkills checks the skills list bounds.
func ValidateSkills(skills []string) error {
	if len(skills) > maxSkills {
		return fmt.Errorf("you can specify up to %d skills only", maxSkills)
	}
	for _, s := range skills {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("skills must not be empty strings")
		}
	}
	return nil
}

// SignupInput holds the sanitized fields required to create an account.
type SignupInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// ValidateSignup sanitizes and validates signup fields, returning the
// normalized input.
func ValidateSignup(firstName, lastName, email, password string) (SignupInput, error) {
	in := SignupInput{
		FirstName: strings.TrimSpace(firstName),
		LastName:  strings.TrimSpace(lastName),
		Email:     NormalizeEmail(email),
		Password:  password,
	}

	if in.FirstName == "" || in.LastName == "" {
		return in, fmt.Errorf("name should not be empty")
	}
	if err := ValidateName("first name", in.FirstName); err != nil {
		return in, err
	}
	if err := ValidateName("last name", in.LastName); err != nil {
		return in, err
	}
	if err := ValidateEmail(in.Email); err != nil {
		return in, err
	}
	if err := ValidatePassword(in.Password); err != nil {
		return in, err
	}
	return in, nil
}

// ValidateLogin sanitizes and validates login fields, returning the
// normalized email.
func ValidateLogin(email, password string) (string, error) {
	normalized := NormalizeEmail(email)
	if normalized == "" || password == "" {
		return normalized, fmt.Errorf("email address or password should not be empty")
	}
	if err := ValidateEmail(normalized); err != nil {
		return normalized, err
	}
	return normalized, nil
}

// ProfileEditInput holds the fields a member may change on their own profile.
// Email and password are deliberately absent.
type ProfileEditInput struct {
	FirstName *string  `json:"first_name"`
	LastName  *string  `json:"last_name"`
	Age       *int     `json:"age"`
	Gender    *string  `json:"gender"`
	About     *string  `json:"about"`
	PhotoURL  *string  `json:"photo_url"`
	Skills    []string `json:"skills"`
}

// ValidateProfileEdit validates the provided (non-nil) fields of a profile
// edit.
func ValidateProfileEdit(in ProfileEditInput) error {
	if in.FirstName != nil {
		if err := ValidateName("first name", strings.TrimSpace(*in.FirstName)); err != nil {
			return err
		}
	}
	if in.LastName != nil {
		if err := ValidateName("last name", strings.TrimSpace(*in.LastName)); err != nil {
			return err
		}
	}
	if in.Age != nil {
		if err := ValidateAge(*in.Age); err != nil {
			return err
		}
	}
	if in.Gender != nil {
		if err := ValidateGender(*in.Gender); err != nil {
			return err
		}
	}
	if in.PhotoURL != nil {
		if err := ValidatePhotoURL(*in.PhotoURL); err != nil {
			return err
		}
	}
	if in.Skills != nil {
		if err := ValidateSkills(in.Skills); err != nil {
			return err
		}
	}
	return nil
}
