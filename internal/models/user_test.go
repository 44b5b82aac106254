package models

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestSkillOverlap(t *testing.T) {
	tests := []struct {
		name  string
		a, b  []string
		want  int
	}{
		{"no skills", nil, []string{"go"}, 0},
		{"disjoint", []string{"go"}, []string{"rust"}, 0},
		{"case insensitive", []string{"Go", "Redis"}, []string{"go", "redis"}, 2},
		{"duplicates counted once", []string{"go"}, []string{"go", "Go", " go "}, 1},
		{"partial", []string{"go", "postgres", "redis"}, []string{"redis", "kafka"}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := &User{Skills: tt.a}
			other := &User{Skills: tt.b}
			if got := u.SkillOverlap(other); got != tt.want {
				t.Fatalf("SkillOverlap = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestUserJSONNeverIncludesPassword(t *testing.T) {
	u := User{ID: 1, Email: "a@example.com", Password: "bcrypt-hash"}
	raw, err := json.Marshal(u)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(raw), "bcrypt-hash") || strings.Contains(string(raw), "password") {
		t.Fatalf("password leaked into JSON: %s", raw)
	}
}

func TestPublicProjectionOmitsEmail(t *testing.T) {
	u := User{ID: 1, FirstName: "Ada", Email: "ada@example.com", Password: "hash"}
	raw, err := json.Marshal(u.Public())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(raw), "ada@example.com") {
		t.Fatalf("email leaked into public projection: %s", raw)
	}
}

func TestDisplayName(t *testing.T) {
	u := &User{FirstName: "Ada", LastName: "Lovelace"}
	if got := u.DisplayName(); got != "Ada Lovelace" {
		t.Fatalf("DisplayName = %q", got)
	}
	partial := &User{FirstName: "Ada"}
	if got := partial.DisplayName(); got != "Ada" {
		t.Fatalf("DisplayName = %q", got)
	}
}
