package server

import (
	"fmt"
	"strconv"
	"time"

	"devmesh/internal/middleware"
	"devmesh/internal/models"
	"devmesh/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// sessionDuration matches the cookie and token lifetime.
const sessionDuration = 12 * time.Hour

// Signup handles POST /api/auth/signup
func (s *Server) Signup(c *fiber.Ctx) error {
	// Block signup while a valid session is already presented.
	if token := middleware.ExtractToken(c); token != "" {
		if _, ok := middleware.ParseUserID(token); ok {
			return models.RespondWithError(c,
				models.NewForbiddenError("Already logged in"))
		}
	}

	var req struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Email     string `json:"email"`
		Password  string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Invalid request body"))
	}

	in, err := validation.ValidateSignup(req.FirstName, req.LastName, req.Email, req.Password)
	if err != nil {
		return models.RespondWithError(c, models.NewValidationError(err.Error()))
	}

	existing, err := s.userRepo.GetByEmail(c.Context(), in.Email)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	if existing != nil {
		return models.RespondWithError(c,
			models.NewConflictError("An account with this email already exists"))
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}

	user := &models.User{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Password:  string(hashedPassword),
	}
	if createErr := s.userRepo.Create(c.Context(), user); createErr != nil {
		return models.RespondWithError(c, createErr)
	}

	token, err := s.generateToken(user.ID)
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}
	s.setSessionCookie(c, token)

	return models.RespondWithData(c, fiber.StatusCreated,
		"User registered successfully", user)
}

// Login handles POST /api/auth/login
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Invalid request body"))
	}

	email, err := validation.ValidateLogin(req.Email, req.Password)
	if err != nil {
		return models.RespondWithError(c, models.NewValidationError(err.Error()))
	}

	user, err := s.userRepo.GetByEmail(c.Context(), email)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	// Same message for unknown email and wrong password.
	if user == nil {
		return models.RespondWithError(c,
			models.NewUnauthorizedError("Invalid login credentials"))
	}
	if cmpErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); cmpErr != nil {
		return models.RespondWithError(c,
			models.NewUnauthorizedError("Invalid login credentials"))
	}

	token, err := s.generateToken(user.ID)
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}
	s.setSessionCookie(c, token)

	return models.RespondWithData(c, fiber.StatusOK,
		fmt.Sprintf("User login successful! Hello, %s", user.FirstName), user)
}

// Logout handles POST /api/auth/logout
func (s *Server) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return models.RespondWithData(c, fiber.StatusOK, "Logged out successfully", nil)
}

func (s *Server) setSessionCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Expires:  time.Now().Add(sessionDuration),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   s.config.Env == "production" || s.config.Env == "prod",
	})
}

// generateToken creates a JWT for the given user ID.
func (s *Server) generateToken(userID uint) (string, error) {
	if s.config.JWTSecret == "" {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(userID), 10),
		"iss": "devmesh-api",
		"exp": now.Add(sessionDuration).Unix(),
		"iat": now.Unix(),
		"nbf": now.Unix(),
		"jti": fmt.Sprintf("%d-%s", now.Unix(), uuid.New().String()[:8]),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}
