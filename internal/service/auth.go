package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/vroomhq/vroom-service/internal/models"
	"github.com/vroomhq/vroom-service/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

// Register creates a new user with hashed password
func (s *Service) Register(username, email, password string) (*models.User, error) {
	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	if err := s.store.CreateUser(user); err != nil {
		return nil, err
	}

	s.log.Infof("User registered: %s", user.Email)
	return user, nil
}

// Login authenticates a user and returns a JWT token
func (s *Service) Login(email, password string) (string, error) {
	user, err := s.store.FindUserByEmail(email)
	if err != nil {
		return "", fmt.Errorf("invalid credentials")
	}

	// Verify password
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", fmt.Errorf("invalid credentials")
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return "", err
	}

	s.log.Infof("User logged in: %s", user.Email)
	return token, nil
}

// OAuthLogin signs a user in from an OAuth callback, creating the account on
// first login. The provider refresh token is encrypted before it is stored.
func (s *Service) OAuthLogin(provider, subject, email, username, refreshToken string) (string, error) {
	user, err := s.store.FindUserByOAuth(provider, subject)
	if err != nil {
		user = &models.User{
			Username:      username,
			Email:         email,
			OAuthProvider: provider,
			OAuthSubject:  subject,
		}
		if err := s.store.CreateUser(user); err != nil {
			return "", err
		}
		s.log.Infof("User registered via %s: %s", provider, user.Email)
	}

	if refreshToken != "" {
		encrypted, err := utils.Encrypt(refreshToken, []byte(s.config.EncryptionKey))
		if err != nil {
			return "", fmt.Errorf("failed to encrypt refresh token: %w", err)
		}
		if err := s.store.UpdateRefreshToken(user.ID, encrypted); err != nil {
			return "", err
		}
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return "", err
	}

	s.log.Infof("User logged in via %s: %s", provider, user.Email)
	return token, nil
}

// issueToken generates a signed JWT for the user
func (s *Service) issueToken(userID int64) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   fmt.Sprintf("%d", userID),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
	})
	tokenString, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}
