package auth

import (
	"context"
	"errors"
	"time"

	"github.com/ericcurtin/BansheeRun/internal/db"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Device tokens are long-lived: a phone registers once and keeps syncing.
const deviceTokenTTL = 365 * 24 * time.Hour

type Service struct {
	secret []byte
	db     db.Querier
}

type Claims struct {
	DeviceID string `json:"device_id"`
	jwt.RegisteredClaims
}

// Device is a registered client allowed to upload activities.
type Device struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type RegisterRequest struct {
	Name string `json:"name"`
}

type TokenResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
	ExpiresIn int64  `json:"expires_in"`
}

func NewService(secret string, db db.Querier) *Service {
	return &Service{
		secret: []byte(secret),
		db:     db,
	}
}

// Register stores a new device and issues its bearer token.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (Device, TokenResponse, error) {
	if req.Name == "" {
		return Device{}, TokenResponse{}, errors.New("device name required")
	}

	device := Device{
		ID:   uuid.NewString(),
		Name: req.Name,
	}

	row := s.db.QueryRow(ctx, `
		INSERT INTO devices (id, name)
		VALUES ($1,$2)
		RETURNING created_at
	`, device.ID, device.Name)
	if err := row.Scan(&device.CreatedAt); err != nil {
		return Device{}, TokenResponse{}, err
	}

	tokens, err := s.IssueToken(device.ID)
	if err != nil {
		return Device{}, TokenResponse{}, err
	}
	return device, tokens, nil
}

// IssueToken signs a fresh bearer token for an already registered device.
func (s *Service) IssueToken(deviceID string) (TokenResponse, error) {
	claims := Claims{
		DeviceID: deviceID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(deviceTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return TokenResponse{}, err
	}

	return TokenResponse{
		Token:     signed,
		TokenType: "Bearer",
		ExpiresIn: int64(deviceTokenTTL.Seconds()),
	}, nil
}

// ValidateToken returns the device id carried by a valid token.
func (s *Service) ValidateToken(token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(_ *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return "", errors.New("token invalid")
	}
	return claims.DeviceID, nil
}
