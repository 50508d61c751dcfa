package comanda

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"rosa/models"
	"rosa/utils"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
	"go.uber.org/zap"
)

var (
	ErrInvalidRequest = errors.New("invalid comanda request")
	ErrUnknownCabin   = errors.New("unknown cabin")
	ErrInvalidToken   = errors.New("invalid or expired comanda")
)

const qrSize = 256

// ComandaService issues and verifies guest comandas.
type ComandaService interface {
	Issue(ctx context.Context, cabinName, guestName string) (*models.Comanda, error)
	Verify(token string) (*utils.ComandaClaims, error)
}

// CabinLister is the catalog read used to check cabin names.
type CabinLister interface {
	ListCabins(ctx context.Context) ([]models.Cabin, error)
}

type DefaultComandaService struct {
	Secret []byte
	TTL    time.Duration
	Cabins CabinLister
	Logger *zap.Logger
	Clock  func() time.Time
}

func NewComandaService(secret string, ttl time.Duration, cabins CabinLister, logger *zap.Logger) *DefaultComandaService {
	return &DefaultComandaService{
		Secret: []byte(secret),
		TTL:    ttl,
		Cabins: cabins,
		Logger: logger,
		Clock:  time.Now,
	}
}

// Issue signs a comanda for an existing cabin and renders its QR code.
func (s *DefaultComandaService) Issue(ctx context.Context, cabinName, guestName string) (*models.Comanda, error) {
	cabinName = strings.TrimSpace(cabinName)
	guestName = strings.TrimSpace(guestName)
	if cabinName == "" {
		return nil, fmt.Errorf("%w: cabinName is required", ErrInvalidRequest)
	}

	cabins, err := s.Cabins.ListCabins(ctx)
	if err != nil {
		return nil, fmt.Errorf("Issue: failed to list cabins: %w", err)
	}
	if !hasCabin(cabins, cabinName) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCabin, cabinName)
	}

	now := s.Clock().UTC().Truncate(time.Second)
	c := &models.Comanda{
		ID:        uuid.New().String(),
		CabinName: cabinName,
		GuestName: guestName,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.TTL),
	}
	c.Token, err = utils.GenerateToken(s.Secret, c.ID, c.CabinName, c.GuestName, c.IssuedAt, c.ExpiresAt)
	if err != nil {
		return nil, fmt.Errorf("Issue: failed to sign comanda: %w", err)
	}

	png, err := qrcode.Encode(c.Token, qrcode.Medium, qrSize)
	if err != nil {
		return nil, fmt.Errorf("Issue: failed to render QR code: %w", err)
	}
	c.QRCode = "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)

	s.Logger.Info("Comanda issued", zap.String("comandaId", c.ID), zap.String("cabin", c.CabinName), zap.Time("expiresAt", c.ExpiresAt))
	return c, nil
}

// Verify returns the claims of a valid, unexpired comanda token.
func (s *DefaultComandaService) Verify(token string) (*utils.ComandaClaims, error) {
	claims, err := utils.ValidateToken(s.Secret, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return claims, nil
}

func hasCabin(cabins []models.Cabin, name string) bool {
	for _, c := range cabins {
		if c.Name == name {
			return true
		}
	}
	return false
}
