package services

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"image/png"
	"log"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/personeltakip/backend/internal/config"
	"github.com/skip2/go-qrcode"
)

// CheckInQR is a short-lived, single-use code displayed at a branch.
type CheckInQR struct {
	BranchID  int       `json:"branchId" example:"1"`
	Code      string    `json:"qrCode"`
	Image     string    `json:"qrImage"` // base64 PNG
	ExpiresAt time.Time `json:"expiresAt"`
}

type checkInPayload struct {
	BranchID  int    `json:"branchId"`
	Nonce     string `json:"nonce"`
	Timestamp int64  `json:"timestamp"`
}

type QRService struct {
	redis  *redis.Client
	config *config.QRConfig
	now    func() time.Time
	nonce  func() string
}

func NewQRService(redisClient *redis.Client, cfg *config.QRConfig) *QRService {
	return &QRService{
		redis:  redisClient,
		config: cfg,
		now:    time.Now,
		nonce:  generateNonce,
	}
}

func (s *QRService) key(code string) string {
	return fmt.Sprintf("%s:%s", s.config.KeyPrefix, code)
}

// IssueCheckInCode stores a fresh nonce for branchID and renders it as a QR image.
func (s *QRService) IssueCheckInCode(ctx context.Context, branchID int) (*CheckInQR, error) {
	if s.redis == nil {
		return nil, ErrQRUnavailable
	}

	now := s.now()
	jsonData, err := json.Marshal(checkInPayload{
		BranchID:  branchID,
		Nonce:     s.nonce(),
		Timestamp: now.Unix(),
	})
	if err != nil {
		return nil, err
	}
	code := base64.RawURLEncoding.EncodeToString(jsonData)

	if err := s.redis.Set(ctx, s.key(code), strconv.Itoa(branchID), s.config.CodeTTL).Err(); err != nil {
		return nil, fmt.Errorf("store check-in code: %w", err)
	}

	qr, err := qrcode.New(code, qrcode.Medium)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, qr.Image(s.config.ImageSize)); err != nil {
		return nil, err
	}

	log.Printf("[QR] Check-in code issued for branch %d", branchID)
	return &CheckInQR{
		BranchID:  branchID,
		Code:      code,
		Image:     base64.StdEncoding.EncodeToString(buf.Bytes()),
		ExpiresAt: now.Add(s.config.CodeTTL),
	}, nil
}

// ConsumeCheckInCode returns the branch a code was issued for and invalidates
// it. Only the caller whose DEL removes the key wins.
func (s *QRService) ConsumeCheckInCode(ctx context.Context, code string) (int, error) {
	if s.redis == nil {
		return 0, ErrQRUnavailable
	}

	key := s.key(code)
	value, err := s.redis.Get(ctx, key).Result()
	if err == redis.Nil {
		return 0, ErrInvalidQRCode
	}
	if err != nil {
		return 0, err
	}

	deleted, err := s.redis.Del(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if deleted == 0 {
		return 0, ErrInvalidQRCode
	}

	branchID, err := strconv.Atoi(value)
	if err != nil {
		return 0, ErrInvalidQRCode
	}
	return branchID, nil
}

func generateNonce() string {
	b := make([]byte, 16)
	rand.Read(b)
	return hex.EncodeToString(b)
}
