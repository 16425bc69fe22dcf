package services

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v8"
	"github.com/personeltakip/backend/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestQRService(t *testing.T) (*QRService, redismock.ClientMock) {
	t.Helper()
	client, mock := redismock.NewClientMock()
	svc := NewQRService(client, &config.QRConfig{CodeTTL: 5 * time.Minute, ImageSize: 128, KeyPrefix: "checkin"})

	fixed := time.Date(2024, 10, 28, 8, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }
	svc.nonce = func() string { return "abc123" }
	return svc, mock
}

func TestQRService_IssueCheckInCode(t *testing.T) {
	svc, mock := newTestQRService(t)

	payload, _ := json.Marshal(checkInPayload{BranchID: 3, Nonce: "abc123", Timestamp: svc.now().Unix()})
	code := base64.RawURLEncoding.EncodeToString(payload)
	mock.ExpectSet("checkin:"+code, "3", 5*time.Minute).SetVal("OK")

	qr, err := svc.IssueCheckInCode(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, code, qr.Code)
	assert.Equal(t, 3, qr.BranchID)
	assert.Equal(t, svc.now().Add(5*time.Minute), qr.ExpiresAt)

	img, err := base64.StdEncoding.DecodeString(qr.Image)
	require.NoError(t, err)
	assert.Equal(t, "\x89PNG", string(img[:4]))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQRService_ConsumeCheckInCode(t *testing.T) {
	ctx := context.Background()

	t.Run("valid code is single use", func(t *testing.T) {
		svc, mock := newTestQRService(t)
		mock.ExpectGet("checkin:code-1").SetVal("3")
		mock.ExpectDel("checkin:code-1").SetVal(1)

		branchID, err := svc.ConsumeCheckInCode(ctx, "code-1")
		require.NoError(t, err)
		assert.Equal(t, 3, branchID)

		mock.ExpectGet("checkin:code-1").RedisNil()
		_, err = svc.ConsumeCheckInCode(ctx, "code-1")
		assert.ErrorIs(t, err, ErrInvalidQRCode)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("lost race", func(t *testing.T) {
		svc, mock := newTestQRService(t)
		mock.ExpectGet("checkin:code-2").SetVal("3")
		mock.ExpectDel("checkin:code-2").SetVal(0)

		_, err := svc.ConsumeCheckInCode(ctx, "code-2")
		assert.ErrorIs(t, err, ErrInvalidQRCode)
	})

	t.Run("no redis", func(t *testing.T) {
		svc := NewQRService(nil, &config.QRConfig{CodeTTL: time.Minute, ImageSize: 128, KeyPrefix: "checkin"})
		_, err := svc.ConsumeCheckInCode(ctx, "code")
		assert.ErrorIs(t, err, ErrQRUnavailable)
		_, err = svc.IssueCheckInCode(ctx, 1)
		assert.ErrorIs(t, err, ErrQRUnavailable)
	})
}
