package redisinfra

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/mc-parking-api/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*OTPStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewOTPStore(client, 5*time.Minute), mr
}

func TestOTPStore_PutGetDelete(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	tx := &domain.OTPTransaction{
		TransactionID: "TXN_1_abc",
		OTP:           "1234",
		Identifier:    "199012345678",
		Mobile:        "0771234567",
		ExpiresAt:     time.Now().Add(5 * time.Minute).UTC().Truncate(time.Second),
	}
	require.NoError(t, s.Put(ctx, tx))

	got, err := s.Get(ctx, tx.TransactionID)
	require.NoError(t, err)
	assert.Equal(t, tx.Identifier, got.Identifier)
	assert.True(t, tx.ExpiresAt.Equal(got.ExpiresAt))

	require.NoError(t, s.Delete(ctx, tx.TransactionID))
	_, err = s.Get(ctx, tx.TransactionID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestOTPStore_KeyOutlivesExpiry(t *testing.T) {
	s, mr := newTestStore(t)
	ctx := context.Background()
	tx := &domain.OTPTransaction{TransactionID: "TXN_2_abc", OTP: "1234", ExpiresAt: time.Now().Add(time.Minute)}
	require.NoError(t, s.Put(ctx, tx))

	ttl := mr.TTL(otpKeyPrefix + tx.TransactionID)
	assert.Greater(t, ttl, 5*time.Minute)

	mr.FastForward(2 * time.Minute)
	_, err := s.Get(ctx, tx.TransactionID)
	assert.NoError(t, err, "entry past ExpiresAt stays readable so expiry can be reported")
}

func TestOTPStore_ConsumeHasOneWinner(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	tx := &domain.OTPTransaction{TransactionID: "TXN_3_abc", OTP: "1234", ExpiresAt: time.Now().Add(time.Minute)}
	require.NoError(t, s.Put(ctx, tx))

	var (
		wg   sync.WaitGroup
		wins atomic.Int32
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := s.Consume(ctx, tx.TransactionID)
			if err == nil && ok {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())
	_, err := s.Get(ctx, tx.TransactionID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
