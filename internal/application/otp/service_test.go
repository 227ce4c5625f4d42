package otp

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/mc-parking-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSMSSender struct{ mock.Mock }

func (m *mockSMSSender) SendSMS(ctx context.Context, phone, msg string) error {
	return m.Called(ctx, phone, msg).Error(0)
}

// fakeClock is advanced manually by tests.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newSvc(clock *fakeClock) (Service, *MemoryStore) {
	store := NewMemoryStore()
	return NewService(store, nil, "1234", 5*time.Minute, WithClock(clock.Now)), store
}

func TestRequestThenVerify_SucceedsExactlyOnce(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	svc, _ := newSvc(clock)
	ctx := context.Background()

	txID, err := svc.RequestOTP(ctx, "199012345678", "0771234567")
	require.NoError(t, err)
	assert.NotEmpty(t, txID)

	tx, err := svc.VerifyOTP(ctx, txID, "1234")
	require.NoError(t, err)
	assert.Equal(t, "199012345678", tx.Identifier)

	_, err = svc.VerifyOTP(ctx, txID, "1234")
	assert.True(t, errors.Is(err, ErrTransactionNotFound))
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

// slowStore widens the window between reading a transaction and consuming it.
type slowStore struct {
	*MemoryStore
	delay time.Duration
}

func (s slowStore) Get(ctx context.Context, transactionID string) (*domain.OTPTransaction, error) {
	tx, err := s.MemoryStore.Get(ctx, transactionID)
	time.Sleep(s.delay)
	return tx, err
}

func TestVerify_ConcurrentCallsSucceedOnce(t *testing.T) {
	store := slowStore{MemoryStore: NewMemoryStore(), delay: 20 * time.Millisecond}
	svc := NewService(store, nil, "1234", 5*time.Minute)
	ctx := context.Background()

	txID, err := svc.RequestOTP(ctx, "199012345678", "")
	require.NoError(t, err)

	const callers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		notFound  int
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.VerifyOTP(ctx, txID, "1234")
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, ErrTransactionNotFound):
				notFound++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, callers-1, notFound)
}

func TestVerify_WrongCodeKeepsTransactionUsable(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	svc, store := newSvc(clock)
	ctx := context.Background()

	txID, err := svc.RequestOTP(ctx, "NIC1", "")
	require.NoError(t, err)

	_, err = svc.VerifyOTP(ctx, txID, "0000")
	assert.True(t, errors.Is(err, ErrMismatch))
	_, err = store.Get(ctx, txID)
	require.NoError(t, err, "mismatch keeps the entry")

	clock.Advance(4 * time.Minute)
	_, err = svc.VerifyOTP(ctx, txID, "1234")
	assert.NoError(t, err)
}

func TestVerify_AfterExpiry_FailsRegardlessOfCode(t *testing.T) {
	for _, code := range []string{"1234", "9999"} {
		clock := &fakeClock{now: time.Now()}
		svc, store := newSvc(clock)
		ctx := context.Background()

		txID, err := svc.RequestOTP(ctx, "NIC1", "")
		require.NoError(t, err)

		clock.Advance(5*time.Minute + time.Second)
		_, err = svc.VerifyOTP(ctx, txID, code)
		assert.True(t, errors.Is(err, ErrExpired), "code %s", code)

		_, err = store.Get(ctx, txID)
		assert.True(t, errors.Is(err, domain.ErrNotFound), "expired entry must be removed")
	}
}

func TestCheck_LeavesTransactionInPlace(t *testing.T) {
	svc, _ := newSvc(&fakeClock{now: time.Now()})
	ctx := context.Background()
	txID, err := svc.RequestOTP(ctx, "NIC1", "")
	require.NoError(t, err)

	_, err = svc.Check(ctx, txID, "0000")
	assert.True(t, errors.Is(err, ErrMismatch))

	tx, err := svc.Check(ctx, txID, "1234")
	require.NoError(t, err)
	assert.Equal(t, "NIC1", tx.Identifier)

	_, err = svc.VerifyOTP(ctx, txID, "1234")
	assert.NoError(t, err)
}

func TestVerify_UnknownTransaction(t *testing.T) {
	svc, _ := newSvc(&fakeClock{now: time.Now()})
	_, err := svc.VerifyOTP(context.Background(), "TXN_0_missing", "1234")
	assert.True(t, errors.Is(err, ErrTransactionNotFound))
}

func TestRequestOTP_RequiresIdentifier(t *testing.T) {
	svc, _ := newSvc(&fakeClock{now: time.Now()})
	_, err := svc.RequestOTP(context.Background(), "", "0771234567")
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

func TestRequestOTP_SendsSMS_AndToleratesDeliveryFailure(t *testing.T) {
	sms := &mockSMSSender{}
	sms.On("SendSMS", mock.Anything, "0771234567", mock.MatchedBy(func(msg string) bool {
		return strings.Contains(msg, "1234")
	})).Return(errors.New("sns down"))

	svc := NewService(NewMemoryStore(), sms, "1234", 5*time.Minute)
	txID, err := svc.RequestOTP(context.Background(), "NIC1", "0771234567")
	require.NoError(t, err)
	assert.NotEmpty(t, txID)
	sms.AssertExpectations(t)
}

func TestMaskMobile(t *testing.T) {
	assert.Equal(t, "****4567", maskMobile("0771234567"))
	assert.Equal(t, "123", maskMobile("123"))
}
