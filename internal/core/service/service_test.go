package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/MikeRez0/inarashop/internal/adapter/storage/memory"
	"github.com/MikeRez0/inarashop/internal/core/domain"
	"github.com/MikeRez0/inarashop/internal/core/port/mock"
	"github.com/MikeRez0/inarashop/internal/core/service"
	"github.com/MikeRez0/inarashop/internal/core/utils"
	"github.com/golang/mock/gomock"
	"github.com/govalues/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mocks struct {
	repo     *mock.MockRepository
	gateway  *mock.MockPaymentGateway
	verifier *mock.MockSignatureVerifier
	keys     *mock.MockCheckoutKeyStore
	tokens   *mock.MockTokenService
}

type prepareMocks func(m *mocks)

func newService(t *testing.T, mockCtrl *gomock.Controller, settings service.Settings) (*service.Service, *mocks) {
	t.Helper()
	m := &mocks{
		repo:     mock.NewMockRepository(mockCtrl),
		gateway:  mock.NewMockPaymentGateway(mockCtrl),
		verifier: mock.NewMockSignatureVerifier(mockCtrl),
		keys:     mock.NewMockCheckoutKeyStore(mockCtrl),
		tokens:   mock.NewMockTokenService(mockCtrl),
	}
	s, err := service.NewService(m.repo, m.gateway, m.verifier, m.keys, m.tokens, settings, zap.NewNop())
	require.NoError(t, err)
	return s, m
}

func checkout() *domain.Checkout {
	return &domain.Checkout{
		Items: []domain.OrderItem{
			{ProductID: "p1", Title: "Flute", Quantity: 2, Price: decimal.MustParse("380")},
		},
		Customer: domain.Customer{
			Name: "Radha", Phone: "9999999999", Address: "Vrindavan", Pincode: "281121"},
		ShippingFee: decimal.MustParse("40"),
		Subtotal:    decimal.MustParse("760"),
		Total:       decimal.MustParse("800"),
	}
}

var remoteOrder = &domain.GatewayOrder{ID: "order_1", Amount: 80000, Currency: "INR", Status: "created"}

func expectGatewayOrder(m *mocks) {
	m.gateway.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, req domain.GatewayOrderRequest) (*domain.GatewayOrder, error) {
			if req.AmountMinor != 80000 || req.Currency != "INR" || !strings.HasPrefix(req.Receipt, "rcpt_") {
				return nil, errors.New("unexpected gateway request")
			}
			if _, ok := ctx.Deadline(); !ok {
				return nil, errors.New("gateway call without deadline")
			}
			return remoteOrder, nil
		})
}

func expectPendingOrder(m *mocks, paymentOrderID string) {
	m.repo.EXPECT().CreatePendingOrder(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, o *domain.Order) (*domain.Order, error) {
			if o.PaymentStatus != domain.PaymentStatusPending || o.Status != domain.OrderStatusPending ||
				o.PaymentOrderID != paymentOrderID || o.AmountMinor != 80000 || o.ID == "" {
				return nil, errors.New("unexpected pending order")
			}
			return o, nil
		})
}

func TestService_CreateCheckoutOrder(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	tests := []struct {
		name      string
		modify    func(c *domain.Checkout)
		mock      prepareMocks
		expError  error
		expRemote *domain.GatewayOrder
	}{
		{
			name: "Online order",
			mock: func(m *mocks) {
				expectGatewayOrder(m)
				expectPendingOrder(m, "order_1")
				m.gateway.EXPECT().KeyID().Return("rzp_test")
			},
			expRemote: remoteOrder,
		},
		{
			name:   "Explicit minor amount",
			modify: func(c *domain.Checkout) { c.Amount = "80000" },
			mock: func(m *mocks) {
				expectGatewayOrder(m)
				expectPendingOrder(m, "order_1")
				m.gateway.EXPECT().KeyID().Return("rzp_test")
			},
			expRemote: remoteOrder,
		},
		{
			name:   "Cash on delivery skips gateway",
			modify: func(c *domain.Checkout) { c.PaymentMethod = domain.PaymentMethodCOD },
			mock: func(m *mocks) {
				expectPendingOrder(m, "")
				m.gateway.EXPECT().KeyID().Return("rzp_test")
			},
		},
		{
			name:     "Missing address",
			modify:   func(c *domain.Checkout) { c.Customer.Address = "" },
			mock:     func(m *mocks) {},
			expError: domain.ErrValidation,
		},
		{
			name:     "Invalid amount",
			modify:   func(c *domain.Checkout) { c.Amount = "-800" },
			mock:     func(m *mocks) {},
			expError: domain.ErrInvalidAmount,
		},
		{
			name: "Gateway failure",
			mock: func(m *mocks) {
				m.gateway.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).Return(nil, errors.New("connection reset"))
			},
			expError: domain.ErrGateway,
		},
		{
			name: "Gateway not configured",
			mock: func(m *mocks) {
				m.gateway.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).Return(nil, domain.ErrConfiguration)
			},
			expError: domain.ErrConfiguration,
		},
		{
			name: "Gateway returns no id",
			mock: func(m *mocks) {
				m.gateway.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).Return(&domain.GatewayOrder{}, nil)
			},
			expError: domain.ErrGateway,
		},
		{
			name: "Remote order already mapped",
			mock: func(m *mocks) {
				expectGatewayOrder(m)
				m.repo.EXPECT().CreatePendingOrder(gomock.Any(), gomock.Any()).Return(nil, domain.ErrConflictingData)
			},
			expError: domain.ErrConflictingData,
		},
		{
			name: "Storage failure",
			mock: func(m *mocks) {
				expectGatewayOrder(m)
				m.repo.EXPECT().CreatePendingOrder(gomock.Any(), gomock.Any()).Return(nil, errors.New("conn refused"))
			},
			expError: domain.ErrStorage,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s, m := newService(t, mockCtrl, service.Settings{})
			test.mock(m)

			c := checkout()
			if test.modify != nil {
				test.modify(c)
			}

			result, err := s.CreateCheckoutOrder(context.Background(), c, "")
			if test.expError != nil {
				assert.ErrorIs(t, err, test.expError)
				assert.Nil(t, result)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, result.OrderID)
			assert.Equal(t, test.expRemote, result.GatewayOrder)
			assert.Equal(t, "rzp_test", result.KeyID)
		})
	}
}

func TestService_CreateCheckoutOrderIdempotency(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	stored := &domain.CheckoutResult{OrderID: "o1", GatewayOrder: remoteOrder, KeyID: "rzp_test"}

	tests := []struct {
		name      string
		mock      prepareMocks
		expError  error
		expResult *domain.CheckoutResult
	}{
		{
			name: "Replay stored result",
			mock: func(m *mocks) {
				m.keys.EXPECT().Reserve(gomock.Any(), "k1", gomock.Any()).Return(false, stored, nil)
			},
			expResult: stored,
		},
		{
			name: "First request still running",
			mock: func(m *mocks) {
				m.keys.EXPECT().Reserve(gomock.Any(), "k1", gomock.Any()).Return(false, nil, nil)
			},
			expError: domain.ErrDuplicateRequest,
		},
		{
			name: "Key store unavailable",
			mock: func(m *mocks) {
				m.keys.EXPECT().Reserve(gomock.Any(), "k1", gomock.Any()).Return(false, nil, errors.New("redis down"))
			},
			expError: domain.ErrStorage,
		},
		{
			name: "Failed checkout releases key",
			mock: func(m *mocks) {
				m.keys.EXPECT().Reserve(gomock.Any(), "k1", gomock.Any()).Return(true, nil, nil)
				m.gateway.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).Return(nil, errors.New("timeout"))
				m.keys.EXPECT().Release(gomock.Any(), "k1").Return(nil)
			},
			expError: domain.ErrGateway,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s, m := newService(t, mockCtrl, service.Settings{})
			test.mock(m)

			result, err := s.CreateCheckoutOrder(context.Background(), checkout(), "k1")
			if test.expError != nil {
				assert.ErrorIs(t, err, test.expError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.expResult, result)
		})
	}

	t.Run("Successful checkout stores result", func(t *testing.T) {
		s, m := newService(t, mockCtrl, service.Settings{})
		m.keys.EXPECT().Reserve(gomock.Any(), "k1", 20*time.Second).Return(true, nil, nil)
		expectGatewayOrder(m)
		expectPendingOrder(m, "order_1")
		m.gateway.EXPECT().KeyID().Return("rzp_test")

		var completed *domain.CheckoutResult
		m.keys.EXPECT().Complete(gomock.Any(), "k1", gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, r *domain.CheckoutResult) error {
				completed = r
				return nil
			})

		result, err := s.CreateCheckoutOrder(context.Background(), checkout(), "k1")
		require.NoError(t, err)
		assert.Equal(t, result, completed)
	})

	t.Run("Unstored result releases key", func(t *testing.T) {
		s, m := newService(t, mockCtrl, service.Settings{})
		m.keys.EXPECT().Reserve(gomock.Any(), "k1", gomock.Any()).Return(true, nil, nil)
		expectGatewayOrder(m)
		expectPendingOrder(m, "order_1")
		m.gateway.EXPECT().KeyID().Return("rzp_test")
		m.keys.EXPECT().Complete(gomock.Any(), "k1", gomock.Any()).Return(errors.New("redis down"))
		m.keys.EXPECT().Release(gomock.Any(), "k1").Return(nil)

		result, err := s.CreateCheckoutOrder(context.Background(), checkout(), "k1")
		require.NoError(t, err)
		assert.NotEmpty(t, result.OrderID)
	})
}

// unstoredKeyStore keeps reservations but loses every result.
type unstoredKeyStore struct {
	*memory.KeyStore
}

func (unstoredKeyStore) Complete(context.Context, string, *domain.CheckoutResult) error {
	return errors.New("result not stored")
}

func TestService_CreateCheckoutOrderRetryAfterLostResult(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	m := &mocks{
		repo:    mock.NewMockRepository(mockCtrl),
		gateway: mock.NewMockPaymentGateway(mockCtrl),
	}
	keys := unstoredKeyStore{memory.NewKeyStore(24 * time.Hour)}
	s, err := service.NewService(m.repo, m.gateway, nil, keys, nil, service.Settings{}, zap.NewNop())
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		expectGatewayOrder(m)
		expectPendingOrder(m, "order_1")
		m.gateway.EXPECT().KeyID().Return("rzp_test")

		result, err := s.CreateCheckoutOrder(context.Background(), checkout(), "k1")
		require.NoError(t, err, "attempt %d", i)
		assert.NotEmpty(t, result.OrderID)
	}
}

func TestService_CreateCheckoutOrderGatewayTimeout(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	s, m := newService(t, mockCtrl, service.Settings{GatewayTimeout: 20 * time.Millisecond})
	m.gateway.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ domain.GatewayOrderRequest) (*domain.GatewayOrder, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		})

	_, err := s.CreateCheckoutOrder(context.Background(), checkout(), "")
	assert.ErrorIs(t, err, domain.ErrGateway)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func paidOrder() *domain.Order {
	return &domain.Order{
		ID:               "o1",
		PaymentMethod:    domain.PaymentMethodOnline,
		PaymentStatus:    domain.PaymentStatusPaid,
		PaymentOrderID:   "order_1",
		PaymentID:        "pay_1",
		PaymentSignature: "sig",
		Status:           domain.OrderStatusConfirmed,
	}
}

func TestService_VerifyPayment(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	confirmation := domain.PaymentConfirmation{PaymentID: "pay_1", Signature: "sig"}

	tests := []struct {
		name      string
		paymentID string
		signature string
		mock      prepareMocks
		expError  error
		expResult domain.OrderID
	}{
		{
			name: "Pending order becomes paid",
			mock: func(m *mocks) {
				m.verifier.EXPECT().VerifyPayment("order_1", "pay_1", "sig").Return(true, nil)
				m.repo.EXPECT().MarkOrderPaidIfPending(gomock.Any(), "order_1", confirmation).Return(paidOrder(), nil)
			},
			expResult: "o1",
		},
		{
			name: "Already paid is success",
			mock: func(m *mocks) {
				m.verifier.EXPECT().VerifyPayment("order_1", "pay_1", "sig").Return(true, nil)
				m.repo.EXPECT().MarkOrderPaidIfPending(gomock.Any(), "order_1", confirmation).
					Return(nil, domain.ErrNoUpdatedData)
				m.repo.EXPECT().ReadOrderByPaymentOrderID(gomock.Any(), "order_1").Return(paidOrder(), nil)
			},
			expResult: "o1",
		},
		{
			name: "Unknown remote order",
			mock: func(m *mocks) {
				m.verifier.EXPECT().VerifyPayment("order_1", "pay_1", "sig").Return(true, nil)
				m.repo.EXPECT().MarkOrderPaidIfPending(gomock.Any(), "order_1", confirmation).
					Return(nil, domain.ErrNoUpdatedData)
				m.repo.EXPECT().ReadOrderByPaymentOrderID(gomock.Any(), "order_1").Return(nil, domain.ErrDataNotFound)
			},
			expError: domain.ErrOrderNotFound,
		},
		{
			name: "Signature mismatch never touches the store",
			mock: func(m *mocks) {
				m.verifier.EXPECT().VerifyPayment("order_1", "pay_1", "sig").Return(false, nil)
			},
			expError: domain.ErrInvalidSignature,
		},
		{
			name:      "Missing payment id",
			paymentID: "-",
			mock:      func(m *mocks) {},
			expError:  domain.ErrValidation,
		},
		{
			name:      "Missing signature",
			signature: "-",
			mock:      func(m *mocks) {},
			expError:  domain.ErrValidation,
		},
		{
			name: "Secret not configured",
			mock: func(m *mocks) {
				m.verifier.EXPECT().VerifyPayment("order_1", "pay_1", "sig").Return(false, domain.ErrConfiguration)
			},
			expError: domain.ErrConfiguration,
		},
		{
			name: "Storage failure",
			mock: func(m *mocks) {
				m.verifier.EXPECT().VerifyPayment("order_1", "pay_1", "sig").Return(true, nil)
				m.repo.EXPECT().MarkOrderPaidIfPending(gomock.Any(), "order_1", confirmation).
					Return(nil, errors.New("conn refused"))
			},
			expError: domain.ErrStorage,
		},
		{
			name: "Not updated and not paid",
			mock: func(m *mocks) {
				m.verifier.EXPECT().VerifyPayment("order_1", "pay_1", "sig").Return(true, nil)
				m.repo.EXPECT().MarkOrderPaidIfPending(gomock.Any(), "order_1", confirmation).
					Return(nil, domain.ErrNoUpdatedData)
				o := paidOrder()
				o.PaymentStatus = domain.PaymentStatusPending
				m.repo.EXPECT().ReadOrderByPaymentOrderID(gomock.Any(), "order_1").Return(o, nil)
			},
			expError: domain.ErrInternal,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s, m := newService(t, mockCtrl, service.Settings{})
			test.mock(m)

			paymentID, signature := "pay_1", "sig"
			if test.paymentID == "-" {
				paymentID = ""
			}
			if test.signature == "-" {
				signature = ""
			}

			result, err := s.VerifyPayment(context.Background(), "order_1", paymentID, signature)
			if test.expError != nil {
				assert.ErrorIs(t, err, test.expError)
				assert.Empty(t, result)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.expResult, result)
		})
	}
}

func TestService_VerifyPaymentStoreTimeout(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	s, m := newService(t, mockCtrl, service.Settings{StoreTimeout: 20 * time.Millisecond})
	m.verifier.EXPECT().VerifyPayment("order_1", "pay_1", "sig").Return(true, nil)
	m.repo.EXPECT().MarkOrderPaidIfPending(gomock.Any(), "order_1", gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ string, _ domain.PaymentConfirmation) (*domain.Order, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		})

	_, err := s.VerifyPayment(context.Background(), "order_1", "pay_1", "sig")
	assert.ErrorIs(t, err, domain.ErrStorage)
}

func TestService_HandleGatewayEvent(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	body := []byte(`{"event":"payment.captured"}`)
	captured := &domain.GatewayEvent{
		Type: domain.GatewayEventPaymentCaptured, PaymentOrderID: "order_1", PaymentID: "pay_1"}
	failed := &domain.GatewayEvent{
		Type: domain.GatewayEventPaymentFailed, PaymentOrderID: "order_1", PaymentID: "pay_1"}

	signed := func(m *mocks) {
		m.verifier.EXPECT().VerifyWebhook(body, "hook_sig").Return(true, nil)
	}

	tests := []struct {
		name      string
		signature string
		mock      prepareMocks
		expError  error
	}{
		{
			name:      "Missing signature",
			signature: "",
			mock:      func(m *mocks) {},
			expError:  domain.ErrValidation,
		},
		{
			name:      "Bad signature",
			signature: "hook_sig",
			mock: func(m *mocks) {
				m.verifier.EXPECT().VerifyWebhook(body, "hook_sig").Return(false, nil)
			},
			expError: domain.ErrInvalidSignature,
		},
		{
			name:      "Captured payment",
			signature: "hook_sig",
			mock: func(m *mocks) {
				signed(m)
				m.gateway.EXPECT().ParseEvent(body).Return(captured, nil)
				m.repo.EXPECT().MarkOrderPaidIfPending(gomock.Any(), "order_1",
					domain.PaymentConfirmation{PaymentID: "pay_1", Signature: "hook_sig"}).Return(paidOrder(), nil)
			},
		},
		{
			name:      "Captured payment for unknown order is acknowledged",
			signature: "hook_sig",
			mock: func(m *mocks) {
				signed(m)
				m.gateway.EXPECT().ParseEvent(body).Return(captured, nil)
				m.repo.EXPECT().MarkOrderPaidIfPending(gomock.Any(), "order_1", gomock.Any()).
					Return(nil, domain.ErrNoUpdatedData)
				m.repo.EXPECT().ReadOrderByPaymentOrderID(gomock.Any(), "order_1").Return(nil, domain.ErrDataNotFound)
			},
		},
		{
			name:      "Failed payment",
			signature: "hook_sig",
			mock: func(m *mocks) {
				signed(m)
				m.gateway.EXPECT().ParseEvent(body).Return(failed, nil)
				o := paidOrder()
				o.PaymentStatus = domain.PaymentStatusFailed
				m.repo.EXPECT().MarkOrderFailedIfPending(gomock.Any(), "order_1").Return(o, nil)
			},
		},
		{
			name:      "Failed payment after success is ignored",
			signature: "hook_sig",
			mock: func(m *mocks) {
				signed(m)
				m.gateway.EXPECT().ParseEvent(body).Return(failed, nil)
				m.repo.EXPECT().MarkOrderFailedIfPending(gomock.Any(), "order_1").Return(nil, domain.ErrNoUpdatedData)
			},
		},
		{
			name:      "Unparsable event",
			signature: "hook_sig",
			mock: func(m *mocks) {
				signed(m)
				m.gateway.EXPECT().ParseEvent(body).Return(nil, errors.New("no order id"))
			},
			expError: domain.ErrValidation,
		},
		{
			name:      "Other events are skipped",
			signature: "hook_sig",
			mock: func(m *mocks) {
				signed(m)
				m.gateway.EXPECT().ParseEvent(body).Return(&domain.GatewayEvent{Type: "refund.created"}, nil)
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s, m := newService(t, mockCtrl, service.Settings{})
			test.mock(m)

			err := s.HandleGatewayEvent(context.Background(), body, test.signature)
			if test.expError != nil {
				assert.ErrorIs(t, err, test.expError)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestService_LoginAdmin(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	hashed, err := utils.HashPassword("secret")
	require.NoError(t, err)
	admin := domain.Admin{Username: "admin", PasswordHash: hashed}

	tests := []struct {
		name     string
		admin    domain.Admin
		username string
		password string
		mock     prepareMocks
		expError error
		expToken string
	}{
		{
			name: "Login good", admin: admin, username: "admin", password: "secret",
			mock: func(m *mocks) {
				m.tokens.EXPECT().CreateToken(gomock.Any()).Return("token", nil)
			},
			expToken: "token",
		},
		{
			name: "Wrong password", admin: admin, username: "admin", password: "guess",
			mock: func(m *mocks) {}, expError: domain.ErrInvalidCredentials,
		},
		{
			name: "Wrong user", admin: admin, username: "root", password: "secret",
			mock: func(m *mocks) {}, expError: domain.ErrInvalidCredentials,
		},
		{
			name: "Admin not configured", username: "admin", password: "secret",
			mock: func(m *mocks) {}, expError: domain.ErrInvalidCredentials,
		},
		{
			name: "Token failure", admin: admin, username: "admin", password: "secret",
			mock: func(m *mocks) {
				m.tokens.EXPECT().CreateToken(gomock.Any()).Return("", errors.New("key"))
			},
			expError: domain.ErrTokenCreation,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s, m := newService(t, mockCtrl, service.Settings{Admin: test.admin})
			test.mock(m)

			token, err := s.LoginAdmin(context.Background(), test.username, test.password)
			assert.Equal(t, test.expError, err)
			assert.Equal(t, test.expToken, token)
		})
	}
}

func TestService_UpdateOrderStatus(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	pendingOnline := &domain.Order{ID: "o1", PaymentMethod: domain.PaymentMethodOnline,
		PaymentStatus: domain.PaymentStatusPending, Status: domain.OrderStatusPending}
	pendingCOD := &domain.Order{ID: "o2", PaymentMethod: domain.PaymentMethodCOD,
		PaymentStatus: domain.PaymentStatusPending, Status: domain.OrderStatusPending}

	tests := []struct {
		name     string
		id       domain.OrderID
		status   domain.OrderStatus
		mock     prepareMocks
		expError error
	}{
		{
			name: "Unknown status", id: "o1", status: "LOST",
			mock: func(m *mocks) {}, expError: domain.ErrValidation,
		},
		{
			name: "Missing order", id: "o9", status: domain.OrderStatusCancelled,
			mock: func(m *mocks) {
				m.repo.EXPECT().ReadOrder(gomock.Any(), domain.OrderID("o9")).Return(nil, domain.ErrDataNotFound)
			},
			expError: domain.ErrDataNotFound,
		},
		{
			name: "Ship paid order", id: "o1", status: domain.OrderStatusShipped,
			mock: func(m *mocks) {
				m.repo.EXPECT().ReadOrder(gomock.Any(), domain.OrderID("o1")).Return(paidOrder(), nil)
				m.repo.EXPECT().UpdateOrderStatus(gomock.Any(), domain.OrderID("o1"),
					domain.OrderStatusConfirmed, domain.OrderStatusShipped).Return(paidOrder(), nil)
			},
		},
		{
			name: "Same status is a no-op", id: "o1", status: domain.OrderStatusConfirmed,
			mock: func(m *mocks) {
				m.repo.EXPECT().ReadOrder(gomock.Any(), domain.OrderID("o1")).Return(paidOrder(), nil)
			},
		},
		{
			name: "Skip a step", id: "o1", status: domain.OrderStatusDelivered,
			mock: func(m *mocks) {
				m.repo.EXPECT().ReadOrder(gomock.Any(), domain.OrderID("o1")).Return(paidOrder(), nil)
			},
			expError: domain.ErrInvalidStatusTransition,
		},
		{
			name: "Confirm unpaid online order", id: "o1", status: domain.OrderStatusConfirmed,
			mock: func(m *mocks) {
				m.repo.EXPECT().ReadOrder(gomock.Any(), domain.OrderID("o1")).Return(pendingOnline, nil)
			},
			expError: domain.ErrInvalidStatusTransition,
		},
		{
			name: "Confirm cash on delivery", id: "o2", status: domain.OrderStatusConfirmed,
			mock: func(m *mocks) {
				m.repo.EXPECT().ReadOrder(gomock.Any(), domain.OrderID("o2")).Return(pendingCOD, nil)
				m.repo.EXPECT().UpdateOrderStatus(gomock.Any(), domain.OrderID("o2"),
					domain.OrderStatusPending, domain.OrderStatusConfirmed).Return(pendingCOD, nil)
			},
		},
		{
			name: "Concurrent change", id: "o2", status: domain.OrderStatusCancelled,
			mock: func(m *mocks) {
				m.repo.EXPECT().ReadOrder(gomock.Any(), domain.OrderID("o2")).Return(pendingCOD, nil)
				m.repo.EXPECT().UpdateOrderStatus(gomock.Any(), domain.OrderID("o2"),
					domain.OrderStatusPending, domain.OrderStatusCancelled).Return(nil, domain.ErrNoUpdatedData)
			},
			expError: domain.ErrInvalidStatusTransition,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s, m := newService(t, mockCtrl, service.Settings{})
			test.mock(m)

			result, err := s.UpdateOrderStatus(context.Background(), test.id, test.status)
			if test.expError != nil {
				assert.ErrorIs(t, err, test.expError)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, result)
		})
	}
}

func TestService_Products(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	s, m := newService(t, mockCtrl, service.Settings{})

	_, err := s.CreateProduct(context.Background(), &domain.Product{Price: decimal.MustParse("10")})
	assert.ErrorIs(t, err, domain.ErrValidation)

	m.repo.EXPECT().CreateProduct(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, p *domain.Product) (*domain.Product, error) {
			return p, nil
		})
	created, err := s.CreateProduct(context.Background(),
		&domain.Product{Title: "Flute", Price: decimal.MustParse("380")})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	m.repo.EXPECT().ReadProduct(gomock.Any(), domain.ProductID("p9")).Return(nil, domain.ErrDataNotFound)
	_, err = s.GetProduct(context.Background(), "p9")
	assert.Equal(t, domain.ErrDataNotFound, err)

	m.repo.EXPECT().DeleteProduct(gomock.Any(), domain.ProductID("p1")).Return(errors.New("conn refused"))
	err = s.DeleteProduct(context.Background(), "p1")
	assert.ErrorIs(t, err, domain.ErrStorage)
}
