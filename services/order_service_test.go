package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"supply-portal/config"
	"supply-portal/models"
)

type fakeOrderStore struct {
	created   []*models.Order
	createErr error
}

func (f *fakeOrderStore) Create(ctx context.Context, order *models.Order) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, order)
	return nil
}

func (f *fakeOrderStore) ListByDepartment(ctx context.Context, departmentQuery string) ([]models.Order, error) {
	return []models.Order{}, nil
}

type fakeNotifier struct {
	sent    []*models.Order
	sendErr error
}

func (f *fakeNotifier) SendOrderNotifications(order *models.Order) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, order)
	return nil
}

func sampleSubmission() *models.SendOrderRequest {
	return &models.SendOrderRequest{
		UserInfo: &models.UserInfo{
			Username:   "jdoe",
			FullName:   "John Doe",
			Department: "3145-UCIPO",
			Email:      "jdoe@example.org",
			CostCenter: "CC-3145",
		},
		DeliveryLocation: "Planta 3",
		Comments:         "Urgent",
		Items: []models.OrderItemRequest{
			{CodSAP: "100001", Descripcion: "Guants", Quantity: 4},
			{CodSAP: "100002", Descripcion: "Gases", Quantity: 2},
			{CodSAP: "100003", Descripcion: "Xeringues", Quantity: 1},
		},
	}
}

func newTestOrderService(store *fakeOrderStore, notifier *fakeNotifier) *OrderService {
	return NewOrderService(store, notifier, &config.Config{RequestTimeout: time.Second})
}

func TestSubmitSuccess(t *testing.T) {
	store := &fakeOrderStore{}
	notifier := &fakeNotifier{}
	svc := newTestOrderService(store, notifier)

	order, degraded, err := svc.Submit(sampleSubmission())
	require.NoError(t, err)
	require.NotNil(t, order)

	assert.False(t, degraded)
	_, err = uuid.Parse(order.ID)
	assert.NoError(t, err, "order id is a generated UUID")

	require.Len(t, store.created, 1, "one order row")
	assert.Len(t, store.created[0].Items, 3, "one item row per cart entry")
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, order.ID, notifier.sent[0].ID)
}

func TestSubmitDegradedWhenNotificationFails(t *testing.T) {
	store := &fakeOrderStore{}
	notifier := &fakeNotifier{sendErr: &models.NotificationError{Err: errors.New("smtp unreachable")}}
	svc := newTestOrderService(store, notifier)

	order, degraded, err := svc.Submit(sampleSubmission())
	require.NoError(t, err, "a mail failure never surfaces as an error")
	require.NotNil(t, order)

	assert.True(t, degraded)
	require.Len(t, store.created, 1, "the persisted order survives the mail failure")
	assert.Equal(t, order.ID, store.created[0].ID)
}

func TestSubmitPersistenceFailure(t *testing.T) {
	store := &fakeOrderStore{createErr: &models.PersistenceError{Err: errors.New("connection reset")}}
	notifier := &fakeNotifier{}
	svc := newTestOrderService(store, notifier)

	order, degraded, err := svc.Submit(sampleSubmission())
	require.Error(t, err)

	var persistenceErr *models.PersistenceError
	assert.ErrorAs(t, err, &persistenceErr)
	assert.Nil(t, order)
	assert.False(t, degraded)
	assert.Empty(t, notifier.sent, "no mail goes out for an unstored order")
}

func TestValidateSubmissionMissingUserInfo(t *testing.T) {
	err := ValidateSubmission(&models.SendOrderRequest{
		Items: []models.OrderItemRequest{{CodSAP: "100001", Quantity: 1}},
	})
	require.Error(t, err)

	var validationErr *models.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestValidateSubmissionMissingItems(t *testing.T) {
	err := ValidateSubmission(&models.SendOrderRequest{
		UserInfo: &models.UserInfo{Username: "jdoe"},
	})
	require.Error(t, err)

	var validationErr *models.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestValidateSubmissionNilRequest(t *testing.T) {
	var validationErr *models.ValidationError
	assert.ErrorAs(t, ValidateSubmission(nil), &validationErr)
}

func TestValidateSubmissionOK(t *testing.T) {
	err := ValidateSubmission(&models.SendOrderRequest{
		UserInfo: &models.UserInfo{Username: "jdoe", Department: "3145-UCIPO"},
		Items: []models.OrderItemRequest{
			{CodSAP: "100001", Quantity: 1},
			{CodSAP: "100002", Quantity: 3},
		},
	})
	assert.NoError(t, err)
}
