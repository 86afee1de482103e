package services

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"supply-portal/config"
	"supply-portal/models"
)

type orderStore interface {
	Create(ctx context.Context, order *models.Order) error
	ListByDepartment(ctx context.Context, departmentQuery string) ([]models.Order, error)
}

type orderNotifier interface {
	SendOrderNotifications(order *models.Order) error
}

// OrderService turns a submitted cart into a persisted order and
// dispatches the two notification mails. Persistence and notification
// are deliberately decoupled: once the order is durable, a mail failure
// degrades the response instead of losing the order.
type OrderService struct {
	store    orderStore
	notifier orderNotifier
	timeout  time.Duration
}

func NewOrderService(store orderStore, notifier orderNotifier, cfg *config.Config) *OrderService {
	return &OrderService{store: store, notifier: notifier, timeout: cfg.RequestTimeout}
}

// Submit validates the payload, persists the order atomically and mails
// purchasing plus the requester. The returned bool reports degraded
// delivery: true means the order is stored but the mails did not go out.
func (s *OrderService) Submit(req *models.SendOrderRequest) (*models.Order, bool, error) {
	if err := ValidateSubmission(req); err != nil {
		return nil, false, err
	}

	order := &models.Order{
		ID:               uuid.NewString(),
		CostCenter:       req.UserInfo.CostCenter,
		FullName:         req.UserInfo.FullName,
		Department:       req.UserInfo.Department,
		Email:            req.UserInfo.Email,
		DeliveryLocation: req.DeliveryLocation,
		Comments:         req.Comments,
		CreatedAt:        time.Now(),
		Items:            make([]models.OrderItem, 0, len(req.Items)),
	}

	for _, item := range req.Items {
		order.Items = append(order.Items, models.OrderItem{
			CodSAP:      item.CodSAP,
			Descripcion: item.Descripcion,
			CodAS400:    item.CodAS400,
			Ubicacion:   item.Ubicacion,
			Quantity:    item.Quantity,
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if err := s.store.Create(ctx, order); err != nil {
		return nil, false, err
	}

	if err := s.notifier.SendOrderNotifications(order); err != nil {
		log.Printf("Order %s stored but notification failed: %v", order.ID, err)
		return order, true, nil
	}

	return order, false, nil
}

// History returns the submitted orders visible to a department.
func (s *OrderService) History(departmentQuery string) ([]models.Order, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	return s.store.ListByDepartment(ctx, departmentQuery)
}

// ValidateSubmission checks the required pieces of an order payload.
// Item fields themselves are not validated; missing ones simply render
// as empty values in the notifications.
func ValidateSubmission(req *models.SendOrderRequest) error {
	if req == nil || req.UserInfo == nil {
		return &models.ValidationError{Message: "userInfo is required"}
	}
	if len(req.Items) == 0 {
		return &models.ValidationError{Message: "items are required"}
	}
	return nil
}
