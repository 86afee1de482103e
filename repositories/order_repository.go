package repositories

import (
	"context"
	"strings"

	"supply-portal/models"
)

type OrderRepository struct{}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

// Create writes the order header and all item rows in one transaction.
// Any failure rolls the whole order back; there are no partially written
// orders.
func (r *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	tx, err := models.DB.Begin(ctx)
	if err != nil {
		return &models.PersistenceError{Err: err}
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO orders (id, cost_center, full_name, department, email, delivery_location, comments, created_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		order.ID, order.CostCenter, order.FullName, order.Department,
		order.Email, order.DeliveryLocation, order.Comments, order.CreatedAt)
	if err != nil {
		return &models.PersistenceError{Err: err}
	}

	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = order.ID
		err = tx.QueryRow(ctx,
			`INSERT INTO order_items (order_id, codsap, descripcion, codas400, ubicacion, quantity)
			 VALUES ($1,$2,$3,$4,$5,$6) RETURNING id`,
			order.ID, item.CodSAP, item.Descripcion, item.CodAS400, item.Ubicacion, item.Quantity,
		).Scan(&item.ID)
		if err != nil {
			return &models.PersistenceError{Err: err}
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return &models.PersistenceError{Err: err}
	}

	return nil
}

// ListByDepartment returns orders whose department shares the leading
// numeric segment of the query, newest first, with their nested items.
// Orders without items still appear, with an empty item list.
func (r *OrderRepository) ListByDepartment(ctx context.Context, departmentQuery string) ([]models.Order, error) {
	prefix := DepartmentPrefix(departmentQuery)

	rows, err := models.DB.Query(ctx,
		`SELECT id, cost_center, full_name, department, email, delivery_location, comments, created_at
		 FROM orders
		 WHERE split_part(department, '-', 1) = $1
		 ORDER BY created_at DESC`,
		prefix)
	if err != nil {
		return nil, &models.PersistenceError{Err: err}
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		var o models.Order
		err := rows.Scan(&o.ID, &o.CostCenter, &o.FullName, &o.Department,
			&o.Email, &o.DeliveryLocation, &o.Comments, &o.CreatedAt)
		if err != nil {
			return nil, &models.PersistenceError{Err: err}
		}
		o.Items = []models.OrderItem{}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, &models.PersistenceError{Err: err}
	}

	for i := range orders {
		items, err := r.listItems(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}

	return orders, nil
}

func (r *OrderRepository) listItems(ctx context.Context, orderID string) ([]models.OrderItem, error) {
	rows, err := models.DB.Query(ctx,
		`SELECT id, order_id, codsap, descripcion, codas400, ubicacion, quantity
		 FROM order_items WHERE order_id = $1 ORDER BY id`,
		orderID)
	if err != nil {
		return nil, &models.PersistenceError{Err: err}
	}
	defer rows.Close()

	items := []models.OrderItem{}
	for rows.Next() {
		var it models.OrderItem
		err := rows.Scan(&it.ID, &it.OrderID, &it.CodSAP, &it.Descripcion,
			&it.CodAS400, &it.Ubicacion, &it.Quantity)
		if err != nil {
			return nil, &models.PersistenceError{Err: err}
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, &models.PersistenceError{Err: err}
	}

	return items, nil
}

// DepartmentPrefix extracts the leading numeric segment of a department
// label, the text before the first "-". "3145-UCIPO" matches any stored
// department starting with "3145".
func DepartmentPrefix(department string) string {
	return strings.TrimSpace(strings.SplitN(department, "-", 2)[0])
}
