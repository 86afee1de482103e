package models

import "time"

type Order struct {
	ID               string      `json:"id"`
	CostCenter       string      `json:"costCenter"`
	FullName         string      `json:"fullName"`
	Department       string      `json:"department"`
	Email            string      `json:"email"`
	DeliveryLocation string      `json:"deliveryLocation"`
	Comments         string      `json:"comments"`
	Items            []OrderItem `json:"items"`
	CreatedAt        time.Time   `json:"createdAt"`
}

// OrderItem is a frozen snapshot of a catalog row at submission time.
// CodSAP joins it back to the catalog informally; there is no FK to the
// live product list.
type OrderItem struct {
	ID          int    `json:"id"`
	OrderID     string `json:"orderId"`
	CodSAP      string `json:"codsap"`
	Descripcion string `json:"descripcion"`
	CodAS400    string `json:"codas400"`
	Ubicacion   string `json:"ubicacion"`
	Quantity    int    `json:"quantity"`
}
