package models

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type OrderItemRequest struct {
	CodSAP      string `json:"codsap"`
	Descripcion string `json:"descripcion"`
	CodAS400    string `json:"codas400"`
	Ubicacion   string `json:"ubicacion"`
	Quantity    int    `json:"quantity"`
}

type SendOrderRequest struct {
	UserInfo         *UserInfo          `json:"userInfo"`
	DeliveryLocation string             `json:"deliveryLocation"`
	Comments         string             `json:"comments"`
	Items            []OrderItemRequest `json:"items"`
}
