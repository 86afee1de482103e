package models

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

type LoginResponse struct {
	Success bool     `json:"success"`
	User    UserInfo `json:"user"`
	Token   string   `json:"token"`
}

type SendOrderResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	OrderID string `json:"orderId"`
}

type OrderListResponse struct {
	Success bool    `json:"success"`
	Orders  []Order `json:"orders"`
}
