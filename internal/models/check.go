package models

import "time"

// PaymentType способ оплаты чека.
type PaymentType string

// Поддерживаемые способы оплаты.
const (
	PaymentTypeCash     PaymentType = "CASH"
	PaymentTypeCashless PaymentType = "CASHLESS"
)

// Valid сообщает, известен ли способ оплаты.
func (t PaymentType) Valid() bool {
	return t == PaymentTypeCash || t == PaymentTypeCashless
}

// Product позиция чека. Total = Price * Quantity, заполняется при сборке чека.
type Product struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity float64 `json:"quantity"`
	Total    float64 `json:"total"`
}

// Payment оплата чека, ровно одна на чек.
type Payment struct {
	Type   PaymentType `json:"type"`
	Amount float64     `json:"amount"`
}

// Check запись о покупке: товары, оплата и производные суммы.
// После создания не изменяется.
type Check struct {
	UUID      string    `json:"uuid"`
	CreatedAt time.Time `json:"created_at"`
	Products  []Product `json:"products"`
	Payment   Payment   `json:"payment"`
	Total     float64   `json:"total"`
	Rest      float64   `json:"rest"`
}
