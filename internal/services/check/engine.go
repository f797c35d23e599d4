package check

import (
	"time"

	"github.com/olehsv/check-service/internal/apperrors"
	"github.com/olehsv/check-service/internal/models"
)

// Assemble собирает чек из сырых товаров и оплаты: считает суммы позиций,
// общую сумму и сдачу, и проверяет инварианты. Производные поля никогда
// не считаются при десериализации — только здесь.
//
// Чек отклоняется, если список товаров пуст, оплата меньше суммы или
// сумма чека меньше единицы.
func Assemble(checkUUID string, createdAt time.Time, products []models.Product, payment models.Payment) (*models.Check, error) {
	if len(products) == 0 {
		return nil, apperrors.ErrProductListEmpty
	}
	if payment.Type == "" {
		payment.Type = models.PaymentTypeCash
	}

	check := &models.Check{
		UUID:      checkUUID,
		CreatedAt: createdAt,
		Products:  products,
		Payment:   payment,
	}
	deriveTotals(check)

	if check.Rest < 0 {
		return nil, apperrors.ErrNotEnoughMoney
	}
	if check.Total < 1 {
		return nil, apperrors.ErrEmptyCheck
	}
	return check, nil
}

// deriveTotals пересчитывает суммы позиций, общую сумму и сдачу.
// Используется и на записи, и на чтении: отображаемые суммы всегда
// выводятся из товаров и оплаты одним и тем же способом.
func deriveTotals(check *models.Check) {
	var total float64
	for i := range check.Products {
		check.Products[i].Total = check.Products[i].Price * check.Products[i].Quantity
		total += check.Products[i].Total
	}
	check.Total = total
	check.Rest = check.Payment.Amount - total
}
