package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/olehsv/check-service/internal/apperrors"
	"github.com/olehsv/check-service/internal/models"
)

// CreateCheck сохраняет чек, его товары и оплату в одной транзакции.
// При любой ошибке транзакция откатывается целиком.
func (s *Storage) CreateCheck(ctx context.Context, check *models.Check, userUID string) error {
	const op = "storage.CreateCheck"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `INSERT INTO checks (uuid, user_uuid, created_at) VALUES ($1, $2, $3)`
	if _, err = tx.ExecContext(ctx, query, check.UUID, userUID, check.CreatedAt); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query = `INSERT INTO products (uuid, check_uuid, name, price, quantity)
			 VALUES ($1, $2, $3, $4, $5)`
	for _, product := range check.Products {
		if _, err = tx.ExecContext(ctx, query,
			uuid.NewString(), check.UUID, product.Name, product.Price, product.Quantity); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	query = `INSERT INTO payments (uuid, check_uuid, type, amount) VALUES ($1, $2, $3, $4)`
	if _, err = tx.ExecContext(ctx, query,
		uuid.NewString(), check.UUID, string(check.Payment.Type), check.Payment.Amount); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetCheck возвращает чек с товарами и оплатой одним запросом.
// Пустой userUID отключает проверку владельца (клиентская ссылка на чек).
func (s *Storage) GetCheck(ctx context.Context, checkUUID, userUID string) (*models.Check, error) {
	const op = "storage.GetCheck"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT c.uuid, c.created_at,
			      jsonb_agg(jsonb_build_object(
			          'name', p.name,
			          'price', p.price,
			          'quantity', p.quantity)) AS products,
			      jsonb_build_object(
			          'type', pay.type,
			          'amount', pay.amount) AS payment
			  FROM checks c
			  LEFT JOIN products p ON p.check_uuid = c.uuid
			  LEFT JOIN payments pay ON pay.check_uuid = c.uuid
			  WHERE c.uuid = $1`
	args := []any{checkUUID}
	if userUID != "" {
		query += ` AND c.user_uuid = $2`
		args = append(args, userUID)
	}
	query += ` GROUP BY c.uuid, c.created_at, pay.type, pay.amount`

	check, err := scanCheck(s.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, apperrors.ErrCheckNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return check, nil
}

// ListChecks возвращает страницу чеков пользователя и общее число строк
// выборки до пагинации. orderBy — уже проверенный сервисом SQL-фрагмент.
func (s *Storage) ListChecks(ctx context.Context, userUID string, f models.CheckFilter, orderBy string, limit, offset int) ([]*models.Check, int, error) {
	const op = "storage.ListChecks"
	select {
	case <-ctx.Done():
		return nil, 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	where := []string{"c.user_uuid = $1"}
	args := []any{userUID}
	next := func(arg any) string {
		args = append(args, arg)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.Search != "" {
		where = append(where, "p.name ILIKE '%' || "+next(f.Search)+" || '%'")
	}
	if f.CreatedAtBefore != nil {
		where = append(where, "c.created_at <= "+next(*f.CreatedAtBefore))
	}
	if f.CreatedAtAfter != nil {
		where = append(where, "c.created_at >= "+next(*f.CreatedAtAfter))
	}
	if f.PaymentType != "" {
		where = append(where, "pay.type = "+next(string(f.PaymentType)))
	}

	var having []string
	if f.TotalGte != nil {
		having = append(having, "SUM(p.price * p.quantity) >= "+next(*f.TotalGte))
	}
	if f.TotalLte != nil {
		having = append(having, "SUM(p.price * p.quantity) <= "+next(*f.TotalLte))
	}

	query := `SELECT c.uuid, c.created_at,
			      jsonb_agg(jsonb_build_object(
			          'name', p.name,
			          'price', p.price,
			          'quantity', p.quantity,
			          'total', p.price * p.quantity)) AS products,
			      jsonb_build_object(
			          'type', pay.type,
			          'amount', pay.amount) AS payment,
			      COALESCE(SUM(p.price * p.quantity), 0) AS total,
			      COALESCE(pay.amount, 0) - COALESCE(SUM(p.price * p.quantity), 0) AS rest
			  FROM checks c
			  LEFT JOIN products p ON p.check_uuid = c.uuid
			  LEFT JOIN payments pay ON pay.check_uuid = c.uuid
			  WHERE ` + strings.Join(where, " AND ") + `
			  GROUP BY c.uuid, c.created_at, pay.type, pay.amount`
	if len(having) > 0 {
		query += ` HAVING ` + strings.Join(having, " AND ")
	}

	var totalCount int
	countQuery := `SELECT count(*) FROM (` + query + `) AS original_query`
	if err := s.DB.QueryRowContext(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	query += ` ORDER BY ` + orderBy + ` LIMIT ` + next(limit) + ` OFFSET ` + next(offset)
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Check
	for rows.Next() {
		var check models.Check
		var productsJSON, paymentJSON []byte
		if err = rows.Scan(&check.UUID, &check.CreatedAt, &productsJSON, &paymentJSON,
			&check.Total, &check.Rest); err != nil {
			return nil, 0, fmt.Errorf("%s: %w", op, err)
		}
		if err = json.Unmarshal(productsJSON, &check.Products); err != nil {
			return nil, 0, fmt.Errorf("%s: %w", op, err)
		}
		if err = json.Unmarshal(paymentJSON, &check.Payment); err != nil {
			return nil, 0, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &check)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	return result, totalCount, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCheck(row rowScanner) (*models.Check, error) {
	var check models.Check
	var productsJSON, paymentJSON []byte
	if err := row.Scan(&check.UUID, &check.CreatedAt, &productsJSON, &paymentJSON); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(productsJSON, &check.Products); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(paymentJSON, &check.Payment); err != nil {
		return nil, err
	}
	return &check, nil
}
