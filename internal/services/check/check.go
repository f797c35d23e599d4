// Package check содержит логику чеков: сборку с проверкой инвариантов,
// транзакционное сохранение, выборку с фильтрами и текстовый чек для клиента.
package check

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/olehsv/check-service/internal/models"
)

// Repository описывает контракт хранилища чеков.
type Repository interface {
	// CreateCheck сохраняет чек, товары и оплату в одной транзакции.
	CreateCheck(ctx context.Context, check *models.Check, userUID string) error

	// GetCheck возвращает чек. Пустой userUID отключает проверку владельца.
	GetCheck(ctx context.Context, checkUUID, userUID string) (*models.Check, error)

	// ListChecks возвращает страницу чеков и общее число строк выборки.
	ListChecks(ctx context.Context, userUID string, f models.CheckFilter, orderBy string, limit, offset int) ([]*models.Check, int, error)
}

// Service отвечает за создание и чтение чеков.
type Service struct {
	repo Repository
}

// New создает сервис чеков.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create собирает чек, проверяет инварианты и сохраняет его атомарно.
func (s *Service) Create(ctx context.Context, userUID string, products []models.Product, payment models.Payment) (*models.Check, error) {
	const op = "check.Create"

	check, err := Assemble(uuid.NewString(), time.Now().UTC(), products, payment)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = s.repo.CreateCheck(ctx, check, userUID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return check, nil
}

// Get возвращает чек с производными суммами.
func (s *Service) Get(ctx context.Context, checkUUID, userUID string) (*models.Check, error) {
	const op = "check.Get"

	check, err := s.repo.GetCheck(ctx, checkUUID, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	deriveTotals(check)
	return check, nil
}

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// Допустимые поля сортировки и их SQL-выражения. Производные total и rest
// сортируются по вычисленным в запросе значениям.
var orderColumns = map[string]string{
	"created_at": "c.created_at",
	"total":      "total",
	"rest":       "rest",
}

// List возвращает страницу чеков пользователя. Неизвестное поле сортировки
// молча заменяется сортировкой по дате создания, новые сверху.
func (s *Service) List(ctx context.Context, userUID string, f models.CheckFilter) (*models.PaginatedChecks, error) {
	const op = "check.List"

	page := f.Page
	if page < 0 {
		page = 0
	}
	pageSize := f.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	results, totalCount, err := s.repo.ListChecks(ctx, userUID, f, resolveOrdering(f.Ordering), pageSize, page*pageSize)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	pageCount := (totalCount + pageSize - 1) / pageSize
	var next, previous *int
	if (page+1)*pageSize < totalCount {
		n := page + 1
		next = &n
	}
	if page > 0 {
		p := page - 1
		previous = &p
	}
	if results == nil {
		results = []*models.Check{}
	}
	return &models.PaginatedChecks{
		TotalCount: totalCount,
		PageCount:  pageCount,
		Next:       next,
		Previous:   previous,
		Results:    results,
	}, nil
}

func resolveOrdering(ordering string) string {
	field := ordering
	desc := false
	if strings.HasPrefix(ordering, "-") {
		field = strings.TrimPrefix(ordering, "-")
		desc = true
	}
	column, ok := orderColumns[field]
	if !ok {
		return "c.created_at DESC"
	}
	if desc {
		return column + " DESC"
	}
	return column + " ASC"
}
