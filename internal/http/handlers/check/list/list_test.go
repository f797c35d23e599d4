package list

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olehsv/check-service/internal/models"
)

func TestParseFilter(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet,
		"/checks/?search=молоко&created_at_after=2024-04-01T00:00:00&created_at_before=2024-05-01T00:00:00"+
			"&total_gte=10.5&total_lte=200&payment_type=CASHLESS&ordering=-total&page=2&page_size=20", nil)

	filter, err := parseFilter(req)
	require.NoError(t, err)

	assert.Equal(t, "молоко", filter.Search)
	require.NotNil(t, filter.CreatedAtAfter)
	assert.Equal(t, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), *filter.CreatedAtAfter)
	require.NotNil(t, filter.CreatedAtBefore)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), *filter.CreatedAtBefore)
	require.NotNil(t, filter.TotalGte)
	assert.Equal(t, 10.5, *filter.TotalGte)
	require.NotNil(t, filter.TotalLte)
	assert.Equal(t, 200.0, *filter.TotalLte)
	assert.Equal(t, models.PaymentTypeCashless, filter.PaymentType)
	assert.Equal(t, "-total", filter.Ordering)
	assert.Equal(t, 2, filter.Page)
	assert.Equal(t, 20, filter.PageSize)
}

func TestParseFilterEmptyQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/checks/", nil)

	filter, err := parseFilter(req)
	require.NoError(t, err)
	assert.Equal(t, models.CheckFilter{}, filter)
}

func TestParseFilterRejectsBadValues(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{name: "bad created_at_before", query: "created_at_before=01.04.2024"},
		{name: "bad created_at_after", query: "created_at_after=yesterday"},
		{name: "bad total_gte", query: "total_gte=ten"},
		{name: "bad total_lte", query: "total_lte=10,5"},
		{name: "unknown payment type", query: "payment_type=CRYPTO"},
		{name: "negative page", query: "page=-1"},
		{name: "page is not a number", query: "page=first"},
		{name: "zero page size", query: "page_size=0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/checks/?"+tt.query, nil)

			_, err := parseFilter(req)
			assert.Error(t, err)
		})
	}
}
