package check

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/olehsv/check-service/internal/config"
	"github.com/olehsv/check-service/internal/models"
)

// Метки итоговых строк чека. Тип оплаты печатается одной из двух
// фиксированных строк.
const (
	receiptTotalLabel    = "СУМА"
	receiptRestLabel     = "Решта"
	receiptCashLabel     = "Готівка"
	receiptCashlessLabel = "Картка"

	receiptDateLayout = "02.01.2006 15:04"

	// Ширина колонки сумм справа.
	amountWidth = 10
)

// ReceiptPrinter печатает чек фиксированной ширины для клиентской ссылки.
type ReceiptPrinter struct {
	header string
	footer string
	width  int
}

// NewReceiptPrinter создает принтер чеков из настроек.
func NewReceiptPrinter(cfg config.Receipt) *ReceiptPrinter {
	width := cfg.LineLength
	if width <= 0 {
		width = 30
	}
	return &ReceiptPrinter{
		header: cfg.Header,
		footer: cfg.Footer,
		width:  width,
	}
}

// Render возвращает текст чека: шапка, позиции с переносом длинных
// названий, итоговые строки с выровненными вправо суммами и подвал.
// Все ширины считаются в рунах, названия и метки могут быть кириллицей.
func (p *ReceiptPrinter) Render(check *models.Check) string {
	var lines []string
	lines = append(lines, center(p.header, p.width))
	lines = append(lines, strings.Repeat("=", p.width))
	lines = append(lines, "")

	for _, product := range check.Products {
		lines = append(lines, fmt.Sprintf("%.2f x %.2f", product.Quantity, product.Price))
		parts := p.wrapName(product.Name)
		for i, part := range parts {
			if i < len(parts)-1 {
				lines = append(lines, "    "+part)
				continue
			}
			totalSpace := p.width - utf8.RuneCountInString(part) - 4
			lines = append(lines, "    "+part+leftPad(fmt.Sprintf("%.2f", product.Total), totalSpace, "."))
		}
	}

	lines = append(lines, "")
	lines = append(lines, strings.Repeat("-", p.width))
	lines = append(lines, p.totalRow(receiptTotalLabel, check.Total))
	paymentLabel := receiptCashLabel
	if check.Payment.Type == models.PaymentTypeCashless {
		paymentLabel = receiptCashlessLabel
	}
	lines = append(lines, p.totalRow(paymentLabel, check.Payment.Amount))
	lines = append(lines, p.totalRow(receiptRestLabel, check.Rest))
	lines = append(lines, strings.Repeat("=", p.width))
	lines = append(lines, center(check.CreatedAt.Format(receiptDateLayout), p.width))
	lines = append(lines, center(p.footer, p.width))
	return strings.Join(lines, "\n")
}

// wrapName режет название товара на строки, умещающиеся в ширину чека
// за вычетом отступа и колонки суммы. Перенос идет по последнему пробелу,
// а слово длиннее строки рубится как есть.
func (p *ReceiptPrinter) wrapName(name string) []string {
	budget := p.width - amountWidth
	var parts []string
	runes := []rune(name)
	for len(runes) > 0 {
		if len(runes) <= budget {
			parts = append(parts, string(runes))
			break
		}
		window := runes
		if len(window) > p.width {
			window = window[:p.width]
		}
		cut := lastIndexSpace(window)
		if cut == -1 {
			cut = budget
		}
		parts = append(parts, string(runes[:cut]))
		runes = trimLeadingSpaces(runes[cut:])
	}
	return parts
}

func (p *ReceiptPrinter) totalRow(label string, amount float64) string {
	return rightPad(label, p.width-amountWidth) + leftPad(fmt.Sprintf("%.2f", amount), amountWidth, " ")
}

func lastIndexSpace(runes []rune) int {
	for i := len(runes) - 1; i >= 0; i-- {
		if runes[i] == ' ' {
			return i
		}
	}
	return -1
}

func trimLeadingSpaces(runes []rune) []rune {
	for len(runes) > 0 && runes[0] == ' ' {
		runes = runes[1:]
	}
	return runes
}

func center(s string, width int) string {
	gap := width - utf8.RuneCountInString(s)
	if gap <= 0 {
		return s
	}
	left := gap / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", gap-left)
}

func leftPad(s string, width int, fill string) string {
	gap := width - utf8.RuneCountInString(s)
	if gap <= 0 {
		return s
	}
	return strings.Repeat(fill, gap) + s
}

func rightPad(s string, width int) string {
	gap := width - utf8.RuneCountInString(s)
	if gap <= 0 {
		return s
	}
	return s + strings.Repeat(" ", gap)
}
