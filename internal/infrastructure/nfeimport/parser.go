// Package nfeimport extracts payable data from Brazilian electronic invoice
// (NFe) XML documents. It reads the handful of tags the import flow needs by
// pattern matching, which tolerates namespace prefixes and partial documents.
package nfeimport

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	appboleto "github.com/fincontrol/backend/internal/application/boleto"
	"github.com/shopspring/decimal"
)

// paymentMethodLabels maps NFe 4.0 tPag codes to their descriptions
var paymentMethodLabels = map[string]string{
	"01": "Dinheiro",
	"02": "Cheque",
	"03": "Cartão de Crédito",
	"04": "Cartão de Débito",
	"05": "Crédito Loja",
	"10": "Vale Alimentação",
	"11": "Vale Refeição",
	"12": "Vale Presente",
	"13": "Vale Combustível",
	"15": "Boleto",
	"16": "Depósito Bancário",
	"17": "PIX",
	"18": "Transferência",
	"19": "Programa de fidelidade",
	"99": "Outros",
}

// PaymentMethodLabel returns the description of a tPag code
func PaymentMethodLabel(code string) string {
	if label, ok := paymentMethodLabels[code]; ok {
		return label
	}
	return fmt.Sprintf("Pagamento (%s)", code)
}

// Parser implements the boleto import DocumentParser for NFe XML
type Parser struct{}

// NewParser creates a new NFe parser
func NewParser() *Parser {
	return &Parser{}
}

// Parse extracts the payable fields from one NFe XML document. A nil result
// with a nil error means the document was not recognized or carries a
// non-positive total.
func (p *Parser) Parse(text string) (*appboleto.ParsedDocument, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	invoiceNumber := tagText(text, "nNF")
	issueDate := tagText(text, "dEmi")
	total := tagText(text, "vNF")
	issuerName := tagText(text, "xNome") // the first xNome is the issuer's
	operation := tagText(text, "natOp")

	amount, err := decimal.NewFromString(strings.ReplaceAll(firstNonEmpty(total, "0"), ",", "."))
	if err != nil || !amount.IsPositive() {
		return nil, nil
	}

	code := tagText(text, "tPag")
	label := ""
	if code != "" {
		label = PaymentMethodLabel(code)
	}

	number := firstNonEmpty(invoiceNumber, "NFe")
	var parts []string
	for _, part := range []string{number, operation, issuerName} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	description := strings.Join(parts, " - ")
	if description == "" {
		description = "NFe " + number
	}
	if len(description) > 200 {
		description = description[:200]
	}

	return &appboleto.ParsedDocument{
		Description:        description,
		Amount:             amount,
		DueDate:            normalizeDate(issueDate),
		PaymentMethodCode:  code,
		PaymentMethodLabel: label,
	}, nil
}

// tagText finds the text content of one XML tag, with or without a
// namespace prefix.
func tagText(xml, tag string) string {
	re := regexp.MustCompile(`(?i)<(?:[^:<>]+:)?` + tag + `[^>]*>([^<]*)</(?:[^:<>]+:)?` + tag + `>`)
	match := re.FindStringSubmatch(xml)
	if match == nil {
		return ""
	}
	return strings.TrimSpace(match[1])
}

// normalizeDate reads the NFe issue date (YYYY-MM-DD, possibly with a time
// suffix) and falls back to today when it is missing or malformed.
func normalizeDate(value string) time.Time {
	if len(value) >= 10 {
		if d, err := time.Parse("2006-01-02", value[:10]); err == nil {
			return d
		}
	}
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
