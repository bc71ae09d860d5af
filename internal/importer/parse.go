package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tallyup-dev/tallyup/internal/id"
	"github.com/tallyup-dev/tallyup/internal/model"
	"github.com/tallyup-dev/tallyup/internal/schema"
)

// Stats summarizes a parse run. Row failures are soft: the row is counted
// and skipped, never fatal to the batch.
type Stats struct {
	Accepted int
	Skipped  int
}

// fallbackNoteColumns are secondary descriptive columns assembled into the
// note when no note column is mapped or it is empty.
var fallbackNoteColumns = []string{"Particulars", "Code", "Reference"}

// isoLayouts are tried in order when a mapping has no explicit date format.
var isoLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006/01/02",
}

// Parse reads a CSV export and returns normalized transactions. A supplied
// mapping may be nil; it is resolved (or overridden, when stale) against the
// actual headers. Category, flow and merchantNorm are left unset for the
// enrichment stages.
func Parse(r io.Reader, supplied *schema.Mapping, defaultCurrency string) ([]model.Transaction, Stats, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, Stats{}, fmt.Errorf("reading CSV: %w", err)
	}
	if len(records) < 2 {
		return nil, Stats{}, nil
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = strings.TrimSpace(h)
	}
	mapping := schema.Resolve(supplied, headers)

	var txns []model.Transaction
	var stats Stats
	for _, rec := range records[1:] {
		row := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(rec) {
				row[h] = rec[i]
			}
		}
		txn, ok := normalizeRow(row, mapping, len(txns), defaultCurrency)
		if !ok {
			stats.Skipped++
			continue
		}
		txns = append(txns, txn)
		stats.Accepted++
	}
	return txns, stats, nil
}

// normalizeRow converts one raw row into a Transaction, or reports false
// when a required field is missing or unparseable.
func normalizeRow(row map[string]string, m schema.Mapping, ordinal int, defaultCurrency string) (model.Transaction, bool) {
	dateStr, hasDate := row[m.Date]
	amountStr, hasAmount := row[m.Amount]
	if !hasDate || !hasAmount {
		return model.Transaction{}, false
	}

	date, err := parseDate(strings.TrimSpace(dateStr), m.DateFormat)
	if err != nil {
		return model.Transaction{}, false
	}

	amount, err := parseAmount(amountStr)
	if err != nil {
		return model.Transaction{}, false
	}

	// A debit/credit indicator column overrides the raw numeric sign.
	if m.Type != "" {
		switch strings.ToUpper(strings.TrimSpace(row[m.Type])) {
		case "D":
			amount = amount.Abs().Neg()
		case "C":
			amount = amount.Abs()
		}
	}

	currency := ""
	if m.Currency != "" {
		currency = strings.TrimSpace(row[m.Currency])
	}
	if currency == "" {
		currency = m.CurrencyFixed
	}
	if currency == "" {
		currency = defaultCurrency
	}

	note := ""
	if m.Note != "" {
		note = strings.TrimSpace(row[m.Note])
	}
	if note == "" {
		note = assembleNote(row)
	}

	account := ""
	if m.Account != "" {
		account = strings.TrimSpace(row[m.Account])
	}
	if account == "" {
		account = m.AccountFixed
	}

	merchant := ""
	if m.Merchant != "" {
		merchant = strings.TrimSpace(row[m.Merchant])
	}
	category := ""
	if m.Category != "" {
		category = strings.TrimSpace(row[m.Category])
	}

	datePrefix := date.Format("20060102")
	raw := make(map[string]string, len(row))
	for k, v := range row {
		raw[k] = v
	}

	return model.Transaction{
		ID:       id.New(datePrefix, ordinal),
		Date:     date.Format(model.DateFormat),
		Amount:   amount,
		Currency: currency,
		Merchant: merchant,
		Category: category,
		Note:     note,
		Account:  account,
		Raw:      raw,
	}, true
}

// parseDate parses strictly against the mapping's format when set, with no
// fallback; otherwise it attempts ISO-like layouts in order.
func parseDate(s, format string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	if format != "" {
		return time.Parse(schema.Layout(format), s)
	}
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// parseAmount strips thousands separators and parses a signed decimal.
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	return decimal.NewFromString(s)
}

// assembleNote joins any non-empty secondary descriptive columns.
func assembleNote(row map[string]string) string {
	var parts []string
	for _, col := range fallbackNoteColumns {
		if v := strings.TrimSpace(row[col]); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, " ")
}
