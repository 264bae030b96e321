// Package export writes query results as CSV. It consumes only the
// report query output; formatting beyond this file is not the engine's
// concern.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/branchbook-dev/branchbook/internal/model"
	"github.com/branchbook-dev/branchbook/internal/store"
)

// Header is the CSV header for exported transactions.
const Header = "id,date,kind,category,amount,currency,payment_method,description"

const (
	numFields = 8
	colID     = 0
	colDate   = 1
	colKind   = 2
	colCat    = 3
	colAmount = 4
	colCur    = 5
	colMethod = 6
	colDesc   = 7
)

// WriteTransactions writes rows to w as CSV, including the header.
func WriteTransactions(w io.Writer, rows []model.Transaction) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, t := range rows {
		if err := cw.Write(MarshalTransaction(t)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalTransaction converts a Transaction to a CSV row.
func MarshalTransaction(t model.Transaction) []string {
	row := make([]string, numFields)
	row[colID] = strconv.FormatInt(t.ID, 10)
	row[colDate] = t.Date.Format(store.DateFormat)
	row[colKind] = string(t.Kind)
	row[colCat] = t.Category
	row[colAmount] = FormatAmount(t.Amount, t.Currency)
	row[colCur] = string(t.Currency)
	row[colMethod] = string(t.PaymentMethod)
	row[colDesc] = t.Description
	return row
}

// FormatAmount renders an amount at its currency's precision.
func FormatAmount(amount decimal.Decimal, currency model.Currency) string {
	if currency == model.CurrencyLBP {
		return amount.StringFixed(0)
	}
	return amount.StringFixed(2)
}
