package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/branchbook-dev/branchbook/internal/model"
)

const txColumns = "id, account_id, COALESCE(parent_id, 0), date, kind, category, role, amount, currency, payment_method, description"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (model.Transaction, error) {
	var t model.Transaction
	var date, amount string
	err := row.Scan(&t.ID, &t.AccountID, &t.ParentID, &date, &t.Kind, &t.Category, &t.Role, &amount, &t.Currency, &t.PaymentMethod, &t.Description)
	if err != nil {
		return model.Transaction{}, err
	}

	t.Date, err = time.Parse(DateFormat, date)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing date %q: %w", date, err)
	}

	t.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing amount %q: %w", amount, err)
	}
	return t, nil
}

func collectTransactions(rows *sql.Rows) ([]model.Transaction, error) {
	defer rows.Close()

	var txns []model.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}
		txns = append(txns, t)
	}
	return txns, rows.Err()
}

// Transaction returns a single row by id.
func (s *Store) Transaction(id int64) (model.Transaction, error) {
	row := s.db.QueryRow("SELECT "+txColumns+" FROM transactions WHERE id = ?", id)
	t, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Transaction{}, ErrNotFound
	}
	if err != nil {
		return model.Transaction{}, fmt.Errorf("querying transaction %d: %w", id, err)
	}
	return t, nil
}

// Children returns the derived legs of a chain, oldest first.
func (s *Store) Children(parentID int64) ([]model.Transaction, error) {
	rows, err := s.db.Query("SELECT "+txColumns+" FROM transactions WHERE parent_id = ? ORDER BY id", parentID)
	if err != nil {
		return nil, fmt.Errorf("querying children of %d: %w", parentID, err)
	}
	return collectTransactions(rows)
}

// ByAccount returns every transaction on an account, newest date first.
func (s *Store) ByAccount(accountID int64) ([]model.Transaction, error) {
	rows, err := s.db.Query("SELECT "+txColumns+" FROM transactions WHERE account_id = ? ORDER BY date DESC, id DESC", accountID)
	if err != nil {
		return nil, fmt.Errorf("querying transactions for account %d: %w", accountID, err)
	}
	return collectTransactions(rows)
}

// InsertTransaction inserts a row and fills in its assigned id.
func (t *Tx) InsertTransaction(txn *model.Transaction) error {
	var parent any
	if txn.ParentID != 0 {
		parent = txn.ParentID
	}

	res, err := t.tx.Exec(
		"INSERT INTO transactions (account_id, parent_id, date, kind, category, role, amount, currency, payment_method, description) VALUES (?,?,?,?,?,?,?,?,?,?)",
		txn.AccountID, parent, txn.Date.Format(DateFormat), string(txn.Kind), txn.Category, string(txn.Role), txn.Amount.String(), string(txn.Currency), string(txn.PaymentMethod), txn.Description,
	)
	if err != nil {
		return fmt.Errorf("inserting transaction: %w", err)
	}

	txn.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("inserting transaction: %w", err)
	}
	return nil
}

// UpdateTransaction overwrites a row in place. The id, account and
// parent linkage never change; that is what keeps chain edits stable.
func (t *Tx) UpdateTransaction(txn model.Transaction) error {
	_, err := t.tx.Exec(
		"UPDATE transactions SET date = ?, kind = ?, category = ?, role = ?, amount = ?, currency = ?, payment_method = ?, description = ? WHERE id = ?",
		txn.Date.Format(DateFormat), string(txn.Kind), txn.Category, string(txn.Role), txn.Amount.String(), string(txn.Currency), string(txn.PaymentMethod), txn.Description, txn.ID,
	)
	if err != nil {
		return fmt.Errorf("updating transaction %d: %w", txn.ID, err)
	}
	return nil
}

// DeleteTransaction removes a single row.
func (t *Tx) DeleteTransaction(id int64) error {
	_, err := t.tx.Exec("DELETE FROM transactions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting transaction %d: %w", id, err)
	}
	return nil
}

// DeleteByParent removes every leg of a chain and reports how many
// rows disappeared.
func (t *Tx) DeleteByParent(parentID int64) (int64, error) {
	res, err := t.tx.Exec("DELETE FROM transactions WHERE parent_id = ?", parentID)
	if err != nil {
		return 0, fmt.Errorf("deleting children of %d: %w", parentID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("deleting children of %d: %w", parentID, err)
	}
	return n, nil
}

// FindLeg locates at most one unparented row that exactly matches the
// given values. Amounts are compared numerically, not textually, so
// "165" and "165.00" match. Used only by the legacy delete
// reconciliation path.
func (t *Tx) FindLeg(accountID int64, date time.Time, kind model.Kind, category string, amount decimal.Decimal, currency model.Currency, method model.PaymentMethod) (int64, error) {
	rows, err := t.tx.Query(
		"SELECT id, amount FROM transactions WHERE parent_id IS NULL AND account_id = ? AND date = ? AND kind = ? AND category = ? AND currency = ? AND payment_method = ? ORDER BY id",
		accountID, date.Format(DateFormat), string(kind), category, string(currency), string(method),
	)
	if err != nil {
		return 0, fmt.Errorf("searching legs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		var raw string
		if err := rows.Scan(&id, &raw); err != nil {
			return 0, fmt.Errorf("scanning leg candidate: %w", err)
		}
		got, err := decimal.NewFromString(raw)
		if err != nil {
			return 0, fmt.Errorf("parsing amount %q: %w", raw, err)
		}
		if got.Equal(amount) {
			return id, rows.Err()
		}
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}
	return 0, ErrNotFound
}
