package services

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"budgetpro/internal/core"
)

type TransactionInput struct {
	Category        core.CategoryRef
	PaymentMethodID string
	Name            string
	Amount          decimal.Decimal
	// Date defaults to now when zero.
	Date time.Time
}

func checkRefs(st core.Store, in TransactionInput) error {
	if in.Category.IsZero() {
		return invalid(core.ErrEmptyCategory)
	}
	if _, ok := st.ProjectOf(in.Category); !ok {
		return notFound("category", in.Category.String())
	}
	if in.PaymentMethodID != "" {
		if _, ok := st.PaymentMethod(in.PaymentMethodID); !ok {
			return notFound("payment method", in.PaymentMethodID)
		}
	}
	return nil
}

// AddTransaction books a transaction. A blank name becomes the local date.
func (s *BudgetService) AddTransaction(ctx context.Context, in TransactionInput) (core.Transaction, error) {
	now := s.now()
	tx := core.Transaction{
		ID:              s.ids.NewID(),
		Category:        in.Category,
		PaymentMethodID: in.PaymentMethodID,
		Name:            strings.TrimSpace(in.Name),
		Amount:          in.Amount,
		Date:            in.Date,
	}
	if tx.Date.IsZero() {
		tx.Date = now
	}
	if tx.Name == "" {
		tx.Name = core.DefaultTransactionName(now)
	}
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, invalid(err)
	}
	_, err := s.commit(ctx, "add_transaction", func(st core.Store) (core.Store, error) {
		if err := checkRefs(st, in); err != nil {
			return st, err
		}
		out := st.Clone()
		out.Transactions = append(out.Transactions, tx)
		return out, nil
	})
	if err != nil {
		return core.Transaction{}, err
	}
	return tx, nil
}

// UpdateTransaction replaces the editable fields of a transaction. The date
// only changes when in.Date is set.
func (s *BudgetService) UpdateTransaction(ctx context.Context, id string, in TransactionInput) (core.Transaction, error) {
	var updated core.Transaction
	_, err := s.commit(ctx, "update_transaction", func(st core.Store) (core.Store, error) {
		if _, ok := st.Transaction(id); !ok {
			return st, notFound("transaction", id)
		}
		if err := checkRefs(st, in); err != nil {
			return st, err
		}
		out := st.Clone()
		for i, t := range out.Transactions {
			if t.ID != id {
				continue
			}
			t.Category = in.Category
			t.PaymentMethodID = in.PaymentMethodID
			if name := strings.TrimSpace(in.Name); name != "" {
				t.Name = name
			}
			t.Amount = in.Amount
			if !in.Date.IsZero() {
				t.Date = in.Date
			}
			if err := t.Validate(); err != nil {
				return st, invalid(err)
			}
			out.Transactions[i] = t
			updated = t
		}
		return out, nil
	})
	return updated, err
}

func (s *BudgetService) DeleteTransaction(ctx context.Context, id string) error {
	_, err := s.commit(ctx, "delete_transaction", func(st core.Store) (core.Store, error) {
		if _, ok := st.Transaction(id); !ok {
			return st, notFound("transaction", id)
		}
		out := st.Clone()
		out.Transactions = out.Transactions[:0]
		for _, t := range st.Transactions {
			if t.ID != id {
				out.Transactions = append(out.Transactions, t)
			}
		}
		return out, nil
	})
	return err
}
