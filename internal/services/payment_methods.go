package services

import (
	"context"
	"strings"

	"budgetpro/internal/core"
)

type PaymentMethodInput struct {
	Name         string
	Emoji        string
	StatementDay int
	CycleConfig  *core.PaymentCycleConfig
}

func (in PaymentMethodInput) method(id string) (core.PaymentMethod, error) {
	m := core.PaymentMethod{
		ID:           id,
		Name:         strings.TrimSpace(in.Name),
		Emoji:        in.Emoji,
		StatementDay: in.StatementDay,
	}
	if in.CycleConfig != nil {
		cfg := *in.CycleConfig
		m.CycleConfig = &cfg
	}
	if err := m.Validate(); err != nil {
		return core.PaymentMethod{}, invalid(err)
	}
	return m, nil
}

func (s *BudgetService) AddPaymentMethod(ctx context.Context, in PaymentMethodInput) (core.PaymentMethod, error) {
	m, err := in.method(s.ids.NewID())
	if err != nil {
		return core.PaymentMethod{}, err
	}
	_, err = s.commit(ctx, "add_payment_method", func(st core.Store) (core.Store, error) {
		out := st.Clone()
		out.PaymentMethods = append(out.PaymentMethods, m)
		return out, nil
	})
	if err != nil {
		return core.PaymentMethod{}, err
	}
	return m, nil
}

// UpdatePaymentMethod replaces a method's fields. Billing rule changes apply
// retroactively to every transaction paid with it.
func (s *BudgetService) UpdatePaymentMethod(ctx context.Context, id string, in PaymentMethodInput) (core.PaymentMethod, error) {
	m, err := in.method(id)
	if err != nil {
		return core.PaymentMethod{}, err
	}
	_, err = s.commit(ctx, "update_payment_method", func(st core.Store) (core.Store, error) {
		if _, ok := st.PaymentMethod(id); !ok {
			return st, notFound("payment method", id)
		}
		out := st.Clone()
		for i := range out.PaymentMethods {
			if out.PaymentMethods[i].ID == id {
				out.PaymentMethods[i] = m
			}
		}
		return out, nil
	})
	if err != nil {
		return core.PaymentMethod{}, err
	}
	return m, nil
}

// DeletePaymentMethod removes a method and detaches it from its transactions.
// Cash cannot be deleted.
func (s *BudgetService) DeletePaymentMethod(ctx context.Context, id string) error {
	if id == core.CashMethodID {
		return ErrProtectedMethod
	}
	_, err := s.commit(ctx, "delete_payment_method", func(st core.Store) (core.Store, error) {
		if _, ok := st.PaymentMethod(id); !ok {
			return st, notFound("payment method", id)
		}
		out := st.Clone()
		out.PaymentMethods = out.PaymentMethods[:0]
		for _, m := range st.PaymentMethods {
			if m.ID != id {
				out.PaymentMethods = append(out.PaymentMethods, m)
			}
		}
		for i := range out.Transactions {
			if out.Transactions[i].PaymentMethodID == id {
				out.Transactions[i].PaymentMethodID = ""
			}
		}
		return out, nil
	})
	return err
}
