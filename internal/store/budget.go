package store

import (
	"context"
	"slices"

	apperrors "eventplanner/internal/errors"
	"eventplanner/internal/gateway"
	"eventplanner/internal/models"
	"eventplanner/internal/validator"
)

// BudgetState is the budget slice: the budget of the current event, if any,
// and its expenses.
type BudgetState struct {
	Budget   *models.Budget
	Expenses []models.Expense
	Loading  bool
	Err      string
}

type (
	// BudgetLoaded replaces the budget and its expenses. A nil Budget means
	// the event has none.
	BudgetLoaded struct {
		Budget   *models.Budget
		Expenses []models.Expense
	}
	// BudgetRecalculated carries totals just written back after a full
	// re-sum, with the expenses that were summed.
	BudgetRecalculated struct {
		Budget   models.Budget
		Expenses []models.Expense
	}
	// ExpenseAdded appends a created expense.
	ExpenseAdded struct{ Expense models.Expense }
	// ExpensePatched merges a patch into the expense with ID.
	ExpensePatched struct {
		ID       string
		BudgetID string
		Patch    ExpensePatch
	}
	// ExpenseRemoved drops the expense with ID.
	ExpenseRemoved struct{ ID, BudgetID string }
	// BudgetCleared forgets the budget and its expenses.
	BudgetCleared struct{}
)

func (BudgetLoaded) action()       {}
func (BudgetRecalculated) action() {}
func (ExpenseAdded) action()       {}
func (ExpensePatched) action()     {}
func (ExpenseRemoved) action()     {}
func (BudgetCleared) action()      {}

// ReduceBudget applies a to s. Expense actions and recalculations for any
// budget other than the loaded one leave s unchanged.
func ReduceBudget(s BudgetState, a Action) BudgetState {
	switch a := a.(type) {
	case LoadStarted:
		s.Loading = true
	case Failed:
		s.Err = a.Err
		s.Loading = false
	case BudgetLoaded:
		s.Budget = cloneBudget(a.Budget)
		s.Expenses = slices.Clone(a.Expenses)
		s.Loading = false
		s.Err = ""
	case BudgetRecalculated:
		if s.Budget != nil && s.Budget.ID != a.Budget.ID {
			return s
		}
		s.Budget = cloneBudget(&a.Budget)
		s.Expenses = slices.Clone(a.Expenses)
	case ExpenseAdded:
		if !s.holds(a.Expense.BudgetID) {
			return s
		}
		s.Expenses = append(slices.Clip(s.Expenses), a.Expense)
	case ExpensePatched:
		i := slices.IndexFunc(s.Expenses, func(x models.Expense) bool { return x.ID == a.ID })
		if i < 0 || !s.holds(a.BudgetID) {
			return s
		}
		s.Expenses = slices.Clone(s.Expenses)
		s.Expenses[i] = a.Patch.Apply(s.Expenses[i])
	case ExpenseRemoved:
		if !s.holds(a.BudgetID) {
			return s
		}
		s.Expenses = slices.DeleteFunc(slices.Clone(s.Expenses), func(x models.Expense) bool { return x.ID == a.ID })
	case BudgetCleared:
		s.Budget = nil
		s.Expenses = nil
	}
	return s
}

func (s BudgetState) holds(budgetID string) bool {
	return s.Budget != nil && s.Budget.ID == budgetID
}

func cloneBudget(b *models.Budget) *models.Budget {
	if b == nil {
		return nil
	}
	c := *b
	return &c
}

// BudgetExceeded reports whether more has been spent than budgeted.
func BudgetExceeded(s BudgetState) bool {
	return s.Budget != nil && s.Budget.TotalSpent > s.Budget.TotalBudget
}

// SumExpenses adds up amounts in list order. paid filters by paid status
// when non-nil.
func SumExpenses(expenses []models.Expense, paid *bool) float64 {
	total := 0.0
	for _, x := range expenses {
		if paid != nil && x.PaidStatus != *paid {
			continue
		}
		total += x.Amount
	}
	return total
}

// Budgets manages the budget and expenses of the current event.
type Budgets struct {
	*slice[BudgetState]
	gw gateway.Gateway
}

func newBudgets(gw gateway.Gateway, emit func(Change)) *Budgets {
	return &Budgets{
		slice: newSlice(SliceBudget, BudgetState{}, ReduceBudget, emit),
		gw:    gw,
	}
}

// State returns a copy of the slice state. Changing it does not affect
// the store.
func (b *Budgets) State() BudgetState {
	s := b.snapshot()
	s.Budget = cloneBudget(s.Budget)
	s.Expenses = slices.Clone(s.Expenses)
	return s
}

// Exceeded reports whether total spent is strictly above the total budget.
func (b *Budgets) Exceeded() bool { return BudgetExceeded(b.snapshot()) }

// PaidTotal sums the expenses marked paid.
func (b *Budgets) PaidTotal() float64 {
	paid := true
	return SumExpenses(b.snapshot().Expenses, &paid)
}

// UnpaidTotal sums the expenses not yet paid.
func (b *Budgets) UnpaidTotal() float64 {
	paid := false
	return SumExpenses(b.snapshot().Expenses, &paid)
}

// Load fetches the budget of eventID and, if there is one, its expenses.
func (b *Budgets) Load(ctx context.Context, eventID string) Result {
	b.dispatch(LoadStarted{})

	budget, err := b.eventBudget(ctx, eventID)
	if err != nil {
		return b.fail("load budget", err)
	}
	if budget == nil {
		b.dispatch(BudgetLoaded{})
		return succeed("")
	}

	expenses, err := b.budgetExpenses(ctx, budget.ID)
	if err != nil {
		return b.fail("load expenses", err)
	}

	b.dispatch(BudgetLoaded{Budget: budget, Expenses: expenses})
	return succeed(budget.ID)
}

// SetBudget sets the total budget of an event. An existing budget is
// updated in place and its totals recalculated; otherwise a new budget is
// created with nothing spent. The existence check and the create are
// separate calls, so concurrent first-time calls can create two budgets.
func (b *Budgets) SetBudget(ctx context.Context, total float64, eventID, userID string) Result {
	if err := validator.Struct(budgetInput{TotalBudget: total}); err != nil {
		return failure(err)
	}

	existing, err := b.eventBudget(ctx, eventID)
	if err != nil {
		return b.fail("set budget", err)
	}

	if existing != nil {
		if err := b.gw.Update(ctx, models.CollectionBudgets, existing.ID, gateway.Patch{"total_budget": total}); err != nil {
			return b.fail("set budget", err)
		}
		if res := b.Recalculate(ctx, existing.ID); !res.Success {
			return res
		}
		return succeed(existing.ID)
	}

	budget := models.Budget{
		EventID:         eventID,
		UserID:          userID,
		TotalBudget:     total,
		TotalSpent:      0,
		RemainingBudget: total,
	}
	id, err := b.gw.Create(ctx, models.CollectionBudgets, &budget)
	if err != nil {
		return b.fail("set budget", err)
	}
	budget.ID, budget.BudgetID = id, id

	b.dispatch(BudgetLoaded{Budget: &budget})
	return succeed(id)
}

// AddExpense records an expense against budgetID and recalculates the
// budget. It fails with BUDGET_NOT_SET when the budget does not exist.
func (b *Budgets) AddExpense(ctx context.Context, in ExpenseInput, budgetID, eventID, userID string) Result {
	if err := validator.Struct(in); err != nil {
		return failure(err)
	}
	if budgetID == "" {
		return b.fail("add expense", apperrors.ErrBudgetNotSet)
	}
	var budget models.Budget
	found, err := b.gw.GetByID(ctx, models.CollectionBudgets, budgetID, &budget)
	if err != nil {
		return b.fail("add expense", err)
	}
	if !found {
		return b.fail("add expense", apperrors.ErrBudgetNotSet)
	}

	expense := models.Expense{
		BudgetID:   budgetID,
		EventID:    eventID,
		UserID:     userID,
		Category:   in.Category,
		Amount:     in.Amount,
		PaidStatus: in.PaidStatus,
	}
	id, err := b.gw.Create(ctx, models.CollectionExpenses, &expense)
	if err != nil {
		return b.fail("add expense", err)
	}
	expense.ID, expense.ExpenseID = id, id
	b.dispatch(ExpenseAdded{Expense: expense})

	if res := b.Recalculate(ctx, budgetID); !res.Success {
		return res
	}
	return succeed(id)
}

// UpdateExpense sends a partial update and recalculates budgetID.
func (b *Budgets) UpdateExpense(ctx context.Context, id string, patch ExpensePatch, budgetID string) Result {
	if err := validator.Struct(patch); err != nil {
		return failure(err)
	}
	fields := patch.Fields()
	if len(fields) == 0 {
		return failure(apperrors.WithMessage(apperrors.ErrInvalidInput, "Nothing to update"))
	}

	if err := b.gw.Update(ctx, models.CollectionExpenses, id, fields); err != nil {
		return b.fail("update expense", err)
	}
	b.dispatch(ExpensePatched{ID: id, BudgetID: budgetID, Patch: patch})

	if res := b.Recalculate(ctx, budgetID); !res.Success {
		return res
	}
	return succeed(id)
}

// RemoveExpense deletes an expense and recalculates budgetID.
func (b *Budgets) RemoveExpense(ctx context.Context, id, budgetID string) Result {
	if err := b.gw.Delete(ctx, models.CollectionExpenses, id); err != nil {
		return b.fail("delete expense", err)
	}
	b.dispatch(ExpenseRemoved{ID: id, BudgetID: budgetID})

	if res := b.Recalculate(ctx, budgetID); !res.Success {
		return res
	}
	return succeed(id)
}

// Recalculate re-sums every expense currently stored for budgetID, writes
// total_spent and remaining_budget back and refreshes the slice. Totals are
// never adjusted incrementally.
func (b *Budgets) Recalculate(ctx context.Context, budgetID string) Result {
	expenses, err := b.budgetExpenses(ctx, budgetID)
	if err != nil {
		return b.fail("recalculate budget", err)
	}
	spent := SumExpenses(expenses, nil)

	var budget models.Budget
	found, err := b.gw.GetByID(ctx, models.CollectionBudgets, budgetID, &budget)
	if err != nil {
		return b.fail("recalculate budget", err)
	}
	if !found {
		return b.fail("recalculate budget", apperrors.ErrBudgetNotFound)
	}
	remaining := budget.TotalBudget - spent

	patch := gateway.Patch{"total_spent": spent, "remaining_budget": remaining}
	if err := b.gw.Update(ctx, models.CollectionBudgets, budgetID, patch); err != nil {
		return b.fail("recalculate budget", err)
	}
	budget.TotalSpent, budget.RemainingBudget = spent, remaining

	b.log.Debugw("budget recalculated", "budget_id", budgetID, "total_spent", spent, "remaining_budget", remaining)
	b.dispatch(BudgetRecalculated{Budget: budget, Expenses: expenses})
	return succeed(budgetID)
}

// Clear forgets the local budget and expenses.
func (b *Budgets) Clear() { b.dispatch(BudgetCleared{}) }

func (b *Budgets) eventBudget(ctx context.Context, eventID string) (*models.Budget, error) {
	var budgets []models.Budget
	err := b.gw.Query(ctx, models.CollectionBudgets, &budgets, []gateway.Filter{gateway.Eq("event_id", eventID)}, nil)
	if err != nil || len(budgets) == 0 {
		return nil, err
	}
	return &budgets[0], nil
}

func (b *Budgets) budgetExpenses(ctx context.Context, budgetID string) ([]models.Expense, error) {
	var expenses []models.Expense
	err := b.gw.Query(ctx, models.CollectionExpenses, &expenses, []gateway.Filter{gateway.Eq("budget_id", budgetID)}, nil)
	return expenses, err
}
