package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"finledger/internal/config"
	"finledger/internal/database"
	apperrors "finledger/internal/errors"
	"finledger/internal/logger"
	"finledger/internal/models"
	"finledger/internal/pagination"
	"finledger/internal/persistence"
	"finledger/internal/services"
)

func main() {
	logger.Init(os.Getenv("FINLEDGER_ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	goalLimit, err := decimal.NewFromString(cfg.GoalLimit)
	if err != nil {
		return fmt.Errorf("invalid FINLEDGER_GOAL_LIMIT: %w", err)
	}
	mode, err := models.ParseEnforcementMode(cfg.EnforcementMode)
	if err != nil {
		return fmt.Errorf("invalid FINLEDGER_ENFORCEMENT: %w", err)
	}

	gateway := persistence.NewSQLiteGateway(dbManager.DB())
	budgets := services.NewBudgetService(gateway, services.BudgetPolicy{GoalLimit: goalLimit, Mode: mode})
	store := services.NewTransactionStore()
	users := services.NewUserService(dbManager.DB(), cfg)

	if err := users.EnsureDefaultAdmin(); err != nil {
		return fmt.Errorf("failed to seed admin account: %w", err)
	}

	ctx := context.Background()
	if snap, err := gateway.LoadStore(ctx); err == nil {
		if err := store.Restore(snap); err != nil {
			return fmt.Errorf("failed to restore transaction store: %w", err)
		}
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("failed to load transaction store: %w", err)
	}

	log.Infof("finledger ready (enforcement=%s, goal limit=%s)", mode, goalLimit)

	sess := &session{
		budgets: budgets,
		store:   store,
		users:   users,
		gateway: gateway,
		out:     os.Stdout,
	}
	return sess.loop(ctx, os.Stdin)
}

// session drives the interactive loop. All engine mutations happen on this
// single goroutine.
type session struct {
	budgets services.BudgetServicer
	store   services.TransactionStorer
	users   services.UserServicer
	gateway persistence.Gateway
	out     io.Writer

	user *models.User
}

func (s *session) loop(ctx context.Context, in io.Reader) error {
	fmt.Fprintln(s.out, "finledger: type 'help' for commands")
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(s.out, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "quit" || fields[0] == "exit" {
			return nil
		}
		if err := s.dispatch(ctx, fields[0], fields[1:]); err != nil {
			fmt.Fprintf(s.out, "error: %v\n", err)
		}
	}
}

func (s *session) dispatch(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "help":
		s.printHelp()
		return nil
	case "register":
		return s.register(args)
	case "login":
		return s.login(ctx, args)
	}

	if s.user == nil {
		return fmt.Errorf("log in first (login <username> <password>)")
	}

	switch cmd {
	case "income":
		return s.record(args, models.KindIncome)
	case "expense":
		return s.record(args, models.KindExpense)
	case "summary":
		return s.summary(args)
	case "balance":
		return s.balance()
	case "categories":
		return s.categories()
	case "transactions":
		return s.transactions(args)
	case "exceeding":
		return s.exceeding(args)
	case "reset":
		return s.reset(args)
	case "save":
		return s.save(ctx)
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (s *session) printHelp() {
	fmt.Fprint(s.out, `commands:
  register <username> <email> <password> [budget-goal]
  login <username> <password>
  income <month> <category> <amount> [description...]
  expense <month> <category> <amount> [description...]
  summary <month>
  balance
  categories
  transactions [page]
  exceeding <ceiling>
  reset <new-goal-limit>
  save
  quit
`)
}

func (s *session) register(args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("usage: register <username> <email> <password> [budget-goal]")
	}
	goal := decimal.Zero
	if len(args) > 3 {
		var err error
		if goal, err = decimal.NewFromString(args[3]); err != nil {
			return apperrors.ErrInvalidAmount
		}
	}
	user, err := s.users.Register(services.RegisterInput{
		Username:   args[0],
		Email:      args[1],
		Password:   args[2],
		BudgetGoal: goal,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "registered %s\n", user.Username)
	return nil
}

func (s *session) login(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: login <username> <password>")
	}
	user, _, err := s.users.Authenticate(args[0], args[1])
	if err != nil {
		return err
	}
	s.user = user

	// First login creates the budget; later logins reload the saved one.
	if _, err := s.budgets.Load(ctx, user.ID); err != nil {
		if !errors.Is(err, apperrors.ErrBudgetNotFound) {
			return err
		}
		if _, err := s.budgets.Create(user.ID, user.Username+"'s budget", decimal.Zero); err != nil {
			return err
		}
	}
	fmt.Fprintf(s.out, "welcome, %s\n", user.Username)
	return nil
}

// record validates raw input, constructs the transaction, applies it to the
// budget, and mirrors it into the store for reporting. A budget rejection
// aborts before anything is recorded.
func (s *session) record(args []string, kind models.TransactionKind) error {
	if len(args) < 3 {
		return fmt.Errorf("usage: %s <month> <category> <amount> [description...]", kind)
	}
	month, err := strconv.Atoi(args[0])
	if err != nil {
		return apperrors.ErrInvalidMonth
	}
	category := args[1]
	amount, err := decimal.NewFromString(args[2])
	if err != nil {
		return apperrors.ErrInvalidAmount
	}

	tx, err := services.BuildEntry(services.EntryInput{
		Month:       month,
		Kind:        kind,
		Category:    category,
		Amount:      amount,
		Description: strings.Join(args[3:], " "),
	})
	if err != nil {
		return err
	}

	if kind == models.KindIncome {
		err = s.budgets.AddIncome(s.user.ID, month, category, amount)
	} else {
		err = s.budgets.AddExpense(s.user.ID, month, category, amount)
	}
	if err != nil {
		return err
	}

	if err := s.store.Record(s.user.ID, tx); err != nil {
		return err
	}

	budget, err := s.budgets.Get(s.user.ID)
	if err != nil {
		return err
	}
	if budget.Exceeded() {
		fmt.Fprintln(s.out, "warning: monthly expenses exceed the goal limit")
	}
	fmt.Fprintf(s.out, "recorded %s %s in %s (id %s)\n", kind, amount, category, tx.ID())
	return nil
}

func (s *session) summary(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: summary <month>")
	}
	month, err := strconv.Atoi(args[0])
	if err != nil {
		return apperrors.ErrInvalidMonth
	}
	sum, err := s.budgets.MonthlySummary(s.user.ID, month)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "month %d: income %s, expenses %s, balance %s\n",
		sum.Month, sum.Income, sum.Expenses, sum.Balance)
	return nil
}

func (s *session) balance() error {
	bal, err := s.budgets.Balance(s.user.ID)
	if err != nil {
		return err
	}
	income := s.store.TotalsByKind(s.user.ID, models.KindIncome)
	expenses := s.store.TotalsByKind(s.user.ID, models.KindExpense)
	fmt.Fprintf(s.out, "balance %s (recorded income %s, expenses %s)\n", bal, income, expenses)
	return nil
}

func (s *session) categories() error {
	totals := s.store.TotalsByCategory(s.user.ID)
	names := make([]string, 0, len(totals))
	for name := range totals {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(s.out, "%s: %s\n", name, totals[name])
	}
	return nil
}

func (s *session) transactions(args []string) error {
	page := pagination.PageRequest{}
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return fmt.Errorf("usage: transactions [page]")
		}
		page.Page = n
	}
	resp := s.store.Transactions(s.user.ID, page)
	for _, tx := range resp.Data {
		fmt.Fprintf(s.out, "%s %s %s %s %s\n",
			tx.OccurredOn().Format("2006-01-02"), tx.Kind(), tx.Category(), tx.Amount(), tx.Description())
	}
	fmt.Fprintf(s.out, "page %d/%d (%d total)\n", resp.Page, resp.TotalPages, resp.TotalItems)
	return nil
}

func (s *session) exceeding(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: exceeding <ceiling>")
	}
	ceiling, err := decimal.NewFromString(args[0])
	if err != nil {
		return apperrors.ErrInvalidAmount
	}
	for _, tx := range s.store.Exceeding(s.user.ID, ceiling) {
		fmt.Fprintf(s.out, "%s %s %s\n", tx.OccurredOn().Format("2006-01-02"), tx.Category(), tx.Amount())
	}
	return nil
}

func (s *session) reset(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: reset <new-goal-limit>")
	}
	limit, err := decimal.NewFromString(args[0])
	if err != nil {
		return apperrors.ErrInvalidAmount
	}
	if err := s.budgets.Reset(s.user.ID, limit); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "budget reset, new goal limit %s\n", limit)
	return nil
}

// save persists the budget and the transaction store. No further edits run
// until it returns, which keeps the snapshot consistent.
func (s *session) save(ctx context.Context) error {
	if err := s.budgets.Save(ctx, s.user.ID); err != nil {
		return err
	}
	if err := s.gateway.SaveStore(ctx, s.store.Snapshot()); err != nil {
		return err
	}
	fmt.Fprintln(s.out, "saved")
	return nil
}
