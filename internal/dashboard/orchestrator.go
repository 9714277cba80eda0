// Package dashboard coordinates the client-side state of the dashboard:
// loading, the aggregate views, and the three form buffers.
package dashboard

import (
	"context"
	"io"
	"sync"

	"github.com/account-manager/backend/internal/client"
	"github.com/account-manager/backend/internal/importer"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"
)

// API is the part of the backend API the orchestrator consumes.
type API interface {
	Summary(ctx context.Context) (client.Summary, error)
	Accounts(ctx context.Context) ([]client.Account, error)
	Cards(ctx context.Context) ([]client.Card, error)
	DueDates(ctx context.Context) ([]client.DueDate, error)
	CreateAccount(ctx context.Context, create client.AccountCreate) (client.Account, error)
	CreateCard(ctx context.Context, create client.CardCreate) (client.Card, error)
	ImportCSV(ctx context.Context, file io.Reader, fileName, importType string) error
	CreateRewardRule(ctx context.Context, create client.RewardRuleCreate) error
	BestCard(ctx context.Context, category string, amount decimal.Decimal) (client.Recommendation, error)
}

// Phase is the loading state of the dashboard.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseLoading Phase = "loading"
	PhaseLoaded  Phase = "loaded"
	PhaseError   Phase = "error"
)

// loadErrorMessage replaces the specific failure reason of a reload. A
// failed reload keeps the previously loaded data visible.
const loadErrorMessage = "Unable to load data. Ensure the API is reachable."

// Snapshot is one consistent view of the dashboard state.
type Snapshot struct {
	Phase          Phase
	Error          string
	Summary        client.Summary
	Accounts       []client.Account
	Cards          []client.Card
	DueDates       []client.DueDate
	Recommendation *client.Recommendation
}

// AccountForm is the buffer for the new account form.
type AccountForm struct {
	Name           string
	AccountType    string
	Currency       string
	CurrentBalance decimal.Decimal
}

func defaultAccountForm() AccountForm {
	return AccountForm{
		AccountType: "checking",
		Currency:    "USD",
	}
}

// CardForm is the buffer for the new card form.
type CardForm struct {
	AccountID     uuid.UUID
	IssuerName    string
	APR           decimal.Decimal
	StatementDay  int
	DueDay        int
	MinPaymentDue decimal.Decimal
}

func defaultCardForm() CardForm {
	return CardForm{
		StatementDay: 1,
		DueDay:       20,
	}
}

// RewardForm is the buffer for the reward rule form and its
// recommendation query.
type RewardForm struct {
	AccountID  uuid.UUID
	Category   string
	Multiplier decimal.Decimal
	Amount     decimal.Decimal
}

func defaultRewardForm() RewardForm {
	return RewardForm{
		Category:   "travel",
		Multiplier: decimal.NewFromInt(2),
		Amount:     decimal.NewFromInt(100),
	}
}

// Orchestrator owns all client-side dashboard state. All methods are safe
// for concurrent use.
type Orchestrator struct {
	api API

	mu sync.Mutex

	// generation identifies the newest reload. Completions of older
	// reloads are discarded instead of racing with newer ones.
	generation uint64

	phase          Phase
	errMessage     string
	summary        client.Summary
	accounts       []client.Account
	cards          []client.Card
	dueDates       []client.DueDate
	recommendation *client.Recommendation

	accountForm AccountForm
	cardForm    CardForm
	rewardForm  RewardForm
}

// New returns an orchestrator in the idle phase with all form buffers at
// their defaults. Call Reload to load data.
func New(api API) *Orchestrator {
	return &Orchestrator{
		api:         api,
		phase:       PhaseIdle,
		accountForm: defaultAccountForm(),
		cardForm:    defaultCardForm(),
		rewardForm:  defaultRewardForm(),
	}
}

// Reload fetches the summary, accounts, cards and due dates concurrently
// and applies the results as one atomic update.
//
// If any of the four reads fails, nothing is applied and the previously
// loaded data stays in place. A reload that is superseded by a newer one
// before finishing is discarded entirely.
func (o *Orchestrator) Reload(ctx context.Context) error {
	o.mu.Lock()
	o.generation++
	generation := o.generation
	o.phase = PhaseLoading
	o.errMessage = ""
	o.mu.Unlock()

	var (
		summary  client.Summary
		accounts []client.Account
		cards    []client.Card
		dueDates []client.DueDate
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		summary, err = o.api.Summary(ctx)
		return
	})
	g.Go(func() (err error) {
		accounts, err = o.api.Accounts(ctx)
		return
	})
	g.Go(func() (err error) {
		cards, err = o.api.Cards(ctx)
		return
	})
	g.Go(func() (err error) {
		dueDates, err = o.api.DueDates(ctx)
		return
	})
	err := g.Wait()

	o.mu.Lock()
	defer o.mu.Unlock()

	if generation != o.generation {
		return nil
	}

	if err != nil {
		o.phase = PhaseError
		o.errMessage = loadErrorMessage
		return err
	}

	o.summary = summary
	o.accounts = accounts
	o.cards = cards
	o.dueDates = dueDates
	o.phase = PhaseLoaded

	return nil
}

// Snapshot returns a consistent copy of the current dashboard state.
func (o *Orchestrator) Snapshot() Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()

	return Snapshot{
		Phase:          o.phase,
		Error:          o.errMessage,
		Summary:        o.summary,
		Accounts:       slices.Clone(o.accounts),
		Cards:          slices.Clone(o.cards),
		DueDates:       slices.Clone(o.dueDates),
		Recommendation: o.recommendation,
	}
}

// CreditCardAccounts returns the accounts that cards and reward rules can
// be attached to. It is recomputed from the current account list.
func (o *Orchestrator) CreditCardAccounts() []client.Account {
	o.mu.Lock()
	defer o.mu.Unlock()

	eligible := make([]client.Account, 0)
	for _, account := range o.accounts {
		if account.AccountType == "credit_card" {
			eligible = append(eligible, account)
		}
	}

	return eligible
}

func (o *Orchestrator) AccountForm() AccountForm {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.accountForm
}

func (o *Orchestrator) SetAccountForm(form AccountForm) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.accountForm = form
}

func (o *Orchestrator) CardForm() CardForm {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.cardForm
}

func (o *Orchestrator) SetCardForm(form CardForm) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.cardForm = form
}

func (o *Orchestrator) RewardForm() RewardForm {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.rewardForm
}

func (o *Orchestrator) SetRewardForm(form RewardForm) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.rewardForm = form
}

// failWrite records a failed write as the banner message and returns the
// error to the caller. The next successful reload clears the banner.
func (o *Orchestrator) failWrite(err error) error {
	o.mu.Lock()
	o.errMessage = err.Error()
	o.mu.Unlock()
	return err
}

// SubmitAccount creates an account from the account form. On success the
// form resets to its defaults and one full reload is issued.
func (o *Orchestrator) SubmitAccount(ctx context.Context) error {
	o.mu.Lock()
	form := o.accountForm
	o.mu.Unlock()

	_, err := o.api.CreateAccount(ctx, client.AccountCreate{
		Name:           form.Name,
		AccountType:    form.AccountType,
		Currency:       form.Currency,
		CurrentBalance: form.CurrentBalance,
	})
	if err != nil {
		return o.failWrite(err)
	}

	o.mu.Lock()
	o.accountForm = defaultAccountForm()
	o.mu.Unlock()

	return o.Reload(ctx)
}

// SubmitCard creates a card from the card form. On success only the
// issuer name and the APR reset, the other fields keep their values, and
// one full reload is issued.
func (o *Orchestrator) SubmitCard(ctx context.Context) error {
	o.mu.Lock()
	form := o.cardForm
	o.mu.Unlock()

	create := client.CardCreate{
		AccountID:     form.AccountID,
		IssuerName:    form.IssuerName,
		StatementDay:  form.StatementDay,
		DueDay:        form.DueDay,
		MinPaymentDue: form.MinPaymentDue,
	}
	if !form.APR.IsZero() {
		apr := form.APR
		create.APR = &apr
	}

	_, err := o.api.CreateCard(ctx, create)
	if err != nil {
		return o.failWrite(err)
	}

	o.mu.Lock()
	o.cardForm.IssuerName = ""
	o.cardForm.APR = decimal.Zero
	o.mu.Unlock()

	return o.Reload(ctx)
}

// SubmitRewardRule creates a reward rule from the reward form and then
// fetches exactly one recommendation for the submitted category and
// amount. It never triggers a full reload: creating a rule does not
// invalidate the aggregate views.
func (o *Orchestrator) SubmitRewardRule(ctx context.Context) error {
	o.mu.Lock()
	form := o.rewardForm
	o.mu.Unlock()

	err := o.api.CreateRewardRule(ctx, client.RewardRuleCreate{
		AccountID:  form.AccountID,
		Category:   form.Category,
		Multiplier: form.Multiplier,
	})
	if err != nil {
		return o.failWrite(err)
	}

	recommendation, err := o.api.BestCard(ctx, form.Category, form.Amount)
	if err != nil {
		return o.failWrite(err)
	}

	o.mu.Lock()
	o.recommendation = &recommendation
	o.mu.Unlock()

	return nil
}

// ImportCSV uploads a CSV file and issues one full reload. Without a file
// or with an unrecognized import type, nothing happens, not even a
// network call.
func (o *Orchestrator) ImportCSV(ctx context.Context, file io.Reader, fileName, importType string) error {
	if file == nil || !slices.Contains(importer.Types, importType) {
		return nil
	}

	err := o.api.ImportCSV(ctx, file, fileName, importType)
	if err != nil {
		return o.failWrite(err)
	}

	return o.Reload(ctx)
}
