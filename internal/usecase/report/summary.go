package report

import (
	"context"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	domain "github.com/BruksfildServices01/barberpro-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barberpro-booking/internal/httperr"
	"github.com/BruksfildServices01/barberpro-booking/internal/models"
	"github.com/BruksfildServices01/barberpro-booking/internal/timezone"
)

// maxPeriodDays limita o intervalo de um relatório.
const maxPeriodDays = 366

// CashflowLister é o pedaço do catálogo que o relatório lê.
type CashflowLister interface {
	ListCashflowEntries(ctx context.Context, tenantID uint, from, to time.Time) ([]models.CashflowEntry, error)
}

// ======================================================
// OUTPUT
// ======================================================

type Line struct {
	ID      uint    `json:"id"`
	Name    string  `json:"name"`
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
}

type Cashflow struct {
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Balance float64 `json:"balance"`
}

type Summary struct {
	From string `json:"from"`
	To   string `json:"to"`

	// ByStatus conta todos os agendamentos do período, inclusive cancelados.
	ByStatus map[string]int `json:"by_status"`
	Total    int            `json:"total"`

	// Receita vem só de atendimentos concluídos, pelo preço gravado na reserva.
	Completed      int     `json:"completed"`
	Revenue        float64 `json:"revenue"`
	AverageTicket  float64 `json:"average_ticket"`
	ByProfessional []Line  `json:"by_professional"`
	ByService      []Line  `json:"by_service"`

	Cashflow Cashflow `json:"cashflow"`
}

// ======================================================
// USE CASE
// ======================================================

type GetSummary struct {
	repo     domain.Repository
	cashflow CashflowLister
}

func NewGetSummary(repo domain.Repository, cashflow CashflowLister) *GetSummary {
	return &GetSummary{repo: repo, cashflow: cashflow}
}

// Execute resume o período [from, to], datas no formato 2006-01-02
// inclusivas e lidas no fuso do tenant.
func (uc *GetSummary) Execute(ctx context.Context, tenantID uint, from, to string) (*Summary, error) {
	tenant, err := uc.repo.GetTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	start, err := timezone.ParseDate(tenant.Timezone, from)
	if err != nil {
		return nil, httperr.Invalid("invalid_period")
	}
	last, err := timezone.ParseDate(tenant.Timezone, to)
	if err != nil {
		return nil, httperr.Invalid("invalid_period")
	}
	end := last.AddDate(0, 0, 1)

	if !end.After(start) || end.Sub(start) > maxPeriodDays*24*time.Hour {
		return nil, httperr.Invalid("invalid_period")
	}

	var (
		aps     []models.Appointment
		entries []models.CashflowEntry
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		aps, err = uc.repo.ListAppointmentsForPeriod(gctx, tenantID, 0, start, end)
		return err
	})
	g.Go(func() error {
		var err error
		entries, err = uc.cashflow.ListCashflowEntries(gctx, tenantID, start, end)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sum := summarize(aps, entries)
	sum.From = from
	sum.To = to
	return sum, nil
}

func summarize(aps []models.Appointment, entries []models.CashflowEntry) *Summary {
	sum := &Summary{ByStatus: map[string]int{}}

	byPro := map[uint]*Line{}
	bySvc := map[uint]*Line{}

	for _, ap := range aps {
		sum.ByStatus[ap.Status]++
		sum.Total++

		if domain.Status(ap.Status) != domain.StatusCompleted {
			continue
		}
		sum.Completed++
		sum.Revenue += ap.Price

		add(byPro, ap.ProfessionalID, ap.Professional.Name, ap.Price)
		add(bySvc, ap.ServiceID, ap.Service.Name, ap.Price)
	}

	if sum.Completed > 0 {
		sum.AverageTicket = sum.Revenue / float64(sum.Completed)
	}
	sum.ByProfessional = ranked(byPro)
	sum.ByService = ranked(bySvc)

	for _, e := range entries {
		switch e.Type {
		case models.CashflowIncome:
			sum.Cashflow.Income += e.Amount
		case models.CashflowExpense:
			sum.Cashflow.Expense += e.Amount
		}
	}
	sum.Cashflow.Balance = sum.Cashflow.Income - sum.Cashflow.Expense

	return sum
}

func add(lines map[uint]*Line, id uint, name string, price float64) {
	l, ok := lines[id]
	if !ok {
		l = &Line{ID: id, Name: name}
		lines[id] = l
	}
	l.Count++
	l.Revenue += price
}

// ranked ordena por receita, depois por quantidade e id.
func ranked(lines map[uint]*Line) []Line {
	out := make([]Line, 0, len(lines))
	for _, l := range lines {
		out = append(out, *l)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Revenue != out[j].Revenue {
			return out[i].Revenue > out[j].Revenue
		}
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].ID < out[j].ID
	})
	return out
}
