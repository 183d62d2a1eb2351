// Package memory guarda tudo em mapas protegidos por um mutex. Serve aos
// testes e ao modo STORE_DRIVER=memory; as garantias de sobreposição e
// idempotência são as mesmas do repositório Postgres.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/BruksfildServices01/barberpro-booking/internal/domain/account"
	domain "github.com/BruksfildServices01/barberpro-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barberpro-booking/internal/domain/catalog"
	"github.com/BruksfildServices01/barberpro-booking/internal/httperr"
	"github.com/BruksfildServices01/barberpro-booking/internal/models"
)

type Store struct {
	mu     sync.Mutex
	nextID uint

	tenants       map[uint]models.Tenant
	settings      map[uint]models.TenantSettings // por tenant
	users         map[uint]models.User
	professionals map[uint]models.Professional
	schedules     map[uint]map[int]models.ProfessionalSchedule // profissional -> dia
	services      map[uint]models.Service
	clients       map[uint]models.Client
	appointments  map[uint]models.Appointment
	products      map[uint]models.Product
	cashCats      map[uint]models.CashflowCategory
	cashEntries   map[uint]models.CashflowEntry
	auditLogs     []models.AuditLog
}

func NewStore() *Store {
	return &Store{
		tenants:       map[uint]models.Tenant{},
		settings:      map[uint]models.TenantSettings{},
		users:         map[uint]models.User{},
		professionals: map[uint]models.Professional{},
		schedules:     map[uint]map[int]models.ProfessionalSchedule{},
		services:      map[uint]models.Service{},
		clients:       map[uint]models.Client{},
		appointments:  map[uint]models.Appointment{},
		products:      map[uint]models.Product{},
		cashCats:      map[uint]models.CashflowCategory{},
		cashEntries:   map[uint]models.CashflowEntry{},
	}
}

func (s *Store) id() uint {
	s.nextID++
	return s.nextID
}

// --------------------------------------------------
// Seed (testes e modo memória)
// --------------------------------------------------

func (s *Store) AddTenant(t models.Tenant, st models.TenantSettings) models.Tenant {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t.ID == 0 {
		t.ID = s.id()
	}
	if t.Timezone == "" {
		t.Timezone = "UTC"
	}
	st.TenantID = t.ID
	if st.ID == 0 {
		st.ID = s.id()
	}
	s.tenants[t.ID] = t
	s.settings[t.ID] = st
	return t
}

func (s *Store) AddProfessional(p models.Professional) models.Professional {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID == 0 {
		p.ID = s.id()
	}
	s.professionals[p.ID] = p
	return p
}

func (s *Store) AddSchedule(row models.ProfessionalSchedule) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if row.ID == 0 {
		row.ID = s.id()
	}
	if s.schedules[row.ProfessionalID] == nil {
		s.schedules[row.ProfessionalID] = map[int]models.ProfessionalSchedule{}
	}
	s.schedules[row.ProfessionalID][row.DayOfWeek] = row
}

func (s *Store) AddService(svc models.Service) models.Service {
	s.mu.Lock()
	defer s.mu.Unlock()

	if svc.ID == 0 {
		svc.ID = s.id()
	}
	s.services[svc.ID] = svc
	return svc
}

func (s *Store) AddClient(c models.Client) models.Client {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c.ID == 0 {
		c.ID = s.id()
	}
	s.clients[c.ID] = c
	return c
}

// AddAppointment grava sem checar sobreposição. Só para montar cenários.
func (s *Store) AddAppointment(ap models.Appointment) models.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ap.ID == 0 {
		ap.ID = s.id()
	}
	if ap.EndsAt.IsZero() {
		ap.EndsAt = ap.ScheduledAt.Add(time.Duration(ap.DurationMinutes) * time.Minute)
	}
	s.appointments[ap.ID] = ap
	return ap
}

// Appointments devolve todos os agendamentos do tenant, em ordem de id.
func (s *Store) Appointments(tenantID uint) []models.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Appointment
	for _, ap := range s.appointments {
		if ap.TenantID == tenantID {
			out = append(out, ap)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) AuditLogs() []models.AuditLog {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]models.AuditLog(nil), s.auditLogs...)
}

// --------------------------------------------------
// Tenant
// --------------------------------------------------

func (s *Store) GetTenant(_ context.Context, tenantID uint) (*models.Tenant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tenants[tenantID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &t, nil
}

func (s *Store) GetTenantBySlug(_ context.Context, slug string) (*models.Tenant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.tenants {
		if t.Slug == slug {
			t := t
			return &t, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *Store) GetSettings(_ context.Context, tenantID uint) (*models.TenantSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.settings[tenantID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &st, nil
}

func (s *Store) SaveTenant(_ context.Context, t *models.Tenant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tenants[t.ID]; !ok {
		return domain.ErrNotFound
	}
	t.UpdatedAt = time.Now()
	s.tenants[t.ID] = *t
	return nil
}

func (s *Store) SaveSettings(_ context.Context, st *models.TenantSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if st.ID == 0 {
		st.ID = s.id()
	}
	st.UpdatedAt = time.Now()
	s.settings[st.TenantID] = *st
	return nil
}

// --------------------------------------------------
// Catálogo
// --------------------------------------------------

func (s *Store) GetService(_ context.Context, serviceID uint) (*models.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	svc, ok := s.services[serviceID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &svc, nil
}

func (s *Store) GetProfessional(_ context.Context, professionalID uint) (*models.Professional, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.professionals[professionalID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (s *Store) ListActiveProfessionals(_ context.Context, tenantID uint) ([]models.Professional, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Professional
	for _, p := range s.professionals {
		if p.TenantID == tenantID && p.Active {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) ListProfessionals(_ context.Context, tenantID uint) ([]models.Professional, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.Professional{}
	for _, p := range s.professionals {
		if p.TenantID == tenantID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) CreateProfessional(_ context.Context, p *models.Professional) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = s.id()
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	s.professionals[p.ID] = *p
	return nil
}

func (s *Store) SaveProfessional(_ context.Context, p *models.Professional) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.professionals[p.ID]; !ok {
		return domain.ErrNotFound
	}
	p.UpdatedAt = time.Now()
	s.professionals[p.ID] = *p
	return nil
}

func (s *Store) GetSchedule(_ context.Context, professionalID uint, weekday int) (*models.ProfessionalSchedule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.schedules[professionalID][weekday]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

func (s *Store) ListSchedules(_ context.Context, professionalID uint) ([]models.ProfessionalSchedule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.ProfessionalSchedule{}
	for _, row := range s.schedules[professionalID] {
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DayOfWeek < out[j].DayOfWeek })
	return out, nil
}

func (s *Store) ReplaceSchedules(_ context.Context, professionalID uint, rows []models.ProfessionalSchedule) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	days := map[int]models.ProfessionalSchedule{}
	for _, row := range rows {
		row.ID = s.id()
		row.ProfessionalID = professionalID
		days[row.DayOfWeek] = row
	}
	s.schedules[professionalID] = days
	return nil
}

func (s *Store) ListServices(_ context.Context, tenantID uint, activeOnly bool) ([]models.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.Service{}
	for _, svc := range s.services {
		if svc.TenantID != tenantID || (activeOnly && !svc.Active) {
			continue
		}
		out = append(out, svc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) CreateService(_ context.Context, svc *models.Service) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	svc.ID = s.id()
	svc.CreatedAt = time.Now()
	svc.UpdatedAt = svc.CreatedAt
	s.services[svc.ID] = *svc
	return nil
}

func (s *Store) SaveService(_ context.Context, svc *models.Service) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.services[svc.ID]; !ok {
		return domain.ErrNotFound
	}
	svc.UpdatedAt = time.Now()
	s.services[svc.ID] = *svc
	return nil
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (s *Store) GetClient(_ context.Context, clientID uint) (*models.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.clients[clientID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (s *Store) GetOrCreateClient(
	_ context.Context,
	tenantID uint,
	name string,
	phone string,
	email string,
) (*models.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.clients {
		if c.TenantID == tenantID && c.Phone == phone {
			c := c
			return &c, nil
		}
	}

	c := models.Client{
		ID:        s.id(),
		TenantID:  tenantID,
		Name:      name,
		Phone:     phone,
		Email:     email,
		CreatedAt: time.Now(),
	}
	s.clients[c.ID] = c
	return &c, nil
}

func (s *Store) ListClients(_ context.Context, tenantID uint, query string) ([]models.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query = strings.ToLower(query)
	out := []models.Client{}
	for _, c := range s.clients {
		if c.TenantID != tenantID {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(c.Name), query) &&
			!strings.Contains(c.Phone, query) &&
			!strings.Contains(strings.ToLower(c.Email), query) {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

// --------------------------------------------------
// Appointment store
// --------------------------------------------------

// overlapping informa se algum agendamento vivo do profissional intercepta
// ap, ignorando skipID. Chamar com s.mu travado.
func (s *Store) overlapping(ap *models.Appointment, skipID uint) bool {
	for id, other := range s.appointments {
		if id == skipID || other.ProfessionalID != ap.ProfessionalID {
			continue
		}
		if !domain.Status(other.Status).IsLive() {
			continue
		}
		if domain.Overlaps(ap.ScheduledAt, ap.EndsAt, other.ScheduledAt, other.EndsAt) {
			return true
		}
	}
	return false
}

func (s *Store) InsertIfNoOverlap(_ context.Context, ap *models.Appointment) (*models.Appointment, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ap.IdempotencyKey != "" {
		for _, other := range s.appointments {
			if other.TenantID == ap.TenantID &&
				other.IdempotencyKey == ap.IdempotencyKey &&
				domain.Status(other.Status).IsLive() {
				other := other
				return &other, false, nil
			}
		}
	}

	if s.overlapping(ap, 0) {
		return nil, false, httperr.Conflict("time_conflict")
	}

	stored := *ap
	stored.ID = s.id()
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	s.appointments[stored.ID] = stored

	return &stored, true, nil
}

func (s *Store) FindByProfessionalAndDateRange(
	_ context.Context,
	tenantID uint,
	professionalID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Appointment
	for _, ap := range s.appointments {
		if ap.TenantID != tenantID || ap.ProfessionalID != professionalID {
			continue
		}
		if !domain.Status(ap.Status).IsLive() {
			continue
		}
		if domain.Overlaps(start, end, ap.ScheduledAt, ap.EndsAt) {
			out = append(out, ap)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScheduledAt.Before(out[j].ScheduledAt) })
	return out, nil
}

func (s *Store) GetAppointment(_ context.Context, appointmentID uint) (*models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ap, ok := s.appointments[appointmentID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &ap, nil
}

func (s *Store) UpdateStatus(_ context.Context, ap *models.Appointment, from domain.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.appointments[ap.ID]
	if !ok || cur.TenantID != ap.TenantID {
		return domain.ErrNotFound
	}
	if cur.Status != string(from) {
		return httperr.Conflict("status_changed")
	}

	cur.Status = ap.Status
	cur.CancelledAt = ap.CancelledAt
	cur.CompletedAt = ap.CompletedAt
	cur.UpdatedAt = time.Now()
	s.appointments[cur.ID] = cur
	*ap = cur
	return nil
}

func (s *Store) Reschedule(
	_ context.Context,
	old *models.Appointment,
	from domain.Status,
	next *models.Appointment,
) (*models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.appointments[old.ID]
	if !ok || cur.TenantID != old.TenantID {
		return nil, domain.ErrNotFound
	}
	if cur.Status != string(from) {
		return nil, httperr.Conflict("status_changed")
	}
	if s.overlapping(next, old.ID) {
		return nil, httperr.Conflict("time_conflict")
	}

	now := time.Now()
	cur.Status = old.Status
	cur.CancelledAt = old.CancelledAt
	cur.UpdatedAt = now
	s.appointments[cur.ID] = cur
	*old = cur

	stored := *next
	stored.ID = s.id()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	s.appointments[stored.ID] = stored

	return &stored, nil
}

func (s *Store) ListAppointmentsForPeriod(
	_ context.Context,
	tenantID uint,
	professionalID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.Appointment{}
	for _, ap := range s.appointments {
		if ap.TenantID != tenantID {
			continue
		}
		if professionalID != 0 && ap.ProfessionalID != professionalID {
			continue
		}
		if ap.ScheduledAt.Before(start) || !ap.ScheduledAt.Before(end) {
			continue
		}
		ap.Client = s.clients[ap.ClientID]
		ap.Service = s.services[ap.ServiceID]
		ap.Professional = s.professionals[ap.ProfessionalID]
		out = append(out, ap)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScheduledAt.Before(out[j].ScheduledAt) })
	return out, nil
}

// --------------------------------------------------
// Products
// --------------------------------------------------

func (s *Store) ListProducts(_ context.Context, tenantID uint, f catalog.ProductFilter) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	category := strings.ToLower(strings.TrimSpace(f.Category))
	query := strings.ToLower(strings.TrimSpace(f.Query))

	out := []models.Product{}
	for _, p := range s.products {
		if p.TenantID != tenantID {
			continue
		}
		if category != "" && strings.ToLower(p.Category) != category {
			continue
		}
		if f.Active != nil && p.Active != *f.Active {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(p.Name), query) &&
			!strings.Contains(strings.ToLower(p.Description), query) {
			continue
		}
		if f.LowStock && !p.LowStock() {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) GetProduct(_ context.Context, productID uint) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[productID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (s *Store) CreateProduct(_ context.Context, p *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = s.id()
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	s.products[p.ID] = *p
	return nil
}

func (s *Store) SaveProduct(_ context.Context, p *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	p.UpdatedAt = time.Now()
	s.products[p.ID] = *p
	return nil
}

// --------------------------------------------------
// Cashflow
// --------------------------------------------------

func (s *Store) ListCashflowCategories(_ context.Context, tenantID uint) ([]models.CashflowCategory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.CashflowCategory{}
	for _, c := range s.cashCats {
		if c.TenantID == tenantID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) GetCashflowCategory(_ context.Context, categoryID uint) (*models.CashflowCategory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.cashCats[categoryID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (s *Store) CreateCashflowCategory(_ context.Context, c *models.CashflowCategory) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c.ID = s.id()
	c.CreatedAt = time.Now()
	s.cashCats[c.ID] = *c
	return nil
}

func (s *Store) ListCashflowEntries(
	_ context.Context,
	tenantID uint,
	from time.Time,
	to time.Time,
) ([]models.CashflowEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.CashflowEntry{}
	for _, e := range s.cashEntries {
		if e.TenantID != tenantID || e.Date.Before(from) || !e.Date.Before(to) {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *Store) CreateCashflowEntry(_ context.Context, e *models.CashflowEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e.ID = s.id()
	e.CreatedAt = time.Now()
	s.cashEntries[e.ID] = *e
	return nil
}

// --------------------------------------------------
// Account
// --------------------------------------------------

func (s *Store) SlugExists(_ context.Context, slug string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.tenants {
		if t.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) EmailExists(_ context.Context, email string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) CreateAccount(_ context.Context, acc *account.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.tenants {
		if t.Slug == acc.Tenant.Slug {
			return httperr.Conflict("slug_already_exists")
		}
	}
	for _, u := range s.users {
		if u.Email == acc.User.Email {
			return httperr.Conflict("email_already_exists")
		}
	}

	now := time.Now()

	acc.Tenant.ID = s.id()
	acc.Tenant.CreatedAt = now
	s.tenants[acc.Tenant.ID] = acc.Tenant

	acc.User.ID = s.id()
	acc.User.TenantID = acc.Tenant.ID
	acc.User.CreatedAt = now
	s.users[acc.User.ID] = acc.User

	acc.Settings.ID = s.id()
	acc.Settings.TenantID = acc.Tenant.ID
	s.settings[acc.Tenant.ID] = acc.Settings

	acc.Professional.ID = s.id()
	acc.Professional.TenantID = acc.Tenant.ID
	acc.Professional.UserID = &acc.User.ID
	s.professionals[acc.Professional.ID] = acc.Professional

	days := map[int]models.ProfessionalSchedule{}
	for i := range acc.Schedules {
		acc.Schedules[i].ID = s.id()
		acc.Schedules[i].TenantID = acc.Tenant.ID
		acc.Schedules[i].ProfessionalID = acc.Professional.ID
		days[acc.Schedules[i].DayOfWeek] = acc.Schedules[i]
	}
	s.schedules[acc.Professional.ID] = days

	return nil
}

func (s *Store) FindUserByEmail(_ context.Context, email string) (*models.User, *models.Tenant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			u := u
			t := s.tenants[u.TenantID]
			return &u, &t, nil
		}
	}
	return nil, nil, account.ErrUserNotFound
}

// --------------------------------------------------
// Audit
// --------------------------------------------------

func (s *Store) WriteAudit(_ context.Context, entry *models.AuditLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry.ID = s.id()
	entry.CreatedAt = time.Now()
	s.auditLogs = append(s.auditLogs, *entry)
	return nil
}

func (s *Store) ListAuditLogs(_ context.Context, tenantID uint, f catalog.AuditFilter) ([]models.AuditLog, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []models.AuditLog
	for i := len(s.auditLogs) - 1; i >= 0; i-- {
		l := s.auditLogs[i]
		if l.TenantID != tenantID {
			continue
		}
		if f.Action != "" && l.Action != f.Action {
			continue
		}
		if f.Entity != "" && l.Entity != f.Entity {
			continue
		}
		if !f.From.IsZero() && l.CreatedAt.Before(f.From) {
			continue
		}
		if !f.To.IsZero() && !l.CreatedAt.Before(f.To) {
			continue
		}
		matched = append(matched, l)
	}

	total := int64(len(matched))
	if f.Offset >= len(matched) {
		return []models.AuditLog{}, total, nil
	}
	matched = matched[f.Offset:]
	if f.Limit > 0 && len(matched) > f.Limit {
		matched = matched[:f.Limit]
	}
	return matched, total, nil
}

// Compile-time check
var (
	_ domain.Repository  = (*Store)(nil)
	_ catalog.Repository = (*Store)(nil)
	_ account.Repository = (*Store)(nil)
)
