package stock

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/stock-api/internal/domain"
	"github.com/jhoicas/stock-api/internal/domain/entity"
	"github.com/jhoicas/stock-api/internal/domain/repository"
)

// memStore almacén en memoria con la misma semántica que Postgres:
// Run serializa las transacciones y restaura el estado si fn falla.
type memStore struct {
	mu          sync.Mutex
	companies   map[string]*entity.Company
	departments map[string]*entity.Department
	users       map[string]*entity.User
	items       map[string]*entity.StockItem
	assignments map[string]*entity.Assignment
	history     []*entity.StockHistory

	failAppend error
	// beforeInsert simula otra transacción que confirma un alta justo antes del INSERT.
	beforeInsert func(*memStore)
}

func newMemStore() *memStore {
	return &memStore{
		companies:   map[string]*entity.Company{},
		departments: map[string]*entity.Department{},
		users:       map[string]*entity.User{},
		items:       map[string]*entity.StockItem{},
		assignments: map[string]*entity.Assignment{},
	}
}

func (s *memStore) repos() Repos {
	return Repos{
		Items:       memItems{s},
		Assignments: memAssignments{s},
		History:     memHistory{s},
		Users:       memUsers{s},
		Departments: memDepartments{s},
	}
}

func (s *memStore) Run(ctx context.Context, fn func(Repos) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := s.snapshot()
	if err := fn(s.repos()); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

type memSnapshot struct {
	items       map[string]entity.StockItem
	assignments map[string]entity.Assignment
	history     int
}

func (s *memStore) snapshot() memSnapshot {
	snap := memSnapshot{
		items:       make(map[string]entity.StockItem, len(s.items)),
		assignments: make(map[string]entity.Assignment, len(s.assignments)),
		history:     len(s.history),
	}
	for k, v := range s.items {
		snap.items[k] = *v
	}
	for k, v := range s.assignments {
		snap.assignments[k] = *v
	}
	return snap
}

func (s *memStore) restore(snap memSnapshot) {
	s.items = make(map[string]*entity.StockItem, len(snap.items))
	for k, v := range snap.items {
		v := v
		s.items[k] = &v
	}
	s.assignments = make(map[string]*entity.Assignment, len(snap.assignments))
	for k, v := range snap.assignments {
		v := v
		s.assignments[k] = &v
	}
	s.history = s.history[:snap.history]
}

func (s *memStore) addCompany(id, name string) {
	s.companies[id] = &entity.Company{ID: id, Name: name, Status: "active"}
}

func (s *memStore) addDepartment(companyID, id, name string) {
	s.departments[id] = &entity.Department{ID: id, CompanyID: companyID, Name: name}
}

func (s *memStore) addUser(companyID, deptID, id, username string, role entity.RoleName) {
	s.users[id] = &entity.User{ID: id, CompanyID: companyID, DepartmentID: deptID, Username: username, RoleName: role}
}

func (s *memStore) item(id string) entity.StockItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.items[id]
}

func (s *memStore) historyFor(itemID string) []entity.StockHistory {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []entity.StockHistory
	for _, h := range s.history {
		if h.StockItemID == itemID {
			out = append(out, *h)
		}
	}
	return out
}

// --- items ---

type memItems struct{ s *memStore }

func (r memItems) CreateIfAbsent(_ context.Context, item *entity.StockItem) (bool, error) {
	if r.s.beforeInsert != nil {
		r.s.beforeInsert(r.s)
		r.s.beforeInsert = nil
	}
	for _, it := range r.s.items {
		if it.CompanyID == item.CompanyID && it.DepartmentID == item.DepartmentID && it.Name == item.Name && !it.IsDeleted {
			return false, nil
		}
	}
	cp := *item
	r.s.items[item.ID] = &cp
	return true, nil
}

func (r memItems) Update(_ context.Context, item *entity.StockItem) error {
	if item.Quantity < 0 {
		return errors.New("violates check constraint stock_items_quantity_check")
	}
	cur, ok := r.s.items[item.ID]
	if !ok {
		return domain.ErrNotFound
	}
	*cur = *item
	return nil
}

func (r memItems) get(companyID, id string) *entity.StockItem {
	it, ok := r.s.items[id]
	if !ok || it.CompanyID != companyID || !it.IsActive() {
		return nil
	}
	cp := *it
	return &cp
}

func (r memItems) GetByID(_ context.Context, companyID, id string) (*entity.StockItem, error) {
	return r.get(companyID, id), nil
}

func (r memItems) GetForUpdate(_ context.Context, companyID, id string) (*entity.StockItem, error) {
	return r.get(companyID, id), nil
}

func (r memItems) FindByNameForUpdate(_ context.Context, companyID, departmentID, name string) (*entity.StockItem, error) {
	for _, it := range r.s.items {
		if it.CompanyID == companyID && it.DepartmentID == departmentID && it.Name == name && it.IsActive() {
			cp := *it
			return &cp, nil
		}
	}
	return nil, nil
}

func (r memItems) LockForTransfer(ctx context.Context, companyID, sourceID, departmentID, name string) (*entity.StockItem, *entity.StockItem, error) {
	dst, _ := r.FindByNameForUpdate(ctx, companyID, departmentID, name)
	if dst != nil && dst.ID == sourceID {
		dst = nil
	}
	return r.get(companyID, sourceID), dst, nil
}

func (r memItems) List(_ context.Context, f repository.StockItemFilter) ([]*entity.StockItem, error) {
	out := []*entity.StockItem{}
	for _, it := range r.s.items {
		if it.CompanyID != f.CompanyID || !it.IsActive() {
			continue
		}
		if f.DepartmentID != "" && it.DepartmentID != f.DepartmentID {
			continue
		}
		if f.AssignedToUserID != "" {
			if !r.assignedTo(it.ID, f.AssignedToUserID) {
				continue
			}
		} else {
			if f.BelowPar && !it.BelowPar() {
				continue
			}
			if f.CreatedBefore != nil && !it.CreatedAt.Before(*f.CreatedBefore) {
				continue
			}
			if f.Status == repository.FaultStatusFaulty && !it.IsFaulty {
				continue
			}
			if f.Status == repository.FaultStatusOK && it.IsFaulty {
				continue
			}
		}
		cp := *it
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r memItems) assignedTo(itemID, userID string) bool {
	for _, a := range r.s.assignments {
		if a.StockItemID == itemID && a.AssigneeID == userID && a.IsOpen() {
			return true
		}
	}
	return false
}

// --- assignments ---

type memAssignments struct{ s *memStore }

func (r memAssignments) Create(_ context.Context, a *entity.Assignment) error {
	cp := *a
	r.s.assignments[a.ID] = &cp
	return nil
}

func (r memAssignments) GetOpenForUpdate(_ context.Context, companyID, id string) (*entity.Assignment, error) {
	a, ok := r.s.assignments[id]
	if !ok || a.CompanyID != companyID || !a.IsOpen() {
		return nil, nil
	}
	if it := r.s.items[a.StockItemID]; it == nil || !it.IsActive() {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (r memAssignments) Close(_ context.Context, a *entity.Assignment) error {
	cur, ok := r.s.assignments[a.ID]
	if !ok {
		return domain.ErrNotFound
	}
	cur.ReturnedAt = a.ReturnedAt
	return nil
}

func (r memAssignments) ListOpenByUser(_ context.Context, companyID, userID, departmentID string) ([]*entity.EquipmentItem, error) {
	out := []*entity.EquipmentItem{}
	for _, a := range r.s.assignments {
		if a.CompanyID != companyID || a.AssigneeID != userID || !a.IsOpen() {
			continue
		}
		it := r.s.items[a.StockItemID]
		if it == nil || !it.IsActive() {
			continue
		}
		if departmentID != "" && it.DepartmentID != departmentID {
			continue
		}
		dept := r.s.departments[it.DepartmentID]
		out = append(out, &entity.EquipmentItem{
			AssignmentID:   a.ID,
			StockItemID:    it.ID,
			Name:           it.Name,
			DepartmentID:   it.DepartmentID,
			DepartmentName: dept.Name,
			IsFaulty:       it.IsFaulty,
			AssignedAt:     a.AssignedAt,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AssignedAt.After(out[j].AssignedAt) })
	return out, nil
}

// --- history ---

type memHistory struct{ s *memStore }

func (r memHistory) Append(_ context.Context, h *entity.StockHistory) error {
	if r.s.failAppend != nil {
		return r.s.failAppend
	}
	cp := *h
	r.s.history = append(r.s.history, &cp)
	return nil
}

func (r memHistory) match(f repository.HistoryFilter) []*entity.StockHistory {
	out := []*entity.StockHistory{}
	for i := len(r.s.history) - 1; i >= 0; i-- {
		h := r.s.history[i]
		if h.CompanyID != f.CompanyID {
			continue
		}
		if f.StockItemID != "" && h.StockItemID != f.StockItemID {
			continue
		}
		if f.UserID != "" && h.UserID != f.UserID {
			continue
		}
		if f.Action != "" && h.Action != f.Action {
			continue
		}
		it := r.s.items[h.StockItemID]
		if f.DepartmentID != "" && (it == nil || it.DepartmentID != f.DepartmentID) {
			continue
		}
		cp := *h
		if it != nil {
			cp.StockItemName = it.Name
			cp.DepartmentID = it.DepartmentID
		}
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out
}

func (r memHistory) List(_ context.Context, f repository.HistoryFilter) ([]*entity.StockHistory, error) {
	all := r.match(f)
	if f.Offset >= len(all) {
		return []*entity.StockHistory{}, nil
	}
	all = all[f.Offset:]
	if f.Limit > 0 && f.Limit < len(all) {
		all = all[:f.Limit]
	}
	return all, nil
}

func (r memHistory) Count(_ context.Context, f repository.HistoryFilter) (int, error) {
	return len(r.match(f)), nil
}

// --- users / departments / companies ---

type memUsers struct{ s *memStore }

func (r memUsers) Create(_ context.Context, u *entity.User) error {
	cp := *u
	r.s.users[u.ID] = &cp
	return nil
}

func (r memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r memUsers) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	for _, u := range r.s.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r memUsers) List(_ context.Context, f repository.UserFilter) ([]*entity.User, error) {
	out := []*entity.User{}
	for _, u := range r.s.users {
		if u.CompanyID == f.CompanyID {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

type memDepartments struct{ s *memStore }

func (r memDepartments) Create(_ context.Context, d *entity.Department) error {
	cp := *d
	r.s.departments[d.ID] = &cp
	return nil
}

func (r memDepartments) GetByID(_ context.Context, companyID, id string) (*entity.Department, error) {
	d, ok := r.s.departments[id]
	if !ok || d.CompanyID != companyID {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (r memDepartments) GetByName(_ context.Context, companyID, name string) (*entity.Department, error) {
	for _, d := range r.s.departments {
		if d.CompanyID == companyID && d.Name == name {
			cp := *d
			return &cp, nil
		}
	}
	return nil, nil
}

func (r memDepartments) ListByCompany(_ context.Context, companyID string) ([]*entity.Department, error) {
	out := []*entity.Department{}
	for _, d := range r.s.departments {
		if d.CompanyID == companyID {
			cp := *d
			out = append(out, &cp)
		}
	}
	return out, nil
}

type memCompanies struct{ s *memStore }

func (r memCompanies) Create(_ context.Context, c *entity.Company) error {
	r.s.companies[c.ID] = c
	return nil
}

func (r memCompanies) GetByID(_ context.Context, id string) (*entity.Company, error) {
	return r.s.companies[id], nil
}

func (r memCompanies) GetByName(_ context.Context, name string) (*entity.Company, error) {
	for _, c := range r.s.companies {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, nil
}

// fixture: dos empresas; c1 con Warehouse/IT y tres usuarios, c2 con un usuario.
const (
	companyA = "company-a"
	companyB = "company-b"
	deptWH   = "dept-warehouse"
	deptIT   = "dept-it"
	deptB    = "dept-b"
	userWH   = "user-warehouse"
	userTech = "user-tech"
	userAdm  = "user-admin"
	userB    = "user-b"
)

var (
	actorWH = entity.Actor{UserID: userWH, CompanyID: companyA, DepartmentID: deptWH, Role: entity.RoleWarehouse}
	actorB  = entity.Actor{UserID: userB, CompanyID: companyB, DepartmentID: deptB, Role: entity.RoleWarehouse}
)

func newFixture() *memStore {
	s := newMemStore()
	s.addCompany(companyA, "ExampleCorp")
	s.addCompany(companyB, "OtherCorp")
	s.addDepartment(companyA, deptWH, "Warehouse")
	s.addDepartment(companyA, deptIT, "IT")
	s.addDepartment(companyB, deptB, "Almacén")
	s.addUser(companyA, deptWH, userWH, "worker", entity.RoleWarehouse)
	s.addUser(companyA, deptIT, userTech, "tech", entity.RoleTechnicalSupport)
	s.addUser(companyA, deptWH, userAdm, "admin", entity.RoleAdmin)
	s.addUser(companyB, deptB, userB, "other", entity.RoleWarehouse)
	return s
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
