package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/societyhub/apartment-system/internal/core/domain"
	"github.com/societyhub/apartment-system/internal/core/policy"
	"github.com/societyhub/apartment-system/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories. They mirror the conditional-write contract of
// the real stores so transition races can be exercised without a database.
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users  map[int64]*domain.User
	nextID int64
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[int64]*domain.User)}
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	for _, existing := range r.users {
		if existing.Username == u.Username {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	clone := *u
	clone.ID = r.nextID
	r.users[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

type stubApartmentRepo struct {
	apts    map[int64]*domain.Apartment
	nextID  int64
	listErr error
}

func newStubApartmentRepo() *stubApartmentRepo {
	return &stubApartmentRepo{apts: make(map[int64]*domain.Apartment)}
}

// seed stores apt under its own id.
func (r *stubApartmentRepo) seed(apt *domain.Apartment) {
	clone := *apt
	r.apts[apt.ID] = &clone
	if apt.ID > r.nextID {
		r.nextID = apt.ID
	}
}

func (r *stubApartmentRepo) Create(_ context.Context, apt *domain.Apartment) (*domain.Apartment, error) {
	r.nextID++
	clone := *apt
	clone.ID = r.nextID
	r.apts[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubApartmentRepo) FindByID(_ context.Context, id int64) (*domain.Apartment, error) {
	a, ok := r.apts[id]
	if !ok {
		return nil, domain.ErrApartmentNotFound
	}
	clone := *a
	return &clone, nil
}

func (r *stubApartmentRepo) List(_ context.Context, scope policy.ApartmentScope) ([]*domain.Apartment, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := []*domain.Apartment{}
	for _, a := range r.apts {
		if scope.Matches(a) {
			clone := *a
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubApartmentRepo) Update(_ context.Context, id int64, patch domain.ApartmentPatch) (*domain.Apartment, error) {
	a, ok := r.apts[id]
	if !ok {
		return nil, domain.ErrApartmentNotFound
	}
	patch.Apply(a)
	clone := *a
	return &clone, nil
}

type stubMaintenanceRepo struct {
	reqs    map[int64]*domain.MaintenanceRequest
	nextID  int64
	updates int
	// beforeUpdate runs inside UpdateStatus before the compare, to simulate a
	// concurrent writer.
	beforeUpdate func()
}

func newStubMaintenanceRepo() *stubMaintenanceRepo {
	return &stubMaintenanceRepo{reqs: make(map[int64]*domain.MaintenanceRequest)}
}

func (r *stubMaintenanceRepo) Create(_ context.Context, req *domain.MaintenanceRequest) (*domain.MaintenanceRequest, error) {
	r.nextID++
	clone := *req
	clone.ID = r.nextID
	r.reqs[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubMaintenanceRepo) FindByID(_ context.Context, id int64) (*domain.MaintenanceRequest, error) {
	m, ok := r.reqs[id]
	if !ok {
		return nil, domain.ErrMaintenanceNotFound
	}
	clone := *m
	return &clone, nil
}

func (r *stubMaintenanceRepo) List(_ context.Context, scope policy.MaintenanceScope) ([]*domain.MaintenanceRequest, error) {
	out := []*domain.MaintenanceRequest{}
	for _, m := range r.reqs {
		if scope.Matches(m) {
			clone := *m
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubMaintenanceRepo) UpdateStatus(_ context.Context, id int64, from, to domain.MaintenanceStatus, at time.Time) (*domain.MaintenanceRequest, error) {
	if r.beforeUpdate != nil {
		r.beforeUpdate()
	}
	m, ok := r.reqs[id]
	if !ok {
		return nil, domain.ErrMaintenanceNotFound
	}
	if m.Status != from {
		return nil, domain.ErrConflict
	}
	r.updates++
	m.Status = to
	m.UpdatedAt = at
	clone := *m
	return &clone, nil
}

type stubPaymentRepo struct {
	payments []*domain.Payment
	lastList policy.PaymentScope
}

func (r *stubPaymentRepo) Create(_ context.Context, p *domain.Payment) (*domain.Payment, error) {
	clone := *p
	clone.ID = int64(len(r.payments) + 1)
	r.payments = append(r.payments, &clone)
	out := clone
	return &out, nil
}

func (r *stubPaymentRepo) List(_ context.Context, scope policy.PaymentScope) ([]*domain.Payment, error) {
	r.lastList = scope
	out := []*domain.Payment{}
	for _, p := range r.payments {
		if scope.Matches(p) {
			clone := *p
			out = append(out, &clone)
		}
	}
	return out, nil
}

type stubVisitorRepo struct {
	visitors    map[int64]*domain.Visitor
	nextID      int64
	transitions int
	lastList    policy.VisitorScope
	// beforeTransition runs inside Transition before the compare.
	beforeTransition func()
}

func newStubVisitorRepo() *stubVisitorRepo {
	return &stubVisitorRepo{visitors: make(map[int64]*domain.Visitor)}
}

func (r *stubVisitorRepo) seed(v *domain.Visitor) {
	clone := *v
	r.visitors[v.ID] = &clone
	if v.ID > r.nextID {
		r.nextID = v.ID
	}
}

func (r *stubVisitorRepo) Create(_ context.Context, v *domain.Visitor) (*domain.Visitor, error) {
	r.nextID++
	clone := *v
	clone.ID = r.nextID
	r.visitors[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubVisitorRepo) FindByID(_ context.Context, id int64) (*domain.Visitor, error) {
	v, ok := r.visitors[id]
	if !ok {
		return nil, domain.ErrVisitorNotFound
	}
	clone := *v
	return &clone, nil
}

func (r *stubVisitorRepo) List(_ context.Context, scope policy.VisitorScope) ([]*domain.Visitor, error) {
	r.lastList = scope
	out := []*domain.Visitor{}
	for _, v := range r.visitors {
		if scope.Matches(v) {
			clone := *v
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubVisitorRepo) Transition(_ context.Context, id int64, t domain.VisitorTransition) (*domain.Visitor, error) {
	if r.beforeTransition != nil {
		r.beforeTransition()
	}
	v, ok := r.visitors[id]
	if !ok {
		return nil, domain.ErrVisitorNotFound
	}
	if v.Status != t.From {
		return nil, domain.ErrConflict
	}
	r.transitions++
	v.Apply(t)
	clone := *v
	return &clone, nil
}

type stubAnnouncementRepo struct {
	items []*domain.Announcement
}

func (r *stubAnnouncementRepo) Create(_ context.Context, a *domain.Announcement) (*domain.Announcement, error) {
	clone := *a
	clone.ID = int64(len(r.items) + 1)
	r.items = append(r.items, &clone)
	out := clone
	return &out, nil
}

func (r *stubAnnouncementRepo) List(_ context.Context) ([]*domain.Announcement, error) {
	out := make([]*domain.Announcement, 0, len(r.items))
	for i := len(r.items) - 1; i >= 0; i-- {
		clone := *r.items[i]
		out = append(out, &clone)
	}
	return out, nil
}

type stubNotificationRepo struct {
	insertErr error
	inserted  []domain.VisitorNotification
}

func (r *stubNotificationRepo) Insert(_ context.Context, n *domain.VisitorNotification) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.inserted = append(r.inserted, *n)
	return nil
}

type stubSessionStore struct {
	mu       sync.Mutex
	sessions map[string]*domain.Session
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{sessions: make(map[string]*domain.Session)}
}

func (s *stubSessionStore) Create(_ context.Context, sess *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *sess
	s.sessions[sess.ID] = &clone
	return nil
}

func (s *stubSessionStore) Get(_ context.Context, id string) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	clone := *sess
	return &clone, nil
}

func (s *stubSessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

type stubDedup struct {
	dupResult bool
	dupErr    error
	markErr   error
	marked    []int64
}

func (d *stubDedup) IsDuplicate(_ context.Context, _ int64) (bool, error) {
	return d.dupResult, d.dupErr
}

func (d *stubDedup) Mark(_ context.Context, visitorID int64) error {
	if d.markErr != nil {
		return d.markErr
	}
	d.marked = append(d.marked, visitorID)
	return nil
}

type stubNotifier struct {
	queued []domain.VisitorNotification
}

func (n *stubNotifier) Enqueue(v domain.VisitorNotification) {
	n.queued = append(n.queued, v)
}

// ---------------------------------------------------------------------------
// Actors
// ---------------------------------------------------------------------------

func actor(id int64, role domain.Role) domain.Actor {
	return domain.Actor{UserID: id, Username: string(role), Role: role}
}

func int64p(v int64) *int64 { return &v }

func stubRepositories() ports.Repositories {
	return ports.Repositories{
		Users:         newStubUserRepo(),
		Apartments:    newStubApartmentRepo(),
		Maintenance:   newStubMaintenanceRepo(),
		Payments:      &stubPaymentRepo{},
		Visitors:      newStubVisitorRepo(),
		Announcements: &stubAnnouncementRepo{},
		Notifications: &stubNotificationRepo{},
	}
}
