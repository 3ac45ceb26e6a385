package storage

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/nahlchatbot/NahlBooking-Farm-sub000/internal/models"
)

// MemoryStore holds all data in memory. Used by tests and when
// USE_MEMORY_STORE=true; not meant for production.
type MemoryStore struct {
	bookings  map[uint]*models.Booking
	blackouts map[uint]*models.BlackoutDate
	chalets   map[uint]*models.Chalet
	pricing   map[models.VisitType]*models.Pricing
	matrix    map[uint]*models.ChaletPricing
	users     map[uint]*models.AdminUser
	audit     []*models.AuditLog
	settings  map[string]*models.Setting
	counters  map[int]int

	bookingMu  sync.RWMutex
	blackoutMu sync.RWMutex
	chaletMu   sync.RWMutex
	pricingMu  sync.RWMutex
	userMu     sync.RWMutex
	auditMu    sync.RWMutex
	settingMu  sync.RWMutex
	counterMu  sync.Mutex

	bookingSeq  uint
	blackoutSeq uint
	chaletSeq   uint
	pricingSeq  uint
	matrixSeq   uint
	userSeq     uint
}

// NewMemoryStore creates a new in-memory storage
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		bookings:  make(map[uint]*models.Booking),
		blackouts: make(map[uint]*models.BlackoutDate),
		chalets:   make(map[uint]*models.Chalet),
		pricing:   make(map[models.VisitType]*models.Pricing),
		matrix:    make(map[uint]*models.ChaletPricing),
		users:     make(map[uint]*models.AdminUser),
		settings:  make(map[string]*models.Setting),
		counters:  make(map[int]int),
	}
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// slotHeld reports whether an existing active booking blocks the given slot.
// A chalet-less booking blocks every chalet; when no chalet is asked for, any
// active booking on the date+type blocks.
func slotHeld(b *models.Booking, date time.Time, visitType models.VisitType, chaletID *uint) bool {
	if !b.IsActive() || b.VisitType != visitType || !sameDay(b.Date, date) {
		return false
	}
	if chaletID == nil || b.ChaletID == nil {
		return true
	}
	return *b.ChaletID == *chaletID
}

// Booking operations

func (m *MemoryStore) CreateBooking(booking *models.Booking) (*models.Booking, error) {
	m.bookingMu.Lock()
	defer m.bookingMu.Unlock()

	// Slot re-check and insert happen under the same lock, so the
	// check-then-act window of the availability endpoint cannot produce
	// duplicate active bookings here.
	for _, existing := range m.bookings {
		if slotHeld(existing, booking.Date, booking.VisitType, booking.ChaletID) {
			return nil, ErrSlotConflict
		}
	}

	m.bookingSeq++
	booking.ID = m.bookingSeq
	now := time.Now()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	m.bookings[booking.ID] = booking
	return booking, nil
}

func (m *MemoryStore) GetBookingByRef(ref string) (*models.Booking, error) {
	m.bookingMu.RLock()
	defer m.bookingMu.RUnlock()

	for _, b := range m.bookings {
		if b.BookingRef == ref {
			return b, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) GetBookingByID(id uint) (*models.Booking, error) {
	m.bookingMu.RLock()
	defer m.bookingMu.RUnlock()

	booking, exists := m.bookings[id]
	if !exists {
		return nil, ErrNotFound
	}
	return booking, nil
}

func (m *MemoryStore) ListBookings(filter *models.BookingListFilter) ([]*models.Booking, int64, error) {
	m.bookingMu.RLock()
	defer m.bookingMu.RUnlock()

	var matched []*models.Booking
	search := strings.ToLower(strings.TrimSpace(filter.Search))

	for _, b := range m.bookings {
		if filter.Status != "" && b.Status != filter.Status {
			continue
		}
		if filter.VisitType != nil && b.VisitType != *filter.VisitType {
			continue
		}
		if filter.DateFrom != nil && b.Date.Before(*filter.DateFrom) {
			continue
		}
		if filter.DateTo != nil && b.Date.After(*filter.DateTo) {
			continue
		}
		if search != "" {
			name := strings.ToLower(b.CustomerName)
			ref := strings.ToLower(b.BookingRef)
			if !strings.Contains(name, search) &&
				!strings.Contains(b.CustomerPhone, search) &&
				!strings.Contains(ref, search) {
				continue
			}
		}
		matched = append(matched, b)
	}

	// Newest created first
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 20
	}

	start := (page - 1) * limit
	if start >= len(matched) {
		return []*models.Booking{}, total, nil
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (m *MemoryStore) UpdateBooking(booking *models.Booking) error {
	m.bookingMu.Lock()
	defer m.bookingMu.Unlock()

	if _, exists := m.bookings[booking.ID]; !exists {
		return ErrNotFound
	}
	booking.UpdatedAt = time.Now()
	m.bookings[booking.ID] = booking
	return nil
}

func (m *MemoryStore) GetActiveBookingForSlot(date time.Time, visitType models.VisitType, chaletID *uint) (*models.Booking, error) {
	m.bookingMu.RLock()
	defer m.bookingMu.RUnlock()

	for _, b := range m.bookings {
		if slotHeld(b, date, visitType, chaletID) {
			return b, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) GetBookingsInRange(from, to time.Time) ([]*models.Booking, error) {
	m.bookingMu.RLock()
	defer m.bookingMu.RUnlock()

	var result []*models.Booking
	for _, b := range m.bookings {
		if b.Date.Before(from) || b.Date.After(to) {
			continue
		}
		result = append(result, b)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Date.Before(result[j].Date)
	})
	return result, nil
}

func (m *MemoryStore) CountBookingsByStatus() (map[string]int64, error) {
	m.bookingMu.RLock()
	defer m.bookingMu.RUnlock()

	counts := make(map[string]int64)
	for _, b := range m.bookings {
		counts[b.Status]++
	}
	return counts, nil
}

// Blackout operations

func (m *MemoryStore) CreateBlackout(blackout *models.BlackoutDate) (*models.BlackoutDate, error) {
	m.blackoutMu.Lock()
	defer m.blackoutMu.Unlock()

	m.blackoutSeq++
	blackout.ID = m.blackoutSeq
	blackout.CreatedAt = time.Now()
	m.blackouts[blackout.ID] = blackout
	return blackout, nil
}

func (m *MemoryStore) DeleteBlackout(id uint) error {
	m.blackoutMu.Lock()
	defer m.blackoutMu.Unlock()

	if _, exists := m.blackouts[id]; !exists {
		return ErrNotFound
	}
	delete(m.blackouts, id)
	return nil
}

func (m *MemoryStore) GetBlackoutsForDate(date time.Time) ([]*models.BlackoutDate, error) {
	m.blackoutMu.RLock()
	defer m.blackoutMu.RUnlock()

	var result []*models.BlackoutDate
	for _, b := range m.blackouts {
		if sameDay(b.Date, date) {
			result = append(result, b)
		}
	}
	return result, nil
}

func (m *MemoryStore) GetBlackoutsInRange(from, to time.Time) ([]*models.BlackoutDate, error) {
	m.blackoutMu.RLock()
	defer m.blackoutMu.RUnlock()

	var result []*models.BlackoutDate
	for _, b := range m.blackouts {
		if b.Date.Before(from) || b.Date.After(to) {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

func (m *MemoryStore) ListBlackouts() ([]*models.BlackoutDate, error) {
	m.blackoutMu.RLock()
	defer m.blackoutMu.RUnlock()

	result := make([]*models.BlackoutDate, 0, len(m.blackouts))
	for _, b := range m.blackouts {
		result = append(result, b)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Date.Before(result[j].Date)
	})
	return result, nil
}

// Counter operations

func (m *MemoryStore) NextBookingSeq(year int) (int, error) {
	m.counterMu.Lock()
	defer m.counterMu.Unlock()

	m.counters[year]++
	return m.counters[year], nil
}

// Chalet operations

func (m *MemoryStore) CreateChalet(chalet *models.Chalet) (*models.Chalet, error) {
	m.chaletMu.Lock()
	defer m.chaletMu.Unlock()

	m.chaletSeq++
	chalet.ID = m.chaletSeq
	now := time.Now()
	chalet.CreatedAt = now
	chalet.UpdatedAt = now
	m.chalets[chalet.ID] = chalet
	return chalet, nil
}

func (m *MemoryStore) GetChalet(id uint) (*models.Chalet, error) {
	m.chaletMu.RLock()
	defer m.chaletMu.RUnlock()

	chalet, exists := m.chalets[id]
	if !exists {
		return nil, ErrNotFound
	}
	return chalet, nil
}

func (m *MemoryStore) GetChaletByName(name string) (*models.Chalet, error) {
	m.chaletMu.RLock()
	defer m.chaletMu.RUnlock()

	for _, c := range m.chalets {
		if c.NameAr == name || strings.EqualFold(c.NameEn, name) || c.Slug == name {
			return c, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) ListChalets(activeOnly bool) ([]*models.Chalet, error) {
	m.chaletMu.RLock()
	defer m.chaletMu.RUnlock()

	var result []*models.Chalet
	for _, c := range m.chalets {
		if activeOnly && !c.IsActive {
			continue
		}
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].SortOrder != result[j].SortOrder {
			return result[i].SortOrder < result[j].SortOrder
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (m *MemoryStore) UpdateChalet(chalet *models.Chalet) error {
	m.chaletMu.Lock()
	defer m.chaletMu.Unlock()

	if _, exists := m.chalets[chalet.ID]; !exists {
		return ErrNotFound
	}
	chalet.UpdatedAt = time.Now()
	m.chalets[chalet.ID] = chalet
	return nil
}

func (m *MemoryStore) DeleteChalet(id uint) error {
	m.chaletMu.Lock()
	defer m.chaletMu.Unlock()

	if _, exists := m.chalets[id]; !exists {
		return ErrNotFound
	}
	delete(m.chalets, id)
	return nil
}

// Pricing operations

func (m *MemoryStore) GetPricing(visitType models.VisitType) (*models.Pricing, error) {
	m.pricingMu.RLock()
	defer m.pricingMu.RUnlock()

	p, exists := m.pricing[visitType]
	if !exists {
		return nil, ErrNotFound
	}
	return p, nil
}

func (m *MemoryStore) ListPricing() ([]*models.Pricing, error) {
	m.pricingMu.RLock()
	defer m.pricingMu.RUnlock()

	var result []*models.Pricing
	for _, p := range m.pricing {
		result = append(result, p)
	}
	return result, nil
}

func (m *MemoryStore) UpsertPricing(pricing *models.Pricing) error {
	m.pricingMu.Lock()
	defer m.pricingMu.Unlock()

	if existing, ok := m.pricing[pricing.VisitType]; ok {
		pricing.ID = existing.ID
	} else {
		m.pricingSeq++
		pricing.ID = m.pricingSeq
	}
	pricing.UpdatedAt = time.Now()
	m.pricing[pricing.VisitType] = pricing
	return nil
}

func (m *MemoryStore) GetChaletPricing(chaletID uint, visitType models.VisitType) (*models.ChaletPricing, error) {
	m.pricingMu.RLock()
	defer m.pricingMu.RUnlock()

	for _, p := range m.matrix {
		if p.ChaletID == chaletID && p.VisitType == visitType {
			return p, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) ListChaletPricing() ([]*models.ChaletPricing, error) {
	m.pricingMu.RLock()
	defer m.pricingMu.RUnlock()

	var result []*models.ChaletPricing
	for _, p := range m.matrix {
		result = append(result, p)
	}
	return result, nil
}

func (m *MemoryStore) UpsertChaletPricing(pricing *models.ChaletPricing) error {
	m.pricingMu.Lock()
	defer m.pricingMu.Unlock()

	for id, p := range m.matrix {
		if p.ChaletID == pricing.ChaletID && p.VisitType == pricing.VisitType {
			pricing.ID = id
			pricing.UpdatedAt = time.Now()
			m.matrix[id] = pricing
			return nil
		}
	}
	m.matrixSeq++
	pricing.ID = m.matrixSeq
	pricing.UpdatedAt = time.Now()
	m.matrix[pricing.ID] = pricing
	return nil
}

// Admin user operations

func (m *MemoryStore) CreateAdminUser(user *models.AdminUser) (*models.AdminUser, error) {
	m.userMu.Lock()
	defer m.userMu.Unlock()

	for _, u := range m.users {
		if strings.EqualFold(u.Email, user.Email) {
			return nil, ErrDuplicate
		}
	}

	m.userSeq++
	user.ID = m.userSeq
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	m.users[user.ID] = user
	return user, nil
}

func (m *MemoryStore) GetAdminUser(id uint) (*models.AdminUser, error) {
	m.userMu.RLock()
	defer m.userMu.RUnlock()

	user, exists := m.users[id]
	if !exists {
		return nil, ErrNotFound
	}
	return user, nil
}

func (m *MemoryStore) GetAdminUserByEmail(email string) (*models.AdminUser, error) {
	m.userMu.RLock()
	defer m.userMu.RUnlock()

	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) ListAdminUsers() ([]*models.AdminUser, error) {
	m.userMu.RLock()
	defer m.userMu.RUnlock()

	result := make([]*models.AdminUser, 0, len(m.users))
	for _, u := range m.users {
		result = append(result, u)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *MemoryStore) UpdateAdminUser(user *models.AdminUser) error {
	m.userMu.Lock()
	defer m.userMu.Unlock()

	if _, exists := m.users[user.ID]; !exists {
		return ErrNotFound
	}
	user.UpdatedAt = time.Now()
	m.users[user.ID] = user
	return nil
}

// Audit log operations

func (m *MemoryStore) CreateAuditLog(entry *models.AuditLog) error {
	m.auditMu.Lock()
	defer m.auditMu.Unlock()

	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	m.audit = append(m.audit, entry)
	return nil
}

func (m *MemoryStore) ListAuditLogs(filter *models.AuditListFilter) ([]*models.AuditLog, int64, error) {
	m.auditMu.RLock()
	defer m.auditMu.RUnlock()

	var matched []*models.AuditLog
	for _, e := range m.audit {
		if filter.ActorEmail != "" && !strings.EqualFold(e.ActorEmail, filter.ActorEmail) {
			continue
		}
		if filter.Entity != "" && e.Entity != filter.Entity {
			continue
		}
		if filter.Action != "" && e.Action != filter.Action {
			continue
		}
		if filter.DateFrom != nil && e.CreatedAt.Before(*filter.DateFrom) {
			continue
		}
		if filter.DateTo != nil && e.CreatedAt.After(*filter.DateTo) {
			continue
		}
		matched = append(matched, e)
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 50
	}

	start := (page - 1) * limit
	if start >= len(matched) {
		return []*models.AuditLog{}, total, nil
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

// Settings operations

func (m *MemoryStore) GetSetting(key string) (*models.Setting, error) {
	m.settingMu.RLock()
	defer m.settingMu.RUnlock()

	s, exists := m.settings[key]
	if !exists {
		return nil, ErrNotFound
	}
	return s, nil
}

func (m *MemoryStore) SetSetting(key, value string) error {
	m.settingMu.Lock()
	defer m.settingMu.Unlock()

	if existing, ok := m.settings[key]; ok {
		existing.Value = value
		existing.UpdatedAt = time.Now()
		return nil
	}
	m.settings[key] = &models.Setting{
		ID:        uint(len(m.settings) + 1),
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now(),
	}
	return nil
}

func (m *MemoryStore) ListSettings() ([]*models.Setting, error) {
	m.settingMu.RLock()
	defer m.settingMu.RUnlock()

	result := make([]*models.Setting, 0, len(m.settings))
	for _, s := range m.settings {
		result = append(result, s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Key < result[j].Key })
	return result, nil
}
