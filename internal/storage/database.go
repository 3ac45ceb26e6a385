package storage

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/nahlchatbot/NahlBooking-Farm-sub000/internal/models"
)

// DatabaseStore implements Store using GORM/PostgreSQL
type DatabaseStore struct {
	db *gorm.DB
}

// NewDatabaseStore creates a new database-backed store
func NewDatabaseStore(db *gorm.DB) *DatabaseStore {
	return &DatabaseStore{db: db}
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	}
	return err
}

// slotQuery narrows a booking query to active bookings holding the given
// slot. A chalet-less booking holds the slot for every chalet.
func slotQuery(db *gorm.DB, date time.Time, visitType models.VisitType, chaletID *uint) *gorm.DB {
	q := db.Model(&models.Booking{}).
		Where("date = ?", date).
		Where("visit_type = ?", visitType).
		Where("status IN ?", models.ActiveBookingStatuses)
	if chaletID != nil {
		q = q.Where("(chalet_id = ? OR chalet_id IS NULL)", *chaletID)
	}
	return q
}

// Booking operations

// CreateBooking inserts the booking after re-checking slot exclusivity inside
// the same transaction. The partial unique index on active bookings backstops
// the check, so a lost race surfaces as ErrSlotConflict rather than a
// duplicate active booking.
func (d *DatabaseStore) CreateBooking(booking *models.Booking) (*models.Booking, error) {
	err := d.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := slotQuery(tx, booking.Date, booking.VisitType, booking.ChaletID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrSlotConflict
		}
		return tx.Create(booking).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSlotConflict
		}
		return nil, err
	}
	return booking, nil
}

func (d *DatabaseStore) GetBookingByRef(ref string) (*models.Booking, error) {
	var booking models.Booking
	err := d.db.Preload("Chalet").Where("booking_ref = ?", ref).First(&booking).Error
	if err != nil {
		return nil, translate(err)
	}
	return &booking, nil
}

func (d *DatabaseStore) GetBookingByID(id uint) (*models.Booking, error) {
	var booking models.Booking
	err := d.db.Preload("Chalet").First(&booking, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &booking, nil
}

func (d *DatabaseStore) ListBookings(filter *models.BookingListFilter) ([]*models.Booking, int64, error) {
	q := d.db.Model(&models.Booking{})

	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.VisitType != nil {
		q = q.Where("visit_type = ?", *filter.VisitType)
	}
	if filter.DateFrom != nil {
		q = q.Where("date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		q = q.Where("date <= ?", *filter.DateTo)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where("customer_name ILIKE ? OR customer_phone LIKE ? OR booking_ref ILIKE ?",
			pattern, pattern, pattern)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 20
	}

	var bookings []*models.Booking
	err := q.Preload("Chalet").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&bookings).Error
	if err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

func (d *DatabaseStore) UpdateBooking(booking *models.Booking) error {
	return translate(d.db.Save(booking).Error)
}

func (d *DatabaseStore) GetActiveBookingForSlot(date time.Time, visitType models.VisitType, chaletID *uint) (*models.Booking, error) {
	var booking models.Booking
	err := slotQuery(d.db, date, visitType, chaletID).First(&booking).Error
	if err != nil {
		return nil, translate(err)
	}
	return &booking, nil
}

func (d *DatabaseStore) GetBookingsInRange(from, to time.Time) ([]*models.Booking, error) {
	var bookings []*models.Booking
	err := d.db.Preload("Chalet").
		Where("date >= ? AND date <= ?", from, to).
		Order("date ASC").
		Find(&bookings).Error
	return bookings, err
}

func (d *DatabaseStore) CountBookingsByStatus() (map[string]int64, error) {
	type row struct {
		Status string
		Count  int64
	}
	var rows []row
	err := d.db.Model(&models.Booking{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}

// Blackout operations

func (d *DatabaseStore) CreateBlackout(blackout *models.BlackoutDate) (*models.BlackoutDate, error) {
	if err := d.db.Create(blackout).Error; err != nil {
		return nil, translate(err)
	}
	return blackout, nil
}

func (d *DatabaseStore) DeleteBlackout(id uint) error {
	res := d.db.Delete(&models.BlackoutDate{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (d *DatabaseStore) GetBlackoutsForDate(date time.Time) ([]*models.BlackoutDate, error) {
	var blackouts []*models.BlackoutDate
	err := d.db.Where("date = ?", date).Find(&blackouts).Error
	return blackouts, err
}

func (d *DatabaseStore) GetBlackoutsInRange(from, to time.Time) ([]*models.BlackoutDate, error) {
	var blackouts []*models.BlackoutDate
	err := d.db.Where("date >= ? AND date <= ?", from, to).Find(&blackouts).Error
	return blackouts, err
}

func (d *DatabaseStore) ListBlackouts() ([]*models.BlackoutDate, error) {
	var blackouts []*models.BlackoutDate
	err := d.db.Preload("Chalet").Order("date ASC").Find(&blackouts).Error
	return blackouts, err
}

// Counter operations

// NextBookingSeq atomically increments the per-year counter and returns the
// post-increment value. Single-row upsert, so concurrent allocations never
// hand out the same sequence.
func (d *DatabaseStore) NextBookingSeq(year int) (int, error) {
	var seq int
	err := d.db.Raw(`
		INSERT INTO booking_counters (year, counter) VALUES (?, 1)
		ON CONFLICT (year) DO UPDATE SET counter = booking_counters.counter + 1
		RETURNING counter`, year).Scan(&seq).Error
	if err != nil {
		return 0, err
	}
	return seq, nil
}

// Chalet operations

func (d *DatabaseStore) CreateChalet(chalet *models.Chalet) (*models.Chalet, error) {
	if err := d.db.Create(chalet).Error; err != nil {
		return nil, translate(err)
	}
	return chalet, nil
}

func (d *DatabaseStore) GetChalet(id uint) (*models.Chalet, error) {
	var chalet models.Chalet
	if err := d.db.First(&chalet, id).Error; err != nil {
		return nil, translate(err)
	}
	return &chalet, nil
}

func (d *DatabaseStore) GetChaletByName(name string) (*models.Chalet, error) {
	var chalet models.Chalet
	err := d.db.Where("name_ar = ? OR name_en ILIKE ? OR slug = ?", name, name, name).
		First(&chalet).Error
	if err != nil {
		return nil, translate(err)
	}
	return &chalet, nil
}

func (d *DatabaseStore) ListChalets(activeOnly bool) ([]*models.Chalet, error) {
	q := d.db.Order("sort_order ASC, id ASC")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var chalets []*models.Chalet
	err := q.Find(&chalets).Error
	return chalets, err
}

func (d *DatabaseStore) UpdateChalet(chalet *models.Chalet) error {
	return translate(d.db.Save(chalet).Error)
}

func (d *DatabaseStore) DeleteChalet(id uint) error {
	res := d.db.Delete(&models.Chalet{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Pricing operations

func (d *DatabaseStore) GetPricing(visitType models.VisitType) (*models.Pricing, error) {
	var pricing models.Pricing
	err := d.db.Where("visit_type = ?", visitType).First(&pricing).Error
	if err != nil {
		return nil, translate(err)
	}
	return &pricing, nil
}

func (d *DatabaseStore) ListPricing() ([]*models.Pricing, error) {
	var pricing []*models.Pricing
	err := d.db.Find(&pricing).Error
	return pricing, err
}

func (d *DatabaseStore) UpsertPricing(pricing *models.Pricing) error {
	var existing models.Pricing
	err := d.db.Where("visit_type = ?", pricing.VisitType).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return d.db.Create(pricing).Error
	}
	if err != nil {
		return err
	}
	pricing.ID = existing.ID
	return d.db.Save(pricing).Error
}

func (d *DatabaseStore) GetChaletPricing(chaletID uint, visitType models.VisitType) (*models.ChaletPricing, error) {
	var pricing models.ChaletPricing
	err := d.db.Where("chalet_id = ? AND visit_type = ?", chaletID, visitType).
		First(&pricing).Error
	if err != nil {
		return nil, translate(err)
	}
	return &pricing, nil
}

func (d *DatabaseStore) ListChaletPricing() ([]*models.ChaletPricing, error) {
	var pricing []*models.ChaletPricing
	err := d.db.Preload("Chalet").Find(&pricing).Error
	return pricing, err
}

func (d *DatabaseStore) UpsertChaletPricing(pricing *models.ChaletPricing) error {
	var existing models.ChaletPricing
	err := d.db.Where("chalet_id = ? AND visit_type = ?", pricing.ChaletID, pricing.VisitType).
		First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return d.db.Create(pricing).Error
	}
	if err != nil {
		return err
	}
	pricing.ID = existing.ID
	return d.db.Save(pricing).Error
}

// Admin user operations

func (d *DatabaseStore) CreateAdminUser(user *models.AdminUser) (*models.AdminUser, error) {
	if err := d.db.Create(user).Error; err != nil {
		return nil, translate(err)
	}
	return user, nil
}

func (d *DatabaseStore) GetAdminUser(id uint) (*models.AdminUser, error) {
	var user models.AdminUser
	if err := d.db.First(&user, id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (d *DatabaseStore) GetAdminUserByEmail(email string) (*models.AdminUser, error) {
	var user models.AdminUser
	if err := d.db.Where("LOWER(email) = LOWER(?)", email).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (d *DatabaseStore) ListAdminUsers() ([]*models.AdminUser, error) {
	var users []*models.AdminUser
	err := d.db.Order("id ASC").Find(&users).Error
	return users, err
}

func (d *DatabaseStore) UpdateAdminUser(user *models.AdminUser) error {
	return translate(d.db.Save(user).Error)
}

// Audit log operations

func (d *DatabaseStore) CreateAuditLog(entry *models.AuditLog) error {
	return d.db.Create(entry).Error
}

func (d *DatabaseStore) ListAuditLogs(filter *models.AuditListFilter) ([]*models.AuditLog, int64, error) {
	q := d.db.Model(&models.AuditLog{})

	if filter.ActorEmail != "" {
		q = q.Where("LOWER(actor_email) = LOWER(?)", filter.ActorEmail)
	}
	if filter.Entity != "" {
		q = q.Where("entity = ?", filter.Entity)
	}
	if filter.Action != "" {
		q = q.Where("action = ?", filter.Action)
	}
	if filter.DateFrom != nil {
		q = q.Where("created_at >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		q = q.Where("created_at <= ?", *filter.DateTo)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 50
	}

	var entries []*models.AuditLog
	err := q.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

// Settings operations

func (d *DatabaseStore) GetSetting(key string) (*models.Setting, error) {
	var setting models.Setting
	if err := d.db.Where("key = ?", key).First(&setting).Error; err != nil {
		return nil, translate(err)
	}
	return &setting, nil
}

func (d *DatabaseStore) SetSetting(key, value string) error {
	var existing models.Setting
	err := d.db.Where("key = ?", key).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return d.db.Create(&models.Setting{Key: key, Value: value}).Error
	}
	if err != nil {
		return err
	}
	existing.Value = value
	return d.db.Save(&existing).Error
}

func (d *DatabaseStore) ListSettings() ([]*models.Setting, error) {
	var settings []*models.Setting
	err := d.db.Order("key ASC").Find(&settings).Error
	return settings, err
}
