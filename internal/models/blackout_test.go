package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBlackoutBlocks(t *testing.T) {
	date := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	day := VisitTypeDay
	chaletOne := uint(1)
	chaletTwo := uint(2)

	global := &BlackoutDate{Date: date}
	assert.True(t, global.Blocks(VisitTypeDay, nil))
	assert.True(t, global.Blocks(VisitTypeOvernight, &chaletOne))

	dayOnly := &BlackoutDate{Date: date, VisitType: &day}
	assert.True(t, dayOnly.Blocks(VisitTypeDay, nil))
	assert.False(t, dayOnly.Blocks(VisitTypeOvernight, nil))

	scoped := &BlackoutDate{Date: date, ChaletID: &chaletOne}
	assert.True(t, scoped.Blocks(VisitTypeDay, &chaletOne))
	assert.False(t, scoped.Blocks(VisitTypeDay, &chaletTwo))
	// chalet-scoped maintenance does not block a booking with no chalet
	assert.False(t, scoped.Blocks(VisitTypeDay, nil))
}

func TestBookingIsActive(t *testing.T) {
	assert.True(t, (&Booking{Status: BookingStatusPending}).IsActive())
	assert.True(t, (&Booking{Status: BookingStatusConfirmed}).IsActive())
	assert.False(t, (&Booking{Status: BookingStatusCancelled}).IsActive())
	assert.False(t, (&Booking{Status: BookingStatusCompleted}).IsActive())
}

func TestRoleAtLeast(t *testing.T) {
	assert.True(t, RoleAtLeast(RoleSuperAdmin, RoleAdmin))
	assert.True(t, RoleAtLeast(RoleAdmin, RoleAdmin))
	assert.False(t, RoleAtLeast(RoleViewer, RoleAdmin))
	assert.False(t, RoleAtLeast("BOGUS", RoleViewer))
}
