package booking

import (
	"time"

	"tennis-space/backend/internal/domain/apperr"
	"tennis-space/backend/internal/domain/club"
	"tennis-space/backend/internal/utils"
)

// Policy evaluates the club's booking rules. Only the time range check runs
// when Enforce is false; clubs then behave as if they had no rules at all.
type Policy struct {
	Enforce bool
	// Location is the club's wall clock for operating hours and daily caps.
	// Nil means UTC.
	Location *time.Location
}

// CheckRange enforces startTime < endTime.
func CheckRange(b CourtBooking) error {
	if b.StartTime >= b.EndTime {
		return apperr.New(apperr.ErrValidation, "startTime must be before endTime")
	}
	return nil
}

// CheckCreate validates a new booking against the club settings. sameUser
// holds the booker's existing bookings and feeds the daily hour cap.
func (p Policy) CheckCreate(c *club.TennisClub, b CourtBooking, sameUser []CourtBooking, now time.Time) error {
	if err := CheckRange(b); err != nil {
		return err
	}
	if !p.Enforce {
		return nil
	}

	court, ok := c.Court(b.CourtID)
	if !ok {
		return apperr.Newf(apperr.ErrPolicy, "court %s does not exist in club %s", b.CourtID, c.ID)
	}
	if !court.IsActive {
		return apperr.Newf(apperr.ErrPolicy, "court %s is not active", court.Name)
	}

	start := time.UnixMilli(b.StartTime).In(p.loc())
	end := time.UnixMilli(b.EndTime).In(p.loc())
	if start.Before(now) {
		return apperr.New(apperr.ErrPolicy, "bookings cannot start in the past")
	}
	settings := c.BookingSettings
	if limit := now.AddDate(0, 0, settings.MaxAdvanceBookingDays); start.After(limit) {
		return apperr.Newf(apperr.ErrPolicy, "bookings can be made at most %d days in advance", settings.MaxAdvanceBookingDays)
	}
	if err := p.checkOpen(c.OperatingHours, start, end); err != nil {
		return err
	}

	if settings.MaxHoursPerUserPerDay > 0 {
		total := b.DurationMillis()
		for _, other := range sameUser {
			if other.Status != StatusConfirmed || other.ID == b.ID {
				continue
			}
			if sameDay(time.UnixMilli(other.StartTime).In(p.loc()), start) {
				total += other.DurationMillis()
			}
		}
		if total > int64(settings.MaxHoursPerUserPerDay)*time.Hour.Milliseconds() {
			return apperr.Newf(apperr.ErrPolicy, "at most %d hours per day can be booked", settings.MaxHoursPerUserPerDay)
		}
	}
	return nil
}

// CheckCancel validates a cancellation by uid. Club admins may always cancel;
// bookers are bound by allowCancellation and the cancellation deadline.
func (p Policy) CheckCancel(c *club.TennisClub, b CourtBooking, uid string, now time.Time) error {
	if !p.Enforce {
		return nil
	}
	if b.Status != StatusConfirmed {
		return apperr.Newf(apperr.ErrPolicy, "booking is %s and cannot be cancelled", b.Status)
	}
	if c.IsAdmin(uid) {
		return nil
	}
	if uid != b.BookedBy {
		return apperr.New(apperr.ErrForbidden, "only the booker or a club admin can cancel a booking")
	}
	settings := c.BookingSettings
	if !settings.AllowCancellation {
		return apperr.New(apperr.ErrPolicy, "this club does not allow cancellations")
	}
	deadline := time.UnixMilli(b.StartTime).Add(-time.Duration(settings.CancellationDeadlineHours) * time.Hour)
	if now.After(deadline) {
		return apperr.Newf(apperr.ErrPolicy, "bookings must be cancelled at least %d hours in advance", settings.CancellationDeadlineHours)
	}
	return nil
}

func (p Policy) checkOpen(h club.OperatingHours, start, end time.Time) error {
	if !h.OpenOn(isoWeekday(start)) {
		return apperr.Newf(apperr.ErrPolicy, "club is closed on %s", start.Weekday())
	}
	open, err := utils.ParseHHMM(h.OpenTime)
	if err != nil {
		return apperr.Newf(apperr.ErrPolicy, "club openTime %q: %v", h.OpenTime, err)
	}
	closing, err := utils.ParseHHMM(h.CloseTime)
	if err != nil {
		return apperr.Newf(apperr.ErrPolicy, "club closeTime %q: %v", h.CloseTime, err)
	}
	from := minuteOfDay(start)
	to := minuteOfDay(end)
	if !sameDay(start, end) {
		// only a booking ending exactly at midnight may cross the date line
		if to != 0 || !sameDay(start, end.Add(-time.Minute)) {
			return apperr.New(apperr.ErrPolicy, "bookings must start and end on the same day")
		}
		to = 24 * 60
	}
	if from < open || to > closing {
		return apperr.Newf(apperr.ErrPolicy, "bookings must be within opening hours %s-%s", h.OpenTime, h.CloseTime)
	}
	return nil
}

func (p Policy) loc() *time.Location {
	if p.Location == nil {
		return time.UTC
	}
	return p.Location
}

func isoWeekday(t time.Time) int {
	return (int(t.Weekday())+6)%7 + 1
}

func minuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
