package booking

import (
	"time"

	"roomscheduler/internal/domain"
)

// Overlaps is the half-open interval test for [s1,e1) and [s2,e2).
// Intervals that only touch (e1 == s2) do not overlap.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && e1.After(s2)
}

// ValidDuration holds when end is strictly after start + MinBookingDuration.
func ValidDuration(start, end time.Time) bool {
	return end.After(start.Add(domain.MinBookingDuration))
}

// CheckCancel decides whether requester may cancel b at now.
func CheckCancel(b *domain.Booking, requester domain.Identity, now time.Time) error {
	isOwner := b.OwnerID == requester.UserID
	isAdmin := requester.IsAdmin()

	if !isOwner && !isAdmin {
		return ErrForbidden
	}
	if isAdmin {
		return nil
	}

	cutoff := b.StartAt.Add(-domain.CancellationWindow)
	if now.After(cutoff) {
		return ErrCancellationWindowClosed
	}
	return nil
}

// widen moves [start,end) to whole UTC seconds without shrinking it:
// start rounds down and end rounds up.
func widen(start, end time.Time) (time.Time, time.Time) {
	s := start.UTC().Truncate(time.Second)
	e := end.UTC().Truncate(time.Second)
	if e.Before(end) {
		e = e.Add(time.Second)
	}
	return s, e
}
