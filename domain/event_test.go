package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanRSVP(t *testing.T) {
	start := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	before := start.Add(-24 * time.Hour)
	after := start.Add(time.Hour)

	t.Run("invited may confirm or decline before start", func(t *testing.T) {
		p := EventParticipation{Status: RSVPInvited}
		assert.True(t, p.CanRSVP(RSVPConfirmed, start, before))
		assert.True(t, p.CanRSVP(RSVPDeclined, start, before))
	})

	t.Run("confirmed and declined may flip before start", func(t *testing.T) {
		p := EventParticipation{Status: RSVPConfirmed}
		assert.True(t, p.CanRSVP(RSVPDeclined, start, before))

		p.Status = RSVPDeclined
		assert.True(t, p.CanRSVP(RSVPConfirmed, start, before))
	})

	t.Run("no confirm or decline once the event started", func(t *testing.T) {
		p := EventParticipation{Status: RSVPInvited}
		assert.False(t, p.CanRSVP(RSVPConfirmed, start, after))
		assert.False(t, p.CanRSVP(RSVPDeclined, start, after))
	})

	t.Run("attendance only once the event started", func(t *testing.T) {
		p := EventParticipation{Status: RSVPConfirmed}
		assert.False(t, p.CanRSVP(RSVPAttended, start, before))
		assert.True(t, p.CanRSVP(RSVPAttended, start, after))
		assert.True(t, p.CanRSVP(RSVPNoShow, start, after))
	})

	t.Run("attended and no_show are final", func(t *testing.T) {
		p := EventParticipation{Status: RSVPAttended}
		assert.False(t, p.CanRSVP(RSVPConfirmed, start, after))
		assert.False(t, p.CanRSVP(RSVPNoShow, start, after))

		p.Status = RSVPNoShow
		assert.False(t, p.CanRSVP(RSVPAttended, start, after))
	})
}
