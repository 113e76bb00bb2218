package domain

import (
	"testing"
	"time"
)

func TestInvitationOpen(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	cases := map[string]struct {
		inv  Invitation
		want bool
	}{
		"active_no_expiry": {Invitation{Active: true}, true},
		"inactive":         {Invitation{Active: false}, false},
		"before_expiry":    {Invitation{Active: true, ExpiresAt: now.Add(time.Hour)}, true},
		"past_expiry":      {Invitation{Active: true, ExpiresAt: now.Add(-time.Hour)}, false},
		"expired_inactive": {Invitation{Active: false, ExpiresAt: now.Add(time.Hour)}, false},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if got := tc.inv.Open(now); got != tc.want {
				t.Fatalf("Open = %v, want %v", got, tc.want)
			}
		})
	}
}
