package livesync

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"eventify-api/domain"
)

func filterRows() Snapshot {
	return Snapshot{
		Rows: []domain.RSVP{
			{GuestName: "Ada", GuestEmail: "ada@example.com", Status: domain.RSVPYes},
			{GuestName: "Bayo", Status: domain.RSVPNo},
			{GuestName: "Chidi", GuestEmail: "chidi@example.com", Status: domain.RSVPMaybe},
		},
		Statistics: domain.RSVPStatistics{Total: 3, Yes: 1, No: 1, Maybe: 1},
	}
}

func TestFilterQueryCaseInsensitive(t *testing.T) {
	got := Filter(filterRows(), "ada", StatusAll)
	assert.Len(t, got.Rows, 1)
	assert.Equal(t, "Ada", got.Rows[0].GuestName)
}

func TestFilterByStatusOnly(t *testing.T) {
	got := Filter(filterRows(), "", domain.RSVPNo)
	assert.Len(t, got.Rows, 1)
	assert.Equal(t, "Bayo", got.Rows[0].GuestName)
}

func TestFilterMatchesEmail(t *testing.T) {
	got := Filter(filterRows(), "CHIDI@", StatusAll)
	assert.Len(t, got.Rows, 1)
	assert.Equal(t, "Chidi", got.Rows[0].GuestName)
}

func TestFilterPredicatesAreAnded(t *testing.T) {
	got := Filter(filterRows(), "ada", domain.RSVPNo)
	assert.Empty(t, got.Rows)
}

func TestFilterEmptyQueryMatchesEverything(t *testing.T) {
	got := Filter(filterRows(), "", "")
	assert.Len(t, got.Rows, 3)
}

func TestFilterKeepsStatistics(t *testing.T) {
	got := Filter(filterRows(), "ada", StatusAll)
	assert.Equal(t, 3, got.Statistics.Total, "statistics describe the full set, not the visible one")
}
