package livesync

import "strings"

// StatusAll matches every row regardless of status.
const StatusAll = "all"

// Filter narrows rows to those matching both predicates: a
// case-insensitive substring match of query against guest name or email,
// and an exact status filter. An empty query matches everything, as does
// StatusAll (or an empty status). Filtering never touches the store.
func Filter(snapshot Snapshot, query, status string) Snapshot {
	q := strings.ToLower(strings.TrimSpace(query))
	filtered := snapshot.Rows[:0:0]
	for _, row := range snapshot.Rows {
		if q != "" &&
			!strings.Contains(strings.ToLower(row.GuestName), q) &&
			!strings.Contains(strings.ToLower(row.GuestEmail), q) {
			continue
		}
		if status != "" && status != StatusAll && row.Status != status {
			continue
		}
		filtered = append(filtered, row)
	}
	return Snapshot{Rows: filtered, Statistics: snapshot.Statistics}
}
