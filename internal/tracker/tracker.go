// Package tracker persists the date of the last session whose votes were
// published, so a run can tell whether the latest session is new.
package tracker

import "context"

// DefaultPath is where the file store keeps the date inside the container.
const DefaultPath = "/app/data/last_vote_day.txt"

// Store reads and writes the last processed session date. Read reports false
// when nothing has been written yet or the value cannot be read.
type Store interface {
	Read(ctx context.Context) (string, bool)
	Write(ctx context.Context, date string) error
}
