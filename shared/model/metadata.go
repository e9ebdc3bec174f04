package model

import "time"

// Metadata holds bookkeeping columns that never leave the persistence layer.
type Metadata struct {
	CreatedAt  time.Time `db:"created_at"`
	ModifiedAt time.Time `db:"modified_at"`
}
