package models

import "github.com/google/uuid"

// assignID fills a zero primary key before insert; Postgres defaults are not
// relied on so the same models run against SQLite in tests.
func assignID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

// AllModels lists every table owned by the service, in dependency order.
func AllModels() []any {
	return []any{
		&Partner{},
		&PartnerActivity{},
		&Venue{},
		&Device{},
		&Commission{},
		&Payment{},
		&DocumentTemplate{},
		&DocumentSubmission{},
		&Article{},
		&Product{},
		&Prospect{},
		&ProspectActivity{},
	}
}
