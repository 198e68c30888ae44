package controllers

import "time"

type QueryTime struct {
	At time.Time `form:"at" example:"2024-05-15T12:00:00Z"` // Reference time, defaults to now
}

type QueryMonth struct {
	Month string `form:"month" example:"2024-05"` // Year and month, defaults to the current month
}

// TransactionQueryFilter contains the fields transactions can be filtered on.
type TransactionQueryFilter struct {
	Source   string    `form:"source" example:"3"`                   // By source ID
	Category string    `form:"category" example:"food"`              // By category ID
	Type     string    `form:"type" example:"EXPENSE"`               // By transaction type
	From     time.Time `form:"from" example:"2024-05-01T00:00:00Z"`  // Transactions at or after this time
	Until    time.Time `form:"until" example:"2024-06-01T00:00:00Z"` // Transactions before this time
	Note     string    `form:"note" example:"Lunch*"`                // Glob pattern the note must match
}
