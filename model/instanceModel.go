// model/instanceModel.go
package model

import (
	"fmt"
	"strconv"
	"time"
)

// Seeded status names.
const (
	StatusAvailable   = "Available"
	StatusOnLoan      = "On loan"
	StatusReserved    = "Reserved"
	StatusMaintenance = "Maintenance"
)

type Status struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// UserRef is the borrower as shown on a copy.
type UserRef struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// BookInstance is a physical, loanable copy of a book.
type BookInstance struct {
	ID              int64    `json:"id"`
	BookID          *int64   `json:"book_id,omitempty"`
	BookTitle       string   `json:"book_title,omitempty"`
	InventoryNumber *string  `json:"inventory_number,omitempty"`
	Imprint         string   `json:"imprint"`
	StatusID        *int64   `json:"status_id,omitempty"`
	StatusName      string   `json:"status,omitempty"`
	DueBack         *Date    `json:"due_back,omitempty"`
	Borrower        *UserRef `json:"borrower,omitempty"`
	Overdue         bool     `json:"is_overdue"`
}

// IsOverdue reports whether due_back is set and strictly before the
// calendar date of now.
func (bi *BookInstance) IsOverdue(now time.Time) bool {
	if bi.DueBack == nil {
		return false
	}
	return bi.DueBack.Before(DateOf(now))
}

// Stamp fills the derived is_overdue field for rendering.
func (bi *BookInstance) Stamp(now time.Time) {
	bi.Overdue = bi.IsOverdue(now)
}

func (bi BookInstance) String() string {
	inv := ""
	if bi.InventoryNumber != nil {
		inv = *bi.InventoryNumber
	}
	return fmt.Sprintf("%s %s %s", inv, bi.BookTitle, bi.StatusName)
}

// InstanceFilter narrows the admin copy list.
type InstanceFilter struct {
	StatusID   *int64
	BorrowerID *int64
	BookID     *int64
	// OverdueOn, when set, keeps only copies due strictly before that date.
	OverdueOn *Date
}

func itoa(id int64) string { return strconv.FormatInt(id, 10) }
