package instance

import "webbooks/model"

// InstanceForm is the admin copy form.
type InstanceForm struct {
	BookID          *int64 `json:"book_id" validate:"omitempty,gt=0"`
	InventoryNumber string `json:"inventory_number" validate:"max=20"`
	Imprint         string `json:"imprint" validate:"required,max=200"`
	StatusID        *int64 `json:"status_id" validate:"omitempty,gt=0"`
	DueBack         string `json:"due_back" validate:"omitempty,isodate"`
	BorrowerID      *int64 `json:"borrower_id" validate:"omitempty,gt=0"`
}

// LendForm records a loan.
type LendForm struct {
	BorrowerID int64  `json:"borrower_id" validate:"required,gt=0"`
	DueBack    string `json:"due_back" validate:"required,isodate"`
}

func (f InstanceForm) toModel(id int64) *model.BookInstance {
	bi := &model.BookInstance{
		ID:       id,
		BookID:   f.BookID,
		Imprint:  f.Imprint,
		StatusID: f.StatusID,
	}
	if f.InventoryNumber != "" {
		inv := f.InventoryNumber
		bi.InventoryNumber = &inv
	}
	if f.DueBack != "" {
		d, _ := model.ParseDate(f.DueBack)
		bi.DueBack = &d
	}
	if f.BorrowerID != nil {
		bi.Borrower = &model.UserRef{ID: *f.BorrowerID}
	}
	return bi
}
