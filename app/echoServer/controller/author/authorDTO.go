package author

import (
	"webbooks/model"
)

// AuthorForm is the author create/edit form.
type AuthorForm struct {
	FirstName   string `json:"first_name" validate:"required,max=100"`
	LastName    string `json:"last_name" validate:"required,max=100"`
	DateOfBirth string `json:"date_of_birth" validate:"required,isodate"`
	DateOfDeath string `json:"date_of_death" validate:"required,isodate"`
}

// toModel assumes the form passed validation.
func (f AuthorForm) toModel(id int64) *model.Author {
	born, _ := model.ParseDate(f.DateOfBirth)
	died, _ := model.ParseDate(f.DateOfDeath)
	return &model.Author{
		ID:          id,
		FirstName:   f.FirstName,
		LastName:    f.LastName,
		DateOfBirth: &born,
		DateOfDeath: &died,
	}
}

func formOf(a *model.Author) AuthorForm {
	f := AuthorForm{FirstName: a.FirstName, LastName: a.LastName}
	if a.DateOfBirth != nil {
		f.DateOfBirth = a.DateOfBirth.String()
	}
	if a.DateOfDeath != nil {
		f.DateOfDeath = a.DateOfDeath.String()
	}
	return f
}
