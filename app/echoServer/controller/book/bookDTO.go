package book

import "webbooks/model"

// BookForm is the book create/update form.
type BookForm struct {
	Title      string  `json:"title" validate:"required,max=200"`
	GenreID    int64   `json:"genre_id" validate:"required,gt=0"`
	LanguageID int64   `json:"language_id" validate:"required,gt=0"`
	AuthorIDs  []int64 `json:"author_ids" validate:"required,min=1,dive,gt=0"`
	Summary    string  `json:"summary" validate:"required,max=1000"`
	ISBN       string  `json:"isbn" validate:"required,max=13"`
}

func (f BookForm) toModel(id int64) *model.Book {
	genre, lang := f.GenreID, f.LanguageID
	return &model.Book{
		ID:         id,
		Title:      f.Title,
		GenreID:    &genre,
		LanguageID: &lang,
		AuthorIDs:  f.AuthorIDs,
		Summary:    f.Summary,
		ISBN:       f.ISBN,
	}
}

func formOf(b *model.Book) BookForm {
	f := BookForm{Title: b.Title, AuthorIDs: b.AuthorIDs, Summary: b.Summary, ISBN: b.ISBN}
	if b.GenreID != nil {
		f.GenreID = *b.GenreID
	}
	if b.LanguageID != nil {
		f.LanguageID = *b.LanguageID
	}
	return f
}
