package validation_test

import (
	"strings"
	"testing"

	"webbooks/app/echoServer/validation"

	"github.com/stretchr/testify/require"
)

type form struct {
	Title string  `json:"title" validate:"required,max=5"`
	Born  string  `json:"date_of_birth" validate:"required,isodate"`
	IDs   []int64 `json:"author_ids" validate:"required,min=1,dive,gt=0"`
}

func TestFields(t *testing.T) {
	v := validation.Engine()

	err := v.Struct(form{Title: strings.Repeat("x", 6), Born: "12/09/1921", IDs: []int64{1, 0}})
	require.Equal(t, map[string]string{
		"title":         "max=5",
		"date_of_birth": "isodate",
		"author_ids[1]": "gt=0",
	}, validation.Fields(err))

	err = v.Struct(form{})
	fields := validation.Fields(err)
	require.Equal(t, "required", fields["title"])
	require.Equal(t, "required", fields["date_of_birth"])
	require.Equal(t, "required", fields["author_ids"])

	require.NoError(t, v.Struct(form{Title: "Dune", Born: "1920-10-08", IDs: []int64{3}}))
}

func TestEchoValidator(t *testing.T) {
	require.Error(t, validation.New().Validate(&form{}))
	require.Empty(t, validation.Fields(nil))
}
