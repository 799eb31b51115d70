package apierror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusForMapsTaxonomy(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{ErrNotFound, http.StatusNotFound},
		{ErrInsufficientStock, http.StatusConflict},
		{ErrAuthorizationDenied, http.StatusForbidden},
		{ErrPersistence, http.StatusInternalServerError},
		{ErrValidation, http.StatusBadRequest},
		{errors.New("anything else"), http.StatusBadRequest},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, StatusFor(tc.err), tc.err.Error())
	}
}

func TestStatusForUnwrapsContext(t *testing.T) {
	wrapped := fmt.Errorf("%w: requested 5, only 2 available", ErrInsufficientStock)
	assert.Equal(t, http.StatusConflict, StatusFor(wrapped))
}
