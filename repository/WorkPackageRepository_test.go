package repository

import (
	"errors"
	"regexp"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestNewReferenceCode(t *testing.T) {
	code := NewReferenceCode()
	assert.Regexp(t, regexp.MustCompile(`^WP-[0-9A-F]{8}$`), code)
	assert.NotEqual(t, code, NewReferenceCode())
}

func TestTranslatePQError(t *testing.T) {
	dup := &pq.Error{Code: "23505"}
	assert.ErrorIs(t, translatePQError(dup), ErrDuplicate)

	other := &pq.Error{Code: "23503"}
	assert.Equal(t, error(other), translatePQError(other))

	plain := errors.New("boom")
	assert.Equal(t, plain, translatePQError(plain))
}
