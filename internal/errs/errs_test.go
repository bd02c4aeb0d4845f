package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(NotFound("school")))
	assert.Equal(t, KindConflict, KindOf(Conflict("code taken")))
	assert.Equal(t, KindBadRequest, KindOf(BadRequest("bad")))
	assert.Equal(t, KindUnauthorized, KindOf(Unauthorized("no")))
	assert.Equal(t, KindForbidden, KindOf(Forbidden("no")))
	assert.Equal(t, KindUnexpected, KindOf(errors.New("plain")))
	assert.Equal(t, KindUnexpected, KindOf(nil))
}

func TestKindSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("list branches: %w", NotFound("branch"))
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.True(t, IsKind(err, KindNotFound))
}

func TestHTTPStatus(t *testing.T) {
	cases := map[Kind]int{
		KindNotFound:     http.StatusNotFound,
		KindConflict:     http.StatusConflict,
		KindBadRequest:   http.StatusBadRequest,
		KindUnauthorized: http.StatusUnauthorized,
		KindForbidden:    http.StatusForbidden,
		KindUnexpected:   http.StatusInternalServerError,
	}

	for kind, status := range cases {
		assert.Equal(t, status, kind.HTTPStatus(), kind)
	}
}

func TestUnexpectedHidesCause(t *testing.T) {
	cause := errors.New("pq: connection reset")
	err := Unexpected(cause)

	assert.Equal(t, KindUnexpected, KindOf(err))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "internal server error", err.Message)
}

func TestWrapKeepsKindAndFields(t *testing.T) {
	base := BadRequestFields("validation failed", map[string]string{"title": "required"})
	wrapped := Wrap(base, errors.New("decode body"))

	assert.Equal(t, KindBadRequest, KindOf(wrapped))
	require.NotNil(t, FieldsOf(wrapped))
	assert.Equal(t, "required", FieldsOf(wrapped)["title"])
}
