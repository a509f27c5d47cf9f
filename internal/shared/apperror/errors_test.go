package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKind_Status(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind Kind
		want int
	}{
		{KindNotFound, http.StatusNotFound},
		{KindExternalAPI, http.StatusBadGateway},
		{KindDatabase, http.StatusInternalServerError},
		{KindInvalidInput, http.StatusBadRequest},
		{KindUnknown, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.kind.Status())
		})
	}
}

func TestError_IsAndAs(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection reset")
	err := fmt.Errorf("fetch chart: %w", ExternalAPI("coingecko request failed", cause))

	assert.ErrorIs(t, err, ErrExternalAPI)
	assert.NotErrorIs(t, err, ErrDatabase)
	assert.ErrorIs(t, err, cause, "underlying cause should stay reachable")

	var ae *Error
	if assert.ErrorAs(t, err, &ae) {
		assert.Equal(t, KindExternalAPI, ae.Kind)
		assert.Equal(t, "coingecko request failed", ae.Detail)
	}
}

func TestError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"detail and cause", Database("insert metric", errors.New("boom")), "database: insert metric: boom"},
		{"cause only", &Error{Kind: KindDatabase, Err: errors.New("boom")}, "database: boom"},
		{"detail only", NotFound("metric not found"), "not_found: metric not found"},
		{"bare kind", &Error{Kind: KindInvalidInput}, "invalid_input"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestClassify(t *testing.T) {
	t.Parallel()

	t.Run("nil stays nil", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, Classify(nil, KindDatabase, "x"))
	})

	t.Run("classified error keeps its kind", func(t *testing.T) {
		t.Parallel()
		in := ExternalAPI("upstream", errors.New("503"))
		out := Classify(fmt.Errorf("wrapped: %w", in), KindDatabase, "fallback")
		assert.Equal(t, KindExternalAPI, KindOf(out))
	})

	t.Run("unclassified error takes the fallback", func(t *testing.T) {
		t.Parallel()
		out := Classify(errors.New("plain"), KindDatabase, "Failed to ingest OXT metrics")
		assert.Equal(t, KindDatabase, KindOf(out))
		var ae *Error
		assert.ErrorAs(t, out, &ae)
		assert.Equal(t, "Failed to ingest OXT metrics", ae.Detail)
	})
}
