package fitmd_test

import (
	"errors"
	"testing"

	"github.com/fwojciec/fitmd"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := fitmd.Errorf(fitmd.EINVALID, "threshold %f out of range", -1.0)

	assert.Equal(t, fitmd.EINVALID, fitmd.ErrorCode(err))
	assert.Equal(t, "threshold -1.000000 out of range", fitmd.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, fitmd.ErrorCode(nil))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, fitmd.EINTERNAL, fitmd.ErrorCode(errors.New("boom")))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, fitmd.ErrorMessage(nil))
}

func TestCountWords(t *testing.T) {
	t.Parallel()

	t.Run("counts whitespace-delimited tokens", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, 5, fitmd.CountWords("# Title\n\nReal content here."))
	})

	t.Run("empty string has zero words", func(t *testing.T) {
		t.Parallel()

		assert.Zero(t, fitmd.CountWords(""))
		assert.Zero(t, fitmd.CountWords("  \n\t "))
	})
}
