package apperrors

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestError(t *testing.T) {
	t.Run("derived errors match their parents", func(t *testing.T) {
		ErrBase := New("plugin error")
		assert.Equal(t, "plugin error", ErrBase.Error())
		assert.ErrorIs(t, ErrBase, ErrBase)

		ErrConfig := ErrBase.New("configuration error")
		ErrDisabled := ErrConfig.New("plugin is disabled")
		assert.Equal(t, "plugin is disabled", ErrDisabled.Error())
		assert.ErrorIs(t, ErrDisabled, ErrConfig)
		assert.ErrorIs(t, ErrDisabled, ErrBase)
		assert.NotErrorIs(t, ErrConfig, ErrDisabled)

		ErrOther := ErrBase.New("other")
		assert.NotErrorIs(t, ErrDisabled, ErrOther)
	})

	t.Run("attached causes are matched", func(t *testing.T) {
		ErrBase := New("plugin error")
		ErrRoot := ErrBase.New("invalid plugin root")

		cause := errors.New("open ucrm.json: no such file or directory")
		err := ErrRoot.Err(cause)
		assert.Equal(t, "invalid plugin root", err.Error())
		assert.ErrorIs(t, err, ErrRoot)
		assert.ErrorIs(t, err, ErrBase)
		assert.ErrorIs(t, err, cause)
		assert.Equal(t, "invalid plugin root; open ucrm.json: no such file or directory", err.ErrorAll())

		goErr := fmt.Errorf("stat /nowhere: %w", cause)
		err = ErrRoot.MsgErr("root path is not a directory", goErr)
		assert.Equal(t, "root path is not a directory", err.Error())
		assert.ErrorIs(t, err, ErrRoot)
		assert.ErrorIs(t, err, cause)
		assert.Len(t, err.UnwrapAll(), 2)
	})

	t.Run("msg keeps the original as cause", func(t *testing.T) {
		ErrBase := New("configuration error")
		err := ErrBase.Msg("pluginAppKey is missing")
		assert.Equal(t, "pluginAppKey is missing", err.Error())
		assert.ErrorIs(t, err, ErrBase)
		assert.Equal(t, "pluginAppKey is missing", err.ErrorAll())
	})

	t.Run("prefix does not modify the receiver", func(t *testing.T) {
		ErrBase := New("configuration error")
		prefixed := ErrBase.Prefix("/srv/plugin")
		assert.Equal(t, "/srv/plugin: configuration error", prefixed.Error())
		assert.Equal(t, "configuration error", ErrBase.Error())
		assert.Equal(t, "/srv/plugin: configuration error", prefixed.Err(errors.New("x")).Error())
	})

	t.Run("nil target", func(t *testing.T) {
		assert.False(t, New("x").(*appError).Is(nil))
	})
}
