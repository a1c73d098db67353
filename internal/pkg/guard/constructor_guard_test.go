package guard_test

import (
	"errors"
	"testing"

	"grameego/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("properly_constructed_guard_returns_nil", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errors.New("not constructed")))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		var g guard.ConstructorGuard
		expected := errors.New("ShopRef must be created via NewShopRef")

		err := g.Validate(expected)

		require.Error(t, err)
		assert.Equal(t, expected, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		require.ErrorIs(t, err, guard.ErrDefaultConstructorGuard)
		assert.Equal(t, "object must be created via its constructor", err.Error())
	})
}

func TestConstructorGuard_EmbeddedInValueObject(t *testing.T) {
	errNoteNotConstructed := errors.New("note must be created via newNote")

	type note struct {
		text  string
		guard guard.ConstructorGuard
	}

	newNote := func(text string) (note, error) {
		if text == "" {
			return note{}, errors.New("text is required")
		}
		return note{text: text, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("constructed_value_is_valid", func(t *testing.T) {
		n, err := newNote("out of rice")
		require.NoError(t, err)
		require.NoError(t, n.guard.Validate(errNoteNotConstructed))
	})

	t.Run("literal_value_is_rejected", func(t *testing.T) {
		n := note{text: "bypassed"}
		require.ErrorIs(t, n.guard.Validate(errNoteNotConstructed), errNoteNotConstructed)
	})

	t.Run("copies_keep_their_state", func(t *testing.T) {
		n, err := newNote("ok")
		require.NoError(t, err)
		copied := n
		require.NoError(t, copied.guard.Validate(errNoteNotConstructed))
	})
}

func TestConstructorGuard_ConcurrentValidate(t *testing.T) {
	g := guard.NewConstructorGuard()
	done := make(chan struct{})

	for range 50 {
		go func() {
			defer func() { done <- struct{}{} }()
			for range 100 {
				assert.NoError(t, g.Validate(nil))
			}
		}()
	}

	for range 50 {
		<-done
	}
}
