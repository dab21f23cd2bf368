package validator_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/reflectkit/pkg/validator"
)

const bookingRules = `
name: booking
fields:
  - path: Guests
    rules:
      - name: empty
  - path: Stay.Nights
    display: Number of nights
    rules:
      - name: notinrange
        params: [7, 13]
        message: "%s must not be %v to %v"
`

func TestParseRuleSet(t *testing.T) {
	t.Run("decodes fields and rules", func(t *testing.T) {
		rs, err := validator.ParseRuleSet([]byte(bookingRules))
		require.NoError(t, err)

		assert.Equal(t, "booking", rs.Name)
		require.Len(t, rs.Fields, 2)
		assert.Equal(t, "Stay.Nights", rs.Fields[1].Path)
		assert.Equal(t, "Number of nights", rs.Fields[1].Display)
		assert.Equal(t, []string{"7", "13"}, rs.Fields[1].Rules[0].Params)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := validator.ParseRuleSet([]byte("fields: [path: {"))
		assert.ErrorIs(t, err, validator.ErrFailedToParseRuleSet)
	})

	t.Run("missing path", func(t *testing.T) {
		_, err := validator.ParseRuleSet([]byte("fields:\n  - rules:\n      - name: empty\n"))
		assert.ErrorIs(t, err, validator.ErrInvalidRuleSet)
	})

	t.Run("missing rule name", func(t *testing.T) {
		_, err := validator.ParseRuleSet([]byte("fields:\n  - path: Guests\n    rules:\n      - params: [1]\n"))
		assert.ErrorIs(t, err, validator.ErrInvalidRuleSet)
	})
}

func TestLoadRuleSet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte(bookingRules), 0o644))

	rs, err := validator.LoadRuleSet(path)
	require.NoError(t, err)
	assert.Len(t, rs.Fields, 2)

	_, err = validator.LoadRuleSet(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestRuleSet_Validate(t *testing.T) {
	rs, err := validator.ParseRuleSet([]byte(bookingRules))
	require.NoError(t, err)

	t.Run("struct", func(t *testing.T) {
		b := validBooking()
		require.NoError(t, rs.Validate(b))

		b.Stay.Nights = 7
		b.Guests = []string{"ann", "bob"}
		verrs := validator.ExtractValidationErrors(rs.Validate(&b))
		require.NotNil(t, verrs)
		assert.Equal(t, []string{"Guests", "Stay.Nights"}, verrs.Fields())
		assert.Equal(t, []string{"Number of nights must not be 7 to 13"}, verrs.Get("Stay.Nights"))
	})

	t.Run("decoded document", func(t *testing.T) {
		doc := map[string]any{
			"Guests": []any{},
			"Stay":   map[string]any{"Nights": 12},
		}
		verrs := validator.ExtractValidationErrors(rs.Validate(doc))
		require.NotNil(t, verrs)
		assert.Equal(t, []string{"Stay.Nights"}, verrs.Fields())
	})

	t.Run("unresolved paths validate nil", func(t *testing.T) {
		assert.NoError(t, rs.Validate(map[string]any{}))
	})

	t.Run("unknown rule", func(t *testing.T) {
		bad, err := validator.ParseRuleSet([]byte("fields:\n  - path: Guests\n    rules:\n      - name: unique\n"))
		require.NoError(t, err)
		assert.ErrorIs(t, bad.Validate(validBooking()), validator.ErrUnknownRule)
	})

	t.Run("nil rule set", func(t *testing.T) {
		var none *validator.RuleSet
		assert.NoError(t, none.Validate(validBooking()))
	})
}
