package validator_test

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/reflectkit/pkg/logger"
	"github.com/dmitrymomot/reflectkit/pkg/validator"
)

type stay struct {
	Nights  int       `validate:"notinrange=7,13" display:"Number of nights"`
	Arrival time.Time `validate:"notinrange=2024-12-20,2024-12-31"`
}

type booking struct {
	Guests   []string `validate:"empty"`
	Discount float64  `validate:"notinrange=0.5,0.9;empty"`
	Stay     stay
	Previous *stay
	Notes    string `validate:"-"`
	internal []string
}

type node struct {
	Tags []string `validate:"empty"`
	Next *node
}

func validBooking() booking {
	return booking{
		Stay: stay{
			Nights:  3,
			Arrival: time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
		},
	}
}

func TestValidate(t *testing.T) {
	t.Run("valid struct", func(t *testing.T) {
		b := validBooking()
		assert.NoError(t, validator.Validate(b))
		assert.NoError(t, validator.Validate(&b))
	})

	t.Run("reports failing fields with nested names", func(t *testing.T) {
		b := validBooking()
		b.Guests = []string{"ann"}
		b.Discount = 0.7
		b.Stay.Nights = 10
		b.Previous = &stay{Nights: 1, Arrival: time.Date(2024, time.December, 24, 0, 0, 0, 0, time.UTC)}
		b.internal = []string{"ignored"}

		err := validator.Validate(b)
		require.Error(t, err)
		verrs := validator.ExtractValidationErrors(err)
		require.NotNil(t, verrs)

		assert.Equal(t, []string{"Guests", "Discount", "Stay.Nights", "Previous.Arrival"}, verrs.Fields())
		assert.Equal(t, []string{"Guests is not empty"}, verrs.Get("Guests"))
		assert.Equal(t, []string{"Number of nights is between 7 and 13"}, verrs.Get("Stay.Nights"))
	})

	t.Run("invalid target", func(t *testing.T) {
		assert.ErrorIs(t, validator.Validate(nil), validator.ErrInvalidTarget)
		assert.ErrorIs(t, validator.Validate(42), validator.ErrInvalidTarget)
		assert.ErrorIs(t, validator.Validate((*booking)(nil)), validator.ErrInvalidTarget)
	})

	t.Run("self-referencing struct", func(t *testing.T) {
		n := &node{Tags: []string{"loop"}}
		n.Next = n

		err := validator.Validate(n)
		require.Error(t, err)
		assert.Equal(t, []string{"Tags"}, validator.ExtractValidationErrors(err).Fields())
	})

	t.Run("cycle through two structs", func(t *testing.T) {
		a := &node{Tags: []string{"a"}}
		b := &node{Tags: []string{"b"}, Next: a}
		a.Next = b

		err := validator.Validate(a)
		require.Error(t, err)
		assert.Equal(t, []string{"Tags", "Next.Tags"}, validator.ExtractValidationErrors(err).Fields())
	})

	t.Run("unknown rule", func(t *testing.T) {
		type form struct {
			Name string `validate:"required"`
		}
		err := validator.Validate(form{})
		require.ErrorIs(t, err, validator.ErrUnknownRule)
		assert.False(t, validator.IsValidationError(err))
	})

	t.Run("bad parameters", func(t *testing.T) {
		type form struct {
			Age int `validate:"notinrange=1"`
		}
		assert.ErrorIs(t, validator.Validate(form{}), validator.ErrInvalidRuleParams)
	})

	t.Run("custom registry", func(t *testing.T) {
		type form struct {
			Code string `validate:"never"`
		}
		reg := validator.NewRegistry()
		reg.Register("never", func(field string, _ any, _ []string, _ ...validator.RuleOption) (validator.Rule, error) {
			return validator.Rule{
				Check: func() bool { return false },
				Error: validator.ValidationError{Field: field, Message: "never valid"},
			}, nil
		})

		err := validator.Validate(form{}, validator.WithRegistry(reg))
		assert.True(t, validator.ExtractValidationErrors(err).Has("Code"))
	})

	t.Run("logs failures", func(t *testing.T) {
		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf), logger.WithLevel(slog.LevelDebug))

		b := validBooking()
		b.Guests = []string{"ann"}
		require.Error(t, validator.Validate(b, validator.WithLogger(log)))
		assert.Contains(t, buf.String(), "field=Guests")
		assert.Contains(t, buf.String(), "rule=validation.empty")
	})
}
