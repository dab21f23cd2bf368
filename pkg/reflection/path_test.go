package reflection_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/reflectkit/pkg/reflection"
)

func TestProperty(t *testing.T) {
	t.Run("resolves nested field through pointer", func(t *testing.T) {
		f, ok := reflection.Property(reflect.TypeOf(Order{}), "Customer.Address.City")
		require.True(t, ok)
		assert.Equal(t, "City", f.Name)
		assert.Equal(t, reflect.TypeOf(""), f.Type)
	})

	t.Run("resolves promoted field", func(t *testing.T) {
		f, ok := reflection.PropertyOf[Derived]("ID")
		require.True(t, ok)
		assert.Equal(t, []int{0, 0}, f.Index)
	})

	t.Run("missing segment", func(t *testing.T) {
		_, ok := reflection.Property(reflect.TypeOf(Order{}), "Customer.Phone")
		assert.False(t, ok)
	})

	t.Run("unexported field is not a property", func(t *testing.T) {
		_, ok := reflection.PropertyOf[Order]("secret")
		assert.False(t, ok)
	})

	t.Run("empty segments never resolve", func(t *testing.T) {
		_, ok := reflection.PropertyOf[Order]("Customer..Name")
		assert.False(t, ok)
		_, ok = reflection.PropertyOf[Order]("")
		assert.False(t, ok)
	})
}

func TestPropertyValue(t *testing.T) {
	order := newOrder()

	t.Run("top level", func(t *testing.T) {
		assert.Equal(t, 7, reflection.PropertyValue(order, "ID"))
	})

	t.Run("nested through pointer", func(t *testing.T) {
		assert.Equal(t, "Lisbon", reflection.PropertyValue(&order, "Customer.Address.City"))
	})

	t.Run("map by key", func(t *testing.T) {
		assert.Equal(t, "web", reflection.PropertyValue(order, "Meta.channel"))
		doc := map[string]any{"order": map[string]any{"total": 5}}
		assert.Equal(t, 5, reflection.PropertyValue(doc, "order.total"))
	})

	t.Run("nonexistent segment returns nil", func(t *testing.T) {
		assert.Nil(t, reflection.PropertyValue(order, "Customer.Phone"))
		assert.Nil(t, reflection.PropertyValue(order, "Meta.missing"))
	})

	t.Run("nil intermediate returns nil", func(t *testing.T) {
		o := newOrder()
		o.Customer.Address = nil
		assert.Nil(t, reflection.PropertyValue(o, "Customer.Address.City"))
		assert.Nil(t, reflection.PropertyValue(o, "Customer.Address"))
	})

	t.Run("nil object and empty path", func(t *testing.T) {
		assert.Nil(t, reflection.PropertyValue(nil, "ID"))
		assert.Nil(t, reflection.PropertyValue(order, ""))
	})
}

func TestPropertyType(t *testing.T) {
	order := newOrder()

	t.Run("declared type", func(t *testing.T) {
		assert.Equal(t, reflect.TypeOf(0), reflection.PropertyType(order, "Customer.Address.Zip"))
		assert.Equal(t, reflect.TypeOf(&Address{}), reflection.PropertyType(&order, "Customer.Address"))
	})

	t.Run("dynamic type through map", func(t *testing.T) {
		assert.Equal(t, reflect.TypeOf(""), reflection.PropertyType(order, "Meta.channel"))
	})

	t.Run("unresolved", func(t *testing.T) {
		assert.Nil(t, reflection.PropertyType(order, "Customer.Phone"))
		assert.Nil(t, reflection.PropertyType(nil, "ID"))
	})

	t.Run("generic form", func(t *testing.T) {
		assert.Equal(t, reflect.TypeOf(""), reflection.PropertyTypeOf[Order]("Customer.Name"))
		assert.Nil(t, reflection.PropertyTypeOf[Order]("Nope"))
	})
}

func TestPropertyParent(t *testing.T) {
	t.Run("returns writable parent", func(t *testing.T) {
		order := newOrder()
		parent, field, ok := reflection.PropertyParent(&order, "Customer.Name")
		require.True(t, ok)
		assert.Equal(t, "Name", field.Name)

		customer, isPtr := parent.(*Customer)
		require.True(t, isPtr)
		customer.Name = "Bea"
		assert.Equal(t, "Bea", order.Customer.Name)
	})

	t.Run("single segment parent is the root", func(t *testing.T) {
		order := newOrder()
		parent, _, ok := reflection.PropertyParent(&order, "ID")
		require.True(t, ok)
		assert.Same(t, &order, parent)
	})

	t.Run("unresolved", func(t *testing.T) {
		_, _, ok := reflection.PropertyParent(newOrder(), "Customer.Phone")
		assert.False(t, ok)
		_, _, ok = reflection.PropertyParent(nil, "ID")
		assert.False(t, ok)
	})
}

func TestSetValue(t *testing.T) {
	t.Run("parses string into int", func(t *testing.T) {
		order := newOrder()
		require.True(t, reflection.SetValue("42", &order, "ID", ""))
		assert.Equal(t, 42, order.ID)
	})

	t.Run("float into int uses fixed format", func(t *testing.T) {
		order := newOrder()
		require.True(t, reflection.SetValue(3.7, &order, "ID", ""))
		assert.Equal(t, 4, order.ID)
	})

	t.Run("format applies to string targets", func(t *testing.T) {
		order := newOrder()
		require.True(t, reflection.SetValue(12, &order, "Customer.Name", "%05d"))
		assert.Equal(t, "00012", order.Customer.Name)
	})

	t.Run("string source ignores numeric format", func(t *testing.T) {
		order := newOrder()
		require.True(t, reflection.SetValue("3.75", &order, "Total", "%.2f"))
		assert.Equal(t, 3.75, order.Total)
	})

	t.Run("nested through pointer", func(t *testing.T) {
		order := newOrder()
		require.True(t, reflection.SetValue("1200", &order, "Customer.Address.Zip", ""))
		assert.Equal(t, 1200, order.Customer.Address.Zip)
	})

	t.Run("nil source stores zero value", func(t *testing.T) {
		order := newOrder()
		require.True(t, reflection.SetValue(nil, &order, "Notes", ""))
		assert.Nil(t, order.Notes)
	})

	t.Run("silent failures", func(t *testing.T) {
		order := newOrder()
		order.Customer.Address = nil
		assert.False(t, reflection.SetValue("x", &order, "Customer.Address.City", ""))
		assert.False(t, reflection.SetValue("x", &order, "Customer.Phone", ""))
		assert.False(t, reflection.SetValue("abc", &order, "ID", ""))
		assert.False(t, reflection.SetValue("1", order, "ID", ""))
		assert.False(t, reflection.SetValue("1", nil, "ID", ""))
		assert.Equal(t, 7, order.ID)
	})
}

func TestSetFieldValue(t *testing.T) {
	order := newOrder()
	field, ok := reflection.PropertyOf[Order]("Total")
	require.True(t, ok)

	assert.True(t, reflection.SetFieldValue("21.25", &order, field, ""))
	assert.InDelta(t, 21.25, order.Total, 0.0001)

	other, ok := reflection.PropertyOf[Address]("Zip")
	require.True(t, ok)
	assert.False(t, reflection.SetFieldValue(1, &order, other, ""))
}

func TestPropertyName(t *testing.T) {
	order := newOrder()

	tests := []struct {
		name  string
		field any
		want  string
	}{
		{"first field", &order.ID, "ID"},
		{"nested struct field", &order.Customer.Name, "Customer.Name"},
		{"struct field itself", &order.Customer, "Customer"},
		{"pointer field", &order.Customer.Address, "Customer.Address"},
		{"through pointer", &order.Customer.Address.City, "Customer.Address.City"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := reflection.PropertyName(&order, tt.field)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("field outside root", func(t *testing.T) {
		other := newOrder()
		_, err := reflection.PropertyName(&order, &other.ID)
		assert.ErrorIs(t, err, reflection.ErrFieldNotInRoot)
	})

	t.Run("invalid arguments", func(t *testing.T) {
		_, err := reflection.PropertyName(order, &order.ID)
		assert.ErrorIs(t, err, reflection.ErrNotStruct)
		_, err = reflection.PropertyName(&order, nil)
		assert.ErrorIs(t, err, reflection.ErrNilObject)
	})
}
