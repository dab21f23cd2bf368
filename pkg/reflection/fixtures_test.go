package reflection_test

type Named interface {
	Name() string
}

type Repository interface {
	Find(id int) any
}

type Base struct {
	ID int
}

func (b Base) Name() string { return "base" }

type Derived struct {
	Base
	Label string
}

type userStore struct {
	Repository
}

type Address struct {
	City string
	Zip  int
}

type Customer struct {
	Name    string
	Email   string
	Address *Address
}

type Order struct {
	ID       int
	Customer Customer
	Items    []string
	Total    float64
	Notes    *string
	Meta     map[string]any
	secret   string
}

type OrderView struct {
	ID    int
	Total float32
	Items []string
	Extra bool
}

type Box[T any] struct {
	Value T
}

type Pair[K comparable, V any] struct {
	Key   K
	Value V
}

type Level int

func newOrder() Order {
	note := "leave at door"
	return Order{
		ID: 7,
		Customer: Customer{
			Name:    "Ann",
			Email:   "ann@example.com",
			Address: &Address{City: "Lisbon", Zip: 1100},
		},
		Items:  []string{"book", "pen"},
		Total:  19.5,
		Notes:  &note,
		Meta:   map[string]any{"channel": "web"},
		secret: "s3cr3t",
	}
}
