package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/stockly/pkg/validate"
)

type registerInput struct {
	Name     string  `json:"name"     validate:"required,min=2,max=200"`
	Email    string  `json:"email"    validate:"required,email"`
	Phone    string  `json:"phone"    validate:"nullable,max=10"`
	Price    float64 `json:"price"    validate:"gte=0"`
	Quantity int64   `json:"quantity" validate:"gte=0,lte=100"`
	Format   string  `json:"format"   validate:"nullable,in=csv,xlsx"`
}

func TestStructValid(t *testing.T) {
	errs := validate.Struct(registerInput{
		Name:     "Widget",
		Email:    "ops@example.com",
		Price:    9.99,
		Quantity: 10,
		Format:   "csv",
	})
	assert.False(t, validate.HasErrors(errs))
}

func TestStructRequired(t *testing.T) {
	errs := validate.Struct(registerInput{Email: "ops@example.com"})
	assert.Equal(t, "The name field is required.", errs["name"])
}

func TestStructWhitespaceIsEmpty(t *testing.T) {
	errs := validate.Struct(registerInput{Name: "   ", Email: "ops@example.com"})
	assert.Equal(t, "The name field is required.", errs["name"])
}

func TestStructEmail(t *testing.T) {
	errs := validate.Struct(registerInput{Name: "Widget", Email: "not-an-email"})
	assert.Equal(t, "The email must be a valid email address.", errs["email"])
}

func TestStructMinLength(t *testing.T) {
	errs := validate.Struct(registerInput{Name: "W", Email: "ops@example.com"})
	assert.Equal(t, "The name must be at least 2 characters.", errs["name"])
}

func TestStructNullableSkipsWhenEmpty(t *testing.T) {
	errs := validate.Struct(registerInput{Name: "Widget", Email: "ops@example.com"})
	_, has := errs["phone"]
	assert.False(t, has)

	errs = validate.Struct(registerInput{
		Name:  "Widget",
		Email: "ops@example.com",
		Phone: "01234567890",
	})
	assert.Equal(t, "The phone must not be greater than 10 characters.", errs["phone"])
}

func TestStructNumericBounds(t *testing.T) {
	errs := validate.Struct(registerInput{
		Name:     "Widget",
		Email:    "ops@example.com",
		Price:    -1,
		Quantity: 101,
	})
	assert.Equal(t, "The price must be at least 0.", errs["price"])
	assert.Equal(t, "The quantity must not be greater than 100.", errs["quantity"])
}

func TestStructInRule(t *testing.T) {
	errs := validate.Struct(registerInput{
		Name:   "Widget",
		Email:  "ops@example.com",
		Format: "pdf",
	})
	assert.Equal(t, "The selected format is invalid.", errs["format"])
}

func TestStructFirstFailingRuleWins(t *testing.T) {
	errs := validate.Struct(registerInput{Name: "", Email: ""})
	assert.Equal(t, "The name field is required.", errs["name"])
	assert.Equal(t, "The email field is required.", errs["email"])
}

// min= and max= must never be parsed as an in= membership list.
func TestStructMinRuleIsNotMembership(t *testing.T) {
	type productInput struct {
		Name string `json:"name" validate:"required,min=1,max=200"`
		SKU  string `json:"sku"  validate:"required,min=1,max=64"`
	}

	errs := validate.Struct(productInput{Name: "Wireless Keyboard", SKU: "KB-01"})
	assert.False(t, validate.HasErrors(errs), "got %v", errs)

	errs = validate.Struct(productInput{Name: "Wireless Keyboard", SKU: ""})
	assert.Equal(t, "The sku field is required.", errs["sku"])
}

func TestStructInFollowedByOtherRules(t *testing.T) {
	type input struct {
		Format string `json:"format" validate:"in=c,csv,xlsx,min=3"`
	}

	assert.False(t, validate.HasErrors(validate.Struct(input{Format: "xlsx"})))
	assert.Equal(t, "The selected format is invalid.",
		validate.Struct(input{Format: "pdf"})["format"])
	// min=3 is a trailing rule, not an in= member.
	assert.Equal(t, "The format must be at least 3 characters.",
		validate.Struct(input{Format: "c"})["format"])
}

func TestStructPointerAndNonStructInputs(t *testing.T) {
	in := registerInput{Name: "Widget", Email: "ops@example.com"}
	assert.False(t, validate.HasErrors(validate.Struct(&in)))
	assert.False(t, validate.HasErrors(validate.Struct("not a struct")))
}
