package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPascalCase(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"snake case", "order_item", "OrderItem"},
		{"kebab case", "customer-order", "CustomerOrder"},
		{"spaces", "user profile", "UserProfile"},
		{"already pascal", "OrderItem", "OrderItem"},
		{"lower single word", "user", "User"},
		{"mixed separators", "api_key-value pair", "ApiKeyValuePair"},
		{"preserves inner casing", "myHTTPServer", "MyHTTPServer"},
		{"empty", "", ""},
		{"only separators", "_-_ ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PascalCase(tt.in))
		})
	}
}

func TestCamelCase(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"from pascal", "OrderItem", "orderItem"},
		{"from snake", "order_item", "orderItem"},
		{"single word", "User", "user"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CamelCase(tt.in))
		})
	}
}

func TestPlural(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"consonant y", "Category", "Categories"},
		{"vowel y", "Day", "Days"},
		{"ends s", "Address", "Addresses"},
		{"ends x", "Box", "Boxes"},
		{"ends ch", "Branch", "Branches"},
		{"ends sh", "Dish", "Dishes"},
		{"ends fe", "Knife", "Knives"},
		{"ends f", "Leaf", "Leaves"},
		{"plain", "User", "Users"},
		{"irregular not handled", "Person", "Persons"},
		{"single letter y", "y", "ys"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Plural(tt.in))
		})
	}
}

func TestSingular(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"ies", "categories", "category"},
		{"es after s", "addresses", "address"},
		{"es after x", "boxes", "box"},
		{"plain s", "users", "user"},
		{"ves", "leaves", "leaf"},
		{"double s untouched", "address", "address"},
		{"no suffix", "user", "user"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Singular(tt.in))
		})
	}
}

func TestSanitizeIdentifier(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"spaces and punctuation", "User Name!", "UserName"},
		{"keeps underscore", "order_item", "order_item"},
		{"strips unicode", "naïve", "nave"},
		{"digits kept", "field2", "field2"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeIdentifier(tt.in))
		})
	}
}

func TestPluralRoundTrip(t *testing.T) {
	for _, word := range []string{"User", "Category", "Box", "Dish", "Leaf"} {
		got := Singular(Plural(word))
		assert.Equal(t, word, got, "round trip for %s", word)
	}
}
