package textnorm

import (
	"math"
	"reflect"
	"testing"
)

func TestPreprocess(t *testing.T) {
	n := New()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"strips stopwords", "What are your hours?", "hours"},
		{"strips punctuation", "Hello, World!", "hello world"},
		{"keeps digits and underscores", "order_id: 12345", "order_id 12345"},
		{"collapses whitespace", "  track   my    order  ", "track order"},
		{"all stopwords", "what is this", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := n.Preprocess(tt.in); got != tt.want {
				t.Errorf("Preprocess(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTokens(t *testing.T) {
	n := New()

	got := n.Tokens("Cancel my order, please!")
	want := []string{"cancel", "order", "please"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokens() = %v, want %v", got, want)
	}
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"identical", "hello", "hello", 1},
		{"case insensitive", "Hello", "hELLO", 1},
		{"empty left", "", "hello", 0},
		{"empty right", "hello", "", 0},
		{"both empty", "", "", 0},
		{"three edits over ten runes", "abcdefghij", "abcxxxghij", 0.7},
		{"four edits over ten runes", "abcdefghij", "abxxxxghij", 0.6},
		{"kitten sitting", "kitten", "sitting", 1 - 3.0/7.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Similarity(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Similarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestSimilaritySymmetric(t *testing.T) {
	if Similarity("kitten", "sitting") != Similarity("sitting", "kitten") {
		t.Error("Similarity is not symmetric")
	}
}
