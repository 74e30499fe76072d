package provider

import (
	"context"
	"testing"
)

func TestMockClassifier(t *testing.T) {
	c := NewMockClassifier()

	tests := []struct {
		name string
		url  string
		want string
	}{
		{name: "food keyword", url: "https://example.com/food.png", want: "Food"},
		{name: "pizza keyword", url: "https://example.com/Pizza-slice.jpg", want: "Food"},
		{name: "person keyword", url: "https://example.com/person.png", want: "Person"},
		{name: "face keyword", url: "https://example.com/smiling-face.png", want: "Person"},
		{name: "both", url: "https://example.com/person-eating-pizza.png", want: "Food, Person"},
		{name: "no match", url: "https://example.com/landscape.png", want: "None"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Classify(context.Background(), tt.url)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
