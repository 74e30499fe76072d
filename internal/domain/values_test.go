package domain

import (
	"strings"
	"testing"
)

func TestNewImageDescription(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid", input: "a cat on a skateboard", wantErr: false},
		{name: "empty", input: "", wantErr: true},
		{name: "whitespace only", input: "   \t ", wantErr: true},
		{name: "max length", input: strings.Repeat("a", 500), wantErr: false},
		{name: "too long", input: strings.Repeat("a", 501), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			desc, err := NewImageDescription(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.input)
				}
				if !IsValidation(err) {
					t.Errorf("expected validation error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if desc.String() != tt.input {
				t.Errorf("expected %q, got %q", tt.input, desc.String())
			}
		})
	}
}

func TestNewBase64Data(t *testing.T) {
	if _, err := NewBase64Data("aGVsbG8="); err != nil {
		t.Errorf("unexpected error for valid base64: %v", err)
	}
	if _, err := NewBase64Data(""); err == nil {
		t.Error("expected error for empty data")
	}
	if _, err := NewBase64Data("not base64!!!"); err == nil {
		t.Error("expected error for invalid base64")
	}
}

func TestNewImageURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid https", input: "https://example.com/cat.png", wantErr: false},
		{name: "valid http", input: "http://example.com/cat.png", wantErr: false},
		{name: "empty", input: "", wantErr: true},
		{name: "relative", input: "/images/cat.png", wantErr: true},
		{name: "no host", input: "https:///cat.png", wantErr: true},
		{name: "garbage", input: "not a url", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewImageURL(tt.input)
			if tt.wantErr && err == nil {
				t.Fatalf("expected error for %q", tt.input)
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestNewPlatform(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		want     string
		wantName string
		wantErr  bool
	}{
		{name: "lowercase", input: "azure", want: "Azure", wantName: "azure"},
		{name: "uppercase", input: "AZURE", want: "Azure", wantName: "azure"},
		{name: "mixed case with spaces", input: "  Public ", want: "Public", wantName: "public"},
		{name: "stability", input: "stability", want: "Stability", wantName: "stability"},
		{name: "gemini", input: "gemini", want: "Gemini", wantName: "gemini"},
		{name: "unknown", input: "unknown", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPlatform(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.input)
				}
				if !IsValidation(err) {
					t.Errorf("expected validation error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p.String() != tt.want {
				t.Errorf("expected canonical %q, got %q", tt.want, p.String())
			}
			if p.Name() != tt.wantName {
				t.Errorf("expected name %q, got %q", tt.wantName, p.Name())
			}
		})
	}
}

func TestNewClassificationResult(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "single label", input: "food", want: "Food"},
		{name: "capitalized input", input: "Person", want: "Person"},
		{name: "none", input: "none", want: "None"},
		{name: "multi label sorted", input: "person, food", want: "Food, Person"},
		{name: "already sorted", input: "food, person", want: "Food, Person"},
		{name: "duplicates collapse", input: "food, Food, FOOD", want: "Food"},
		{name: "none with others", input: "none, food", wantErr: true},
		{name: "unknown label", input: "banana", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "only commas", input: ", ,", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewClassificationResult(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if r.String() != tt.want {
				t.Errorf("expected %q, got %q", tt.want, r.String())
			}
		})
	}
}

func TestClassificationResultNormalizationIdempotent(t *testing.T) {
	first, err := NewClassificationResult("PERSON, food")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := NewClassificationResult(first.String())
	if err != nil {
		t.Fatalf("unexpected error on renormalization: %v", err)
	}
	if second.String() != first.String() {
		t.Errorf("normalization not idempotent: %q then %q", first.String(), second.String())
	}
}
