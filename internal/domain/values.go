package domain

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// Value objects validate on construction and expose their canonical string.
// An entity built from them can never carry invalid data into the event log
// or the read store.

// ImageDescription is a non-empty prompt of at most 500 characters.
type ImageDescription struct {
	value string
}

const maxDescriptionLen = 500

// NewImageDescription validates a prompt string.
// Parameters:
//   - value: raw description text.
// Returns:
//   - ImageDescription: validated value object.
//   - error: *ValidationError if the description is blank or too long.
func NewImageDescription(value string) (ImageDescription, error) {
	if strings.TrimSpace(value) == "" {
		return ImageDescription{}, newValidationError("description", "must not be empty")
	}
	if len([]rune(value)) > maxDescriptionLen {
		return ImageDescription{}, newValidationError("description",
			fmt.Sprintf("exceeds the %d character limit", maxDescriptionLen))
	}
	return ImageDescription{value: value}, nil
}

func (d ImageDescription) String() string { return d.value }

// Base64Data is a non-empty string that decodes as standard base64.
type Base64Data struct {
	value string
}

// NewBase64Data validates a base64 payload.
// Parameters:
//   - value: raw base64 string.
// Returns:
//   - Base64Data: validated value object.
//   - error: *ValidationError if the payload is blank or not valid base64.
func NewBase64Data(value string) (Base64Data, error) {
	if strings.TrimSpace(value) == "" {
		return Base64Data{}, newValidationError("base64 data", "must not be empty")
	}
	if _, err := base64.StdEncoding.DecodeString(value); err != nil {
		return Base64Data{}, newValidationError("base64 data", "not a valid base64 string")
	}
	return Base64Data{value: value}, nil
}

func (b Base64Data) String() string { return b.value }

// ImageURL is a non-empty, absolute URL.
type ImageURL struct {
	value string
}

// NewImageURL validates an image URL.
// Parameters:
//   - value: raw URL string.
// Returns:
//   - ImageURL: validated value object.
//   - error: *ValidationError if the URL is blank or not absolute.
func NewImageURL(value string) (ImageURL, error) {
	if strings.TrimSpace(value) == "" {
		return ImageURL{}, newValidationError("image URL", "must not be empty")
	}
	u, err := url.Parse(value)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return ImageURL{}, newValidationError("image URL", "not an absolute URL")
	}
	return ImageURL{value: value}, nil
}

func (u ImageURL) String() string { return u.value }

// allowedPlatforms is the fixed set of generation backends, keyed by the
// lower-cased platform name.
var allowedPlatforms = map[string]struct{}{
	"public":      {},
	"azure":       {},
	"stability":   {},
	"google":      {},
	"huggingface": {},
	"gemini":      {},
}

// Platform is a generation backend name from the fixed allow-list.
// The canonical form is capitalized ("Azure"); Name returns the
// lower-cased form used for provider selection.
type Platform struct {
	value string
}

// NewPlatform validates a platform name case-insensitively.
// Parameters:
//   - value: raw platform name.
// Returns:
//   - Platform: validated value object with capitalized canonical form.
//   - error: *ValidationError if the name is blank or not allow-listed.
func NewPlatform(value string) (Platform, error) {
	if strings.TrimSpace(value) == "" {
		return Platform{}, newValidationError("platform", "must not be empty")
	}
	name := strings.ToLower(strings.TrimSpace(value))
	if _, ok := allowedPlatforms[name]; !ok {
		return Platform{}, newValidationError("platform",
			fmt.Sprintf("unrecognized platform %q", value))
	}
	return Platform{value: capitalize(name)}, nil
}

func (p Platform) String() string { return p.value }

// Name returns the lower-cased platform name.
func (p Platform) Name() string { return strings.ToLower(p.value) }

// allowedLabels is the fixed set of classification labels, keyed by the
// lower-cased label.
var allowedLabels = map[string]struct{}{
	"food":   {},
	"person": {},
	"none":   {},
}

// ClassificationResult is a normalized classification label set. Multiple
// labels are comma-joined in alphabetic order and capitalized; "None" is
// mutually exclusive with any other label.
type ClassificationResult struct {
	value string
}

// NewClassificationResult validates and normalizes a raw label string.
// Parameters:
//   - value: raw label string, e.g. "person, food".
// Returns:
//   - ClassificationResult: normalized value object, e.g. "Food, Person".
//   - error: *ValidationError on unknown labels or a "None" combination.
func NewClassificationResult(value string) (ClassificationResult, error) {
	if strings.TrimSpace(value) == "" {
		return ClassificationResult{}, newValidationError("classification result", "must not be empty")
	}

	seen := make(map[string]struct{})
	var labels []string
	for _, part := range strings.Split(value, ",") {
		label := strings.ToLower(strings.TrimSpace(part))
		if label == "" {
			continue
		}
		if _, ok := allowedLabels[label]; !ok {
			return ClassificationResult{}, newValidationError("classification result",
				fmt.Sprintf("unrecognized label %q; allowed labels are Food, Person and None", part))
		}
		if _, dup := seen[label]; dup {
			continue
		}
		seen[label] = struct{}{}
		labels = append(labels, label)
	}
	if len(labels) == 0 {
		return ClassificationResult{}, newValidationError("classification result", "must not be empty")
	}
	if _, hasNone := seen["none"]; hasNone && len(labels) > 1 {
		return ClassificationResult{}, newValidationError("classification result",
			`"None" cannot be combined with other labels`)
	}

	sort.Strings(labels)
	for i, label := range labels {
		labels[i] = capitalize(label)
	}
	return ClassificationResult{value: strings.Join(labels, ", ")}, nil
}

func (c ClassificationResult) String() string { return c.value }

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
