// Package validate checks project payloads field by field. Input is the raw
// decoded JSON object so that wrong types are reported as missing values
// instead of decode failures.
package validate

import (
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/dieledev/showcase/internal/model"
)

const (
	UploadPrefix = "/uploads/"

	maxTags   = 10
	maxTagLen = 20
)

// FieldErrors maps a field name to a human readable message. Empty means valid.
type FieldErrors map[string]string

var urls = validator.New()

// Project validates candidate. With partial set, absent fields are skipped;
// tags are checked whenever present.
func Project(candidate map[string]any, partial bool) FieldErrors {
	errs := FieldErrors{}
	check := func(field string) bool {
		_, present := candidate[field]
		return !partial || present
	}

	if check("title") {
		if msg := length(Text(candidate["title"]), "Title", 3, 100); msg != "" {
			errs["title"] = msg
		}
	}
	if check("description") {
		if msg := length(Text(candidate["description"]), "Description", 10, 2000); msg != "" {
			errs["description"] = msg
		}
	}
	if check("imageUrl") {
		u := Text(candidate["imageUrl"])
		switch {
		case u == "":
			errs["imageUrl"] = "Image is required"
		case strings.HasPrefix(u, UploadPrefix):
		case !strings.HasPrefix(u, "https://"):
			errs["imageUrl"] = "Image must be an uploaded file or an https:// URL"
		case !wellFormed(u):
			errs["imageUrl"] = "Invalid URL format"
		}
	}
	if check("linkUrl") {
		u := Text(candidate["linkUrl"])
		switch {
		case u == "":
			errs["linkUrl"] = "Link URL is required"
		case !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://"):
			errs["linkUrl"] = "Link URL must start with http:// or https://"
		case !wellFormed(u):
			errs["linkUrl"] = "Invalid URL format"
		}
	}
	if raw, ok := candidate["tags"]; ok {
		if msg := tags(raw); msg != "" {
			errs["tags"] = msg
		}
	}
	if check("status") {
		s, _ := candidate["status"].(string)
		if model.ValidateStatus(model.Status(s)) != nil {
			errs["status"] = "Status must be WIP, Live, or Archived"
		}
	}
	return errs
}

// Text returns v trimmed when it is a string and "" otherwise.
func Text(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

func length(s, name string, min, max int) string {
	n := len([]rune(s))
	switch {
	case n == 0:
		return name + " is required"
	case n < min:
		return name + " must be at least " + strconv.Itoa(min) + " characters"
	case n > max:
		return name + " must be at most " + strconv.Itoa(max) + " characters"
	}
	return ""
}

func tags(raw any) string {
	list, ok := raw.([]any)
	if !ok {
		if _, typed := raw.([]string); !typed {
			return "Tags must be an array"
		}
		for _, s := range raw.([]string) {
			list = append(list, s)
		}
	}
	if len(list) > maxTags {
		return "Maximum 10 tags allowed"
	}
	for _, t := range list {
		s, ok := t.(string)
		n := len([]rune(strings.TrimSpace(s)))
		if !ok || n == 0 || n > maxTagLen {
			return "Each tag must be 1-20 characters"
		}
	}
	return ""
}

func wellFormed(u string) bool {
	return urls.Var(u, "url") == nil
}
