package slug

import (
	"math/rand"
	"regexp"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

var validPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

func TestSlugify_Examples(t *testing.T) {
	assert.Equal(t, "project", Slugify("", nil))
	assert.Equal(t, "hello-world", Slugify("Hello World!", nil))
	assert.Equal(t, "hello-world-2", Slugify("Hello World!", []string{"hello-world"}))
}

func TestSlugify_Normalization(t *testing.T) {
	cases := map[string]string{
		"  Multiple   Spaces  ":            "multiple-spaces",
		"Already-Hyphen--ated":             "already-hyphen-ated",
		"--Leading and trailing--":         "leading-and-trailing",
		"Tabs\tand\nnewlines":              "tabs-and-newlines",
		"Café Über":                        "caf-ber",
		"!!!":                              "project",
		"v2.0 Release":                     "v20-release",
		"Hello\u00a0World":                 "hello-world",
		"Thin\u2009Space\u3000Ideographic": "thin-space-ideographic",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in, nil), "input %q", in)
	}
}

func TestSlugify_FirstFreeSuffix(t *testing.T) {
	existing := []string{"demo", "demo-2", "demo-4"}
	assert.Equal(t, "demo-3", Slugify("Demo", existing))
	assert.Equal(t, "project-2", Slugify("", []string{"project"}))
}

func TestSlugify_Deterministic(t *testing.T) {
	assert.Equal(t, Slugify("Same Title", nil), Slugify("Same Title", nil))
	existing := []string{"same-title"}
	assert.Equal(t, Slugify("Same Title", existing), Slugify("Same Title", existing))
}

func TestSlugify_Properties(t *testing.T) {
	alphabet := []rune("abcXYZ019 -_!?.éß\t")
	r := rand.New(rand.NewSource(42))

	for i := 0; i < 500; i++ {
		title := make([]rune, r.Intn(24))
		for j := range title {
			title[j] = alphabet[r.Intn(len(alphabet))]
		}

		var existing []string
		for j := 0; j < r.Intn(4); j++ {
			existing = append(existing, Slugify(string(title), existing))
		}

		got := Slugify(string(title), existing)
		assert.NotEmpty(t, got)
		assert.Regexp(t, validPattern, got)
		assert.False(t, slices.Contains(existing, got), "slug %q collides with %v", got, existing)
	}
}
