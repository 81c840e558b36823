package carofday

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveDisplayName(t *testing.T) {
	t.Run("nickname wins and is quoted", func(t *testing.T) {
		name := DeriveDisplayName(VehicleInfo{
			Year: "1969", Make: "Chevrolet", Model: "Camaro", Nickname: "Betty",
		})
		assert.Equal(t, `"Betty"`, name)
	})

	t.Run("year make model joined", func(t *testing.T) {
		name := DeriveDisplayName(VehicleInfo{Year: "1969", Make: "Chevrolet", Model: "Camaro"})
		assert.Equal(t, "1969 Chevrolet Camaro", name)
	})

	t.Run("partial fields skip blanks", func(t *testing.T) {
		name := DeriveDisplayName(VehicleInfo{Make: "Chevrolet", Model: "Camaro"})
		assert.Equal(t, "Chevrolet Camaro", name)
	})

	t.Run("placeholder when nothing known", func(t *testing.T) {
		assert.Equal(t, PlaceholderDisplayName, DeriveDisplayName(VehicleInfo{}))
		assert.Equal(t, PlaceholderDisplayName, DeriveDisplayName(VehicleInfo{Year: "  "}))
	})
}

func TestComposePromptsAreDeterministic(t *testing.T) {
	facts := PromptFacts{
		Vehicle:      VehicleInfo{Year: "1969", Make: "Chevrolet", Model: "Camaro", Color: "red"},
		DisplayName:  "1969 Chevrolet Camaro",
		BusinessName: "Rev Garage",
		Location:     "Austin, TX",
	}

	for tag, spec := range VariantSpecs {
		first := spec.Compose(facts)
		second := spec.Compose(facts)
		assert.Equal(t, first, second, "prompt for %s must be deterministic", tag)
		assert.Contains(t, first, "1969 Chevrolet Camaro")
		assert.Contains(t, first, "Rev Garage")
	}
}

func TestComposeOwnerLikenessOnlyWhenPhotoPresent(t *testing.T) {
	withPhoto := PromptFacts{
		DisplayName: "Test Car", BusinessName: "Rev Garage", Location: "Austin, TX",
		HasOwnerPhoto: true,
	}
	withoutPhoto := withPhoto
	withoutPhoto.HasOwnerPhoto = false

	for _, tag := range []string{VariantComic, VariantActionFigure, VariantMoviePoster} {
		spec := VariantSpecs[tag]
		assert.Contains(t, spec.Compose(withPhoto), "OWNER LIKENESS", "variant %s", tag)
		assert.NotContains(t, spec.Compose(withoutPhoto), "OWNER LIKENESS", "variant %s", tag)
	}
}

func TestBuildCaption(t *testing.T) {
	t.Run("deterministic per variant", func(t *testing.T) {
		for _, tag := range DefaultVariants {
			first := BuildCaption(tag, "1969 Chevrolet Camaro", "speedy_sam", "Rev Garage")
			second := BuildCaption(tag, "1969 Chevrolet Camaro", "speedy_sam", "Rev Garage")
			assert.Equal(t, first, second)
			assert.Contains(t, first, "1969 Chevrolet Camaro")
			assert.Contains(t, first, "Rev Garage")
			assert.Contains(t, first, "@speedy_sam")
		}
	})

	t.Run("no handle omits shout-out", func(t *testing.T) {
		caption := BuildCaption(VariantOfficial, "Test Car", "", "Rev Garage")
		assert.NotContains(t, caption, "Shout-out")
	})

	t.Run("handle prefix stripped", func(t *testing.T) {
		caption := BuildCaption(VariantComic, "Test Car", "@speedy_sam", "Rev Garage")
		assert.Contains(t, caption, "@speedy_sam")
		assert.NotContains(t, caption, "@@")
	})
}
