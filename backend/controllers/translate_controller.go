package controllers

import (
	"github.com/gofiber/fiber/v2"

	"skillcert/backend/engine"
)

// TranslateController exposes the memoized translator for bulk UI strings.
type TranslateController struct {
	Localizer *engine.Localizer
}

func NewTranslateController(localizer *engine.Localizer) *TranslateController {
	return &TranslateController{Localizer: localizer}
}

func (tc *TranslateController) TranslateTexts(c *fiber.Ctx) error {
	var input struct {
		Texts  []string `json:"texts"`
		Target string   `json:"target"`
	}

	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "texts must be a list of strings",
		})
	}

	target := input.Target
	if target == "" {
		target = engine.SecondaryLanguage
	}

	translations := make([]interface{}, 0, len(input.Texts))
	for _, text := range input.Texts {
		if translated, ok := tc.Localizer.TranslateText(c.UserContext(), text, target); ok {
			translations = append(translations, translated)
		} else {
			translations = append(translations, nil)
		}
	}

	return c.JSON(fiber.Map{
		"target":       target,
		"translations": translations,
	})
}
