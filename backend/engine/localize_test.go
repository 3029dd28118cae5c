package engine_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillcert/backend/engine"
	"skillcert/backend/models"
)

func sampleQuestion() models.Question {
	q := models.Question{
		Role:          "Welder",
		QuestionText:  "What shade of lens is used for arc welding?",
		OptionA:       "Shade 5",
		OptionB:       "Shade 10",
		OptionC:       "Clear",
		OptionD:       "Tinted sunglasses",
		CorrectOption: "B",
	}
	q.ID = 42
	return q
}

func TestLocalizePrimaryLanguagePassThrough(t *testing.T) {
	translator := newFakeTranslator()
	localizer := engine.NewLocalizer(translator, 16)
	q := sampleQuestion()

	view, updates := localizer.Localize(context.Background(), &q, "en")

	assert.Empty(t, updates)
	assert.Empty(t, translator.calls, "primary language must not translate")
	assert.Equal(t, q.QuestionText, view.QuestionText.Display)
	assert.Equal(t, q.OptionB, view.OptionB.Display)
	assert.Empty(t, view.QuestionText.Secondary)
}

func TestLocalizeUnsupportedLanguageFallsBack(t *testing.T) {
	translator := newFakeTranslator()
	localizer := engine.NewLocalizer(translator, 16)
	q := sampleQuestion()

	view, updates := localizer.Localize(context.Background(), &q, "fr")

	assert.Equal(t, engine.PrimaryLanguage, view.Language)
	assert.Empty(t, updates)
	assert.Equal(t, q.QuestionText, view.QuestionText.Display)
}

func TestLocalizeBackfillsMissingTranslations(t *testing.T) {
	translator := newFakeTranslator()
	localizer := engine.NewLocalizer(translator, 16)
	q := sampleQuestion()

	view, updates := localizer.Localize(context.Background(), &q, "ur")

	// All five fields were missing, so all five are backfilled.
	require.Len(t, updates, 5)
	assert.Equal(t, "[ur] "+q.QuestionText, view.QuestionText.Display)
	assert.Equal(t, q.QuestionText, view.QuestionText.Primary)
	assert.Equal(t, view.QuestionText.Display, q.QuestionTextUR)
	assert.NotEmpty(t, q.OptionDUR)
}

func TestLocalizeUsesStoredTranslations(t *testing.T) {
	translator := newFakeTranslator()
	localizer := engine.NewLocalizer(translator, 16)
	q := sampleQuestion()
	q.QuestionTextUR = "stored translation"

	view, updates := localizer.Localize(context.Background(), &q, "ur")

	assert.Equal(t, "stored translation", view.QuestionText.Display)
	// Only the four options were missing.
	assert.Len(t, updates, 4)
	assert.Zero(t, translator.calls[q.QuestionText], "stored field must not be retranslated")
}

func TestLocalizeIdempotent(t *testing.T) {
	translator := newFakeTranslator()
	localizer := engine.NewLocalizer(translator, 16)
	q := sampleQuestion()

	first, updates := localizer.Localize(context.Background(), &q, "ur")
	require.Len(t, updates, 5)

	second, updates := localizer.Localize(context.Background(), &q, "ur")
	assert.Empty(t, updates, "second pass must not backfill again")
	assert.Equal(t, first.QuestionText.Display, second.QuestionText.Display)
	assert.Equal(t, 1, translator.calls[q.QuestionText])

	// Primary text never changes.
	assert.Equal(t, sampleQuestion().QuestionText, q.QuestionText)
	assert.Equal(t, sampleQuestion().CorrectOption, q.CorrectOption)
}

func TestLocalizeMemoizesAcrossQuestions(t *testing.T) {
	translator := newFakeTranslator()
	localizer := engine.NewLocalizer(translator, 16)

	// Two distinct questions sharing literal option text, as real pools do.
	q1 := sampleQuestion()
	q2 := sampleQuestion()
	q2.ID = 43
	q2.QuestionText = "Which gas shields a MIG weld?"

	localizer.Localize(context.Background(), &q1, "ur")
	localizer.Localize(context.Background(), &q2, "ur")

	assert.Equal(t, 1, translator.calls[q1.OptionA], "shared literal translated once")
	assert.Equal(t, 1, translator.calls[q2.QuestionText])
}

func TestLocalizeTranslationFailureFallsBackPerField(t *testing.T) {
	translator := newFakeTranslator()
	translator.fail = true
	localizer := engine.NewLocalizer(translator, 16)
	q := sampleQuestion()
	q.OptionAUR = "stored option a"

	view, updates := localizer.Localize(context.Background(), &q, "ur")

	assert.Empty(t, updates)
	// Failed fields display primary text; the stored field still localizes.
	assert.Equal(t, q.QuestionText, view.QuestionText.Display)
	assert.Equal(t, "stored option a", view.OptionA.Display)
	assert.Empty(t, q.QuestionTextUR)
}

func TestLocalizeMemoizesFailures(t *testing.T) {
	translator := newFakeTranslator()
	translator.fail = true
	localizer := engine.NewLocalizer(translator, 16)
	q := sampleQuestion()

	localizer.Localize(context.Background(), &q, "ur")
	localizer.Localize(context.Background(), &q, "ur")

	assert.Equal(t, 1, translator.calls[q.QuestionText], "failure asked upstream once")
}

func TestNormalizeLanguage(t *testing.T) {
	assert.Equal(t, "ur", engine.NormalizeLanguage("ur"))
	assert.Equal(t, "ur", engine.NormalizeLanguage("UR"))
	assert.Equal(t, "en", engine.NormalizeLanguage("en"))
	assert.Equal(t, "en", engine.NormalizeLanguage(""))
	assert.Equal(t, "en", engine.NormalizeLanguage("de"))
}

func TestTranslateText(t *testing.T) {
	translator := newFakeTranslator()
	localizer := engine.NewLocalizer(translator, 16)

	translated, ok := localizer.TranslateText(context.Background(), "Safety first", "ur")
	assert.True(t, ok)
	assert.Equal(t, "[ur] Safety first", translated)

	_, ok = localizer.TranslateText(context.Background(), "", "ur")
	assert.False(t, ok)
}
