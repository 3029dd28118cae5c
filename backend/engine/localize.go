package engine

import (
	"context"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"skillcert/backend/models"
)

const (
	// PrimaryLanguage is always available: question text is authored in it.
	PrimaryLanguage = "en"
	// SecondaryLanguage is served from the stored translations, backfilled
	// lazily on first request.
	SecondaryLanguage = "ur"
)

// Translator produces a translation of text into the target language, or
// reports failure. Failures are a normal outcome (upstream down, timeout) and
// must never be treated as request-fatal.
type Translator interface {
	Translate(ctx context.Context, text, target string) (string, bool)
}

// Field is one localized text field: the text to display for the requested
// language, plus both underlying versions so a client can render bilingual UI
// without a second request.
type Field struct {
	Display   string
	Primary   string
	Secondary string // empty when no translation exists
}

// LocalizedQuestion is the per-session view of a question. It never carries
// the correct option.
type LocalizedQuestion struct {
	ID           uint
	Role         string
	Language     string
	QuestionText Field
	OptionA      Field
	OptionB      Field
	OptionC      Field
	OptionD      Field
}

// FieldUpdate is a translation produced during localization that still needs a
// durable write. The store applies it conditionally: only while the column is
// still empty.
type FieldUpdate struct {
	Column string
	Text   string
}

type cacheKey struct {
	text string
	lang string
}

type cacheEntry struct {
	text string
	ok   bool
}

// Localizer memoizes the translate function in a bounded LRU keyed by
// (text, language). Failed lookups are memoized too, so a dead upstream is
// asked once per literal string per process, not once per session.
type Localizer struct {
	translator Translator
	memo       *lru.Cache[cacheKey, cacheEntry]
}

// DefaultCacheSize bounds the memo when no size is configured. A tuning
// parameter, not a correctness property.
const DefaultCacheSize = 2048

func NewLocalizer(translator Translator, cacheSize int) *Localizer {
	if cacheSize < 1 {
		cacheSize = DefaultCacheSize
	}
	// lru.New only fails for a non-positive size, which is excluded above.
	memo, _ := lru.New[cacheKey, cacheEntry](cacheSize)
	return &Localizer{translator: translator, memo: memo}
}

// NormalizeLanguage maps a requested language code onto a supported one.
// Unsupported codes fall back to the primary language silently; localization
// is best-effort, not an error path.
func NormalizeLanguage(lang string) string {
	if strings.ToLower(lang) == SecondaryLanguage {
		return SecondaryLanguage
	}
	return PrimaryLanguage
}

// Localize builds the localized view of q for lang. When lang is the
// secondary language and a field has no stored translation, the translate
// function is consulted once; successes are written into q in memory and
// reported as FieldUpdates for the caller to persist. Primary text and the
// answer key are never touched. A failed translation leaves that one field
// displaying primary text; other fields are unaffected.
func (l *Localizer) Localize(ctx context.Context, q *models.Question, lang string) (*LocalizedQuestion, []FieldUpdate) {
	lang = NormalizeLanguage(lang)

	var updates []FieldUpdate

	localize := func(primary string, secondary *string, column string) Field {
		if lang == SecondaryLanguage && primary != "" && *secondary == "" {
			if translated, ok := l.translate(ctx, primary, SecondaryLanguage); ok {
				*secondary = translated
				updates = append(updates, FieldUpdate{Column: column, Text: translated})
			}
		}

		f := Field{Display: primary, Primary: primary, Secondary: *secondary}
		if lang == SecondaryLanguage && f.Secondary != "" {
			f.Display = f.Secondary
		}
		return f
	}

	view := &LocalizedQuestion{
		ID:       q.ID,
		Role:     q.Role,
		Language: lang,
	}
	view.QuestionText = localize(q.QuestionText, &q.QuestionTextUR, "question_text_ur")
	view.OptionA = localize(q.OptionA, &q.OptionAUR, "option_a_ur")
	view.OptionB = localize(q.OptionB, &q.OptionBUR, "option_b_ur")
	view.OptionC = localize(q.OptionC, &q.OptionCUR, "option_c_ur")
	view.OptionD = localize(q.OptionD, &q.OptionDUR, "option_d_ur")

	return view, updates
}

// TranslateText exposes the memoized translate function directly, for the
// standalone translation endpoint.
func (l *Localizer) TranslateText(ctx context.Context, text, target string) (string, bool) {
	if text == "" {
		return "", false
	}
	return l.translate(ctx, text, strings.ToLower(target))
}

func (l *Localizer) translate(ctx context.Context, text, target string) (string, bool) {
	key := cacheKey{text: text, lang: target}
	if entry, ok := l.memo.Get(key); ok {
		return entry.text, entry.ok
	}

	translated, ok := l.translator.Translate(ctx, text, target)
	l.memo.Add(key, cacheEntry{text: translated, ok: ok})
	return translated, ok
}
