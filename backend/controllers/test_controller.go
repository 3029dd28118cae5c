package controllers

import (
	"errors"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"skillcert/backend/config"
	"skillcert/backend/engine"
	"skillcert/backend/models"
	"skillcert/backend/utils"
)

// TestController serves the quiz flow: sampled localized questions in,
// scored attempts out, plus the attempt history and the repayment reset.
type TestController struct {
	DB        *gorm.DB
	Cfg       *config.Config
	Sampler   *engine.Sampler
	Localizer *engine.Localizer
	Evaluator *engine.Evaluator
	Gate      *engine.ResetGate
	Bank      engine.QuestionBank
	Ledger    engine.Ledger
	Logger    *log.Logger
}

func NewTestController(db *gorm.DB, cfg *config.Config, bank engine.QuestionBank, ledger engine.Ledger, localizer *engine.Localizer, logger *log.Logger) *TestController {
	if logger == nil {
		logger = log.Default()
	}
	return &TestController{
		DB:        db,
		Cfg:       cfg,
		Sampler:   engine.NewSampler(bank),
		Localizer: localizer,
		Evaluator: engine.NewEvaluator(bank, ledger),
		Gate:      engine.NewResetGate(ledger),
		Bank:      bank,
		Ledger:    ledger,
		Logger:    logger,
	}
}

func orNil(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func questionMap(view *engine.LocalizedQuestion) fiber.Map {
	return fiber.Map{
		"id":               view.ID,
		"role":             view.Role,
		"question_text":    view.QuestionText.Display,
		"question_text_en": view.QuestionText.Primary,
		"question_text_ur": orNil(view.QuestionText.Secondary),
		"option_a":         view.OptionA.Display,
		"option_a_en":      view.OptionA.Primary,
		"option_a_ur":      orNil(view.OptionA.Secondary),
		"option_b":         view.OptionB.Display,
		"option_b_en":      view.OptionB.Primary,
		"option_b_ur":      orNil(view.OptionB.Secondary),
		"option_c":         view.OptionC.Display,
		"option_c_en":      view.OptionC.Primary,
		"option_c_ur":      orNil(view.OptionC.Secondary),
		"option_d":         view.OptionD.Display,
		"option_d_en":      view.OptionD.Primary,
		"option_d_ur":      orNil(view.OptionD.Secondary),
	}
}

// GetQuestions samples a fresh 10-question session for the role and localizes
// it. Translations produced along the way are written back to the store, but
// a failed write-back never fails the request: the user still gets the text.
func (tc *TestController) GetQuestions(c *fiber.Ctx) error {
	if _, err := utils.ExtractUserIDFromToken(c, tc.Cfg); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	role := c.Params("role")
	language := engine.NormalizeLanguage(c.Query("lang", engine.PrimaryLanguage))

	selected, err := tc.Sampler.Sample(role)
	if err != nil {
		if errors.Is(err, engine.ErrInsufficientPool) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Not enough questions available for " + role + ". Need at least 10.",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	questions := make([]fiber.Map, 0, len(selected))
	for i := range selected {
		view, updates := tc.Localizer.Localize(c.UserContext(), &selected[i], language)
		if len(updates) > 0 {
			if err := tc.Bank.SaveTranslations(selected[i].ID, updates); err != nil {
				tc.Logger.Printf("could not persist translations for question %d: %v", selected[i].ID, err)
			}
		}
		questions = append(questions, questionMap(view))
	}

	return c.JSON(fiber.Map{
		"questions": questions,
		"language":  language,
	})
}

// SubmitTest scores a submission and appends the attempt per the progression
// policy.
func (tc *TestController) SubmitTest(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, tc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var input struct {
		Answers map[string]string `json:"answers"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if input.Answers == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Answers are required",
		})
	}

	var user models.User
	if err := tc.DB.First(&user, userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	// JSON object keys are strings; unparsable ids are dropped the same way
	// unknown ids are.
	answers := make(map[uint]string, len(input.Answers))
	for rawID, selected := range input.Answers {
		id, err := strconv.ParseUint(rawID, 10, 64)
		if err != nil {
			continue
		}
		answers[uint(id)] = selected
	}

	result, err := tc.Evaluator.Submit(userID, answers)
	if err != nil {
		if errors.Is(err, engine.ErrLedgerConflict) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "Could not record attempt, please retry",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not save attempt",
		})
	}

	return c.JSON(fiber.Map{
		"score":          result.Score,
		"total":          result.Total,
		"passed":         result.Passed,
		"attempt_number": result.AttemptNumber,
		"message":        result.Message,
		"can_retry":      result.CanRetry,
	})
}

func (tc *TestController) GetAttempts(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, tc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	attempts, err := tc.Ledger.History(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	result := make([]fiber.Map, 0, len(attempts))
	for _, attempt := range attempts {
		result = append(result, fiber.Map{
			"id":             attempt.ID,
			"user_id":        attempt.UserID,
			"score":          attempt.Score,
			"attempt_number": attempt.AttemptNumber,
			"passed":         attempt.Passed,
			"timestamp":      attempt.CreatedAt.Format(time.RFC3339),
		})
	}

	return c.JSON(fiber.Map{"attempts": result})
}

func (tc *TestController) GetAttemptCount(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, tc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	count, err := tc.Ledger.Count(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	hasPassed, err := tc.Ledger.HasPassed(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	return c.JSON(fiber.Map{
		"attempt_count": count,
		"has_passed":    hasPassed,
	})
}

// ResetAttempts wipes the caller's history after repayment, when the gate
// allows it.
func (tc *TestController) ResetAttempts(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, tc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	if err := tc.Gate.AuthorizeReset(userID); err != nil {
		switch {
		case errors.Is(err, engine.ErrAlreadyPassed):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Cannot reset attempts after passing the test",
			})
		case errors.Is(err, engine.ErrNotYetEligible):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Repayment not required yet",
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Could not reset attempts",
			})
		}
	}

	return c.JSON(fiber.Map{
		"message":       "Attempts reset successfully",
		"attempt_count": 0,
	})
}
