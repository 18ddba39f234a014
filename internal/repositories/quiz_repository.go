package repositories

import (
	"github.com/ndemidov/trivia_bot/internal/models"
	"github.com/ndemidov/trivia_bot/pkg/errors"
	"github.com/ndemidov/trivia_bot/pkg/utils"
	"gorm.io/gorm"
)

type QuizRepository struct {
	db *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{db: db}
}

// GetQuestion retrieves a question with its accepted answers.
func (r *QuizRepository) GetQuestion(id uint) (*models.Question, error) {
	var question models.Question
	result := r.db.Preload("Answers").First(&question, id)

	if result.Error == gorm.ErrRecordNotFound {
		return nil, errors.New(errors.ErrCodeNotFound, "question not found")
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to get question")
	}

	return &question, nil
}

// MatchAnswer reports whether the given free text matches any of the
// accepted answers after normalization.
func (r *QuizRepository) MatchAnswer(given string, answers []models.Answer) bool {
	normalized := utils.NormalizeAnswer(given)
	if normalized == "" {
		return false
	}
	for _, answer := range answers {
		if utils.NormalizeAnswer(answer.Title) == normalized {
			return true
		}
	}
	return false
}

// ListThemes retrieves all themes without their questions.
func (r *QuizRepository) ListThemes() ([]models.Theme, error) {
	var themes []models.Theme
	if err := r.db.Order("id ASC").Find(&themes).Error; err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to list themes")
	}
	return themes, nil
}

// ListQuestions retrieves questions, optionally filtered by theme.
func (r *QuizRepository) ListQuestions(themeID uint) ([]models.Question, error) {
	query := r.db.Preload("Answers").Order("id ASC")
	if themeID != 0 {
		query = query.Where("theme_id = ?", themeID)
	}

	var questions []models.Question
	if err := query.Find(&questions).Error; err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to list questions")
	}
	return questions, nil
}

// CreateTheme creates a theme with a unique title.
func (r *QuizRepository) CreateTheme(title string) (*models.Theme, error) {
	theme := &models.Theme{Title: title}
	result := r.db.Where(models.Theme{Title: title}).FirstOrCreate(theme)
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to create theme")
	}
	if result.RowsAffected == 0 {
		return nil, errors.New(errors.ErrCodeAlreadyExists, "theme already exists")
	}

	return theme, nil
}

// CreateQuestion creates a question with its accepted answers.
func (r *QuizRepository) CreateQuestion(themeID uint, title string, points int, answers []string) (*models.Question, error) {
	if len(answers) == 0 {
		return nil, errors.New(errors.ErrCodeValidation, "question needs at least one answer")
	}

	question := &models.Question{ThemeID: themeID, Title: title, Points: points}
	for _, answer := range answers {
		question.Answers = append(question.Answers, models.Answer{Title: answer})
	}

	if err := r.db.Create(question).Error; err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to create question")
	}

	return question, nil
}
