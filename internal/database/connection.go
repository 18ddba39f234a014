package database

import (
	"fmt"
	"time"

	"github.com/ndemidov/trivia_bot/internal/config"
	"github.com/ndemidov/trivia_bot/internal/models"
	"github.com/ndemidov/trivia_bot/pkg/logger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func Connect(cfg *config.Config) (*gorm.DB, error) {
	dsn := cfg.GetDSN()

	var logLevel gormlogger.LogLevel
	if cfg.AppEnv == "development" {
		logLevel = gormlogger.Info
	} else {
		logLevel = gormlogger.Error
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
		SkipDefaultTransaction: true, // Skip wrapping every operation in a transaction
		PrepareStmt:            true, // Cache prepared statements
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	logger.Info("Database connected successfully")
	return db, nil
}

func AutoMigrate(db *gorm.DB) error {
	logger.Info("Running database migrations...")

	err := db.AutoMigrate(
		&models.Player{},
		&models.Game{},
		&models.GameScore{},
		&models.Theme{},
		&models.Question{},
		&models.Answer{},
		&models.Round{},
		&models.RoundTheme{},
	)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	logger.Info("Database migrations completed successfully")
	return nil
}

// SeedQuestions makes sure a fresh database has enough themes to build a
// round menu. Real content comes in through the admin API or the xlsx
// import script.
func SeedQuestions(db *gorm.DB) error {
	var themeCount int64
	db.Model(&models.Theme{}).Count(&themeCount)
	if themeCount >= 3 {
		return nil
	}

	logger.Info("Seeding demo themes and questions...")

	seed := []struct {
		theme     string
		questions []struct {
			title   string
			points  int
			answers []string
		}
	}{
		{
			theme: "Geography",
			questions: []struct {
				title   string
				points  int
				answers []string
			}{
				{"Capital of France", 10, []string{"Paris"}},
				{"Longest river in the world", 20, []string{"Nile", "The Nile"}},
				{"Largest ocean on Earth", 30, []string{"Pacific", "Pacific Ocean"}},
			},
		},
		{
			theme: "Science",
			questions: []struct {
				title   string
				points  int
				answers []string
			}{
				{"Chemical symbol Au stands for this metal", 10, []string{"Gold"}},
				{"Planet known as the Red Planet", 20, []string{"Mars"}},
				{"The powerhouse of the cell", 30, []string{"Mitochondria", "Mitochondrion"}},
			},
		},
		{
			theme: "History",
			questions: []struct {
				title   string
				points  int
				answers []string
			}{
				{"Year the Berlin Wall fell", 10, []string{"1989"}},
				{"First person in space", 20, []string{"Gagarin", "Yuri Gagarin"}},
				{"Ancient wonder located in Giza", 30, []string{"Great Pyramid", "Pyramid of Giza", "The Great Pyramid of Giza"}},
			},
		},
	}

	for _, t := range seed {
		theme := models.Theme{Title: t.theme}
		if err := db.Where(models.Theme{Title: t.theme}).FirstOrCreate(&theme).Error; err != nil {
			return fmt.Errorf("failed to seed theme %q: %w", t.theme, err)
		}

		for _, q := range t.questions {
			var existing models.Question
			err := db.Where("theme_id = ? AND title = ?", theme.ID, q.title).First(&existing).Error
			if err == nil {
				continue
			}
			if err != gorm.ErrRecordNotFound {
				return fmt.Errorf("failed to check question %q: %w", q.title, err)
			}

			question := models.Question{ThemeID: theme.ID, Title: q.title, Points: q.points}
			for _, a := range q.answers {
				question.Answers = append(question.Answers, models.Answer{Title: a})
			}
			if err := db.Create(&question).Error; err != nil {
				return fmt.Errorf("failed to seed question %q: %w", q.title, err)
			}
		}
	}

	return nil
}
