package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/ndemidov/trivia_bot/internal/models"
	"github.com/xuri/excelize/v2"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Imports themes and questions from an xlsx workbook: one sheet per theme,
// each row "question | points | answer1;answer2;...". First row is a header.
func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: import_questions <file.xlsx>")
	}

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"), os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"), os.Getenv("DB_PORT"))

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect database:", err)
	}

	f, err := excelize.OpenFile(os.Args[1])
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	totalImported := 0

	for _, sheetName := range f.GetSheetList() {
		fmt.Printf("Importing sheet: %s\n", sheetName)

		rows, err := f.GetRows(sheetName)
		if err != nil {
			fmt.Printf("Error reading sheet %s: %v\n", sheetName, err)
			continue
		}

		theme := models.Theme{Title: sheetName}
		if err := db.Where(models.Theme{Title: sheetName}).FirstOrCreate(&theme).Error; err != nil {
			fmt.Printf("Error creating theme %s: %v\n", sheetName, err)
			continue
		}

		for i, row := range rows {
			if i == 0 || len(row) < 3 { // Skip header or invalid rows
				continue
			}

			title := strings.TrimSpace(row[0])
			if title == "" {
				continue
			}

			points, err := strconv.Atoi(strings.TrimSpace(row[1]))
			if err != nil || points <= 0 {
				fmt.Printf("Invalid points %q in row %d of %s\n", row[1], i+1, sheetName)
				continue
			}

			question := models.Question{ThemeID: theme.ID, Title: title, Points: points}
			for _, a := range strings.Split(row[2], ";") {
				if a = strings.TrimSpace(a); a != "" {
					question.Answers = append(question.Answers, models.Answer{Title: a})
				}
			}
			if len(question.Answers) == 0 {
				fmt.Printf("No answers in row %d of %s\n", i+1, sheetName)
				continue
			}

			if err := db.Create(&question).Error; err != nil {
				fmt.Printf("Error creating question in row %d: %v\n", i+1, err)
			} else {
				totalImported++
			}
		}
	}

	fmt.Printf("Successfully imported %d questions.\n", totalImported)
}
