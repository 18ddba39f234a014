package models

type Theme struct {
	ID        uint       `gorm:"primaryKey"`
	Title     string     `gorm:"not null;uniqueIndex"`
	Questions []Question `gorm:"foreignKey:ThemeID;constraint:OnDelete:CASCADE"`
}

func (Theme) TableName() string {
	return "themes"
}

type Question struct {
	ID      uint   `gorm:"primaryKey"`
	ThemeID uint   `gorm:"not null;index"`
	Title   string `gorm:"type:text;not null"`
	Points  int    `gorm:"default:10"`

	Answers []Answer `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE"`
}

func (Question) TableName() string {
	return "questions"
}

type Answer struct {
	ID         uint   `gorm:"primaryKey"`
	QuestionID uint   `gorm:"not null;index"`
	Title      string `gorm:"type:text;not null"`
}

func (Answer) TableName() string {
	return "answers"
}

// Round is an ordered block of themes inside one game.
type Round struct {
	ID     uint `gorm:"primaryKey"`
	GameID uint `gorm:"not null;index"`
	Number int  `gorm:"default:0"`

	Themes []RoundTheme `gorm:"foreignKey:RoundID;constraint:OnDelete:CASCADE"`
}

func (Round) TableName() string {
	return "rounds"
}

// QuestionTotal counts the questions across all themes of the round.
func (r *Round) QuestionTotal() int {
	total := 0
	for i := range r.Themes {
		total += len(r.Themes[i].Theme.Questions)
	}
	return total
}

type RoundTheme struct {
	ID      uint  `gorm:"primaryKey"`
	RoundID uint  `gorm:"not null;index"`
	ThemeID uint  `gorm:"not null;index"`
	Theme   Theme `gorm:"foreignKey:ThemeID;constraint:OnDelete:CASCADE"`
}

func (RoundTheme) TableName() string {
	return "round_themes"
}
