package models

import (
	"fmt"
	"time"
)

type Player struct {
	TgID      int64  `gorm:"primaryKey"`
	Name      string `gorm:"not null"`
	LastName  string
	Username  string
	WinCounts int       `gorm:"default:0"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Player) TableName() string {
	return "players"
}

// Mention renders an HTML link that notifies the player in chat.
func (p *Player) Mention() string {
	return fmt.Sprintf(`<a href="tg://user?id=%d">%s</a>`, p.TgID, p.Name)
}
