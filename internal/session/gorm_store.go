package session

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultSlot names the row holding the dashboard token.
const DefaultSlot = "access_token"

// TokenRow is one token slot in the 'session_tokens' table.
type TokenRow struct {
	Name      string    `gorm:"primaryKey;size:64"`
	Token     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (TokenRow) TableName() string { return "session_tokens" }

// GormStore keeps the token in one database row.
type GormStore struct {
	db   *gorm.DB
	slot string
}

func NewGormStore(db *gorm.DB, slot string) *GormStore {
	if slot == "" {
		slot = DefaultSlot
	}
	return &GormStore{db: db, slot: slot}
}

// Migrate creates the session_tokens table.
func (g *GormStore) Migrate() error {
	return g.db.AutoMigrate(&TokenRow{})
}

func (g *GormStore) Load(ctx context.Context) (string, error) {
	var row TokenRow
	err := g.db.WithContext(ctx).Where("name = ?", g.slot).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrNoToken
	}
	if err != nil {
		return "", err
	}
	if row.Token == "" {
		return "", ErrNoToken
	}
	return row.Token, nil
}

func (g *GormStore) Save(ctx context.Context, token string) error {
	row := TokenRow{Name: g.slot, Token: token}
	return g.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&row).Error
}

func (g *GormStore) Delete(ctx context.Context) error {
	return g.db.WithContext(ctx).Where("name = ?", g.slot).Delete(&TokenRow{}).Error
}
