// This file is part of symanalysis.
//
// symanalysis is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// symanalysis is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with symanalysis.  If not, see <https://www.gnu.org/licenses/>.

// Package sqlstore implements the prefs.Store interface on top of a SQL
// database. The database is accessed through gorm and can be either sqlite or
// postgres.
//
// All settings are kept in a single table. Each row belongs to a layer, which
// allows the global settings and the settings for every game to share the
// same database.
package sqlstore

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"github.com/jetsetilly/symanalysis/logger"
)

// GlobalLayer is the name of the layer used for global settings.
const GlobalLayer = ""

// setting is a single row in the settings table.
type setting struct {
	Layer   string `gorm:"primaryKey"`
	Section string `gorm:"primaryKey"`
	Name    string `gorm:"primaryKey"`
	Value   string
}

func (setting) TableName() string {
	return "settings"
}

// DB is a connection to the settings database.
type DB struct {
	db *gorm.DB
}

// dialector chooses the gorm dialector for the DSN. postgres DSNs are either
// URLs or key/value strings, everything else is treated as a sqlite filename.
func dialector(dsn string) gorm.Dialector {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") || strings.Contains(dsn, "host=") {
		return postgres.Open(dsn)
	}
	return sqlite.Open(dsn)
}

// Open the settings database described by the DSN.
func Open(dsn string) (*DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("sqlstore: empty DSN")
	}

	db, err := gorm.Open(dialector(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("sqlstore: %w", err)
	}

	return New(db)
}

// New prepares an existing gorm connection for use as a settings database.
// The settings table is created if necessary.
func New(db *gorm.DB) (*DB, error) {
	if err := db.AutoMigrate(&setting{}); err != nil {
		return nil, fmt.Errorf("sqlstore: %w", err)
	}
	return &DB{db: db}, nil
}

// Close the underlying database connection.
func (d *DB) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return fmt.Errorf("sqlstore: %w", err)
	}
	return sqlDB.Close()
}

// Store returns an implementation of prefs.Store for the named layer.
func (d *DB) Store(layer string) *Store {
	return &Store{
		db:    d.db,
		layer: layer,
	}
}

// Store implements the prefs.Store interface for a single layer of the
// settings database. Values are written immediately.
type Store struct {
	db    *gorm.DB
	layer string
}

func (s *Store) get(section string, key string) (string, bool) {
	var row setting

	err := s.db.Where(map[string]interface{}{
		"layer":   s.layer,
		"section": section,
		"name":    key,
	}).Take(&row).Error

	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Logf(logger.Allow, "sqlstore", "%s.%s: %v", section, key, err)
		}
		return "", false
	}

	return row.Value, true
}

func (s *Store) set(section string, key string, value string) error {
	row := setting{
		Layer:   s.layer,
		Section: section,
		Name:    key,
		Value:   value,
	}

	err := s.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("sqlstore: %s.%s: %w", section, key, err)
	}

	return nil
}

// GetBool implements the prefs.Store interface.
func (s *Store) GetBool(section string, key string, def bool) bool {
	v, ok := s.get(section, key)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return b
}

// GetString implements the prefs.Store interface.
func (s *Store) GetString(section string, key string, def string) string {
	v, ok := s.get(section, key)
	if !ok {
		return def
	}
	return v
}

// GetInt implements the prefs.Store interface.
func (s *Store) GetInt(section string, key string, def int) int {
	v, ok := s.get(section, key)
	if !ok {
		return def
	}
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return i
}

// SetBool implements the prefs.Store interface.
func (s *Store) SetBool(section string, key string, value bool) error {
	return s.set(section, key, strconv.FormatBool(value))
}

// SetString implements the prefs.Store interface.
func (s *Store) SetString(section string, key string, value string) error {
	return s.set(section, key, value)
}

// SetInt implements the prefs.Store interface.
func (s *Store) SetInt(section string, key string, value int) error {
	return s.set(section, key, strconv.Itoa(value))
}

// RemoveSection implements the prefs.Store interface.
func (s *Store) RemoveSection(section string) error {
	err := s.db.Where(map[string]interface{}{
		"layer":   s.layer,
		"section": section,
	}).Delete(&setting{}).Error

	if err != nil {
		return fmt.Errorf("sqlstore: %s: %w", section, err)
	}

	return nil
}

// Save implements the prefs.Store interface. Values are written immediately
// so there is nothing to do.
func (s *Store) Save() error {
	return nil
}
