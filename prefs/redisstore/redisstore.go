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

// Package redisstore implements the prefs.Store interface on top of redis.
//
// Each section is stored as a redis hash with the key "<prefix>:<section>".
// Keys within the section are fields of the hash. Using a different prefix for
// every game allows global and per-game settings to share a redis instance.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/jetsetilly/symanalysis/logger"
)

// Connect to a redis server and check that the connection is working.
func Connect(ctx context.Context, addr string, password string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redisstore: %s: %w", addr, err)
	}

	logger.Logf(logger.Allow, "redisstore", "connected to %s", addr)
	return rdb, nil
}

// Store implements the prefs.Store interface. Values are written immediately.
type Store struct {
	// the prefs.Store interface has no context arguments so the context is
	// taken when the Store is created and used for every request
	ctx context.Context

	client redis.Cmdable
	prefix string
}

// New is the preferred method of initialisation for the Store type.
func New(ctx context.Context, client redis.Cmdable, prefix string) *Store {
	return &Store{
		ctx:    ctx,
		client: client,
		prefix: prefix,
	}
}

// key returns the redis key for the section.
func (s *Store) key(section string) string {
	return fmt.Sprintf("%s:%s", s.prefix, section)
}

func (s *Store) get(section string, key string) (string, bool) {
	v, err := s.client.HGet(s.ctx, s.key(section), key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Logf(logger.Allow, "redisstore", "%s.%s: %v", section, key, err)
		}
		return "", false
	}
	return v, true
}

func (s *Store) set(section string, key string, value string) error {
	if err := s.client.HSet(s.ctx, s.key(section), key, value).Err(); err != nil {
		return fmt.Errorf("redisstore: %s.%s: %w", section, key, err)
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
	if err := s.client.Del(s.ctx, s.key(section)).Err(); err != nil {
		return fmt.Errorf("redisstore: %s: %w", section, err)
	}
	return nil
}

// Save implements the prefs.Store interface. Values are written immediately
// so there is nothing to do.
func (s *Store) Save() error {
	return nil
}
