// Package auth acquires a bearer access token for the Graph API through a
// silent, interactive, or manual authorization-code flow, backed by a
// serialized token cache on disk.
package auth

import (
	"encoding/json"
	"os"

	"golang.org/x/oauth2"
)

// Account is one cached identity with its last known token.
type Account struct {
	Username string        `json:"username"`
	Token    *oauth2.Token `json:"token"`
}

// Cache holds zero or more cached accounts. It is the only state the
// exporter persists besides the files it emits.
type Cache struct {
	Accounts []Account `json:"accounts"`
}

// First returns the first cached account, or nil if the cache is empty.
func (c *Cache) First() *Account {
	if len(c.Accounts) == 0 {
		return nil
	}
	return &c.Accounts[0]
}

// Upsert stores a token under the given username, replacing any existing
// entry for it.
func (c *Cache) Upsert(username string, token *oauth2.Token) {
	for i := range c.Accounts {
		if c.Accounts[i].Username == username {
			c.Accounts[i].Token = token
			return
		}
	}
	c.Accounts = append(c.Accounts, Account{Username: username, Token: token})
}

// Store reads and writes the token cache file. It is injected into the
// Authenticator; nothing else touches the cache path.
type Store struct {
	path string
}

// NewStore creates a store for the given cache file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the cache file. A missing or unreadable file is the expected
// first-run state and yields an empty cache, never an error.
func (s *Store) Load() *Cache {
	cache := &Cache{}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return cache
	}
	if err := json.Unmarshal(data, cache); err != nil {
		return &Cache{}
	}
	return cache
}

// Save serializes the cache and replaces the file entirely, mode 0600.
func (s *Store) Save(cache *Cache) error {
	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0600)
}
