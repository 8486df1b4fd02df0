package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"
	"time"
)

type codeEntry struct {
	code     string
	issuedAt time.Time
}

// CodesCache holds short-lived verification codes keyed by email. Codes
// are single-use: a successful check consumes the entry.
type CodesCache struct {
	mu      sync.RWMutex
	entries map[string]codeEntry
	ttl     time.Duration
}

func NewCodesCache(ttl time.Duration) *CodesCache {
	return &CodesCache{entries: make(map[string]codeEntry), ttl: ttl}
}

// Issue generates a fresh numeric code for the email, replacing any
// outstanding one.
func (c *CodesCache) Issue(email string, length int) (string, error) {
	code, err := randomDigits(length)
	if err != nil {
		return "", err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[email] = codeEntry{code: code, issuedAt: time.Now()}
	return code, nil
}

// Check validates and consumes the code for the email.
func (c *CodesCache) Check(email, code string) (bool, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[email]
	if !ok {
		return false, false
	}
	if time.Since(e.issuedAt) > c.ttl {
		delete(c.entries, email)
		return false, true
	}
	if e.code != code {
		return false, false
	}
	delete(c.entries, email)
	return true, false
}

func randomDigits(n int) (string, error) {
	digits := make([]byte, n)
	for i := range digits {
		v, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("generate code: %w", err)
		}
		digits[i] = byte('0' + v.Int64())
	}
	return string(digits), nil
}
