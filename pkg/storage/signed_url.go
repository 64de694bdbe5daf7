package storage

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"
)

// URLSigner produces and verifies expiring signatures for file URLs.
type URLSigner struct {
	secret []byte
	ttl    time.Duration
}

// NewURLSigner builds a signer with the given secret and signature lifetime.
func NewURLSigner(secret string, ttl time.Duration) *URLSigner {
	return &URLSigner{secret: []byte(secret), ttl: ttl}
}

// Sign returns the expiry unix timestamp and hex signature for a key.
func (s *URLSigner) Sign(key string, now time.Time) (int64, string) {
	expires := now.Add(s.ttl).Unix()
	return expires, s.signature(key, expires)
}

// Verify checks a signature against the key and expiry timestamp.
func (s *URLSigner) Verify(key string, expires int64, sig string, now time.Time) error {
	if now.Unix() > expires {
		return fmt.Errorf("storage: signature expired")
	}
	expected := s.signature(key, expires)
	if !hmac.Equal([]byte(expected), []byte(sig)) {
		return fmt.Errorf("storage: signature mismatch")
	}
	return nil
}

func (s *URLSigner) signature(key string, expires int64) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(key))
	mac.Write([]byte(":"))
	mac.Write([]byte(strconv.FormatInt(expires, 10)))
	return hex.EncodeToString(mac.Sum(nil))
}
