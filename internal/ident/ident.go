// Package ident generates collision-checked, type-prefixed identifiers and
// URL slugs. Generation never fails: on repeated collisions it degrades to
// longer or randomized identifiers rather than returning an error.
package ident

import (
	"crypto/sha256"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

const (
	maxIDAttempts   = 5
	maxSlugAttempts = 1000
	maxSlugLen      = 100
)

// GenerateID produces an identifier of the form "<prefix>-<hexhash>". The hash
// is a short SHA-256 prefix over the seed inputs, the current time, and a
// random salt. If exists reports a collision, it retries up to five times,
// widening the hash from 4 to 5 hex characters after the third attempt. If
// every attempt collides, it falls back to an 8-character hash over a fresh
// random salt, which is accepted unconditionally.
func GenerateID(prefix string, seeds []string, exists func(string) bool) string {
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		width := 4
		if attempt >= 3 {
			width = 5
		}
		id := prefix + "-" + hashHex(width, seeds, strconv.Itoa(attempt))
		if exists == nil || !exists(id) {
			return id
		}
	}
	return prefix + "-" + hashHex(8, []string{uuid.NewString()}, "")
}

// hashHex hashes the seeds plus wall-clock time and a random salt, returning
// the first width hex characters.
func hashHex(width int, seeds []string, extra string) string {
	h := sha256.New()
	for _, s := range seeds {
		h.Write([]byte(s))
		h.Write([]byte(":"))
	}
	h.Write([]byte(strconv.FormatInt(time.Now().UnixNano(), 10)))
	h.Write([]byte(uuid.NewString()))
	h.Write([]byte(extra))
	sum := fmt.Sprintf("%x", h.Sum(nil))
	return sum[:width]
}

// Slug lower-cases name, collapses runs of non-alphanumeric characters into
// single hyphens, trims leading and trailing hyphens, and truncates the result
// to 100 characters.
func Slug(name string) string {
	var b strings.Builder
	lastHyphen := false
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastHyphen = false
		} else if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	slug := strings.Trim(b.String(), "-")
	if len(slug) > maxSlugLen {
		slug = slug[:maxSlugLen]
		slug = strings.TrimRight(slug, "-")
	}
	return slug
}

// UniqueSlug returns base unchanged when exists reports it free. Otherwise it
// appends -2, -3, … up to 1000 attempts, and finally falls back to a random
// 6-hex-character suffix.
func UniqueSlug(base string, exists func(string) bool) string {
	if exists == nil || !exists(base) {
		return base
	}
	for n := 2; n <= maxSlugAttempts; n++ {
		candidate := base + "-" + strconv.Itoa(n)
		if !exists(candidate) {
			return candidate
		}
	}
	return base + "-" + hashHex(6, nil, base)
}
