package slug

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sqids/sqids-go"
)

const (
	// Fallback is used when a title has no ASCII letters or digits at all.
	Fallback = "ranking"

	suffixAlphabet  = "abcdefghijklmnopqrstuvwxyz0123456789"
	suffixMinLength = 6
)

var (
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)
	validSlug       = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
)

// Make lowercases the title, collapses every run of non-alphanumerics into a
// single hyphen and trims hyphens from both ends.
func Make(title string) string {
	s := nonAlphanumeric.ReplaceAllString(strings.ToLower(title), "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return Fallback
	}
	return s
}

// Valid reports whether s is a lowercase, hyphen-separated slug.
func Valid(s string) bool {
	return validSlug.MatchString(s)
}

// Generator appends a short sqids-encoded suffix so two rankings with the
// same title never share a slug.
type Generator struct {
	encoder *sqids.Sqids
	counter atomic.Uint64
	now     func() time.Time
}

func NewGenerator() (*Generator, error) {
	encoder, err := sqids.New(sqids.Options{
		Alphabet:  suffixAlphabet,
		MinLength: suffixMinLength,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to init slug encoder: %w", err)
	}
	g := &Generator{encoder: encoder, now: time.Now}
	// Random start so generators in separate processes diverge within the same millisecond.
	g.counter.Store(uint64(rand.Uint32()))
	return g, nil
}

// MustNewGenerator panics on encoder misconfiguration; the alphabet is a constant.
func MustNewGenerator() *Generator {
	g, err := NewGenerator()
	if err != nil {
		panic(err)
	}
	return g
}

func (g *Generator) Generate(title string) string {
	return Make(title) + "-" + g.Suffix()
}

func (g *Generator) Suffix() string {
	seq := g.counter.Add(1)
	id, err := g.encoder.Encode([]uint64{uint64(g.now().UnixMilli()), seq})
	if err != nil || id == "" {
		return strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
	}
	return id
}
