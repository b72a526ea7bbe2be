package quotes

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"
)

// sequenceTTL keeps daily counters around long enough to survive clock skew
// across instances before Redis reclaims them.
const sequenceTTL = 48 * time.Hour

// sequencer is the counter surface the generator needs from Redis.
type sequencer interface {
	IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error)
	SequenceKey(name, day string) string
}

// NumberGenerator issues display numbers like COT-20260828-0001. The sequence
// restarts daily; when Redis is unavailable it falls back to a random suffix so
// submission never blocks on the counter.
type NumberGenerator struct {
	seq    sequencer
	prefix string
	now    func() time.Time
}

// NewNumberGenerator wires the generator.
func NewNumberGenerator(seq sequencer, prefix string) (*NumberGenerator, error) {
	if seq == nil {
		return nil, errors.New("number generator: sequencer is required")
	}
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return nil, errors.New("number generator: prefix is required")
	}
	return &NumberGenerator{
		seq:    seq,
		prefix: prefix,
		now:    time.Now,
	}, nil
}

// Next returns the next quote number for today.
func (g *NumberGenerator) Next(ctx context.Context) (string, error) {
	day := g.now().UTC().Format("20060102")

	count, err := g.seq.IncrWithTTL(ctx, g.seq.SequenceKey("quotes", day), sequenceTTL)
	if err != nil {
		return g.fallback(day)
	}
	return fmt.Sprintf("%s-%s-%04d", g.prefix, day, count), nil
}

// fallback produces a random-suffixed number that keeps the display shape.
func (g *NumberGenerator) fallback(day string) (string, error) {
	buf := make([]byte, 3)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating fallback quote number: %w", err)
	}
	return fmt.Sprintf("%s-%s-%s", g.prefix, day, strings.ToUpper(hex.EncodeToString(buf))), nil
}
