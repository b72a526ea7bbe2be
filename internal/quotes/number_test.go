package quotes

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSequencer struct {
	count int64
	err   error
	key   string
}

func (s *stubSequencer) IncrWithTTL(_ context.Context, key string, _ time.Duration) (int64, error) {
	s.key = key
	if s.err != nil {
		return 0, s.err
	}
	s.count++
	return s.count, nil
}

func (s *stubSequencer) SequenceKey(name, day string) string {
	return "aq:sequence:" + name + ":" + day
}

func TestNextUsesDailySequence(t *testing.T) {
	t.Parallel()

	seq := &stubSequencer{}
	gen, err := NewNumberGenerator(seq, "COT")
	require.NoError(t, err)
	gen.now = func() time.Time {
		return time.Date(2026, 8, 28, 15, 0, 0, 0, time.UTC)
	}

	first, err := gen.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "COT-20260828-0001", first)

	second, err := gen.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "COT-20260828-0002", second)

	assert.Equal(t, "aq:sequence:quotes:20260828", seq.key)
}

func TestNextFallsBackWhenSequencerFails(t *testing.T) {
	t.Parallel()

	seq := &stubSequencer{err: errors.New("redis down")}
	gen, err := NewNumberGenerator(seq, "COT")
	require.NoError(t, err)
	gen.now = func() time.Time {
		return time.Date(2026, 8, 28, 15, 0, 0, 0, time.UTC)
	}

	number, err := gen.Next(context.Background())
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^COT-20260828-[0-9A-F]{6}$`), number)
}

func TestNewNumberGeneratorValidation(t *testing.T) {
	t.Parallel()

	_, err := NewNumberGenerator(nil, "COT")
	assert.Error(t, err)

	_, err = NewNumberGenerator(&stubSequencer{}, "  ")
	assert.Error(t, err)
}
