package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubGetter serves canned CSV bodies by object key.
type stubGetter struct {
	mu      sync.Mutex
	bodies  map[string]string
	err     error
	buckets []string
	keys    []string
}

func (s *stubGetter) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	s.mu.Lock()
	s.buckets = append(s.buckets, *params.Bucket)
	s.keys = append(s.keys, *params.Key)
	s.mu.Unlock()

	if s.err != nil {
		return nil, s.err
	}

	body, ok := s.bodies[*params.Key]
	if !ok {
		return nil, fmt.Errorf("no such key %s", *params.Key)
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(body))}, nil
}

func yearCSV(year int, games ...string) string {
	var b strings.Builder
	b.WriteString("gameid,date,league,side,position,teamname,teamid,playername,playerid,result,earned gpm\n")
	for _, g := range games {
		fmt.Fprintf(&b, "%s,%d-03-01,LCK,Blue,team,T1,tid,,,1,250\n", g, year)
	}
	return b.String()
}

func yearKey(year int) string {
	return fmt.Sprintf(objectKeyPattern, year)
}

func TestFetchYear(t *testing.T) {
	getter := &stubGetter{bodies: map[string]string{
		yearKey(2026): yearCSV(2026, "G1", "G2"),
	}}

	client := NewWithGetter(getter, "oracles-elixir", nil)

	rows, err := client.FetchYear(context.Background(), 2026)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "G1", rows[0].GameID)
	assert.Equal(t, []string{"oracles-elixir"}, getter.buckets)
	assert.Equal(t, []string{"2026_LoL_esports_match_data_from_OraclesElixir.csv"}, getter.keys)
}

func TestFetchYearErrors(t *testing.T) {
	t.Run("storage error", func(t *testing.T) {
		getter := &stubGetter{err: errors.New("access denied")}
		client := NewWithGetter(getter, "b", nil)

		_, err := client.FetchYear(context.Background(), 2026)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "get object")
	})

	t.Run("malformed body", func(t *testing.T) {
		getter := &stubGetter{bodies: map[string]string{
			yearKey(2026): "gameid,date\nG1,garbage\n",
		}}
		client := NewWithGetter(getter, "b", nil)

		_, err := client.FetchYear(context.Background(), 2026)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "decode")
	})
}

func TestFetchYears(t *testing.T) {
	getter := &stubGetter{bodies: map[string]string{
		yearKey(2024): yearCSV(2024, "old-1"),
		yearKey(2025): yearCSV(2025, "mid-1", "mid-2"),
		yearKey(2026): yearCSV(2026, "new-1"),
	}}

	client := NewWithGetter(getter, "oracles-elixir", nil)

	rows, err := client.FetchYears(context.Background(), []int{2026, 2025, 2024})
	require.NoError(t, err)
	require.Len(t, rows, 4)

	// Concatenation follows the requested year order regardless of which
	// download finished first.
	assert.Equal(t, "new-1", rows[0].GameID)
	assert.Equal(t, "mid-1", rows[1].GameID)
	assert.Equal(t, "mid-2", rows[2].GameID)
	assert.Equal(t, "old-1", rows[3].GameID)
}

func TestFetchYearsFailures(t *testing.T) {
	t.Run("no years", func(t *testing.T) {
		client := NewWithGetter(&stubGetter{}, "b", nil)
		_, err := client.FetchYears(context.Background(), nil)
		require.Error(t, err)
	})

	t.Run("one missing year fails the whole fetch", func(t *testing.T) {
		getter := &stubGetter{bodies: map[string]string{
			yearKey(2026): yearCSV(2026, "G1"),
		}}
		client := NewWithGetter(getter, "b", nil)

		_, err := client.FetchYears(context.Background(), []int{2026, 2019})
		require.Error(t, err)
	})
}
