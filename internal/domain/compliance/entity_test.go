package compliance

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	tests := map[string]Status{
		"COMPLETE":    StatusComplete,
		"complete":    StatusComplete,
		"Done":        StatusComplete,
		"in progress": StatusInProgress,
		"In-Progress": StatusInProgress,
		"IN_PROGRESS": StatusInProgress,
		"pending":     StatusPending,
		"todo":        StatusPending,
		"INFO":        StatusPending,
		"bogus":       StatusPending,
		"":            StatusPending,
	}

	for raw, want := range tests {
		assert.Equal(t, want, ParseStatus(raw), "raw %q", raw)
	}
}

func TestParseStrategy(t *testing.T) {
	s, err := ParseStrategy("AI")
	require.NoError(t, err)
	assert.Equal(t, StrategyAI, s)

	s, err = ParseStrategy("")
	require.NoError(t, err)
	assert.Equal(t, StrategyKeyword, s)

	_, err = ParseStrategy("llm")
	assert.ErrorIs(t, err, ErrUnknownStrategy)
}

func TestEnvelopes(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.FixedZone("X", 3600))

	ok := Succeeded("T", "u", NoItemsSentinel(), StrategyKeyword, at)
	assert.Equal(t, ResultSuccess, ok.Status)
	assert.Equal(t, time.UTC, ok.Timestamp.Location())
	assert.Empty(t, ok.Message)

	bad := Failed("boom", at)
	assert.Equal(t, ResultError, bad.Status)
	assert.Empty(t, bad.PageTitle)
	assert.Empty(t, bad.Items)
}

func TestExtractPageID(t *testing.T) {
	id, err := ExtractPageID("https://acme.atlassian.net/wiki/spaces/ENG/pages/123456/Launch+Plan")
	require.NoError(t, err)
	assert.Equal(t, "123456", id)

	_, err = ExtractPageID("https://acme.atlassian.net/wiki/spaces/ENG/overview")
	assert.ErrorIs(t, err, ErrInvalidURLFormat)
}

func TestTransportError(t *testing.T) {
	var err error = &TransportError{Service: "confluence", StatusCode: 404, Body: "not found"}

	var te *TransportError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, 404, te.StatusCode)
	assert.Equal(t, "confluence returned status 404: not found", err.Error())
}

func TestPage_StorageValue(t *testing.T) {
	_, ok := (&Page{Title: "x"}).StorageValue()
	assert.False(t, ok)

	_, ok = (&Page{Body: &PageBody{}}).StorageValue()
	assert.False(t, ok)

	v, ok := (&Page{Body: &PageBody{Storage: &Storage{Value: "<p/>"}}}).StorageValue()
	assert.True(t, ok)
	assert.Equal(t, "<p/>", v)
}
