package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeFactsDefaultsOnMissingID(t *testing.T) {
	page := []PageRow{
		{ID: 1, Name: "IIT Bombay", Score: decimal.NewFromInt(90)},
		{ID: 2, Name: "Obscure College", Score: decimal.NewFromInt(10)},
	}
	facts := FactBundle{
		Fees:         map[uint]FeeStat{1: {Min: decimal.NewFromInt(50000), Max: decimal.NewFromInt(200000)}},
		CourseCounts: map[uint]int{1: 12},
		Ranks:        map[uint]map[string]int{1: {"NIRF": 3}},
	}

	rows := MergeFacts(page, facts)
	require.Len(t, rows, 2)

	assert.Equal(t, uint(1), rows[0].ID)
	assert.Equal(t, 12, rows[0].CourseCount)
	require.NotNil(t, rows[0].MinFee)
	assert.True(t, rows[0].MinFee.Equal(decimal.NewFromInt(50000)))

	// The row with no facts keeps null/zero values; it is never dropped.
	assert.Equal(t, uint(2), rows[1].ID)
	assert.Nil(t, rows[1].MinFee)
	assert.Nil(t, rows[1].MinSalary)
	assert.Zero(t, rows[1].CourseCount)
	assert.Nil(t, rows[1].Rankings)
}

func TestMergeFactsResortsByScoreDescending(t *testing.T) {
	page := []PageRow{
		{ID: 1, Score: decimal.NewFromInt(10)},
		{ID: 2, Score: decimal.NewFromInt(90)},
		{ID: 3, Score: decimal.NewFromInt(50)},
	}

	rows := MergeFacts(page, FactBundle{})

	ids := []uint{rows[0].ID, rows[1].ID, rows[2].ID}
	assert.Equal(t, []uint{2, 3, 1}, ids)
}

type stubLookup struct {
	streams map[string]string
	cities  map[string]string
	states  map[string]string
	calls   []string
}

func (s *stubLookup) StreamDescriptionByName(_ context.Context, name string) (string, error) {
	s.calls = append(s.calls, "stream:"+name)
	return s.streams[name], nil
}

func (s *stubLookup) CityDescriptionByName(_ context.Context, name string) (string, error) {
	s.calls = append(s.calls, "city:"+name)
	return s.cities[name], nil
}

func (s *stubLookup) StateDescriptionByName(_ context.Context, name string) (string, error) {
	s.calls = append(s.calls, "state:"+name)
	return s.states[name], nil
}

func TestSelectedDescriptionPriorityIsStrict(t *testing.T) {
	// Stream X has no description, city Y and state Z both do: Y must win
	// and Z must never be consulted.
	lookup := &stubLookup{
		streams: map[string]string{},
		cities:  map[string]string{"Y": "about Y"},
		states:  map[string]string{"Z": "about Z"},
	}
	criteria := ListingCriteria{
		StreamSubstrings: []string{"X"},
		CitySubstrings:   []string{"Y"},
		StateSubstrings:  []string{"Z"},
	}

	description, err := ResolveSelectedDescription(context.Background(), lookup, criteria)
	require.NoError(t, err)

	assert.Equal(t, "about Y", description)
	assert.Equal(t, []string{"stream:X", "city:Y"}, lookup.calls)
}

func TestSelectedDescriptionUsesFirstRequestedValue(t *testing.T) {
	lookup := &stubLookup{
		cities: map[string]string{"Pune": "Pune blurb", "Mumbai": "Mumbai blurb"},
	}
	criteria := ListingCriteria{CitySubstrings: []string{"Pune", "Mumbai"}}

	description, err := ResolveSelectedDescription(context.Background(), lookup, criteria)
	require.NoError(t, err)

	assert.Equal(t, "Pune blurb", description)
}

func TestSelectedDescriptionEmptyWhenNothingRequested(t *testing.T) {
	lookup := &stubLookup{}

	description, err := ResolveSelectedDescription(context.Background(), lookup, ListingCriteria{})
	require.NoError(t, err)

	assert.Equal(t, "", description)
	assert.Empty(t, lookup.calls)
}
