package kvmclient

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodedReports(t *testing.T, ch *fakeChannel) []keyboardReportParams {
	t.Helper()
	ch.mu.Lock()
	raws := append([]json.RawMessage(nil), ch.calls...)
	ch.mu.Unlock()

	reports := make([]keyboardReportParams, 0, len(raws))
	for _, raw := range raws {
		var req struct {
			Params keyboardReportParams `json:"params"`
		}
		require.NoError(t, json.Unmarshal(raw, &req))
		reports = append(reports, req.Params)
	}
	return reports
}

func TestSendKeyCombinationsEmptySequenceSendsNothing(t *testing.T) {
	ch := newFakeChannel()
	s := testSession(ch)

	err := s.SendKeyCombinations(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, ch.calls)
}

func TestSendKeyCombinationsSingleComboEmitsOnlyPressReport(t *testing.T) {
	ch := newFakeChannel()
	s := testSession(ch)

	err := s.SendKeyCombinations(context.Background(), []KeyCombo{
		{Modifier: 0x02, Keys: []byte{0x04}},
	})
	require.NoError(t, err)

	reports := decodedReports(t, ch)
	require.Len(t, reports, 1)
	assert.EqualValues(t, 0x02, reports[0].Modifier)
	assert.Equal(t, []uint8{0x04}, reports[0].Keys)
}

func TestSendKeyCombinationsClearKeysResetsState(t *testing.T) {
	ch := newFakeChannel()
	s := testSession(ch)

	err := s.SendKeyCombinations(context.Background(), []KeyCombo{
		{Modifier: 0x02, Keys: []byte{0x04}},
		{ClearKeys: true},
	})
	require.NoError(t, err)

	reports := decodedReports(t, ch)
	require.Len(t, reports, 2)
	assert.Empty(t, reports[1].Keys)
	assert.EqualValues(t, 0, reports[1].Modifier)
}

func TestSendKeyCombinationsInstantReleaseDropsKeys(t *testing.T) {
	ch := newFakeChannel()
	s := testSession(ch)

	err := s.SendKeyCombinations(context.Background(), []KeyCombo{
		{Modifier: 0x02, Keys: []byte{0x04}, InstantRelease: true},
	})
	require.NoError(t, err)

	reports := decodedReports(t, ch)
	require.Len(t, reports, 2) // initial press report, then the instant-release report
	assert.Equal(t, []uint8{0x04}, reports[0].Keys)
	assert.Empty(t, reports[1].Keys)
	assert.EqualValues(t, 0, reports[1].Modifier) // modifier is not sticky by default
}

func TestSendKeyCombinationsHoldModifiersPersistsAcrossCombos(t *testing.T) {
	ch := newFakeChannel()
	s := testSession(ch)

	err := s.SendKeyCombinations(context.Background(), []KeyCombo{
		{Modifier: 0x02, Keys: []byte{0x04}, HoldModifiers: true, InstantRelease: true},
		{Keys: []byte{0x05}},
	})
	require.NoError(t, err)

	reports := decodedReports(t, ch)
	require.Len(t, reports, 3)
	// Second combo's report still carries the first combo's held modifier
	// plus its own key.
	last := reports[2]
	assert.EqualValues(t, 0x02, last.Modifier)
	assert.Equal(t, []uint8{0x05}, last.Keys)
}

func TestSendKeyCombinationsRejectsTooManyKeys(t *testing.T) {
	ch := newFakeChannel()
	s := testSession(ch)

	err := s.SendKeyCombinations(context.Background(), []KeyCombo{
		{Keys: []byte{1, 2, 3, 4, 5, 6, 7}},
	})
	assert.Error(t, err)
}
