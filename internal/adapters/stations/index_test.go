package stations_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/railfare/internal/adapters/stations"
	"go.trai.ch/railfare/internal/adapters/store"
	"go.trai.ch/railfare/internal/core/domain"
	"go.trai.ch/railfare/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

var roster = []domain.Station{
	{Name: "广州南", Code: "IZQ", Pinyin: "guangzhounan", Abbr: "gzn", Short: "gzn", City: "广州"},
	{Name: "广州", Code: "GZQ", Pinyin: "guangzhou", Abbr: "gzh", Short: "gz", City: "广州"},
	{Name: "江门", Code: "JWQ", Pinyin: "jiangmen", Abbr: "jme", Short: "jm", City: "江门"},
	{Name: "阳江", Code: "YJQ", Pinyin: "yangjiang", Abbr: "yji", Short: "yj", City: "阳江"},
}

func quietLogger(ctrl *gomock.Controller) *mocks.MockLogger {
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any()).AnyTimes()
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	return log
}

func seededIndex(t *testing.T) (*stations.Index, *store.FileStore) {
	t.Helper()
	ctrl := gomock.NewController(t)
	st, err := store.NewFileStore(t.TempDir())
	require.NoError(t, err)
	_, err = st.PutStations(roster)
	require.NoError(t, err)
	return stations.NewIndex(st, mocks.NewMockUpstream(ctrl), quietLogger(ctrl)), st
}

func TestIndex_Lookups(t *testing.T) {
	idx, _ := seededIndex(t)
	ctx := t.Context()

	s, err := idx.LookupByName(ctx, "江门")
	require.NoError(t, err)
	assert.Equal(t, "JWQ", s.Code)

	_, err = idx.LookupByName(ctx, "江门东")
	require.ErrorIs(t, err, domain.ErrUnknownStation)

	byCode, err := idx.LookupByCodeOrName(ctx, "YJQ")
	require.NoError(t, err)
	assert.Equal(t, "阳江", byCode.Name)

	byName, err := idx.LookupByCodeOrName(ctx, "广州南")
	require.NoError(t, err)
	assert.Equal(t, "IZQ", byName.Code)

	batch, err := idx.LookupByNames(ctx, []string{"阳江", "不存在", "广州南"})
	require.NoError(t, err)
	require.Len(t, batch, 2)
	assert.Equal(t, "阳江", batch[0].Name)
	assert.Equal(t, "广州南", batch[1].Name)
}

func TestIndex_Search(t *testing.T) {
	idx, _ := seededIndex(t)
	ctx := t.Context()

	names := func(list []domain.Station) []string {
		out := make([]string, 0, len(list))
		for _, s := range list {
			out = append(out, s.Name)
		}
		return out
	}

	tests := []struct {
		name    string
		keyword string
		exact   bool
		limit   int
		want    []string
	}{
		{name: "pinyin substring", keyword: "GuangZhou", want: []string{"广州南", "广州"}},
		{name: "pinyin abbreviation", keyword: "yj", want: []string{"阳江"}},
		{name: "city prefix", keyword: "广州", want: []string{"广州南", "广州"}},
		{name: "name substring", keyword: "江", want: []string{"江门", "阳江"}},
		{name: "exact name", keyword: "广州", exact: true, want: []string{"广州"}},
		{name: "exact code", keyword: "JWQ", exact: true, want: []string{"江门"}},
		{name: "limit", keyword: "广州", limit: 1, want: []string{"广州南"}},
		{name: "blank", keyword: "  ", want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := idx.Search(ctx, tt.keyword, tt.exact, tt.limit)
			require.NoError(t, err)
			assert.Equal(t, tt.want, names(got))
		})
	}
}

func TestIndex_FillsEmptyRosterFromUpstream(t *testing.T) {
	ctrl := gomock.NewController(t)
	st, err := store.NewFileStore(t.TempDir())
	require.NoError(t, err)

	upstream := mocks.NewMockUpstream(ctrl)
	upstream.EXPECT().FetchStations(gomock.Any()).Return(roster, nil).Times(1)

	idx := stations.NewIndex(st, upstream, quietLogger(ctrl))
	s, err := idx.LookupByName(t.Context(), "阳江")
	require.NoError(t, err)
	assert.Equal(t, "YJQ", s.Code)

	stored, digest, err := st.Stations()
	require.NoError(t, err)
	assert.Len(t, stored, len(roster))
	assert.Equal(t, store.RosterDigest(roster), digest)

	_, err = idx.LookupByName(t.Context(), "江门")
	require.NoError(t, err)
}

func TestIndex_Refresh(t *testing.T) {
	ctrl := gomock.NewController(t)
	st, err := store.NewFileStore(t.TempDir())
	require.NoError(t, err)
	_, err = st.PutStations(roster)
	require.NoError(t, err)

	updated := append(append([]domain.Station(nil), roster...), domain.Station{Name: "茂名", Code: "MDQ", City: "茂名"})
	upstream := mocks.NewMockUpstream(ctrl)
	gomock.InOrder(
		upstream.EXPECT().FetchStations(gomock.Any()).Return(roster, nil),
		upstream.EXPECT().FetchStations(gomock.Any()).Return(updated, nil),
	)

	idx := stations.NewIndex(st, upstream, quietLogger(ctrl))

	changed, err := idx.Refresh(t.Context())
	require.NoError(t, err)
	assert.False(t, changed, "identical roster is not rewritten")

	changed, err = idx.Refresh(t.Context())
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, len(updated), idx.Len())

	s, err := idx.LookupByName(t.Context(), "茂名")
	require.NoError(t, err)
	assert.Equal(t, "MDQ", s.Code)
}

func TestIndex_RefreshUpstreamFailure(t *testing.T) {
	idx, _ := seededIndex(t)
	ctrl := gomock.NewController(t)
	upstream := mocks.NewMockUpstream(ctrl)
	upstream.EXPECT().FetchStations(gomock.Any()).Return(nil, domain.ErrUpstream)

	st, err := store.NewFileStore(t.TempDir())
	require.NoError(t, err)
	failing := stations.NewIndex(st, upstream, quietLogger(ctrl))

	_, err = failing.LookupByName(t.Context(), "阳江")
	require.ErrorIs(t, err, domain.ErrUpstream)

	// The seeded index never reaches the upstream.
	_, err = idx.LookupByName(t.Context(), "阳江")
	require.NoError(t, err)
}

func TestIndex_WatchReloadsRoster(t *testing.T) {
	idx, st := seededIndex(t)
	require.NoError(t, idx.Load())
	require.NoError(t, idx.Watch(t.Context()))

	writer, err := store.NewFileStore(filepath.Dir(st.StationsPath()))
	require.NoError(t, err)
	_, err = writer.PutStations(append(append([]domain.Station(nil), roster...), domain.Station{Name: "湛江", Code: "ZJZ"}))
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		_, err := idx.LookupByName(t.Context(), "湛江")
		return err == nil
	}, 5*time.Second, 20*time.Millisecond)
}
