package codec_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/railfare/internal/adapters/codec"
	"go.trai.ch/railfare/internal/core/domain"
)

var stationMap = map[string]string{
	"IZQ": "广州南",
	"YJQ": "阳江",
}

// record builds a ticket record with hard-seat, hard-sleeper and standing classes.
func record(mutate func(f []string)) string {
	f := make([]string, 56)
	f[0] = "secret"
	f[1] = "预订"
	f[2] = "6i000K123400"
	f[3] = "K1234"
	f[4] = "IZQ"
	f[5] = "NMQ"
	f[6] = "IZQ"
	f[7] = "YJQ"
	f[8] = "08:00"
	f[9] = "10:30"
	f[10] = "02:30"
	f[11] = "Y"
	f[13] = "20261020"
	f[26] = "无"
	f[28] = "有"
	f[29] = "12"
	f[39] = "1004500012" + "3011000005" + "1004503012"
	if mutate != nil {
		mutate(f)
	}
	return strings.Join(f, "|")
}

func TestDecodePrice(t *testing.T) {
	tests := []struct {
		name   string
		blob   string
		prefix string
		want   codec.SeatPrice
		ok     bool
	}{
		{
			name:   "business class",
			blob:   "9" + "00450" + "0000",
			prefix: "SWZ_",
			want:   codec.SeatPrice{Label: "商务座", Code: "9", Price: 4500},
			ok:     true,
		},
		{
			name:   "first matching chunk wins",
			blob:   "O002000000" + "S003500000",
			prefix: "ZE_",
			want:   codec.SeatPrice{Label: "二等座", Code: "O", Price: 2000},
			ok:     true,
		},
		{
			name:   "catch-all below flag threshold",
			blob:   "X001000100",
			prefix: codec.PrefixOther,
			want:   codec.SeatPrice{Label: codec.LabelOther, Code: "X", Price: 1000},
			ok:     true,
		},
		{
			name:   "catch-all at flag threshold",
			blob:   "X001003000",
			prefix: codec.PrefixOther,
		},
		{
			name:   "standing by flag",
			blob:   "1004500012" + "1004503012",
			prefix: codec.PrefixNoSeat,
			want:   codec.SeatPrice{Label: codec.LabelNoSeat, Code: "1", Price: 4500},
			ok:     true,
		},
		{
			name:   "no matching chunk",
			blob:   "1004500012",
			prefix: "SWZ_",
		},
		{
			name:   "unknown prefix",
			blob:   "1004500012",
			prefix: "YB_",
		},
		{
			name:   "empty blob",
			prefix: "YZ_",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, err := codec.DecodePrice(tt.blob, tt.prefix)
			require.NoError(t, err)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodePrice_Malformed(t *testing.T) {
	_, _, err := codec.DecodePrice("9004a00000", "SWZ_")
	require.ErrorIs(t, err, domain.ErrDecodePrice)

	_, _, err = codec.DecodePrice("9004500", "SWZ_")
	require.ErrorIs(t, err, domain.ErrDecodePrice)
}

func TestSeatLabel(t *testing.T) {
	label, ok := codec.SeatLabel("GG_", 'D')
	assert.True(t, ok)
	assert.Equal(t, "优选一等座", label)

	_, ok = codec.SeatLabel("YZ_", '9')
	assert.False(t, ok)

	_, ok = codec.SeatLabel("YB_", 'M')
	assert.False(t, ok)
}

func TestDecodeRecord(t *testing.T) {
	rec, err := codec.DecodeRecord(record(nil), stationMap)
	require.NoError(t, err)

	assert.Equal(t, "6i000K123400", rec.RunNumber)
	assert.Equal(t, "K1234", rec.RunCode)
	assert.Equal(t, "广州南", rec.FromStation)
	assert.Equal(t, "阳江", rec.ToStation)
	assert.Len(t, rec.Availability, 14)
	assert.Equal(t, codec.Placeholder, rec.Availability[0].Stock)

	offered := rec.Offered()
	require.Len(t, offered, 3)
	assert.Equal(t, "WZ_", offered[0].Prefix())
	assert.Equal(t, "YW_", offered[1].Prefix())
	assert.Equal(t, "YZ_", offered[2].Prefix())
}

func TestDecodeRecord_UnmappedStation(t *testing.T) {
	rec, err := codec.DecodeRecord(record(func(f []string) { f[7] = "ZZZ" }), stationMap)
	require.NoError(t, err)
	assert.Empty(t, rec.ToStation)
}

func TestDecodeRecord_Short(t *testing.T) {
	_, err := codec.DecodeRecord("a|b|c", stationMap)
	require.ErrorIs(t, err, domain.ErrDecodeRecord)
}

func TestDecodeTickets(t *testing.T) {
	records := []string{
		record(nil),
		"broken|record",
		record(func(f []string) { f[39] = "1004" }),
		record(func(f []string) {
			f[2] = "6i000K123401"
			f[11] = "N"
		}),
	}

	trains, errs := codec.DecodeTickets(records, stationMap, "2026-10-20")
	require.Len(t, trains, 2)
	require.Len(t, errs, 2)
	assert.ErrorIs(t, errs[0], domain.ErrDecodeRecord)
	assert.ErrorIs(t, errs[1], domain.ErrDecodePrice)

	first := trains[0]
	assert.Equal(t, "2026-10-20", first.TrainDate)
	assert.Equal(t, "2026-10-20", first.DepartDate)
	assert.True(t, first.Bookable)
	assert.Equal(t, []domain.Ticket{
		{SeatType: "无座", SeatCode: "1", Price: 4500, Stock: "无"},
		{SeatType: "硬卧", SeatCode: "3", Price: 11000, Stock: "有"},
		{SeatType: "硬座", SeatCode: "1", Price: 4500, Stock: "12"},
	}, first.Tickets)
	require.NotNil(t, first.FromStop)
	assert.Equal(t, "08:00", first.FromStop.DepartTime)
	assert.Equal(t, "10:30", first.ToStop.ArriveTime)

	lowest, ok := first.LowestPrice()
	assert.True(t, ok)
	assert.Equal(t, domain.Price(4500), lowest)

	assert.False(t, trains[1].Bookable)
}

func TestStopoverMinutes(t *testing.T) {
	tests := []struct {
		arrive, depart string
		want           int
	}{
		{"23:23", "23:30", 7},
		{"23:50", "00:05", 15},
		{"----", "08:00", 0},
		{"08:00", "----", 0},
		{"10:00", "10:00", 0},
	}
	for _, tt := range tests {
		got, err := codec.StopoverMinutes(tt.arrive, tt.depart)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%s -> %s", tt.arrive, tt.depart)
	}

	_, err := codec.StopoverMinutes("8h", "09:00")
	assert.ErrorIs(t, err, domain.ErrDecodeRecord)
}

func TestParseStops(t *testing.T) {
	payload := `[
		{"station_name":"广州南","arrive_time":"----","start_time":"08:00","running_time":"00:00","arrive_day_diff":"0","station_train_code":"K1234"},
		{"station_name":"江门","arrive_time":"08:40","start_time":"08:44","running_time":"00:40","arrive_day_diff":0,"station_train_code":"K1234"},
		{"station_name":"阳江","arrive_time":"00:30","start_time":"----","running_time":"16:30","arrive_day_diff":"1","station_train_code":"K1235"}
	]`

	var raw []codec.RawStop
	require.NoError(t, json.Unmarshal([]byte(payload), &raw))
	stops, err := codec.ParseStops(raw)
	require.NoError(t, err)
	require.Len(t, stops, 3)
	assert.Equal(t, 0, stops[0].StopoverMinutes)
	assert.Equal(t, 4, stops[1].StopoverMinutes)
	assert.Equal(t, 1, stops[2].DayOffset)
	assert.Equal(t, "K1235", stops[2].RunCode)

	_, err = codec.ParseStops([]codec.RawStop{{ArriveTime: "08:00"}})
	assert.ErrorIs(t, err, domain.ErrDecodeRecord)
}

func TestParseRunNumbers(t *testing.T) {
	raw := []codec.RawRunNumber{
		{RunNumber: "6i000K123400", RunCode: "K1234", Date: "20261020", FromStation: "广州", ToStation: "湛江"},
		{RunNumber: "", RunCode: "K1235"},
		{RunNumber: "6i000K123700", RunCode: "K1237", FromStation: "广州", ToStation: "茂名"},
	}

	got := codec.ParseRunNumbers(raw, "2026-10-20")
	require.Len(t, got, 2)
	assert.Equal(t, "2026-10-20", got[0].Date)
	assert.Equal(t, "K1237", got[1].RunCode)
	assert.Equal(t, "2026-10-20", got[1].Date)
}

func TestParseStationRoster(t *testing.T) {
	script := "var station_names ='@bjb|北京北|VAP|beijingbei|bjb|0|0357|北京|||" +
		"@bad|x|||" +
		"@gzn|广州南|IZQ|guangzhounan|gzn|1|0400|广州|||';"

	stations := codec.ParseStationRoster(script)
	require.Len(t, stations, 2)
	assert.Equal(t, domain.Station{
		Name:     "广州南",
		Code:     "IZQ",
		Pinyin:   "guangzhounan",
		Abbr:     "gzn",
		Short:    "gzn",
		City:     "广州",
		CityCode: "0400",
	}, stations[1])
}

func TestRosterScriptPath(t *testing.T) {
	page := `<html><head>
<script src="./script/core/common/qss.js"></script>
<script type="text/javascript" src="./script/core/common/station_name_v10089.js"></script>
</head><body></body></html>`

	path, err := codec.RosterScriptPath(strings.NewReader(page))
	require.NoError(t, err)
	assert.Equal(t, "/script/core/common/station_name_v10089.js", path)

	_, err = codec.RosterScriptPath(strings.NewReader("<html></html>"))
	assert.ErrorIs(t, err, domain.ErrUpstreamParse)
}
