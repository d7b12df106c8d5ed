package codec

import (
	"io"
	"strings"

	"go.trai.ch/railfare/internal/core/domain"
	"golang.org/x/net/html"
)

// RosterScriptMarker identifies the station roster script on the index page.
const RosterScriptMarker = "./script/core/common/station_name_"

const (
	rosterPrefix    = "var station_names ="
	rosterEntrySep  = "|||"
	rosterFieldSep  = "|"
	rosterMinFields = 8
)

// RosterScriptPath finds the src of the station roster script in an index page
// and returns it relative to the page directory, e.g. "/script/core/common/station_name_v10.js".
func RosterScriptPath(r io.Reader) (string, error) {
	z := html.NewTokenizer(r)
	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				return "", domain.Annotate(domain.ErrUpstreamParse, "payload", "index")
			}
			return "", domain.Annotate(domain.ErrUpstreamParse, "payload", "index", "reason", "roster script not found")
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			if string(name) != "script" || !hasAttr {
				continue
			}
			for {
				key, val, more := z.TagAttr()
				if string(key) == "src" && strings.Contains(string(val), RosterScriptMarker) {
					return strings.TrimPrefix(string(val), "."), nil
				}
				if !more {
					break
				}
			}
		}
	}
}

// ParseStationRoster parses the station roster script. Each entry has the form
// "@abbr|name|code|pinyin|short|index|citycode|city"; entries with fewer fields
// are skipped.
func ParseStationRoster(script string) []domain.Station {
	body := strings.TrimSpace(script)
	body = strings.TrimPrefix(body, rosterPrefix)
	body = strings.TrimSpace(body)
	body = strings.TrimSuffix(body, ";")
	body = strings.Trim(body, "'\"")

	entries := strings.Split(body, rosterEntrySep)
	stations := make([]domain.Station, 0, len(entries))
	for _, entry := range entries {
		entry = strings.TrimPrefix(strings.TrimSpace(entry), "@")
		if entry == "" {
			continue
		}
		parts := strings.Split(entry, rosterFieldSep)
		if len(parts) < rosterMinFields {
			continue
		}
		if parts[1] == "" || parts[2] == "" {
			continue
		}
		stations = append(stations, domain.Station{
			Abbr:     parts[0],
			Name:     parts[1],
			Code:     parts[2],
			Pinyin:   parts[3],
			Short:    parts[4],
			CityCode: parts[6],
			City:     parts[7],
		})
	}
	return stations
}
