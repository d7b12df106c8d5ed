package domain

// Station is an entry of the station roster.
type Station struct {
	Name     string `json:"name"`
	Code     string `json:"code"`
	Pinyin   string `json:"pinyin"`
	Abbr     string `json:"abbr"`
	Short    string `json:"short"`
	City     string `json:"city"`
	CityCode string `json:"city_code"`
}
