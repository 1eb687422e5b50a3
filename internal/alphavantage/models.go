package alphavantage

// Mover is one row of the top gainers / losers / most active lists.
type Mover struct {
	Ticker           string `json:"ticker"`
	Price            string `json:"price"`
	ChangeAmount     string `json:"change_amount"`
	ChangePercentage string `json:"change_percentage"`
	Volume           string `json:"volume"`
}

// Movers is the TOP_GAINERS_LOSERS response.
type Movers struct {
	Metadata           string  `json:"metadata"`
	LastUpdated        string  `json:"last_updated"`
	TopGainers         []Mover `json:"top_gainers"`
	TopLosers          []Mover `json:"top_losers"`
	MostActivelyTraded []Mover `json:"most_actively_traded"`
}

// Overview is the OVERVIEW response. Values are kept as delivered; the API
// uses strings such as "None" for missing figures.
type Overview struct {
	Symbol               string `json:"Symbol"`
	AssetType            string `json:"AssetType"`
	Name                 string `json:"Name"`
	Description          string `json:"Description"`
	Exchange             string `json:"Exchange"`
	Currency             string `json:"Currency"`
	Country              string `json:"Country"`
	Sector               string `json:"Sector"`
	Industry             string `json:"Industry"`
	OfficialSite         string `json:"OfficialSite"`
	MarketCapitalization string `json:"MarketCapitalization"`
	PERatio              string `json:"PERatio"`
	EPS                  string `json:"EPS"`
	Beta                 string `json:"Beta"`
	DividendYield        string `json:"DividendYield"`
	ProfitMargin         string `json:"ProfitMargin"`
	FiftyTwoWeekHigh     string `json:"52WeekHigh"`
	FiftyTwoWeekLow      string `json:"52WeekLow"`
	FiftyDayAverage      string `json:"50DayMovingAverage"`
	TwoHundredDayAverage string `json:"200DayMovingAverage"`
}
