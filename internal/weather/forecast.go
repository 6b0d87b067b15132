package weather

// Condition is the provider's short description of a day's weather.
type Condition struct {
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Code        int    `json:"code"`
}

// Day is a single entry of the daily forecast.
type Day struct {
	ValidDate string    `json:"valid_date"`
	Temp      float64   `json:"temp"`
	MaxTemp   float64   `json:"max_temp"`
	MinTemp   float64   `json:"min_temp"`
	Pop       float64   `json:"pop"`
	Precip    float64   `json:"precip"`
	WindSpeed float64   `json:"wind_spd"`
	Humidity  float64   `json:"rh"`
	Weather   Condition `json:"weather"`
}

// Forecast is the daily forecast payload returned by the provider.
type Forecast struct {
	CityName    string `json:"city_name"`
	CountryCode string `json:"country_code"`
	StateCode   string `json:"state_code,omitempty"`
	Timezone    string `json:"timezone,omitempty"`
	Days        []Day  `json:"data"`
}
