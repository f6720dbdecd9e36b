package common

// WeatherData carries the current conditions sent by the UI.
type WeatherData struct {
	Condition   string  `json:"condition"`
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	WindSpeed   float64 `json:"windSpeed"`
}

// ChatRequest is one user turn with its location and season context.
type ChatRequest struct {
	Message  string       `json:"message"`
	Location string       `json:"location"`
	Month    int          `json:"month"`
	Weather  *WeatherData `json:"weather,omitempty"`
}
