package models

// Message levels shown to the user alongside the dashboard.
const (
	LevelSuccess = "success"
	LevelInfo    = "info"
	LevelWarning = "warning"
	LevelError   = "error"
)

// Message is a user-visible status line describing a load or render outcome
type Message struct {
	Level string `json:"level"`
	Text  string `json:"text"`
}

func Success(text string) Message { return Message{Level: LevelSuccess, Text: text} }
func Info(text string) Message    { return Message{Level: LevelInfo, Text: text} }
func Warning(text string) Message { return Message{Level: LevelWarning, Text: text} }
func Error(text string) Message   { return Message{Level: LevelError, Text: text} }

// DashboardRequest is the record produced by one user interaction.
// TopN of 0 means "use the default".
type DashboardRequest struct {
	ID       string   `json:"request_id" validate:"required,uuid"`
	Region   Region   `json:"region" validate:"required,oneof=AE SA EG IQ MA"`
	Platform Platform `json:"platform" validate:"required,oneof=ios android"`
	UploadID string   `json:"upload_id,omitempty" validate:"omitempty,hexadecimal,len=64"`
	TopN     int      `json:"top_n,omitempty" validate:"omitempty,min=5,max=25"`
	Category string   `json:"category,omitempty" validate:"max=128"`
	Detailed bool     `json:"detailed"`
}

// Panel keys, in display order.
const (
	PanelFree     = "free"
	PanelPaid     = "paid"
	PanelGrossing = "grossing"
	PanelRank     = "rank"
	PanelCategory = "category"
	PanelRatings  = "ratings"
)

var Panels = []string{PanelFree, PanelPaid, PanelGrossing, PanelRank, PanelCategory, PanelRatings}

// DashboardPanel is one chart plus the rows it was drawn from.
// Warning is set (and ChartURL empty) when there was nothing to draw.
type DashboardPanel struct {
	Key      string           `json:"key"`
	Heading  string           `json:"heading"`
	Title    string           `json:"title"`
	Kind     string           `json:"kind"`
	ChartURL string           `json:"chart_url,omitempty"`
	Rows     []LeaderboardRow `json:"rows"`
	Warning  string           `json:"warning,omitempty"`
}

// DetailedView carries the optional full tables.
type DetailedView struct {
	All      *LeaderboardTable `json:"all"`
	Category *LeaderboardTable `json:"category,omitempty"`
}

// DashboardView is the complete rendered page for one request
type DashboardView struct {
	RequestID        string           `json:"request_id"`
	Title            string           `json:"title"`
	Region           string           `json:"region"`
	Platform         string           `json:"platform"`
	Source           string           `json:"source,omitempty"`
	Valid            bool             `json:"valid"`
	TopN             int              `json:"top_n"`
	TopNMin          int              `json:"top_n_min"`
	TopNMax          int              `json:"top_n_max"`
	Categories       []string         `json:"categories"`
	SelectedCategory string           `json:"selected_category,omitempty"`
	Messages         []Message        `json:"messages"`
	Panels           []DashboardPanel `json:"panels"`
	Detailed         *DetailedView    `json:"detailed,omitempty"`
	Info             string           `json:"info,omitempty"`
}

// UploadResponse is returned after a CSV upload is accepted.
type UploadResponse struct {
	UploadID string    `json:"upload_id"`
	Filename string    `json:"filename"`
	Rows     int       `json:"rows"`
	Columns  []string  `json:"columns"`
	Messages []Message `json:"messages"`
}

// RegionAvailability describes the default files known for a region.
type RegionAvailability struct {
	Code      Region          `json:"code"`
	Name      string          `json:"name"`
	Platforms map[string]bool `json:"platforms"`
}
