package bannerrepo

import "errors"

var (
	ErrDirNotFound   = errors.New("banner config directory not found")
	ErrMissingKeys   = errors.New("missing required keys")
	ErrInvalidTime   = errors.New("invalid datetime format")
	ErrInvalidRecord = errors.New("invalid banner record")
)

// RequiredKeys lists the keys every banner record must carry.
var RequiredKeys = []string{ //nolint:gochecknoglobals
	"id", "title", "description", "start_time", "end_time", "locations",
}

// TextKeys lists the required keys that must hold a string, never null.
var TextKeys = []string{"id", "title", "description"} //nolint:gochecknoglobals

// Record is the on-disk form of a banner.
type Record struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	StartTime        string   `json:"start_time"`        //nolint:tagliatelle
	EndTime          string   `json:"end_time"`          //nolint:tagliatelle
	Locations        []string `json:"locations"`
	SpecialCondition string   `json:"special_condition"` //nolint:tagliatelle
}
