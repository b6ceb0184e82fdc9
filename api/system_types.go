package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/five82/pantry/parse"
)

const featureFlagPrefix = "FEATURE_FLAG_"

// GrocyVersionDto is the grocy_version block of system/info.
type GrocyVersionDto struct {
	Version     string
	ReleaseDate *parse.Time
}

func (v *GrocyVersionDto) UnmarshalJSON(data []byte) error {
	f, err := decodeFields("grocy version", data)
	if err != nil {
		return err
	}
	*v = GrocyVersionDto{
		Version:     f.str("Version"),
		ReleaseDate: f.time("ReleaseDate"),
	}
	return f.err
}

// SystemInfoDto is GET system/info.
type SystemInfoDto struct {
	GrocyVersion  GrocyVersionDto
	PHPVersion    string
	SQLiteVersion string
	OS            string
	Client        string
}

func (s *SystemInfoDto) UnmarshalJSON(data []byte) error {
	f, err := decodeFields("system info", data)
	if err != nil {
		return err
	}
	*s = SystemInfoDto{
		PHPVersion:    f.str("php_version"),
		SQLiteVersion: f.str("sqlite_version"),
		OS:            f.str("os"),
		Client:        f.str("client"),
	}
	f.decode("grocy_version", &s.GrocyVersion)
	return f.err
}

// SystemTimeDto is GET system/time.
type SystemTimeDto struct {
	Timezone         string
	TimeLocal        *parse.Time
	TimeLocalSQLite3 *parse.Time
	TimeUTC          *parse.Time
	Timestamp        *int
}

func (s *SystemTimeDto) UnmarshalJSON(data []byte) error {
	f, err := decodeFields("system time", data)
	if err != nil {
		return err
	}
	*s = SystemTimeDto{
		Timezone:         f.str("timezone"),
		TimeLocal:        f.time("time_local"),
		TimeLocalSQLite3: f.time("time_local_sqlite3"),
		TimeUTC:          f.time("time_utc"),
		Timestamp:        f.optInt("timestamp"),
	}
	return f.err
}

// FeatureFlag is one FEATURE_FLAG_* entry of system/config.
type FeatureFlag struct {
	Name  string
	Value any
}

// SystemConfigDto is GET system/config. FeatureFlags keeps the order the
// server sent them in.
type SystemConfigDto struct {
	Username      string
	BasePath      string
	BaseURL       string
	Mode          string
	DefaultLocale string
	Locale        string
	Currency      string
	FeatureFlags  []FeatureFlag
}

func (s *SystemConfigDto) UnmarshalJSON(data []byte) error {
	f, err := decodeFields("system config", data)
	if err != nil {
		return err
	}
	flags, err := orderedFeatureFlags(data)
	if err != nil {
		return &ParseError{Record: "system config", Err: err}
	}
	*s = SystemConfigDto{
		Username:      f.str("USER_USERNAME"),
		BasePath:      f.str("BASE_PATH"),
		BaseURL:       f.str("BASE_URL"),
		Mode:          f.str("MODE"),
		DefaultLocale: f.str("DEFAULT_LOCALE"),
		Locale:        f.str("LOCALE"),
		Currency:      f.str("CURRENCY"),
		FeatureFlags:  flags,
	}
	return f.err
}

// EnabledFeatures lists the names of truthy feature flags in server order.
func (s SystemConfigDto) EnabledFeatures() []string {
	out := make([]string, 0, len(s.FeatureFlags))
	for _, flag := range s.FeatureFlags {
		if parse.Truthy(flag.Value) {
			out = append(out, flag.Name)
		}
	}
	return out
}

// orderedFeatureFlags walks the top-level object token by token because a
// Go map would lose the key order.
func orderedFeatureFlags(data []byte) ([]FeatureFlag, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if tok == nil {
		return []FeatureFlag{}, nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected object, got %v", tok)
	}
	flags := []FeatureFlag{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, _ := keyTok.(string)
		var value any
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
		if strings.Contains(key, featureFlagPrefix) {
			flags = append(flags, FeatureFlag{Name: key, Value: value})
		}
	}
	return flags, nil
}

// DBChangedTimeResponse is GET system/db-changed-time.
type DBChangedTimeResponse struct {
	ChangedTime parse.Time
}

func (d *DBChangedTimeResponse) UnmarshalJSON(data []byte) error {
	f, err := decodeFields("db changed time", data)
	if err != nil {
		return err
	}
	*d = DBChangedTimeResponse{ChangedTime: f.requiredTime("changed_time")}
	return f.err
}
