package grocy

import (
	"github.com/five82/pantry/api"
	"github.com/five82/pantry/parse"
)

// SystemInfo describes the Grocy installation.
type SystemInfo struct {
	grocyVersion     string
	grocyReleaseDate *parse.Time
	phpVersion       string
	sqliteVersion    string
	os               string
	client           string
}

// SystemInfoFromDto builds system info from its record.
func SystemInfoFromDto(dto *api.SystemInfoDto) (*SystemInfo, error) {
	if dto == nil {
		return nil, &ShapeError{Model: "system info", Shape: "nil system info record"}
	}
	return &SystemInfo{
		grocyVersion:     dto.GrocyVersion.Version,
		grocyReleaseDate: dto.GrocyVersion.ReleaseDate,
		phpVersion:       dto.PHPVersion,
		sqliteVersion:    dto.SQLiteVersion,
		os:               dto.OS,
		client:           dto.Client,
	}, nil
}

func (s *SystemInfo) GrocyVersion() string { return s.grocyVersion }
func (s *SystemInfo) GrocyReleaseDate() *parse.Time { return s.grocyReleaseDate }
func (s *SystemInfo) PHPVersion() string { return s.phpVersion }
func (s *SystemInfo) SQLiteVersion() string { return s.sqliteVersion }
func (s *SystemInfo) OS() string { return s.os }
func (s *SystemInfo) Client() string { return s.client }

// SystemTime is the server clock.
type SystemTime struct {
	timezone         string
	timeLocal        *parse.Time
	timeLocalSQLite3 *parse.Time
	timeUTC          *parse.Time
	timestamp        *int
}

// SystemTimeFromDto builds the server clock from its record.
func SystemTimeFromDto(dto *api.SystemTimeDto) (*SystemTime, error) {
	if dto == nil {
		return nil, &ShapeError{Model: "system time", Shape: "nil system time record"}
	}
	return &SystemTime{
		timezone:         dto.Timezone,
		timeLocal:        dto.TimeLocal,
		timeLocalSQLite3: dto.TimeLocalSQLite3,
		timeUTC:          dto.TimeUTC,
		timestamp:        dto.Timestamp,
	}, nil
}

func (s *SystemTime) Timezone() string { return s.timezone }
func (s *SystemTime) TimeLocal() *parse.Time { return s.timeLocal }
func (s *SystemTime) TimeLocalSQLite3() *parse.Time { return s.timeLocalSQLite3 }
func (s *SystemTime) TimeUTC() *parse.Time { return s.timeUTC }
func (s *SystemTime) Timestamp() *int { return s.timestamp }

// SystemConfig holds server settings and the enabled feature flags.
type SystemConfig struct {
	username        string
	basePath        string
	baseURL         string
	mode            string
	defaultLocale   string
	locale          string
	currency        string
	enabledFeatures []string
}

// SystemConfigFromDto builds the server settings from their record.
func SystemConfigFromDto(dto *api.SystemConfigDto) (*SystemConfig, error) {
	if dto == nil {
		return nil, &ShapeError{Model: "system config", Shape: "nil system config record"}
	}
	return &SystemConfig{
		username:        dto.Username,
		basePath:        dto.BasePath,
		baseURL:         dto.BaseURL,
		mode:            dto.Mode,
		defaultLocale:   dto.DefaultLocale,
		locale:          dto.Locale,
		currency:        dto.Currency,
		enabledFeatures: dto.EnabledFeatures(),
	}, nil
}

func (s *SystemConfig) Username() string { return s.username }
func (s *SystemConfig) BasePath() string { return s.basePath }
func (s *SystemConfig) BaseURL() string { return s.baseURL }
func (s *SystemConfig) Mode() string { return s.mode }
func (s *SystemConfig) DefaultLocale() string { return s.defaultLocale }
func (s *SystemConfig) Locale() string { return s.locale }
func (s *SystemConfig) Currency() string { return s.currency }

// EnabledFeatures lists truthy feature flags in the order the server sent
// them.
func (s *SystemConfig) EnabledFeatures() []string {
	return append([]string(nil), s.enabledFeatures...)
}

// FeatureEnabled reports whether name is among the enabled flags.
func (s *SystemConfig) FeatureEnabled(name string) bool {
	for _, f := range s.enabledFeatures {
		if f == name {
			return true
		}
	}
	return false
}
