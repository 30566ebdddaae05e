package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Settings represents the structure of the optional YAML settings file.
type Settings struct {
	ApplicationInsights ApplicationInsightsSettings `yaml:"application_insights"`
}

// ApplicationInsightsSettings binds the telemetry endpoint.
type ApplicationInsightsSettings struct {
	APIURL string `yaml:"api_url"` // e.g. https://api.applicationinsights.io/v1/apps/{0}/{1}/{2}?{3}
	AppID  string `yaml:"app_id"`
	APIKey string `yaml:"api_key"`
}

// LoadSettingsFile loads the YAML settings file at path.
// Returns nil without error if the file doesn't exist.
func LoadSettingsFile(path string) (*Settings, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Settings file is optional
			return nil, nil
		}
		return nil, err
	}

	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
