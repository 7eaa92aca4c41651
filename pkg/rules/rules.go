// Package rules provides ready-made and loadable exclusion-pattern sets
// for query-parameter filtering. The patterns themselves stay plain
// strings; compilation happens in pkg/urlnorm so that a bad pattern is
// reported through its error kinds.
package rules

import (
	"fmt"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
	"github.com/tidwall/gjson"
)

// Tracking matches the common cross-site tracking parameters: UTM tags,
// ad-click identifiers and mail campaign tokens.
var Tracking = []string{
	"^utm_",
	"^gclid$",
	"^fbclid$",
	"^msclkid$",
	"^mc_cid$",
	"^mc_eid$",
	"^igshid$",
}

// FromJSON reads exclusion patterns from a rule document of the form
// {"exclude": ["utm_.*", ...]}.
func FromJSON(data []byte) ([]string, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("rules: invalid JSON")
	}
	res := gjson.GetBytes(data, "exclude")
	if !res.IsArray() {
		return nil, fmt.Errorf("rules: missing exclude array")
	}
	var patterns []string
	for _, item := range res.Array() {
		if item.Type != gjson.String {
			return nil, fmt.Errorf("rules: exclude entries must be strings, got %s", item.Raw)
		}
		patterns = append(patterns, item.String())
	}
	return patterns, nil
}

// Load reads exclusion patterns from the "exclude" key of a YAML config
// file. An empty path falls back to $HOME/.url-normalize.yaml; a missing
// fallback file just means no patterns, while a missing explicit path is
// an error.
func Load(path string) ([]string, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
		return v.GetStringSlice("exclude"), nil
	}

	home, err := homedir.Dir()
	if err != nil {
		return nil, err
	}
	v.AddConfigPath(home)
	v.SetConfigName(".url-normalize")
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil, nil
		}
		return nil, err
	}
	return v.GetStringSlice("exclude"), nil
}
