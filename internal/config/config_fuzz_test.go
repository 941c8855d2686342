package config

import (
	"bytes"
	"testing"

	"github.com/spf13/viper"
)

// FuzzLoadConfig feeds arbitrary YAML through the viper load path. Loading
// may fail but must never panic, and a loaded configuration must validate.
func FuzzLoadConfig(f *testing.F) {
	f.Add(`inputs: [res_1.txt, res_2.txt]
output:
  path: combined_result.json
  indent: 2`)
	f.Add(`output:
  indent: "wide"`)
	f.Add(`category_pattern: "^C(\\d+$"`)
	f.Add(`fallback: {splitter: regex}`)
	f.Add(`malformed: yaml: content`)
	f.Add(``)

	f.Fuzz(func(t *testing.T, content string) {
		if len(content) > 10000 {
			t.Skip("config content too large")
		}

		v := viper.New()
		SetDefaults(v)
		v.SetConfigType("yaml")
		if err := v.ReadConfig(bytes.NewBufferString(content)); err != nil {
			return
		}

		cfg, err := LoadFrom(v)
		if err != nil {
			return
		}
		if err := Validate(cfg); err != nil {
			t.Fatalf("loaded configuration does not validate: %v", err)
		}
		_ = cfg.CategoryRegexp()
	})
}
