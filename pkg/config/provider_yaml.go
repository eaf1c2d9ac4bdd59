package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

// YAMLProvider implements ConfigProvider for YAML configuration files
type YAMLProvider struct {
	filename string
}

// NewYAMLProvider creates a new YAML configuration provider
func NewYAMLProvider(filename string) *YAMLProvider {
	return &YAMLProvider{
		filename: filename,
	}
}

// LoadConfig loads the complete configuration from YAML file
func (y *YAMLProvider) LoadConfig() (*ConfigData, error) {
	cfgFile, err := os.ReadFile(y.filename)
	if err != nil {
		return nil, err
	}

	var yamlConfig struct {
		Site struct {
			FlowSiteID string `yaml:"flow_site_id"`
			StartDate  string `yaml:"start_date"`
			EndDate    string `yaml:"end_date"`
		} `yaml:"site"`
		Standard struct {
			Value            float64 `yaml:"value"`
			ConversionFactor float64 `yaml:"conversion_factor"`
		} `yaml:"standard"`
		FlowSource struct {
			Endpoint string `yaml:"endpoint"`
		} `yaml:"flow_source"`
		Samples struct {
			File                 string `yaml:"file"`
			DateColumn           string `yaml:"date_column"`
			ResultColumn         string `yaml:"result_column"`
			Characteristic       string `yaml:"characteristic"`
			CharacteristicColumn string `yaml:"characteristic_column"`
			TabDelimited         bool   `yaml:"tab_delimited"`
		} `yaml:"samples"`
		HTTP *struct {
			ListenAddr string `yaml:"listen_addr"`
			Port       int    `yaml:"port"`
		} `yaml:"http"`
		Export *struct {
			RegimeFile string `yaml:"regime_file"`
			CurveFile  string `yaml:"curve_file"`
		} `yaml:"export"`
	}

	if err := yaml.Unmarshal(cfgFile, &yamlConfig); err != nil {
		return nil, err
	}

	config := &ConfigData{
		Site: SiteData{
			FlowSiteID: yamlConfig.Site.FlowSiteID,
			StartDate:  yamlConfig.Site.StartDate,
			EndDate:    yamlConfig.Site.EndDate,
		},
		Standard: StandardData{
			Value:            yamlConfig.Standard.Value,
			ConversionFactor: yamlConfig.Standard.ConversionFactor,
		},
		FlowSource: FlowSourceData{
			Endpoint: yamlConfig.FlowSource.Endpoint,
		},
		Samples: SamplesData{
			File:                 yamlConfig.Samples.File,
			DateColumn:           yamlConfig.Samples.DateColumn,
			ResultColumn:         yamlConfig.Samples.ResultColumn,
			Characteristic:       yamlConfig.Samples.Characteristic,
			CharacteristicColumn: yamlConfig.Samples.CharacteristicColumn,
			TabDelimited:         yamlConfig.Samples.TabDelimited,
		},
	}
	if yamlConfig.HTTP != nil {
		config.HTTP = &HTTPData{
			ListenAddr: yamlConfig.HTTP.ListenAddr,
			Port:       yamlConfig.HTTP.Port,
		}
	}
	if yamlConfig.Export != nil {
		config.Export = &ExportData{
			RegimeFile: yamlConfig.Export.RegimeFile,
			CurveFile:  yamlConfig.Export.CurveFile,
		}
	}

	if err := Validate(config); err != nil {
		return nil, err
	}
	return config, nil
}

// Close is a no-op for the YAML provider
func (y *YAMLProvider) Close() error {
	return nil
}

// Validate checks required fields and the date range.
func Validate(c *ConfigData) error {
	if c.Site.FlowSiteID == "" {
		return fmt.Errorf("site.flow_site_id is required")
	}
	if c.Standard.Value <= 0 {
		return fmt.Errorf("standard.value must be positive, got %v", c.Standard.Value)
	}
	if c.Standard.ConversionFactor < 0 {
		return fmt.Errorf("standard.conversion_factor must not be negative, got %v", c.Standard.ConversionFactor)
	}

	start, err := time.Parse("2006-01-02", c.Site.StartDate)
	if err != nil {
		return fmt.Errorf("site.start_date: %v", err)
	}
	end, err := time.Parse("2006-01-02", c.Site.EndDate)
	if err != nil {
		return fmt.Errorf("site.end_date: %v", err)
	}
	if end.Before(start) {
		return fmt.Errorf("site.end_date %s is before site.start_date %s", c.Site.EndDate, c.Site.StartDate)
	}

	if c.Samples.File == "" {
		return fmt.Errorf("samples.file is required")
	}
	return nil
}

// DateRange returns the parsed analysis window. Validate must have passed.
func (c *ConfigData) DateRange() (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01-02", c.Site.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := time.Parse("2006-01-02", c.Site.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}
