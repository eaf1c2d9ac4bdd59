// Package config provides configuration loading for the load-duration service.
package config

// ConfigProvider defines the interface for configuration data sources
type ConfigProvider interface {
	// Load complete configuration
	LoadConfig() (*ConfigData, error)

	Close() error
}

// ConfigData is the complete configuration for one site computation.
type ConfigData struct {
	Site       SiteData       `json:"site"`
	Standard   StandardData   `json:"standard"`
	FlowSource FlowSourceData `json:"flow_source"`
	Samples    SamplesData    `json:"samples"`
	HTTP       *HTTPData      `json:"http,omitempty"`
	Export     *ExportData    `json:"export,omitempty"`
}

// SiteData identifies the gauged site and the analysis window.
type SiteData struct {
	FlowSiteID string `json:"flow_site_id"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
}

// StandardData holds the regulatory concentration standard and the
// unit-conversion constant. A zero ConversionFactor selects the default for
// cfs flow and per-100mL concentration units.
type StandardData struct {
	Value            float64 `json:"value"`
	ConversionFactor float64 `json:"conversion_factor,omitempty"`
}

// FlowSourceData configures the daily-values service. An empty endpoint
// selects the public USGS service.
type FlowSourceData struct {
	Endpoint string `json:"endpoint,omitempty"`
}

// SamplesData configures the water-quality export to read concentration
// samples from.
type SamplesData struct {
	File                 string `json:"file"`
	DateColumn           string `json:"date_column,omitempty"`
	ResultColumn         string `json:"result_column,omitempty"`
	Characteristic       string `json:"characteristic,omitempty"`
	CharacteristicColumn string `json:"characteristic_column,omitempty"`
	TabDelimited         bool   `json:"tab_delimited,omitempty"`
}

// HTTPData configures the optional table-serving HTTP endpoint.
type HTTPData struct {
	ListenAddr string `json:"listen_addr,omitempty"`
	Port       int    `json:"port,omitempty"`
}

// ExportData configures optional CSV output of the computed tables.
type ExportData struct {
	RegimeFile string `json:"regime_file,omitempty"`
	CurveFile  string `json:"curve_file,omitempty"`
}
