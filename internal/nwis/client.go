// Package nwis fetches daily streamflow from the USGS NWIS daily-values web
// service and converts it into the engine's flow table.
package nwis

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/crestgauge/loadduration/internal/ldc"
	"go.uber.org/zap"
)

// DefaultEndpoint is the public NWIS daily-values service.
const DefaultEndpoint = "https://waterservices.usgs.gov/nwis/dv/"

// DischargeParameterCode is the NWIS parameter for discharge in cubic feet
// per second.
const DischargeParameterCode = "00060"

// Client fetches daily values from an NWIS-compatible endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     *zap.SugaredLogger
}

// NewClient creates a daily-values client. An empty endpoint selects the
// public USGS service.
func NewClient(endpoint string, logger *zap.SugaredLogger) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		logger: logger,
	}
}

// Response mirrors the WaterML-JSON envelope returned by the daily-values
// service, reduced to the fields this client reads.
type Response struct {
	Value struct {
		TimeSeries []TimeSeries `json:"timeSeries"`
	} `json:"value"`
}

type TimeSeries struct {
	Variable struct {
		VariableCode []struct {
			Value string `json:"value"`
		} `json:"variableCode"`
		NoDataValue float64 `json:"noDataValue"`
	} `json:"variable"`
	Values []struct {
		Value []TimeSeriesValue `json:"value"`
	} `json:"values"`
}

type TimeSeriesValue struct {
	Value      string   `json:"value"`
	Qualifiers []string `json:"qualifiers"`
	DateTime   string   `json:"dateTime"`
}

// FetchDailyFlow retrieves the mean daily discharge series for a site over the
// given date range. Missing-data sentinel values are skipped; the returned
// table otherwise satisfies the engine's FlowRecord invariants (the engine
// still rejects duplicates, which the service does not produce).
func (c *Client) FetchDailyFlow(ctx context.Context, siteID string, start, end time.Time) ([]ldc.FlowRecord, error) {
	v := url.Values{}
	v.Set("format", "json")
	v.Set("sites", siteID)
	v.Set("parameterCd", DischargeParameterCode)
	v.Set("startDT", start.Format("2006-01-02"))
	v.Set("endDT", end.Format("2006-01-02"))

	reqURL := c.endpoint + "?" + v.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating NWIS request: %v", err)
	}

	c.logger.Debugf("Making request to NWIS: %v", reqURL)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error making request to NWIS: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("bad response from NWIS server: %s: %s", resp.Status, body)
	}

	response := &Response{}
	if err := json.NewDecoder(resp.Body).Decode(response); err != nil {
		return nil, fmt.Errorf("unable to decode NWIS response: %v", err)
	}

	records, skipped, err := FlowRecordsFromResponse(response)
	if err != nil {
		return nil, err
	}
	if skipped > 0 {
		c.logger.Warnf("NWIS site %s: skipped %d missing or sentinel values", siteID, skipped)
	}
	c.logger.Infof("fetched %d daily flow records for site %s (%s to %s)",
		len(records), siteID, start.Format("2006-01-02"), end.Format("2006-01-02"))
	return records, nil
}

// FlowRecordsFromResponse flattens a daily-values response into flow records,
// returning the count of skipped missing-data values.
func FlowRecordsFromResponse(response *Response) ([]ldc.FlowRecord, int, error) {
	if len(response.Value.TimeSeries) == 0 {
		return nil, 0, fmt.Errorf("NWIS response contains no time series")
	}

	var records []ldc.FlowRecord
	skipped := 0
	for _, ts := range response.Value.TimeSeries {
		noData := ts.Variable.NoDataValue
		for _, block := range ts.Values {
			for _, v := range block.Value {
				flow, err := strconv.ParseFloat(v.Value, 64)
				if err != nil {
					return nil, 0, fmt.Errorf("unparseable flow value %q at %s: %v", v.Value, v.DateTime, err)
				}
				if flow == noData {
					skipped++
					continue
				}
				date, err := parseDateTime(v.DateTime)
				if err != nil {
					return nil, 0, err
				}
				records = append(records, ldc.FlowRecord{Date: date, Flow: flow})
			}
		}
	}
	return records, skipped, nil
}

func parseDateTime(s string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02T15:04:05.000", "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable NWIS dateTime %q", s)
}
