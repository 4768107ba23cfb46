package model

// AirportDescriptor identifies an airport for a single batch generation run.
// IATACode must name a row of the airports table.
type AirportDescriptor struct {
	IATACode    string `json:"iata_code" binding:"required,len=3,alpha"`
	City        string `json:"city" binding:"required"`
	CountryCode string `json:"country_code"`
}

// LocationQuery is the weather lookup key: the city, optionally suffixed
// with ",<country code>".
func (a AirportDescriptor) LocationQuery() string {
	if a.CountryCode == "" {
		return a.City
	}
	return a.City + "," + a.CountryCode
}

// GenerateBatchRequest carries the airports of a batch run. Entries are
// validated only after the list is cut to the batch limit.
type GenerateBatchRequest struct {
	Airports []AirportDescriptor `json:"airports"`
}

// BatchResult summarises a batch generation run. Skipped counts duplicates,
// which are reported in Errors but not in Failed.
type BatchResult struct {
	Success   bool     `json:"success"`
	Generated int      `json:"generated"`
	Failed    int      `json:"failed"`
	Skipped   int      `json:"skipped"`
	Errors    []string `json:"errors"`
	Message   string   `json:"message"`
}
