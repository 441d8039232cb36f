package model

type DeserializeRequestBody struct {
	Maidata string  `json:"maidata"`
	Chart   string  `json:"chart"`
	Offset  float64 `json:"offset"`
}

type DeserializeResponse struct {
	Maidata *MaidataFile `json:"maidata,omitempty"`
	Chart   *Chart       `json:"chart,omitempty"`
	Errors  []string     `json:"errors"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}

type ChartResponse struct {
	Overview ChartOverview  `json:"overview"`
	Chart    *Chart         `json:"chart"`
	// only set when a metadata table is configured
	Metadata *ChartMetadata `json:"metadata,omitempty"`
}
