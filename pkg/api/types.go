package api

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ServerConfig holds configuration for the API server
type ServerConfig struct {
	Bind   string
	Port   int
	APIKey string
}

// StateResponse is the payload of a state query
type StateResponse struct {
	QueryID  string     `json:"query_id"`
	Target   int        `json:"target"`
	EpochET  float64    `json:"epoch_et"`
	Position [3]float64 `json:"position_km"`
	Velocity [3]float64 `json:"velocity_km_s"`
	Kernel   string     `json:"kernel"`
	Segment  string     `json:"segment"`
	Cached   bool       `json:"cached"`
}

// SegmentInfo describes one segment of a loaded kernel
type SegmentInfo struct {
	Kernel   string  `json:"kernel"`
	Name     string  `json:"name"`
	Target   int     `json:"target"`
	Center   int     `json:"center"`
	Frame    int     `json:"frame"`
	DataType int     `json:"data_type"`
	StartET  float64 `json:"start_et"`
	EndET    float64 `json:"end_et"`
}

// IntegrityResponse is the payload of an integrity check
type IntegrityResponse struct {
	OK     bool   `json:"ok"`
	Detail string `json:"detail,omitempty"`
}
