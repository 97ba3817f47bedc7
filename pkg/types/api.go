package types

// PredictRequest is the JSON payload accepted by POST /predict. Form posts
// carry the same fields as application/x-www-form-urlencoded values.
type PredictRequest struct {
	// Manufacturer of the car.
	// example: toyota
	Make string `json:"make" example:"toyota"`
	// Optional body style. Falls back to the training fallback level when omitted.
	// example: suv
	Body string `json:"body,omitempty" example:"suv"`
	// Optional fuel type.
	// example: petrol
	Fuel string `json:"fuel,omitempty" example:"petrol"`
	// Optional transmission type.
	// example: manual
	Transmission string `json:"transmission,omitempty" example:"manual"`
	// Model year.
	// example: 2018
	Year int `json:"year" example:"2018"`
	// Odometer reading in kilometers.
	// example: 40000
	Mileage float64 `json:"mileage" example:"40000"`
}

// PredictResponse is returned by POST /predict for JSON requests.
type PredictResponse struct {
	// Estimated price in the training currency.
	// example: 815000
	Price float64 `json:"price" example:"815000"`
	// 10th percentile of the per-tree estimates.
	// example: 740000
	RangeLow float64 `json:"range_low" example:"740000"`
	// 90th percentile of the per-tree estimates.
	// example: 900000
	RangeHigh float64 `json:"range_high" example:"900000"`
	// Fields whose submitted value was unknown to the model and replaced with
	// the fallback level recorded at training time.
	Fallbacks []string `json:"fallbacks,omitempty"`
	// Identifier of the artifact that produced the estimate.
	// example: 7d1c6f2e-9b1a-4c7e-8b2f-1f2a3b4c5d6e
	ModelID string `json:"model_id" example:"7d1c6f2e-9b1a-4c7e-8b2f-1f2a3b4c5d6e"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: field "year" must be a number
	Error string `json:"error" example:"field \"year\" must be a number"`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
	// Name of the offending input field for validation failures.
	// example: year
	Field string `json:"field,omitempty" example:"year"`
}

// FieldSchema describes one input field of the prediction schema.
type FieldSchema struct {
	// Field name as submitted in requests.
	// example: fuel
	Name string `json:"name" example:"fuel"`
	// Field kind: "number" or "category".
	// example: category
	Kind string `json:"kind" example:"category"`
	// Whether the field must be present in every request.
	// example: false
	Required bool `json:"required"`
	// Accepted values for categorical fields, after normalization.
	Values []string `json:"values,omitempty"`
	// Value substituted when an optional field is omitted or unknown.
	// example: petrol
	Fallback string `json:"fallback,omitempty" example:"petrol"`
}

// SchemaResponse is returned by GET /schema.
type SchemaResponse struct {
	// Ordered input fields expected by the model.
	Fields []FieldSchema `json:"fields"`
	// Name of the predicted column.
	// example: price
	Target string `json:"target" example:"price"`
}

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	// Identifier of the loaded artifact.
	// example: 7d1c6f2e-9b1a-4c7e-8b2f-1f2a3b4c5d6e
	ModelID string `json:"model_id"`
	// When the artifact was trained (unix seconds).
	// example: 1700000000
	TrainedAtUnix int64 `json:"trained_at_unix" example:"1700000000"`
	// Number of dataset rows the model was trained on.
	// example: 1200
	DatasetRows int `json:"dataset_rows" example:"1200"`
	// Trees in the loaded forest.
	// example: 200
	Trees int `json:"trees" example:"200"`
	// Ordered feature columns of the loaded artifact.
	Features []string `json:"features"`
	// Holdout mean absolute error recorded at training time.
	// example: 52000
	HoldoutMAE float64 `json:"holdout_mae,omitempty"`
	// Holdout R² recorded at training time.
	// example: 0.87
	HoldoutR2 float64 `json:"holdout_r2,omitempty"`
	// Predictions served since startup.
	// example: 42
	PredictionsTotal uint64 `json:"predictions_total"`
	// Requests rejected by input validation since startup.
	// example: 3
	ValidationFailuresTotal uint64 `json:"validation_failures_total"`
	// Uptime of the server in seconds.
	// example: 3600
	UptimeSeconds int64 `json:"uptime_seconds" example:"3600"`
	// Server time in unix seconds.
	// example: 1700000000
	ServerTimeUnix int64 `json:"server_time_unix" example:"1700000000"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	// Overall service state.
	// example: ok
	Status string `json:"status" example:"ok"`
	// Human-readable message.
	// example: price model loaded and serving
	Message string `json:"message" example:"price model loaded and serving"`
	// Endpoints exposed by this server.
	Endpoints []string `json:"endpoints"`
}
