package httpapi

import (
	"context"
	"encoding/json"
	"log"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"priced/internal/predictor"
	"priced/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	Predict(ctx context.Context, in predictor.Input) (types.PredictResponse, error)
	Status() types.StatusResponse
	Schema() types.SchemaResponse
	Ready() bool
}

func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	r.Use(MetricsMiddleware)
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: corsAllowedMethods,
			AllowedHeaders: corsAllowedHeaders,
		}))
	}

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		renderIndex(w, http.StatusOK, indexData{Schema: svc.Schema()})
	})

	r.Post("/predict", func(w http.ResponseWriter, r *http.Request) {
		handlePredict(svc, w, r)
	})

	r.Get("/schema", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(svc.Schema()); err != nil {
			writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
		}
	})

	r.Get("/status", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(svc.Status()); err != nil {
			writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
		}
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(types.HealthResponse{
			Status:    "ok",
			Message:   "price model loaded and serving",
			Endpoints: []string{"/", "/predict", "/schema", "/status", "/health", "/healthz", "/readyz", "/metrics"},
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("loading"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)

	return r
}

// handlePredict accepts JSON or form input. The response shape follows the
// request: JSON in, JSON out; form in, rendered page out. Accept:
// application/json forces JSON.
//
// @Summary      Estimate a car price
// @Description  Runs the loaded regression model over the submitted features.
// @Accept       json
// @Produce      json
// @Param        request  body      types.PredictRequest  true  "Car features"
// @Success      200      {object}  types.PredictResponse
// @Failure      400      {object}  types.ErrorResponse
// @Failure      415      {object}  types.ErrorResponse
// @Failure      500      {object}  types.ErrorResponse
// @Router       /predict [post]
func handlePredict(svc Service, w http.ResponseWriter, r *http.Request) {
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	var in predictor.Input
	var fromForm bool
	switch {
	case ct == "application/json":
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		var err error
		in, err = decodeJSONInput(r)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
	case ct == "application/x-www-form-urlencoded" || ct == "multipart/form-data":
		fromForm = true
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		var err error
		if ct == "multipart/form-data" {
			err = r.ParseMultipartForm(maxBodyBytes)
		} else {
			err = r.ParseForm()
		}
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid form body")
			return
		}
		in = make(predictor.Input, len(r.PostForm))
		for k := range r.PostForm {
			in[k] = r.PostForm.Get(k)
		}
	default:
		writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json or form-encoded")
		return
	}

	wantsJSON := !fromForm || strings.Contains(r.Header.Get("Accept"), "application/json")

	start := time.Now()
	resp, err := svc.Predict(r.Context(), in)
	if err != nil {
		if r.Context().Err() != nil {
			return
		}
		if predictor.IsValidation(err) {
			ObservePrediction("invalid", time.Since(start))
			IncrementValidationFailure(predictor.ValidationField(err))
			if wantsJSON {
				writeValidationError(w, err)
			} else {
				renderIndex(w, http.StatusBadRequest, indexData{Schema: svc.Schema(), Error: err.Error(), Values: in})
			}
			return
		}
		ObservePrediction("error", time.Since(start))
		// Internal failure: log the cause, return a generic message.
		if zlog != nil {
			zlog.Error().Err(err).Str("request_id", middleware.GetReqID(r.Context())).Msg("prediction failed")
		} else {
			log.Printf("prediction failed: %v", err)
		}
		if wantsJSON {
			writeJSONError(w, http.StatusInternalServerError, "prediction failed")
		} else {
			renderIndex(w, http.StatusInternalServerError, indexData{Schema: svc.Schema(), Error: "prediction failed", Values: in})
		}
		return
	}
	ObservePrediction("ok", time.Since(start))

	if lvl := requestLogLevel(r); lvl >= LevelInfo && zlog != nil {
		zlog.Info().
			Str("request_id", middleware.GetReqID(r.Context())).
			Float64("price", resp.Price).
			Strs("fallbacks", resp.Fallbacks).
			Dur("dur", time.Since(start)).
			Msg("predict")
	}

	if wantsJSON {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
		}
		return
	}
	renderIndex(w, http.StatusOK, indexData{Schema: svc.Schema(), Result: &resp, Values: in})
}

// decodeJSONInput flattens a JSON object into the raw string form the
// predictor validates. Numbers keep their literal text so the validator, not
// the decoder, decides what counts as numeric.
func decodeJSONInput(r *http.Request) (predictor.Input, error) {
	var body map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return nil, jsonBodyError{}
	}
	in := make(predictor.Input, len(body))
	for k, raw := range body {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			in[k] = s
			continue
		}
		var n float64
		if err := json.Unmarshal(raw, &n); err == nil {
			in[k] = strconv.FormatFloat(n, 'f', -1, 64)
			continue
		}
		return nil, fieldTypeError{field: k}
	}
	return in, nil
}

type jsonBodyError struct{}

func (jsonBodyError) Error() string { return "invalid JSON body" }

type fieldTypeError struct{ field string }

func (e fieldTypeError) Error() string { return "field \"" + e.field + "\" must be a string or number" }
