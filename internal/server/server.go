package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/iwvelando/lease-amortization/internal/config"
	"github.com/iwvelando/lease-amortization/internal/metrics"
	"github.com/iwvelando/lease-amortization/internal/tracing"
	"github.com/iwvelando/lease-amortization/pkg/constants"
	"github.com/iwvelando/lease-amortization/pkg/contract"
	"github.com/iwvelando/lease-amortization/pkg/csvimport"
	"github.com/iwvelando/lease-amortization/pkg/datetime"
	"github.com/iwvelando/lease-amortization/pkg/disclosure"
	"github.com/iwvelando/lease-amortization/pkg/lease"
	"github.com/iwvelando/lease-amortization/pkg/mathutil"
	"github.com/iwvelando/lease-amortization/pkg/output"
	"github.com/iwvelando/lease-amortization/pkg/portfolio"
	"github.com/iwvelando/lease-amortization/pkg/validation"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

var (
	errMissingParameters   = errors.New("missing parameters")
	errAmbiguousParameters = errors.New("provide either parameters or raw, not both")
)

type handler struct {
	logger        *zap.Logger
	maxUploadSize int64
	version       string
}

type requestIDKey struct{}

// NewHandler constructs the HTTP handler that serves the lease calculation API.
func NewHandler(logger *zap.Logger, maxUploadSize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{logger: logger, maxUploadSize: maxUploadSize, version: trimmedVersion}

	mux := http.NewServeMux()

	// Single lease calculation (JSON body)
	mux.Handle("/api/lease/calculate", h.instrument("/api/lease/calculate", h.handleCalculate))

	// Portfolio calculation (YAML config or CSV upload)
	mux.Handle("/api/portfolio", h.instrument("/api/portfolio", h.handlePortfolio))

	// Version endpoint for UI metadata
	mux.Handle("/api/version", h.instrument("/api/version", h.handleVersion))

	mux.Handle("/metrics", promhttp.Handler())

	return mux
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// instrument assigns a request id, starts a span and records request metrics.
func (h *handler) instrument(route string, next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := strings.TrimSpace(r.Header.Get(constants.RequestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(constants.RequestIDHeader, requestID)

		ctx, span := tracing.Tracer.Start(r.Context(), r.Method+" "+route)
		defer span.End()
		span.SetAttributes(
			attribute.String("http.route", route),
			attribute.String("http.method", r.Method),
			attribute.String("request.id", requestID),
		)

		ctx = context.WithValue(ctx, requestIDKey{}, requestID)
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r.WithContext(ctx))

		span.SetAttributes(attribute.Int("http.status_code", rec.status))
		if rec.status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(rec.status))
		}
		metrics.HTTPRequests.WithLabelValues(route, r.Method, strconv.Itoa(rec.status)).Inc()
		metrics.RequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

func requestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

type periodRange struct {
	From int `json:"from"`
	To   int `json:"to"`
}

type calculateRequest struct {
	Contract         contract.Contract   `json:"contract"`
	Parameters       *lease.Parameters   `json:"parameters,omitempty"`
	Raw              *lease.RawInput     `json:"raw,omitempty"`
	Options          *lease.TableOptions `json:"options,omitempty"`
	JournalEntries   bool                `json:"journalEntries"`
	MaturityAnalysis bool                `json:"maturityAnalysis"`
	Disclosure       *periodRange        `json:"disclosure,omitempty"`
}

type calculateResponse struct {
	RequestID            string                    `json:"requestId"`
	Lease                output.LeaseReport        `json:"lease"`
	TotalNominalPayments decimal.Decimal           `json:"totalNominalPayments"`
	JournalEntries       []disclosure.JournalEntry `json:"journalEntries,omitempty"`
	Maturity             *disclosure.Maturity      `json:"maturity,omitempty"`
	Disclosure           *disclosure.Period        `json:"disclosure,omitempty"`
	Warnings             []string                  `json:"warnings,omitempty"`
	Duration             string                    `json:"duration"`
}

type portfolioResponse struct {
	RequestID string               `json:"requestId"`
	Leases    []output.LeaseReport `json:"leases"`
	Portfolio portfolio.Summary    `json:"portfolio"`
	Warnings  []string             `json:"warnings,omitempty"`
	Duration  string               `json:"duration"`
}

type errorResponse struct {
	Error     string `json:"error"`
	Field     string `json:"field,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

func (h *handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCalculate"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	var req calculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, r, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxUploadSize), op)
			return
		}
		h.respondErrorWithOp(w, r, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
		return
	}

	params, err := req.parameters()
	if err != nil {
		metrics.ObserveCalculation("api", err)
		h.respondCalculationError(w, r, err, op)
		return
	}

	c := req.Contract
	c.Parameters = params
	if c.Commencement, err = datetime.NormalizeMonth(c.Commencement); err != nil {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, fmt.Sprintf("invalid commencement: %v", err), op)
		return
	}

	opts := lease.DefaultTableOptions()
	if req.Options != nil {
		opts = *req.Options
	}

	_, span := tracing.Tracer.Start(r.Context(), "lease.Calculate")
	span.SetAttributes(
		attribute.Int("lease.term_months", params.TermMonths),
		attribute.Float64("lease.monthly_rent", params.InitialMonthlyRent),
		attribute.Float64("lease.discount_rate", params.AnnualDiscountRatePercent),
	)
	result, err := lease.Calculate(params, opts)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
	metrics.ObserveCalculation("api", err)
	if err != nil {
		h.respondCalculationError(w, r, err, op)
		return
	}

	total, err := lease.TotalNominalPayments(params)
	if err != nil {
		h.respondCalculationError(w, r, err, op)
		return
	}

	entry := portfolio.Entry{Contract: c, Result: result}
	response := calculateResponse{
		RequestID:            requestID(r.Context()),
		Lease:                output.NewLeaseReport(entry),
		TotalNominalPayments: mathutil.ToCents(total),
		Warnings:             validation.ValidateContract(c),
	}
	if warning, err := validation.ValidateLiabilityGrowth(c.Name(), params, opts); err == nil && warning != "" {
		response.Warnings = append(response.Warnings, warning)
	}

	if req.JournalEntries {
		entries, err := disclosure.JournalEntries(result.Rows, c.Commencement)
		if err != nil {
			h.respondErrorWithOp(w, r, http.StatusBadRequest, err.Error(), op)
			return
		}
		response.JournalEntries = entries
	}

	if req.MaturityAnalysis {
		maturity, err := disclosure.MaturityAnalysis(params, opts)
		if err != nil {
			h.respondCalculationError(w, r, err, op)
			return
		}
		response.Maturity = &maturity
	}

	if req.Disclosure != nil {
		rows, err := lease.Schedule(params, result.Summary, lease.FullTermOptions(opts.UseEscalatedPayments))
		if err != nil {
			h.respondCalculationError(w, r, err, op)
			return
		}
		period, err := disclosure.PeriodDisclosure(result.Summary, rows, req.Disclosure.From, req.Disclosure.To)
		if err != nil {
			h.respondErrorWithOp(w, r, http.StatusBadRequest, err.Error(), op)
			return
		}
		response.Disclosure = &period
	}

	response.Duration = time.Since(start).String()
	h.logger.Debug("lease calculated",
		zap.String("op", op),
		zap.String("request_id", response.RequestID),
		zap.Float64("lease_liability", result.Summary.LeaseLiability),
	)
	h.writeJSON(w, http.StatusOK, response)
}

// parameters returns the numeric parameters, or parses the raw strings when
// those are given instead.
func (req calculateRequest) parameters() (lease.Parameters, error) {
	switch {
	case req.Parameters != nil && req.Raw != nil:
		return lease.Parameters{}, errAmbiguousParameters
	case req.Raw != nil:
		return lease.ParseParameters(*req.Raw)
	case req.Parameters != nil:
		if err := req.Parameters.Validate(); err != nil {
			return lease.Parameters{}, err
		}
		return *req.Parameters, nil
	default:
		return lease.Parameters{}, errMissingParameters
	}
}

func (h *handler) handlePortfolio(w http.ResponseWriter, r *http.Request) {
	const op = "server.handlePortfolio"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	if h.maxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	}
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, r, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize), op)
			return
		}
		h.respondErrorWithOp(w, r, http.StatusBadRequest, fmt.Sprintf("failed to parse upload: %v", err), op)
		return
	}

	var (
		contracts []contract.Contract
		opts      = lease.DefaultTableOptions()
		warnings  []string
	)

	if data, ok, err := h.readFormFile(r, "file", op); err != nil {
		h.respondErrorWithOp(w, r, http.StatusInternalServerError, fmt.Sprintf("failed to read configuration: %v", err), op)
		return
	} else if ok {
		conf, err := config.LoadConfigurationFromReader(bytes.NewReader(data))
		if err != nil {
			h.respondErrorWithOp(w, r, http.StatusBadRequest, err.Error(), op)
			return
		}
		if contracts, err = conf.Contracts(); err != nil {
			h.respondErrorWithOp(w, r, http.StatusBadRequest, err.Error(), op)
			return
		}
		opts = conf.Schedule
		warnings = conf.ValidateConfiguration()
	} else if data, ok, err := h.readFormFile(r, "csv", op); err != nil {
		h.respondErrorWithOp(w, r, http.StatusInternalServerError, fmt.Sprintf("failed to read CSV: %v", err), op)
		return
	} else if ok {
		if contracts, err = csvimport.Read(bytes.NewReader(data)); err != nil {
			metrics.ObserveCalculation("portfolio", err)
			h.respondCalculationError(w, r, err, op)
			return
		}
		validator := validation.ConfigValidator{Contracts: contracts, Schedule: opts}
		warnings = validator.ValidateAll()
	} else {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, "missing file or csv upload", op)
		return
	}

	ctx, span := tracing.Tracer.Start(r.Context(), "portfolio.Calculate")
	span.SetAttributes(attribute.Int("portfolio.contracts", len(contracts)))
	entries, err := config.Calculate(h.logger, contracts, opts)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
	metrics.ObserveCalculation("portfolio", err)
	if err != nil {
		h.respondCalculationError(w, r.WithContext(ctx), err, op)
		return
	}
	metrics.PortfolioContracts.Observe(float64(len(entries)))

	response := portfolioResponse{
		RequestID: requestID(r.Context()),
		Leases:    make([]output.LeaseReport, len(entries)),
		Portfolio: portfolio.Build(h.logger, entries),
		Warnings:  warnings,
	}
	for i, entry := range entries {
		response.Leases[i] = output.NewLeaseReport(entry)
	}
	response.Duration = time.Since(start).String()

	h.writeJSON(w, http.StatusOK, response)
}

// readFormFile returns the contents of a multipart file field and whether it
// was present.
func (h *handler) readFormFile(r *http.Request, field, op string) ([]byte, bool, error) {
	file, _, err := r.FormFile(field)
	if err != nil {
		return nil, false, nil
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			h.logger.Warn("failed to close uploaded file",
				zap.String("op", op),
				zap.Error(closeErr),
			)
		}
	}()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		return nil, true, err
	}
	return buf.Bytes(), true, nil
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

// respondCalculationError maps rejected input to 400, non-finite results to
// 422 and anything else to 500.
func (h *handler) respondCalculationError(w http.ResponseWriter, r *http.Request, err error, op string) {
	status := http.StatusInternalServerError
	field := ""

	var vErr *lease.ValidationError
	var rowErr *csvimport.RowError
	switch {
	case errors.As(err, &rowErr):
		status = http.StatusBadRequest
		field = rowErr.Column
	case errors.As(err, &vErr):
		status = http.StatusBadRequest
		field = vErr.Field
	case errors.Is(err, lease.ErrNonFiniteResult):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, csvimport.ErrMissingColumn),
		errors.Is(err, errMissingParameters),
		errors.Is(err, errAmbiguousParameters):
		status = http.StatusBadRequest
	}

	h.respond(w, r, status, errorResponse{Error: err.Error(), Field: field}, op)
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, r *http.Request, status int, msg string, op string) {
	h.respond(w, r, status, errorResponse{Error: msg}, op)
}

func (h *handler) respond(w http.ResponseWriter, r *http.Request, status int, payload errorResponse, op string) {
	payload.RequestID = requestID(r.Context())
	if h.logger != nil {
		h.logger.Warn("request failed",
			zap.String("op", op),
			zap.String("request_id", payload.RequestID),
			zap.Int("status", status),
			zap.String("error", payload.Error),
		)
	}
	h.writeJSON(w, status, payload)
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && h.logger != nil {
		h.logger.Error("failed to encode response",
			zap.String("op", "server.writeJSON"),
			zap.Error(err),
		)
	}
}
