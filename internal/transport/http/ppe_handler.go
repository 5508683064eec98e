package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "ppecli/internal/errors"
	"ppecli/internal/futures"
	"ppecli/internal/infrastructure"
	"ppecli/internal/middleware"
	"ppecli/pkg/contracts/domain"
)

type ctxKey int

const instrumentKey ctxKey = iota

// TableResponse is the body of GET /api/v1/ppe/{instrument}
type TableResponse struct {
	Instrument domain.Instrument `json:"instrument"`
	Name       string            `json:"name"`
	Rows       []domain.PPERow   `json:"rows"`
}

// sensitivityQuery holds the optional sensitivity inputs
type sensitivityQuery struct {
	Premium *float64 `query:"premium" validate:"omitempty,gte=-1000,lte=1000"`
	Forward *float64 `query:"forward" validate:"omitempty,gt=0,lte=100"`
}

// PPEHandler handles PPE requests with RFC 7807 compliance
type PPEHandler struct {
	service      PPEServiceInterface
	validator    *middleware.QueryValidator
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewPPEHandler creates a new PPE handler
func NewPPEHandler(service PPEServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *PPEHandler {
	return &PPEHandler{
		service:      service,
		validator:    middleware.NewQueryValidator(logger),
		logger:       infrastructure.WithComponent(logger, "ppe_handler"),
		errorHandler: errorHandler,
	}
}

// Routes returns the PPE routes
func (h *PPEHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/", h.GetReport)
	r.Route("/{instrument}", func(r chi.Router) {
		r.Use(h.InstrumentCtx)
		r.Get("/", h.GetTable)
		r.Get("/sensitivity", h.GetSensitivity)
	})
	return r
}

// InstrumentCtx resolves the instrument path parameter
func (h *PPEHandler) InstrumentCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		inst, err := futures.ParseInstrument(chi.URLParam(r, "instrument"))
		if err != nil {
			h.errorHandler.HandleError(w, r, err)
			return
		}
		ctx := context.WithValue(r.Context(), instrumentKey, inst)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func instrumentFrom(ctx context.Context) domain.Instrument {
	inst, _ := ctx.Value(instrumentKey).(domain.Instrument)
	return inst
}

// GetReport handles GET /api/v1/ppe
func (h *PPEHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.Compute(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, report)
}

// GetTable handles GET /api/v1/ppe/{instrument}
func (h *PPEHandler) GetTable(w http.ResponseWriter, r *http.Request) {
	inst := instrumentFrom(r.Context())
	rows, err := h.service.Table(r.Context(), inst)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, TableResponse{Instrument: inst, Name: inst.Name(), Rows: rows})
}

// GetSensitivity handles GET /api/v1/ppe/{instrument}/sensitivity
func (h *PPEHandler) GetSensitivity(w http.ResponseWriter, r *http.Request) {
	var q sensitivityQuery
	var err error
	if q.Premium, err = h.validator.Float(r, "premium"); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	if q.Forward, err = h.validator.Float(r, "forward"); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	if err := h.validator.ValidateStruct(q); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	table, err := h.service.Sensitivity(r.Context(), instrumentFrom(r.Context()), q.Premium, q.Forward)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, table)
}
