package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mmcf/pkg/buildinfo"
	errs "github.com/matzehuels/mmcf/pkg/errors"
	"github.com/matzehuels/mmcf/pkg/observability"
	"github.com/matzehuels/mmcf/pkg/pipeline"
)

const (
	defaultAddr     = "localhost:8080"
	defaultMaxBytes = 32 << 20
	shutdownTimeout = 10 * time.Second

	headerRequestID   = "X-Request-Id"
	headerCache       = "X-MMCF-Cache"
	headerVariables   = "X-MMCF-Variables"
	headerConstraints = "X-MMCF-Constraints"
	headerImbalanced  = "X-MMCF-Imbalanced"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr     string
	maxBytes int64
	noCache  bool
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var o serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the conversion pipeline over HTTP",
		Long: `Serve runs an HTTP API in front of the conversion pipeline.

Routes:
  GET  /healthz       liveness and build version
  POST /v1/convert    instance JSON in, artifact out
                      query: type, model, policy, demand_scale, writer, name, refresh
  POST /v1/inspect    instance JSON in, network report out
                      query: policy

Errors are returned as {"code": "...", "message": "..."}.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.Config.Addr != "" && !cmd.Flags().Changed("addr") {
				o.addr = c.Config.Addr
			}
			return c.runServe(cmd.Context(), o)
		},
	}

	cmd.Flags().StringVar(&o.addr, "addr", defaultAddr, "listen address")
	cmd.Flags().Int64Var(&o.maxBytes, "max-bytes", defaultMaxBytes, "maximum request body size")
	cmd.Flags().BoolVar(&o.noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, o serveOpts) error {
	runner, err := c.newRunner(o.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	s := &server{runner: runner, logger: c.Logger, config: c.Config, maxBytes: o.maxBytes}
	srv := &http.Server{
		Addr:              o.addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", "addr", o.addr, "version", buildinfo.Version)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	c.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// server serves the pipeline. Defaults for omitted query parameters come
// from config.
type server struct {
	runner   *pipeline.Runner
	logger   *log.Logger
	config   Config
	maxBytes int64
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestID)
	r.Use(observe)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/convert", s.handleConvert)
		r.Post("/inspect", s.handleInspect)
	})
	return r
}

// requestID tags every request with an id, echoed in the response header
// and attached to a request-scoped logger.
func (s *server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(headerRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(headerRequestID, id)
		ctx := withLogger(r.Context(), s.logger.With("request_id", id))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		hooks.OnResponse(r.Context(), r.Method, r.URL.Path, status, time.Since(start))
	})
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Status string `json:"status"`
		buildinfo.Info
	}{"ok", buildinfo.Current()})
}

func (s *server) handleConvert(w http.ResponseWriter, r *http.Request) {
	opts, err := s.convertOptions(r)
	if err != nil {
		writeError(w, err)
		return
	}
	data, err := s.readBody(w, r)
	if err != nil {
		writeError(w, err)
		return
	}

	res, err := s.runner.Execute(r.Context(), data, opts)
	if err != nil {
		writeError(w, err)
		return
	}

	h := w.Header()
	h.Set("Content-Type", contentType(opts.Format))
	h.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", opts.Name+"."+pipeline.Extension(opts.Format)))
	h.Set(headerCache, cacheStatus(res.CacheInfo.ArtifactHit))
	h.Set(headerImbalanced, strconv.Itoa(len(res.Imbalances)))
	if res.Stats.Model.Variables > 0 {
		h.Set(headerVariables, strconv.Itoa(res.Stats.Model.Variables))
		h.Set(headerConstraints, strconv.Itoa(res.Stats.Model.Constraints))
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifact)
}

func (s *server) handleInspect(w http.ResponseWriter, r *http.Request) {
	opts := pipeline.Options{Policy: r.URL.Query().Get("policy"), Logger: loggerFromContext(r.Context())}
	if opts.Policy == "" {
		opts.Policy = s.config.Policy
	}
	data, err := s.readBody(w, r)
	if err != nil {
		writeError(w, err)
		return
	}

	net, imbalances, err := s.runner.Normalize(r.Context(), data, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newReport(net, imbalances))
}

// convertOptions builds pipeline options from the query string, falling back
// to config values and then pipeline defaults.
func (s *server) convertOptions(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	pick := func(key, fallback string) string {
		if v := q.Get(key); v != "" {
			return v
		}
		return fallback
	}

	opts := pipeline.Options{
		Format:      pick("type", s.config.Type),
		Model:       pick("model", s.config.Model),
		Policy:      pick("policy", s.config.Policy),
		Writer:      pick("writer", s.config.Writer),
		Name:        q.Get("name"),
		DemandScale: s.config.DemandScale,
		Logger:      loggerFromContext(r.Context()),
	}
	if v := q.Get("demand_scale"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return opts, errs.Wrap(errs.ErrCodeInvalidInput, err, "invalid demand_scale %q", v)
		}
		if err := errs.ValidatePositive("demand_scale", f); err != nil {
			return opts, err
		}
		opts.DemandScale = f
	}
	if v := q.Get("refresh"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return opts, errs.Wrap(errs.ErrCodeInvalidInput, err, "invalid refresh %q", v)
		}
		opts.Refresh = b
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return opts, err
	}
	return opts, nil
}

func (s *server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body := http.MaxBytesReader(w, r.Body, s.maxBytes)
	defer body.Close()
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}
	return data, nil
}

func contentType(format string) string {
	if format == pipeline.FormatJSON {
		return "application/json"
	}
	return "text/plain; charset=utf-8"
}

func cacheStatus(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}

// statusOf maps an error to its HTTP status.
func statusOf(err error) int {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	switch errs.GetCode(err) {
	case errs.ErrCodeInvalidInput, errs.ErrCodeInvalidFormat, errs.ErrCodeInvalidModel,
		errs.ErrCodeInvalidPolicy, errs.ErrCodeInvalidConfig:
		return http.StatusBadRequest
	case errs.ErrCodeUnifiedCostRequired, errs.ErrCodeImbalancedSupplyDemand:
		return http.StatusUnprocessableEntity
	case errs.ErrCodeNotFound, errs.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errs.ErrCodeUnsupported:
		return http.StatusNotImplemented
	}
	if errors.Is(err, context.Canceled) {
		return 499
	}
	return http.StatusInternalServerError
}

type errorBody struct {
	Code    errs.Code `json:"code"`
	Message string    `json:"message"`
}

func writeError(w http.ResponseWriter, err error) {
	status := statusOf(err)
	code := errs.GetCode(err)
	if code == "" {
		code = errs.ErrCodeInternal
	}
	writeJSON(w, status, errorBody{Code: code, Message: errs.UserMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
