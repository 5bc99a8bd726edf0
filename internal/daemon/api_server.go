package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"voicegate/internal/api"
	"voicegate/internal/config"
	"voicegate/internal/inference"
	"voicegate/internal/logging"
	"voicegate/internal/normalize"
	"voicegate/internal/uploads"
)

type apiServer struct {
	cfg        *config.Config
	logger     *slog.Logger
	daemon     *Daemon
	validator  *uploads.Validator
	normalizer *normalize.Normalizer
	correlator *inference.Correlator
	queueSvc   *api.QueueService

	listener net.Listener
	server   *http.Server
}

func newAPIServer(
	cfg *config.Config,
	d *Daemon,
	normalizer *normalize.Normalizer,
	correlator *inference.Correlator,
	queueSvc *api.QueueService,
	logger *slog.Logger,
) *apiServer {
	srv := &apiServer{
		cfg:        cfg,
		logger:     logger,
		daemon:     d,
		validator:  uploads.NewValidator(cfg.Uploads.AllowedExtensions),
		normalizer: normalizer,
		correlator: correlator,
		queueSvc:   queueSvc,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/upload", srv.handleUpload)
	mux.HandleFunc("/queue", srv.handleQueue)
	mux.HandleFunc("/download/", srv.handleDownload)
	mux.HandleFunc("/inference-result", srv.handleInferenceResult)
	mux.HandleFunc("/api/status", srv.handleStatus)
	mux.HandleFunc("/healthz", srv.handleHealthz)

	srv.server = &http.Server{
		Handler:           srv.withRequestID(withCORS(mux)),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return srv
}

func (s *apiServer) start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.cfg.Paths.APIBind)
	if err != nil {
		return fmt.Errorf("api listen: %w", err)
	}
	s.listener = listener

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("api server error", logging.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}()

	return nil
}

func (s *apiServer) stop() {
	if s.server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}
	if s.listener != nil {
		_ = s.listener.Close()
		s.listener = nil
	}
}

func (s *apiServer) addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// handler exposes the middleware-wrapped mux for in-process tests.
func (s *apiServer) handler() http.Handler {
	return s.server.Handler
}

func (s *apiServer) handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes())
	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	if _, err := s.validator.Validate(header.Filename); err != nil {
		var disallowed *uploads.DisallowedExtensionError
		if errors.As(err, &disallowed) {
			s.writeError(w, http.StatusBadRequest, disallowed.Error())
			return
		}
		s.writeError(w, http.StatusBadRequest, "Invalid upload")
		return
	}

	storedName := uploads.NewStoredName(header.Filename, time.Now())
	storedPath := filepath.Join(s.cfg.Paths.UploadDir, storedName)
	if err := writeUpload(storedPath, file); err != nil {
		s.logger.ErrorContext(ctx, "store upload failed", logging.Error(err))
		s.writeError(w, http.StatusInternalServerError, "Failed to store uploaded file")
		return
	}

	// Conversion is the pipeline's only suspension point; a second upload
	// may arrive while this one converts, and whichever finishes last wins
	// the queue slot.
	result, err := s.normalizer.Normalize(ctx, storedPath, storedName, header.Filename)
	if err != nil {
		var conv *normalize.ConversionError
		if errors.As(err, &conv) {
			s.logger.ErrorContext(ctx, "normalization failed",
				logging.String("stored_name", storedName),
				logging.Error(err))
			if notifyErr := s.daemon.notifier.NotifyConversionFailed(ctx, header.Filename, err); notifyErr != nil {
				s.logger.Warn("conversion failure notification", logging.Error(notifyErr))
			}
			s.writeError(w, http.StatusInternalServerError, "File conversion failed")
			return
		}
		s.logger.ErrorContext(ctx, "normalization error", logging.Error(err))
		s.writeError(w, http.StatusInternalServerError, "Failed to process uploaded file")
		return
	}

	item, err := s.daemon.store.Replace(ctx, result.StoredName, result.OriginalName, result.ArtifactPath)
	if err != nil {
		s.logger.ErrorContext(ctx, "queue replace failed", logging.Error(err))
		s.writeError(w, http.StatusInternalServerError, "Failed to queue uploaded file")
		return
	}

	s.logger.InfoContext(ctx, "upload queued",
		logging.String("stored_name", item.StoredName),
		logging.String("original_name", item.OriginalName),
		logging.Bool("converted", result.Converted))
	if notifyErr := s.daemon.notifier.NotifyUploadQueued(ctx, item.OriginalName, result.Converted); notifyErr != nil {
		s.logger.Warn("upload notification", logging.Error(notifyErr))
	}

	message := "File uploaded successfully"
	if result.Converted {
		message = "File uploaded and converted successfully"
	}
	s.writeJSON(w, http.StatusOK, api.UploadResponse{
		Message: message,
		File: api.UploadedFile{
			Filename:     item.StoredName,
			OriginalName: item.OriginalName,
		},
	})
}

func (s *apiServer) handleQueue(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	entries, err := s.queueSvc.List(r.Context(), requestScheme(r), r.Host)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "Failed to read queue")
		return
	}
	s.writeJSON(w, http.StatusOK, entries)
}

func (s *apiServer) handleDownload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	filename := strings.TrimPrefix(r.URL.Path, "/download/")
	if filename == "" || strings.ContainsAny(filename, "/\\") || strings.Contains(filename, "..") {
		s.writeError(w, http.StatusNotFound, "File not found")
		return
	}

	path := filepath.Join(s.cfg.Paths.UploadDir, filename)
	file, err := os.Open(path)
	if err != nil {
		s.writeError(w, http.StatusNotFound, "File not found")
		return
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil || info.IsDir() {
		s.writeError(w, http.StatusNotFound, "File not found")
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	http.ServeContent(w, r, filename, info.ModTime(), file)
}

func (s *apiServer) handleInferenceResult(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	ctx := r.Context()

	var req inference.Request
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16))
	if err := decoder.Decode(&req); err != nil {
		// A non-boolean isHuman fails decoding here; truthiness is not
		// accepted.
		s.writeError(w, http.StatusBadRequest, "isHuman must be a boolean and filename must be a string")
		return
	}

	matched, err := s.correlator.Apply(ctx, req)
	if err != nil {
		var verr *inference.ValidationError
		if errors.As(err, &verr) {
			s.writeError(w, http.StatusBadRequest, verr.Error())
			return
		}
		s.logger.ErrorContext(ctx, "verdict merge failed", logging.Error(err))
		s.writeError(w, http.StatusInternalServerError, "Failed to record inference result")
		return
	}

	if matched {
		if notifyErr := s.daemon.notifier.NotifyVerdictRecorded(ctx, strings.TrimSpace(req.Filename), *req.IsHuman); notifyErr != nil {
			s.logger.Warn("verdict notification", logging.Error(notifyErr))
		}
		s.writeJSON(w, http.StatusOK, api.MessageResponse{Message: "Inference result recorded"})
		return
	}
	s.writeJSON(w, http.StatusOK, api.MessageResponse{Message: "Inference result ignored: no matching file in queue"})
}

func (s *apiServer) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	s.writeJSON(w, http.StatusOK, s.daemon.Status(r.Context()))
}

func (s *apiServer) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *apiServer) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		ctx := logging.WithRequestID(r.Context(), id)
		w.Header().Set("X-Request-ID", id)

		started := time.Now()
		next.ServeHTTP(w, r.WithContext(ctx))
		s.logger.DebugContext(ctx, "request served",
			logging.String("method", r.Method),
			logging.String("path", r.URL.Path),
			logging.Duration("elapsed", time.Since(started)))
	})
}

// withCORS allows any origin to upload and poll; the API has no
// authentication and browser clients are served from elsewhere.
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func requestScheme(r *http.Request) string {
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		return proto
	}
	if r.TLS != nil {
		return "https"
	}
	return "http"
}

func writeUpload(path string, src io.Reader) error {
	out, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, src); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

func (s *apiServer) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", logging.Error(err))
	}
}

func (s *apiServer) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, api.MessageResponse{Message: message})
}
