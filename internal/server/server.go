package server

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"image"
	"image/png"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "nibsteg/docs"
	"nibsteg/internal/logging"
	"nibsteg/internal/storage"
	"nibsteg/pkg/config"
	nibstegImage "nibsteg/pkg/image"
)

const (
	RFC3339Millis = "2006-01-02T15:04:05.000Z07:00"

	indexTemplate   = "index.html.tmpl"
	shutdownTimeout = 10 * time.Second
)

//go:embed templates
var templatesFS embed.FS

type Server struct {
	engine  *gin.Engine
	store   *storage.FileStore
	codec   *nibstegImage.Codec
	metrics *codecMetrics

	pngCompression png.CompressionLevel
	config         config.ServerConfig
}

// NewServer godoc
// @title nibSteg API
// @version 1.0
// @description An API to hide an image inside the low nibbles of another image, and to recover it again
// @BasePath /api/v1
func NewServer(sConfig config.ServerConfig) (*Server, error) {
	if err := sConfig.Validate(); err != nil {
		return nil, err
	}

	store, err := storage.NewFileStore(sConfig.UploadDir, sConfig.ResultDir)
	if err != nil {
		return nil, err
	}

	s := &Server{
		store:          store,
		codec:          nibstegImage.NewCodec(sConfig.Codec),
		metrics:        newCodecMetrics(),
		pngCompression: sConfig.PngCompressionLevel(),
		config:         sConfig,
	}
	s.engine = s.buildRouter()
	return s, nil
}

func (s *Server) buildRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{Formatter: logFormatter}), gin.Recovery(), s.limitRequestBody)
	r.SetHTMLTemplate(template.Must(template.ParseFS(templatesFS, "templates/"+indexTemplate)))

	r.GET("/", s.IndexHandler)
	r.POST("/upload", s.MergeFormHandler)
	r.POST("/unmerge", s.UnmergeFormHandler)
	r.GET("/results/:filename", s.ResultHandler)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/metrics", gin.WrapH(s.metrics.handler()))

	v1 := r.Group("/api/v1")
	v1.POST("/merge/image", s.MergeImageHandler)
	v1.POST("/merge/image/fb", gin.WrapF(s.handleImageMergeFlatbufferRequest))
	v1.POST("/unmerge/image", s.UnmergeImageHandler)

	return r
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then gives in-flight requests a grace period to finish
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%s", s.config.Port),
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger := logging.BuildLogger()
	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Starting server", "port", s.config.Port, "result_dir", s.config.ResultDir)
		serveErr <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-serveErr; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func StartServer(ctx context.Context, sConfig config.ServerConfig) error {
	if level, err := sConfig.SlogLevel(); err == nil {
		logging.SetLevel(level)
	}

	s, err := NewServer(sConfig)
	if err != nil {
		return err
	}
	return s.Run(ctx)
}

func (s *Server) limitRequestBody(ctx *gin.Context) {
	if ctx.Request.Body != nil {
		ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, s.config.MaxUploadBytes)
	}
	ctx.Next()
}

// merge and unmerge wrap the codec so every transform is recorded in the metrics
func (s *Server) merge(carrier, payload *image.RGBA) (*image.RGBA, time.Duration, error) {
	start := time.Now()
	merged, err := s.codec.Merge(carrier, payload)
	took := time.Since(start)
	s.metrics.observe(operationMerge, took, err)
	return merged, took, err
}

func (s *Server) unmerge(combined *image.RGBA) (*image.RGBA, time.Duration) {
	start := time.Now()
	unmerged := s.codec.Unmerge(combined)
	took := time.Since(start)
	s.metrics.observe(operationUnmerge, took, nil)
	return unmerged, took
}

type accessLogEntry struct {
	Timestamp      string        `json:"timestamp"`
	StatusCode     int           `json:"status_code"`
	Latency        string        `json:"latency"`
	LatencyRaw     time.Duration `json:"latency_raw"`
	RequestSize    string        `json:"request_size"`
	RequestSizeRaw int           `json:"request_size_raw"`
	ClientIP       string        `json:"client_ip"`
	Method         string        `json:"method"`
	Path           string        `json:"path"`
	Error          string        `json:"error"`
}

func logFormatter(param gin.LogFormatterParams) string {
	if param.Latency > time.Minute {
		param.Latency = param.Latency.Truncate(time.Second)
	}

	var bodySize uint64
	if param.BodySize > 0 {
		bodySize = uint64(param.BodySize)
	}

	entry, err := json.Marshal(accessLogEntry{
		Timestamp:      param.TimeStamp.Format(RFC3339Millis),
		StatusCode:     param.StatusCode,
		Latency:        param.Latency.String(),
		LatencyRaw:     param.Latency,
		RequestSize:    humanize.Bytes(bodySize),
		RequestSizeRaw: param.BodySize,
		ClientIP:       param.ClientIP,
		Method:         param.Method,
		Path:           param.Path,
		Error:          param.ErrorMessage,
	})
	if err != nil {
		return fmt.Sprintf("{\"error\": \"could not format access log: %s\"}\n", err)
	}
	return string(entry) + "\n"
}
