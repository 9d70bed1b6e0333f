package cli

import (
	"github.com/spf13/cobra"

	"nibsteg/internal/server"
	"nibsteg/pkg/config"
)

type serveOpts struct {
	configFile     string
	port           string
	uploadDir      string
	resultDir      string
	maxUploadBytes int64
	pngCompression string
	logLevel       string
	workers        int
}

func ServeAppCommand() *cobra.Command {
	return newServeCommand(&serveOpts{})
}

func newServeCommand(opts *serveOpts) *cobra.Command {
	command := &cobra.Command{
		Use:     "serve",
		Short:   "Serve a web page and an API to merge and unmerge images over the web",
		Example: "nibsteg serve --port 8888 --config nibsteg.toml",
		RunE: func(cmd *cobra.Command, args []string) error {
			sConfig, err := opts.toServerConfig(cmd)
			if err != nil {
				return err
			}
			return server.StartServer(cmd.Context(), sConfig)
		},
	}

	command.Flags().StringVar(&opts.configFile, "config", "", "TOML file with the server configuration, flags override its values")
	command.Flags().StringVar(&opts.port, "port", config.DefaultPort, "Port on which to start the server")
	command.Flags().StringVar(&opts.uploadDir, "upload-dir", config.DefaultUploadDir, "Directory where uploaded images are stored")
	command.Flags().StringVar(&opts.resultDir, "result-dir", config.DefaultResultDir, "Directory where merged and unmerged images are stored and served from")
	command.Flags().Int64Var(&opts.maxUploadBytes, "max-upload-bytes", config.DefaultMaxUploadBytes, "Maximum size of a request body")
	command.Flags().StringVar(&opts.pngCompression, "png-compression", "best", "Compression for output png. Options are default, none, fast, best")
	command.Flags().StringVar(&opts.logLevel, "log-level", "debug", "Minimum level of the JSON logs. Options are debug, info, warn, error")
	command.Flags().IntVar(&opts.workers, "workers", 0, "Goroutines used to transform rows of pixels per request. Defaults to the number of CPUs")

	return command
}

// toServerConfig starts from the defaults or the config file, and then applies only the flags set explicitly
func (o *serveOpts) toServerConfig(cmd *cobra.Command) (config.ServerConfig, error) {
	sConfig := config.DefaultServerConfig()
	if o.configFile != "" {
		var err error
		if sConfig, err = config.LoadServerConfig(o.configFile); err != nil {
			return config.ServerConfig{}, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("port") {
		sConfig.Port = o.port
	}
	if flags.Changed("upload-dir") {
		sConfig.UploadDir = o.uploadDir
	}
	if flags.Changed("result-dir") {
		sConfig.ResultDir = o.resultDir
	}
	if flags.Changed("max-upload-bytes") {
		sConfig.MaxUploadBytes = o.maxUploadBytes
	}
	if flags.Changed("png-compression") {
		sConfig.PngCompression = o.pngCompression
	}
	if flags.Changed("log-level") {
		sConfig.LogLevel = o.logLevel
	}
	if flags.Changed("workers") {
		sConfig.Codec.Workers = o.workers
		sConfig.Codec.PopulateUnsetConfigVars()
	}

	return sConfig, sConfig.Validate()
}
