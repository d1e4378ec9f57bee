// Command sample runs a small users API built on the router and prints its
// documentation.
//
// Run the server:
//
//	go run ./cmd/sample serve --addr :8080
//
// Print the documentation:
//
//	go run ./cmd/sample describe                        # JSON to stdout
//	go run ./cmd/sample describe --format yaml -o api.yaml
//	go run ./cmd/sample describe --api-version /v2
//
// Then explore:
//
//	GET    http://localhost:8080/v1/health
//	GET    http://localhost:8080/v1/users?role=admin
//	POST   http://localhost:8080/v1/users
//	GET    http://localhost:8080/v1/users/{id}
//	PUT    http://localhost:8080/v1/users/{id}
//	DELETE http://localhost:8080/v1/users/{id}
//	GET    http://localhost:8080/v2/users/list;role=admin,member?limit=10
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bjaus/apidoc"
	"github.com/bjaus/apidoc/router"
)

const projectVersion = "1.0.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type rootOptions struct {
	apiVersions []string
	logLevel    string
}

func (o *rootOptions) logger(w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(o.logLevel)); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), nil
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "sample",
		Short:         "Users API with built-in endpoint documentation",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringSliceVar(&opts.apiVersions, "api-version", []string{"/v1", "/v2"}, "API version tags to document")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	root.AddCommand(newServeCmd(opts))
	root.AddCommand(newDescribeCmd(opts))
	return root
}

func newServeCmd(opts *rootOptions) *cobra.Command {
	var (
		addr    string
		rate    float64
		burst   int
		maxBody int64
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the users API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := opts.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			r := newRouter(newUserStore(), logger)
			r.Use(
				router.RequestID(""),
				router.Recovery(logger),
				router.Logger(logger),
				router.BodyLimit(maxBody),
				router.RateLimit(router.RateLimitConfig{Rate: rate, Burst: burst}),
			)

			// Routes that cannot be documented are a startup error.
			if _, err := apidoc.New(r.Version(), r, opts.apiVersions, apidoc.WithLogger(logger)); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			if err := r.ListenAndServe(ctx, addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			logger.Info("server stopped")
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "Listen address")
	cmd.Flags().Float64Var(&rate, "rate", 50, "Requests per second allowed per client")
	cmd.Flags().IntVar(&burst, "burst", 100, "Request burst allowed per client")
	cmd.Flags().Int64Var(&maxBody, "max-body", 1<<20, "Maximum request body size in bytes")
	return cmd
}

func newDescribeCmd(opts *rootOptions) *cobra.Command {
	var (
		format string
		out    string
	)

	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Print the API documentation",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := opts.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			r := newRouter(newUserStore(), logger)
			in, err := apidoc.New(r.Version(), r, opts.apiVersions, apidoc.WithLogger(logger))
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if out != "" {
				f, err := os.Create(out) //nolint:gosec // user-provided CLI flag
				if err != nil {
					return err
				}
				defer func() {
					if err := f.Close(); err != nil {
						logger.Error("failed to close output file", "err", err)
					}
				}()
				w = f
			}

			return writeAPI(w, in.KnownAPI(), format)
		},
	}

	cmd.Flags().StringVar(&format, "format", "json", "Output format (json, yaml)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default stdout)")
	return cmd
}

func writeAPI(w io.Writer, api apidoc.APIVersions, format string) error {
	switch strings.ToLower(format) {
	case "json":
		return api.WriteJSON(w)
	case "yaml", "yml":
		return api.WriteYAML(w)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
