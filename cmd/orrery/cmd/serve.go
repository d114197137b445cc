package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/seren-space/orrery/pkg/api"
	"github.com/seren-space/orrery/pkg/cache"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start the orrery REST API server. Point queries, segment listings
and integrity checks are exposed under /api/v1, Prometheus metrics under
/metrics.

Examples:
  orrery -k de440s.bsp serve --api-key=mysecretkey --port=8080
  orrery -k de440s.bsp serve --api-key=mysecretkey --cache-dir=./cache`,
	RunE: func(cmd *cobra.Command, args []string) error {
		set, err := kernelSet(cmd)
		if err != nil {
			return err
		}

		port, _ := cmd.Flags().GetInt("port")
		bind, _ := cmd.Flags().GetString("bind")
		apiKey, _ := cmd.Flags().GetString("api-key")
		cacheDir, _ := cmd.Flags().GetString("cache-dir")

		if apiKey == "" {
			return fmt.Errorf("--api-key is required")
		}

		var stateCache *cache.StateCache
		if cacheDir != "" {
			stateCache, err = cache.Open(cacheDir)
			if err != nil {
				return fmt.Errorf("failed to open state cache: %w", err)
			}
			defer stateCache.Close()
		}

		cfg := api.ServerConfig{
			Bind:   bind,
			Port:   port,
			APIKey: apiKey,
		}

		cmd.Printf("listening on %s:%d\n", bind, port)
		return api.StartServer(set, stateCache, cfg)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on")
	serveCmd.Flags().String("bind", "127.0.0.1", "Address to bind")
	serveCmd.Flags().String("api-key", "", "API key for authentication (required)")
	serveCmd.Flags().String("cache-dir", "", "Directory for the pebble state cache (empty disables caching)")
	_ = serveCmd.MarkFlagRequired("api-key")
}
