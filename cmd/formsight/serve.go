package main

import (
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ayusman/formsight/internal/app"
	"github.com/ayusman/formsight/internal/server"
)

var (
	serveAddr      string
	serveStaticDir string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the analysis HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		application := app.New(app.Config{
			Store:  st,
			Logger: logger,
		})

		srv := server.New(server.Config{
			Store:     st,
			App:       application,
			StaticDir: serveStaticDir,
		})

		logger.WithFields(logrus.Fields{
			"addr": serveAddr,
		}).Info("starting server")

		httpServer := &http.Server{Addr: serveAddr, Handler: srv}

		errCh := make(chan error, 1)
		go func() {
			errCh <- httpServer.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			return fmt.Errorf("server error: %w", err)
		case <-cmd.Context().Done():
			logger.Info("shutting down")
			return httpServer.Close()
		}
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8089", "Address to listen on")
	serveCmd.Flags().StringVar(&serveStaticDir, "static", "", "Directory of static files to serve at /")
	rootCmd.AddCommand(serveCmd)
}
