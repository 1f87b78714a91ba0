/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	logfields "github.com/trustbloc/jws-core-go/internal/log"
	"github.com/trustbloc/jws-core-go/pkg/jwk"
	"github.com/trustbloc/jws-core-go/pkg/log"
	"github.com/trustbloc/jws-core-go/pkg/restapi/common"
	"github.com/trustbloc/jws-core-go/pkg/restapi/jwshandler"
)

var logger = logfields.New(log.ModuleRESTAPI)

const shutdownTimeout = 5 * time.Second

type serveCmdParams struct {
	hostURL        string
	basePath       string
	keyFiles       []string
	allowUnsecured bool
}

func newServeCmd() *cobra.Command {
	params := serveCmdParams{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the REST service",
		Long: `Start an HTTP service exposing POST <base-path>/sign and POST <base-path>/verify.

Signing and verification use the keys loaded with --key. Unsecured JWS are accepted only
when the service is started with --allow-unsecured.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			srv, err := newServer(&params)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return run(ctx, srv)
		},
	}

	cmd.Flags().StringVarP(&params.hostURL, "host-url", "u", "localhost:8080", "address to listen on")
	cmd.Flags().StringVar(&params.basePath, "base-path", "/jws", "base path of the endpoints")
	cmd.Flags().StringArrayVarP(&params.keyFiles, "key", "k", nil, "JWK or JWK set file; repeat for multiple files")
	cmd.Flags().BoolVar(&params.allowUnsecured, "allow-unsecured", false, "allow \"alg\": \"none\"")

	return cmd
}

func newServer(params *serveCmdParams) (*http.Server, error) {
	keys, err := loadKeys(params.keyFiles)
	if err != nil {
		return nil, err
	}

	keySet, err := jwk.NewKeySet(keys...)
	if err != nil {
		return nil, err
	}

	var opts []jwshandler.Option
	if params.allowUnsecured {
		opts = append(opts, jwshandler.WithUnsecuredAllowed())
	}

	router := mux.NewRouter()

	for _, handler := range []common.HTTPHandler{
		jwshandler.NewSignHandler(params.basePath, keySet, opts...),
		jwshandler.NewVerifyHandler(params.basePath, keySet, opts...),
	} {
		logger.Debug("Registering handler", logfields.WithURIString(handler.Path()))

		router.HandleFunc(handler.Path(), handler.Handler()).Methods(handler.Method())
	}

	return &http.Server{
		Addr:              params.hostURL,
		Handler:           router,
		ReadHeaderTimeout: shutdownTimeout,
	}, nil
}

func run(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)

	go func() {
		logger.Infof("Starting JWS REST service on [%s]", srv.Addr)

		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return errors.Wrapf(err, "failed to start JWS REST service on [%s]", srv.Addr)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrapf(err, "failed to stop JWS REST service on [%s]", srv.Addr)
	}

	logger.Infof("Stopped JWS REST service on [%s]", srv.Addr)

	return nil
}
