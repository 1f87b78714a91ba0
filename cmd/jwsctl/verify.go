/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/trustbloc/jws-core-go/pkg/algorithm"
	"github.com/trustbloc/jws-core-go/pkg/jws"
	"github.com/trustbloc/jws-core-go/pkg/restapi/jwshandler"
	"github.com/trustbloc/jws-core-go/pkg/verifier"
)

type verifyCmdParams struct {
	keyFiles        []string
	input           string
	format          string
	detachedPayload string
	allowUnsecured  bool
}

func newVerifyCmd() *cobra.Command {
	params := verifyCmdParams{}

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify a JWS",
		Long: `Verify every signature of a JWS against the given keys and print one result per signature.

The command fails unless at least one signature verifies.

	$ jwsctl verify --key key.jwk --jws @token.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(&params, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringArrayVarP(&params.keyFiles, "key", "k", nil, "JWK or JWK set file; repeat for multiple keys")
	cmd.Flags().StringVarP(&params.input, "jws", "j", "", "serialized JWS, or @file to read it from a file")
	cmd.Flags().StringVarP(&params.format, "format", "f", "",
		"serialization format the JWS must be in; any format is accepted when empty")
	cmd.Flags().StringVar(&params.detachedPayload, "detached-payload", "",
		"payload of a JWS with a detached payload, or @file")
	cmd.Flags().BoolVar(&params.allowUnsecured, "allow-unsecured", false, "accept unsecured signatures (\"alg\": \"none\")")

	return cmd
}

func runVerify(params *verifyCmdParams, out io.Writer) error {
	input, err := readInput(params.input)
	if err != nil {
		return err
	}

	keys, err := loadKeys(params.keyFiles)
	if err != nil {
		return err
	}

	candidates, kids, err := jwshandler.Candidates(keys, params.allowUnsecured)
	if err != nil {
		return err
	}

	var opts []verifier.Option
	if params.allowUnsecured {
		opts = append(opts, verifier.WithUnsecuredAllowed())
	}

	var verifyOpts []verifier.VerifyOption

	if params.detachedPayload != "" {
		payload, err := readInput(params.detachedPayload)
		if err != nil {
			return err
		}

		verifyOpts = append(verifyOpts, verifier.WithDetachedPayload(payload))
	}

	serialized := strings.TrimSpace(string(input))
	v := verifier.New(algorithm.New(algorithm.WithDefaultAlgorithms()), opts...)

	format := params.format

	var token *jws.JSONWebSignature
	if format == "" {
		token, format, err = v.Load(serialized)
	} else {
		token, err = v.LoadFormat(format, serialized)
	}

	if err != nil {
		return err
	}

	resp := jwshandler.NewVerifyResponse(serialized, format, token, v.Verify(token, candidates, verifyOpts...), kids)

	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintln(out, string(data)); err != nil {
		return err
	}

	if !resp.Verified {
		return errors.New("no signature verified")
	}

	return nil
}
