/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/trustbloc/jws-core-go/pkg/algorithm"
	"github.com/trustbloc/jws-core-go/pkg/builder"
	"github.com/trustbloc/jws-core-go/pkg/jws"
	"github.com/trustbloc/jws-core-go/pkg/serializer"
)

type signCmdParams struct {
	keyFiles       []string
	algorithm      string
	payload        string
	format         string
	detached       bool
	unencoded      bool
	allowUnsecured bool
}

func newSignCmd() *cobra.Command {
	params := signCmdParams{}

	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Sign a payload",
		Long: `Sign a payload with one signature per key and print the serialized JWS.

Keys are read from JWK or JWK set files. The algorithm of a signature is the "alg" of its
key unless --alg is given. The compact serialization carries exactly one signature; use
--format jws_json_general for more.

	$ jwsctl sign --key key.jwk --payload @message.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := runSign(&params)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)

			return err
		},
	}

	cmd.Flags().StringArrayVarP(&params.keyFiles, "key", "k", nil, "JWK or JWK set file; repeat for multiple signatures")
	cmd.Flags().StringVarP(&params.algorithm, "alg", "a", "", "signature algorithm overriding the key's \"alg\"")
	cmd.Flags().StringVarP(&params.payload, "payload", "p", "", "payload, or @file to read it from a file")
	cmd.Flags().StringVarP(&params.format, "format", "f", serializer.CompactName, "serialization format")
	cmd.Flags().BoolVar(&params.detached, "detached", false, "leave the payload out of the serialization")
	cmd.Flags().BoolVar(&params.unencoded, "unencoded", false, "sign the raw payload (\"b64\": false)")
	cmd.Flags().BoolVar(&params.allowUnsecured, "allow-unsecured", false,
		"produce an unsecured JWS (\"alg\": \"none\") when no key is given")

	return cmd
}

func runSign(params *signCmdParams) (string, error) {
	payload, err := readInput(params.payload)
	if err != nil {
		return "", err
	}

	keys, err := loadKeys(params.keyFiles)
	if err != nil {
		return "", err
	}

	var opts []builder.Option
	if params.allowUnsecured {
		opts = append(opts, builder.WithUnsecuredAllowed())
	}

	b := builder.New(algorithm.New(algorithm.WithDefaultAlgorithms()), opts...).WithPayload(payload, params.detached)

	var protected jws.Headers
	if params.unencoded {
		protected = jws.Headers{jws.HeaderB64Payload: false, jws.HeaderCritical: []string{jws.HeaderB64Payload}}
	}

	if len(keys) == 0 {
		if !params.allowUnsecured {
			return "", errors.New("at least one --key is required")
		}

		b = b.AddSignature(jws.None, nil, protected, nil)
	}

	for _, key := range keys {
		alg := params.algorithm
		if alg == "" {
			alg = key.Algorithm
		}

		if alg == "" {
			return "", errors.Errorf("key '%s' has no \"alg\"; use --alg", key.KeyID)
		}

		h := protected.Clone()
		h[jws.HeaderKeyID] = key.KeyID

		b = b.AddSignature(alg, key.Key, h, nil)
	}

	token, err := b.Build()
	if err != nil {
		return "", err
	}

	return serializer.NewDefaultManager().Serialize(params.format, token)
}
