/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"io/ioutil"
	"os"
	"path"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/trustbloc/jws-core-go/pkg/jwk"
	"github.com/trustbloc/jws-core-go/pkg/log"
)

const logSpecFlag = "log-spec"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          path.Base(os.Args[0]),
		Short:        "JSON Web Signature tool",
		Long:         "Signs and verifies JSON Web Signatures (RFC 7515) in compact and JSON serializations.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			spec, err := cmd.Flags().GetString(logSpecFlag)
			if err != nil {
				return err
			}

			if spec == "" {
				return nil
			}

			return log.SetSpec(spec)
		},
	}

	root.PersistentFlags().String(logSpecFlag, "",
		"Log levels, e.g. 'jws-core-verifier=DEBUG:INFO' sets DEBUG for the verifier and INFO for everything else")

	root.AddCommand(newSignCmd(), newVerifyCmd(), newServeCmd())

	return root
}

// loadKeys reads JWK or JWK set files.
func loadKeys(files []string) ([]*jwk.Key, error) {
	var keys []*jwk.Key

	for _, f := range files {
		data, err := ioutil.ReadFile(f) //nolint:gosec
		if err != nil {
			return nil, errors.Wrapf(err, "read key file '%s'", f)
		}

		fileKeys, err := jwk.ParseSet(data)
		if err != nil {
			return nil, errors.WithMessagef(err, "key file '%s'", f)
		}

		keys = append(keys, fileKeys...)
	}

	return keys, nil
}

// readInput returns the value of a flag, or the content of a file when the value starts with '@'.
func readInput(value string) ([]byte, error) {
	if len(value) > 0 && value[0] == '@' {
		data, err := ioutil.ReadFile(value[1:])
		if err != nil {
			return nil, errors.Wrapf(err, "read '%s'", value[1:])
		}

		return data, nil
	}

	return []byte(value), nil
}
