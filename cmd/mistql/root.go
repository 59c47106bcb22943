/*
 * MistQL
 *
 * Copyright 2024 The MistQL-Go Authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"

	"github.com/spf13/cobra"

	"github.com/krotik/mistql/builtins"
	"github.com/krotik/mistql/mistql"
	"github.com/krotik/mistql/value"
	"github.com/krotik/mistql/version"
)

/*
run builds and executes the root command against args, with stdin/
stdout/stderr wired to the given streams rather than the process's own
- the shape that makes main() a one-liner and the command itself
testable without touching os.Stdin/os.Stdout. It returns the process
exit code: 0 on success, 1 on any parse, evaluation or I/O error.
*/
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "mistql <query>",
		Short:         "Run a MistQL query against a JSON document",
		Version:       version.VERSION + "-" + version.REV,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, posArgs []string) error {
			return execute(opts, posArgs[0], stdin, cmd.OutOrStdout())
		},
	}

	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	cmd.Flags().StringVarP(&opts.command, "command", "c", "", "read the input JSON document from this literal string instead of stdin")
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "read the input JSON document from this file instead of stdin")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the result to this file instead of stdout")
	cmd.Flags().BoolVarP(&opts.pretty, "pretty", "p", false, "indent the JSON result")
	cmd.Flags().BoolVarP(&opts.debug, "debug", "d", false, "print the runtime value's Go representation instead of JSON")

	builtins.SetLogWriter(stderr)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(stderr, "mistql: "+err.Error())
		return 1
	}
	return 0
}

type options struct {
	command string
	file    string
	output  string
	pretty  bool
	debug   bool
}

func execute(opts *options, query string, stdin io.Reader, stdout io.Writer) error {
	root, err := readRoot(opts, stdin)
	if err != nil {
		return err
	}

	result, err := mistql.Query("query", query, root)
	if err != nil {
		return err
	}

	var out []byte
	if opts.debug {
		out = []byte(result.GoString())
	} else {
		out, err = encodeResult(result, opts.pretty)
		if err != nil {
			return err
		}
	}
	return writeOutput(opts, stdout, append(out, '\n'))
}

/*
readRoot resolves the input JSON document in the reference CLI's
priority order: -c literal, else -f file, else stdin.
*/
func readRoot(opts *options, stdin io.Reader) (value.Value, error) {
	var raw []byte
	var err error

	switch {
	case opts.command != "":
		raw = []byte(opts.command)
	case opts.file != "":
		raw, err = ioutil.ReadFile(opts.file)
	default:
		raw, err = ioutil.ReadAll(stdin)
	}
	if err != nil {
		return value.Null, err
	}

	var decoded interface{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return value.Null, fmt.Errorf("invalid input JSON: %w", err)
	}
	return value.FromJSON(decoded), nil
}

func encodeResult(v value.Value, pretty bool) ([]byte, error) {
	j, err := v.ToJSON()
	if err != nil {
		return nil, err
	}
	if pretty {
		return json.MarshalIndent(j, "", "  ")
	}
	return json.Marshal(j)
}

func writeOutput(opts *options, stdout io.Writer, data []byte) error {
	if opts.output != "" {
		return ioutil.WriteFile(opts.output, data, 0644)
	}
	_, err := stdout.Write(data)
	return err
}
