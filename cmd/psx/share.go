package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/psxcreative/engine/internal/share"
)

func newShareCmd(a *app) *cobra.Command {
	var secret string

	cmd := &cobra.Command{
		Use:   "share",
		Short: "Encode and decode share tokens",
	}
	cmd.PersistentFlags().StringVar(&secret, "secret", os.Getenv("SHARE_SECRET"), "share signing secret")

	codec := func() (*share.Codec, error) {
		if secret == "" {
			return nil, errors.New("a share secret is required (--secret or SHARE_SECRET)")
		}
		return share.NewCodec([]byte(secret)), nil
	}

	decode := &cobra.Command{
		Use:   "decode <token>",
		Short: "Verify a share token and print its quote",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := codec()
			if err != nil {
				return err
			}
			st, err := c.Decode(strings.TrimSpace(args[0]))
			if err != nil {
				return err
			}
			e, err := a.engine(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), map[string]any{
				"state": st,
				"quote": e.Quote(st.Selection()),
			})
		},
	}

	encode := &cobra.Command{
		Use:   "encode",
		Short: "Sign configurator state read as JSON from stdin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := codec()
			if err != nil {
				return err
			}
			var st share.State
			if err := json.NewDecoder(cmd.InOrStdin()).Decode(&st); err != nil {
				return fmt.Errorf("read state: %w", err)
			}
			token, err := c.Encode(st)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.AddCommand(decode, encode)
	return cmd
}
