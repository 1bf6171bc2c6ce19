// File: cmd/profilectl/root.go
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"ecarry-photography/internal/api"
	"ecarry-photography/internal/client"
	"ecarry-photography/internal/logging"
	"ecarry-photography/internal/profile"
	"ecarry-photography/internal/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const (
	defaultBaseURL  = "http://localhost:8080"
	defaultTokenTTL = time.Hour
)

type rootOptions struct {
	baseURL string
	token   string
	timeout time.Duration
	verbose bool
}

func (o *rootOptions) client() *client.Client {
	return client.New(o.baseURL, o.token, o.timeout)
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "profilectl",
		Short:         "Manage the ECarry Photography dashboard profile",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if err := godotenv.Load(); err != nil {
				log.Debug().Err(err).Msg("could not load .env file")
			}
			level := "warn"
			if opts.verbose {
				level = "debug"
			}
			logging.Setup(level, true)
			if opts.baseURL == "" {
				opts.baseURL = envOr("PROFILE_API_URL", defaultBaseURL)
			}
			if opts.token == "" {
				opts.token = os.Getenv("PROFILE_TOKEN")
			}
		},
	}

	cmd.PersistentFlags().StringVar(&opts.baseURL, "base-url", "", "API base URL (default $PROFILE_API_URL or "+defaultBaseURL+")")
	cmd.PersistentFlags().StringVar(&opts.token, "token", "", "Bearer token (default $PROFILE_TOKEN)")
	cmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", client.DefaultTimeout, "HTTP request timeout")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(
		newGetCmd(opts),
		newUpdateCmd(opts),
		newTokenCmd(),
	)
	return cmd
}

func newGetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Show the current profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := opts.client().GetProfile(cmd.Context())
			if err != nil {
				return fmt.Errorf("get profile: %w", err)
			}
			return printProfile(cmd.OutOrStdout(), p)
		},
	}
}

func newUpdateCmd(opts *rootOptions) *cobra.Command {
	var name, imageURL string
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update the profile name and avatar",
		Example: `  profilectl update --name ECarry
  profilectl update --name ECarry --image-url https://utfs.io/f/avatar.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			c := opts.client()

			// 以目前資料作為表單預設值；讀不到時只有明確給了 --image-url 才能繼續，
			// 否則會以空字串清掉原本的頭像
			current, err := c.GetProfile(ctx)
			if err != nil {
				if !cmd.Flags().Changed("image-url") {
					return fmt.Errorf("load current profile (pass --image-url to update without it): %w", err)
				}
				log.Warn().Err(err).Msg("could not load current profile")
			}

			form := profile.NewForm(current)
			form.SetName(name)
			if cmd.Flags().Changed("image-url") {
				form.SetImageURL(imageURL)
			}

			refresh := profile.RefreshFunc(func(ctx context.Context) error {
				p, err := c.GetProfile(ctx)
				if err != nil {
					return err
				}
				return printProfile(out, p)
			})
			sub := profile.NewSubmitter(c, profile.WriterNotifier{W: out}, refresh)

			if _, err := form.Submit(ctx, sub); err != nil {
				var violations profile.Violations
				if errors.As(err, &violations) {
					for _, v := range violations {
						fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", v.Field, v.Message)
					}
				}
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Display name (2-30 characters)")
	cmd.Flags().StringVar(&imageURL, "image-url", "", "Avatar URL")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newTokenCmd() *cobra.Command {
	var (
		sub, name, email, picture string
		ttl                       time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a development access token signed with $JWT_SECRET",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tok, err := service.IssueAccessToken(os.Getenv("JWT_SECRET"), service.CustomClaims{
				Name:             name,
				Email:            email,
				ImageURL:         picture,
				RegisteredClaims: jwt.RegisteredClaims{Subject: sub},
			}, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	cmd.Flags().StringVar(&sub, "sub", "", "User ID (token subject)")
	cmd.Flags().StringVar(&name, "name", "", "Name claim")
	cmd.Flags().StringVar(&email, "email", "", "Email claim")
	cmd.Flags().StringVar(&picture, "picture", "", "Avatar URL claim")
	cmd.Flags().DurationVar(&ttl, "ttl", defaultTokenTTL, "Token lifetime")
	_ = cmd.MarkFlagRequired("sub")
	return cmd
}

func printProfile(w io.Writer, p *api.ProfileResponse) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(p)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
