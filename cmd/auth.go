package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/desertthunder/tubesync/internal/services"
	"github.com/desertthunder/tubesync/internal/shared"
	"github.com/urfave/cli/v3"
)

// AuthLogin runs the browser authorization flow and stores the token.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	if err := r.config.Validate(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, cmd.Duration("timeout"))
	defer cancel()

	r.writePlain("Opening the browser to sign in with Google...\n")
	sess, err := r.authorizer().Authorize(ctx)
	if err != nil {
		return err
	}

	gw, err := services.NewYouTubeService(ctx, sess.Client(ctx))
	if err != nil {
		return err
	}

	channel, err := gw.Profile(ctx)
	if err != nil {
		r.logger.Warn("signed in, but the channel could not be loaded", "error", err)
		return r.writePlain("✓ Authentication successful\n")
	}
	return r.writePlain("✓ Signed in as %s (%s)\n", channel.Title, channel.ID)
}

// AuthLogout revokes and removes the stored token.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	if err := r.authorizer().Logout(ctx, r.httpClient); err != nil {
		return fmt.Errorf("failed to sign out: %w", err)
	}
	return r.writePlain("✓ Signed out\n")
}

// AuthStatus reports the channel of the stored authorization.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	gw, err := r.session(ctx)
	if errors.Is(err, shared.ErrNotAuthenticated) {
		return r.writePlain("✗ Not signed in\n")
	}
	if err != nil {
		return err
	}

	channel, err := gw.Profile(ctx)
	if err != nil {
		return err
	}

	r.writePlain("✓ Signed in\n")
	r.writePlain("Channel: %s\n", channel.Title)
	r.writePlain("ID: %s\n", channel.ID)
	return nil
}
