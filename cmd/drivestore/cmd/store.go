package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/viper"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"github.com/Jumpaku/go-drivestore"
	"github.com/Jumpaku/go-drivestore/backend/gdrive"
	"github.com/Jumpaku/go-drivestore/backend/memory"
	"github.com/Jumpaku/go-drivestore/backend/throttle"
	"github.com/Jumpaku/go-drivestore/codec"
	dserrors "github.com/Jumpaku/go-drivestore/errors"
)

// openBackend creates the configured backend. Tests replace it.
var openBackend = newBackend

func newBackend(ctx context.Context, scheme drivestore.Scheme) (drivestore.Backend, error) {
	switch name := viper.GetString("backend"); name {
	case "memory":
		return memory.New(), nil
	case "drive", "":
		scopes := []string{drive.DriveAppdataScope}
		spaces := []string{"appDataFolder"}
		if scheme == drivestore.SchemeRoot {
			scopes = append(scopes, drive.DriveScope)
			spaces = append(spaces, "drive")
		}
		client, err := google.DefaultClient(ctx, scopes...)
		if err != nil {
			return nil, fmt.Errorf("failed to create Google client: %w", err)
		}
		service, err := drive.NewService(ctx, option.WithHTTPClient(client))
		if err != nil {
			return nil, fmt.Errorf("failed to create Drive service: %w", err)
		}
		return gdrive.New(service, gdrive.WithSpaces(spaces...), gdrive.WithTrash(viper.GetBool("trash"))), nil
	default:
		return nil, fmt.Errorf("unknown backend %q: %w", name, dserrors.ErrConfiguration)
	}
}

func newCodec() (c drivestore.Codec, closeFn func() error, err error) {
	var inner codec.Inner
	switch name := viper.GetString("codec"); name {
	case "json", "":
		inner = &codec.JSONCodec{Indent: "  "}
	case "cbor":
		inner, err = codec.CBOR()
		if err != nil {
			return nil, nil, err
		}
	case "yaml":
		inner = codec.YAML()
	default:
		return nil, nil, fmt.Errorf("unknown codec %q: %w", name, dserrors.ErrConfiguration)
	}
	if !viper.GetBool("compress") {
		return inner, func() error { return nil }, nil
	}
	z, err := codec.Zstd(inner)
	if err != nil {
		return nil, nil, err
	}
	return z, z.Close, nil
}

func parseScheme(s string) (drivestore.Scheme, error) {
	switch scheme := drivestore.Scheme(s); scheme {
	case drivestore.SchemeApp, drivestore.SchemeRoot:
		return scheme, nil
	case "":
		return drivestore.SchemeApp, nil
	default:
		return "", fmt.Errorf("unknown scheme %q: %w", s, dserrors.ErrConfiguration)
	}
}

// openStore builds a store from the configuration. The returned function releases
// resources held by the codec.
func openStore(ctx context.Context) (*drivestore.Store, func() error, error) {
	scheme, err := parseScheme(viper.GetString("scheme"))
	if err != nil {
		return nil, nil, err
	}
	backend, err := openBackend(ctx, scheme)
	if err != nil {
		return nil, nil, err
	}
	if rps := viper.GetFloat64("rate"); rps > 0 {
		backend = throttle.New(backend, throttle.PerSecond(rps, viper.GetInt("burst")))
	}
	c, closeCodec, err := newCodec()
	if err != nil {
		return nil, nil, err
	}
	s := drivestore.New(backend,
		drivestore.WithCodec(c),
		drivestore.WithScheme(scheme),
		drivestore.WithVerbose(viper.GetBool("verbose")),
		drivestore.WithLogger(slog.Default()),
		drivestore.WithFolderCache(!viper.GetBool("no_cache")),
	)
	return s, closeCodec, nil
}

// withStore runs f with a store opened from the configuration and closes it afterwards.
func withStore(ctx context.Context, f func(s *drivestore.Store) error) (err error) {
	s, closeStore, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, closeStore())
	}()
	return f(s)
}
