package fxsource

import (
	"context"
	"fmt"
	"log/slog"

	filesource "github.com/0xalexb/hjarta-filesource"

	"go.uber.org/fx"
)

// Required creates an Fx module supplying a *filesource.Required[T] named name.
// The source is also supplied as a filesource.ValueSource[T] under the same name.
// Unless WithLazyLoad is given, the file is read on start and a missing or
// unparsable file fails the start.
//
// A *slog.Logger in the container, if any, is used for load and refresh events.
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func Required[T any](name, path string, parse filesource.ParseFunc[T], opts ...Option) fx.Option {
	cfg, err := newConfig(name, path, parse == nil, opts)
	if err != nil {
		return fx.Error(err)
	}

	tag := nameTag(name)

	moduleOpts := []fx.Option{
		fx.Provide(
			fx.Annotate(
				func(logger *slog.Logger) *filesource.Required[T] {
					src := filesource.NewRequired(path, parse).
						SetAutoTrim(!cfg.DisableAutoTrim).
						SetLogger(logger)
					if cfg.RefreshInterval > 0 {
						src.SetRefreshInterval(cfg.RefreshInterval)
					}

					return src
				},
				fx.ParamTags(`optional:"true"`),
				fx.ResultTags(tag),
				fx.As(fx.Self()),
				fx.As(new(filesource.ValueSource[T])),
			),
		),
	}

	if !cfg.Lazy {
		moduleOpts = append(moduleOpts, fx.Invoke(
			fx.Annotate(
				func(lifecycle fx.Lifecycle, src *filesource.Required[T], logger *slog.Logger) {
					lifecycle.Append(fx.Hook{
						OnStart: func(context.Context) error {
							return load(logger, name, src.Path(), src.RefreshOnTimeout)
						},
					})
				},
				fx.ParamTags("", tag, `optional:"true"`),
			),
		))
	}

	return fx.Module(name, moduleOpts...)
}

// Optional creates an Fx module supplying a *filesource.Optional[T] named name.
// The source is also supplied as a filesource.OptionalValueSource[T] under the
// same name. Unless WithLazyLoad is given, the file is read on start; a missing
// file is fine, but a read or parse failure fails the start.
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func Optional[T any](name, path string, parse filesource.ParseFunc[T], opts ...Option) fx.Option {
	cfg, err := newConfig(name, path, parse == nil, opts)
	if err != nil {
		return fx.Error(err)
	}

	tag := nameTag(name)

	moduleOpts := []fx.Option{
		fx.Provide(
			fx.Annotate(
				func(logger *slog.Logger) *filesource.Optional[T] {
					src := filesource.NewOptional(path, parse).
						SetAutoTrim(!cfg.DisableAutoTrim).
						SetLogger(logger)
					if cfg.RefreshInterval > 0 {
						src.SetRefreshInterval(cfg.RefreshInterval)
					}

					return src
				},
				fx.ParamTags(`optional:"true"`),
				fx.ResultTags(tag),
				fx.As(fx.Self()),
				fx.As(new(filesource.OptionalValueSource[T])),
			),
		),
	}

	if !cfg.Lazy {
		moduleOpts = append(moduleOpts, fx.Invoke(
			fx.Annotate(
				func(lifecycle fx.Lifecycle, src *filesource.Optional[T], logger *slog.Logger) {
					lifecycle.Append(fx.Hook{
						OnStart: func(context.Context) error {
							return load(logger, name, src.Path(), src.RefreshOnTimeout)
						},
					})
				},
				fx.ParamTags("", tag, `optional:"true"`),
			),
		))
	}

	return fx.Module(name, moduleOpts...)
}

func newConfig(name, path string, nilParse bool, opts []Option) (Config, error) {
	var cfg Config

	if name == "" {
		return cfg, ErrEmptyName
	}

	if path == "" {
		return cfg, ErrEmptyPath
	}

	if nilParse {
		return cfg, ErrNilParse
	}

	for _, apply := range opts {
		apply(&cfg)
	}

	err := cfg.Validate()
	if err != nil {
		return cfg, err
	}

	return cfg, nil
}

func load(logger *slog.Logger, name, path string, refresh func() error) error {
	if logger == nil {
		logger = slog.Default()
	}

	err := refresh()
	if err != nil {
		logger.Error("failed to load file source", "name", name, "path", path, "error", err)

		return fmt.Errorf("loading file source %q: %w", name, err)
	}

	logger.Info("file source loaded", "name", name, "path", path)

	return nil
}

func nameTag(name string) string {
	return fmt.Sprintf(`name:"%s"`, name)
}
