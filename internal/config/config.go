// Package config handles configuration settings for the application.
package config

import (
	"flag"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// Config holds the configuration settings for the server binary. Fields mirror
// the CLI flags directly; environment variables with a GONE_ prefix override
// the defaults, and CLI flags in turn override the environment.
type Config struct {
	Port      uint16 `koanf:"port" validate:"required"`
	Threads   uint8  `koanf:"threads"`
	CORS      string `koanf:"cors"`
	StorePath string `koanf:"store_path" validate:"omitempty,custom_path"`
	WebPath   string `koanf:"web_path" validate:"omitempty,custom_path"`
}

// DefaultAppConfig provides the default app configuration values.
var DefaultAppConfig = Config{
	Port:      80,
	Threads:   0, // 0 means auto (GOMAXPROCS)
	CORS:      "",
	StorePath: "",
	WebPath:   "",
}

// defaultLoader loads default configuration values into the provided Koanf
// instance using the structs provider and the DefaultAppConfig struct.
var defaultLoader = func(k *koanf.Koanf) error {
	return k.Load(structs.Provider(DefaultAppConfig, "koanf"), nil)
}

// envLoader loads environment variables with the prefix "GONE_", lowercasing
// keys and stripping the prefix so they line up with the `koanf` struct tags.
var envLoader = func(k *koanf.Koanf) error {
	return k.Load(env.Provider(".", env.Opt{Prefix: "GONE_", TransformFunc: func(key, value string) (string, any) {
		key = strings.ToLower(strings.TrimPrefix(key, "GONE_"))
		return key, strings.TrimSpace(value)
	}}), nil)
}

// validDirNotExists checks that the provided value looks like a directory
// path, without requiring it to exist yet. It disallows ".", the root
// directory, and paths that traverse upwards (contain "..").
func validDirNotExists(fl validator.FieldLevel) bool {
	raw := fl.Field().String()
	if raw == "" {
		return true // omitempty already skips truly empty fields; guard anyway
	}
	cleaned := filepath.Clean(raw)
	if cleaned == "." || cleaned == string(os.PathSeparator) {
		return false
	}
	for _, part := range strings.Split(cleaned, string(os.PathSeparator)) {
		if part == ".." {
			return false
		}
	}
	return true
}

// registerValidators registers custom validation functions with the provided
// validator instance.
var registerValidators = func(v *validator.Validate) error {
	return v.RegisterValidation("custom_path", validDirNotExists)
}

// ParseFlags parses the CLI surface described in the specification and
// returns the values of the flags that were given (empty strings omitted) as
// a flat map suitable for koanf's confmap provider.
func ParseFlags(fs *flag.FlagSet, args []string) (map[string]any, error) {
	port := fs.Uint("port", uint(DefaultAppConfig.Port), "TCP port to listen on")
	threads := fs.Uint("threads", uint(DefaultAppConfig.Threads), "worker thread count (0 = auto)")
	cors := fs.String("cors", DefaultAppConfig.CORS, "Access-Control-Allow-Origin value; enables CORS and OPTIONS preflight when set")
	storePath := fs.String("store-path", DefaultAppConfig.StorePath, "on-disk secret store directory; omit for in-memory store")
	webPath := fs.String("web-path", DefaultAppConfig.WebPath, "static web asset directory; must contain index.html")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	given := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { given[f.Name] = true })

	out := map[string]any{}
	if given["port"] {
		out["port"] = strconv.FormatUint(uint64(*port), 10)
	}
	if given["threads"] {
		out["threads"] = strconv.FormatUint(uint64(*threads), 10)
	}
	if *cors != "" {
		out["cors"] = *cors
	}
	if *storePath != "" {
		out["store_path"] = *storePath
	}
	if *webPath != "" {
		out["web_path"] = *webPath
	}
	return out, nil
}

// Load loads the configuration by layering defaults, environment variables,
// and (if args is non-nil) parsed CLI flags, in that order of precedence.
// It validates the final configuration and returns a Config or an error.
func Load(args []string) (*Config, error) {
	k := koanf.New(".")

	if err := defaultLoader(k); err != nil {
		return nil, err
	}
	if err := envLoader(k); err != nil {
		return nil, err
	}
	if args != nil {
		fs := flag.NewFlagSet("gone", flag.ContinueOnError)
		flagValues, err := ParseFlags(fs, args)
		if err != nil {
			return nil, err
		}
		if err := k.Load(confmap.Provider(flagValues, "."), nil); err != nil {
			return nil, err
		}
	}

	var cfg Config
	err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			TagName:          "koanf",
			WeaklyTypedInput: true,
		},
	})
	if err != nil {
		return nil, err
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := registerValidators(validate); err != nil {
		return nil, err
	}
	if err := validate.Struct(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
