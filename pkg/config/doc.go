// Package config loads typed configuration from the environment and from
// YAML files.
//
// Environment loading wraps github.com/joho/godotenv and
// github.com/caarlos0/env/v11. Each configuration type is parsed once and
// cached for the lifetime of the process:
//
//	type ToastConfig struct {
//		Duration time.Duration `env:"TOAST_DURATION" envDefault:"5s"`
//	}
//
//	var cfg ToastConfig
//	if err := config.Load(&cfg); err != nil {
//		log.Fatal(err)
//	}
//
// Extra .env files can be read with LoadEnv before the first Load. In tests,
// ResetCache and ForceReload discard cached values.
//
// File loading decodes YAML with gopkg.in/yaml.v3 on top of whatever the
// target already holds, so defaults set beforehand survive keys the file
// omits:
//
//	cfg := toast.DefaultConfig()
//	if err := config.LoadFile("toast.yaml", &cfg); err != nil {
//		log.Fatal(err)
//	}
//
// All errors wrap one of the package sentinels and can be matched with
// errors.Is.
package config
