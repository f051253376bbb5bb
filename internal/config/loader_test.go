package config_test

import (
	"context"
	"os"
	"testing"

	"internmatch/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.TopKDefault, convey.ShouldEqual, 3)
				convey.So(cfg.FallbackPolicy, convey.ShouldEqual, config.FallbackPermissive)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("INTERNMATCH_ADDR", ":8080")
			_ = os.Setenv("INTERNMATCH_TOP_K_DEFAULT", "5")
			_ = os.Setenv("INTERNMATCH_DOMAIN_BOOST", "3.0")
			_ = os.Setenv("INTERNMATCH_FALLBACK_POLICY", "strict")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.TopKDefault, convey.ShouldEqual, 5)
				convey.So(cfg.DomainBoost, convey.ShouldEqual, 3.0)
				convey.So(cfg.FallbackPolicy, convey.ShouldEqual, config.FallbackStrict)
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			yamlContent := `
addr: ":9090"
top_k_default: 10
max_top_k: 100
fallback_slice_size: 30
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("INTERNMATCH_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.TopKDefault, convey.ShouldEqual, 10)
				convey.So(cfg.MaxTopK, convey.ShouldEqual, 100)
				convey.So(cfg.FallbackSliceSize, convey.ShouldEqual, 30)
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			yamlContent := `
addr: ":9090"
top_k_default: 10
max_top_k: 100
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("INTERNMATCH_CONFIG", tmpFile)
			_ = os.Setenv("INTERNMATCH_ADDR", ":8080") // This should override the file
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")   // Overridden by env
				convey.So(cfg.TopKDefault, convey.ShouldEqual, 10) // From file
				convey.So(cfg.MaxTopK, convey.ShouldEqual, 100)    // From file
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			invalidYaml := `invalid: yaml: content: [`
			tmpFile := createTempConfigFile(invalidYaml)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("INTERNMATCH_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with empty addr", func() {
			_ = os.Setenv("INTERNMATCH_ADDR", "")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with an unknown fallback policy", func() {
			_ = os.Setenv("INTERNMATCH_FALLBACK_POLICY", "lenient")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldContainSubstring, "fallback_policy")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with an out-of-range regularization", func() {
			_ = os.Setenv("INTERNMATCH_REGULARIZATION", "1.5")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldContainSubstring, "regularization")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"INTERNMATCH_CONFIG",
		"INTERNMATCH_ADDR",
		"INTERNMATCH_TOP_K_DEFAULT",
		"INTERNMATCH_MAX_TOP_K",
		"INTERNMATCH_DOMAIN_BOOST",
		"INTERNMATCH_DOMAIN_PENALTY",
		"INTERNMATCH_REGULARIZATION",
		"INTERNMATCH_FALLBACK_POLICY",
		"INTERNMATCH_FALLBACK_SLICE_SIZE",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "internmatch-config-*.yaml")
	if err != nil {
		panic(err)
	}

	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}

	if err := tmpFile.Close(); err != nil {
		panic(err)
	}

	return tmpFile.Name()
}
