package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/BriFlake/expert-finder/internal/config"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLoadDefaults(t *testing.T) {
	Convey("Given no file and no environment overrides", t, func() {
		cfg, err := config.Load(context.Background())

		Convey("Then defaults apply", func() {
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":9080")
			So(cfg.SkillsTable, ShouldEqual, "sales.se_reporting.freestyle_summary")
			So(cfg.SearchCacheTTLSeconds, ShouldEqual, 300)
			So(cfg.FallbackLimit, ShouldEqual, 1000)
		})
	})
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("EXPERT_ADDR", ":7000")
	t.Setenv("EXPERT_WAREHOUSE_DSN", "postgres://wh/test")
	t.Setenv("EXPERT_FALLBACK_LIMIT", "250")

	Convey("Given environment overrides", t, func() {
		cfg, err := config.Load(context.Background())

		Convey("Then env values win over defaults", func() {
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":7000")
			So(cfg.WarehouseDSN, ShouldEqual, "postgres://wh/test")
			So(cfg.FallbackLimit, ShouldEqual, 250)
		})
	})
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := "addr: \":7100\"\nwindow_years: 5\n"
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	t.Setenv("EXPERT_CONFIG", path)

	Convey("Given a YAML config file", t, func() {
		cfg, err := config.Load(context.Background())

		Convey("Then file values win over defaults", func() {
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":7100")
			So(cfg.WindowYears, ShouldEqual, 5)
		})
	})
}

func TestLoadFileWithEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("addr: \":7100\"\n"), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	t.Setenv("EXPERT_CONFIG", path)
	t.Setenv("EXPERT_ADDR", ":7200")

	Convey("Given both a file and an env override", t, func() {
		cfg, err := config.Load(context.Background())

		Convey("Then env wins", func() {
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":7200")
		})
	})
}

func TestLoadValidation(t *testing.T) {
	t.Setenv("EXPERT_ADDR", "")

	Convey("Given an explicitly empty addr", t, func() {
		_, err := config.Load(context.Background())

		Convey("Then validation rejects the merged config", func() {
			So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
		})
	})
}
