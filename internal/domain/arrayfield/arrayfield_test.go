package arrayfield_test

import (
	"testing"

	"github.com/BriFlake/expert-finder/internal/domain/arrayfield"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParse(t *testing.T) {
	Convey("Given raw warehouse array text", t, func() {
		Convey("When parsing a double-quoted array", func() {
			got := arrayfield.Parse(`["AWS","Databricks","Snowflake"]`)

			Convey("Then each quoted element is extracted in order", func() {
				So(got, ShouldResemble, []string{"AWS", "Databricks", "Snowflake"})
			})
		})

		Convey("When parsing a single-quoted array", func() {
			got := arrayfield.Parse(`['Python', 'Go']`)

			Convey("Then each quoted element is extracted and trimmed", func() {
				So(got, ShouldResemble, []string{"Python", "Go"})
			})
		})

		Convey("When parsing a bracketed value without quotes", func() {
			got := arrayfield.Parse(`[Kafka]`)

			Convey("Then the inner text is a single element", func() {
				So(got, ShouldResemble, []string{"Kafka"})
			})
		})

		Convey("When parsing plain text without brackets", func() {
			got := arrayfield.Parse("Terraform")

			Convey("Then the whole string is a single element", func() {
				So(got, ShouldResemble, []string{"Terraform"})
			})
		})

		Convey("When parsing empty or blank input", func() {
			Convey("Then the result is empty, not nil-error", func() {
				So(arrayfield.Parse(""), ShouldBeEmpty)
				So(arrayfield.Parse("   "), ShouldBeEmpty)
				So(arrayfield.Parse("[]"), ShouldBeEmpty)
			})
		})

		Convey("When parsing an array with empty quoted elements", func() {
			got := arrayfield.Parse(`["", "AWS", ""]`)

			Convey("Then empty elements are dropped", func() {
				So(got, ShouldResemble, []string{"AWS"})
			})
		})

		Convey("When an element contains a comma", func() {
			got := arrayfield.Parse(`["Amazon Web Services, Inc.","GCP"]`)

			Convey("Then splitting respects the quotes, not the comma", func() {
				So(got, ShouldResemble, []string{"Amazon Web Services, Inc.", "GCP"})
			})
		})
	})
}

func TestNormalize(t *testing.T) {
	Convey("Given an already-parsed sequence", t, func() {
		Convey("When normalizing entries with whitespace and blanks", func() {
			got := arrayfield.Normalize([]string{" AWS ", "", "  ", "GCP"})

			Convey("Then entries are trimmed and blanks dropped", func() {
				So(got, ShouldResemble, []string{"AWS", "GCP"})
			})
		})

		Convey("When the output is parsed element by element again", func() {
			first := arrayfield.Normalize([]string{" AWS ", "GCP "})
			second := arrayfield.Normalize(first)

			Convey("Then normalization is idempotent", func() {
				So(second, ShouldResemble, first)
			})
		})
	})
}

func TestFirst(t *testing.T) {
	Convey("Given array-stored scalar fields", t, func() {
		Convey("When the array has elements", func() {
			So(arrayfield.First(`["Stanford University"]`), ShouldEqual, "Stanford University")
		})

		Convey("When the field is plain text", func() {
			So(arrayfield.First("MIT"), ShouldEqual, "MIT")
		})

		Convey("When the field is empty", func() {
			So(arrayfield.First(""), ShouldEqual, "")
			So(arrayfield.First("[]"), ShouldEqual, "")
		})
	})
}
