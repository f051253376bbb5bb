package model_test

import (
	"testing"

	"internmatch/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestParseCompensation(t *testing.T) {
	convey.Convey("Given raw compensation strings", t, func() {
		convey.Convey("When the text says unpaid", func() {
			convey.So(model.ParseCompensation("Unpaid"), convey.ShouldEqual, 0)
			convey.So(model.ParseCompensation("unpaid internship"), convey.ShouldEqual, 0)
		})

		convey.Convey("When the text holds a single number", func() {
			convey.So(model.ParseCompensation("20000 INR"), convey.ShouldEqual, 20000)
			convey.So(model.ParseCompensation("₹15000/month"), convey.ShouldEqual, 15000)
			convey.So(model.ParseCompensation("3.5 LPA"), convey.ShouldEqual, 3.5)
		})

		convey.Convey("When the text holds a range", func() {
			convey.Convey("Then it should average the endpoints", func() {
				convey.So(model.ParseCompensation("₹2 - 2.5 LPA"), convey.ShouldEqual, 2.25)
				convey.So(model.ParseCompensation("10000-20000"), convey.ShouldEqual, 15000)
			})
		})

		convey.Convey("When the text carries no number", func() {
			convey.So(model.ParseCompensation("Competitive"), convey.ShouldEqual, 0)
			convey.So(model.ParseCompensation(""), convey.ShouldEqual, 0)
			convey.So(model.ParseCompensation("   "), convey.ShouldEqual, 0)
		})
	})
}

func TestFeatureText(t *testing.T) {
	convey.Convey("Given catalog entities", t, func() {
		convey.Convey("When building a candidate feature text", func() {
			c := model.CandidateProfile{
				ID:                1,
				Education:         "B.Tech CSE",
				Skills:            "Python, SQL",
				PreferredDomain:   "Data Science",
				PreferredLocation: "Remote",
			}

			convey.Convey("Then it should join the profile fields in order", func() {
				convey.So(c.FeatureText(), convey.ShouldEqual, "B.Tech CSE Python, SQL Data Science Remote")
			})
		})

		convey.Convey("When building an opportunity feature text with blanks", func() {
			o := model.Opportunity{
				ID:       7,
				Company:  "Acme Corp",
				Role:     "Data Analyst Intern",
				Domain:   "",
				Location: "Bangalore",
			}

			convey.Convey("Then empty fields should be skipped", func() {
				convey.So(o.FeatureText(), convey.ShouldEqual, "Acme Corp Data Analyst Intern Bangalore")
			})
		})
	})
}

func TestOpportunityCompensationValue(t *testing.T) {
	convey.Convey("Given an opportunity with a compensation range", t, func() {
		o := model.Opportunity{Compensation: "₹2 - 2.5 LPA"}

		convey.Convey("Then CompensationValue should parse the midpoint", func() {
			convey.So(o.CompensationValue(), convey.ShouldEqual, 2.25)
		})
	})
}
