package seed_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"internmatch/internal/adapters/catalog"
	"internmatch/internal/domain/taxonomy"
	"internmatch/internal/seed"
	"internmatch/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func TestMain(m *testing.M) {
	_ = logger.Init()
	os.Exit(m.Run())
}

func TestGenerators(t *testing.T) {
	convey.Convey("Given the dataset generators", t, func() {
		ctx := context.Background()

		convey.Convey("When generating candidates", func() {
			candidates := seed.GenerateCandidates(ctx, 50, 42)

			convey.Convey("Then ids should be unique and fields populated", func() {
				convey.So(len(candidates), convey.ShouldEqual, 50)

				seen := make(map[int]bool)
				for _, c := range candidates {
					convey.So(seen[c.ID], convey.ShouldBeFalse)
					seen[c.ID] = true
					convey.So(c.Name, convey.ShouldNotBeEmpty)
					convey.So(c.Skills, convey.ShouldNotBeEmpty)
					convey.So(taxonomy.Resolved(c.PreferredDomain), convey.ShouldBeTrue)
				}
			})

			convey.Convey("Then the same seed should reproduce the same rows", func() {
				again := seed.GenerateCandidates(ctx, 50, 42)
				convey.So(again, convey.ShouldResemble, candidates)
			})

			convey.Convey("Then a different seed should produce different rows", func() {
				other := seed.GenerateCandidates(ctx, 50, 7)
				convey.So(other, convey.ShouldNotResemble, candidates)
			})
		})

		convey.Convey("When generating opportunities", func() {
			opportunities := seed.GenerateOpportunities(ctx, 80, 42)

			convey.Convey("Then ids should be unique and domains match roles", func() {
				convey.So(len(opportunities), convey.ShouldEqual, 80)

				seen := make(map[int]bool)
				for _, o := range opportunities {
					convey.So(seen[o.ID], convey.ShouldBeFalse)
					seen[o.ID] = true
					convey.So(o.Company, convey.ShouldNotBeEmpty)
					convey.So(o.Role, convey.ShouldNotBeEmpty)
					convey.So(taxonomy.Resolved(o.Domain), convey.ShouldBeTrue)
					convey.So(o.Compensation, convey.ShouldNotBeEmpty)
				}
			})

			convey.Convey("Then generation should be reproducible", func() {
				again := seed.GenerateOpportunities(ctx, 80, 42)
				convey.So(again, convey.ShouldResemble, opportunities)
			})
		})
	})
}

func TestWriters(t *testing.T) {
	convey.Convey("Given generated catalogs", t, func() {
		ctx := context.Background()
		dir := t.TempDir()
		candidates := seed.GenerateCandidates(ctx, 20, 1)
		opportunities := seed.GenerateOpportunities(ctx, 30, 1)

		convey.Convey("When writing and reloading the candidate CSV", func() {
			path, err := seed.WriteCandidatesCSV(ctx, dir, candidates)
			convey.So(err, convey.ShouldBeNil)
			convey.So(path, convey.ShouldEqual, filepath.Join(dir, seed.CandidatesFile))

			loaded, err := catalog.New().LoadCandidates(ctx, path)

			convey.Convey("Then the loader should reproduce the generated rows", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(loaded, convey.ShouldResemble, candidates)
			})
		})

		convey.Convey("When writing and reloading the opportunity CSV", func() {
			path, err := seed.WriteOpportunitiesCSV(ctx, dir, opportunities)
			convey.So(err, convey.ShouldBeNil)

			loaded, err := catalog.New().LoadOpportunities(ctx, path)

			convey.Convey("Then the loader should reproduce the generated rows", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(loaded, convey.ShouldResemble, opportunities)
			})
		})

		convey.Convey("When the output directory does not exist yet", func() {
			nested := filepath.Join(dir, "a", "b")
			_, err := seed.WriteCandidatesCSV(ctx, nested, candidates)

			convey.Convey("Then it should be created", func() {
				convey.So(err, convey.ShouldBeNil)
				_, statErr := os.Stat(filepath.Join(nested, seed.CandidatesFile))
				convey.So(statErr, convey.ShouldBeNil)
			})
		})
	})
}

func TestRun(t *testing.T) {
	convey.Convey("Given a seeding configuration without smoke checks", t, func() {
		dir := t.TempDir()
		config := &seed.Config{
			OutputDir:        dir,
			NumCandidates:    10,
			NumOpportunities: 15,
			Seed:             3,
		}

		convey.Convey("When running the seeder", func() {
			err := seed.Run(context.Background(), config)

			convey.Convey("Then both catalog files should exist", func() {
				convey.So(err, convey.ShouldBeNil)

				_, cErr := os.Stat(filepath.Join(dir, seed.CandidatesFile))
				convey.So(cErr, convey.ShouldBeNil)
				_, oErr := os.Stat(filepath.Join(dir, seed.OpportunitiesFile))
				convey.So(oErr, convey.ShouldBeNil)
			})
		})
	})
}
