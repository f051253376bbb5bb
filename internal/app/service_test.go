package app_test

import (
	"context"
	"errors"
	"testing"

	"internmatch/internal/app"
	"internmatch/internal/config"
	"internmatch/internal/domain/model"
	"internmatch/internal/domain/vectorizer"
	"internmatch/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func TestMain(m *testing.M) {
	_ = logger.Init()
	m.Run()
}

func testCandidates() []model.CandidateProfile {
	return []model.CandidateProfile{
		{ID: 1, Name: "Asha", Education: "B.Tech CSE", Skills: "Python, SQL, Machine Learning", PreferredDomain: "Data Science", PreferredLocation: "Bangalore", EnrollmentStatus: "Full-time"},
		{ID: 2, Name: "Ravi", Education: "BCA", Skills: "JavaScript, React, CSS", PreferredDomain: "Web Development", PreferredLocation: "Remote", EnrollmentStatus: "Part-time"},
		{ID: 3, Name: "Meera", Education: "BBA", Skills: "Communication, Excel", PreferredDomain: "Marketing", PreferredLocation: "Mumbai", EnrollmentStatus: "Full-time"},
	}
}

func testOpportunities() []model.Opportunity {
	return []model.Opportunity{
		{ID: 101, Company: "Acme Analytics", Role: "Data Science Intern", Domain: "Data Science", Location: "Bangalore", Type: "Full-time", Duration: "6 Months", Compensation: "20000 INR"},
		{ID: 102, Company: "Beta Labs", Role: "Machine Learning Intern", Domain: "Data Science", Location: "Remote", Type: "Part-time", Duration: "3 Months", Compensation: "15000 INR"},
		{ID: 103, Company: "Gamma Web", Role: "React Developer Intern", Domain: "Web Development", Location: "Remote", Type: "Part-time", Duration: "3 Months", Compensation: "Unpaid"},
		{ID: 104, Company: "Delta Media", Role: "Digital Marketing Intern", Domain: "Marketing", Location: "Mumbai", Type: "Full-time", Duration: "6 Months", Compensation: "10000 INR"},
		{ID: 105, Company: "Epsilon Design", Role: "UI/UX Design Intern", Domain: "Design", Location: "Pune", Type: "Full-time", Duration: "6 Months", Compensation: "12000 INR"},
	}
}

func newLoadedService(opts ...app.Option) *app.Service {
	base := []app.Option{
		app.WithVectorizer(vectorizer.New(vectorizer.WithMinDocFreq(1))),
	}
	svc := app.New(append(base, opts...)...)
	if err := svc.Load(context.Background(), testCandidates(), testOpportunities()); err != nil {
		panic(err)
	}
	return svc
}

func TestService_Recommend(t *testing.T) {
	convey.Convey("Given a loaded service", t, func() {
		ctx := context.Background()
		svc := newLoadedService()

		convey.Convey("When recommending for a data science candidate", func() {
			recs, err := svc.Recommend(ctx, 1, 3)

			convey.Convey("Then domain-matching opportunities should lead", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(len(recs), convey.ShouldBeGreaterThan, 0)
				convey.So(recs[0].Opportunity.Domain, convey.ShouldEqual, "Data Science")
				convey.So(recs[0].Score, convey.ShouldBeGreaterThan, 0)
				convey.So(recs[0].Reason, convey.ShouldNotBeEmpty)
			})

			convey.Convey("Then scores should be non-increasing", func() {
				convey.So(err, convey.ShouldBeNil)
				for i := 1; i < len(recs); i++ {
					convey.So(recs[i].Score, convey.ShouldBeLessThanOrEqualTo, recs[i-1].Score)
				}
			})
		})

		convey.Convey("When the candidate id is unknown", func() {
			recs, err := svc.Recommend(ctx, 999, 3)

			convey.Convey("Then it should fail with not found", func() {
				convey.So(recs, convey.ShouldBeNil)
				convey.So(errors.Is(err, app.ErrCandidateNotFound), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When top_k is negative", func() {
			_, err := svc.Recommend(ctx, 1, -1)

			convey.So(errors.Is(err, app.ErrInvalidTopK), convey.ShouldBeTrue)
		})

		convey.Convey("When top_k is omitted", func() {
			recs, err := svc.Recommend(ctx, 1, 0)

			convey.Convey("Then the configured default should apply", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(len(recs), convey.ShouldBeLessThanOrEqualTo, 3)
			})
		})

		convey.Convey("When top_k exceeds the filtered set", func() {
			recs, err := svc.Recommend(ctx, 1, 40)

			convey.Convey("Then the whole surviving set should come back", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(len(recs), convey.ShouldBeLessThanOrEqualTo, 5)
			})
		})

		convey.Convey("When the filtered set is smaller than top_k", func() {
			candidates := []model.CandidateProfile{
				{ID: 1, Skills: "Python, SQL", PreferredDomain: "Data Science", PreferredLocation: "Remote"},
			}
			opportunities := []model.Opportunity{
				{ID: 101, Company: "Acme Analytics", Role: "Data Science Intern", Domain: "Data Science", Location: "Remote"},
				{ID: 104, Company: "Delta Media", Role: "Digital Marketing Intern", Domain: "Marketing", Location: "Bangalore"},
			}
			short := app.New(app.WithVectorizer(vectorizer.New(vectorizer.WithMinDocFreq(1))))
			convey.So(short.Load(ctx, candidates, opportunities), convey.ShouldBeNil)

			recs, err := short.Recommend(ctx, 1, 2)

			convey.Convey("Then the page backfills from the penalized remainder", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(len(recs), convey.ShouldEqual, 2)
				convey.So(recs[0].Opportunity.ID, convey.ShouldEqual, 101)
				convey.So(recs[1].Opportunity.ID, convey.ShouldEqual, 104)
				convey.So(recs[0].Score, convey.ShouldBeGreaterThanOrEqualTo, recs[1].Score)
			})
		})

		convey.Convey("When recommending twice with the same inputs", func() {
			a, errA := svc.Recommend(ctx, 2, 5)
			b, errB := svc.Recommend(ctx, 2, 5)

			convey.Convey("Then results should be identical", func() {
				convey.So(errA, convey.ShouldBeNil)
				convey.So(errB, convey.ShouldBeNil)
				convey.So(a, convey.ShouldResemble, b)
			})
		})
	})

	convey.Convey("Given a service without a loaded catalog", t, func() {
		svc := app.New()

		_, err := svc.Recommend(context.Background(), 1, 3)

		convey.So(errors.Is(err, app.ErrNotLoaded), convey.ShouldBeTrue)
	})
}

func TestService_RecommendProfile(t *testing.T) {
	convey.Convey("Given a loaded service", t, func() {
		ctx := context.Background()
		svc := newLoadedService()

		convey.Convey("When recommending for an ad-hoc profile", func() {
			profile := model.CandidateProfile{
				Skills:            "Python, Machine Learning",
				PreferredDomain:   "Data Science",
				PreferredLocation: "Remote",
			}

			recs, err := svc.RecommendProfile(ctx, profile, 2)

			convey.Convey("Then the profile should rank against the catalog", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(len(recs), convey.ShouldEqual, 2)
				convey.So(recs[0].Opportunity.Domain, convey.ShouldEqual, "Data Science")
			})

			convey.Convey("Then the shared catalog should stay untouched", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(len(svc.Candidates()), convey.ShouldEqual, 3)
			})
		})
	})
}

func TestService_FallbackPolicy(t *testing.T) {
	convey.Convey("Given a candidate nothing in the catalog fits", t, func() {
		ctx := context.Background()
		// All filters empty out for this profile only if every stage is
		// reverted; force the post-pipeline empty case with an empty catalog
		// slice via the strict/permissive split on an empty opportunity set.
		candidates := testCandidates()

		convey.Convey("When the policy is permissive", func() {
			svc := app.New(app.WithVectorizer(vectorizer.New(vectorizer.WithMinDocFreq(1))),
				app.WithFallbackPolicy(config.FallbackPermissive, 2))
			convey.So(svc.Load(ctx, candidates, testOpportunities()), convey.ShouldBeNil)

			recs, err := svc.Recommend(ctx, 1, 50)

			convey.Convey("Then results should never be empty for a loaded catalog", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(len(recs), convey.ShouldBeGreaterThan, 0)
			})
		})

		convey.Convey("When the policy is strict and the catalog has no opportunities", func() {
			svc := app.New(app.WithVectorizer(vectorizer.New(vectorizer.WithMinDocFreq(1))),
				app.WithFallbackPolicy(config.FallbackStrict, 20))
			convey.So(svc.Load(ctx, candidates, []model.Opportunity{}), convey.ShouldBeNil)

			recs, err := svc.Recommend(ctx, 1, 3)

			convey.Convey("Then an empty list is a valid success", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(recs, convey.ShouldNotBeNil)
				convey.So(len(recs), convey.ShouldEqual, 0)
			})
		})
	})
}

func TestService_BatchRecommend(t *testing.T) {
	convey.Convey("Given a loaded service", t, func() {
		ctx := context.Background()
		svc := newLoadedService(app.WithBatchWorkers(2))

		convey.Convey("When the batch mixes known and unknown ids", func() {
			results := svc.BatchRecommend(ctx, []int{1, 999, 2}, 2)

			convey.Convey("Then entries should fail independently and keep order", func() {
				convey.So(len(results), convey.ShouldEqual, 3)

				convey.So(results[0].CandidateID, convey.ShouldEqual, 1)
				convey.So(results[0].Err, convey.ShouldBeNil)
				convey.So(len(results[0].Recommendations), convey.ShouldBeGreaterThan, 0)

				convey.So(results[1].CandidateID, convey.ShouldEqual, 999)
				convey.So(errors.Is(results[1].Err, app.ErrCandidateNotFound), convey.ShouldBeTrue)

				convey.So(results[2].CandidateID, convey.ShouldEqual, 2)
				convey.So(results[2].Err, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the batch is empty", func() {
			results := svc.BatchRecommend(ctx, nil, 2)

			convey.So(len(results), convey.ShouldEqual, 0)
		})
	})
}

func TestService_Lookups(t *testing.T) {
	convey.Convey("Given a loaded service", t, func() {
		svc := newLoadedService()

		convey.Convey("When resolving a candidate by id", func() {
			c, err := svc.CandidateInfo(2)

			convey.So(err, convey.ShouldBeNil)
			convey.So(c.Name, convey.ShouldEqual, "Ravi")
		})

		convey.Convey("When resolving an unknown candidate", func() {
			_, err := svc.CandidateInfo(77)

			convey.So(errors.Is(err, app.ErrCandidateNotFound), convey.ShouldBeTrue)
		})

		convey.Convey("When reading catalog listings and stats", func() {
			convey.So(len(svc.Candidates()), convey.ShouldEqual, 3)
			convey.So(len(svc.Opportunities()), convey.ShouldEqual, 5)

			stats := svc.GetStats()
			convey.So(stats["loaded"], convey.ShouldBeTrue)
			convey.So(stats["candidates"], convey.ShouldEqual, 3)
			convey.So(stats["opportunities"], convey.ShouldEqual, 5)
			convey.So(stats["vocabulary_size"], convey.ShouldBeGreaterThan, 0)
		})
	})
}
