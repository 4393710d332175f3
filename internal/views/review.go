package views

import (
	"errors"
	"fmt"
	"slices"

	"github.com/JonMunkholm/committees/internal/table"
)

// ApplicantReviewKey is the key and endpoint of the applicant review view.
const ApplicantReviewKey = "applicant-review"

// RecommendationField is the editable column of the applicant review view.
const RecommendationField = "YourRecommendation"

// Recommendations are the values a reviewer may pick.
var Recommendations = []string{
	"Chair",
	"Vice Chair",
	"Member",
	"Subcommittee Chair",
	"Subcommittee Vice Chair",
}

// ErrInvalidRecommendation is returned for a value outside Recommendations.
var ErrInvalidRecommendation = errors.New("invalid recommendation")

// ValidateRecommendation checks value against Recommendations.
func ValidateRecommendation(value string) error {
	if !slices.Contains(Recommendations, value) {
		return fmt.Errorf("%w: %q", ErrInvalidRecommendation, value)
	}
	return nil
}

func registerApplicantReview() {
	Register(table.Config{
		Key:      ApplicantReviewKey,
		Title:    "Applicant Review",
		Endpoint: ApplicantReviewKey,
		IDField:  "ApplicationID",
		Columns: []table.Column{
			{Header: "State", Accessor: "State"},
			{Header: "County", Accessor: "County"},
			{Header: "Name", Accessor: "Name"},
			{Header: "Positions Applied for on the Main Committee", Accessor: "PositionsAppliedMainCommittee"},
			{Header: "Positions Applied for on the Subcommittee", Accessor: "PositionsAppliedSubcommittee"},
			{Header: "Got Recommended to Serve on Another Committee", Accessor: "RecommendedToServe"},
			{
				Header:   "Your Recommendation",
				Accessor: RecommendationField,
				Editor:   &table.Editor{Options: Recommendations},
			},
			{Header: "Subcommittee Name", Accessor: "SubcommitteeName"},
			{Header: "Committee Name", Accessor: "CommitteeName"},
			{Header: "Recommended Position", Accessor: "RecommendedPosition"},
		},
		FilterKeys: []table.FilterKey{
			{Accessor: "State", Label: "State"},
			{Accessor: "CommitteeName", Label: "Committee"},
		},
		RowsPerPage: 15,
		Normalize: Chain(
			YesIfSet(leaderFlags...),
			DefaultNA("SubCommittee", "RecommendedPosition"),
		),
		Export: table.ExportSpec{
			Title:     "Applicant Review & Recommendations",
			SheetName: "Applicant Review",
			XLSXFile:  "applicant_review_recommendations.xlsx",
			PDFFile:   "ApplicantReviewRecommendations.pdf",
			CSVFile:   "applicant_review_recommendations.csv",
			PDFWidths: []float64{30, 30, 40, 80, 80, 80, 80},
		},
	})
}
