package views

import "github.com/JonMunkholm/committees/internal/table"

func registerCommitteeApplications() {
	Register(table.Config{
		Key:      "committee-applications",
		Title:    "Committee Applications",
		Endpoint: "committee-applications",
		Columns: []table.Column{
			{Header: "Individual", Accessor: "Individual"},
			{Header: "Job Title", Accessor: "JobTitle"},
			{Header: "Organization", Accessor: "Organization"},
			{Header: "State", Accessor: "State"},
			{Header: "Committee", Accessor: "Committee"},
			{Header: "Term", Accessor: "Term"},
		},
		FilterKeys: []table.FilterKey{
			{Accessor: "JobTitle", Label: "Job Title"},
			{Accessor: "State", Label: "State"},
			{Accessor: "Organization", Label: "Organization"},
			{Accessor: "Committee", Label: "Committee"},
			{Accessor: "Term", Label: "Term"},
		},
		RowsPerPage: 10,
		SearchMode:  table.SearchAllWords,
		Export: table.ExportSpec{
			Title:     "Committee Applications",
			SheetName: "Committee Applications",
			XLSXFile:  "committee_applications.xlsx",
			PDFFile:   "CommitteeApplications.pdf",
			CSVFile:   "committee_applications.csv",
			PDFWidths: []float64{50, 50, 30, 13, 100, 30},
		},
	})
}

func registerApplicantsWithoutPosition() {
	Register(table.Config{
		Key:      "applicants-without-position",
		Title:    "Applicants Without Position",
		Endpoint: "applicants-without-position",
		Columns: []table.Column{
			{Header: "Individual", Accessor: "Individual"},
			{Header: "Organization", Accessor: "Organization"},
			{Header: "State", Accessor: "State"},
			{Header: "Committee Name", Accessor: "Committee"},
			{Header: "Committee Type", Accessor: "Committee Type"},
			{Header: "Position", Accessor: "Position"},
			{Header: "Date Joined", Accessor: "Date Joined"},
		},
		FilterKeys: []table.FilterKey{
			{Accessor: "State", Label: "State"},
			{Accessor: "Committee", Label: "Committee"},
			{Accessor: "Position", Label: "Position"},
		},
		RowsPerPage: 15,
		Export: table.ExportSpec{
			Title:     "Applicants Without Position",
			SheetName: "Applicants",
			XLSXFile:  "applicants_without_position.xlsx",
			PDFFile:   "ApplicantsWithoutPosition.pdf",
			CSVFile:   "applicants_without_position.csv",
			PDFWidths: []float64{30, 30, 20, 100, 50, 30, 30},
		},
	})
}

// leaderFlags are the boolean appointment fields shown as Yes/blank.
var leaderFlags = []string{"Chair", "ViceChair"}

func registerFinalLeaders() {
	Register(table.Config{
		Key:      "final-leaders-list",
		Title:    "Final Leaders List",
		Endpoint: "final-leaders-list",
		Columns: []table.Column{
			{Header: "Application ID", Accessor: "CommitteeApplication"},
			{Header: "Individual", Accessor: "Individual"},
			{Header: "Organization", Accessor: "Organization"},
			{Header: "State", Accessor: "State"},
			{Header: "Committee", Accessor: "Committee"},
			{Header: "Chair", Accessor: "Chair"},
			{Header: "Vice Chair", Accessor: "ViceChair"},
			{Header: "SubCommittee", Accessor: "SubCommittee"},
			{Header: "Term", Accessor: "Term"},
		},
		FilterKeys: []table.FilterKey{
			{Accessor: "State", Label: "State"},
			{Accessor: "Committee", Label: "Committee"},
			{Accessor: "Term", Label: "Term"},
		},
		RowsPerPage: 15,
		Normalize:   Chain(YesIfSet(leaderFlags...), DefaultNA("SubCommittee")),
		Export: table.ExportSpec{
			Title:     "Final Leaders List",
			SheetName: "Final Leaders",
			XLSXFile:  "final_leaders_list.xlsx",
			PDFFile:   "FinalLeadersList.pdf",
			CSVFile:   "final_leaders_list.csv",
			PDFWidths: []float64{30, 30, 20, 100, 50, 30, 30, 30},
		},
	})
}
