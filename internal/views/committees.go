package views

import "github.com/JonMunkholm/committees/internal/table"

func registerCommittees() {
	Register(table.Config{
		Key:      "committees",
		Title:    "Committees",
		Endpoint: "committees",
		Columns: []table.Column{
			{Header: "Committee Name", Accessor: "name"},
			{Header: "Committee Type", Accessor: "CommitteeType"},
		},
		FilterKeys: []table.FilterKey{
			{Accessor: "CommitteeType", Label: "Committee Type"},
		},
		RowsPerPage: 15,
		Export: table.ExportSpec{
			Title:     "Committee",
			SheetName: "Committees",
			XLSXFile:  "committees.xlsx",
			PDFFile:   "committees.pdf",
			CSVFile:   "committees.csv",
			PDFWidths: []float64{100, 100},
		},
	})
}

func registerCommitteeMembers() {
	Register(table.Config{
		Key:      "committee-member",
		Title:    "Committee Members",
		Endpoint: "committee-member",
		Columns: []table.Column{
			{Header: "Individual", Accessor: "Individual"},
			{Header: "Job Title", Accessor: "JobTitle"},
			{Header: "Organization", Accessor: "Organization"},
			{Header: "State", Accessor: "State"},
			{Header: "Committee", Accessor: "CommitteeName"},
			{Header: "Position", Accessor: "Position"},
			{Header: "Term", Accessor: "Term"},
		},
		FilterKeys: []table.FilterKey{
			{Accessor: "JobTitle", Label: "Job Title"},
			{Accessor: "State", Label: "State"},
			{Accessor: "Organization", Label: "Organization"},
			{Accessor: "CommitteeName", Label: "Committee"},
			{Accessor: "Position", Label: "Position"},
			{Accessor: "Term", Label: "Term"},
		},
		RowsPerPage: 15,
		Normalize:   StateCodes("State"),
		Export: table.ExportSpec{
			Title:     "Committee Members",
			SheetName: "Committee Members",
			XLSXFile:  "committee_members.xlsx",
			PDFFile:   "CommitteeMembers.pdf",
			CSVFile:   "committee_members.csv",
		},
	})
}
