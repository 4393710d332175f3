package views

// Registration order is navigation order.
func init() {
	registerCommittees()
	registerCommitteeMembers()
	registerCommitteeApplications()
	registerApplicantsWithoutPosition()
	registerFinalLeaders()
	registerApplicantReview()
}
