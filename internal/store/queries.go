package store

// query is one named record query. The SQL is written with $N placeholders
// and runs unchanged on Postgres; the SQLite backend rebinds placeholders.
type query struct {
	SQL  string
	Args []any
}

// positionSeparator joins the flagged positions of one applicant.
const positionSeparator = "\n"

var queries = map[string]query{
	"committees": {SQL: `
SELECT
    c.committee_key  AS "CommitteeKey",
    c.name           AS "name",
    c.committee_type AS "CommitteeType"
FROM committee c
ORDER BY c.committee_key`},

	"committee-member": {SQL: `
SELECT
    cm.committee_member_key AS "CommitteeMemberKey",
    i.full_name             AS "Individual",
    i.title                 AS "JobTitle",
    c.name                  AS "CommitteeName",
    o.organization_name     AS "Organization",
    o.state_abb             AS "State",
    p.position_name         AS "Position",
    t.term_name             AS "Term"
FROM committee_member cm
LEFT JOIN individual i          ON cm.individual_key = i.individual_key
LEFT JOIN organization o        ON cm.organization_key = o.organization_key
LEFT JOIN committee c           ON cm.committee_key = c.committee_key
LEFT JOIN committee_term t      ON cm.term_key = t.term_key
LEFT JOIN committee_position p  ON cm.position_key = p.position_key
ORDER BY cm.committee_member_key`},

	"committee-applications": {SQL: `
SELECT
    pcm.application_id  AS "ApplicationID",
    i.full_name         AS "Individual",
    i.title             AS "JobTitle",
    o.organization_name AS "Organization",
    o.state_abb         AS "State",
    c.name              AS "Committee",
    ct.term_name        AS "Term"
FROM prospective_committee_member pcm
LEFT JOIN individual i      ON pcm.individual_key = i.individual_key
LEFT JOIN organization o    ON i.organization_key = o.organization_key
LEFT JOIN committee c       ON pcm.committee_key = c.committee_key
LEFT JOIN committee_term ct ON pcm.term_key = ct.term_key
ORDER BY pcm.application_id`},

	"applicants-without-position": {SQL: `
SELECT
    pcm.application_id  AS "CommitteeApplication",
    i.full_name         AS "Individual",
    o.organization_name AS "Organization",
    o.state_abb         AS "State",
    c.name              AS "Committee",
    c.committee_type    AS "Committee Type",
    ct.term_name        AS "Term",
    concat_ws(CAST($1 AS TEXT),
        CASE WHEN pcm.vice_chair THEN 'Vice Chair' END,
        CASE WHEN pcm.director THEN 'Director' END,
        CASE WHEN pcm.chair THEN 'Chair' END,
        CASE WHEN pcm.subcommittee_chair THEN 'Subcommittee Chair' END,
        CASE WHEN pcm.subcommittee_vice_chair THEN 'Subcommittee Vice Chair' END,
        CASE WHEN pcm.committee_chair THEN 'Committee Chair' END,
        CASE WHEN pcm.committee_member THEN 'Committee Member' END
    )                   AS "Position",
    pcm.created_on      AS "Date Joined"
FROM prospective_committee_member pcm
LEFT JOIN individual i      ON pcm.individual_key = i.individual_key
LEFT JOIN organization o    ON i.organization_key = o.organization_key
LEFT JOIN committee c       ON pcm.committee_key = c.committee_key
LEFT JOIN committee_term ct ON pcm.term_key = ct.term_key
WHERE pcm.position_key IS NULL
ORDER BY pcm.application_id`, Args: []any{positionSeparator}},

	"final-leaders-list": {SQL: `
SELECT
    pcm.application_id       AS "CommitteeApplication",
    i.full_name              AS "Individual",
    o.organization_name      AS "Organization",
    o.state_abb              AS "State",
    c.name                   AS "Committee",
    ct.term_name             AS "Term",
    pcm.committee_chair      AS "Chair",
    pcm.committee_vice_chair AS "ViceChair",
    s.name                   AS "SubCommittee"
FROM prospective_committee_member pcm
LEFT JOIN individual i      ON pcm.individual_key = i.individual_key
LEFT JOIN organization o    ON i.organization_key = o.organization_key
LEFT JOIN committee c       ON pcm.committee_key = c.committee_key
LEFT JOIN committee_term ct ON pcm.term_key = ct.term_key
LEFT JOIN subcommittee s    ON pcm.subcommittee_key = s.subcommittee_key
WHERE pcm.position_key IS NOT NULL
ORDER BY pcm.application_id`},

	"applicant-review": {SQL: `
SELECT
    pcm.application_id       AS "ApplicationID",
    o.state_abb              AS "State",
    o.county                 AS "County",
    i.full_name              AS "Name",
    pcm.positions_main       AS "PositionsAppliedMainCommittee",
    pcm.positions_sub        AS "PositionsAppliedSubcommittee",
    pcm.recommended_to_serve AS "RecommendedToServe",
    pcm.recommendation       AS "YourRecommendation",
    s.name                   AS "SubcommitteeName",
    c.name                   AS "CommitteeName",
    pcm.recommended_position AS "RecommendedPosition",
    pcm.committee_chair      AS "Chair",
    pcm.committee_vice_chair AS "ViceChair",
    s.name                   AS "SubCommittee"
FROM prospective_committee_member pcm
LEFT JOIN individual i      ON pcm.individual_key = i.individual_key
LEFT JOIN organization o    ON i.organization_key = o.organization_key
LEFT JOIN committee c       ON pcm.committee_key = c.committee_key
LEFT JOIN subcommittee s    ON pcm.subcommittee_key = s.subcommittee_key
ORDER BY o.state_abb, i.full_name`},
}

const setRecommendationSQL = `
UPDATE prospective_committee_member
SET recommendation = $1
WHERE application_id = $2`

const pingSQL = `SELECT 1`
