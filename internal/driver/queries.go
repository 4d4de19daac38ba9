package driver

var IndexQueries = []string{
	"CREATE INDEX ON :Person(phone);",
	"CREATE INDEX ON :Person(import_id);",
	"CREATE INDEX ON :Person(category);",
}

const (
	// $nodes: [{phone, category, account_id, name, occurrences, contacts, community}]
	SavePersonsQuery = `
		UNWIND $nodes AS n
		MERGE (p:Person {phone: n.phone})
		SET p.category = n.category,
			p.account_id = n.account_id,
			p.name = n.name,
			p.occurrences = n.occurrences,
			p.contacts = n.contacts,
			p.community = n.community,
			p.import_id = $import_id,
			p.imported_at = $imported_at
		RETURN count(p) AS saved
	`

	// $edges: [{source, target}]
	SaveContactEdgesQuery = `
		UNWIND $edges AS e
		MATCH (source:Person {phone: e.source})
		MATCH (target:Person {phone: e.target})
		MERGE (source)-[r:HAS_CONTACT]->(target)
		SET r.import_id = $import_id,
			r.imported_at = $imported_at
		RETURN count(r) AS saved
	`

	// Relationships from earlier imports that the current dataset no longer has.
	DeleteStaleEdgesQuery = `
		MATCH (:Person)-[r:HAS_CONTACT]->(:Person)
		WHERE r.import_id <> $import_id
		DELETE r
		RETURN count(r) AS deleted
	`

	DeleteStalePersonsQuery = `
		MATCH (p:Person)
		WHERE p.import_id <> $import_id
		DETACH DELETE p
		RETURN count(p) AS deleted
	`

	CountImportQuery = `
		MATCH (p:Person {import_id: $import_id})
		OPTIONAL MATCH (p)-[r:HAS_CONTACT {import_id: $import_id}]->()
		RETURN count(DISTINCT p) AS persons, count(r) AS edges
	`
)
