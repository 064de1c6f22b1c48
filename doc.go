/*
Package entityfactory constructs typed domain entities from attribute maps
merged over per-kind defaults, and optionally stores them through an
explicit persistence context.

Each entity kind supplies a Definition: its kind name, its default
attributes and the associations it can resolve. A Factory[T] turns that
definition into records of type T:

	type playerDef struct{ entityfactory.Unspecialized }

	func (playerDef) DefaultDictionary() (attributes.Map, error) {
	    return attributes.Map{"Name": "Player", "Rating": 1500}, nil
	}

	players := entityfactory.New[models.Player](playerDef{entityfactory.Unspecialized{Name: "Player"}})

	// In memory only
	p, _ := players.Build(attributes.Map{"Rating": 1720})

	// Stored in the session's Player datastore
	session := entityfactory.NewSession()
	entityfactory.RegisterDataStore[models.Player](session, "Player", memory.New[models.Player]())
	p, err := players.Create(ctx, session, nil)

Caller attributes always win over defaults. Build never touches a session;
Create and association resolution do, and report failures of the session as
errors.PersistenceError.

The Session is passed to every call that needs it. It maps each record type
and kind to a datastore.DataStore, so the same factories run against the
memory, Redis or DynamoDB backends.

A Catalog indexes factories by kind name for callers that only hold
untyped input, such as the seeding CLI in cmd/entityfactory.
*/
package entityfactory
