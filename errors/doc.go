/*
Package errors provides semantic error types for the entityfactory library.

Each error type matches a sentinel through errors.Is, so callers can branch on
the kind of failure without depending on concrete types:

	var (
	    ErrNotFound           = errors.New("entity not found")
	    ErrAlreadyExists      = errors.New("entity already exists")
	    ErrInvalidInput       = errors.New("invalid input")
	    ErrNoIndexMap         = errors.New("no index map found for type")
	    ErrPersistence        = errors.New("persistence failed")
	    ErrUnknownAssociation = errors.New("unknown association")
	    ErrNotImplemented     = errors.New("not implemented")
	)

Usage:

	player, err := players.Create(ctx, session, attributes.Map{"Name": "Ana"})
	if err != nil {
	    if errors.IsPersistence(err) {
	        // the session refused the record; the cause is wrapped
	        return fmt.Errorf("seeding players: %w", err)
	    }
	    return err
	}

PersistenceError unwraps to the backend cause, so errors.As on driver errors
keeps working through it.
*/
package errors
