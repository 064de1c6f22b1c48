/*
Package registry maps record types to the key templates the DynamoDB
backend stores them under.

An index map names each key attribute and the template it expands from.
Templates reference record fields in braces, by their JSON names:

	registry.RegisterIndexMap[models.Player](map[string]string{
	    "PK":     "PLAYER#{Id}",
	    "SK":     "PLAYER#{Id}",
	    "GSI1PK": "RATINGSYSTEM#{RatingSystemId}",
	    "GSI1SK": "PLAYER#{Id}",
	})

The registry is thread-safe and is normally populated from init functions,
as the fixtures package does.
*/
package registry
