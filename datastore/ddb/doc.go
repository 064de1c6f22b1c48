/*
Package ddb provides a DynamoDB implementation of the DataStore interface.

Records of every kind share one table. Each item carries:
  - the record's fields, marshalled through their JSON form
  - key attributes expanded from the index map registered for the record type
  - an EntityType attribute holding the kind name

Macro Expansion:
PK and SK expand from the record key passed to Put, GetOne and Delete.
Every other template expands from record field values (JSON names):

	registry.RegisterIndexMap[models.Player](map[string]string{
	    "PK":     "PLAYER#{Id}",               // Becomes "PLAYER#0b6c..."
	    "SK":     "PLAYER#{Id}",
	    "GSI1PK": "RATINGSYSTEM#{RatingSystemId}",
	})

A secondary attribute is left off the item when any of its macros has no
value, so records without a rating system stay out of GSI1.

The store talks to DynamoDB through the API interface; *dynamodb.Client
satisfies it and tests substitute an in-memory table.
*/
package ddb
