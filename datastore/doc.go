/*
Package datastore defines the storage contract a Session delegates to.

The interface is generic over the record type T:

	type DataStore[T any] interface {
	    GetOne(ctx context.Context, key string) (*T, error)
	    Put(ctx context.Context, key string, entity T) error
	    Delete(ctx context.Context, key string) error
	}

Implementations:
  - memory: in-process map, the default backend and the test double
  - redisstore: JSON records in Redis
  - ddb: DynamoDB single-table storage driven by registered index maps

Keys are chosen by the caller (factories generate a fresh UUID per create),
so Put never deduplicates records on content.
*/
package datastore
